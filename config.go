package content

import "github.com/DeadKai/go-content/internal/runtimeconfig"

var (
	ErrContentDirRequired   = runtimeconfig.ErrContentDirRequired
	ErrStorageDSNRequired   = runtimeconfig.ErrStorageDSNRequired
	ErrStorageDriverUnknown = runtimeconfig.ErrStorageDriverUnknown
	ErrCacheRequiresStorage = runtimeconfig.ErrCacheRequiresStorage
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
	ErrSchemaSourceConflict = runtimeconfig.ErrSchemaSourceConflict
)

type (
	Config            = runtimeconfig.Config
	CorpusConfig      = runtimeconfig.CorpusConfig
	FrontMatterConfig = runtimeconfig.FrontMatterConfig
	ParserConfig      = runtimeconfig.ParserConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	SchemaConfig      = runtimeconfig.SchemaConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
