// Package corpuscmd exposes corpus operations as go-command messages so
// hosts can dispatch them through a command bus or invoke them directly.
package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	indexDirectoryMessageType    = "content.corpus.index_directory"
	validateDirectoryMessageType = "content.corpus.validate_directory"
)

// IndexDirectoryCommand loads every document under Directory and reconciles
// the result into the persistent index.
type IndexDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the corpus root) to index.
	Directory string `json:"directory"`
	// Pattern overrides the configured discovery glob.
	Pattern string `json:"pattern,omitempty"`
	// DryRun collects the reconciliation outcome without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes index records without a matching document.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (IndexDirectoryCommand) Type() string { return indexDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd IndexDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("content.corpus.index_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ValidateDirectoryCommand parses every document under Directory, surfacing
// malformed front-matter and metadata schema violations with the offending
// file path.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the corpus root) to validate.
	Directory string `json:"directory"`
	// Pattern overrides the configured discovery glob.
	Pattern string `json:"pattern,omitempty"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("content.corpus.validate_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
