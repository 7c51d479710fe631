package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DeadKai/go-content/cmd/corpus/internal/bootstrap"
	corpuscmd "github.com/DeadKai/go-content/internal/commands/corpus"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runIndex(os.Args[1:]); err != nil {
		log.Fatalf("corpus index: %v", err)
	}
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("corpus-index", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories")
	schemaPath := fs.String("schema", "", "Optional JSON Schema applied to document metadata")
	dsn := fs.String("dsn", "file:content.db?_fk=1", "SQLite DSN for the document index")
	cacheEnabled := fs.Bool("cache", false, "Enable read-through caching on the index repository")
	directory := fs.String("directory", ".", "Directory to index, relative to the content root")
	dryRun := fs.Bool("dry-run", false, "Report changes without persisting them")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove indexed documents whose files are gone")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:   *contentDir,
		Pattern:      *pattern,
		Recursive:    *recursive,
		SchemaPath:   *schemaPath,
		StorageDSN:   *dsn,
		CacheEnabled: *cacheEnabled,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Index == nil {
		return fmt.Errorf("index service not configured; supply --dsn")
	}

	ctx := context.Background()

	if err := module.Module.EnsureIndexSchema(ctx); err != nil {
		return fmt.Errorf("ensure index schema: %w", err)
	}

	handler := corpuscmd.NewIndexDirectoryHandler(module.Corpus, module.Index, module.Logger)
	return handler.Execute(ctx, corpuscmd.IndexDirectoryCommand{
		Directory:      *directory,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	})
}
