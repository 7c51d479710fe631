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
	if err := runValidate(os.Args[1:]); err != nil {
		log.Fatalf("corpus validate: %v", err)
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("corpus-validate", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories")
	schemaPath := fs.String("schema", "", "JSON Schema applied to document metadata")
	directory := fs.String("directory", ".", "Directory to validate, relative to the content root")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		SchemaPath: *schemaPath,
		LogLevel:   *logLevel,
		LogFormat:  *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := corpuscmd.NewValidateDirectoryHandler(module.Corpus, module.Logger)
	return handler.Execute(context.Background(), corpuscmd.ValidateDirectoryCommand{
		Directory: *directory,
	})
}
