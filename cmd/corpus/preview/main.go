package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DeadKai/go-content/cmd/corpus/internal/bootstrap"
	"github.com/DeadKai/go-content/internal/watch"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("corpus preview: %v", err)
	}
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("corpus-preview", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	schemaPath := fs.String("schema", "", "Optional JSON Schema applied to document metadata")
	filePath := fs.String("file", "", "Markdown file to preview (relative to the content root)")
	renderHTML := fs.Bool("render-html", true, "Render the markdown body into HTML as part of the preview")
	follow := fs.Bool("watch", false, "Keep running and re-render the preview when the file changes")
	logLevel := fs.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		SchemaPath: *schemaPath,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()

	doc, err := module.Corpus.Load(ctx, *filePath, interfaces.LoadOptions{RenderHTML: *renderHTML})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	printDocument(doc, *renderHTML)

	if !*follow {
		return nil
	}

	if err := followFile(module, *contentDir, *filePath, *renderHTML); err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	return nil
}

func followFile(module *bootstrap.Module, contentDir, filePath string, renderHTML bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(watch.Config{
		Dir:       filepath.Join(contentDir, filepath.Dir(filePath)),
		Pattern:   filepath.Base(filePath),
		Recursive: false,
	}, watch.WithLogger(module.Logger))
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	for event := range watcher.Events() {
		switch {
		case event.Err != nil:
			fmt.Fprintf(os.Stderr, "parse failed: %v\n", event.Err)
		case event.Op == watch.OpRemoved:
			fmt.Fprintf(os.Stderr, "file removed: %s\n", event.Path)
		case event.Document != nil:
			doc := event.Document
			if renderHTML {
				if _, err := module.Corpus.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
					fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
					continue
				}
			}
			printDocument(doc, renderHTML)
		}
	}

	err = <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printDocument(doc *interfaces.Document, renderHTML bool) {
	fmt.Fprintf(os.Stdout, "Path: %s\nSlug: %s\nChecksum: %x\n\n", doc.FilePath, doc.Slug, doc.Checksum)

	if len(doc.Meta) > 0 {
		meta, err := json.MarshalIndent(doc.Meta, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Meta:\n%s\n\n", meta)
		}
	}

	if renderHTML {
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(os.Stdout, "Markdown Body:\n%s\n", string(doc.Body))
	}
}
