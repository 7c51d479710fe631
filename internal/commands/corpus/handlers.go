package corpuscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/DeadKai/go-content/internal/commands"
	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

const (
	indexOperation    = "corpus.index_directory"
	validateOperation = "corpus.validate_directory"
)

var (
	ErrCorpusServiceRequired = errors.New("corpus command: corpus service is required")
	ErrIndexServiceRequired  = errors.New("corpus command: index service is required")
)

var (
	_ command.Commander[IndexDirectoryCommand]    = (*IndexDirectoryHandler)(nil)
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
)

// IndexDirectoryHandler orchestrates corpus indexing via the shared command
// handler foundation.
type IndexDirectoryHandler struct {
	inner *commands.Handler[IndexDirectoryCommand]
}

// NewIndexDirectoryHandler creates a handler bound to the supplied services.
func NewIndexDirectoryHandler(corpus interfaces.CorpusService, index interfaces.IndexService, logger interfaces.Logger, opts ...commands.HandlerOption[IndexDirectoryCommand]) *IndexDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg IndexDirectoryCommand) error {
		if corpus == nil {
			return ErrCorpusServiceRequired
		}
		if index == nil {
			return ErrIndexServiceRequired
		}

		docs, err := corpus.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern:    msg.Pattern,
			RenderHTML: true,
		})
		if err != nil {
			return err
		}

		result, err := index.Sync(ctx, docs, interfaces.SyncOptions{
			DryRun:         msg.DryRun,
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": len(result.CreatedIDs),
				"updated_count": len(result.UpdatedIDs),
				"skipped_count": len(result.SkippedIDs),
				"deleted_count": result.Deleted,
				"dry_run":       msg.DryRun,
			}).Info("corpus.command.index_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[IndexDirectoryCommand]{
		commands.WithLogger[IndexDirectoryCommand](baseLogger),
		commands.WithOperation[IndexDirectoryCommand](indexOperation),
		commands.WithMessageFields(func(msg IndexDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IndexDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander.
func (h *IndexDirectoryHandler) Execute(ctx context.Context, msg IndexDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateDirectoryHandler runs a parse-and-validate pass over a directory.
// The corpus service carries the metadata validator, so failures surface
// with the offending file path and validation issues attached.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied corpus service.
func NewValidateDirectoryHandler(corpus interfaces.CorpusService, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		if corpus == nil {
			return ErrCorpusServiceRequired
		}

		docs, err := corpus.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern: msg.Pattern,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"document_count": len(docs),
		}).Info("corpus.command.validate_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander.
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
