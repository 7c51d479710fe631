package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/schema"
)

// Text codes attached to command-boundary failures. Corpus parse and
// metadata schema failures keep their own codes so callers can react to
// them without unwrapping.
const (
	frontMatterMalformedCode = "FRONTMATTER_MALFORMED"
	metaValidationFailedCode = "META_VALIDATION_FAILED"
	commandValidationCode    = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled   = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout    = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode  = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed     = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError categorises failures escaping a command function.
// Malformed front matter and schema-rejected metadata are document
// problems, not execution problems: they surface as validation-category
// errors carrying their domain text codes.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, frontmatter.ErrMalformed):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "front matter block is not terminated").
			WithTextCode(frontMatterMalformedCode)
	case errors.Is(err, schema.ErrValidation):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "document metadata rejected").
			WithTextCode(metaValidationFailedCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(commandExecuteFailed)
	}
}
