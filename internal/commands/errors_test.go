package commands

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/schema"
)

func TestWrapExecuteErrorMapsMalformedFrontMatter(t *testing.T) {
	cause := fmt.Errorf("corpus load posts/bad.md: %w", frontmatter.ErrMalformed)

	err := wrapExecuteError(cause)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if got := textCode(t, err); got != frontMatterMalformedCode {
		t.Fatalf("expected text code %s, got %s", frontMatterMalformedCode, got)
	}
	if !errors.Is(err, frontmatter.ErrMalformed) {
		t.Fatalf("cause must stay reachable, got %v", err)
	}
}

func TestWrapExecuteErrorMapsSchemaValidation(t *testing.T) {
	cause := fmt.Errorf("corpus validate posts/bad.md: %w", &schema.ValidationError{})

	err := wrapExecuteError(cause)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if got := textCode(t, err); got != metaValidationFailedCode {
		t.Fatalf("expected text code %s, got %s", metaValidationFailedCode, got)
	}
}

func TestWrapExecuteErrorDefaultsToCommandCategory(t *testing.T) {
	err := wrapExecuteError(errors.New("boom"))
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if got := textCode(t, err); got != commandExecuteFailed {
		t.Fatalf("expected text code %s, got %s", commandExecuteFailed, got)
	}
}

func textCode(t *testing.T, err error) string {
	t.Helper()
	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected a categorised error, got %v", err)
	}
	return wrapped.TextCode
}
