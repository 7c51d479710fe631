package content

import (
	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/index"
	"github.com/DeadKai/go-content/internal/schema"
)

// ErrMalformed reports a front-matter block whose opening delimiter is never
// closed before the end of the document.
var ErrMalformed = frontmatter.ErrMalformed

// ErrValidation reports document metadata rejected by the configured schema.
var ErrValidation = schema.ErrValidation

// ErrSchemaInvalid reports a schema definition that could not be compiled.
var ErrSchemaInvalid = schema.ErrSchemaInvalid

// ErrRecordNotFound reports a missing document in the index.
var ErrRecordNotFound = index.ErrRecordNotFound
