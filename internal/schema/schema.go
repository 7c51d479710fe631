// Package schema validates parsed front-matter against a JSON Schema so a
// corpus can enforce required keys and value shapes at load time.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/DeadKai/go-content/pkg/interfaces"
)

var (
	ErrSchemaInvalid = errors.New("schema: definition invalid")
	ErrValidation    = errors.New("schema: metadata validation failed")
)

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// ValidationError surfaces validation issues with schema-aware context.
type ValidationError struct {
	Issues []Issue
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return validationErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return collectIssues(schemaErr)
	}
	return []Issue{{Message: err.Error()}}
}

// Validator applies a compiled JSON Schema to document metadata.
type Validator struct {
	compiled *jsonschema.Schema
}

var _ interfaces.MetaValidator = (*Validator)(nil)

// Compile builds a Validator from a JSON Schema definition. The schema is
// compiled once so per-document validation stays cheap.
func Compile(definition map[string]any) (*Validator, error) {
	if len(definition) == 0 {
		return nil, fmt.Errorf("%w: empty definition", ErrSchemaInvalid)
	}
	compiled, err := compileSchema(definition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{compiled: compiled}, nil
}

// CompileJSON builds a Validator from raw JSON Schema bytes.
func CompileJSON(data []byte) (*Validator, error) {
	definition := map[string]any{}
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return Compile(definition)
}

// ValidateMeta checks metadata against the schema. Timestamps are presented
// to the schema as RFC 3339 strings so `format: date-time` constraints apply.
func (v *Validator) ValidateMeta(meta interfaces.Meta) error {
	if v == nil || v.compiled == nil {
		return nil
	}

	payload := make(map[string]any, len(meta))
	for key, value := range meta {
		if ts, ok := value.(time.Time); ok {
			payload[key] = ts.Format(time.RFC3339)
			continue
		}
		payload[key] = value
	}

	if err := v.compiled.Validate(payload); err != nil {
		return &ValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(definition map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(definition)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("meta.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("meta.json")
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
