// Package schemas provides JSON Schema validation for structured provider output.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/yvoderooij/preptalk-curriculum/schemas"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks JSON content against a named embedded schema.
// Returns nil when the document is valid, a *ValidationError when the
// document fails validation, and a *SchemaLoadError when the schema itself
// cannot be loaded or compiled.
func Validate(schemaName, jsonContent string) error {
	schemaContent, err := schemafiles.Get(schemaName)
	if err != nil {
		return &SchemaLoadError{
			Schema:  schemaName,
			Message: "schema not found",
			Cause:   err,
		}
	}
	return ValidateContent(schemaName, schemaContent, jsonContent)
}

// ValidateContent checks JSON content against schema content directly.
func ValidateContent(schemaName, schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Schema:  schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: schemaName,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
