// Package schemas provides JSON Schema validation for the fixed wire shapes
// exchanged with the generation capability. Field names in these schemas are
// part of the prompt contract; a recovered response that deviates from its
// shape is rejected before unmarshaling.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Shape names one of the fixed wire shapes
type Shape string

// Wire shapes requested from the generation capability
const (
	Resume        Shape = "resume"
	Job           Shape = "job"
	Company       Shape = "company"
	Role          Shape = "role"
	SkillInsights Shape = "skill_insights"
	Roadmap       Shape = "roadmap"
	Projects      Shape = "projects"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Shape  Shape
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("response does not match %s shape:", e.Shape))
	for _, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing a schema itself
type SchemaLoadError struct {
	Shape   Shape
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Shape, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Shape, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks a JSON document against the embedded schema for a shape.
// Missing keys are allowed (they default to zero values downstream); only
// wrong types and wrong structures fail.
func Validate(shape Shape, document string) error {
	data, err := schemaFiles.ReadFile(string(shape) + ".schema.json")
	if err != nil {
		return &SchemaLoadError{Shape: shape, Message: "schema file not found", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(data),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return &SchemaLoadError{Shape: shape, Message: "validation could not run", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Shape: shape}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
