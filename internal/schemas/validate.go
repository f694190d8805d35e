// Package schemas provides JSON Schema validation for incoming receipt documents.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed receipt.schema.json
var receiptSchema string

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateReceipt validates a raw JSON receipt document against the embedded
// receipt schema. It enforces required fields, rejects unknown fields at the
// receipt and item level, and checks the retailer/price/total/description
// patterns along with the date and time shapes. A nil return means the
// document is structurally well-formed; semantic checks (real calendar date,
// valid time of day) happen in the types package.
func ValidateReceipt(document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(receiptSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Malformed JSON documents surface here rather than as field errors.
		return &ValidationError{Errors: []FieldError{
			{Field: "(document)", Message: err.Error()},
		}}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultError := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultError.Field(),
			Message: resultError.Description(),
		})
	}
	return ve
}
