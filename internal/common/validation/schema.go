package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateDocument validates document against a JSON schema, reporting every violation.
func ValidateDocument(schema, document interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Code:    re.Type(),
		})
	}
	return out, nil
}

// Err converts an invalid result into an aggregate error.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	var c Collector
	for _, e := range r.Errors {
		c.Addf("%s: %s", e.Field, e.Message)
	}
	if c.Len() == 0 {
		c.Add("document does not match schema")
	}
	return c.Err()
}
