// Package validation checks business payloads against JSON schemas before
// they are decoded, so that clients get field-level reasons.
package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one rejected field; Field is "(root)" for body-level problems.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

const businessProperties = `
	"name":          {"type": "string", "minLength": 1},
	"region":        {"type": "string"},
	"sector":        {"type": "string"},
	"formality":     {"type": "string"},
	"digital_score": {"type": "integer", "minimum": 0, "maximum": 100},
	"premium":       {"type": "boolean"},
	"verified":      {"type": "boolean"},
	"claimed":       {"type": "boolean"}
`

const businessCreateSchema = `{
	"type": "object",
	"properties": {` + businessProperties + `},
	"required": ["name"],
	"additionalProperties": false
}`

const businessUpdateSchema = `{
	"type": "object",
	"properties": {` + businessProperties + `},
	"additionalProperties": false
}`

var (
	createSchema = mustCompile(businessCreateSchema)
	updateSchema = mustCompile(businessUpdateSchema)
)

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("validation: bad schema: %v", err))
	}
	return s
}

// ValidateBusinessCreate checks a raw POST /business body. A non-nil error
// means the body is not JSON at all.
func ValidateBusinessCreate(raw []byte) ([]FieldError, error) {
	return validate(createSchema, raw)
}

// ValidateBusinessUpdate checks a raw PUT /business/{id} body.
func ValidateBusinessUpdate(raw []byte) ([]FieldError, error) {
	return validate(updateSchema, raw)
}

func validate(schema *gojsonschema.Schema, raw []byte) ([]FieldError, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	out := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		switch desc.Type() {
		case "required", "additional_property_not_allowed":
			if p, ok := desc.Details()["property"].(string); ok && p != "" {
				field = p
			}
		}
		out = append(out, FieldError{Field: field, Reason: desc.Description()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, nil
}
