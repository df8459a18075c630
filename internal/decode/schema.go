// internal/decode/schema.go
package decode

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema constrains the shape of one dump line. additionalProperties
// stays open: unknown keys are the forward-compatibility escape hatch.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []string{"index", "output"},
	"properties": map[string]any{
		"index": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"src_tokens": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer", "minimum": 0},
		},
		"src_features": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number"},
			},
		},
		"output": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"reference": map[string]any{"type": "string"},
		"attention": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			},
		},
		"segmentation": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer"},
		},
		"fields": map[string]any{"type": "object"},
	},
	"additionalProperties": true,
}

var recordSchemaLoader = gojsonschema.NewGoLoader(recordSchema)

// validateRecord checks one raw dump line against the record schema.
func validateRecord(line []byte) error {
	result, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewBytesLoader(line))
	if err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("invalid record: %s", strings.Join(issues, "; "))
}
