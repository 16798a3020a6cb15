package config

import (
	"encoding/json"
	"fmt"
	"sync"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"
)

func stringArray() *gjsonschema.Schema {
	return &gjsonschema.Schema{
		Type:  "array",
		Items: &gjsonschema.Schema{Type: "string"},
	}
}

func stringEnum(values []string) *gjsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &gjsonschema.Schema{Type: "string", Enum: enum}
}

func checkTableSchema() *gjsonschema.Schema {
	minLineLength := 1.0
	return &gjsonschema.Schema{
		Type: "object",
		Properties: map[string]*gjsonschema.Schema{
			"select":          stringArray(),
			"ignore":          stringArray(),
			"extend-select":   stringArray(),
			"line-length":     {Type: "integer", Minimum: &minLineLength},
			"file-extensions": stringArray(),
			"exclude":         stringArray(),
			"extend-exclude":  stringArray(),
			"fix":             {Type: "boolean"},
			"unsafe-fixes":    {Type: "boolean"},
			"show-fixes":      {Type: "boolean"},
			"fix-only":        {Type: "boolean"},
			"preview":         {Type: "boolean"},
			"output-format":   stringEnum(OutputFormats),
			"progress-bar":    stringEnum(ProgressBars),
		},
		// false: no other keys are accepted.
		AdditionalProperties: &gjsonschema.Schema{Not: &gjsonschema.Schema{}},
	}
}

var (
	checkSchemaOnce sync.Once
	checkSchema     *gjsonschema.Resolved
	errCheckSchema  error
)

func resolvedCheckSchema() (*gjsonschema.Resolved, error) {
	checkSchemaOnce.Do(func() {
		checkSchema, errCheckSchema = checkTableSchema().Resolve(&gjsonschema.ResolveOptions{})
	})
	return checkSchema, errCheckSchema
}

// validateTable checks the shape of one layer of settings: a [check] table
// from a file or the map of CLI overrides.
func validateTable(source string, raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	resolved, err := resolvedCheckSchema()
	if err != nil {
		return fmt.Errorf("resolve settings schema: %w", err)
	}
	value, err := toJSONValue(raw)
	if err != nil {
		return &Error{Source: source, Err: err}
	}
	if err := resolved.Validate(value); err != nil {
		return &Error{Source: source, Field: firstInvalidKey(raw), Err: err}
	}
	return nil
}

// firstInvalidKey points at the first key that fails validation on its own,
// so the error names a field even when the validator message does not.
func firstInvalidKey(raw map[string]any) string {
	resolved, err := resolvedCheckSchema()
	if err != nil {
		return ""
	}
	for _, key := range sortedKeys(raw) {
		value, err := toJSONValue(map[string]any{key: raw[key]})
		if err != nil {
			return key
		}
		if resolved.Validate(value) != nil {
			return key
		}
	}
	return ""
}

// toJSONValue normalizes TOML and CLI values (int64, []string, ...) into the
// JSON value space the validator works on.
func toJSONValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
