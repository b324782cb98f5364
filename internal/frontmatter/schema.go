package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// metadataSchema constrains the well-known keys. Unknown keys are left
// unconstrained; they pass through to Extra untouched.
const metadataSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"type": {"type": "string"},
		"status": {"type": "string"},
		"author": {"type": "string"},
		"description": {"type": "string"},
		"version": {"type": ["string", "number"]},
		"created": {"type": "string"},
		"updated": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`

var compiledSchema = mustCompile("frontmatter.json", metadataSchema)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		panic(err)
	}
	return compiled
}

type schemaIssue struct {
	Key     string
	Message string
}

// checkSchema validates the decoded mapping against the metadata schema
// and reports one issue per violated leaf, keyed by the offending
// top-level key.
func checkSchema(raw map[string]any) []schemaIssue {
	payload, ok := jsonify(raw).(map[string]any)
	if !ok {
		return nil
	}
	err := compiledSchema.Validate(payload)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	var issues []schemaIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			if key := topLevelKey(node.InstanceLocation); key != "" {
				issues = append(issues, schemaIssue{
					Key:     key,
					Message: strings.TrimSpace(node.Message),
				})
			}
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	sortIssues(issues)
	return issues
}

func topLevelKey(instanceLocation string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(instanceLocation), "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// jsonify converts YAML-decoded values into the JSON value shapes the
// schema validator accepts: string-keyed maps, []any, float64 numbers.
func jsonify(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonify(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = jsonify(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = jsonify(t[i])
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
