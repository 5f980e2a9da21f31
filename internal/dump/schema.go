package dump

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["ranges"],
  "additionalProperties": false,
  "properties": {
    "subject": {"type": "string"},
    "ranges": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/range"}}
  },
  "$defs": {
    "range": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "size": {"type": "integer", "minimum": 0, "maximum": 54},
        "slots": {"type": "array", "items": {"$ref": "#/$defs/slot"}}
      }
    },
    "slot": {
      "type": "object",
      "required": ["index", "material"],
      "additionalProperties": false,
      "properties": {
        "index": {"type": "integer", "minimum": 0},
        "material": {"type": "string", "minLength": 1},
        "amount": {"type": "integer", "minimum": 0},
        "title": {"type": "string"},
        "author": {"type": "string"},
        "pages": {"type": "array", "items": {"type": "string"}},
        "contents": {"$ref": "#/$defs/range"}
      }
    }
  }
}`

var documentSchema = mustCompile(schemaJSON)

// ValidationError wraps a JSON Schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func mustCompile(raw string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("dump: parse schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("document.json", doc); err != nil {
		panic(fmt.Sprintf("dump: add schema resource: %v", err))
	}
	s, err := c.Compile("document.json")
	if err != nil {
		panic(fmt.Sprintf("dump: compile schema: %v", err))
	}
	return s
}
