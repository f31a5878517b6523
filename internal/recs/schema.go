package recs

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSON schemas for the two provider exchanges. Both are compiled once at
// startup; a schema that fails to compile is a programming error.

const intentSchemaJSON = `{
  "type": "object",
  "properties": {
    "location": {"type": ["string", "null"]},
    "cuisines": {"type": ["array", "null"], "items": {"type": "string"}},
    "min_rating": {"type": ["number", "null"], "minimum": 0, "maximum": 5},
    "max_rating": {"type": ["number", "null"], "minimum": 0, "maximum": 5},
    "min_price": {"type": ["integer", "null"], "minimum": 0},
    "max_price": {"type": ["integer", "null"], "minimum": 0},
    "online_order": {"type": ["boolean", "null"]},
    "table_booking": {"type": ["boolean", "null"]},
    "buffet": {"type": ["boolean", "null"]},
    "cafe": {"type": ["boolean", "null"]}
  },
  "additionalProperties": false
}`

const rerankSchemaJSON = `{
  "type": "object",
  "required": ["ranking"],
  "properties": {
    "ranking": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "score"],
        "properties": {
          "id": {"type": "integer"},
          "score": {"type": "number", "minimum": 0, "maximum": 10},
          "reason": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	intentSchema = mustCompileSchema(intentSchemaJSON)
	rerankSchema = mustCompileSchema(rerankSchemaJSON)
)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

func validateAgainst(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("schema violation: %s", errs[0].String())
		}
		return fmt.Errorf("schema violation")
	}
	return nil
}
