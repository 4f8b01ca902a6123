package growthhttp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// batchSchemaJSON pins the structural contract of the batch endpoint before
// any coercion runs: items must be an array of objects, and the loosely
// typed fields may be numbers or strings.
const batchSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["items"],
  "properties": {
    "standard": {"type": "string"},
    "items": {
      "type": "array",
      "maxItems": 1000,
      "items": {
        "type": "object",
        "required": ["metric", "sex", "age_months", "value"],
        "properties": {
          "metric": {"type": "string"},
          "sex": {"type": ["string", "integer"]},
          "age_months": {"type": ["number", "string"]},
          "value": {"type": ["number", "string"]},
          "stature_cm": {"type": ["number", "string"]}
        }
      }
    }
  }
}`

var batchSchema = jsonschema.MustCompileString("batch.json", batchSchemaJSON)

func validateBatchPayload(raw string) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("request is not valid JSON: %w", err)
	}
	if err := batchSchema.Validate(doc); err != nil {
		return fmt.Errorf("batch request failed validation: %w", err)
	}
	return nil
}
