package extraction

// extractionSchema is the JSON Schema the model response must satisfy
// before it is accepted. Validation failures downgrade to an empty
// requirement list rather than failing the job.
const extractionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "specs"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "quantity": {"type": "number"},
          "specs": {
            "type": "object",
            "additionalProperties": {"type": "string"}
          }
        }
      }
    }
  }
}`
