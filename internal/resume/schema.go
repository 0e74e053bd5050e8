package resume

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the JSON Schema every persisted or imported document must
// satisfy. It is intentionally permissive about content (free text) and strict
// about shape.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["personal", "experience", "education", "skills"],
  "properties": {
    "personal": {
      "type": "object",
      "required": ["fullName", "email"],
      "properties": {
        "fullName": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "location": {"type": "string"},
        "title": {"type": "string"},
        "website": {"type": "string"},
        "linkedin": {"type": "string"}
      }
    },
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "position"],
        "properties": {
          "id": {"type": "string"},
          "company": {"type": "string"},
          "position": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "current": {"type": "boolean"},
          "description": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution", "degree"],
        "properties": {
          "id": {"type": "string"},
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "field": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "current": {"type": "boolean"},
          "description": {"type": "string"}
        }
      }
    },
    "skills": {
      "type": "object",
      "properties": {
        "technical": {"type": "array", "items": {"type": "string"}},
        "soft": {"type": "array", "items": {"type": "string"}},
        "languages": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name"],
            "properties": {
              "name": {"type": "string"},
              "level": {"type": "string"}
            }
          }
        }
      }
    },
    "summary": {"type": "string"},
    "language": {"type": "string"}
  }
}`

// SchemaError aggregates the field-level problems found by schema validation.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("document validation failed:\n")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateDocument checks a document against the JSON schema. It is used on
// the CV-import path and before a finished document is persisted.
func ValidateDocument(doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return ValidateDocumentJSON(raw)
}

// ValidateDocumentJSON validates raw document JSON against the schema.
func ValidateDocumentJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}
