package report

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// schemaJSON describes the sections a generated report must contain.
// Only structure is enforced; free-text content is not inspected.
const schemaJSON = `{
  "type": "object",
  "required": ["one_pager", "scope_of_work", "rfp_sections", "data_sheet", "templates"],
  "properties": {
    "one_pager": {
      "type": "object",
      "required": ["project_overview", "financial_requirements", "eligibility_highlights", "important_dates", "risk_analysis"],
      "properties": {
        "project_overview": {"type": "string", "minLength": 1},
        "financial_requirements": {"$ref": "#/definitions/strings"},
        "eligibility_highlights": {"$ref": "#/definitions/strings"},
        "important_dates": {"$ref": "#/definitions/strings"},
        "risk_analysis": {
          "type": "object",
          "required": ["summary"],
          "properties": {"summary": {"type": "string"}}
        }
      }
    },
    "scope_of_work": {
      "type": "object",
      "required": ["project_details", "work_packages"],
      "properties": {
        "project_details": {"type": "object"},
        "work_packages": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
              "id": {"type": "string"},
              "name": {"type": "string"},
              "components": {"type": "array"},
              "dependencies": {"$ref": "#/definitions/strings"}
            }
          }
        },
        "deliverables": {"type": "array"},
        "exclusions": {"$ref": "#/definitions/strings"}
      }
    },
    "rfp_sections": {
      "type": "object",
      "required": ["sections"],
      "properties": {
        "rfp_summary": {
          "type": "object",
          "properties": {
            "total_sections": {"type": "integer", "minimum": 0},
            "total_requirements": {"type": "integer", "minimum": 0}
          }
        },
        "sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["section_number", "section_name", "summary"],
            "properties": {
              "section_number": {"type": "string"},
              "section_name": {"type": "string"},
              "summary": {"type": "string"}
            }
          }
        }
      }
    },
    "data_sheet": {
      "type": "object",
      "properties": {
        "project_information": {"$ref": "#/definitions/items"},
        "contract_details": {"$ref": "#/definitions/items"},
        "financial_details": {"$ref": "#/definitions/items"},
        "technical_summary": {"$ref": "#/definitions/items"},
        "important_dates": {"$ref": "#/definitions/items"}
      }
    },
    "templates": {
      "type": "object",
      "properties": {
        "bid_submission_forms": {"$ref": "#/definitions/templates"},
        "financial_formats": {"$ref": "#/definitions/templates"},
        "technical_documents": {"$ref": "#/definitions/templates"},
        "compliance_formats": {"$ref": "#/definitions/templates"}
      }
    }
  },
  "definitions": {
    "strings": {"type": "array", "items": {"type": "string"}},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "value"],
        "properties": {
          "label": {"type": "string"},
          "value": {"type": "string"},
          "highlight": {"type": "boolean"}
        }
      }
    },
    "templates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "format"],
        "properties": {
          "format": {"enum": ["pdf", "excel", "word"]},
          "mandatory": {"type": "boolean"}
        }
      }
    }
  }
}`

var schema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic("report schema: " + err.Error())
	}
	return s
}

// Validate checks a raw JSON report body against the report schema.
func Validate(data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate report: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("report does not match schema: %s", strings.Join(errs, "; "))
	}
	return nil
}
