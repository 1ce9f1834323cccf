// internal/common/validation/project.go
package validation

// ProjectSchema is the wire shape of a catalog record.
var ProjectSchema = MustCompile(`{
  "type": "object",
  "required": ["id", "name", "type", "businessType", "status", "location", "investor",
               "capacity", "manager", "stakeholders", "progress", "contractValue", "paymentReceived"],
  "properties": {
    "id":           {"type": "string", "minLength": 1},
    "name":         {"type": "string", "minLength": 1},
    "type":         {"type": "string", "minLength": 1},
    "businessType": {"type": "string", "enum": ["总包", "设计"]},
    "status":       {"type": "string", "minLength": 1},
    "location":     {"type": "string", "minLength": 1},
    "capacity":     {"type": "string", "minLength": 1},
    "manager":      {"type": "string", "minLength": 1},
    "progress":        {"type": "integer", "minimum": 0, "maximum": 100},
    "contractValue":   {"type": "integer", "minimum": 0},
    "paymentReceived": {"type": "integer", "minimum": 0},
    "investor": {
      "type": "object",
      "required": ["name", "shareholders"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "shareholders": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["name", "type", "percentage"],
            "properties": {
              "name":       {"type": "string", "minLength": 1},
              "percentage": {"type": "string", "pattern": "^[0-9]+%$"}
            }
          }
        }
      }
    },
    "stakeholders": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "role", "phone", "influence"],
        "properties": {
          "id":        {"type": "string", "minLength": 1},
          "influence": {"type": "string", "enum": ["High", "Medium", "Low"]},
          "children": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["gender", "age", "status"],
              "properties": {"age": {"type": "integer", "minimum": 1}}
            }
          }
        }
      }
    }
  }
}`)

// ChangeRequestInputSchema validates submit-change-request job variables.
var ChangeRequestInputSchema = MustCompile(`{
  "type": "object",
  "required": ["projectId", "applicant", "change"],
  "properties": {
    "projectId": {"type": "string", "minLength": 1},
    "applicant": {"type": "string", "minLength": 1},
    "change": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {"type": "string", "enum": ["progress", "status", "payment"]}
      }
    }
  }
}`)
