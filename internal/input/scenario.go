package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// scenarioSchema is the contract for saved scenario files. Validation runs
// before decoding so a malformed file fails with a field-level message
// instead of a half-populated struct.
const scenarioSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "mode": {"type": "string", "enum": ["forecast", "horizon"]},
    "throughput": {
      "type": "array",
      "items": {"type": "integer", "minimum": 0},
      "minItems": 1
    },
    "scope_min": {"type": "integer", "minimum": 0},
    "scope_max": {"type": "integer", "minimum": 0},
    "total_scope": {"type": "integer", "minimum": 0},
    "actuals": {
      "type": "array",
      "items": {"type": "integer", "minimum": 0}
    },
    "trials": {"type": "integer", "minimum": 1},
    "horizon": {"type": "integer", "minimum": 1}
  },
  "required": ["mode", "throughput"],
  "additionalProperties": false
}`

var compiledScenarioSchema = jsonschema.MustCompileString("scenario.schema.json", scenarioSchema)

// Scenario is a saved forecast request: the throughput baseline plus the
// scope or progress parameters for one of the two modes.
type Scenario struct {
	Mode       string `json:"mode"`
	Throughput []int  `json:"throughput"`
	ScopeMin   int    `json:"scope_min"`
	ScopeMax   int    `json:"scope_max"`
	TotalScope int    `json:"total_scope"`
	Actuals    []int  `json:"actuals"`
	Trials     int    `json:"trials"`
	Horizon    int    `json:"horizon"`
}

// LoadScenario reads and schema-validates a scenario JSON file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario validates raw JSON against the scenario schema and decodes it.
func ParseScenario(raw []byte) (*Scenario, error) {
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("scenario is not valid JSON: %w", err)
	}
	if err := compiledScenarioSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("scenario failed schema validation: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if s.Mode == "forecast" && s.ScopeMax < s.ScopeMin {
		return nil, fmt.Errorf("scenario scope_max %d is below scope_min %d", s.ScopeMax, s.ScopeMin)
	}
	return &s, nil
}
