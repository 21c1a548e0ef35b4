package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines an operator scenario: an ordered list of steps
// applied to a fresh aggregate, plus assertions over the final triple.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps lists the operators to apply, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final triple.
	// Supported types: prop_equals, log_length, total, status,
	// validation_result.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operator application.
type Step struct {
	// Op selects the operator: append, replay, snapshot, normalize,
	// commit, validate.
	Op string `yaml:"op"`

	// Event carries the event for append steps.
	Event *EventSpec `yaml:"event,omitempty"`

	// Keep is the retention bound for commit steps.
	Keep int `yaml:"keep,omitempty"`
}

// EventSpec describes one event in scenario YAML. Only the fields the
// declared type uses are read; Type selects the variant.
type EventSpec struct {
	Type string `yaml:"type"`

	// ID is an optional fixed event id. When empty the runner assigns
	// the next sequential id, keeping traces deterministic either way.
	ID string `yaml:"id,omitempty"`

	OrderID     string  `yaml:"order_id,omitempty"`
	ItemID      string  `yaml:"item_id,omitempty"`
	Name        string  `yaml:"name,omitempty"`
	Price       float64 `yaml:"price,omitempty"`
	Qty         int64   `yaml:"qty,omitempty"`
	Carrier     string  `yaml:"carrier,omitempty"`
	TrackingRef string  `yaml:"tracking_ref,omitempty"`
	Reason      string  `yaml:"reason,omitempty"`
}

// Assertion validates one aspect of the final triple.
type Assertion struct {
	// Type specifies the assertion type:
	// - "prop_equals": property under Key equals Value
	// - "log_length": event log holds exactly Count entries
	// - "total": projected total equals Value
	// - "status": projected status equals Value
	// - "validation_result": validationResult property equals Result
	Type string `yaml:"type"`

	// Key is the property key (used by prop_equals).
	Key string `yaml:"key,omitempty"`

	// Value is the expected value (used by prop_equals, total, status).
	Value any `yaml:"value,omitempty"`

	// Count is the expected log length (used by log_length).
	Count int `yaml:"count,omitempty"`

	// Result is the expected validation outcome (used by
	// validation_result): "PASS" or "FAIL".
	Result string `yaml:"result,omitempty"`
}

// Step op constants.
const (
	OpAppend    = "append"
	OpReplay    = "replay"
	OpSnapshot  = "snapshot"
	OpNormalize = "normalize"
	OpCommit    = "commit"
	OpValidate  = "validate"
)

// Assertion type constants.
const (
	AssertPropEquals       = "prop_equals"
	AssertLogLength        = "log_length"
	AssertTotal            = "total"
	AssertStatus           = "status"
	AssertValidationResult = "validation_result"
)

// LoadScenario reads, schema-validates, and parses a scenario YAML
// file. Returns an error if the file doesn't exist, fails the CUE
// schema, is malformed, contains unknown fields (typos), or is missing
// required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario schema-validates and parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	// CUE schema first: structural errors surface with positions
	if err := validateAgainstSchema(data); err != nil {
		return nil, fmt.Errorf("scenario schema: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks operator-specific requirements the CUE schema
// leaves open.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpAppend:
		if step.Event == nil {
			return fmt.Errorf("steps[%d]: event is required for append", index)
		}
		return validateEventSpec(index, step.Event)
	case OpCommit:
		if step.Keep < 1 {
			return fmt.Errorf("steps[%d]: keep must be >= 1 for commit", index)
		}
	case OpReplay, OpSnapshot, OpNormalize, OpValidate:
		if step.Event != nil {
			return fmt.Errorf("steps[%d]: event is only valid for append", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	return nil
}

// validateEventSpec checks the fields each event type requires.
func validateEventSpec(index int, e *EventSpec) error {
	switch e.Type {
	case "order.created":
		if e.OrderID == "" {
			return fmt.Errorf("steps[%d].event: order_id is required for order.created", index)
		}
	case "order.item_added":
		if e.ItemID == "" {
			return fmt.Errorf("steps[%d].event: item_id is required for order.item_added", index)
		}
		if e.Qty < 1 {
			return fmt.Errorf("steps[%d].event: qty must be >= 1 for order.item_added", index)
		}
	case "order.item_removed":
		if e.ItemID == "" {
			return fmt.Errorf("steps[%d].event: item_id is required for order.item_removed", index)
		}
	case "order.shipped":
		if e.Carrier == "" {
			return fmt.Errorf("steps[%d].event: carrier is required for order.shipped", index)
		}
	case "order.cancelled":
		if e.Reason == "" {
			return fmt.Errorf("steps[%d].event: reason is required for order.cancelled", index)
		}
	case "":
		return fmt.Errorf("steps[%d].event: type is required", index)
	default:
		return fmt.Errorf("steps[%d].event: unknown event type %q", index, e.Type)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertPropEquals:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for prop_equals", index)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for prop_equals", index)
		}
	case AssertLogLength:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for log_length", index)
		}
	case AssertTotal, AssertStatus:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertValidationResult:
		if a.Result != "PASS" && a.Result != "FAIL" {
			return fmt.Errorf("assertions[%d]: result must be PASS or FAIL for validation_result", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
