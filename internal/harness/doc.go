// Package harness executes YAML-defined operator scenarios against the
// order aggregate.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: append
//	    event:
//	      type: order.created
//	      order_id: O1
//	  - op: append
//	    event:
//	      type: order.item_added
//	      item_id: sku-1
//	      name: widget
//	      price: 10.50
//	      qty: 2
//	  - op: validate
//	assertions:
//	  - type: total
//	    value: 21.00
//	  - type: log_length
//	    count: 2
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - prop_equals: Verifies a property carries the given value
//   - log_length: Verifies the event log holds exactly N entries
//   - total: Verifies the projected order total
//   - status: Verifies the projected order status
//   - validation_result: Verifies the validationResult property
//
// # Deterministic Testing
//
// Scenario files are validated against an embedded CUE schema before
// strict YAML decoding, so typos fail with a schema position rather
// than a zero-value surprise at run time.
//
// Execution is deterministic: the runner owns a fixed-base clock and a
// sequential event id generator, so the same scenario always produces
// a byte-identical canonical trace for golden comparison.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/lifecycle.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.NewRunner().Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, failure := range result.Failures {
//	    log.Println(failure)
//	}
package harness
