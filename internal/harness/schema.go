package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// validateAgainstSchema checks scenario YAML against the embedded CUE
// schema. Uses the CUE SDK's Go API directly (not CLI subprocess).
func validateAgainstSchema(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", formatCUEError(err))
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Scenario: %w", formatCUEError(err))
	}

	file, err := cueyaml.Extract("scenario.yaml", data)
	if err != nil {
		return fmt.Errorf("extract yaml: %w", formatCUEError(err))
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build yaml: %w", formatCUEError(err))
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError flattens a CUE error list to its first error with
// position info. CUE errors may contain multiple errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return fmt.Errorf("%s: %s", positions[0], first.Error())
	}
	return first
}
