package cli

import (
	"context"
	"flag"
	"fmt"

	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
	"entity-onboard/internal/validation"
)

// RunValidate handles the 'validate' command.
func RunValidate(ctx context.Context, rs *rules.Ruleset, reg *refdata.Registry, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	file := fs.String("file", "", "Path to the YAML submission file (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("error: --file flag is required")
	}

	et, answers, err := LoadSubmission(rs, *file)
	if err != nil {
		return err
	}

	engine := validation.New(rs, reg)
	problems, err := engine.Validate(et, answers)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if len(problems) == 0 {
		fmt.Printf("Submission is valid (%s).\n", et.Label())
		return nil
	}

	fmt.Printf("Submission has %d problem(s):\n", len(problems))
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	return fmt.Errorf("submission failed validation")
}
