package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
	"entity-onboard/internal/serialize"
	"entity-onboard/internal/validation"
)

// RunExport handles the 'export' command. It validates the submission, then
// writes the serialized record as JSON or four-column CSV.
func RunExport(ctx context.Context, rs *rules.Ruleset, reg *refdata.Registry, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	file := fs.String("file", "", "Path to the YAML submission file (required)")
	format := fs.String("format", "json", "Output format: json or csv")
	out := fs.String("out", "", "Output file (default: stdout)")
	showManifest := fs.Bool("manifest", false, "Print the attachment manifest to stderr")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("error: --file flag is required")
	}
	if *format != "json" && *format != "csv" {
		return fmt.Errorf("error: unknown format %q (expected json or csv)", *format)
	}

	et, answers, err := LoadSubmission(rs, *file)
	if err != nil {
		return err
	}

	problems, err := validation.New(rs, reg).Validate(et, answers)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		return fmt.Errorf("submission has %d problem(s), not exporting", len(problems))
	}

	record, manifest, err := serialize.New(rs, reg).Serialize(et, answers)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "csv":
		if err := serialize.WriteCSV(w, record); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode output record: %w", err)
		}
	}

	if *showManifest {
		fmt.Fprintf(os.Stderr, "Attachments (%d):\n", len(manifest))
		for _, att := range manifest {
			original := ""
			if att.File != nil {
				original = att.File.Filename
			}
			fmt.Fprintf(os.Stderr, "  %s  (from %s)\n", att.Filename, original)
		}
	}
	return nil
}
