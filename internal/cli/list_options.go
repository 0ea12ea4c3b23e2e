package cli

import (
	"context"
	"flag"
	"fmt"

	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
)

// RunListOptions handles the 'list-options' command. Without --list it shows
// the available controlled lists and entity types.
func RunListOptions(ctx context.Context, reg *refdata.Registry, args []string) error {
	fs := flag.NewFlagSet("list-options", flag.ExitOnError)
	list := fs.String("list", "", "Controlled list to show options for")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *list == "" {
		fmt.Println("Controlled lists:")
		for _, name := range reg.Lists() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("Entity types:")
		for _, et := range rules.EntityTypes() {
			fmt.Printf("  %-24s %s\n", string(et), et.Label())
		}
		return nil
	}

	options, err := reg.Options(*list)
	if err != nil {
		return err
	}
	fmt.Printf("Options for %s:\n", *list)
	for _, opt := range options {
		fmt.Printf("  %-16s %s\n", opt.Code, opt.Label)
	}
	return nil
}
