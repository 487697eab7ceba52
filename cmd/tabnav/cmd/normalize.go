package cmd

import (
	"fmt"

	"github.com/go-drift/tabnav/pkg/navigation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "normalize",
		Short: "Print a normalized navigation state",
		Long: `Print the state a navigator starts with.

Without --state, a fresh state is built from the configured routes. With
--state, the snapshot is read and any missing routeNames or key are filled
in; everything else is kept as is.

Flags:
  --state FILE       Snapshot to normalize
  --format FORMAT    Output format: json or yaml (default: project format)`,
		Usage: "tabnav normalize [--state FILE] [--format FORMAT]",
		Run:   runNormalize,
	})
}

func runNormalize(args []string) error {
	statePath, args, err := optionValue(args, "--state")
	if err != nil {
		return err
	}
	formatName, args, err := optionValue(args, "--format")
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	cfg, err := resolveProject()
	if err != nil {
		return err
	}

	format := cfg.Format
	if formatName != "" {
		if format, err = navigation.ParseFormat(formatName); err != nil {
			return err
		}
	}

	controller, err := newController(cfg, statePath)
	if err != nil {
		return err
	}
	return controller.Snapshot(stdout, format)
}
