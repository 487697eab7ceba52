package cmd

import (
	"fmt"
	"slices"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check a saved snapshot",
		Long: `Check that a snapshot decodes and is complete.

A complete snapshot has a navigator key, routeNames matching its routes,
unique route keys and an index that addresses a route. When run inside a
project, the snapshot's routeNames must also match the configured routes.`,
		Usage: "tabnav validate <snapshot>",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one snapshot is required\n\nUsage: tabnav validate <snapshot>")
	}

	state, err := readSnapshot(args[0])
	if err != nil {
		return err
	}
	if state.IsPartial() {
		return fmt.Errorf("%s: snapshot is partial (missing key or routeNames); run tabnav normalize --state %s", args[0], args[0])
	}

	if cfg, err := resolveProject(); err == nil {
		if !slices.Equal(state.RouteNames, cfg.Routes) {
			return fmt.Errorf("%s: routeNames %v do not match %s routes %v", args[0], state.RouteNames, cfg.Source, cfg.Routes)
		}
	}

	focused, _ := state.Focused()
	fmt.Fprintf(stdout, "%s: ok (%d routes, focused %s, key %s)\n", args[0], len(state.Routes), focused.Name, state.Key)
	return nil
}
