package cmd

import (
	"fmt"

	"github.com/go-drift/tabnav/pkg/navigation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay actions against a navigator",
		Long: `Replay an action script and print the outcome of each action.

The script is a YAML or JSON list of records:

  - type: NAVIGATE
    payload: {name: Settings}
  - type: GO_BACK

Each line of output shows the action, whether it was handled, and the
focused route afterwards. The final state is printed as a snapshot.

Flags:
  --state FILE    Start from this snapshot instead of a fresh state
  --resume        Start from the project's saved state file, if any
  --save          Write the final state to the project's state file`,
		Usage: "tabnav replay <script> [--state FILE] [--resume] [--save]",
		Run:   runReplay,
	})
}

func runReplay(args []string) error {
	statePath, args, err := optionValue(args, "--state")
	if err != nil {
		return err
	}
	resume, args := hasFlag(args, "--resume")
	save, args := hasFlag(args, "--save")
	if len(args) != 1 {
		return fmt.Errorf("exactly one script is required\n\nUsage: tabnav replay <script> [--state FILE] [--resume] [--save]")
	}

	cfg, err := resolveProject()
	if err != nil {
		return err
	}
	if statePath == "" && resume && fileExists(cfg.StateFile) {
		statePath = cfg.StateFile
	}

	actions, err := readActions(args[0])
	if err != nil {
		return err
	}

	controller, err := newController(cfg, statePath)
	if err != nil {
		return err
	}

	for i, action := range actions {
		handled, err := controller.Dispatch(action)
		if err != nil {
			return fmt.Errorf("action %d (%s): %w", i, describe(action), err)
		}
		status := "not handled"
		if handled {
			status = "handled"
		}
		focused, _ := controller.State().Focused()
		fmt.Fprintf(stdout, "%3d  %-24s %-12s -> %s (index %d)\n", i, describe(action), status, focused.Name, controller.Index())
	}

	fmt.Fprintln(stdout)
	if err := controller.Snapshot(stdout, cfg.Format); err != nil {
		return err
	}

	if save {
		if err := writeSnapshot(cfg.StateFile, controller.State(), cfg.Format); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		fmt.Fprintf(stdout, "Saved %s\n", cfg.StateFile)
	}
	return nil
}

func describe(action navigation.Action) string {
	switch a := action.(type) {
	case navigation.JumpToAction:
		return fmt.Sprintf("%s %s", a.ActionType(), a.Name)
	case navigation.NavigateAction:
		return fmt.Sprintf("%s %s", a.ActionType(), a.Name)
	case navigation.ResetAction:
		if a.Key != "" {
			return fmt.Sprintf("%s key=%s", a.ActionType(), a.Key)
		}
		return string(a.ActionType())
	default:
		return string(action.ActionType())
	}
}
