package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/tabnav/cmd/tabnav/internal/config"
	"github.com/go-drift/tabnav/pkg/navigation"
)

// resolveProject loads the project named by --dir, or the nearest one above
// the working directory.
func resolveProject() (*config.Resolved, error) {
	root := projectDir
	if root == "" {
		var err error
		root, err = config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}
	return config.Resolve(root)
}

// newController builds a controller for the project, restoring state from
// the given snapshot file when it is non-empty. A snapshot saved before the
// project's routes changed is reconciled against the current routes.
func newController(cfg *config.Resolved, statePath string) (*navigation.TabController, error) {
	var initial *navigation.State
	if statePath != "" {
		state, err := readSnapshot(statePath)
		if err != nil {
			return nil, err
		}
		initial = state
	}

	return navigation.NewTabController(navigation.NewTabRouter(), navigation.TabControllerConfig{
		RouteNames:       cfg.Routes,
		InitialRouteName: cfg.InitialRoute,
		InitialState:     initial,
		Logger:           slog.Default().With("navigator", cfg.Name),
	})
}

func readSnapshot(path string) (*navigation.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	state, err := navigation.DecodeSnapshot(f, formatForPath(path, navigation.FormatYAML))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

func writeSnapshot(path string, state *navigation.State, format navigation.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := navigation.EncodeSnapshot(f, state, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readActions(path string) ([]navigation.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	actions, err := navigation.DecodeActions(f, formatForPath(path, navigation.FormatYAML))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}

// formatForPath picks a format from the file extension.
func formatForPath(path string, fallback navigation.Format) navigation.Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if format, err := navigation.ParseFormat(ext); err == nil {
		return format
	}
	return fallback
}

// optionValue extracts "--name value" or "--name=value" from args and returns
// the remaining arguments.
func optionValue(args []string, name string) (string, []string, error) {
	var rest []string
	value := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == name:
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		case strings.HasPrefix(arg, name+"="):
			value = strings.TrimPrefix(arg, name+"=")
		default:
			rest = append(rest, arg)
		}
	}
	return value, rest, nil
}

// hasFlag removes a boolean flag from args and reports whether it was present.
func hasFlag(args []string, name string) (bool, []string) {
	var rest []string
	found := false
	for _, arg := range args {
		if arg == name {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
