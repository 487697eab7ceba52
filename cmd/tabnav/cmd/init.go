package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/tabnav/cmd/tabnav/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a tabnav.yaml",
		Long: `Create a tabnav.yaml project file.

The first argument is the project directory (created if missing). The
remaining arguments are the tab route names, in display order. The first
route is focused initially.

The navigator name is taken from the go.mod module path when the
directory has one, otherwise from the directory name.

Examples:
  tabnav init . Home Search Profile
  tabnav init ./nav Inbox Archive`,
		Usage: "tabnav init <directory> <route> [route...]",
		Run:   runInit,
	})
}

func runInit(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("directory and at least one route are required\n\nUsage: tabnav init <directory> <route> [route...]")
	}

	dir := filepath.Clean(args[0])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	cfg := &config.Config{
		Name: config.DefaultName(dir),
		Navigator: config.NavigatorConfig{
			Routes: args[1:],
		},
	}

	path, err := config.Write(dir, cfg)
	if err != nil {
		return err
	}

	// Reject bad route lists before the user starts relying on the file.
	if _, err := config.Resolve(dir); err != nil {
		_ = os.Remove(path)
		return err
	}

	fmt.Fprintf(stdout, "Created %s with %d routes\n", path, len(cfg.Navigator.Routes))
	return nil
}
