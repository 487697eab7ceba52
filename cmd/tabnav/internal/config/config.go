// Package config loads the optional tabnav.yaml (or tabnav.toml) project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/tabnav/pkg/navigation"
)

// File names searched by LoadOptional, in order.
const (
	YAMLFile = "tabnav.yaml"
	TOMLFile = "tabnav.toml"
)

// DefaultStateFile is where replay saves snapshots unless configured.
const DefaultStateFile = ".tabnav/state"

// Config represents the optional tabnav project file.
type Config struct {
	Name      string          `yaml:"name,omitempty" toml:"name,omitempty"`
	Navigator NavigatorConfig `yaml:"navigator" toml:"navigator"`
	Output    OutputConfig    `yaml:"output,omitempty" toml:"output,omitempty"`
}

// NavigatorConfig describes the tabs.
type NavigatorConfig struct {
	Routes       []string `yaml:"routes" toml:"routes"`
	InitialRoute string   `yaml:"initialRoute,omitempty" toml:"initialRoute,omitempty"`
}

// OutputConfig controls snapshot encoding.
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" toml:"format,omitempty"`
	StateFile string `yaml:"stateFile,omitempty" toml:"stateFile,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	Source       string
	Name         string
	Routes       []string
	InitialRoute string
	Format       navigation.Format
	StateFile    string
}

// ErrNoConfig reports a directory without a tabnav project file.
var ErrNoConfig = errors.New("no tabnav.yaml or tabnav.toml found")

// LoadOptional reads tabnav.yaml or tabnav.toml if present. It returns an
// empty Config and an empty source path when neither exists.
func LoadOptional(dir string) (*Config, string, error) {
	yamlPath := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(yamlPath)
	if err == nil {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", YAMLFile, err)
		}
		return &cfg, yamlPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to read %s: %w", YAMLFile, err)
	}

	tomlPath := filepath.Join(dir, TOMLFile)
	var cfg Config
	if _, err := toml.DecodeFile(tomlPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to parse %s: %w", TOMLFile, err)
	}
	return &cfg, tomlPath, nil
}

// Resolve loads the project file in dir and applies defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return nil, fmt.Errorf("%w in %s", ErrNoConfig, dir)
	}

	routes := make([]string, 0, len(cfg.Navigator.Routes))
	for _, r := range cfg.Navigator.Routes {
		routes = append(routes, strings.TrimSpace(r))
	}
	if err := validateRoutes(routes); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(source), err)
	}

	initial := strings.TrimSpace(cfg.Navigator.InitialRoute)
	if initial != "" && !slices.Contains(routes, initial) {
		return nil, fmt.Errorf("%s: navigator.initialRoute %q is not one of %v", filepath.Base(source), initial, routes)
	}

	format := navigation.FormatYAML
	if f := strings.TrimSpace(cfg.Output.Format); f != "" {
		format, err = navigation.ParseFormat(f)
		if err != nil {
			return nil, fmt.Errorf("%s: output.format: %w", filepath.Base(source), err)
		}
	}

	stateFile := strings.TrimSpace(cfg.Output.StateFile)
	if stateFile == "" {
		stateFile = DefaultStateFile + "." + format.String()
	}
	if !filepath.IsAbs(stateFile) {
		stateFile = filepath.Join(dir, stateFile)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = DefaultName(dir)
	}

	return &Resolved{
		Root:         dir,
		Source:       source,
		Name:         name,
		Routes:       routes,
		InitialRoute: initial,
		Format:       format,
		StateFile:    stateFile,
	}, nil
}

// Write stores cfg as tabnav.yaml in dir. It refuses to overwrite an
// existing file.
func Write(dir string, cfg *Config) (string, error) {
	path := filepath.Join(dir, YAMLFile)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", YAMLFile, err)
	}
	return path, nil
}

// FindProjectRoot walks up from the current directory to the first directory
// holding a tabnav project file.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{YAMLFile, TOMLFile} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// DefaultName derives a navigator name from the enclosing Go module, falling
// back to the directory name.
func DefaultName(dir string) string {
	base := filepath.Base(dir)
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err == nil {
		if path := modfile.ModulePath(data); path != "" {
			prefix, _, ok := module.SplitPathVersion(path)
			if ok {
				parts := strings.Split(prefix, "/")
				base = parts[len(parts)-1]
			}
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "tabs"
	}
	return base
}

func validateRoutes(routes []string) error {
	if len(routes) == 0 {
		return errors.New("navigator.routes must list at least one route")
	}
	seen := make(map[string]bool, len(routes))
	for i, r := range routes {
		if r == "" {
			return fmt.Errorf("navigator.routes[%d] is empty", i)
		}
		if seen[r] {
			return fmt.Errorf("navigator.routes lists %q twice", r)
		}
		seen[r] = true
	}
	return nil
}
