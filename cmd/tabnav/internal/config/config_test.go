package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/tabnav/pkg/navigation"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, `
name: shop
navigator:
  routes: [Home, " Cart ", Profile]
  initialRoute: Cart
output:
  format: json
`)

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.Name)
	assert.Equal(t, []string{"Home", "Cart", "Profile"}, cfg.Routes)
	assert.Equal(t, "Cart", cfg.InitialRoute)
	assert.Equal(t, navigation.FormatJSON, cfg.Format)
	assert.Equal(t, filepath.Join(dir, ".tabnav/state.json"), cfg.StateFile)
	assert.Equal(t, filepath.Join(dir, YAMLFile), cfg.Source)
}

func TestResolveTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TOMLFile, `
[navigator]
routes = ["Inbox", "Archive"]

[output]
stateFile = "nav.yaml"
`)

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inbox", "Archive"}, cfg.Routes)
	assert.Empty(t, cfg.InitialRoute)
	assert.Equal(t, navigation.FormatYAML, cfg.Format)
	assert.Equal(t, filepath.Join(dir, "nav.yaml"), cfg.StateFile)
	assert.Equal(t, filepath.Base(dir), cfg.Name)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no routes", "navigator:\n  routes: []\n", "at least one route"},
		{"duplicate", "navigator:\n  routes: [A, A]\n", "twice"},
		{"empty name", "navigator:\n  routes: [A, '']\n", "is empty"},
		{"unknown initial", "navigator:\n  routes: [A]\n  initialRoute: B\n", "initialRoute"},
		{"bad format", "navigator:\n  routes: [A]\noutput:\n  format: xml\n", "output.format"},
		{"bad yaml", "navigator: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, YAMLFile, tt.content)
			_, err := Resolve(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveMissing(t *testing.T) {
	_, err := Resolve(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, source, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, source)
	assert.Empty(t, cfg.Navigator.Routes)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Name:      "demo",
		Navigator: NavigatorConfig{Routes: []string{"Home", "Settings"}},
	}

	path, err := Write(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, YAMLFile), path)

	loaded, _, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Write(dir, cfg)
	assert.Error(t, err, "Write should not overwrite an existing file")
}

func TestDefaultName(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Base(dir), DefaultName(dir))

	writeFile(t, dir, "go.mod", "module example.com/acme/storefront/v2\n\ngo 1.24\n")
	assert.Equal(t, "storefront", DefaultName(dir))
}
