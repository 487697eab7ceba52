package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/tabnav/pkg/navigation"
)

// captureOutput swaps the CLI output streams for buffers for one test.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

func newProject(t *testing.T, routes ...string) string {
	t.Helper()
	dir := t.TempDir()
	args := append([]string{"init", dir}, routes...)
	require.NoError(t, run(args))
	return dir
}

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "actions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunHelpAndVersion(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, run(nil))
	assert.Contains(t, out.String(), "replay")

	out.Reset()
	require.NoError(t, run([]string{"--version"}))
	assert.Contains(t, out.String(), Version)

	out.Reset()
	require.NoError(t, run([]string{"replay", "--help"}))
	assert.Contains(t, out.String(), "tabnav replay <script>")

	err := run([]string{"bogus"})
	assert.EqualError(t, err, "unknown command: bogus")
}

func TestInit(t *testing.T) {
	out, _ := captureOutput(t)
	dir := newProject(t, "Home", "Settings")

	assert.FileExists(t, filepath.Join(dir, "tabnav.yaml"))
	assert.Contains(t, out.String(), "with 2 routes")

	err := run([]string{"init", dir, "Home"})
	assert.ErrorContains(t, err, "already exists")

	dup := t.TempDir()
	err = run([]string{"init", dup, "A", "A"})
	assert.ErrorContains(t, err, "twice")
	assert.NoFileExists(t, filepath.Join(dup, "tabnav.yaml"))
}

func TestNormalize(t *testing.T) {
	out, _ := captureOutput(t)
	dir := newProject(t, "Home", "Settings")
	out.Reset()

	require.NoError(t, run([]string{"--dir", dir, "normalize", "--format", "json"}))
	state, err := navigation.DecodeSnapshot(out, navigation.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, []string{"Home", "Settings"}, state.RouteNames)
	require.NoError(t, state.Validate())
}

func TestNormalizePartialSnapshot(t *testing.T) {
	out, _ := captureOutput(t)
	dir := newProject(t, "Home", "Settings")
	out.Reset()

	partial := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(partial, []byte(`
version: v1.0.0
state:
  index: 1
  routes:
    - {name: Home, key: Home-a}
    - {name: Settings, key: Settings-b}
`), 0o644))

	require.NoError(t, run([]string{"--dir=" + dir, "normalize", "--state", partial}))
	state, err := navigation.DecodeSnapshot(out, navigation.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Index)
	assert.Equal(t, "Settings-b", state.Routes[1].Key)
	assert.NotEmpty(t, state.Key)
}

func TestReplaySaveAndValidate(t *testing.T) {
	out, _ := captureOutput(t)
	dir := newProject(t, "Home", "Settings")
	script := writeScript(t, dir, `
- type: NAVIGATE
  payload: {name: Settings}
- type: NAVIGATE
  payload: {name: Missing}
- type: GO_BACK
- type: PUSH
`)
	out.Reset()

	require.NoError(t, run([]string{"--dir", dir, "replay", script, "--save"}))
	output := out.String()
	assert.Contains(t, output, "NAVIGATE Settings")
	assert.Contains(t, output, "NAVIGATE Missing")
	assert.Contains(t, output, "not handled")
	assert.Contains(t, output, "-> Settings (index 1)")

	stateFile := filepath.Join(dir, ".tabnav", "state.yaml")
	require.FileExists(t, stateFile)

	out.Reset()
	require.NoError(t, run([]string{"--dir", dir, "validate", stateFile}))
	assert.Contains(t, out.String(), "ok (2 routes, focused Settings")

	empty := writeScript(t, dir, "[]\n")
	out.Reset()
	require.NoError(t, run([]string{"--dir", dir, "replay", empty, "--resume"}))
	state, err := navigation.DecodeSnapshot(out, navigation.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Index)
}

func TestReplayResumeAfterConfigChange(t *testing.T) {
	out, _ := captureOutput(t)
	dir := newProject(t, "A", "B")
	stateFile := filepath.Join(dir, ".tabnav", "state.yaml")

	script := writeScript(t, dir, "- type: NAVIGATE\n  payload: {name: B}\n")
	require.NoError(t, run([]string{"--dir", dir, "replay", script, "--save"}))
	saved, err := readSnapshot(stateFile)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tabnav.yaml"), []byte(`
navigator:
  routes: [A, B, C]
`), 0o644))

	script = writeScript(t, dir, "- type: NAVIGATE\n  payload: {name: C}\n")
	out.Reset()
	require.NoError(t, run([]string{"--dir", dir, "replay", script, "--resume", "--save"}))
	assert.Contains(t, out.String(), "-> C (index 2)")
	assert.NotContains(t, out.String(), "not handled")

	state, err := readSnapshot(stateFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, state.RouteNames)
	assert.Equal(t, 2, state.Index)
	assert.Equal(t, saved.Key, state.Key)
	assert.Equal(t, saved.Routes[1], state.Routes[1])
	require.NoError(t, state.Validate())

	out.Reset()
	require.NoError(t, run([]string{"--dir", dir, "validate", stateFile}))
	assert.Contains(t, out.String(), "ok (3 routes, focused C")
}

func TestReplayJumpToMissingFails(t *testing.T) {
	_, errOut := captureOutput(t)
	dir := newProject(t, "Home")
	script := writeScript(t, dir, "- type: JUMP_TO\n  payload: {name: Nowhere}\n")

	err := run([]string{"--dir", dir, "replay", script})
	require.ErrorIs(t, err, navigation.ErrRouteNotFound)
	assert.Contains(t, err.Error(), "JUMP_TO Nowhere")
	assert.Contains(t, errOut.String(), "navigation error")
}

func TestValidateRejectsMismatchedRoutes(t *testing.T) {
	captureOutput(t)
	dir := newProject(t, "Home", "Settings")

	path := filepath.Join(dir, "other.json")
	state := &navigation.State{
		Routes:     []navigation.Route{{Name: "Inbox", Key: "Inbox-1"}},
		RouteNames: []string{"Inbox"},
		Key:        "tab-1",
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, navigation.EncodeSnapshot(f, state, navigation.FormatJSON))
	require.NoError(t, f.Close())

	err = run([]string{"--dir", dir, "validate", path})
	assert.ErrorContains(t, err, "do not match")
}

func TestOptionValue(t *testing.T) {
	value, rest, err := optionValue([]string{"a", "--state", "s.yaml", "b"}, "--state")
	require.NoError(t, err)
	assert.Equal(t, "s.yaml", value)
	assert.Equal(t, []string{"a", "b"}, rest)

	value, _, err = optionValue([]string{"--state=x.json"}, "--state")
	require.NoError(t, err)
	assert.Equal(t, "x.json", value)

	_, _, err = optionValue([]string{"--state"}, "--state")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, navigation.FormatJSON, formatForPath("a/state.json", navigation.FormatYAML))
	assert.Equal(t, navigation.FormatYAML, formatForPath("state.yml", navigation.FormatJSON))
	assert.Equal(t, navigation.FormatYAML, formatForPath("state", navigation.FormatYAML))
}
