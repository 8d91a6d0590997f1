package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// Scenario is a fixture directory holding a configuration, one input file
// and the expected output for it
type Scenario struct {
	Name string
	Dir  string
	// Input is input.<ext>
	Input string
	// Expected is expected.<ext>, the golden file for Input
	Expected string
}

// Config returns the scenario's configuration file
func (s Scenario) Config(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"csstheme.yaml", "csstheme.yml", "csstheme.toml", "csstheme.json"} {
		path := filepath.Join(s.Dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	require.FailNow(t, "scenario has no configuration", s.Name)
	return ""
}

// LoadScenarios lists the directories under fixtures/scenarios
func LoadScenarios(t *testing.T) []Scenario {
	t.Helper()
	root := filepath.Join(FixtureRoot(), "scenarios")
	entries, err := os.ReadDir(root)
	require.NoError(t, err, "Failed to read scenarios")

	var scenarios []Scenario
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		inputs, err := filepath.Glob(filepath.Join(dir, "input.*"))
		require.NoError(t, err)
		require.Len(t, inputs, 1, "scenario %s must have exactly one input file", entry.Name())

		ext := filepath.Ext(inputs[0])
		scenarios = append(scenarios, Scenario{
			Name:     entry.Name(),
			Dir:      dir,
			Input:    inputs[0],
			Expected: filepath.Join(dir, "expected"+ext),
		})
	}
	return scenarios
}

// LoadGoldenFile reads a golden file, or writes got to it when update is set
func LoadGoldenFile(t *testing.T, path, got string, update bool) string {
	t.Helper()
	if update {
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644), "Failed to update golden file")
		return got
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load golden file: %s", path)
	return string(data)
}

// CopyTree copies the regular files under src into dst
func CopyTree(t *testing.T, src, dst string) {
	t.Helper()
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err, "Failed to copy %s", src)
}
