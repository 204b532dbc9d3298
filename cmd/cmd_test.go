package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/truth"
	"github.com/gnoswap-labs/truth/internal/config"
)

// run executes the root command with args and returns its output. Flag
// variables are package globals, so these tests do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile = ""
		vocabFormat = "text"
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVocabText(t *testing.T) {
	out, err := run(t, "vocab", "string")
	require.NoError(t, err)

	assert.Contains(t, out, "string:\n")
	assert.Contains(t, out, "  HasLength\n")
	assert.Contains(t, out, "  ContainsMatch\n")
	assert.NotContains(t, out, "WasCalled")
}

func TestVocabYAML(t *testing.T) {
	out, err := run(t, "vocab", "--format", "yaml")
	require.NoError(t, err)

	var groups []truth.VocabularyGroup
	require.NoError(t, yaml.Unmarshal([]byte(out), &groups))
	assert.Equal(t, truth.Vocabulary(), groups)
}

func TestVocabErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown capability", []string{"vocab", "nonsense"}, `unknown capability "nonsense"`},
		{"unknown format", []string{"vocab", "--format", "json"}, `unknown format "json"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := run(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created/updated: "+path)

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestConfigPrintsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lifecycle: warn\ncolor: never\n"), 0o644))

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)

	var c config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &c))
	assert.Equal(t, config.LifecycleWarn, c.Lifecycle)
	assert.Equal(t, config.ColorNever, c.Color)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lifecycle: sometimes\n"), 0o644))

	_, err := run(t, "config", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lifecycle mode")
}
