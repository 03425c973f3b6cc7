package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ladder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// clearEnv keeps the process environment from leaking into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LADDER_DICTIONARY", "LADDER_COMMON_WORDS", "LADDER_STORE_PATH", "LADDER_SEED", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
dictionary: gs://dictionaries/4-letter.json
common_words: https://example.com/common.txt
port: 9090
store:
  path: /var/lib/ladder
seed: 7
random_timeout: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gs://dictionaries/4-letter.json", cfg.Dictionary)
	assert.Equal(t, "https://example.com/common.txt", cfg.CommonWords)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/var/lib/ladder", cfg.Store.Path)
	assert.True(t, cfg.Store.Enabled())
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 2*time.Second, cfg.RandomTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "dictionary: 4-letter.json\n"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RandomTimeout)
	assert.False(t, cfg.Store.Enabled())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("LADDER_DICTIONARY", "store://5")
	t.Setenv("LADDER_STORE_PATH", "/tmp/ladder")
	t.Setenv("PORT", "8181")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "store://5", cfg.Dictionary)
	assert.Equal(t, "/tmp/ladder", cfg.Store.Path)
	assert.Equal(t, 8181, cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"missing dictionary", "port: 8080\n", nil},
		{"port out of range", "dictionary: a.json\nport: 70000\n", nil},
		{"not yaml", "dictionary: [\n", nil},
		{"negative random timeout", "dictionary: a.json\nrandom_timeout: -1s\n", nil},
		{"bad seed", "dictionary: a.json\n", map[string]string{"LADDER_SEED": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Dictionary = "4-letter.json"
	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
