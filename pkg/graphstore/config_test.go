package graphstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angraph/angraph/pkg/errors"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NEO4J_URI", "NEO4J_USER", "NEO4J_DATABASE", "NEO4J_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("NEO4J_PASSWORD", "secret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.Username)
	assert.Empty(t, cfg.Database, "empty database means the driver default")
	assert.Equal(t, "secret", cfg.Password)
}

func TestLoadConfigMissingPassword(t *testing.T) {
	clearStoreEnv(t)

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigMissingPassword),
		"code = %v", errors.GetCode(err))
}

func TestLoadConfigTOMLFile(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("NEO4J_PASSWORD", "secret")

	path := writeTOML(t, "uri = \"bolt://db.internal:7687\"\nusername = \"app\"\ndatabase = \"graph\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://db.internal:7687", cfg.URI)
	assert.Equal(t, "app", cfg.Username)
	assert.Equal(t, "graph", cfg.Database)
}

func TestLoadConfigEnvOverridesTOML(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("NEO4J_URI", "bolt://override:7687")

	path := writeTOML(t, "uri = \"bolt://file:7687\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://override:7687", cfg.URI, "env wins over TOML")
}

func TestLoadConfigBadTOML(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("NEO4J_PASSWORD", "secret")

	_, err := LoadConfig(writeTOML(t, "uri = [not toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig),
		"code = %v", errors.GetCode(err))
}

func TestLoadConfigMissingTOMLFile(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("NEO4J_PASSWORD", "secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err, "a named config file must exist")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode errors.Code
	}{
		{"valid", Config{URI: "bolt://x", Password: "p"}, ""},
		{"missing uri", Config{Password: "p"}, errors.ErrCodeInvalidConfig},
		{"missing password", Config{URI: "bolt://x"}, errors.ErrCodeConfigMissingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{URI: "bolt://host:7687", Username: "neo4j", Password: "hunter2"}
	got := cfg.Redacted()

	assert.NotContains(t, got, "hunter2")
	assert.Contains(t, got, "bolt://host:7687")
	assert.Contains(t, got, "user=neo4j")
	assert.Contains(t, got, "db=default")
}
