package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "language: fr\n"))
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 1, cfg.Recommend.MinLevel)
	assert.Equal(t, 6, cfg.Recommend.MaxLevel)
	assert.Equal(t, "127.0.0.1", cfg.Server.Bind)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"Top500", "Top1k", "Top2k", "Top4k", "Top7k", "Top10k"}, cfg.Trie.Legend)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `language: es
storage:
  driver: mysql
  mysql:
    host: db.example.com
    database: trielingual
recommend:
  min_level: 2
  max_level: 4
server:
  port: 9090
`))
	require.NoError(t, err)

	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "mysql", cfg.Storage.Driver)
	assert.Equal(t, "db.example.com", cfg.Storage.MySQL.Host)
	assert.Equal(t, 3306, cfg.Storage.MySQL.Port)
	assert.Equal(t, 2, cfg.Recommend.MinLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadMySQLCredentialsFromEnvironment(t *testing.T) {
	t.Setenv("TRIELINGUAL_MYSQL_USERNAME", "learner")
	t.Setenv("TRIELINGUAL_MYSQL_PASSWORD", "secret")

	cfg, err := Load(writeConfig(t, "language: fr\nstorage:\n  driver: mysql\n"))
	require.NoError(t, err)

	assert.Equal(t, "learner", cfg.Storage.MySQL.Username)
	assert.Equal(t, "secret", cfg.Storage.MySQL.Password)
}

func TestLoadLanguageFromEnvironment(t *testing.T) {
	t.Setenv("TRIELINGUAL_LANGUAGE", "de")

	cfg, err := Load(writeConfig(t, "language: fr\n"))
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Language)
}

func TestLoadInvalidDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "language: fr\nstorage:\n  driver: postgres\n"))
	assert.Error(t, err)
}

func TestLoadInvalidLevelRange(t *testing.T) {
	_, err := Load(writeConfig(t, "language: fr\nrecommend:\n  min_level: 5\n  max_level: 2\n"))
	assert.Error(t, err)
}

func TestLoadTriePathMustExist(t *testing.T) {
	_, err := Load(writeConfig(t, "language: fr\ntrie:\n  path: /does/not/exist.json\n"))
	assert.Error(t, err)
}

func TestNamespace(t *testing.T) {
	cfg := &Config{Language: "fr"}
	assert.Equal(t, "studyList/fr", cfg.Namespace("studyList"))
}
