package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls are harmless
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	for _, dir := range []string{
		filepath.Join(home, ".config", "taxlookup"),
		filepath.Join(home, ".local", "share", "taxlookup"),
		filepath.Join(home, ".local", "share", "taxlookup", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestEnsureDirsBlocked(t *testing.T) {
	tests := []struct {
		msg     string
		blocker func(home string) string
	}{
		{"parent is a file", func(home string) string {
			return filepath.Join(home, ".config")
		}},
		{"dir is a file", func(home string) string {
			return config.ConfigDir(home)
		}},
		{"log dir is a file", func(home string) string {
			return config.LogDir(home)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			home := t.TempDir()
			blocker := tt.blocker(home)
			require.NoError(t, os.MkdirAll(filepath.Dir(blocker), 0755))
			require.NoError(t, os.WriteFile(blocker, nil, 0644))

			err := EnsureDirs(home)
			require.Error(t, err)
			assert.Equal(t, errcode.CreateDirError, errcode.Code(err))
		})
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(bs))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	custom := "db:\n  cache_size: 512\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))

	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(bs), "user config is kept")
}

// Embedded defaults have to agree with config.New.
func TestConfigYAMLDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.DB, cfg.DB)
	assert.Equal(t, def.Build, cfg.Build)
	assert.Equal(t, def.Snapshot, cfg.Snapshot)
	assert.Equal(t, def.Log, cfg.Log)
}
