package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/taxlookup/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "taxlookup"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "taxlookup"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "taxlookup", "logs"),
		},
		{
			msg: "db dir",
			fn:  config.DefaultDBDir,
			res: filepath.Join(tempHome, ".local", "share", "taxlookup",
				"taxonomy.badger"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "taxlookup", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Empty(t, cfg.DB.Dir)
		assert.Equal(t, 0, cfg.DB.CacheSize)

		assert.Equal(t,
			[]string{"accession", "accession.version"},
			cfg.Build.AccessionColumns)
		assert.Len(t, cfg.Build.MappingSuffixes, 3)

		assert.Equal(t, config.SnapshotURL, cfg.Snapshot.URL)
		assert.Len(t, cfg.Snapshot.SHA256, 64)

		assert.Equal(t, "text", cfg.Lookup.Format)
		assert.False(t, cfg.Lookup.ByTaxon)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, config.FromExisting, cfg.Source)
	})
}

func TestDBDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "taxlookup",
			"taxonomy.badger"),
		cfg.DBDir(), "default location")

	cfg.Update([]config.Option{config.OptDBDir("/data/tax")})
	assert.Equal(t, "/data/tax", cfg.DBDir(), "explicit location")
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "existing", config.FromExisting.String())
	assert.Equal(t, "files", config.FromFiles.String())
	assert.Equal(t, "archive", config.FromArchive.String())
}

func TestOptionDBCacheSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid size",
			input:    256,
			expected: 256,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "ignores negative",
			input:    -10,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDBCacheSize(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.DB.CacheSize)
		})
	}
}

func TestOptionBuildAccessionColumns(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "sets columns",
			input:    []string{"acc"},
			expected: []string{"acc"},
		},
		{
			name:     "trims and drops empty values",
			input:    []string{" accession ", "", "  "},
			expected: []string{"accession"},
		},
		{
			name:     "ignores empty slice",
			input:    nil,
			expected: []string{"accession", "accession.version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptBuildAccessionColumns(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Build.AccessionColumns)
		})
	}
}

func TestOptionSnapshotSHA256(t *testing.T) {
	valid := "ABCDEF0123456789abcdef0123456789abcdef0123456789abcdef0123456789"

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets and lowercases digest",
			input:    valid,
			expected: "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789",
		},
		{
			name:     "ignores short digest",
			input:    "abcd",
			expected: config.SnapshotSHA256,
		},
		{
			name:     "ignores non-hex digest",
			input:    "zz" + valid[2:],
			expected: config.SnapshotSHA256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptSnapshotSHA256(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Snapshot.SHA256)
		})
	}
}

func TestOptionLookupFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets tsv",
			input:    "tsv",
			expected: "tsv",
		},
		{
			name:     "normalizes to lowercase",
			input:    "JSON",
			expected: "json",
		},
		{
			name:     "ignores invalid value",
			input:    "xml",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLookupFormat(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Lookup.Format)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - error",
			input:    "error",
			expected: "error",
		},
		{
			name:     "normalizes to lowercase",
			input:    "WARN",
			expected: "warn",
		},
		{
			name:     "ignores invalid value",
			input:    "verbose",
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("STDERR")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("syslog")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestRuntimeOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptSource(config.FromFiles),
		config.OptSourceDir(" /data/ncbi "),
		config.OptArchivePath("/tmp/db.tar.gz"),
		config.OptLookupByTaxon(true),
	})

	assert.Equal(t, config.FromFiles, cfg.Source)
	assert.Equal(t, "/data/ncbi", cfg.SourceDir)
	assert.Equal(t, "/tmp/db.tar.gz", cfg.ArchivePath)
	assert.True(t, cfg.Lookup.ByTaxon)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDBDir("/data/tax"),
		config.OptDBCacheSize(128),
		config.OptBuildMappingSuffixes([]string{"prot.accession2taxid.gz"}),
		config.OptSnapshotURL("https://example.org/db.tar.gz"),
		config.OptLogLevel("debug"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stdout"),
		// runtime-only, must not survive the round trip
		config.OptSource(config.FromFiles),
		config.OptHomeDir("/home/user"),
		config.OptLookupFormat("json"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.DB, dst.DB)
	assert.Equal(t, src.Build, dst.Build)
	assert.Equal(t, src.Snapshot, dst.Snapshot)
	assert.Equal(t, src.Log, dst.Log)

	assert.Equal(t, config.FromExisting, dst.Source)
	assert.Empty(t, dst.HomeDir)
	assert.Equal(t, "text", dst.Lookup.Format)
}
