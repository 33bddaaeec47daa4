package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDBDir sets the location of the index.
func OptDBDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("DB Dir", s) {
			c.DB.Dir = s
		}
	}
}

// OptDBCacheSize sets the block cache size hint in MiB.
func OptDBCacheSize(i int) Option {
	return func(c *Config) {
		if isValidInt("DB Cache Size", i) {
			c.DB.CacheSize = i
		}
	}
}

// OptBuildAccessionColumns sets accepted header names of the accession
// column in accession2taxid files.
func OptBuildAccessionColumns(ss []string) Option {
	ss = trimAll(ss)
	return func(c *Config) {
		if isValidSlice("Build Accession Columns", ss) {
			c.Build.AccessionColumns = ss
		}
	}
}

// OptBuildMappingSuffixes sets file name endings of accession2taxid files.
func OptBuildMappingSuffixes(ss []string) Option {
	ss = trimAll(ss)
	return func(c *Config) {
		if isValidSlice("Build Mapping Suffixes", ss) {
			c.Build.MappingSuffixes = ss
		}
	}
}

// OptSnapshotURL sets the URL of a prepackaged index.
func OptSnapshotURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Snapshot URL", s) {
			c.Snapshot.URL = s
		}
	}
}

// OptSnapshotSHA256 sets the expected digest of the prepackaged index.
// The value must be 64 hexadecimal characters.
func OptSnapshotSHA256(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidDigest("Snapshot SHA256", s) {
			c.Snapshot.SHA256 = s
		}
	}
}

// OptLookupFormat sets the output format of lookup results.
// Valid values: "text", "tsv", "json".
// Runtime-only field - not in ToOptions().
func OptLookupFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Lookup.Format", s) {
			c.Lookup.Format = s
		}
	}
}

// OptLookupByTaxon makes lookup treat queries as taxon IDs.
// Runtime-only field - not in ToOptions().
func OptLookupByTaxon(b bool) Option {
	return func(c *Config) {
		c.Lookup.ByTaxon = b
	}
}

// OptSource sets how the database handle is obtained.
// Runtime-only field - not in ToOptions().
func OptSource(s Source) Option {
	return func(c *Config) {
		c.Source = s
	}
}

// OptSourceDir sets the directory with NCBI taxonomy files.
// Runtime-only field - not in ToOptions().
func OptSourceDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Directory", s) {
			c.SourceDir = s
		}
	}
}

// OptArchivePath sets the path to a local snapshot archive.
// Runtime-only field - not in ToOptions().
func OptArchivePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Path", s) {
			c.ArchivePath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func trimAll(ss []string) []string {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
