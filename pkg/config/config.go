// Package config provides configuration management for taxlookup.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - DB: dir, cache_size
//   - Build: accession_columns, mapping_suffixes
//   - Snapshot: url, sha256
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Source, SourceDir, ArchivePath (per-command)
//   - Lookup.Format, Lookup.ByTaxon (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TAXLOOKUP_ prefix with underscores for nesting:
//
//	TAXLOOKUP_DB_DIR=/data/taxonomy.badger
//	TAXLOOKUP_DB_CACHE_SIZE=512
//	TAXLOOKUP_LOG_LEVEL=info
package config

// Source determines how the taxonomy database handle is obtained.
type Source int

const (
	// FromExisting opens an index that was built or installed before.
	FromExisting Source = iota
	// FromFiles rebuilds the index from a directory with NCBI taxonomy
	// dump and accession2taxid files.
	FromFiles
	// FromArchive unpacks a prepackaged gzipped tar snapshot into the
	// index location and opens it.
	FromArchive
)

// String returns the name of the source as used in logs.
func (s Source) String() string {
	switch s {
	case FromFiles:
		return "files"
	case FromArchive:
		return "archive"
	default:
		return "existing"
	}
}

// Config represents the complete taxlookup configuration.
type Config struct {
	// DB contains settings of the on-disk index.
	DB DBConfig `mapstructure:"db" yaml:"db"`

	// Build contains settings for building the index from NCBI files.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Snapshot describes the prepackaged index used by the install command.
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`

	// Lookup contains runtime settings of the lookup command.
	Lookup LookupConfig `mapstructure:"lookup" yaml:"lookup"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Source selects between opening an existing index, building a new
	// one from files or unpacking a snapshot archive.
	Source Source

	// SourceDir is the directory with taxdump.tar.gz and accession2taxid/
	// subdirectory. Used only when Source is FromFiles.
	SourceDir string

	// ArchivePath is a local gzipped tar snapshot of an index. Used only
	// when Source is FromArchive.
	ArchivePath string

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DBConfig contains settings of the badger index.
type DBConfig struct {
	// Dir is the location of the index. If empty, the index resides in
	// the data directory under HomeDir (see DBDir).
	Dir string `mapstructure:"dir" yaml:"dir"`

	// CacheSize is a hint for the size of the block cache in MiB.
	// Zero keeps the storage engine default.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`
}

// BuildConfig contains settings for reading NCBI source files.
type BuildConfig struct {
	// AccessionColumns are the accepted header spellings of the
	// accession column of accession2taxid files.
	AccessionColumns []string `mapstructure:"accession_columns" yaml:"accession_columns"`

	// MappingSuffixes are file name endings that select accession2taxid
	// files inside the accession2taxid directory.
	MappingSuffixes []string `mapstructure:"mapping_suffixes" yaml:"mapping_suffixes"`
}

// SnapshotConfig points to a prepackaged index and its checksum.
type SnapshotConfig struct {
	// URL of a gzipped tar archive with a ready-made index.
	URL string `mapstructure:"url" yaml:"url"`
	// SHA256 is the lowercase hex digest the downloaded archive must have.
	SHA256 string `mapstructure:"sha256" yaml:"sha256"`
}

// LookupConfig contains settings of the lookup command.
type LookupConfig struct {
	// Format of the output: 'text', 'tsv' or 'json'.
	Format string `mapstructure:"format" yaml:"format"`
	// ByTaxon is true when queries are taxon IDs instead of accessions.
	ByTaxon bool `mapstructure:"by_taxon" yaml:"by_taxon"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Build: BuildConfig{
			AccessionColumns: []string{"accession", "accession.version"},
			MappingSuffixes: []string{
				"accession2taxid.gz",
				"accession2taxid.FULL.gz",
				"accession2taxid.EXTRA.gz",
			},
		},
		Snapshot: SnapshotConfig{
			URL:    SnapshotURL,
			SHA256: SnapshotSHA256,
		},
		Lookup: LookupConfig{
			Format: "text",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Source: FromExisting,
	}

	return res
}

// DBDir returns the location of the index: DB.Dir when it is set,
// otherwise the default location under HomeDir.
func (c *Config) DBDir() string {
	if c.DB.Dir != "" {
		return c.DB.Dir
	}
	return DefaultDBDir(c.HomeDir)
}
