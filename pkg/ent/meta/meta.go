// Package meta describes the build metadata stored next to an index.
package meta

import "time"

// FileName is the name of the metadata file inside an index directory.
const FileName = "meta.yaml"

// Meta records where an index came from and what it contains.
type Meta struct {
	// BuildID is a random UUID unique to every build.
	BuildID string `yaml:"build_id"`
	// SourceID is a UUID v5 derived from names and sizes of source files.
	// Two builds from the same files share it.
	SourceID string `yaml:"source_id"`
	// Version is the index format version.
	Version string `yaml:"version"`
	// AppVersion is the version of taxlookup that made the build.
	AppVersion string    `yaml:"app_version"`
	CreatedAt  time.Time `yaml:"created_at"`
	// Duration is the human-readable build time.
	Duration string `yaml:"duration"`

	SourceFiles []string `yaml:"source_files"`

	Taxa  int `yaml:"taxa"`
	Names int `yaml:"names"`

	RowsRead    int `yaml:"rows_read"`
	SkippedRows int `yaml:"skipped_rows"`
	Duplicates  int `yaml:"duplicates"`
	StoredKeys  int `yaml:"stored_keys"`
	Runs        int `yaml:"runs"`
}
