package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "taxlookup"

	// SnapshotURL is the default location of a prepackaged index.
	SnapshotURL = "https://taxonomylookup.s3.amazonaws.com/taxonomy_db-2022-06-01.tar.gz"

	// SnapshotSHA256 is the digest of the archive at SnapshotURL.
	SnapshotSHA256 = "0587d7831f159c4fc1602b3745a1916d3fa0311f39086b9b250e33fd7e85ac52"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/taxlookup by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for data files.
// Returns ~/.local/share/taxlookup by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/taxlookup/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// DefaultDBDir returns the default location of the index.
// Returns ~/.local/share/taxlookup/taxonomy.badger by default.
func DefaultDBDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "taxonomy.badger")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/taxlookup/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
