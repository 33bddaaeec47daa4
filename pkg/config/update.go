package config

import (
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Source, SourceDir, ArchivePath,
// Lookup).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var ss []string

	s = c.DB.Dir
	if s != "" {
		res = append(res, OptDBDir(s))
	}
	i = c.DB.CacheSize
	if i > 0 {
		res = append(res, OptDBCacheSize(i))
	}

	ss = c.Build.AccessionColumns
	if len(ss) > 0 {
		res = append(res, OptBuildAccessionColumns(ss))
	}
	ss = c.Build.MappingSuffixes
	if len(ss) > 0 {
		res = append(res, OptBuildMappingSuffixes(ss))
	}

	s = c.Snapshot.URL
	if s != "" {
		res = append(res, OptSnapshotURL(s))
	}
	s = c.Snapshot.SHA256
	if s != "" {
		res = append(res, OptSnapshotSHA256(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidSlice(name string, ss []string) bool {
	res := len(ss) > 0
	if !res {
		gn.Warn("<em>%s</em> needs at least one value, ignoring", name)
	}
	return res
}

func isValidDigest(name, s string) bool {
	bs, err := hex.DecodeString(s)
	res := err == nil && len(bs) == 32
	if !res {
		gn.Warn(
			"<em>%s</em> has to be 64 hexadecimal characters, ignoring '%s'",
			name, s,
		)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Lookup.Format":   {"text": s, "tsv": s, "json": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
