// Package iostore keeps the taxonomy index in a Badger v4 key-value
// store. Badger keeps keys sorted as raw bytes, which gives exact,
// predecessor and successor lookups. Each namespace is a key prefix of
// one byte, so the namespaces never see keys of each other.
package iostore

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Namespace is the one-byte prefix of every key in a namespace.
type Namespace byte

const (
	// Accessions maps a bare accession to a 4-byte taxon ID.
	Accessions Namespace = 0x01
	// Names maps a 4-byte taxon ID to its scientific name.
	Names Namespace = 0x02
	// Parents maps a 4-byte taxon ID to the 4-byte ID of its parent.
	Parents Namespace = 0x03
	// Ranks maps a 4-byte taxon ID to a 1-byte rank code.
	Ranks Namespace = 0x04
)

func (ns Namespace) String() string {
	switch ns {
	case Accessions:
		return "accessions"
	case Names:
		return "names"
	case Parents:
		return "parents"
	case Ranks:
		return "ranks"
	default:
		return "unknown"
	}
}

// VersionKey holds the format version of the index. It is written last
// when a build completes.
var VersionKey = []byte("taxonomy_db_version")

// Store is an open index directory.
type Store struct {
	dir string
	db  *badger.DB
	wb  *badger.WriteBatch
}

// Open opens or creates the index at dir. A positive cacheSize sets
// the size of the block cache in MiB.
func Open(dir string, cacheSize int) (*Store, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		slog.Error("Cannot create index directory", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}

	options := badger.DefaultOptions(dir)
	options.Logger = nil // Disable badger's internal logging
	if cacheSize > 0 {
		options = options.WithBlockCacheSize(int64(cacheSize) << 20)
	}

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open index", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}

	slog.Info("Index opened", "dir", dir, "cache_mib", cacheSize)
	return &Store{dir: dir, db: db}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Tree returns a view of one namespace.
func (s *Store) Tree(ns Namespace) *Tree {
	return &Tree{s: s, ns: ns}
}

// Version returns the stored format version, if any.
func (s *Store) Version() ([]byte, bool, error) {
	return s.get(VersionKey)
}

// SetVersion writes the format version marker and syncs it to disk.
// Pending batched writes are flushed before the marker.
func (s *Store) SetVersion(v []byte) error {
	if err := s.Flush(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(VersionKey, v)
	})
	if err != nil {
		slog.Error("Cannot write version marker", "error", err)
		return WriteError(VersionKey, err)
	}
	if err = s.db.Sync(); err != nil {
		return WriteError(VersionKey, err)
	}
	return nil
}

// Empty reports whether the namespace has no keys.
func (s *Store) Empty(ns Namespace) (bool, error) {
	prefix := []byte{byte(ns)}
	empty := true
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		empty = !it.ValidForPrefix(prefix)
		return nil
	})
	if err != nil {
		return false, ReadError(prefix, err)
	}
	return empty, nil
}

// Flush commits the batched writes and syncs the store to disk.
func (s *Store) Flush() error {
	if s.wb != nil {
		err := s.wb.Flush()
		s.wb = nil
		if err != nil {
			slog.Error("Cannot flush index writes", "error", err)
			return WriteError(nil, err)
		}
	}
	if err := s.db.Sync(); err != nil {
		slog.Error("Cannot sync index", "error", err)
		return WriteError(nil, err)
	}
	return nil
}

// Close closes the store. Batched writes that were not flushed are
// discarded.
func (s *Store) Close() error {
	if s.db == nil {
		slog.Warn("Index is already closed")
		return nil
	}
	if s.wb != nil {
		s.wb.Cancel()
		s.wb = nil
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		slog.Error("Cannot close index", "error", err)
		return CloseError(s.dir, err)
	}

	slog.Info("Index closed", "dir", s.dir)
	return nil
}

func (s *Store) insert(key, val []byte) error {
	if s.wb == nil {
		s.wb = s.db.NewWriteBatch()
	}
	if err := s.wb.Set(key, val); err != nil {
		return WriteError(key, err)
	}
	return nil
}

func (s *Store) get(key []byte) ([]byte, bool, error) {
	var val []byte
	var found bool

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, ReadError(key, err)
	}
	return val, found, nil
}

// neighbour finds the nearest key of the prefix strictly below
// (reverse) or strictly above key.
func (s *Store) neighbour(
	prefix, key []byte,
	reverse bool,
) ([]byte, []byte, bool, error) {
	var k, v []byte
	var found bool

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		opts.Reverse = reverse
		it := txn.NewIterator(opts)
		defer it.Close()

		// forward Seek stops at the smallest key >= key, reverse Seek at
		// the largest key <= key
		it.Seek(key)
		if it.ValidForPrefix(prefix) && bytes.Equal(it.Item().Key(), key) {
			it.Next()
		}
		if !it.ValidForPrefix(prefix) {
			return nil
		}

		item := it.Item()
		k = item.KeyCopy(nil)
		var err error
		v, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, nil, false, ReadError(key, err)
	}
	return k, v, found, nil
}
