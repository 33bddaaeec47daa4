// Package iotaxdb creates and opens taxonomy indices. An index is either
// built from NCBI source files, unpacked from a snapshot archive, or
// opened as it is. Every path ends with a handle that answers queries.
package iotaxdb

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/ioinstall"
	"github.com/gnames/taxlookup/internal/iostore"
	app "github.com/gnames/taxlookup/pkg"
	"github.com/gnames/taxlookup/pkg/accrun"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/ent/meta"
	"github.com/gnames/taxlookup/pkg/ent/rank"
	"github.com/gnames/taxlookup/pkg/lineage"
	"gopkg.in/yaml.v3"
)

// Version is the format version written to every index.
const Version = "1"

type taxdb struct {
	dir   string
	store *iostore.Store
	acc   *iostore.Tree
	tree  *taxTree
}

// Build prepares the index according to cfg.Source and returns a handle
// to it.
func Build(cfg *config.Config) (app.TaxonomyDB, error) {
	dir := cfg.DBDir()

	switch cfg.Source {
	case config.FromFiles:
		return buildFromFiles(cfg, dir)
	case config.FromArchive:
		gn.Info("Extracting <em>%s</em>", cfg.ArchivePath)
		if err := ioinstall.Extract(cfg.ArchivePath, dir); err != nil {
			return nil, err
		}
		return Open(dir, cfg.DB.CacheSize)
	default:
		return Open(dir, cfg.DB.CacheSize)
	}
}

// Open opens an existing index. An index with a version marker other
// than Version is rejected. An index without a marker is opened with a
// warning, it was either interrupted during a build or made by an older
// tool.
func Open(dir string, cacheSize int) (app.TaxonomyDB, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, NoIndexError(dir)
	}

	st, err := iostore.Open(dir, cacheSize)
	if err != nil {
		return nil, err
	}

	v, ok, err := st.Version()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	switch {
	case ok && string(v) != Version:
		_ = st.Close()
		return nil, IncompatibleVersionError(dir, string(v))
	case !ok:
		empty, err := st.Empty(iostore.Accessions)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		slog.Warn("Index has no version marker", "dir", dir, "empty", empty)
		if empty {
			gn.Warn("Index at <em>%s</em> is empty, queries will not find anything", dir)
		} else {
			gn.Warn("Index at <em>%s</em> has no version marker", dir)
		}
	}

	return newTaxDB(dir, st), nil
}

func newTaxDB(dir string, st *iostore.Store) *taxdb {
	return &taxdb{
		dir:   dir,
		store: st,
		acc:   st.Tree(iostore.Accessions),
		tree: &taxTree{
			names:   st.Tree(iostore.Names),
			parents: st.Tree(iostore.Parents),
			ranks:   st.Tree(iostore.Ranks),
		},
	}
}

func (t *taxdb) Resolve(acc string) (uint32, error) {
	return accrun.Resolve(t.acc, acc)
}

func (t *taxdb) QueryAccession(acc string) (app.Result, error) {
	res := app.Result{Query: acc}

	id, err := t.Resolve(acc)
	if err != nil {
		return res, err
	}
	res.TaxonID = id

	res.Lineage, err = lineage.Walk(t.tree, id)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (t *taxdb) QueryTaxon(id uint32) (app.Result, error) {
	res := app.Result{Query: strconv.FormatUint(uint64(id), 10), TaxonID: id}

	if id != lineage.RootID {
		_, ok, err := t.tree.Parent(id)
		if err != nil {
			return res, err
		}
		if !ok {
			return res, TaxonNotFoundError(id)
		}
	}

	var err error
	res.Lineage, err = lineage.Walk(t.tree, id)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (t *taxdb) Rank(id uint32) (rank.Rank, error) {
	r, ok, err := t.tree.Rank(id)
	if err != nil {
		return rank.NoRank, err
	}
	if !ok {
		return rank.NoRank, TaxonNotFoundError(id)
	}
	return r, nil
}

func (t *taxdb) Name(id uint32) (string, error) {
	name, ok, err := t.tree.Name(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", TaxonNotFoundError(id)
	}
	return name, nil
}

func (t *taxdb) Meta() (*meta.Meta, error) {
	path := filepath.Join(t.dir, meta.FileName)
	bs, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, MetaReadError(path, err)
	}

	var res meta.Meta
	if err = yaml.Unmarshal(bs, &res); err != nil {
		return nil, MetaReadError(path, err)
	}
	return &res, nil
}

func (t *taxdb) Dir() string {
	return t.dir
}

func (t *taxdb) Close() error {
	return t.store.Close()
}

// taxTree reads the taxonomy namespaces for lineage walks.
type taxTree struct {
	names   *iostore.Tree
	parents *iostore.Tree
	ranks   *iostore.Tree
}

func (t *taxTree) Parent(id uint32) (uint32, bool, error) {
	val, ok, err := t.parents.Get(accrun.EncodeID(id))
	if err != nil || !ok {
		return 0, false, err
	}
	parent, ok := accrun.DecodeID(val)
	if !ok {
		return 0, false, BadRecordError(id, "parent", val)
	}
	return parent, true, nil
}

func (t *taxTree) Rank(id uint32) (rank.Rank, bool, error) {
	val, ok, err := t.ranks.Get(accrun.EncodeID(id))
	if err != nil || !ok {
		return rank.NoRank, false, err
	}
	if len(val) != 1 {
		return rank.NoRank, false, BadRecordError(id, "rank", val)
	}
	r, err := rank.FromCode(val[0])
	if err != nil {
		return rank.NoRank, false, BadRecordError(id, "rank", val)
	}
	return r, true, nil
}

func (t *taxTree) Name(id uint32) (string, bool, error) {
	val, ok, err := t.names.Get(accrun.EncodeID(id))
	if err != nil || !ok {
		return "", false, err
	}
	return string(val), true, nil
}
