package iotaxdb

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gnuuid"
	"github.com/gnames/taxlookup/internal/ioaccession"
	"github.com/gnames/taxlookup/internal/iodump"
	"github.com/gnames/taxlookup/internal/iostore"
	app "github.com/gnames/taxlookup/pkg"
	"github.com/gnames/taxlookup/pkg/accrun"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/ent/meta"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DumpFile is the name of the taxonomy dump inside a source directory.
const DumpFile = "taxdump.tar.gz"

// buildFromFiles replaces the index in dir with one made from
// cfg.SourceDir. The version marker is written only after everything
// else is flushed, so an interrupted build never looks complete.
func buildFromFiles(cfg *config.Config, dir string) (app.TaxonomyDB, error) {
	start := time.Now()
	slog.Info("Starting index build", "source", cfg.SourceDir, "dir", dir)

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, IndexDirError(filepath.Dir(dir), err)
	}

	lock := flock.New(dir + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, LockError(lock.Path(), err)
	}
	if !locked {
		return nil, LockedError(lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	if err = removeIndex(dir); err != nil {
		return nil, err
	}

	gn.Info("(1/5) Parsing taxonomy dump...")
	dump, err := iodump.ReadArchive(filepath.Join(cfg.SourceDir, DumpFile))
	if err != nil {
		return nil, err
	}
	gn.Message(
		"<em>Loaded %s taxa and %s scientific names</em>",
		humanize.Comma(int64(len(dump.Nodes))),
		humanize.Comma(int64(len(dump.Names))),
	)

	paths, err := ioaccession.FindFiles(
		filepath.Join(cfg.SourceDir, ioaccession.MappingDir),
		cfg.Build.MappingSuffixes,
	)
	if err != nil {
		return nil, err
	}

	st, err := iostore.Open(dir, cfg.DB.CacheSize)
	if err != nil {
		return nil, err
	}

	md, err := populate(cfg, st, dump, paths)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	gn.Info("(4/5) Writing build metadata...")
	md.Duration = gnfmt.TimeString(time.Since(start).Seconds())
	if err = writeMeta(dir, md); err != nil {
		_ = st.Close()
		return nil, err
	}

	gn.Info("(5/5) Finalizing index...")
	if err = st.SetVersion([]byte(Version)); err != nil {
		_ = st.Close()
		return nil, err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Index build complete",
		"dir", dir,
		"stored_keys", md.StoredKeys,
		"runs", md.Runs,
		"duration", dur,
	)
	gn.Info("Index is ready at <em>%s</em>\nElapsed time: <em>%s</em>", dir, dur)

	return newTaxDB(dir, st), nil
}

func populate(
	cfg *config.Config,
	st *iostore.Store,
	dump *iodump.Dump,
	paths []string,
) (*meta.Meta, error) {
	gn.Info("(2/5) Compressing accessions from %d files...", len(paths))
	stats, skipped, err := encodeAccessions(cfg, st, paths)
	if err != nil {
		return nil, err
	}
	gn.Message(
		"<em>Stored %s keys for %s rows (%s runs, %s duplicates, %s skipped)</em>",
		humanize.Comma(int64(stats.Written)),
		humanize.Comma(int64(stats.RowsRead)),
		humanize.Comma(int64(stats.Runs)),
		humanize.Comma(int64(stats.Duplicates)),
		humanize.Comma(int64(skipped)),
	)

	gn.Info("(3/5) Storing taxonomy tree...")
	if err = copyTaxa(st, dump); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(paths)+1)
	files = append(files, filepath.Join(cfg.SourceDir, DumpFile))
	files = append(files, paths...)

	srcID, err := sourceID(files)
	if err != nil {
		return nil, err
	}

	res := &meta.Meta{
		BuildID:     uuid.New().String(),
		SourceID:    srcID,
		Version:     Version,
		AppVersion:  app.Version,
		CreatedAt:   time.Now().UTC(),
		SourceFiles: baseNames(files),
		Taxa:        len(dump.Nodes),
		Names:       len(dump.Names),
		RowsRead:    stats.RowsRead,
		SkippedRows: skipped,
		Duplicates:  stats.Duplicates,
		StoredKeys:  stats.Written,
		Runs:        stats.Runs,
	}
	return res, nil
}

func encodeAccessions(
	cfg *config.Config,
	st *iostore.Store,
	paths []string,
) (accrun.Stats, int, error) {
	var stats accrun.Stats

	bar := pb.New64(0)
	bar.SetTemplate(pb.Full)
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)

	files, err := ioaccession.OpenFiles(paths, func(r io.Reader) io.Reader {
		return bar.NewProxyReader(r)
	})
	if err != nil {
		return stats, 0, err
	}
	defer files.Close()

	bar.SetTotal(files.Size)
	bar.Start()
	defer bar.Finish()

	m, err := ioaccession.NewMerger(files.Inputs, cfg.Build.AccessionColumns)
	if err != nil {
		return stats, 0, err
	}

	stats, err = accrun.Encode(m, st.Tree(iostore.Accessions))
	if err != nil {
		return stats, m.Skipped(), err
	}

	if m.Skipped() > 0 {
		slog.Warn("Malformed mapping rows skipped", "count", m.Skipped())
	}
	return stats, m.Skipped(), nil
}

func copyTaxa(st *iostore.Store, dump *iodump.Dump) error {
	parents := st.Tree(iostore.Parents)
	ranks := st.Tree(iostore.Ranks)
	names := st.Tree(iostore.Names)

	for id, node := range dump.Nodes {
		key := accrun.EncodeID(id)
		if err := parents.Insert(key, accrun.EncodeID(node.Parent)); err != nil {
			return err
		}
		if err := ranks.Insert(key, []byte{byte(node.Rank)}); err != nil {
			return err
		}
	}

	for id, name := range dump.Names {
		if err := names.Insert(accrun.EncodeID(id), []byte(name)); err != nil {
			return err
		}
	}

	return nil
}

// removeIndex deletes the old index before a build starts.
func removeIndex(dir string) error {
	_, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return RemoveIndexError(dir, err)
	}

	slog.Info("Removing existing index", "dir", dir)
	if err = gnsys.CleanDir(dir); err != nil {
		return RemoveIndexError(dir, err)
	}
	return nil
}

func writeMeta(dir string, md *meta.Meta) error {
	path := filepath.Join(dir, meta.FileName)

	bs, err := yaml.Marshal(md)
	if err != nil {
		return MetaWriteError(path, err)
	}
	if err = os.WriteFile(path, bs, 0644); err != nil {
		return MetaWriteError(path, err)
	}
	return nil
}

// sourceID derives a UUID v5 from names and sizes of source files.
func sourceID(paths []string) (string, error) {
	parts := make([]string, len(paths))
	for i, v := range paths {
		info, err := os.Stat(v)
		if err != nil {
			return "", MetaWriteError(v, err)
		}
		parts[i] = fmt.Sprintf("%s:%d", filepath.Base(v), info.Size())
	}
	return gnuuid.New(strings.Join(parts, "|")).String(), nil
}

func baseNames(paths []string) []string {
	res := make([]string, len(paths))
	for i, v := range paths {
		res[i] = filepath.Base(v)
	}
	return res
}
