package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/iotaxdb"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/ent/meta"
	"github.com/spf13/cobra"
)

// getInfoCmd returns the info command.
func getInfoCmd() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show metadata of the taxonomy index",
		Long: `Show where the taxonomy index is and how it was built.

Examples:
  taxlookup info
  taxlookup info --db /data/taxonomy.badger`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInfo(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlags(infoCmd)
	return infoCmd
}

func runInfo(cmd *cobra.Command) error {
	infoOpts := dbOptions(cmd)
	infoOpts = append(infoOpts, config.OptSource(config.FromExisting))
	cfg.Update(infoOpts)

	db, err := iotaxdb.Build(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	md, err := db.Meta()
	if err != nil {
		return err
	}
	return writeInfo(cmd.OutOrStdout(), db.Dir(), md)
}

func writeInfo(out io.Writer, dir string, md *meta.Meta) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	row := func(k string, v any) {
		fmt.Fprintf(w, "%s:\t%v\n", k, v)
	}

	row("Index", dir)
	if md == nil {
		row("Metadata", "none (index was not built by taxlookup build)")
		return w.Flush()
	}

	comma := func(i int) string { return humanize.Comma(int64(i)) }

	row("Format version", md.Version)
	row("Built by", "taxlookup "+md.AppVersion)
	row("Created", md.CreatedAt.Local().Format(time.DateTime))
	row("Build time", md.Duration)
	row("Build ID", md.BuildID)
	row("Source ID", md.SourceID)
	row("Source files", strings.Join(md.SourceFiles, ", "))
	row("Taxa", comma(md.Taxa))
	row("Scientific names", comma(md.Names))
	row("Mapping rows", comma(md.RowsRead))
	row("Skipped rows", comma(md.SkippedRows))
	row("Duplicates", comma(md.Duplicates))
	row("Stored keys", comma(md.StoredKeys))
	row("Runs", comma(md.Runs))

	return w.Flush()
}
