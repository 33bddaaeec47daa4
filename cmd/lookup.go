package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/taxlookup/internal/iotaxdb"
	app "github.com/gnames/taxlookup/pkg"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/errcode"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	var (
		byTaxon bool
		format  string
	)

	lookupCmd := &cobra.Command{
		Use:   "lookup [ACCESSION...]",
		Short: "Print lineages of accessions or taxon IDs",
		Long: `Print the lineage of every query.

Queries are GenBank/RefSeq accessions, with or without a version
suffix, or NCBI taxon IDs when --taxon is given. Without arguments,
or with '-', queries are read from STDIN, one per line.

Queries that are not in the index are reported to STDERR and the rest
of the batch continues. The exit status is non-zero only when a query
fails for another reason.

Output formats:
  text   query, taxon ID and the lineage
  tsv    tab-separated, with a header
  json   one JSON object per line

Examples:
  taxlookup lookup MN908947.3 NC_045512
  taxlookup lookup --taxon 9606 --format json
  cut -f1 hits.tsv | taxlookup lookup --format tsv`,
		Aliases: []string{"l"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLookup(cmd, args, byTaxon, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlags(lookupCmd)
	lookupCmd.Flags().BoolVarP(&byTaxon, "taxon", "t", false,
		"queries are taxon IDs")
	lookupCmd.Flags().StringVarP(&format, "format", "F", "text",
		"output format: text, tsv or json")

	return lookupCmd
}

func runLookup(
	cmd *cobra.Command,
	args []string,
	byTaxon bool,
	format string,
) error {
	lookupOpts := dbOptions(cmd)
	lookupOpts = append(lookupOpts,
		config.OptSource(config.FromExisting),
		config.OptLookupByTaxon(byTaxon),
	)
	if cmd.Flags().Changed("format") {
		lookupOpts = append(lookupOpts, config.OptLookupFormat(format))
	}
	cfg.Update(lookupOpts)

	db, err := iotaxdb.Build(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	failed, err := lookup(
		cmd.Context(), db, cfg.Lookup,
		queries(args, cmd.InOrStdin()),
		cmd.OutOrStdout(), cmd.ErrOrStderr(),
	)
	if err != nil {
		return err
	}
	if failed > 0 {
		return LookupError(failed)
	}
	return nil
}

// queries returns a function that sends queries from args, or from r
// when args are empty or "-".
func queries(args []string, r io.Reader) func(context.Context, chan<- string) error {
	return func(ctx context.Context, ch chan<- string) error {
		send := func(q string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- q:
				return nil
			}
		}

		if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
			for _, v := range args {
				if err := send(v); err != nil {
					return err
				}
			}
			return nil
		}

		sc := bufio.NewScanner(r)
		for sc.Scan() {
			q := strings.TrimSpace(sc.Text())
			if q == "" {
				continue
			}
			if err := send(q); err != nil {
				return err
			}
		}
		return sc.Err()
	}
}

// lookup reads queries in one goroutine and answers them in another,
// keeping the input order. It returns the number of queries that failed
// for a reason other than a missing accession or taxon.
func lookup(
	ctx context.Context,
	db app.TaxonomyDB,
	lcfg config.LookupConfig,
	read func(context.Context, chan<- string) error,
	out, errOut io.Writer,
) (int, error) {
	var failed, notFound, found int
	ch := make(chan string)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		return read(ctx, ch)
	})

	g.Go(func() error {
		w := bufio.NewWriter(out)
		defer w.Flush()

		if lcfg.Format == "tsv" {
			if _, err := fmt.Fprintln(w, tsvHeader); err != nil {
				return err
			}
		}

		for q := range ch {
			res, err := query(db, q, lcfg.ByTaxon)
			switch {
			case errcode.Is(err, errcode.NotFoundError):
				notFound++
				fmt.Fprintf(errOut, "%s\tnot found\n", q)
				continue
			case err != nil:
				failed++
				slog.Error("Query failed", "query", q, "error", err)
				gn.PrintErrorMessage(err)
				continue
			}

			found++
			if err = writeResult(w, lcfg.Format, res); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	slog.Info("Lookup finished",
		"found", found, "not_found", notFound, "failed", failed)
	return failed, err
}

func query(db app.TaxonomyDB, q string, byTaxon bool) (app.Result, error) {
	if !byTaxon {
		return db.QueryAccession(q)
	}

	id, err := strconv.ParseUint(q, 10, 32)
	if err != nil {
		return app.Result{Query: q}, TaxonIDError(q, err)
	}
	res, err := db.QueryTaxon(uint32(id))
	res.Query = q
	return res, err
}

const tsvHeader = "Query\tTaxonID\tRank\tName\tLineage"

func writeResult(w io.Writer, format string, res app.Result) error {
	var line string

	switch format {
	case "json":
		bs, err := gnfmt.GNjson{}.Encode(res)
		if err != nil {
			return err
		}
		line = string(bs)
	case "tsv":
		var rank, name string
		if len(res.Lineage) > 0 {
			rank = res.Lineage[0].Rank.String()
			name = res.Lineage[0].Name
		}
		names := make([]string, len(res.Lineage))
		for i, v := range res.Lineage {
			names[i] = v.Name
		}
		line = gnfmt.ToCSV([]string{
			res.Query,
			strconv.FormatUint(uint64(res.TaxonID), 10),
			rank,
			name,
			strings.Join(names, "; "),
		}, '\t')
	default:
		line = fmt.Sprintf("%s\t%d\t%s", res.Query, res.TaxonID, res.Lineage)
	}

	_, err := fmt.Fprintln(w, line)
	return err
}
