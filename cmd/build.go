package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/iotaxdb"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	var force bool

	buildCmd := &cobra.Command{
		Use:   "build <taxonomy-dir>",
		Short: "Build the taxonomy index from NCBI files",
		Long: `Build the taxonomy index from NCBI taxonomy files.

The taxonomy directory must contain:
  taxdump.tar.gz      NCBI taxonomy dump (names.dmp, nodes.dmp)
  accession2taxid/    accession2taxid mapping files

This command:
  1. Removes the existing index
  2. Parses the taxonomy dump
  3. Merges all mapping files and stores accession runs
  4. Stores names, parents and ranks of every taxon
  5. Writes build metadata and the version marker

Mapping files are selected by 'build.mapping_suffixes' in config.yaml.

Use --force to replace an existing index without confirmation.

Examples:
  taxlookup build ~/ncbi
  taxlookup build ~/ncbi --db /data/taxonomy.badger --cache-size 1024
  taxlookup build ~/ncbi -f`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, args[0], force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlags(buildCmd)
	buildCmd.Flags().BoolVarP(&force, "force", "f", false,
		"replace existing index without confirmation")

	return buildCmd
}

func runBuild(cmd *cobra.Command, srcDir string, force bool) error {
	buildOpts := dbOptions(cmd)
	buildOpts = append(buildOpts,
		config.OptSource(config.FromFiles),
		config.OptSourceDir(srcDir),
	)
	cfg.Update(buildOpts)

	dir := cfg.DBDir()
	if !force && exists(dir) {
		gn.Warn("Index at <em>%s</em> will be replaced", dir)
		ok, err := confirm(cmd, cmd.InOrStdin(), "Do you want to continue?")
		if err != nil {
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	db, err := iotaxdb.Build(cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
