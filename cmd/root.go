package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/iofs"
	"github.com/gnames/taxlookup/internal/iologger"
	app "github.com/gnames/taxlookup/pkg"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "taxlookup",
		Short:   "Taxlookup maps sequence accessions to NCBI lineages",
		Long: `Taxlookup builds a compact local index of NCBI taxonomy and
accession2taxid files and answers lookups from it.

Commands:
  - build:   Create the index from NCBI taxonomy files
  - install: Download a prepackaged index
  - lookup:  Print lineages of accessions or taxon IDs
  - info:    Show where the index came from

Configuration precedence (highest to lowest):
  1. CLI flags (--db, --cache-size, etc.)
  2. Environment variables (TAXLOOKUP_*)
  3. Config file (~/.config/taxlookup/config.yaml)
  4. Built-in defaults

Environment variables:
  TAXLOOKUP_DB_DIR              Location of the index
  TAXLOOKUP_DB_CACHE_SIZE       Block cache in MiB
  TAXLOOKUP_LOG_LEVEL           Log level (debug/info/warn/error)
  TAXLOOKUP_LOG_FORMAT          Log format (json/text/tint)
  TAXLOOKUP_LOG_DESTINATION     Log destination (file/stderr/stdout)`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for taxlookup")

	rootCmd.AddCommand(
		getBuildCmd(),
		getLookupCmd(),
		getInstallCmd(),
		getInfoCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Defaults until the config file is read.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// builds append to the log, so the log of a build survives
	// lookups that follow it
	appendLog := cmd.Name() == "build"
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, appendLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := getRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars lists allowed environment variables explicitly. They match
// the persistent fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("TAXLOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("db.dir", "TAXLOOKUP_DB_DIR")
	_ = v.BindEnv("db.cache_size", "TAXLOOKUP_DB_CACHE_SIZE")

	_ = v.BindEnv("build.accession_columns", "TAXLOOKUP_BUILD_ACCESSION_COLUMNS")
	_ = v.BindEnv("build.mapping_suffixes", "TAXLOOKUP_BUILD_MAPPING_SUFFIXES")

	_ = v.BindEnv("snapshot.url", "TAXLOOKUP_SNAPSHOT_URL")
	_ = v.BindEnv("snapshot.sha256", "TAXLOOKUP_SNAPSHOT_SHA256")

	_ = v.BindEnv("log.level", "TAXLOOKUP_LOG_LEVEL")
	_ = v.BindEnv("log.format", "TAXLOOKUP_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "TAXLOOKUP_LOG_DESTINATION")

	v.AutomaticEnv()
}
