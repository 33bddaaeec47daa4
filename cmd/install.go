package cmd

import (
	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/ioinstall"
	"github.com/gnames/taxlookup/internal/iotaxdb"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/spf13/cobra"
)

// getInstallCmd returns the install command.
func getInstallCmd() *cobra.Command {
	var (
		force   bool
		archive string
	)

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install a prepackaged taxonomy index",
		Long: `Download a prepackaged taxonomy index and unpack it.

The archive is downloaded from 'snapshot.url' in config.yaml and its
SHA-256 digest must match 'snapshot.sha256', otherwise nothing is
installed. With --archive a local snapshot is unpacked instead and no
download happens.

Use --force to replace an existing index without confirmation.

Examples:
  taxlookup install
  taxlookup install --db /data/taxonomy.badger -f
  taxlookup install --archive taxonomy.tar.gz
  taxlookup install --url https://example.org/tax.tar.gz --sha256 <digest>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInstall(cmd, archive, force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlags(installCmd)
	installCmd.Flags().BoolVarP(&force, "force", "f", false,
		"replace existing index without confirmation")
	installCmd.Flags().StringVarP(&archive, "archive", "a", "",
		"unpack a local snapshot archive instead of downloading")
	installCmd.Flags().String("url", "", "snapshot URL")
	installCmd.Flags().String("sha256", "", "expected SHA-256 of the snapshot")

	return installCmd
}

func runInstall(cmd *cobra.Command, archive string, force bool) error {
	installOpts := dbOptions(cmd)
	if cmd.Flags().Changed("url") {
		s, _ := cmd.Flags().GetString("url")
		installOpts = append(installOpts, config.OptSnapshotURL(s))
	}
	if cmd.Flags().Changed("sha256") {
		s, _ := cmd.Flags().GetString("sha256")
		installOpts = append(installOpts, config.OptSnapshotSHA256(s))
	}
	if archive != "" {
		installOpts = append(installOpts,
			config.OptSource(config.FromArchive),
			config.OptArchivePath(archive),
		)
	}
	cfg.Update(installOpts)

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

	if archive == "" {
		in := ioinstall.Installer{
			URL:    cfg.Snapshot.URL,
			SHA256: cfg.Snapshot.SHA256,
		}
		if err := in.Install(cmd.Context(), dir); err != nil {
			return err
		}
	}

	db, err := iotaxdb.Build(cfg)
	if err != nil {
		return err
	}
	gn.Info("Index is installed at <em>%s</em>", db.Dir())
	return db.Close()
}
