package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/spf13/cobra"
)

// dbFlags adds --db and --cache-size to cmd.
func dbFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "",
		"location of the index (default ~/.local/share/taxlookup/taxonomy.badger)")
	cmd.Flags().Int("cache-size", 0,
		"block cache of the index in MiB")
}

// dbOptions returns options for the explicitly set --db and
// --cache-size flags.
func dbOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("db") {
		s, _ := cmd.Flags().GetString("db")
		res = append(res, config.OptDBDir(s))
	}
	if cmd.Flags().Changed("cache-size") {
		i, _ := cmd.Flags().GetInt("cache-size")
		res = append(res, config.OptDBCacheSize(i))
	}
	return res
}

// confirm asks a yes/no question and reads the answer from r.
func confirm(cmd *cobra.Command, r io.Reader, question string) (bool, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\n%s (yes/no): ", question)

	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		gn.Warn("Failed to read user input")
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
