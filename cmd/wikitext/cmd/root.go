// Package cmd contains the wikitext CLI commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farhapartex/random-wiki/internal/config"
)

var (
	verbose bool
	cfg     *config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "wikitext",
	Short: "Fetch the plain text of a random Wikipedia article",
	Long: `wikitext fetches the plain-text extract of a random Wikipedia article,
retrying until an article of acceptable length turns up, and writes it to
stdout or a text file.

Configuration is read from the environment (and a .env file when present);
flags override it per invocation.

Example usage:
  wikitext fetch                       # English article, default bounds
  wikitext fetch --lang ko --max 500   # Korean article, at most 500 characters
  wikitext fetch --out sample.txt      # write into sample.txt
  wikitext fetch --remote :50051       # ask a running wikitext server
  wikitext languages                   # list configured languages`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostics even when the fetch succeeds")
}

func initConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}
