package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/farhapartex/random-wiki/internal/fetchers"
	grpcClient "github.com/farhapartex/random-wiki/internal/grpc"
	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/logging"
	"github.com/farhapartex/random-wiki/internal/presenter"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a random article and print its text",
	Long: `Fetch a random Wikipedia article whose extract is at least --min characters
long, cut to --max characters, and place it in the output.

Diagnostics are only printed when the fetch fails, unless --verbose is set.

Examples:
  wikitext fetch --lang de --min 500 --retries 10
  wikitext fetch --out article.txt --new-view   # never overwrite article.txt
  wikitext fetch --open                         # also open the article in a browser`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("lang", "", "article language (default from FETCH_LANGUAGE)")
	fetchCmd.Flags().Int("min", 0, "minimum extract length in characters (default from FETCH_MIN_LENGTH)")
	fetchCmd.Flags().Int("max", 0, "maximum extract length in characters (default from FETCH_MAX_LENGTH)")
	fetchCmd.Flags().Int("retries", 0, "maximum number of articles to try (default from FETCH_MAX_RETRIES)")
	fetchCmd.Flags().Bool("no-truncate", false, "accept articles longer than --max unchanged")
	fetchCmd.Flags().String("out", "", "write the text to this file instead of stdout")
	fetchCmd.Flags().Bool("new-view", false, "with --out, write to a new numbered file if the file exists")
	fetchCmd.Flags().Bool("open", false, "open the source article in the default browser")
	fetchCmd.Flags().String("remote", "", "address of a wikitext gRPC server to fetch through")
	fetchCmd.Flags().Bool("insecure", false, "skip TLS certificate verification for Wikipedia (local fetches only)")
	fetchCmd.Flags().Duration("timeout", 0, "give up after this long (0 means no limit)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	lang, _ := flags.GetString("lang")
	minLength, _ := flags.GetInt("min")
	maxLength, _ := flags.GetInt("max")
	retries, _ := flags.GetInt("retries")
	noTruncate, _ := flags.GetBool("no-truncate")
	out, _ := flags.GetString("out")
	newView, _ := flags.GetBool("new-view")
	openBrowser, _ := flags.GetBool("open")
	remote, _ := flags.GetString("remote")
	insecure, _ := flags.GetBool("insecure")
	timeout, _ := flags.GetDuration("timeout")

	if insecure && remote != "" {
		return fmt.Errorf("--insecure cannot be combined with --remote, the server uses its own TLS settings")
	}

	console := presenter.NewBufferConsole(cmd.ErrOrStderr())
	var logOut io.Writer = console
	if verbose {
		logOut = cmd.ErrOrStderr()
	}
	logger := logging.New(cfg.Logging, logOut)

	if insecure {
		cfg.Wikipedia.InsecureSkipVerify = true
		// the console is cleared by Run, so this goes straight to stderr
		warn := logging.New(cfg.Logging, cmd.ErrOrStderr())
		warn.Warn().Msg("TLS certificate verification is disabled for this fetch")
	}

	input := handlers.ArticleInput{
		Language:          lang,
		MaxLength:         maxLength,
		MaxRetries:        retries,
		DisableTruncation: noTruncate,
	}
	if flags.Changed("min") {
		input.MinLength = &minLength
	}

	var document presenter.Document = presenter.NewWriterDocument(cmd.OutOrStdout())
	if out != "" {
		document = presenter.NewFileDocument(out)
	}

	var source presenter.ArticleSource
	if remote != "" {
		client, err := grpcClient.Dial(remote)
		if err != nil {
			return err
		}
		defer client.Close()
		source = client
	} else {
		fetcher := fetchers.NewArticleFetcher(fetchers.NewWikipediaFetcher(cfg.Wikipedia), logger)
		source = handlers.NewArticleHandler(cfg, fetcher, nil, logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p := presenter.New(document, console, presenter.SystemBrowser{}, logger)
	result, err := p.Run(ctx, source, input, presenter.Options{
		NewView:       newView,
		OpenInBrowser: openBrowser,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Source: %s (%d attempts, %s)\n",
		result.SourceURL, len(result.Attempts), result.Duration.Round(time.Millisecond))
	return nil
}
