// Command docstatus walks the configured repository once and prints the
// translation status tree. It reads the same configuration as the server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilsley/docstatus/apps/server/internal/config"
	"github.com/tilsley/docstatus/apps/server/internal/platform/github"
	"github.com/tilsley/docstatus/apps/server/internal/translations"
	"github.com/tilsley/docstatus/apps/server/internal/translations/adapters"
	"github.com/tilsley/docstatus/pkg/logging"
)

// errIncomplete makes `check` exit non-zero without printing a usage message.
var errIncomplete = errors.New("translation incomplete")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errIncomplete) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1) //nolint:gocritic // stop() called explicitly above
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docstatus",
		Short:         "Report translation status of a documentation repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var asJSON bool
	tree := &cobra.Command{
		Use:   "tree",
		Short: "Print the status tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodes, err := report(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(nodes)
			}
			printTree(cmd.OutOrStdout(), nodes)
			return nil
		},
	}
	tree.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")

	check := &cobra.Command{
		Use:   "check",
		Short: "Exit non-zero unless every top-level directory is fully translated",
		RunE: func(cmd *cobra.Command, _ []string) error {
			nodes, err := report(cmd.Context())
			if err != nil {
				return err
			}
			s := translations.Summarize(nodes)
			fmt.Fprintf(cmd.OutOrStdout(), "directories: %d green, %d yellow, %d red; index.md translated %d/%d\n",
				s.Green, s.Yellow, s.Red, s.Translated, s.IndexFiles)
			if !translations.Complete(nodes) {
				return errIncomplete
			}
			return nil
		},
	}

	root.AddCommand(tree, check)
	return root
}

func report(ctx context.Context) ([]*translations.Node, error) {
	log := logging.NewWithWriter(os.Stderr, "docstatus")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	creds := cfg.Credentials()
	gh, err := github.NewClient(creds, cfg.GitHub.APIURL)
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}

	fetcher := adapters.NewGitHubFetcher(gh, cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Ref)
	agg := translations.NewAggregator(fetcher, cfg.Aggregator(), log)
	return translations.NewService(agg, nil, creds.Present(), log).Report(ctx)
}

var statusMarks = map[translations.Status]string{
	translations.StatusGreen:  "[G]",
	translations.StatusYellow: "[Y]",
	translations.StatusRed:    "[R]",
}

func printTree(w io.Writer, nodes []*translations.Node) {
	var walk func(ns []*translations.Node, depth int)
	walk = func(ns []*translations.Node, depth int) {
		for _, n := range ns {
			name := n.Name
			if n.IsDir {
				name += "/"
			}
			fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), statusMarks[n.Status], name)
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
}
