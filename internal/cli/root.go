// Package cli implements the minfraud command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	host       string
	output     string
	logFormat  string
	verbose    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "minfraud",
		Short: "minFraud legacy scoring client",
		Long: `minfraud builds minFraud transactions, sends them to the scoring service
and decodes the semicolon separated responses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default ~/.minfraud.yaml if present)")
	flags.StringVar(&opts.host, "host", "", "region (us_east, us_west, eu_west) or base URL")
	flags.StringVarP(&opts.output, "output", "o", "yaml", "output format: yaml or json")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newEncodeCmd(opts))
	root.AddCommand(newDecodeCmd(opts))
	root.AddCommand(newScoreCmd(opts))
	root.AddCommand(newVersionCmd(version))
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, opts *rootOptions) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "minfraud %s\n", version)
		},
	}
}
