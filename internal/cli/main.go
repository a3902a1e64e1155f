package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "bvs (-u URL [URL...] | -f urls.txt)",
		Short:        "Analyze the opening hook and structure of short videos",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runAnalyze,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceErrors = true

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default bvs.yaml if present)")
	pf.String("rules", "", "YAML file replacing the built-in hook rules")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	f := root.Flags()
	f.StringArrayP("urls", "u", nil, "Video URL to analyze; repeat the flag or list more URLs after it")
	f.StringP("file", "f", "", "File with one video URL per line")
	f.StringP("output", "o", "", "Output directory (default output)")
	f.Bool("no-download", false, "Skip downloading the video file")
	f.Bool("no-report", false, "Skip generating the Markdown and JSON reports")
	f.String("lang", "", "Speech language passed to whisper (default zh)")

	root.MarkFlagsMutuallyExclusive("urls", "file")
	root.MarkFlagsOneRequired("urls", "file")

	root.AddCommand(newReportCmd())
	return root
}
