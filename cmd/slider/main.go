package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "slider",
		Short: "Slider - a carousel you can render, play and serve",
		Long: `Slider drives a looping carousel from a slider.yaml or slider.toml file.
Render it to static HTML, preview it in the terminal, or serve it as a live
page whose state is kept on the server.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.setupLogging()
		},
	}
	opts.addPersistentFlags(rootCmd)

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newPlayCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}
