package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags rootFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "catlog",
		Short:         "Category-tagged logging from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Category table (TOML); everything is logged without one")
	rootCmd.PersistentFlags().StringVar(&flags.app, "app", "catlog", "Application name used for the default data directory")
	rootCmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Data directory receiving Logs/ (default: user config dir/<app>)")
	rootCmd.PersistentFlags().StringVar(&flags.render, "render", "auto", "Console rendering: auto, markup, ansi or plain")
	rootCmd.PersistentFlags().BoolVar(&flags.interactive, "interactive", false, "Treat the run as interactive for editor-only tables")

	rootCmd.AddCommand(newEmitCommand(ctx))
	rootCmd.AddCommand(newMarkCommand(ctx))
	rootCmd.AddCommand(newCategoriesCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
