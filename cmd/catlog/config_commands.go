package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abyssdigger/catlog"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the table (the sample table without --config)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg == nil {
				cfg = catlog.DefaultConfig()
			}

			rows := make([][]string, 0, len(cfg.Categories))
			for _, cat := range cfg.AllCategories() {
				emoji, color := cfg.Decorators(cat)
				rows = append(rows, []string{
					string(cat),
					enabledText(cfg.IsCategoryEnabled(cat)),
					color,
					emoji,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Enabled", "Color", "Emoji"},
				rows,
				[]columnAlignment{alignLeft, alignCenter, alignLeft, alignCenter},
			))
			fmt.Fprintf(out, "enable_all_logs=%t editor_only=%t\n", cfg.EnableAllLogs, cfg.EditorOnly)
			return nil
		},
	}
}

func enabledText(on bool) string {
	if on {
		return "yes"
	}
	return "no"
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the category table given with --config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(ctx.flags.config) == "" {
				return errors.New("no configuration file given (use --config)")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s:\n%w", ctx.flags.config, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.flags.config)
			fmt.Fprintf(out, "Categories: %d\n", len(cfg.Categories))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample category table",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = "catlog.toml"
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			file, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}
			if _, err := catlog.DefaultConfig().WriteTo(file); err != nil {
				file.Close()
				return fmt.Errorf("write sample config: %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file (default ./catlog.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
