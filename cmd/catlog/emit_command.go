package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abyssdigger/catlog"
)

func newEmitCommand(ctx *commandContext) *cobra.Command {
	var category string
	var severity string
	var printPath bool

	cmd := &cobra.Command{
		Use:   "emit [message...]",
		Short: "Log a message, or every line of stdin when no message is given",
		Example: "  catlog emit -C Network \"connection lost\"\n" +
			"  make 2>&1 | catlog emit -C System -s warning",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sev, err := parseSeverity(severity)
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := logger.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("close log file: %w", cerr)
				}
			}()

			cat := catlog.Category(strings.TrimSpace(category))
			if cat == "" {
				cat = sev.DefaultCategory()
			}
			if len(args) > 0 {
				emit(logger, sev, strings.Join(args, " "), cat)
			} else {
				ch := logger.Channel(cat).Sev(sev)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if len(scanner.Bytes()) == 0 {
						continue
					}
					if _, err := ch.Write(scanner.Bytes()); err != nil {
						return err
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}
			if printPath {
				fmt.Fprintln(cmd.OutOrStdout(), logger.SessionPath())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "C", "", "Category of the record (default depends on severity)")
	cmd.Flags().StringVarP(&severity, "severity", "s", "info", "Severity: info, warning or error")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "Print the session log file path afterwards")
	return cmd
}

func emit(logger *catlog.Logger, sev catlog.Severity, msg string, cat catlog.Category) {
	switch sev {
	case catlog.SEV_WARNING:
		logger.Warn(msg, cat)
	case catlog.SEV_ERROR:
		logger.Error(msg, cat)
	default:
		logger.Log(msg, cat)
	}
}

func newMarkCommand(ctx *commandContext) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "mark [label]",
		Short: "Log a \"=== label ===\" separator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}
			label := ""
			if len(args) == 1 {
				label = args[0]
			}
			if c := strings.TrimSpace(category); c != "" {
				logger.Mark(label, catlog.Category(c))
			} else {
				logger.Mark(label)
			}
			return logger.Close()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "C", "", "Category of the separator (default None)")
	return cmd
}
