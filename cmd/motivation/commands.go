package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Shuaibullattil/daily-motivation/internal/app"
	"github.com/Shuaibullattil/daily-motivation/internal/config"
	"github.com/Shuaibullattil/daily-motivation/internal/notifications"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
)

// buildApp is swapped in tests.
var buildApp = func(cfg config.Config, log *slog.Logger, opts ...app.Option) *app.App {
	return app.New(cfg, log, opts...)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "motivation",
		Short:         "Generate and deliver the daily motivation message",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSendCmd(), newPreviewCmd(), newProfileCmd())
	return root
}

// --- send ---

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Generate a message and email it",
		Long: `Generate a message for the stored profile and email it.

Examples:
  motivation send
  motivation send --to friend@example.com
  motivation send --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			to, _ := cmd.Flags().GetString("to")

			cfg := config.Load()
			log := observability.NewLogger(cfg.Env)

			var opts []app.Option
			if dryRun {
				opts = append(opts, app.WithNotifier(notifications.NewLogNotifier(log)))
			}
			a := buildApp(cfg, log, opts...)

			if to == "" {
				to = a.Dispatcher.Recipient()
			}
			if to == "" {
				return fmt.Errorf("no recipient: set EMAIL, MOTIVATION_RECIPIENT or --to")
			}

			res, err := a.Dispatcher.SendTo(cmd.Context(), to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			if dryRun {
				fmt.Fprintf(out, "(dry run, not sent to %s)\n", res.SentTo)
				return nil
			}
			fmt.Fprintf(out, "sent to %s\n", res.SentTo)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "log the email instead of sending it")
	cmd.Flags().String("to", "", "override the configured recipient")
	return cmd
}

// --- preview ---

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Generate and print a message without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			a := buildApp(cfg, observability.NewLogger(cfg.Env))

			msg, err := a.Dispatcher.Preview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// --- profile ---

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the stored profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			a := buildApp(cfg, observability.NewLogger(cfg.Env))

			p, err := a.Store.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
