package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"bookdesk/internal/book"
	"bookdesk/internal/config"
	"bookdesk/internal/hints"
	"bookdesk/internal/loan"
	"bookdesk/internal/notify"
	"bookdesk/internal/platform/restapi"
	"bookdesk/internal/record"
)

const userAgent = "bookdesk-cli"

// app holds what every subcommand needs. It is filled in by open before a
// subcommand runs.
type app struct {
	apiURL string
	quiet  bool

	cfg    *config.Config
	logger *slog.Logger
	hints  hints.Store
	books  *book.Store
	loans  *loan.Store
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "desk",
		Short:        "Manage the library catalog and lending records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd.OutOrStdout())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "backend base URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "do not print notifications")

	root.AddCommand(newBooksCmd(a), newLoansCmd(a), newSummaryCmd(a), newLastCmd(a))
	return root
}

func (a *app) open(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a.out = out
	a.cfg = config.Load()
	if a.apiURL != "" {
		a.cfg.API.BaseURL = a.apiURL
	}
	a.logger = a.cfg.Logger()

	hs, err := hints.Open(ctx, a.cfg.HintsDSN)
	if err != nil {
		a.logger.Warn("hints unavailable, using memory", "dsn", a.cfg.HintsDSN, "error", err)
		hs = hints.NewMemory()
	}
	a.hints = hs

	var notifier notify.Notifier = notify.Nop{}
	if !a.quiet {
		notifier = notify.Func(func(_ context.Context, n notify.Notification) {
			fmt.Fprintf(out, "%s %s\n", n.Title, n.Message)
		})
	}

	client := restapi.NewClient(a.cfg.Client(userAgent), a.logger)
	opts := []record.Option{
		record.WithNotifier(notifier),
		record.WithHints(a.hints),
		record.WithLogger(a.logger),
	}
	a.books = book.NewStore(client, opts...)
	a.loans = loan.NewStore(client, opts...)
	return nil
}

func (a *app) close() error {
	if a.books != nil {
		a.books.Close()
	}
	if a.loans != nil {
		a.loans.Close()
	}
	if a.hints != nil {
		return a.hints.Close()
	}
	return nil
}
