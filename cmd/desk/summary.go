package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bookdesk/internal/book"
	"bookdesk/internal/hints"
	"bookdesk/internal/loan"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count books and loans by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return a.books.FetchAll(ctx).Err() })
			g.Go(func() error { return a.loans.FetchAll(ctx).Err() })
			if err := g.Wait(); err != nil {
				return err
			}

			books := a.books.Books()
			byStatus := make(map[book.Status]int)
			for _, b := range books {
				byStatus[b.Status]++
			}
			fmt.Fprintf(a.out, "Books: %d\n", len(books))
			for _, s := range book.Statuses {
				fmt.Fprintf(a.out, "  %s: %d\n", s, byStatus[s])
			}

			t := now()
			loans := a.loans.Loans()
			var out, overdue, lent int
			for _, r := range loans {
				if r.Status != loan.StatusReturned {
					out++
					lent += r.TotalBooks
				}
				if r.Overdue(t) {
					overdue++
				}
			}
			fmt.Fprintf(a.out, "Loans: %d\n", len(loans))
			fmt.Fprintf(a.out, "  Open: %d (%d books)\n", out, lent)
			fmt.Fprintf(a.out, "  Overdue: %d\n", overdue)
			return nil
		},
	}
}

func newLastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the ids of the last book and loan created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range []struct{ label, key string }{
				{"Last book", book.HintKey},
				{"Last loan", loan.HintKey},
			} {
				id, err := a.hints.Last(cmd.Context(), k.key)
				switch {
				case errors.Is(err, hints.ErrNoHint):
					fmt.Fprintf(a.out, "%s: none\n", k.label)
				case err != nil:
					return err
				default:
					fmt.Fprintf(a.out, "%s: %s\n", k.label, id)
				}
			}
			return nil
		},
	}
}
