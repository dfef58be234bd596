package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bookdesk/internal/entity"
	"bookdesk/internal/loan"
)

// now is replaced in tests.
var now = time.Now

func newLoansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "loans",
		Aliases: []string{"loan", "borrowers"},
		Short:   "Browse and manage lending records",
	}
	cmd.AddCommand(
		newLoansListCmd(a),
		newLoansShowCmd(a),
		newLoansAddCmd(a),
		newLoansEditCmd(a),
		newLoansDeleteCmd(a),
	)
	return cmd
}

func newLoansListCmd(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lending records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), a, listing[loan.LoanRecord]{
				fetch:  a.loans.FetchAll,
				source: a.loans,
				match:  loan.Match,
				fields: loan.Fields,
				render: renderLoans,
			}, f)
		},
	}
	cmd.Flags().StringVar(&f.query, "query", "", "search text")
	cmd.Flags().StringVar(&f.field, "field", "all", "field to search: "+fieldNames(loan.Fields))
	cmd.Flags().IntVar(&f.pages, "pages", 1, "number of pages to show")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "prompt to load more pages")
	return cmd
}

func newLoansShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one lending record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			res := a.loans.FetchByID(cmd.Context(), id)
			if !res.Ok() {
				return res.Err()
			}
			renderLoan(a.out, res.Value)
			return nil
		},
	}
}

type loanFlags struct {
	name      string
	gender    string
	contact   string
	lending   string
	returning string
	status    string
	codes     []string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "borrower name")
	cmd.Flags().StringVar(&f.gender, "gender", "", "borrower gender")
	cmd.Flags().StringVar(&f.contact, "contact", "", "borrower contact")
	cmd.Flags().StringVar(&f.lending, "lending-date", "", "date the books were lent")
	cmd.Flags().StringVar(&f.returning, "return-date", "", "date the books are due back")
	cmd.Flags().StringVar(&f.status, "status", "", "reserved, returned or \"not yet returned\"")
	cmd.Flags().StringSliceVar(&f.codes, "code", nil, "book code, repeat or comma separate for several")
}

func (f *loanFlags) apply(cmd *cobra.Command, r *loan.LoanRecord) {
	set := cmd.Flags().Changed
	if set("name") {
		r.Name = f.name
	}
	if set("gender") {
		r.Gender = f.gender
	}
	if set("contact") {
		r.Contact = f.contact
	}
	if set("lending-date") {
		r.LendingDate = f.lending
	}
	if set("return-date") {
		r.ReturnDate = f.returning
	}
	if set("status") {
		r.Status = loan.Status(f.status)
	}
	if set("code") {
		r.CodeBook = f.codes
	}
}

func newLoansAddCmd(a *app) *cobra.Command {
	var f loanFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r loan.LoanRecord
			f.apply(cmd, &r)
			if err := a.checkCodes(cmd.Context(), r.CodeBook); err != nil {
				return err
			}
			res := a.loans.Create(cmd.Context(), r)
			if !res.Ok() {
				return res.Err()
			}
			renderLoan(a.out, res.Value)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newLoansEditCmd(a *app) *cobra.Command {
	var f loanFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a lending record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			current := a.loans.FetchByID(cmd.Context(), id)
			if !current.Ok() {
				return current.Err()
			}
			r := current.Value
			f.apply(cmd, &r)
			if err := a.checkCodes(cmd.Context(), r.CodeBook, current.Value.CodeBook...); err != nil {
				return err
			}
			res := a.loans.Update(cmd.Context(), id, r)
			if !res.Ok() {
				return res.Err()
			}
			renderLoan(a.out, res.Value)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newLoansDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a lending record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return a.loans.Delete(cmd.Context(), id).Err()
		},
	}
}

// checkCodes loads the catalog and rejects codes that cannot be lent.
func (a *app) checkCodes(ctx context.Context, codes []string, held ...string) error {
	if res := a.books.FetchAll(ctx); !res.Ok() {
		return res.Err()
	}
	return loan.CheckCodes(codes, a.books.Books(), held...)
}

func renderLoans(w io.Writer, loans []loan.LoanRecord) {
	t := now()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBOOKS\tLENT\tDUE\tSTATUS")
	for _, r := range loans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, strings.Join(r.CodeBook, ","), r.LendingDate, r.ReturnDate, loan.StatusLabel(r, t))
	}
	tw.Flush()
}

func renderLoan(w io.Writer, r loan.LoanRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", r.ID)
	fmt.Fprintf(tw, "Name\t%s\n", r.Name)
	fmt.Fprintf(tw, "Gender\t%s\n", r.Gender)
	fmt.Fprintf(tw, "Contact\t%s\n", r.Contact)
	fmt.Fprintf(tw, "Books\t%s (%d)\n", strings.Join(r.CodeBook, ", "), r.TotalBooks)
	fmt.Fprintf(tw, "Lent\t%s\n", r.LendingDate)
	fmt.Fprintf(tw, "Due\t%s\n", r.ReturnDate)
	fmt.Fprintf(tw, "Status\t%s\n", loan.StatusLabel(r, now()))
	tw.Flush()
}
