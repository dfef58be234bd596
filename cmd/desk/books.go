package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bookdesk/internal/book"
	"bookdesk/internal/entity"
	"bookdesk/internal/platform/openlibrary"
)

func newBooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"book"},
		Short:   "Browse and manage the catalog",
	}
	cmd.AddCommand(
		newBooksListCmd(a),
		newBooksShowCmd(a),
		newBooksAddCmd(a),
		newBooksEditCmd(a),
		newBooksDeleteCmd(a),
	)
	return cmd
}

func newBooksListCmd(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), a, listing[book.Book]{
				fetch:  a.books.FetchAll,
				source: a.books,
				match:  book.Match,
				fields: book.Fields,
				render: renderBooks,
			}, f)
		},
	}
	cmd.Flags().StringVar(&f.query, "query", "", "search text")
	cmd.Flags().StringVar(&f.field, "field", "all", "field to search: "+fieldNames(book.Fields))
	cmd.Flags().IntVar(&f.pages, "pages", 1, "number of pages to show")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "prompt to load more pages")
	return cmd
}

func newBooksShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			res := a.books.FetchByID(cmd.Context(), id)
			if !res.Ok() {
				return res.Err()
			}
			renderBook(a.out, res.Value)
			return nil
		},
	}
}

type bookFlags struct {
	author      string
	title       string
	description string
	cover       string
	code        string
	isbn        string
	genre       string
	status      string
	year        int
	price       float64
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.author, "author", "", "author")
	cmd.Flags().StringVar(&f.title, "title", "", "title")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.cover, "cover", "", "cover image URL")
	cmd.Flags().StringVar(&f.code, "code", "", "shelf code, at most 3 characters")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN-10 or ISBN-13")
	cmd.Flags().StringVar(&f.genre, "genre", "", "genre")
	cmd.Flags().StringVar(&f.status, "status", "", "Available, Borrowed or Reserved")
	cmd.Flags().IntVar(&f.year, "year", 0, "publication year")
	cmd.Flags().Float64Var(&f.price, "price", 0, "price")
}

// apply copies the flags the user set onto b.
func (f *bookFlags) apply(cmd *cobra.Command, b *book.Book) {
	set := cmd.Flags().Changed
	if set("author") {
		b.Author = f.author
	}
	if set("title") {
		b.Title = f.title
	}
	if set("description") {
		b.Description = f.description
	}
	if set("cover") {
		b.CoverBook = f.cover
	}
	if set("code") {
		b.CodeBook = f.code
	}
	if set("isbn") {
		b.ISBN = f.isbn
	}
	if set("genre") {
		b.Genre = f.genre
	}
	if set("status") {
		b.Status = book.Status(f.status)
	}
	if set("year") {
		b.Year = entity.Int(f.year)
	}
	if set("price") {
		p := f.price
		b.Price = &p
	}
}

func newBooksAddCmd(a *app) *cobra.Command {
	var f bookFlags
	var lookup bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b book.Book
			f.apply(cmd, &b)
			if lookup {
				if b.ISBN == "" {
					return errors.New("--lookup needs --isbn")
				}
				client := openlibrary.NewClient(a.cfg.Lookup(userAgent), a.logger)
				e, err := client.LookupISBN(cmd.Context(), b.ISBN)
				if err != nil {
					return err
				}
				book.FillFrom(&b, e)
			}
			res := a.books.Create(cmd.Context(), b)
			if !res.Ok() {
				return res.Err()
			}
			renderBook(a.out, res.Value)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&lookup, "lookup", false, "fill empty fields from OpenLibrary by --isbn")
	return cmd
}

func newBooksEditCmd(a *app) *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			current := a.books.FetchByID(cmd.Context(), id)
			if !current.Ok() {
				return current.Err()
			}
			b := current.Value
			f.apply(cmd, &b)
			res := a.books.Update(cmd.Context(), id, b)
			if !res.Ok() {
				return res.Err()
			}
			renderBook(a.out, res.Value)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newBooksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return a.books.Delete(cmd.Context(), id).Err()
		},
	}
}

func renderBooks(w io.Writer, books []book.Book) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tTITLE\tAUTHOR\tYEAR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.CodeBook, b.Title, b.Author, b.Year, book.StyleFor(b.Status).Label)
	}
	tw.Flush()
}

func renderBook(w io.Writer, b book.Book) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", b.ID)
	fmt.Fprintf(tw, "Title\t%s\n", b.Title)
	fmt.Fprintf(tw, "Author\t%s\n", b.Author)
	fmt.Fprintf(tw, "Year\t%s\n", b.Year)
	fmt.Fprintf(tw, "Code\t%s\n", b.CodeBook)
	if b.ISBN != "" {
		fmt.Fprintf(tw, "ISBN\t%s\n", b.ISBN)
	}
	if b.Genre != "" {
		fmt.Fprintf(tw, "Genre\t%s\n", b.Genre)
	}
	fmt.Fprintf(tw, "Price\t%s\n", book.FormatPrice(b.Price))
	fmt.Fprintf(tw, "Status\t%s\n", book.StyleFor(b.Status).Label)
	fmt.Fprintf(tw, "Cover\t%s\n", b.CoverBook)
	fmt.Fprintf(tw, "Description\t%s\n", b.Description)
	tw.Flush()
}
