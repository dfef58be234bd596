package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"bookdesk/internal/search"
	"bookdesk/internal/state"
	"bookdesk/internal/view"
)

type listFlags struct {
	query       string
	field       string
	pages       int
	interactive bool
}

type listing[T any] struct {
	fetch  func(ctx context.Context) state.Result[[]T]
	source view.Source[T]
	match  search.MatchFunc[T]
	fields []search.Field
	render func(w io.Writer, items []T)
}

func runList[T any](ctx context.Context, a *app, l listing[T], f listFlags) error {
	field, err := search.ParseField(f.field, l.fields)
	if err != nil {
		return err
	}
	if res := l.fetch(ctx); !res.Ok() {
		return res.Err()
	}

	opts := a.cfg.SearchOptions()
	opts.Mode = search.ModeExplicit
	list := view.NewList(l.source, l.match, opts, a.cfg.PageSize)
	defer list.Close()

	list.Search().SetQuery(f.query)
	list.Search().SetField(field)
	list.Search().Trigger()
	for i := 1; i < f.pages; i++ {
		list.LoadMore()
	}

	show := func() {
		l.render(a.out, list.Displayed())
		fmt.Fprintf(a.out, "Showing %d of %d\n", len(list.Displayed()), list.Total())
	}
	show()

	if !f.interactive || !term.IsTerminal(int(os.Stdin.Fd())) {
		if list.HasMore() {
			fmt.Fprintln(a.out, "Use --pages to show more.")
		}
		return nil
	}

	sc := bufio.NewScanner(os.Stdin)
	for list.HasMore() {
		fmt.Fprint(a.out, "Load more? [y/N] ")
		if !sc.Scan() || !strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
			break
		}
		list.LoadMore()
		show()
	}
	return nil
}

func fieldNames(fields []search.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
