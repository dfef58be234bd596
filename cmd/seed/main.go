package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bookdesk/internal/book"
	"bookdesk/internal/config"
	"bookdesk/internal/entity"
	"bookdesk/internal/loan"
	"bookdesk/internal/platform/restapi"
	"bookdesk/internal/record"
)

func main() {
	var (
		books       = flag.Int("books", 50, "Number of books to create")
		loans       = flag.Int("loans", 20, "Number of loan records to create")
		concurrency = flag.Int("concurrency", 4, "Parallel requests")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	logger := cfg.Logger()
	client := restapi.NewClient(cfg.Client("bookdesk-seed"), logger)

	bookStore := book.NewStore(client, record.WithLogger(logger))
	defer bookStore.Close()
	loanStore := loan.NewStore(client, record.WithLogger(logger))
	defer loanStore.Close()

	log.Printf("Creating %d books and %d loans at %s", *books, *loans, client.BaseURL())

	codes := make([]string, *books)
	for i := range codes {
		codes[i] = fmt.Sprintf("%c%02d", 'A'+rune(i/100%26), i%100)
	}

	var created atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	for i := 0; i < *books; i++ {
		b := randomBook(i, codes[i])
		g.Go(func() error {
			res := bookStore.Create(gctx, b)
			if err := res.Err(); err != nil {
				return err
			}
			created.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Failed to create books: %v", err)
	}
	log.Printf("Created %d books", created.Load())

	created.Store(0)
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for i := 0; i < *loans && len(codes) > 0; i++ {
		r := randomLoan(i, codes)
		g.Go(func() error {
			res := loanStore.Create(gctx, r)
			if err := res.Err(); err != nil {
				return err
			}
			created.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Failed to create loans: %v", err)
	}
	log.Printf("Created %d loans", created.Load())
}

var (
	authors  = []string{"Frank Herbert", "Jane Austen", "Bram Stoker", "Pramoedya Ananta Toer", "Andrea Hirata", "Ursula K. Le Guin", "Mary Shelley"}
	genres   = []string{"Fiction", "Science Fiction", "History", "Romance", "Mystery", "Biography"}
	names    = []string{"Ana", "Budi", "Citra", "Dewi", "Eko", "Fajar", "Gita"}
	genders  = []string{"Male", "Female"}
	statuses = []book.Status{book.StatusAvailable, book.StatusAvailable, book.StatusBorrowed, book.StatusReserved}
)

func randomBook(i int, code string) book.Book {
	price := float64(50+rand.Intn(450)) * 1000
	return book.Book{
		Author:      authors[rand.Intn(len(authors))],
		Title:       fmt.Sprintf("Book Title %d - %s", i+1, getRandomWord()),
		Description: fmt.Sprintf("This is a book about %s.", getRandomWord()),
		Year:        entity.Int(1950 + rand.Intn(75)),
		CoverBook:   fmt.Sprintf("https://covers.example/%d.jpg", i+1),
		CodeBook:    code,
		Price:       &price,
		Genre:       genres[rand.Intn(len(genres))],
		Status:      statuses[rand.Intn(len(statuses))],
	}
}

func randomLoan(i int, codes []string) loan.LoanRecord {
	n := 1 + rand.Intn(3)
	picked := make([]string, 0, n)
	for range n {
		picked = append(picked, codes[rand.Intn(len(codes))])
	}
	day := 1 + rand.Intn(20)
	return loan.LoanRecord{
		Name:        fmt.Sprintf("%s %d", names[rand.Intn(len(names))], i+1),
		Gender:      genders[rand.Intn(len(genders))],
		CodeBook:    picked,
		LendingDate: fmt.Sprintf("2024-06-%02d", day),
		ReturnDate:  fmt.Sprintf("2024-06-%02d", day+7),
		Contact:     fmt.Sprintf("08%09d", rand.Intn(1_000_000_000)),
	}
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "History", "Future",
		"Reality", "Imagination", "Wisdom", "Light", "Darkness", "Time", "Space",
	}
	return words[rand.Intn(len(words))]
}
