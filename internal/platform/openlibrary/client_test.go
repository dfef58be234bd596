package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneEdition = `{"ISBN:9780441013593": {
  "title": "Dune",
  "publish_date": "August 2005",
  "cover": {"medium": "https://covers.example/m.jpg", "large": "https://covers.example/l.jpg"},
  "authors": [{"name": "Frank Herbert"}],
  "subjects": [{"name": "Science fiction"}, {"name": "Deserts"}]
}}`

func newTestClient(t *testing.T, h http.HandlerFunc, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 100, MaxRetries: retries}, nil)
}

func TestLookupISBN(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(duneEdition))
	}, 0)

	e, err := c.LookupISBN(context.Background(), "978-0-441-01359-3")
	require.NoError(t, err)

	assert.Equal(t, "/api/books", got.URL.Path)
	assert.Equal(t, "ISBN:9780441013593", got.URL.Query().Get("bibkeys"))
	assert.Equal(t, "data", got.URL.Query().Get("jscmd"))

	assert.Equal(t, "Dune", e.Title)
	assert.Equal(t, "Frank Herbert", e.AuthorNames())
	assert.Equal(t, "https://covers.example/l.jpg", e.CoverURL())
	assert.Equal(t, "Science fiction", e.Genre())
	year, ok := e.Year()
	assert.True(t, ok)
	assert.Equal(t, 2005, year)
}

func TestLookupISBNNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, 0)

	_, err := c.LookupISBN(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupISBNRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(duneEdition))
	}, 1)

	e, err := c.LookupISBN(context.Background(), "9780441013593")
	require.NoError(t, err)
	assert.Equal(t, "Dune", e.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLookupISBNClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, 3)

	_, err := c.LookupISBN(context.Background(), "9780441013593")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEditionYear(t *testing.T) {
	for date, want := range map[string]int{"1965": 1965, "2005-03-01": 2005, "March 1818": 1818} {
		y, ok := Edition{PublishDate: date}.Year()
		assert.True(t, ok, date)
		assert.Equal(t, want, y, date)
	}
	_, ok := Edition{PublishDate: "unknown"}.Year()
	assert.False(t, ok)
}
