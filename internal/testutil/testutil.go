package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookdesk/internal/fakeapi"
	"bookdesk/internal/platform/restapi"
)

// SeedDB is a small json-server database used across store tests.
const SeedDB = `{
  "books": [
    {"id": 1, "author": "Frank Herbert", "title": "Dune", "description": "Desert planet", "year": 1965, "coverBook": "dune.jpg", "codeBook": "D01", "isbn": "9780441013593", "price": 9.99, "status": "Available"},
    {"id": 2, "author": "Jane Austen", "title": "Emma", "description": "Matchmaking", "year": "1815", "coverBook": "emma.jpg", "codeBook": "E01", "status": "Borrowed"},
    {"id": 3, "author": "Bram Stoker", "title": "Dracula", "description": "Count", "year": 1897, "coverBook": "dracula.jpg", "codeBook": "B03", "status": "Reserved"}
  ],
  "users": [
    {"id": 1, "name": "Ana", "gender": "female", "codeBook": ["D01"], "lendingDate": "2024-01-02", "returnDate": "2024-01-09", "totalBooks": 1, "status": "returned", "contact": "0811"},
    {"id": 2, "name": "Budi", "gender": "male", "codeBook": ["E01", "B03"], "loanDate": "2024-02-01", "returnDate": "2024-02-08", "totalItem": 2, "status": "not yet returned", "contact": "0812"}
  ]
}`

// FakeAPI is a running in-memory backend plus a client pointed at it.
type FakeAPI struct {
	Server  *httptest.Server
	Handler *fakeapi.HTTPHandler
	Memory  *fakeapi.Memory
	Client  *restapi.Client
}

// NewFakeAPI starts an empty fake backend that is shut down with the test.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	memory := fakeapi.NewMemory(fakeapi.DefaultResources...)
	handler := fakeapi.NewHTTPHandler(memory, DiscardLogger())
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	return &FakeAPI{
		Server:  server,
		Handler: handler,
		Memory:  memory,
		Client:  restapi.NewClient(restapi.Config{BaseURL: server.URL}, DiscardLogger()),
	}
}

// NewSeededFakeAPI starts a fake backend loaded with SeedDB.
func NewSeededFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	api := NewFakeAPI(t)
	if err := api.Memory.Seed(strings.NewReader(SeedDB)); err != nil {
		t.Fatalf("seed fake api: %v", err)
	}
	return api
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
