package restapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T, h http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return NewClient(cfg, nil)
}

func TestClient_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to GET with json headers", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/books", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`[{"id":1,"title":"Dune"}]`))
		}, Config{})

		var got []item
		err := c.Do(ctx, "", "/books", nil, &got)
		require.NoError(t, err)
		assert.Equal(t, []item{{ID: 1, Title: "Dune"}}, got)
	})

	t.Run("serializes body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			b, _ := io.ReadAll(r.Body)
			var in item
			require.NoError(t, json.Unmarshal(b, &in))
			in.ID = 9
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in)
		}, Config{})

		var got item
		err := c.Post(ctx, "books", item{Title: "Emma"}, &got)
		require.NoError(t, err)
		assert.Equal(t, item{ID: 9, Title: "Emma"}, got)
	})

	t.Run("non-success status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, Config{})

		err := c.Put(ctx, "/books/1", item{}, nil)
		require.Error(t, err)
		var re *Error
		require.ErrorAs(t, err, &re)
		assert.Equal(t, KindStatus, re.Kind)
		assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
		assert.Contains(t, re.Error(), "Internal Server Error")
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}, Config{})

		err := c.Get(ctx, "/books/404", &item{})
		assert.True(t, IsNotFound(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":`))
		}, Config{})

		err := c.Get(ctx, "/books/1", &item{})
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("empty body with target", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, Config{})

		var got item
		assert.NoError(t, c.Get(ctx, "/books/1", &got))
		assert.Equal(t, item{}, got)
	})

	t.Run("unencodable body", func(t *testing.T) {
		c := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
		err := c.Post(ctx, "/books", make(chan int), nil)
		assert.Equal(t, KindEncode, KindOf(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(Config{BaseURL: url}, nil)
		err := c.Get(ctx, "/books", nil)
		assert.Equal(t, KindNetwork, KindOf(err))
	})
}

func TestClient_Retries(t *testing.T) {
	ctx := context.Background()

	t.Run("no retries by default", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}, Config{})

		assert.Error(t, c.Get(ctx, "/books", nil))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}, Config{MaxRetries: 2})

		var got []item
		assert.NoError(t, c.Get(ctx, "/books", &got))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("retries keep the request id", func(t *testing.T) {
		var ids []string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			ids = append(ids, r.Header.Get("X-Request-Id"))
			if len(ids) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}, Config{MaxRetries: 1})

		require.NoError(t, c.Get(ctx, "/books", nil))
		require.Len(t, ids, 2)
		assert.NotEmpty(t, ids[0])
		assert.Equal(t, ids[0], ids[1])

		require.NoError(t, c.Get(ctx, "/books", nil))
		assert.NotEqual(t, ids[0], ids[2])
	})

	t.Run("post is never retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"id":1,"title":"Dune"}`))
		}, Config{MaxRetries: 2})

		var got item
		err := c.Post(ctx, "/books", item{Title: "Dune"}, &got)
		require.Error(t, err)
		assert.Equal(t, KindStatus, KindOf(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("put is retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"id":1,"title":"Dune"}`))
		}, Config{MaxRetries: 2})

		var got item
		require.NoError(t, c.Put(ctx, "/books/1", item{ID: 1, Title: "Dune"}, &got))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("client errors fail fast", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}, Config{MaxRetries: 3})

		assert.Error(t, c.Get(ctx, "/books", nil))
		assert.Equal(t, int32(1), calls.Load())
	})
}
