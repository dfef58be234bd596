package fakeapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"bookdesk/internal/httpx"
)

const maxBodyBytes = 1 << 20

// DefaultResources are the collections the catalog client talks to.
var DefaultResources = []string{"books", "users"}

type fault struct {
	method   string
	resource string
}

// HTTPHandler exposes a Memory over json-server compatible routes.
type HTTPHandler struct {
	memory *Memory
	logger *slog.Logger

	mu        sync.RWMutex
	faults    map[fault]int
	intercept func(*http.Request)
}

func NewHTTPHandler(memory *Memory, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{
		memory: memory,
		logger: logger,
		faults: make(map[fault]int),
	}
}

// Fail makes every request with the given method against resource answer
// with status until Heal is called. An empty method matches all methods.
func (h *HTTPHandler) Fail(method, resource string, status int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.faults[fault{method: method, resource: resource}] = status
}

func (h *HTTPHandler) Heal() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.faults)
}

// Intercept registers fn to run before each resource request is served.
// Tests use it to hold requests open.
func (h *HTTPHandler) Intercept(fn func(*http.Request)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.intercept = fn
}

func (h *HTTPHandler) before(r *http.Request, resource string) int {
	h.mu.RLock()
	fn := h.intercept
	status := h.faults[fault{method: r.Method, resource: resource}]
	if status == 0 {
		status = h.faults[fault{resource: resource}]
	}
	h.mu.RUnlock()

	if fn != nil {
		fn(r)
	}
	return status
}

// Routes returns the mux with all resource routes, wrapped in the standard
// middleware chain.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{resource}", h.List)
	mux.HandleFunc("POST /{resource}", h.Create)
	mux.HandleFunc("GET /{resource}/{id}", h.Get)
	mux.HandleFunc("PUT /{resource}/{id}", h.Replace)
	mux.HandleFunc("PATCH /{resource}/{id}", h.Patch)
	mux.HandleFunc("DELETE /{resource}/{id}", h.Delete)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(h.logger),
		httpx.RecoveryMiddleware(h.logger),
		httpx.CORSMiddleware([]string{"*"}),
		httpx.RequestSizeLimitMiddleware(maxBodyBytes),
	)
}

// List handles GET /{resource}
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	records, err := h.memory.List(resource)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

// Get handles GET /{resource}/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	rec, err := h.memory.Get(resource, r.PathValue("id"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Create handles POST /{resource}
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.memory.Create(resource, body)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	h.logger.Debug("record created", "resource", resource, "id", rec.id())
	httpx.JSON(w, http.StatusCreated, rec)
}

// Replace handles PUT /{resource}/{id}
func (h *HTTPHandler) Replace(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.memory.Replace(resource, r.PathValue("id"), body)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Patch handles PATCH /{resource}/{id}
func (h *HTTPHandler) Patch(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.memory.Patch(resource, r.PathValue("id"), body)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /{resource}/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if h.injected(w, r, resource) {
		return
	}
	if err := h.memory.Delete(resource, r.PathValue("id")); err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Record{})
}

func (h *HTTPHandler) injected(w http.ResponseWriter, r *http.Request, resource string) bool {
	status := h.before(r, resource)
	if status == 0 {
		return false
	}
	httpx.JSONError(w, r, status, "INJECTED_FAULT", http.StatusText(status))
	return true
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request) (Record, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body Record
	if err := dec.Decode(&body); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object")
		return nil, false
	}
	if body == nil {
		body = Record{}
	}
	return body, true
}

func (h *HTTPHandler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnknownResource), errors.Is(err, ErrNotFound):
		httpx.JSON(w, http.StatusNotFound, Record{})
	default:
		h.logger.Error("fake api failure", "path", r.URL.Path, "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", strings.TrimSpace(err.Error()))
	}
}
