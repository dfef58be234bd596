// Package fakeapi is an in-memory stand-in for the json-server backend. It
// serves any number of named resources with list/create/read/replace/delete
// endpoints and assigns numeric ids on create.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNotFound        = errors.New("record not found")
)

// Record is a single JSON object as stored by the fake backend.
type Record map[string]any

func (r Record) id() string {
	if r == nil {
		return ""
	}
	switch v := r["id"].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

type collection struct {
	nextID  int64
	records []Record
}

func (c *collection) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(r Record) bool { return r.id() == id })
}

func (c *collection) observe(r Record) {
	if n, err := strconv.ParseInt(r.id(), 10, 64); err == nil && n >= c.nextID {
		c.nextID = n + 1
	}
}

// Memory holds the resources behind the fake API.
type Memory struct {
	mu        sync.RWMutex
	resources map[string]*collection
}

func NewMemory(resources ...string) *Memory {
	m := &Memory{resources: make(map[string]*collection, len(resources))}
	for _, name := range resources {
		m.resources[name] = &collection{nextID: 1}
	}
	return m
}

// Seed loads a json-server style database document of the form
// {"books": [...], "users": [...]}. Resources named in the document are
// created if missing; existing records are replaced.
func (m *Memory) Seed(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string][]Record
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, records := range doc {
		c := &collection{nextID: 1}
		for _, rec := range records {
			if rec == nil {
				continue
			}
			c.observe(rec)
			c.records = append(c.records, rec)
		}
		m.resources[name] = c
	}
	return nil
}

func (m *Memory) List(resource string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	out := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, cloneRecord(r))
	}
	return out, nil
}

func (m *Memory) Get(resource, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return cloneRecord(c.records[i]), nil
}

// Create stores rec with a freshly assigned numeric id. A client supplied id
// is kept only when it does not collide with an existing record.
func (m *Memory) Create(resource string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	rec = cloneRecord(rec)
	if id := rec.id(); id == "" || c.indexOf(id) >= 0 {
		rec["id"] = c.nextID
	}
	c.observe(rec)
	c.records = append(c.records, rec)
	return cloneRecord(rec), nil
}

// Replace swaps the stored record for rec, keeping the id from the path.
func (m *Memory) Replace(resource, id string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec = cloneRecord(rec)
	rec["id"] = c.records[i]["id"]
	c.records[i] = rec
	return cloneRecord(rec), nil
}

// Patch merges fields of rec into the stored record.
func (m *Memory) Patch(resource, id string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.resources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	for k, v := range rec {
		if k == "id" {
			continue
		}
		c.records[i][k] = v
	}
	return cloneRecord(c.records[i]), nil
}

func (m *Memory) Delete(resource, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.resources[resource]
	if !ok {
		return ErrUnknownResource
	}
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.records = slices.Delete(c.records, i, i+1)
	return nil
}

func cloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
