// Package openlibrary looks up edition metadata by ISBN so new catalog entries
// can be filled in without typing every field.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://openlibrary.org"

// ErrNotFound is returned when OpenLibrary has no edition for the ISBN.
var ErrNotFound = errors.New("isbn not found")

type Config struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// Edition is the part of an api/books?jscmd=data entry the catalog uses.
type Edition struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	PublishDate string `json:"publish_date"`
	Notes       string `json:"notes"`
	Cover       struct {
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"cover"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Subjects []struct {
		Name string `json:"name"`
	} `json:"subjects"`
}

// AuthorNames joins the edition's authors with ", ".
func (e Edition) AuthorNames() string {
	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}

var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)

// Year extracts a four digit year from PublishDate, which OpenLibrary keeps as
// free text ("1965", "March 2005", "2005-03-01").
func (e Edition) Year() (int, bool) {
	m := yearPattern.FindString(e.PublishDate)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	return y, err == nil
}

// CoverURL prefers the large cover.
func (e Edition) CoverURL() string {
	if e.Cover.Large != "" {
		return e.Cover.Large
	}
	return e.Cover.Medium
}

// Genre is the first listed subject.
func (e Edition) Genre() string {
	if len(e.Subjects) == 0 {
		return ""
	}
	return e.Subjects[0].Name
}

// LookupISBN fetches the edition for isbn. Hyphens and spaces are ignored.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (Edition, error) {
	isbn = strings.NewReplacer("-", "", " ", "").Replace(isbn)
	if isbn == "" {
		return Edition{}, fmt.Errorf("lookup isbn: %w", ErrNotFound)
	}
	key := "ISBN:" + isbn
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&jscmd=data&format=json", c.baseURL, url.QueryEscape(key))

	var res map[string]Edition
	if err := c.get(ctx, u, &res); err != nil {
		return Edition{}, fmt.Errorf("lookup isbn %s: %w", isbn, err)
	}
	e, ok := res[key]
	if !ok {
		return Edition{}, fmt.Errorf("lookup isbn %s: %w", isbn, ErrNotFound)
	}
	return e, nil
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, u, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		c.logger.Debug("openlibrary request failed, retrying", "url", u, "attempt", i+1, "error", err)
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, u string, target any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}
	return false, json.NewDecoder(resp.Body).Decode(target)
}
