// Package scholar implements the academic search provider against the
// Semantic Scholar Graph API.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"scholarbot/internal/paper"
)

const (
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 1 request per second, the unauthenticated allowance.
	RateLimit = 1.0

	// DefaultSearchLimit is the number of papers requested per query.
	DefaultSearchLimit = 3

	// searchFields are the paper fields requested for search results.
	searchFields = "title,abstract,authors,year,venue,url,citationCount"
)

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	apiKey      string
	baseURL     string
	searchLimit int
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithSearchLimit sets the number of results requested per query.
func WithSearchLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// NewClient creates a Semantic Scholar client. The S2_API_KEY
// environment variable is used when no key option is given.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:     BaseURL,
		searchLimit: DefaultSearchLimit,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the paper search payload.
type searchResponse struct {
	Total int           `json:"total"`
	Data  []paperResult `json:"data"`
}

type paperResult struct {
	Title         string         `json:"title"`
	Abstract      string         `json:"abstract"`
	Year          int            `json:"year"`
	Venue         string         `json:"venue"`
	URL           string         `json:"url"`
	CitationCount int            `json:"citationCount"`
	Authors       []authorResult `json:"authors"`
}

type authorResult struct {
	Name string `json:"name"`
}

// Search runs a relevance-ranked paper search and maps the results to
// domain records. Failures are classified as provider-unavailable so
// the dispatcher can degrade gracefully.
func (c *Client) Search(ctx context.Context, query string) ([]paper.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/paper/search?query=%s&limit=%d&fields=%s",
		c.baseURL, url.QueryEscape(query), c.searchLimit, searchFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", paper.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %s: %w", resp.Status, paper.ErrProviderUnavailable)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", paper.ErrProviderUnavailable)
	}

	records := make([]paper.Record, 0, len(result.Data))
	for _, r := range result.Data {
		if r.Title == "" {
			continue
		}
		authors := make([]string, 0, len(r.Authors))
		for _, a := range r.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}
		records = append(records, paper.Record{
			Title:     r.Title,
			Abstract:  r.Abstract,
			Year:      r.Year,
			Venue:     r.Venue,
			URL:       r.URL,
			Citations: r.CitationCount,
			Authors:   authors,
		})
	}
	return records, nil
}
