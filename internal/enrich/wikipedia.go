// Package enrich contains the best-effort network clients that attach
// cosmetic side data (city summary, cover image) to a plan. Nothing in this
// package ever returns an error to a caller: every failure path collapses to
// "absent", and the caller keeps whatever it already had.
package enrich

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxResponseBody bounds how much of an upstream response is read.
// Summaries and search results are tiny; anything bigger is broken.
const maxResponseBody = 1 << 20 // 1MB

// CitySummary is the distilled result of a city lookup.
type CitySummary struct {
	Title     string
	Extract   string
	Thumbnail string
}

// WikipediaClient looks up a city summary in two steps: a MediaWiki search
// for the best-matching page title, then the REST summary endpoint for that
// page. Both endpoints are operator-configured so tests can point the client
// at a local fake.
type WikipediaClient struct {
	apiURL  string // MediaWiki action API, e.g. https://en.wikipedia.org/w/api.php
	restURL string // REST base, e.g. https://en.wikipedia.org/api/rest_v1
	httpc   *http.Client
	limiter *rate.Limiter
}

// NewWikipediaClient constructs a WikipediaClient with the given endpoints
// and per-request timeout. Outbound calls are rate limited to stay well
// inside the API's etiquette limits.
func NewWikipediaClient(apiURL, restURL string, timeout time.Duration) *WikipediaClient {
	return &WikipediaClient{
		apiURL:  strings.TrimRight(apiURL, "/"),
		restURL: strings.TrimRight(restURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// searchResponse is the subset of the MediaWiki search payload we read.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// summaryResponse is the subset of the REST page-summary payload we read.
type summaryResponse struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// FetchCitySummary returns the summary for the best-matching page, or
// ok=false when the lookup fails or finds nothing. It never returns an
// error; enrichment is best-effort by contract.
func (c *WikipediaClient) FetchCitySummary(ctx context.Context, city, country string) (CitySummary, bool) {
	query := city
	if country != "" {
		query = city + ", " + country
	}

	title, ok := c.searchTitle(ctx, query)
	if !ok {
		return CitySummary{}, false
	}

	var sum summaryResponse
	endpoint := c.restURL + "/page/summary/" + url.PathEscape(title)
	if !c.getJSON(ctx, endpoint, &sum) {
		return CitySummary{}, false
	}
	if sum.Extract == "" {
		return CitySummary{}, false
	}

	out := CitySummary{Title: sum.Title, Extract: sum.Extract}
	if sum.Thumbnail != nil {
		out.Thumbnail = sum.Thumbnail.Source
	}
	return out, true
}

// searchTitle resolves the best-matching page title for a query.
func (c *WikipediaClient) searchTitle(ctx context.Context, query string) (string, bool) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")
	params.Set("format", "json")

	var result searchResponse
	if !c.getJSON(ctx, c.apiURL+"?"+params.Encode(), &result) {
		return "", false
	}
	if len(result.Query.Search) == 0 {
		return "", false
	}
	return result.Query.Search[0].Title, true
}

// getJSON performs a rate-limited GET and decodes the body into out.
// Any failure (limiter, transport, non-200 status, decode) yields false.
func (c *WikipediaClient) getJSON(ctx context.Context, endpoint string, out any) bool {
	if err := c.limiter.Wait(ctx); err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return false
	}
	return json.Unmarshal(body, out) == nil
}
