package enrich

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// UnsplashClient fetches a landscape cover photo for a city via the Unsplash
// search API. Without an access key every lookup returns empty and callers
// fall back to the deterministic placeholder.
type UnsplashClient struct {
	baseURL   string // e.g. https://api.unsplash.com
	accessKey string
	httpc     *http.Client
	limiter   *rate.Limiter
}

// NewUnsplashClient constructs an UnsplashClient. An empty accessKey is
// valid and disables lookups entirely.
func NewUnsplashClient(baseURL, accessKey string, timeout time.Duration) *UnsplashClient {
	return &UnsplashClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		httpc:     &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// photoSearchResponse is the subset of the Unsplash search payload we read.
type photoSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// FetchCityImage returns the URL of a cover photo for the city, or "" when
// no key is configured, the search finds nothing, or anything fails. It
// never returns an error; enrichment is best-effort by contract.
func (c *UnsplashClient) FetchCityImage(ctx context.Context, city string) string {
	if c.accessKey == "" {
		return ""
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}

	params := url.Values{}
	params.Set("query", city+" city")
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return ""
	}
	var result photoSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	if len(result.Results) == 0 {
		return ""
	}
	return result.Results[0].URLs.Regular
}

// placeholderCount is the number of distinct placeholder gradients the
// client side knows how to render.
const placeholderCount = 8

// PlaceholderKey derives a stable cover placeholder for a city with no
// fetched image. The key is a function of the city name's character codes,
// so repeated calls for the same city always yield the same placeholder.
// The key is derived at read time and never persisted; a plan without a
// cover image stays without one.
func PlaceholderKey(city string) string {
	sum := 0
	for _, r := range city {
		sum += int(r)
	}
	return "gradient-" + strconv.Itoa(sum%placeholderCount)
}
