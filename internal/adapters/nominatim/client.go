// internal/adapters/nominatim/client.go
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"wayfinder/internal/adapters/observability"
	"wayfinder/internal/domain"
)

// Client is a minimal Nominatim search client: one request per Geocode call,
// best match only, no caching, no retry. The limiter keeps us inside the
// public instance's absolute-maximum 1 req/s policy.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// result is the subset of the search response we read. Nominatim returns
// coordinates as strings.
type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Geocode(ctx context.Context, query string) (domain.Coords, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Coords{}, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	u := c.base + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Coords{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "wayfinder/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Coords{}, ctx.Err()
		}
		observability.ObserveExternal("nominatim", "search", 0, time.Since(start))
		return domain.Coords{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("nominatim", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return domain.Coords{}, fmt.Errorf("%w: geocoder status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coords{}, fmt.Errorf("%w: decode geocoder response: %v", domain.ErrUpstream, err)
	}
	if len(results) == 0 {
		return domain.Coords{}, fmt.Errorf("no match for %q: %w", query, domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coords{}, fmt.Errorf("%w: bad lat %q", domain.ErrUpstream, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coords{}, fmt.Errorf("%w: bad lon %q", domain.ErrUpstream, results[0].Lon)
	}
	return domain.Coords{Lat: lat, Lon: lon}, nil
}
