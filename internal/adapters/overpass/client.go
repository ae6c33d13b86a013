// internal/adapters/overpass/client.go
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"wayfinder/internal/adapters/observability"
	"wayfinder/internal/domain"
)

const (
	// areaTimeout matches the [timeout:] set on the radius sweep; the whole
	// synchronous query can genuinely run for tens of seconds.
	areaTimeout = 90 * time.Second
	// nameTimeout covers the much cheaper name lookup.
	nameTimeout = 25 * time.Second
)

// Client talks Overpass QL to an interpreter endpoint. One POST per call,
// no retry: a transient failure fails the whole pipeline run by contract.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{
		base: base,
		// Client timeout sits just above the largest server-side budget.
		hc: &http.Client{Timeout: areaTimeout + 5*time.Second},
	}
}

// Wire types. Area/way features carry a centroid instead of lat/lon.

type element struct {
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type payload struct {
	Elements []element `json:"elements"`
}

// Fetch runs the combined four-family area sweep, requesting centroids for
// ways and relations.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, radiusMeters int) ([]domain.Feature, error) {
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusMeters, lat, lon)
	q := fmt.Sprintf(`[out:json][timeout:%d];
(
  nwr["historic"]%s;
  nwr["tourism"~"attraction|museum|viewpoint"]%s;
  nwr["amenity"~"restaurant|cafe|ice_cream|fast_food|bar|pub|nightclub"]%s;
  nwr["leisure"~"park|garden"]%s;
);
out center;`, int(areaTimeout.Seconds()), around, around, around, around)

	return c.run(ctx, "area", q)
}

// FetchByName matches features whose name contains query, case-insensitive.
func (c *Client) FetchByName(ctx context.Context, query string, lat, lon float64, radiusMeters int) ([]domain.Feature, error) {
	q := fmt.Sprintf(`[out:json][timeout:%d];
(
  nwr["name"~"%s",i](around:%d,%f,%f);
);
out center;`, int(nameTimeout.Seconds()), escapeRegex(query), radiusMeters, lat, lon)

	return c.run(ctx, "name", q)
}

func (c *Client) run(ctx context.Context, endpoint, query string) ([]domain.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/interpreter", strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", "wayfinder/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveExternal("overpass", endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("overpass", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: overpass status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode overpass response: %v", domain.ErrUpstream, err)
	}

	out := make([]domain.Feature, 0, len(p.Elements))
	for _, e := range p.Elements {
		f := domain.Feature{ID: e.ID, Tags: e.Tags, Lat: e.Lat, Lon: e.Lon}
		if e.Center != nil {
			f.Center = &domain.Coords{Lat: e.Center.Lat, Lon: e.Center.Lon}
		}
		out = append(out, f)
	}
	return out, nil
}

// escapeRegex neutralizes the user's query before it lands inside an Overpass
// regex; a stray parenthesis must not change the query's meaning.
func escapeRegex(s string) string {
	s = regexp.QuoteMeta(s)
	// QuoteMeta leaves " alone, but the query is wrapped in quotes in QL.
	return strings.ReplaceAll(s, `"`, `\"`)
}
