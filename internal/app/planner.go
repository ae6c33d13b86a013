package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"wayfinder/internal/domain"
)

const (
	// GenerateRadiusMeters bounds the area query around the geocoded center.
	GenerateRadiusMeters = 8000
	// SearchRadiusMeters is deliberately wide: manual searches target one
	// known name, not an area sweep.
	SearchRadiusMeters = 50000

	searchResultDescription = "Online search result"
)

// quotas caps each category bucket after ranking so a dominant category
// (typically Food) cannot crowd out the rest.
var quotas = map[domain.Category]int{
	domain.Culture:    150,
	domain.Attraction: 100,
	domain.Food:       200,
	domain.Party:      150,
	domain.Relax:      80,
}

type PlannerService struct {
	geo      domain.Geocoder
	features domain.FeatureSource
}

func NewPlannerService(g domain.Geocoder, f domain.FeatureSource) *PlannerService {
	return &PlannerService{geo: g, features: f}
}

// Generate geocodes the destination, pulls every point of interest within the
// fixed radius, and returns a quota-balanced shortlist grouped by category in
// the fixed order Culture, Attraction, Food, Party, Relax, score-descending
// within each group. The list is intentionally not globally sorted.
func (s *PlannerService) Generate(ctx context.Context, destination string, mood domain.Mood) ([]domain.Place, domain.Coords, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, domain.Coords{}, fmt.Errorf("destination: %w", domain.ErrInvalidInput)
	}

	center, err := s.geo.Geocode(ctx, destination)
	if err != nil {
		return nil, domain.Coords{}, fmt.Errorf("geocode %q: %w", destination, err)
	}

	feats, err := s.features.Fetch(ctx, center.Lat, center.Lon, GenerateRadiusMeters)
	if err != nil {
		return nil, domain.Coords{}, fmt.Errorf("fetch features: %w", err)
	}

	buckets := make(map[domain.Category][]domain.Place, len(domain.Categories))
	seen := make(map[string]struct{})

	for _, f := range feats {
		name := f.Tags["name"]
		if len(f.Tags) == 0 || name == "" {
			continue
		}
		lat, lon, ok := f.Position()
		if !ok {
			continue
		}
		// First occurrence wins; the same venue often comes back as both a
		// node and a way.
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		cat := Categorize(f.Tags)
		buckets[cat] = append(buckets[cat], domain.Place{
			ID:          f.ID,
			Name:        name,
			Category:    cat,
			Lat:         lat,
			Lng:         lon,
			Description: f.Tags["description"],
			Score:       Score(f.Tags, mood, cat),
		})
	}

	var out []domain.Place
	for _, cat := range domain.Categories {
		b := buckets[cat]
		// Stable keeps upstream arrival order for equal scores.
		sort.SliceStable(b, func(i, j int) bool { return b[i].Score > b[j].Score })
		if q := quotas[cat]; len(b) > q {
			b = b[:q]
		}
		out = append(out, b...)
	}

	log.Info().
		Str("destination", destination).
		Str("mood", string(mood)).
		Int("features", len(feats)).
		Int("selected", len(out)).
		Msg("itinerary candidates generated")

	return out, center, nil
}

// SearchSpecific looks up a single named feature near the given point,
// bypassing quotas and scoring: every hit gets the sentinel score so it ranks
// first if merged with generated results. Malformed input yields an empty
// success, and individual bad features are skipped rather than failing the
// search.
func (s *PlannerService) SearchSpecific(ctx context.Context, query string, lat, lon float64) ([]domain.Place, error) {
	if strings.TrimSpace(query) == "" || (lat == 0 && lon == 0) {
		return []domain.Place{}, nil
	}

	feats, err := s.features.FetchByName(ctx, query, lat, lon, SearchRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	out := make([]domain.Place, 0, len(feats))
	for _, f := range feats {
		name := f.Tags["name"]
		if len(f.Tags) == 0 || name == "" {
			continue
		}
		flat, flon, ok := f.Position()
		if !ok {
			continue
		}
		out = append(out, domain.Place{
			ID:          f.ID,
			Name:        name,
			Category:    Categorize(f.Tags),
			Lat:         flat,
			Lng:         flon,
			Description: searchResultDescription,
			Score:       domain.SearchSentinelScore,
		})
	}

	log.Info().Str("query", query).Int("results", len(out)).Msg("specific search done")
	return out, nil
}
