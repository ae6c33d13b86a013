package domain

// Category is the fixed bucket a place lands in. Values are stable strings
// because they travel over the wire and key the quota table.
type Category string

const (
	Culture    Category = "Culture"
	Attraction Category = "Attraction"
	Food       Category = "Food"
	Party      Category = "Party"
	Relax      Category = "Relax"
)

// Categories lists every bucket in the fixed presentation order.
var Categories = []Category{Culture, Attraction, Food, Party, Relax}

// Mood is the user preference steering score boosts. Empty means unset.
type Mood string

const (
	MoodGastronomico Mood = "gastronomico"
	MoodCulturale    Mood = "culturale"
	MoodDivertimento Mood = "divertimento"
	MoodRelax        Mood = "relax"
)

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TagSet is the raw attribute mapping of one upstream feature. Opaque except
// for the handful of keys the categorizer and scorer read.
type TagSet map[string]string

// Feature is one tagged, geolocated record from the spatial-feature service.
// Either Lat/Lon or Center is set; area features only carry a centroid.
type Feature struct {
	ID     int64
	Tags   TagSet
	Lat    *float64
	Lon    *float64
	Center *Coords
}

// Position resolves the feature's coordinates, preferring the direct point.
// ok is false when neither a point nor a centroid is present.
func (f Feature) Position() (lat, lon float64, ok bool) {
	if f.Lat != nil && f.Lon != nil {
		return *f.Lat, *f.Lon, true
	}
	if f.Center != nil {
		return f.Center.Lat, f.Center.Lon, true
	}
	return 0, 0, false
}

// Place is a candidate point of interest, built fresh per request and never
// persisted on its own; callers may embed the ranked list in a trip payload.
type Place struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Description string   `json:"description"`
	Score       int      `json:"score"`
}

// SearchSentinelScore ranks manual-search results above anything the general
// scorer can produce (its hard ceiling is 1000).
const SearchSentinelScore = 2000
