package app

// Curated name fragments, all lowercase. Data, not logic: extend these lists
// without touching the scorer. A name containing a landmark fragment pins the
// place to the top regardless of how sparse its upstream metadata is.

var landmarkFragments = []string{
	"colosseo",
	"colosseum",
	"pantheon",
	"trevi",
	"vatican",
	"san pietro",
	"duomo",
	"uffizi",
}

// Famous eateries and venues, one notch below the landmarks.
var famousVenueFragments = []string{
	"fortunata",
	"sorbillo",
	"tonnarello",
	"da michele",
	"cencio",
	"florian",
}

// Regional venue-type keywords worth a small local-flavor boost.
var localKeywordFragments = []string{
	"osteria",
	"trattoria",
	"enoteca",
}
