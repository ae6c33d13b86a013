package app

import "wayfinder/internal/domain"

// Categorize maps a raw tag set to one of the five fixed categories.
// Rule order matters: a historic museum with a cafe inside must land in
// Culture, so earlier rules win and Attraction is the fallback.
func Categorize(tags domain.TagSet) domain.Category {
	switch {
	case tags["historic"] != "" ||
		tags["tourism"] == "museum" ||
		tags["artwork_type"] != "" ||
		tags["tourism"] == "gallery" ||
		tags["amenity"] == "arts_centre":
		return domain.Culture

	case tags["tourism"] == "attraction" ||
		tags["tourism"] == "viewpoint" ||
		tags["tourism"] == "zoo" ||
		tags["tourism"] == "theme_park":
		return domain.Attraction

	case tags["amenity"] == "restaurant" ||
		tags["cuisine"] != "" ||
		tags["amenity"] == "ice_cream" ||
		tags["amenity"] == "fast_food" ||
		tags["amenity"] == "cafe":
		return domain.Food

	case tags["amenity"] == "bar" ||
		tags["amenity"] == "pub" ||
		tags["amenity"] == "nightclub" ||
		tags["amenity"] == "biergarten" ||
		tags["amenity"] == "casino":
		return domain.Party

	case tags["leisure"] == "park" ||
		tags["leisure"] == "garden" ||
		tags["leisure"] == "nature_reserve" ||
		tags["natural"] == "beach" ||
		tags["natural"] == "wood":
		return domain.Relax
	}
	return domain.Attraction
}
