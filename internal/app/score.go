package app

import (
	"strings"

	"wayfinder/internal/domain"
)

const (
	landmarkScore = 1000
	venueScore    = 900
	baseScore     = 50
	scoreCap      = 500
)

var moodCategory = map[domain.Mood]domain.Category{
	domain.MoodGastronomico: domain.Food,
	domain.MoodCulturale:    domain.Culture,
	domain.MoodDivertimento: domain.Party,
	domain.MoodRelax:        domain.Relax,
}

// Score computes the relevance rank of a tagged place for the given mood.
// Curated names short-circuit (1000 landmarks, 900 famous venues) and bypass
// the cap; everything else accumulates data-quality and mood boosts from a
// base of 50 and is clamped to 500.
func Score(tags domain.TagSet, mood domain.Mood, category domain.Category) int {
	name := strings.ToLower(tags["name"])

	if name != "" {
		if containsAny(name, landmarkFragments) {
			return landmarkScore
		}
		if containsAny(name, famousVenueFragments) {
			return venueScore
		}
	}

	score := baseScore

	// Documentation density stands in for popularity data we don't have.
	if tags["wikipedia"] != "" || tags["wikidata"] != "" {
		score += 40
	}
	if tags["website"] != "" || tags["contact:website"] != "" {
		score += 10
	}
	if tags["phone"] != "" || tags["contact:phone"] != "" {
		score += 10
	}
	if tags["opening_hours"] != "" {
		score += 5
	}

	if name != "" && containsAny(name, localKeywordFragments) {
		score += 15
	}

	// The sole personalization lever.
	if mood != "" && moodCategory[mood] == category {
		score += 100
	}

	if score > scoreCap {
		score = scoreCap
	}
	return score
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
