package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Geocoder resolves a free-text place name to its single best coordinate
// match. Zero upstream results surface as ErrNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Coords, error)
}

// FeatureSource queries the spatial-feature service.
type FeatureSource interface {
	// Fetch returns every point of interest across the fixed tag families
	// within radiusMeters of the center. All-or-nothing: a failed or
	// unparsable upstream response is ErrUpstream, never partial data.
	Fetch(ctx context.Context, lat, lon float64, radiusMeters int) ([]Feature, error)
	// FetchByName returns features whose name contains query
	// (case-insensitive) within radiusMeters of the center.
	FetchByName(ctx context.Context, query string, lat, lon float64, radiusMeters int) ([]Feature, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, email, username, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type TripRepository interface {
	UpsertTrip(ctx context.Context, t Trip) error
	GetTrip(ctx context.Context, userID int64, tripID string) (Trip, error)
	// FindTripByTitle matches case-insensitively; ErrNotFound when absent.
	FindTripByTitle(ctx context.Context, userID int64, title string) (Trip, error)
	ListTrips(ctx context.Context, userID int64) ([]TripSummary, error)
	DeleteTrip(ctx context.Context, userID int64, tripID string) error
}

// SessionStore maps opaque tokens to logged-in users.
type SessionStore interface {
	Create(ctx context.Context, s Session, ttl time.Duration) (token string, err error)
	Get(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
}

// CoverImager builds a cover-image URL for a cleaned destination name.
// Pure URL construction; the browser fetches the rendered image itself.
type CoverImager interface {
	CoverURL(destination string) string
}
