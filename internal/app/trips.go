package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"wayfinder/internal/domain"
)

// ItineraryData is the save-trip request payload. Everything beyond the
// header fields stays inside Raw and is stored verbatim.
type ItineraryData struct {
	ID          string
	Title       string
	Destination string
	StartDate   string
	EndDate     string
	Mood        string
	Raw         json.RawMessage
}

type TripService struct {
	repo  domain.TripRepository
	cover domain.CoverImager

	// Weight-1 semaphores serialize the find-then-upsert per user so two
	// concurrent saves cannot both miss the title match and create twins.
	mu    sync.Mutex
	locks map[int64]*semaphore.Weighted
}

func NewTripService(r domain.TripRepository, c domain.CoverImager) *TripService {
	return &TripService{repo: r, cover: c, locks: make(map[int64]*semaphore.Weighted)}
}

func (s *TripService) userLock(userID int64) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = semaphore.NewWeighted(1)
		s.locks[userID] = l
	}
	return l
}

// Save creates or overwrites a trip. Matching policy: by id first, then by
// case-insensitive title. On overwrite the existing id and cover image are
// kept; a cover URL is generated only when the trip has none.
func (s *TripService) Save(ctx context.Context, userID int64, in ItineraryData) (string, error) {
	if strings.TrimSpace(in.Destination) == "" {
		return "", fmt.Errorf("destination: %w", domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.Destination
	}

	lock := s.userLock(userID)
	if err := lock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer lock.Release(1)

	existing, found, err := s.findExisting(ctx, userID, in.ID, title)
	if err != nil {
		return "", err
	}

	tripID := in.ID
	image := ""
	if found {
		tripID = existing.ID
		image = existing.Image
	} else if tripID == "" {
		tripID = uuid.NewString()
	}
	if image == "" {
		image = s.cover.CoverURL(cleanDestination(in.Destination))
	}

	data, err := withTripID(in.Raw, tripID)
	if err != nil {
		return "", fmt.Errorf("itinerary payload: %w", err)
	}

	t := domain.Trip{
		ID:          tripID,
		UserID:      userID,
		Title:       title,
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Mood:        in.Mood,
		Image:       image,
		Data:        data,
	}
	if err := s.repo.UpsertTrip(ctx, t); err != nil {
		return "", err
	}

	if found {
		log.Info().Int64("user", userID).Str("trip", tripID).Str("title", title).Msg("trip updated")
	} else {
		log.Info().Int64("user", userID).Str("trip", tripID).Str("title", title).Msg("trip created")
	}
	return tripID, nil
}

func (s *TripService) findExisting(ctx context.Context, userID int64, tripID, title string) (domain.Trip, bool, error) {
	if tripID != "" {
		t, err := s.repo.GetTrip(ctx, userID, tripID)
		if err == nil {
			return t, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, false, err
		}
	}
	t, err := s.repo.FindTripByTitle(ctx, userID, title)
	if err == nil {
		return t, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, false, err
	}
	return domain.Trip{}, false, nil
}

// Get returns the stored itinerary payload of one trip.
func (s *TripService) Get(ctx context.Context, userID int64, tripID string) (json.RawMessage, error) {
	t, err := s.repo.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	return t.Data, nil
}

// List returns the user's trips, newest first.
func (s *TripService) List(ctx context.Context, userID int64) ([]domain.TripSummary, error) {
	return s.repo.ListTrips(ctx, userID)
}

func (s *TripService) Delete(ctx context.Context, userID int64, tripID string) error {
	return s.repo.DeleteTrip(ctx, userID, tripID)
}

// cleanDestination keeps the text before the first comma, so
// "Rome, Lazio, Italy" prompts an image of Rome.
func cleanDestination(d string) string {
	if i := strings.IndexByte(d, ','); i >= 0 {
		d = d[:i]
	}
	return strings.TrimSpace(d)
}

// withTripID rewrites the payload's top-level id so the stored blob agrees
// with the row key. The rest of the payload passes through untouched.
func withTripID(raw json.RawMessage, tripID string) ([]byte, error) {
	m := map[string]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	id, _ := json.Marshal(tripID)
	m["id"] = id
	return json.Marshal(m)
}
