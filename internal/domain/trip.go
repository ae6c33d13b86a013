package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
}

// Trip is a saved itinerary. Data is the client's full itinerary JSON
// (places, schedule, notes); the server stores it verbatim and never reads
// inside it.
type Trip struct {
	ID          string
	UserID      int64
	Title       string
	Destination string
	StartDate   string
	EndDate     string
	Mood        string
	Image       string
	Data        []byte
	UpdatedAt   time.Time
}

// TripSummary is the dashboard view of a trip, without the payload blob.
type TripSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Mood        string `json:"mood"`
	Image       string `json:"image"`
}

// Session resolves an opaque token to the logged-in user.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
