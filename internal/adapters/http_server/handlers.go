// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wayfinder/internal/app"
	"wayfinder/internal/domain"
)

type Handlers struct {
	Planner  *app.PlannerService
	Trips    *app.TripService
	Accounts *app.AccountService
	// CookieTTL mirrors the server-side session TTL.
	CookieTTL time.Duration
}

// envelope is the uniform JSON response: every pipeline-level failure folds
// into success:false with an optional message.
type envelope struct {
	Success           bool                 `json:"success"`
	Message           string               `json:"message,omitempty"`
	DestinationCoords *domain.Coords       `json:"destinationCoords,omitempty"`
	Places            []domain.Place       `json:"places,omitempty"`
	Data              json.RawMessage      `json:"data,omitempty"`
	Trips             []domain.TripSummary `json:"trips,omitempty"`
	TripID            string               `json:"tripId,omitempty"`
	Username          string               `json:"username,omitempty"`
}

func failure(msg string) envelope { return envelope{Success: false, Message: msg} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/api/register", h.register)
	s.mux.Post("/api/login", h.login)
	s.mux.Post("/api/logout", h.logout)

	s.mux.Post("/api/generate", h.generate)
	s.mux.Post("/api/search-specific", h.searchSpecific)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireSession(h.Accounts))
		r.Post("/api/save-trip", h.saveTrip)
		r.Get("/api/get-trip/{id}", h.getTrip)
		r.Get("/api/my-trips", h.myTrips)
		r.Delete("/api/delete-trip/{id}", h.deleteTrip)
	})
}

// ---- planning ----

func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Destination string `json:"destination"`
		Mood        string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	places, coords, err := h.Planner.Generate(r.Context(), req.Destination, domain.Mood(req.Mood))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, failure("destination is required"))
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusOK, failure("destination not found"))
		default:
			log.Error().Err(err).Str("destination", req.Destination).Msg("generate failed")
			writeJSON(w, http.StatusOK, failure("could not retrieve map data"))
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success:           true,
		DestinationCoords: &coords,
		Places:            places,
	})
}

func (h *Handlers) searchSpecific(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string  `json:"query"`
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	places, err := h.Planner.SearchSpecific(r.Context(), req.Query, req.Lat, req.Lon)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("specific search failed")
		writeJSON(w, http.StatusOK, failure(""))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Places: places})
}

// ---- accounts ----

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	token, sess, err := h.Accounts.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			writeJSON(w, http.StatusConflict, failure("email already registered"))
		case errors.Is(err, domain.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, failure("email, username and password are required"))
		default:
			log.Error().Err(err).Msg("register failed")
			writeJSON(w, http.StatusInternalServerError, failure(""))
		}
		return
	}
	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, envelope{Success: true, Username: sess.Username})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	token, sess, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, failure("wrong email or password"))
			return
		}
		log.Error().Err(err).Msg("login failed")
		writeJSON(w, http.StatusInternalServerError, failure(""))
		return
	}
	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, envelope{Success: true, Username: sess.Username})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		_ = h.Accounts.Logout(r.Context(), c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, envelope{Success: true})
}

// ---- trips ----

func (h *Handlers) saveTrip(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure(""))
		return
	}

	var req struct {
		ItineraryData json.RawMessage `json:"itineraryData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ItineraryData) == 0 {
		writeJSON(w, http.StatusBadRequest, failure("itineraryData is required"))
		return
	}
	var header struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Destination string `json:"destination"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Mood        string `json:"mood"`
	}
	if err := json.Unmarshal(req.ItineraryData, &header); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid itineraryData"))
		return
	}

	tripID, err := h.Trips.Save(r.Context(), sess.UserID, app.ItineraryData{
		ID:          header.ID,
		Title:       header.Title,
		Destination: header.Destination,
		StartDate:   header.StartDate,
		EndDate:     header.EndDate,
		Mood:        header.Mood,
		Raw:         req.ItineraryData,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, failure("destination is required"))
			return
		}
		log.Error().Err(err).Int64("user", sess.UserID).Msg("save trip failed")
		writeJSON(w, http.StatusOK, failure(""))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, TripID: tripID})
}

func (h *Handlers) getTrip(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure(""))
		return
	}

	data, err := h.Trips.Get(r.Context(), sess.UserID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, failure("trip not found"))
			return
		}
		log.Error().Err(err).Int64("user", sess.UserID).Msg("get trip failed")
		writeJSON(w, http.StatusOK, failure(""))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (h *Handlers) myTrips(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure(""))
		return
	}

	trips, err := h.Trips.List(r.Context(), sess.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user", sess.UserID).Msg("list trips failed")
		writeJSON(w, http.StatusOK, failure(""))
		return
	}
	if trips == nil {
		trips = []domain.TripSummary{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Trips: trips})
}

func (h *Handlers) deleteTrip(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure(""))
		return
	}

	if err := h.Trips.Delete(r.Context(), sess.UserID, chi.URLParam(r, "id")); err != nil {
		log.Error().Err(err).Int64("user", sess.UserID).Msg("delete trip failed")
		writeJSON(w, http.StatusOK, failure(""))
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true})
}
