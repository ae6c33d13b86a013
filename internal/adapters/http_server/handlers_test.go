package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "wayfinder/internal/adapters/http_server"
	"wayfinder/internal/app"
	"wayfinder/internal/domain"
)

// ---- fakes behind the app services ----

type fakeGeo struct {
	coords domain.Coords
	err    error
	calls  int
}

func (g *fakeGeo) Geocode(ctx context.Context, q string) (domain.Coords, error) {
	g.calls++
	return g.coords, g.err
}

type fakeFeatures struct {
	feats []domain.Feature
	err   error
}

func (f *fakeFeatures) Fetch(ctx context.Context, lat, lon float64, r int) ([]domain.Feature, error) {
	return f.feats, f.err
}
func (f *fakeFeatures) FetchByName(ctx context.Context, q string, lat, lon float64, r int) ([]domain.Feature, error) {
	return f.feats, f.err
}

type memUsers struct {
	users  map[string]domain.User
	nextID int64
}

func (m *memUsers) CreateUser(ctx context.Context, email, username, hash string) (int64, error) {
	m.nextID++
	m.users[email] = domain.User{ID: m.nextID, Email: email, Username: username, PasswordHash: hash}
	return m.nextID, nil
}
func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type memSessions struct {
	store map[string]domain.Session
	next  int
}

func (m *memSessions) Create(ctx context.Context, s domain.Session, ttl time.Duration) (string, error) {
	m.next++
	tok := fmt.Sprintf("tok-%d", m.next)
	m.store[tok] = s
	return tok, nil
}
func (m *memSessions) Get(ctx context.Context, token string) (domain.Session, bool, error) {
	s, ok := m.store[token]
	return s, ok, nil
}
func (m *memSessions) Delete(ctx context.Context, token string) error {
	delete(m.store, token)
	return nil
}

type memTrips struct{ trips map[string]domain.Trip }

func (m *memTrips) UpsertTrip(ctx context.Context, t domain.Trip) error {
	m.trips[t.ID] = t
	return nil
}
func (m *memTrips) GetTrip(ctx context.Context, userID int64, id string) (domain.Trip, error) {
	t, ok := m.trips[id]
	if !ok || t.UserID != userID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}
func (m *memTrips) FindTripByTitle(ctx context.Context, userID int64, title string) (domain.Trip, error) {
	for _, t := range m.trips {
		if t.UserID == userID && strings.EqualFold(t.Title, title) {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}
func (m *memTrips) ListTrips(ctx context.Context, userID int64) ([]domain.TripSummary, error) {
	var out []domain.TripSummary
	for _, t := range m.trips {
		if t.UserID == userID {
			out = append(out, domain.TripSummary{ID: t.ID, Title: t.Title, Destination: t.Destination})
		}
	}
	return out, nil
}
func (m *memTrips) DeleteTrip(ctx context.Context, userID int64, id string) error {
	delete(m.trips, id)
	return nil
}

type staticCover struct{}

func (staticCover) CoverURL(d string) string { return "https://img.example/" + d }

// ---- harness ----

type apiTest struct {
	ts  *httptest.Server
	geo *fakeGeo
}

func newAPI(t *testing.T, geo *fakeGeo, feats *fakeFeatures) *apiTest {
	t.Helper()
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Planner:   app.NewPlannerService(geo, feats),
		Trips:     app.NewTripService(&memTrips{trips: map[string]domain.Trip{}}, staticCover{}),
		Accounts:  app.NewAccountService(&memUsers{users: map[string]domain.User{}}, &memSessions{store: map[string]domain.Session{}}, time.Hour),
		CookieTTL: time.Hour,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &apiTest{ts: ts, geo: geo}
}

func (a *apiTest) post(t *testing.T, path string, body any, cookie *http.Cookie) (*http.Response, envelope) {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, a.ts.URL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return a.do(t, req)
}

func (a *apiTest) do(t *testing.T, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

type envelope struct {
	Success           bool                 `json:"success"`
	Message           string               `json:"message"`
	Places            []domain.Place       `json:"places"`
	Trips             []domain.TripSummary `json:"trips"`
	TripID            string               `json:"tripId"`
	Data              json.RawMessage      `json:"data"`
	DestinationCoords *domain.Coords       `json:"destinationCoords"`
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == httpserver.SessionCookie {
			return c
		}
	}
	return nil
}

// ---- tests ----

func TestGenerate_MissingDestinationIs400(t *testing.T) {
	api := newAPI(t, &fakeGeo{}, &fakeFeatures{})

	resp, env := api.post(t, "/api/generate", map[string]string{"mood": "relax"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if env.Success {
		t.Fatal("want success:false")
	}
	if api.geo.calls != 0 {
		t.Fatal("no upstream call expected")
	}
}

func TestGenerate_DestinationNotFound(t *testing.T) {
	api := newAPI(t, &fakeGeo{err: domain.ErrNotFound}, &fakeFeatures{})

	resp, env := api.post(t, "/api/generate", map[string]string{"destination": "Atlantis"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if env.Success || !strings.Contains(env.Message, "not found") {
		t.Fatalf("envelope: %+v", env)
	}
}

func TestGenerate_Success(t *testing.T) {
	lat, lon := 41.89, 12.49
	feats := &fakeFeatures{feats: []domain.Feature{
		{ID: 1, Tags: domain.TagSet{"name": "Colosseo", "tourism": "attraction"}, Lat: &lat, Lon: &lon},
	}}
	api := newAPI(t, &fakeGeo{coords: domain.Coords{Lat: 41.9, Lon: 12.5}}, feats)

	resp, env := api.post(t, "/api/generate", map[string]string{"destination": "Rome", "mood": "culturale"}, nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("status %d, env %+v", resp.StatusCode, env)
	}
	if env.DestinationCoords == nil || env.DestinationCoords.Lat != 41.9 {
		t.Fatalf("coords: %+v", env.DestinationCoords)
	}
	if len(env.Places) != 1 || env.Places[0].Score != 1000 {
		t.Fatalf("places: %+v", env.Places)
	}
}

func TestSearchSpecific_EmptyQueryEmptySuccess(t *testing.T) {
	api := newAPI(t, &fakeGeo{}, &fakeFeatures{})

	resp, env := api.post(t, "/api/search-specific", map[string]any{"query": "", "lat": 41.9, "lon": 12.5}, nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("status %d, env %+v", resp.StatusCode, env)
	}
	if len(env.Places) != 0 {
		t.Fatalf("places: %+v", env.Places)
	}
}

func TestTrips_RequireSession(t *testing.T) {
	api := newAPI(t, &fakeGeo{}, &fakeFeatures{})

	resp, _ := api.post(t, "/api/save-trip", map[string]any{"itineraryData": map[string]any{"destination": "Rome"}}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}
}

func TestTrips_FullFlow(t *testing.T) {
	api := newAPI(t, &fakeGeo{}, &fakeFeatures{})

	// register and keep the session cookie
	resp, env := api.post(t, "/api/register", map[string]string{
		"email": "ana@example.com", "username": "ana", "password": "pw",
	}, nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("register: %d %+v", resp.StatusCode, env)
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}

	// save a trip
	_, env = api.post(t, "/api/save-trip", map[string]any{
		"itineraryData": map[string]any{
			"title":       "Weekend",
			"destination": "Rome",
			"places":      []map[string]any{{"name": "Colosseo"}},
		},
	}, cookie)
	if !env.Success || env.TripID == "" {
		t.Fatalf("save: %+v", env)
	}
	tripID := env.TripID

	// read it back
	req, _ := http.NewRequest(http.MethodGet, api.ts.URL+"/api/get-trip/"+tripID, nil)
	req.AddCookie(cookie)
	_, env = api.do(t, req)
	if !env.Success || !strings.Contains(string(env.Data), "Colosseo") {
		t.Fatalf("get: %+v", env)
	}

	// list
	req, _ = http.NewRequest(http.MethodGet, api.ts.URL+"/api/my-trips", nil)
	req.AddCookie(cookie)
	_, env = api.do(t, req)
	if !env.Success || len(env.Trips) != 1 || env.Trips[0].ID != tripID {
		t.Fatalf("list: %+v", env)
	}

	// delete, then the trip is gone
	req, _ = http.NewRequest(http.MethodDelete, api.ts.URL+"/api/delete-trip/"+tripID, nil)
	req.AddCookie(cookie)
	_, env = api.do(t, req)
	if !env.Success {
		t.Fatalf("delete: %+v", env)
	}

	req, _ = http.NewRequest(http.MethodGet, api.ts.URL+"/api/get-trip/"+tripID, nil)
	req.AddCookie(cookie)
	_, env = api.do(t, req)
	if env.Success {
		t.Fatal("trip should be gone")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	api := newAPI(t, &fakeGeo{}, &fakeFeatures{})

	resp, _ := api.post(t, "/api/register", map[string]string{
		"email": "b@example.com", "username": "b", "password": "pw",
	}, nil)
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("no session cookie")
	}

	if _, env := api.post(t, "/api/logout", nil, cookie); !env.Success {
		t.Fatalf("logout: %+v", env)
	}

	req, _ := http.NewRequest(http.MethodGet, api.ts.URL+"/api/my-trips", nil)
	req.AddCookie(cookie)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401 after logout", resp2.StatusCode)
	}
}
