package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/handlers"
	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/monitoring"
	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

func init() { gin.SetMode(gin.TestMode) }

var now = time.Date(2025, time.May, 10, 12, 0, 0, 0, time.Local)

// ─── API mock ─────────────────────────────────────────────────────────────────

type mockAPI struct {
	mock.Mock
}

func envelopeArg(args mock.Arguments) (*services.Envelope, error) {
	env, _ := args.Get(0).(*services.Envelope)
	return env, args.Error(1)
}

func (m *mockAPI) Login(ctx context.Context, creds services.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) Signup(ctx context.Context, req services.SignupRequest) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, req))
}

func (m *mockAPI) ForgotPassword(ctx context.Context, email string) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, email))
}

func (m *mockAPI) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) ResetPassword(ctx context.Context, email, token, newPassword string) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, email, token, newPassword))
}

func (m *mockAPI) ChangePassword(ctx context.Context, email, token, newPassword string) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, email, token, newPassword))
}

func (m *mockAPI) SearchFlights(ctx context.Context, filter search.FlightFilter, page, size int) (services.FlightPage, error) {
	args := m.Called(ctx, filter, page, size)
	return args.Get(0).(services.FlightPage), args.Error(1)
}

func (m *mockAPI) SearchRooms(ctx context.Context, filter search.RoomFilter, page, size int) ([]search.Room, error) {
	args := m.Called(ctx, filter, page, size)
	rooms, _ := args.Get(0).([]search.Room)
	return rooms, args.Error(1)
}

func (m *mockAPI) PublicFlightOffers(ctx context.Context, flightID int) []offers.Offer {
	args := m.Called(ctx, flightID)
	list, _ := args.Get(0).([]offers.Offer)
	return list
}

func (m *mockAPI) BookTickets(ctx context.Context, r services.TicketBookingRequest) ([]int, error) {
	args := m.Called(ctx, r)
	ids, _ := args.Get(0).([]int)
	return ids, args.Error(1)
}

func (m *mockAPI) BookingHistory(ctx context.Context) ([]services.Booking, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Booking)
	return list, args.Error(1)
}

func (m *mockAPI) UpcomingBookings(ctx context.Context) ([]services.Booking, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Booking)
	return list, args.Error(1)
}

func (m *mockAPI) CancelBooking(ctx context.Context, id int) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, id))
}

func (m *mockAPI) MonitorBookings(ctx context.Context, r search.DateRange, hotelID int) (monitoring.BookingMonitoring, error) {
	args := m.Called(ctx, r, hotelID)
	return args.Get(0).(monitoring.BookingMonitoring), args.Error(1)
}

func (m *mockAPI) MonitorFlights(ctx context.Context, r search.DateRange, airlineID int) (monitoring.FlightMonitoring, error) {
	args := m.Called(ctx, r, airlineID)
	return args.Get(0).(monitoring.FlightMonitoring), args.Error(1)
}

func (m *mockAPI) SetAccountStatus(ctx context.Context, kind services.AccountKind, id string, active bool, reason string) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, kind, id, active, reason))
}

func (m *mockAPI) AdminHotels(ctx context.Context) ([]services.Partner, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Partner)
	return list, args.Error(1)
}

func (m *mockAPI) AdminAirlines(ctx context.Context) ([]services.Partner, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Partner)
	return list, args.Error(1)
}

func (m *mockAPI) Countries(ctx context.Context) ([]services.Country, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]services.Country)
	return list, args.Error(1)
}

func (m *mockAPI) Cities(ctx context.Context, country string) ([]services.City, error) {
	args := m.Called(ctx, country)
	list, _ := args.Get(0).([]services.City)
	return list, args.Error(1)
}

func (m *mockAPI) Airports(ctx context.Context, country, city string) ([]services.AirportRef, error) {
	args := m.Called(ctx, country, city)
	list, _ := args.Get(0).([]services.AirportRef)
	return list, args.Error(1)
}

func (m *mockAPI) TicketTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func (m *mockAPI) SubmitAirlinePartnership(ctx context.Context, f validate.AirlinePartnershipForm, logo *services.Logo) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, f, logo))
}

func (m *mockAPI) SubmitHotelPartnership(ctx context.Context, f validate.HotelPartnershipForm, logo *services.Logo) (*services.Envelope, error) {
	return envelopeArg(m.Called(ctx, f, logo))
}

// ─── History fake ─────────────────────────────────────────────────────────────

type fakeHistory struct {
	mu        sync.Mutex
	searches  []database.Search
	documents map[string]*database.Document
	limits    []int
	err       error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{documents: map[string]*database.Document{}}
}

func (f *fakeHistory) SaveSearch(_ context.Context, s *database.Search) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	s.ID = "search-1"
	s.CreatedAt = now
	f.searches = append(f.searches, *s)
	return nil
}

func (f *fakeHistory) RecentSearches(_ context.Context, owner, kind string, limit int) ([]database.Search, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	out := []database.Search{}
	for _, s := range f.searches {
		if s.Owner == owner && (kind == "" || s.Kind == kind) && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, f.err
}

func (f *fakeHistory) SaveDocument(_ context.Context, d *database.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.documents[d.ID] = d
	return nil
}

func (f *fakeHistory) GetDocument(_ context.Context, id string) (*database.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.documents[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return d, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

type testServer struct {
	router *gin.Engine
	api    *mockAPI
	tokens []string
}

func newServer(t *testing.T, opts ...handlers.Option) *testServer {
	t.Helper()
	ts := &testServer{router: gin.New(), api: &mockAPI{}}
	t.Cleanup(func() { ts.api.AssertExpectations(t) })

	base := []handlers.Option{
		handlers.WithClock(func() time.Time { return now }),
		handlers.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	h := handlers.New(func(token string) handlers.API {
		ts.tokens = append(ts.tokens, token)
		return ts.api
	}, append(base, opts...)...)

	ts.router.Use(middleware.RequestID(), middleware.BearerToken())
	h.Register(ts.router.Group("/api"))
	return ts
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var anyCtx = mock.Anything

func okEnvelope(msg string) *services.Envelope {
	return &services.Envelope{Success: true, Message: msg}
}
