// Package handlers is the JetStay companion gateway: JSON endpoints that
// validate input, call the booking API on behalf of the caller and reshape
// the results for a front-end.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/monitoring"
	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

// API is the part of the booking API client the gateway uses.
type API interface {
	Login(ctx context.Context, creds services.Credentials) (string, error)
	Signup(ctx context.Context, req services.SignupRequest) (*services.Envelope, error)
	ForgotPassword(ctx context.Context, email string) (*services.Envelope, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) (*services.Envelope, error)
	ChangePassword(ctx context.Context, email, token, newPassword string) (*services.Envelope, error)

	SearchFlights(ctx context.Context, filter search.FlightFilter, page, size int) (services.FlightPage, error)
	SearchRooms(ctx context.Context, filter search.RoomFilter, page, size int) ([]search.Room, error)
	PublicFlightOffers(ctx context.Context, flightID int) []offers.Offer

	BookTickets(ctx context.Context, r services.TicketBookingRequest) ([]int, error)
	BookingHistory(ctx context.Context) ([]services.Booking, error)
	UpcomingBookings(ctx context.Context) ([]services.Booking, error)
	CancelBooking(ctx context.Context, id int) (*services.Envelope, error)

	MonitorBookings(ctx context.Context, r search.DateRange, hotelID int) (monitoring.BookingMonitoring, error)
	MonitorFlights(ctx context.Context, r search.DateRange, airlineID int) (monitoring.FlightMonitoring, error)
	SetAccountStatus(ctx context.Context, kind services.AccountKind, id string, active bool, reason string) (*services.Envelope, error)
	AdminHotels(ctx context.Context) ([]services.Partner, error)
	AdminAirlines(ctx context.Context) ([]services.Partner, error)

	Countries(ctx context.Context) ([]services.Country, error)
	Cities(ctx context.Context, country string) ([]services.City, error)
	Airports(ctx context.Context, country, city string) ([]services.AirportRef, error)
	TicketTypes(ctx context.Context) ([]string, error)

	SubmitAirlinePartnership(ctx context.Context, f validate.AirlinePartnershipForm, logo *services.Logo) (*services.Envelope, error)
	SubmitHotelPartnership(ctx context.Context, f validate.HotelPartnershipForm, logo *services.Logo) (*services.Envelope, error)
}

// History is the local record of searches and generated documents.
type History interface {
	SaveSearch(ctx context.Context, s *database.Search) error
	RecentSearches(ctx context.Context, owner, kind string, limit int) ([]database.Search, error)
	SaveDocument(ctx context.Context, d *database.Document) error
	GetDocument(ctx context.Context, id string) (*database.Document, error)
}

// Pinger is a dependency reported by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	newAPI  func(token string) API
	history History
	pingers map[string]Pinger
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Handler)

// WithHistory enables search history and stored documents.
func WithHistory(h History) Option {
	return func(hd *Handler) { hd.history = h }
}

// WithPinger adds a named dependency to the health report.
func WithPinger(name string, p Pinger) Option {
	return func(hd *Handler) { hd.pingers[name] = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(hd *Handler) { hd.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(hd *Handler) { hd.now = now }
}

// New builds the handlers. newAPI returns a client authenticated as the
// caller; token is "" for anonymous requests.
func New(newAPI func(token string) API, opts ...Option) *Handler {
	h := &Handler{
		newAPI:  newAPI,
		pingers: map[string]Pinger{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ClientFactory adapts a shared API client into a per caller factory.
func ClientFactory(c *services.Client) func(token string) API {
	return func(token string) API { return c.ForToken(token) }
}

// Register mounts every route under r, which is normally the /api group.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/signup", h.Signup)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/change-password", h.ChangePassword)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
	}

	r.POST("/search/flights", h.SearchFlights)
	r.POST("/search/hotels", h.SearchHotels)
	r.GET("/search/history", h.SearchHistory)
	r.GET("/flights/:id/offers", h.FlightOffers)

	ref := r.Group("/reference")
	{
		ref.GET("/countries", h.Countries)
		ref.GET("/cities", h.Cities)
		ref.GET("/airports", h.Airports)
		ref.GET("/ticket-types", h.TicketTypes)
	}

	r.GET("/ranges/presets", h.RangePresets)
	r.GET("/ranges/calendar", h.Calendar)

	bookings := r.Group("/bookings")
	{
		bookings.POST("/tickets", h.BookTickets)
		bookings.GET("/history", h.BookingHistory)
		bookings.GET("/upcoming", h.UpcomingBookings)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/pdf", h.GenerateDocument)
	}
	r.GET("/documents/:id", h.DownloadDocument)

	admin := r.Group("/admin")
	{
		admin.GET("/monitor/bookings", h.MonitorBookings)
		admin.GET("/monitor/flights", h.MonitorFlights)
		admin.GET("/hotels", h.AdminHotels)
		admin.GET("/airlines", h.AdminAirlines)
		admin.PUT("/status/:kind/:id", h.SetAccountStatus)
	}

	r.POST("/partnership/airline", h.AirlinePartnership)
	r.POST("/partnership/hotel", h.HotelPartnership)
}

// api returns the booking API client acting for the caller.
func (h *Handler) api(c *gin.Context) API {
	return h.newAPI(middleware.TokenFrom(c))
}

// ─── Responses ────────────────────────────────────────────────────────────────

// fail writes err as a JSON error. API errors keep their code, status and
// field details; anything else is a 500.
func (h *Handler) fail(c *gin.Context, err error) {
	apiErr := services.AsAPIError(err)
	status := apiErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "request_id", middleware.RequestIDFrom(c), "path", c.FullPath(), "error", err)
	}
	body := gin.H{"error": apiErr.Message, "code": apiErr.Code}
	if len(apiErr.Details) > 0 {
		body["fields"] = apiErr.Fields()
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// formErrors answers 400 with the per field messages of a local form check.
func formErrors(c *gin.Context, errs validate.Errors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":  "Please fix the errors in the form",
		"code":   services.CodeValidation,
		"fields": errs,
	})
}

func envelope(c *gin.Context, env *services.Envelope) {
	if env == nil {
		env = &services.Envelope{Success: true}
	}
	c.JSON(http.StatusOK, env)
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

var errNoHistory = errors.New("history is not enabled: no database configured")
