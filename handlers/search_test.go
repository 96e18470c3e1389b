package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/handlers"
	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
)

func cairoFlight() services.Flight {
	return services.Flight{
		FlightID:         3,
		Status:           "ON_TIME",
		DepartureDate:    "2025-06-01T08:00:00",
		ArrivalDate:      "2025-06-01T10:30:00",
		DepartureAirport: services.Airport{AirportName: "Cairo International (CAI)", City: "Cairo"},
		ArrivalAirport:   services.Airport{AirportName: "Dubai International (DXB)", City: "Dubai"},
		Airline:          services.FlightCarrier{AirlineID: 9, AirlineName: "Nile Air"},
		TripsTypes: []services.TripPrice{
			{TypeID: 2, TypeName: "Business", Price: 300},
			{TypeID: 1, TypeName: "Economy", Price: 120},
		},
	}
}

func TestSearchFlights(t *testing.T) {
	history := newFakeHistory()
	ts := newServer(t, handlers.WithHistory(history))

	filter, err := search.NewFlightForm().Filter()
	require.NoError(t, err)
	ts.api.On("SearchFlights", anyCtx, filter, 0, search.PageSize).
		Return(services.FlightPage{Flights: []services.Flight{cairoFlight()}, TotalPages: 4}, nil).Once()

	w := ts.do(http.MethodPost, "/api/search/flights", map[string]any{}, "Authorization", "Bearer tok")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, float64(4), body["totalPages"])
	flights := body["flights"].([]any)
	require.Len(t, flights, 1)
	f := flights[0].(map[string]any)
	assert.Equal(t, float64(3), f["flightID"])
	assert.Equal(t, float64(120), f["lowestPrice"])
	assert.Equal(t, "2h 30m", f["duration"])
	assert.Equal(t, "CAI", f["fromCode"])
	assert.Equal(t, "DXB", f["toCode"])

	assert.Equal(t, []string{"tok"}, ts.tokens)
	require.Len(t, history.searches, 1)
	assert.Equal(t, handlers.FlightSearches, history.searches[0].Kind)
	assert.Equal(t, 1, history.searches[0].Results)
	assert.JSONEq(t, `{"tripTypePriceGte":0,"tripTypePriceLte":250}`, string(history.searches[0].Filter))
}

func TestSearchFlights_FormAndPaging(t *testing.T) {
	t.Run("bad price is a field error", func(t *testing.T) {
		ts := newServer(t)
		w := ts.do(http.MethodPost, "/api/search/flights", map[string]any{"form": map[string]string{"tripTypePrice": "-5"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode(t, w)["fields"].(map[string]any)
		assert.Equal(t, "Enter a valid non-negative number", fields["tripTypePrice"])
	})

	t.Run("negative page fails the schema", func(t *testing.T) {
		ts := newServer(t)
		w := ts.do(http.MethodPost, "/api/search/flights", map[string]any{"page": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode(t, w)["errors"])
	})

	t.Run("form fields reach the filter", func(t *testing.T) {
		ts := newServer(t)
		form := search.FlightForm{ArrivalCityContains: "Dubai", DepartureDateGte: "2025-06-01", TripTypePrice: "500"}
		filter, err := form.Filter()
		require.NoError(t, err)
		ts.api.On("SearchFlights", anyCtx, filter, 2, 5).Return(services.FlightPage{}, nil).Once()

		w := ts.do(http.MethodPost, "/api/search/flights", map[string]any{"form": form, "page": 2, "size": 5})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, decode(t, w)["flights"])
	})
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", &services.APIError{Code: services.CodeUnauthorized, Status: 401, Message: "Invalid credentials"}, http.StatusUnauthorized, services.CodeUnauthorized},
		{"forbidden", &services.APIError{Code: services.CodeForbidden, Status: 403, Message: "Access denied"}, http.StatusForbidden, services.CodeForbidden},
		{"network", &services.APIError{Code: services.CodeNetwork, Message: "Network error"}, http.StatusBadGateway, services.CodeNetwork},
		{"server", &services.APIError{Code: services.CodeServer, Status: 503, Message: "Server error"}, http.StatusServiceUnavailable, services.CodeServer},
		{"graphql", &services.GraphQLError{Messages: []string{"bad filter"}}, http.StatusInternalServerError, services.CodeUnknown},
		{"plain", errors.New("boom"), http.StatusInternalServerError, services.CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t)
			ts.api.On("SearchFlights", anyCtx, anyCtx, anyCtx, anyCtx).Return(services.FlightPage{}, tt.err).Once()

			w := ts.do(http.MethodPost, "/api/search/flights", map[string]any{})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w)["code"])
		})
	}
}

func TestSearchHotels_GroupsRooms(t *testing.T) {
	ts := newServer(t)
	nile := &search.RoomHotel{HotelID: 1, HotelName: "Nile View", City: "Cairo"}
	rooms := []search.Room{
		{RoomTypeID: 10, RoomTypeName: "Suite", Price: 250, Hotel: nile},
		{RoomTypeID: 11, RoomTypeName: "Double", Price: 90, Hotel: nile},
		{RoomTypeID: 20, RoomTypeName: "Single", Price: 60, Hotel: &search.RoomHotel{HotelID: 2, HotelName: "Sea Breeze"}},
	}
	filter, err := search.NewHotelForm().Filter()
	require.NoError(t, err)
	ts.api.On("SearchRooms", anyCtx, filter, 0, search.PageSize).Return(rooms, nil).Once()

	w := ts.do(http.MethodPost, "/api/search/hotels", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, float64(3), body["rooms"])
	hotels := body["hotels"].([]any)
	require.Len(t, hotels, 2)
	first := hotels[0].(map[string]any)
	assert.Equal(t, "Nile View", first["hotelName"])
	assert.Equal(t, float64(90), first["lowestPrice"])
	assert.Len(t, first["roomTypes"], 2)
}

func TestSearchHotels_BadRating(t *testing.T) {
	ts := newServer(t)
	w := ts.do(http.MethodPost, "/api/search/hotels", map[string]any{"form": map[string]string{"hotelRating": "7"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Equal(t, "Rating must be between 0 and 5", fields["hotelRating"])
}

func TestSearchHistory(t *testing.T) {
	t.Run("disabled without a database", func(t *testing.T) {
		ts := newServer(t)
		w := ts.do(http.MethodGet, "/api/search/history", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("filters by kind", func(t *testing.T) {
		history := newFakeHistory()
		ts := newServer(t, handlers.WithHistory(history))
		ts.api.On("SearchRooms", anyCtx, anyCtx, anyCtx, anyCtx).Return([]search.Room{}, nil).Once()
		ts.do(http.MethodPost, "/api/search/hotels", map[string]any{}, "Authorization", "Bearer tok")

		w := ts.do(http.MethodGet, "/api/search/history?kind=hotels", nil, "Authorization", "Bearer tok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["searches"], 1)

		w = ts.do(http.MethodGet, "/api/search/history?kind=flights", nil, "Authorization", "Bearer tok")
		assert.Len(t, decode(t, w)["searches"], 0)

		w = ts.do(http.MethodGet, "/api/search/history?kind=trains", nil, "Authorization", "Bearer tok")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("scoped to the caller", func(t *testing.T) {
		history := newFakeHistory()
		ts := newServer(t, handlers.WithHistory(history))
		ts.api.On("SearchRooms", anyCtx, anyCtx, anyCtx, anyCtx).Return([]search.Room{}, nil).Times(3)
		ts.do(http.MethodPost, "/api/search/hotels", map[string]any{}, "Authorization", "Bearer sara")
		ts.do(http.MethodPost, "/api/search/hotels", map[string]any{}, "Authorization", "Bearer sara")
		ts.do(http.MethodPost, "/api/search/hotels", map[string]any{})
		require.Len(t, history.searches, 2, "anonymous searches are not kept")
		assert.NotContains(t, history.searches[0].Owner, "sara")

		w := ts.do(http.MethodGet, "/api/search/history", nil, "Authorization", "Bearer sara")
		assert.Len(t, decode(t, w)["searches"], 2)
		assert.NotContains(t, w.Body.String(), history.searches[0].Owner)

		w = ts.do(http.MethodGet, "/api/search/history", nil, "Authorization", "Bearer omar")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["searches"], 0)

		w = ts.do(http.MethodGet, "/api/search/history", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, services.CodeUnauthorized, decode(t, w)["code"])
	})

	t.Run("limit is clamped", func(t *testing.T) {
		history := newFakeHistory()
		ts := newServer(t, handlers.WithHistory(history))
		for _, q := range []string{"", "?limit=5", "?limit=100000"} {
			w := ts.do(http.MethodGet, "/api/search/history"+q, nil, "Authorization", "Bearer tok")
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, []int{database.DefaultSearchLimit, 5, database.MaxSearchLimit}, history.limits)

		w := ts.do(http.MethodGet, "/api/search/history?limit=-1", nil, "Authorization", "Bearer tok")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recording failures do not fail the search", func(t *testing.T) {
		history := newFakeHistory()
		history.err = errors.New("db down")
		ts := newServer(t, handlers.WithHistory(history))
		ts.api.On("SearchRooms", anyCtx, anyCtx, anyCtx, anyCtx).Return([]search.Room{}, nil).Once()

		w := ts.do(http.MethodPost, "/api/search/hotels", map[string]any{}, "Authorization", "Bearer tok")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFlightOffers(t *testing.T) {
	ts := newServer(t)
	ts.api.On("PublicFlightOffers", anyCtx, 3).Return([]offers.Offer{
		{Name: "spring", DiscountValue: 10},
		{Name: "summer", DiscountValue: 25},
	}).Once()

	w := ts.do(http.MethodGet, "/api/flights/3/offers?price=200", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, float64(50), body["savings"])
	assert.Equal(t, "summer", body["best"].(map[string]any)["offerName"])
	assert.Equal(t, "$150.00", body["price"].(map[string]any)["displayPrice"])

	list := body["offers"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "25% OFF", list[0].(map[string]any)["badge"])
	assert.Equal(t, "spring", list[1].(map[string]any)["offerName"])

	w = ts.do(http.MethodGet, "/api/flights/abc/offers", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(http.MethodGet, "/api/flights/3/offers?price=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRanges(t *testing.T) {
	ts := newServer(t)

	w := ts.do(http.MethodGet, "/api/ranges/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["presets"], len(search.Presets))
	assert.Equal(t, map[string]any{"startDate": "2025-04-10", "endDate": "2025-05-10"}, body["default"])
	assert.Equal(t, map[string]any{"startDate": "2025-05-09", "endDate": "2025-05-09"}, body["yesterday"])

	w = ts.do(http.MethodGet, "/api/ranges/calendar?month=2025-05&startDate=2025-05-05&endDate=2025-05-03", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "May 2025", body["month"])
	assert.Equal(t, map[string]any{"startDate": "2025-05-03", "endDate": "2025-05-05"}, body["range"])

	days := body["days"].([]any)
	require.Len(t, days, search.CalendarCells)
	selected := 0
	for _, d := range days {
		if d.(map[string]any)["selected"] == true {
			selected++
		}
	}
	assert.Equal(t, 3, selected)

	w = ts.do(http.MethodGet, "/api/ranges/calendar?month=May", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
