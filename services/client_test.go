package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarzydan610/JetStay-sub001/services"
)

// newClient starts a fake API serving h and returns a client pointed at it.
func newClient(t *testing.T, token string, h http.HandlerFunc) (*services.Client, *services.MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := services.NewMemoryTokenStore(token)
	return services.NewClient(srv.URL, store), store
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func signedToken(t *testing.T, claims services.TokenClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotType string
	c, _ := newClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		writeJSON(w, 200, `{"success":true,"data":"ok"}`)
	})

	_, err := c.Signup(context.Background(), services.SignupRequest{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotType)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var present bool
	c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		writeJSON(w, 200, `[]`)
	})

	_, err := c.Countries(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestClient_UnwrapsEnvelopeOrBareBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"envelope", `{"success":true,"message":"ok","data":[{"name":"Egypt","code":"EG"}]}`},
		{"bare list", `[{"name":"Egypt","code":"EG"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, 200, tt.body)
			})
			got, err := c.Countries(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []services.Country{{Name: "Egypt", Code: "EG"}}, got)
		})
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantCleared bool
	}{
		{"401 default message", 401, `{}`, services.CodeUnauthorized, "Invalid credentials", true},
		{"401 server message", 401, `{"message":"Bad password"}`, services.CodeUnauthorized, "Bad password", true},
		{"403", 403, `{"success":false}`, services.CodeForbidden, "Access denied", true},
		{"validation", 400, `{"message":"Validation failed","errors":[{"field":"email","message":"Email is invalid"}]}`,
			services.CodeValidation, "Validation failed", false},
		{"server default", 500, `not json`, services.CodeServer, "Server error", false},
		{"server message", 409, `{"message":"Email already used"}`, services.CodeServer, "Email already used", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := c.Signup(context.Background(), services.SignupRequest{})
			require.Error(t, err)
			apiErr := services.AsAPIError(err)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "/api/auth/signup", apiErr.Path)

			token, _ := store.Load()
			if tt.wantCleared {
				assert.Empty(t, token)
			} else {
				assert.Equal(t, "tok", token)
			}
		})
	}
}

func TestClient_ValidationDetails(t *testing.T) {
	c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, `{"errors":[{"field":"email","message":"first"},{"field":"email","message":"second"},{"field":"phone","message":"bad phone"}]}`)
	})

	_, err := c.Signup(context.Background(), services.SignupRequest{})
	apiErr := services.AsAPIError(err)
	require.Equal(t, services.CodeValidation, apiErr.Code)
	assert.Equal(t, "first", apiErr.Message)
	assert.Equal(t, map[string]string{"email": "first", "phone": "bad phone"}, apiErr.Fields())
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := services.NewClient(url, nil)
	_, err := c.Countries(context.Background())
	apiErr := services.AsAPIError(err)
	assert.Equal(t, services.CodeNetwork, apiErr.Code)
	assert.Equal(t, "Network error. Please check your connection.", apiErr.Message)
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus())
	assert.True(t, services.IsCode(err, services.CodeNetwork))
}

func TestAsAPIError(t *testing.T) {
	assert.Nil(t, services.AsAPIError(nil))

	plain := errors.New("disk full")
	apiErr := services.AsAPIError(plain)
	assert.Equal(t, services.CodeUnknown, apiErr.Code)
	assert.Equal(t, "disk full", apiErr.Message)
	assert.ErrorIs(t, apiErr, plain)

	wrapped := fmt.Errorf("load: %w", &services.APIError{Code: services.CodeForbidden, Message: "Access denied"})
	assert.Equal(t, services.CodeForbidden, services.AsAPIError(wrapped).Code)
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, 200, `[]`)
	}))
	t.Cleanup(srv.Close)

	shared := &http.Client{Timeout: 5 * time.Second}
	fast := services.NewClient(srv.URL, nil, services.WithHTTPClient(shared), services.WithTimeout(20*time.Millisecond))
	slow := services.NewClient(srv.URL, nil, services.WithHTTPClient(shared))

	assert.Equal(t, 5*time.Second, shared.Timeout)

	_, err := fast.Countries(context.Background())
	assert.True(t, services.IsCode(err, services.CodeNetwork), "got %v", err)

	_, err = slow.Countries(context.Background())
	assert.NoError(t, err)
}

func TestClient_UndecodableSuccessBody(t *testing.T) {
	c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"data":"not a list"}`)
	})
	_, err := c.Countries(context.Background())
	apiErr := services.AsAPIError(err)
	assert.Equal(t, services.CodeUnknown, apiErr.Code)
	assert.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus())
}

func TestClient_SendKeepsEnvelopeMessage(t *testing.T) {
	c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"success":true,"message":"Flight deleted","data":null}`)
	})
	env, err := c.DeleteFlight(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "Flight deleted", env.Message)
}

func TestClient_Session(t *testing.T) {
	c, _ := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {})
	_, err := c.Session()
	assert.True(t, services.IsCode(err, services.CodeUnauthorized))
	assert.False(t, c.IsAuthenticated())

	token := signedToken(t, services.TokenClaims{
		UserID:  4,
		HotelID: 9,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "manager@nile.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, c.SetToken(token))
	assert.True(t, c.IsAuthenticated())

	claims, err := c.Session()
	require.NoError(t, err)
	assert.Equal(t, "manager@nile.com", claims.Email())
	assert.Equal(t, 4, claims.UserID)
	assert.Equal(t, 9, claims.HotelID)

	require.NoError(t, c.Logout())
	assert.False(t, c.IsAuthenticated())
}

func TestEnvelope_DecodeData(t *testing.T) {
	env := services.Envelope{Data: json.RawMessage(`{"id":5}`)}
	var out struct{ ID int }
	require.NoError(t, env.DecodeData(&out))
	assert.Equal(t, 5, out.ID)

	empty := services.Envelope{Data: json.RawMessage(`null`)}
	require.NoError(t, empty.DecodeData(&out))
	assert.Equal(t, 5, out.ID)
}
