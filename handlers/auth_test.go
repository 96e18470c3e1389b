package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

func signed(t *testing.T, claims services.TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func airlineToken(t *testing.T, expires time.Time) string {
	return signed(t, services.TokenClaims{
		UserID:    4,
		AirlineID: 9,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sara@example.com",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
}

func TestLogin(t *testing.T) {
	token := airlineToken(t, now.Add(time.Hour))

	tests := []struct {
		name       string
		body       any
		setup      func(m *mockAPI)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name: "valid credentials",
			body: map[string]string{"email": " sara@example.com ", "password": "Secret123"},
			setup: func(m *mockAPI) {
				m.On("Login", anyCtx, services.Credentials{Email: "sara@example.com", Password: "Secret123"}).
					Return(token, nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, token, body["token"])
				session := body["session"].(map[string]any)
				assert.Equal(t, true, session["authenticated"])
				assert.Equal(t, "sara@example.com", session["email"])
				assert.Equal(t, float64(9), session["airlineId"])
			},
		},
		{
			name:       "malformed email",
			body:       map[string]string{"email": "sara", "password": "x"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				fields := body["fields"].(map[string]any)
				assert.Equal(t, "Please enter a valid email address", fields["email"])
			},
		},
		{
			name:       "missing password fails the schema",
			body:       map[string]string{"email": "sara@example.com"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.NotEmpty(t, body["errors"])
			},
		},
		{
			name: "rejected by the API",
			body: map[string]string{"email": "sara@example.com", "password": "wrong"},
			setup: func(m *mockAPI) {
				m.On("Login", anyCtx, services.Credentials{Email: "sara@example.com", Password: "wrong"}).
					Return("", &services.APIError{Code: services.CodeUnauthorized, Status: 401, Message: "Invalid credentials"}).Once()
			},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid credentials", body["error"])
				assert.Equal(t, services.CodeUnauthorized, body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t)
			if tt.setup != nil {
				tt.setup(ts.api)
			}
			w := ts.do(http.MethodPost, "/api/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			tt.check(t, decode(t, w))
		})
	}
}

func TestSession(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"expired", airlineToken(t, now.Add(-time.Minute)), http.StatusUnauthorized},
		{"garbage", "not.a.token", http.StatusUnauthorized},
		{"valid", airlineToken(t, now.Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t)
			var headers []string
			if tt.token != "" {
				headers = []string{"Authorization", "Bearer " + tt.token}
			}
			w := ts.do(http.MethodGet, "/api/auth/session", nil, headers...)
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decode(t, w)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["authenticated"])
		})
	}
}

func TestSignup(t *testing.T) {
	form := validate.SignupForm{
		FirstName:       "Sara",
		LastName:        "Adel",
		Email:           "sara@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		PhoneNumber:     "1012345678",
	}
	body := map[string]string{
		"firstName":       form.FirstName,
		"lastName":        form.LastName,
		"email":           form.Email,
		"password":        form.Password,
		"confirmPassword": form.ConfirmPassword,
		"phoneNumber":     form.PhoneNumber,
	}

	t.Run("valid form is sent with the country prefix", func(t *testing.T) {
		ts := newServer(t)
		ts.api.On("Signup", anyCtx, services.SignupRequest{
			FirstName:   "Sara",
			LastName:    "Adel",
			Email:       "sara@example.com",
			Password:    "Secret123",
			PhoneNumber: "+201012345678",
		}).Return(okEnvelope("User registered"), nil).Once()

		w := ts.do(http.MethodPost, "/api/auth/signup", body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User registered", decode(t, w)["message"])
	})

	t.Run("invalid form never reaches the API", func(t *testing.T) {
		ts := newServer(t)
		bad := map[string]string{}
		for k, v := range body {
			bad[k] = v
		}
		bad["confirmPassword"] = "Other123"
		bad["phoneNumber"] = "12"

		w := ts.do(http.MethodPost, "/api/auth/signup", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode(t, w)["fields"].(map[string]any)
		assert.Equal(t, "Passwords do not match", fields["confirmPassword"])
		assert.Equal(t, "Phone must be 10 digits", fields["phoneNumber"])
		assert.Empty(t, ts.tokens)
	})
}

func TestPasswordRecovery(t *testing.T) {
	t.Run("otp must be six digits", func(t *testing.T) {
		ts := newServer(t)
		w := ts.do(http.MethodPost, "/api/auth/verify-otp", map[string]string{"email": "a@b.co", "otp": "12ab"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode(t, w)["errors"])
	})

	t.Run("verify returns the reset token", func(t *testing.T) {
		ts := newServer(t)
		ts.api.On("VerifyOTP", anyCtx, "a@b.co", "123456").Return("reset-1", nil).Once()

		w := ts.do(http.MethodPost, "/api/auth/verify-otp", map[string]string{"email": "a@b.co", "otp": "123456"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "reset-1", decode(t, w)["resetToken"])
	})

	t.Run("weak new password", func(t *testing.T) {
		ts := newServer(t)
		w := ts.do(http.MethodPost, "/api/auth/reset-password",
			map[string]string{"email": "a@b.co", "resetToken": "reset-1", "newPassword": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["fields"], "newPassword")
	})

	t.Run("reset and change use their own endpoints", func(t *testing.T) {
		ts := newServer(t)
		ts.api.On("ResetPassword", anyCtx, "a@b.co", "reset-1", "Secret123").Return(okEnvelope("reset"), nil).Once()
		ts.api.On("ChangePassword", anyCtx, "a@b.co", "reset-1", "Secret123").Return(okEnvelope("changed"), nil).Once()

		body := map[string]string{"email": "a@b.co", "resetToken": "reset-1", "newPassword": "Secret123"}
		w := ts.do(http.MethodPost, "/api/auth/reset-password", body)
		assert.Equal(t, "reset", decode(t, w)["message"])
		w = ts.do(http.MethodPost, "/api/auth/change-password", body)
		assert.Equal(t, "changed", decode(t, w)["message"])
	})

	t.Run("forgot password", func(t *testing.T) {
		ts := newServer(t)
		ts.api.On("ForgotPassword", anyCtx, "a@b.co").Return(okEnvelope("OTP sent"), nil).Once()

		w := ts.do(http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": " a@b.co"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OTP sent", decode(t, w)["message"])
	})
}
