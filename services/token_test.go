package services_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarzydan610/JetStay-sub001/services"
)

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := services.NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file loads as empty")

	require.NoError(t, store.Save("abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestIsTokenExpired(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	withExp := func(exp time.Time) string {
		return signedToken(t, services.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject: "a@b.co", ExpiresAt: jwt.NewNumericDate(exp),
		}})
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"malformed", "not-a-token", true},
		{"empty", "", true},
		{"expired", withExp(now.Add(-time.Minute)), true},
		{"valid", withExp(now.Add(time.Hour)), false},
		{"no exp", signedToken(t, services.TokenClaims{UserID: 1}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.IsTokenExpired(tt.token, now))
		})
	}
}

func TestParseClaims(t *testing.T) {
	token := signedToken(t, services.TokenClaims{
		UserID:           12,
		AirlineID:        3,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ops@nileair.com"},
	})
	claims, err := services.ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@nileair.com", claims.Email())
	assert.Equal(t, 12, claims.UserID)
	assert.Equal(t, 3, claims.AirlineID)
	assert.Zero(t, claims.HotelID)

	_, err = services.ParseClaims("x.y")
	assert.Error(t, err)
}
