package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{SigningKey: "secret", Issuer: "task-manager", TokenTTL: time.Hour}
}

func TestAuthenticator_MintAndVerify(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())

	token, err := auth.Mint("u1")
	require.NoError(t, err)

	userID, err := auth.UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = auth.Mint("")
	assert.ErrorIs(t, err, errMissingSubject)
}

func TestAuthenticator_RejectsTokens(t *testing.T) {
	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	minter := NewAuthenticator(testAuthConfig()).WithClock(func() time.Time { return issued })
	token, err := minter.Mint("u1")
	require.NoError(t, err)

	otherKey := testAuthConfig()
	otherKey.SigningKey = "other"
	otherIssuer := testAuthConfig()
	otherIssuer.Issuer = "someone-else"

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "task-manager",
		ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		auth  *Authenticator
		token string
	}{
		{name: "expired", auth: NewAuthenticator(testAuthConfig()).WithClock(func() time.Time { return issued.Add(2 * time.Hour) }), token: token},
		{name: "wrong key", auth: NewAuthenticator(otherKey).WithClock(func() time.Time { return issued }), token: token},
		{name: "wrong issuer", auth: NewAuthenticator(otherIssuer).WithClock(func() time.Time { return issued }), token: token},
		{name: "unsigned", auth: NewAuthenticator(testAuthConfig()).WithClock(func() time.Time { return issued }), token: noneToken},
		{name: "garbage", auth: NewAuthenticator(testAuthConfig()), token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.auth.UserID(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAPI_RequiresBearerToken(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name  string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + api.token},
		{name: "no token", header: "Bearer"},
		{name: "bad token", header: "Bearer abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/folders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
