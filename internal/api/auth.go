package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"task-manager/internal/config"
	"task-manager/internal/services"
)

const userIDCtxKey = "user_id"

var errMissingSubject = errors.New("token has no subject")

// Authenticator mints and verifies the HS256 bearer tokens that carry the
// caller's user id in the subject claim.
type Authenticator struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// NewAuthenticator creates an Authenticator from the auth configuration.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		ttl:        cfg.TokenTTL,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to stamp and check tokens.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// Mint issues a signed token for userID.
func (a *Authenticator) Mint(userID string) (string, error) {
	if userID == "" {
		return "", errMissingSubject
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    a.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// UserID verifies tokenString and returns its subject.
func (a *Authenticator) UserID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return a.signingKey, nil
		},
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("failed to parse token claims")
	}
	if claims.Subject == "" {
		return "", errMissingSubject
	}
	return claims.Subject, nil
}

func (h *handlerImpl) HandleAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.logger.Debug().Msg("authorization header required")
		abortUnauthorized(c)
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Debug().Msg("invalid authorization header")
		abortUnauthorized(c)
		return
	}

	userID, err := h.auth.UserID(strings.TrimSpace(parts[1]))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("rejected bearer token")
		abortUnauthorized(c)
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, services.Result{
		Success: false,
		Message: http.StatusText(http.StatusUnauthorized),
	})
}

func userID(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}
