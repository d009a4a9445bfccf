package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

// sessionTTL is deliberately long: logins carry "remember me" semantics, so
// the token outlives the browser session and the server process alike.
const sessionTTL = 30 * 24 * time.Hour

// sessionClaims is the JWT payload for a logged-in user. The subject holds
// the user ID, the ID claim (jti) keys the revocation list.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// SessionManager mints and parses signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Mint returns a signed token bound to the user and the session it encodes.
func (m *SessionManager) Mint(user *domain.User) (string, ports.Session, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", ports.Session{}, fmt.Errorf("session: sign: %w", err)
	}

	return token, ports.Session{
		UserID:    user.ID,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// Parse validates a token string and returns the session it carries.
// Any failure (bad signature, wrong algorithm, expired, malformed subject)
// comes back as domain.ErrNotAuthenticated.
func (m *SessionManager) Parse(tokenString string) (ports.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ports.Session{}, domain.ErrNotAuthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 || claims.ID == "" {
		return ports.Session{}, domain.ErrNotAuthenticated
	}

	var expiresAt int64
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}

	return ports.Session{UserID: userID, TokenID: claims.ID, ExpiresAt: expiresAt}, nil
}

// TTL returns the configured session lifetime (used for cookie expiry).
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
