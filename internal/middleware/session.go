package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// HeaderSessionToken carries the signed session token in both directions:
// clients send it back on every request, and the middleware sets it on the
// response whenever a new session is minted.
const HeaderSessionToken = "X-Session-Token"

// SessionAuth mints and validates the signed session identifiers that key
// per-caller state. Unlike a login, an invalid or missing token is not an
// error: the caller just gets a fresh session.
type SessionAuth struct {
	Secret []byte
}

func NewSessionAuth(secret string) *SessionAuth {
	return &SessionAuth{Secret: []byte(secret)}
}

// Token signs a session identifier into a bearer token.
func (a *SessionAuth) Token(sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// Middleware resolves the caller's session identifier and attaches it to the
// request context, minting a new session when no valid token came along.
func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := a.parseToken(r)
		if !ok {
			sessionID = uuid.New()
			if token, err := a.Token(sessionID); err == nil {
				w.Header().Set(HeaderSessionToken, token)
			}
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *SessionAuth) parseToken(r *http.Request) (uuid.UUID, bool) {
	tokenStr := r.Header.Get(HeaderSessionToken)
	if tokenStr == "" {
		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenStr = parts[1]
		}
	}
	if tokenStr == "" {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	sidStr, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, false
	}
	sid, err := uuid.Parse(sidStr)
	if err != nil {
		return uuid.Nil, false
	}

	return sid, true
}

// GetSessionID extracts the session identifier from the request context.
func GetSessionID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(SessionIDKey).(uuid.UUID)
	return id
}
