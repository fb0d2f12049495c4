package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const IdentityKey contextKey = "identity"

const RoleAdmin = "admin"

// Identity is the already-verified caller. Subject doubles as the voter id.
type Identity struct {
	Subject string
	Role    string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(Identity)
	return identity, ok
}

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 tokens issued elsewhere. Tokens are read from
// the Authorization header or the access_token cookie.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Authenticate attaches the caller identity when a valid token is present.
// Requests without a token pass through anonymously; invalid tokens are
// rejected.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromRequest(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.verify(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "Unauthorized: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) verify(raw string) (Identity, error) {
	var claims identityClaims
	token, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return Identity{Subject: subject, Role: claims.Role}, nil
}

func RequireVoter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "Unauthorized: missing identity")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "Unauthorized: missing identity")
			return
		}
		if !identity.IsAdmin() {
			writeErrorMessage(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
