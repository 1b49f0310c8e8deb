// Package auth provides JWT validation middleware for the propertyhub HTTP
// services and the service tokens core presents to property base.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// RequestFilter reports whether a request needs a valid token.
type RequestFilter func(r *http.Request) bool

// HTTPMiddleware rejects protected requests that carry no valid bearer
// token and stores the claims of accepted ones in the request context.
func HTTPMiddleware(next http.Handler, jwtSecret string, isProtected RequestFilter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtected(r) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := extractTokenFromHeader(r)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			writeUnauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Mutations protects every request that is not a read.
func Mutations(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return !isPublicPath(r.URL.Path)
}

// AllExceptPublic protects everything but health and metrics endpoints.
func AllExceptPublic(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return false
	}
	return !isPublicPath(r.URL.Path)
}

func isPublicPath(path string) bool {
	return path == "/health" || path == "/metrics"
}

// Subject returns the "sub" claim of the authenticated caller, if any.
func Subject(ctx context.Context) string {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func extractTokenFromHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("invalid authorization format: missing Bearer prefix")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return "", fmt.Errorf("invalid authorization format: empty token")
	}

	return tokenString, nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": message})
}
