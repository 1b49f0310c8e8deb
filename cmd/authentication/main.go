// This is a **mock authentication service**. It hands out JWTs that core
// and the property base accept, standing in for the real identity
// provider in local setups.
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gartstein/propertyhub/internal/pkg/auth"
	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/pkg/server"
	"go.uber.org/zap"
)

const (
	defaultPort    = 8081
	defaultSecret  = "jwt_secret"
	defaultSubject = "12345"
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler signs a token for the "sub" query parameter, or a fixed
// test user.
func tokenHandler(secret string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := r.URL.Query().Get("sub")
		if subject == "" {
			subject = defaultSubject
		}

		token, err := auth.GenerateToken(subject, secret)
		if err != nil {
			logger.Error("Failed to generate token", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal", "failed to generate token")
			return
		}
		httpjson.Write(w, http.StatusOK, TokenResponse{Token: token})
	}
}

func main() {
	logger, err := config.NewLogger(config.LogConfig{Format: os.Getenv("LOG_FORMAT")}, "authentication")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}
	port := defaultPort
	if raw := os.Getenv("AUTH_PORT"); raw != "" {
		if port, err = strconv.Atoi(raw); err != nil {
			logger.Fatal("invalid AUTH_PORT", zap.String("value", raw))
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", tokenHandler(secret, logger))

	if err := server.NewServer(port, mux, logger).Run(); err != nil {
		logger.Fatal("authentication service failed", zap.Error(err))
	}
}
