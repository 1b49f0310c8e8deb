package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens minted by GenerateToken.
const DefaultTTL = 24 * time.Hour

// GenerateToken signs an HS256 token for subject.
func GenerateToken(subject string, secret string) (string, error) {
	return generateToken(subject, secret, time.Now(), DefaultTTL)
}

func generateToken(subject, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateToken checks the token signature and returns parsed claims if valid.
func validateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// ServiceToken mints and caches the token a service presents to its
// upstreams. A cached token is reused until it is within refreshBefore of
// expiring.
type ServiceToken struct {
	subject string
	secret  string
	now     func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

const refreshBefore = 5 * time.Minute

// NewServiceToken creates a ServiceToken for the given service name.
func NewServiceToken(subject, secret string) *ServiceToken {
	return &ServiceToken{subject: subject, secret: secret, now: time.Now}
}

// Token returns a valid bearer token.
func (s *ServiceToken) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(refreshBefore).Before(s.expires) {
		return s.token, nil
	}

	token, err := generateToken(s.subject, s.secret, now, DefaultTTL)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expires = now.Add(DefaultTTL)
	return token, nil
}
