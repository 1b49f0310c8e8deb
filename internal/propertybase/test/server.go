// Package test holds the property base integration suite and a helper that
// serves the full property base stack for tests of its clients.
package test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gartstein/propertyhub/internal/propertybase/controller"
	"github.com/gartstein/propertyhub/internal/propertybase/db"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/handlers"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
)

// PropertyBase is a running property base backed by in-memory SQLite.
type PropertyBase struct {
	*httptest.Server
	Repo *db.Repository
}

// NewPropertyBase starts a property base that accepts tokens signed with
// secret. It is closed when the test ends.
func NewPropertyBase(t testing.TB, secret string) *PropertyBase {
	t.Helper()
	logger := zaptest.NewLogger(t)

	repo, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())))
	if err != nil {
		t.Fatalf("open property base database: %v", err)
	}

	h := handlers.NewHandler(
		controller.NewStructureService(repo, logger),
		controller.NewComponentService(repo, events.NopProducer{}, logger),
		logger,
	)
	srv := httptest.NewServer(h.Router(handlers.RouterConfig{JWTSecret: secret, Health: repo.Ping}))
	t.Cleanup(func() {
		srv.Close()
		_ = repo.Close()
	})
	return &PropertyBase{Server: srv, Repo: repo}
}
