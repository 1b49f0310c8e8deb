package leasing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := adapters.NewClient("leasing", config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second}, nil, nil, zaptest.NewLogger(t))
	return New(client)
}

func TestListByRentalObjectCode(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leases", r.URL.Path)
		assert.Equal(t, "705-011-03-1001", r.URL.Query().Get("rentalObjectCode"))
		assert.Equal(t, "false", r.URL.Query().Get("includeTerminated"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"leaseId":"705-011-03-1001/01","status":"Current",
			"leaseStartDate":"2023-04-01T00:00:00Z","tenants":[{"contactCode":"P1","fullName":"Anna A"}]}]}`))
	})

	leases, err := a.ListByRentalObjectCode(context.Background(), "705-011-03-1001", false)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, "705-011-03-1001/01", leases[0].LeaseID)
	assert.Nil(t, leases[0].LeaseEndDate)
	assert.Equal(t, "Anna A", leases[0].Tenants[0].FullName)
}

func TestListByRentalObjectCode_EmptyContent(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":null}`))
	})

	leases, err := a.ListByRentalObjectCode(context.Background(), "x", true)
	require.NoError(t, err)
	assert.NotNil(t, leases)
	assert.Empty(t, leases)
}

func TestGetLease_NotFound(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	})

	_, err := a.GetLease(context.Background(), "123/01")
	assert.ErrorIs(t, err, adapters.NotFound)
}
