// Package leasing is the core adapter over the lease system.
package leasing

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gartstein/propertyhub/internal/core/adapters"
)

// Tenant is a contact party on a lease.
type Tenant struct {
	ContactCode string `json:"contactCode"`
	FullName    string `json:"fullName"`
}

// Lease is a rental contract on a rental object.
type Lease struct {
	LeaseID          string     `json:"leaseId"`
	LeaseNumber      string     `json:"leaseNumber"`
	RentalPropertyID string     `json:"rentalPropertyId"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	LeaseStartDate   time.Time  `json:"leaseStartDate"`
	LeaseEndDate     *time.Time `json:"leaseEndDate,omitempty"`
	Tenants          []Tenant   `json:"tenants"`
}

type Adapter struct {
	client *adapters.Client
}

func New(client *adapters.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) GetLease(ctx context.Context, id string) (*Lease, error) {
	return adapters.Get[*Lease](ctx, a.client, "/leases/"+url.PathEscape(id), nil)
}

// ListByRentalObjectCode returns the leases of a rental object. Terminated
// leases are left out unless includeTerminated is set.
func (a *Adapter) ListByRentalObjectCode(ctx context.Context, code string, includeTerminated bool) ([]Lease, error) {
	leases, err := adapters.Get[[]Lease](ctx, a.client, "/leases", map[string]string{
		"rentalObjectCode":  code,
		"includeTerminated": strconv.FormatBool(includeTerminated),
	})
	if err != nil {
		return nil, err
	}
	if leases == nil {
		leases = []Lease{}
	}
	return leases, nil
}
