package controller

import (
	"context"
	"errors"
	"sync"

	"gitlab.com/dirk.krummacker/customer-crm/internal/store"
	"gitlab.com/dirk.krummacker/customer-crm/internal/view"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// Dashboard shows the status counters and the most recent customers.
type Dashboard struct {
	env   Env
	store *store.Store

	mu    sync.Mutex
	phase Phase
}

// NewDashboard creates the dashboard controller with a store of its own.
func NewDashboard(repo Repository, env Env) *Dashboard {
	env = env.withDefaults()
	return &Dashboard{env: env, store: store.New(repo, env.Logger)}
}

// Load fetches the customers. A failure leaves the previous data in place, notifies the user
// and keeps the dashboard open.
func (d *Dashboard) Load(ctx context.Context) error {
	d.setPhase(Loading)
	_, err := d.store.Refresh(ctx)
	switch {
	case errors.Is(err, store.ErrSuperseded):
		return nil
	case err != nil:
		d.setPhase(LoadFailed)
		d.env.Logger.Warn("loading dashboard failed", zap.Error(err))
		d.env.Notifier.Error("Error loading customers")
		return err
	}
	d.setPhase(Ready)
	return nil
}

func (d *Dashboard) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

func (d *Dashboard) setPhase(phase Phase) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phase = phase
}

// Stats returns the status counters of the loaded customers.
func (d *Dashboard) Stats() view.StatusCounts {
	return view.AggregateStatusCounts(d.store.Snapshot())
}

// Recent returns the customers listed under "Recent Customers".
func (d *Dashboard) Recent() []model.Customer {
	return view.Recent(d.store.Snapshot())
}

// ViewAll switches to the customer list.
func (d *Dashboard) ViewAll() {
	d.env.Navigator.Navigate(ListPath)
}

// AddCustomer switches to the create screen.
func (d *Dashboard) AddCustomer() {
	d.env.Navigator.Navigate(AddPath)
}

// Show switches to the detail screen of a customer.
func (d *Dashboard) Show(id string) {
	d.env.Navigator.Navigate(CustomerPath(id))
}
