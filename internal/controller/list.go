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

// ErrResolved is returned when a delete confirmation is used a second time.
var ErrResolved = errors.New("confirmation already resolved")

// List is the customer table with search, status filter, paging and delete.
type List struct {
	repo  Repository
	env   Env
	store *store.Store

	mu       sync.Mutex
	phase    Phase
	search   string
	filter   view.StatusFilter
	page     int
	pageSize int
}

// NewList creates the list controller with a store of its own. It starts unfiltered on the
// first page.
func NewList(repo Repository, env Env) *List {
	env = env.withDefaults()
	return &List{
		repo:     repo,
		env:      env,
		store:    store.New(repo, env.Logger),
		filter:   view.AllStatuses,
		page:     1,
		pageSize: view.DefaultPageSize,
	}
}

// Load fetches the customers. A failure leaves the previous rows in place, notifies the user
// and keeps the list open.
func (l *List) Load(ctx context.Context) error {
	l.setPhase(Loading)
	_, err := l.store.Refresh(ctx)
	switch {
	case errors.Is(err, store.ErrSuperseded):
		return nil
	case err != nil:
		l.setPhase(LoadFailed)
		l.env.Logger.Warn("loading customers failed", zap.Error(err))
		l.env.Notifier.Error("Error loading customers")
		return err
	}
	l.setPhase(Ready)
	return nil
}

func (l *List) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

func (l *List) setPhase(phase Phase) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = phase
}

// SetSearch changes the search text and goes back to the first page.
func (l *List) SetSearch(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.search = query
	l.page = 1
}

// SetStatusFilter changes the status filter and goes back to the first page.
func (l *List) SetStatusFilter(filter view.StatusFilter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = filter
	l.page = 1
}

// SetPage selects a page. Out of range values are clamped when the page is computed.
func (l *List) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = page
}

// SetPageSize changes the number of rows per page and goes back to the first page.
func (l *List) SetPageSize(size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pageSize = size
	l.page = 1
}

// Visible returns all customers passing search and filter, in snapshot order.
func (l *List) Visible() []model.Customer {
	l.mu.Lock()
	query, filter := l.search, l.filter
	l.mu.Unlock()
	return view.FilterCustomers(l.store.Snapshot(), query, filter)
}

// Page returns the rows of the selected page of the visible customers.
func (l *List) Page() ([]model.Customer, view.PageInfo) {
	l.mu.Lock()
	page, pageSize := l.page, l.pageSize
	l.mu.Unlock()
	return view.Paginate(l.Visible(), page, pageSize)
}

// Show switches to the detail screen of a customer.
func (l *List) Show(id string) {
	l.env.Navigator.Navigate(CustomerPath(id))
}

// AddCustomer switches to the create screen.
func (l *List) AddCustomer() {
	l.env.Navigator.Navigate(AddPath)
}

// RequestDelete asks for confirmation before the customer is deleted. Nothing is sent to the
// service until Confirm is called on the returned gate.
func (l *List) RequestDelete(id string) *DeleteConfirmation {
	confirmation := &DeleteConfirmation{list: l, id: id}
	for _, c := range l.store.Snapshot() {
		if c.Id == id {
			confirmation.name = c.FullName()
			break
		}
	}
	return confirmation
}

// DeleteConfirmation gates the deletion of one customer. It is resolved by exactly one call to
// Confirm or Cancel.
type DeleteConfirmation struct {
	list *List
	id   string
	name string

	mu       sync.Mutex
	resolved bool
}

// ID returns the id of the customer to delete.
func (d *DeleteConfirmation) ID() string {
	return d.id
}

// Prompt returns the question to ask the user.
func (d *DeleteConfirmation) Prompt() string {
	if d.name == "" {
		return "Are you sure you want to delete this customer?"
	}
	return "Are you sure you want to delete " + d.name + "?"
}

// Confirm deletes the customer and then reloads the list. If the delete fails, the user is
// notified and the rows stay as they are.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	if err := d.resolve(); err != nil {
		return err
	}
	l := d.list
	if err := l.repo.Delete(ctx, d.id); err != nil {
		l.env.Logger.Warn("deleting customer failed", zap.String("id", d.id), zap.Error(err))
		l.env.Notifier.Error("Error deleting customer")
		return err
	}
	l.env.Logger.Info("customer deleted", zap.String("id", d.id))
	l.env.Notifier.Success("Customer deleted successfully")
	// A failed reload has already been reported by Load.
	_ = l.Load(ctx)
	return nil
}

// Cancel drops the request without contacting the service.
func (d *DeleteConfirmation) Cancel() error {
	return d.resolve()
}

func (d *DeleteConfirmation) resolve() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resolved {
		return ErrResolved
	}
	d.resolved = true
	return nil
}
