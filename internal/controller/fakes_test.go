package controller

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// fakeRepository keeps customers in memory and records the calls it receives.
type fakeRepository struct {
	mu        sync.Mutex
	customers []model.Customer
	calls     []string
	nextID    int

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	// getHook replaces Get when set.
	getHook func(ctx context.Context, id string) (*model.Customer, error)
}

func newFakeRepository(customers ...model.Customer) *fakeRepository {
	return &fakeRepository{customers: customers}
}

func (f *fakeRepository) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRepository) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeRepository) List(context.Context) ([]model.Customer, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.customers), nil
}

func (f *fakeRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	f.record("get " + id)
	if f.getHook != nil {
		return f.getHook(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, c := range f.customers {
		if c.Id == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get customer %s: %w", id, model.ErrNotFound)
}

func (f *fakeRepository) Create(_ context.Context, draft model.CustomerDraft) (*model.Customer, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	customer := draft.Customer(fmt.Sprintf("new-%d", f.nextID), time.Date(2024, time.May, 17, 9, 30, 0, 0, time.UTC))
	f.customers = append(f.customers, customer)
	return &customer, nil
}

func (f *fakeRepository) Update(_ context.Context, id string, draft model.CustomerDraft) (*model.Customer, error) {
	f.record("update " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, c := range f.customers {
		if c.Id == id {
			f.customers[i] = draft.Customer(id, c.CreatedAt)
			updated := f.customers[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("update customer %s: %w", id, model.ErrNotFound)
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.record("delete " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	i := slices.IndexFunc(f.customers, func(c model.Customer) bool { return c.Id == id })
	if i < 0 {
		return fmt.Errorf("delete customer %s: %w", id, model.ErrNotFound)
	}
	f.customers = slices.Delete(f.customers, i, i+1)
	return nil
}

// recorder is a Notifier and Navigator that remembers everything it was told.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	paths     []string
}

func (r *recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) env() Env {
	return Env{Notifier: r, Navigator: r}
}

func ptr(s string) *string {
	return &s
}

// sampleCustomers returns three customers with different statuses.
func sampleCustomers() []model.Customer {
	created := time.Date(2023, time.November, 29, 8, 0, 0, 0, time.UTC)
	return []model.Customer{
		{Id: "erika", FirstName: "Erika", LastName: "Mustermann", Email: "erika@example.com", Company: ptr("Acme Corp"), Status: model.StatusLead, CreatedAt: created},
		{Id: "rudi", FirstName: "Rudi", LastName: "Völler", Email: "rudi@dfb.de", Status: model.StatusActive, CreatedAt: created},
		{Id: "karl", FirstName: "Karl", LastName: "Klein", Email: "karl@example.com", Status: model.StatusActive, CreatedAt: created},
	}
}

func ids(customers []model.Customer) []string {
	result := make([]string, 0, len(customers))
	for _, c := range customers {
		result = append(result, c.Id)
	}
	return result
}
