package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/internal/store"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// Detail shows one customer and lets the user edit it.
//
// Every Open starts a new generation and cancels the load of the previous one. Results that
// arrive for an older generation are dropped, so reopening the screen for another customer
// can never show the data of the first one.
type Detail struct {
	repo Repository
	env  Env
	now  func() time.Time

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	phase      Phase
	mode       Mode
	customer   *model.Customer
	form       model.CustomerDraft
	submitting bool
}

// NewDetail creates the detail controller. It is idle until Open is called.
func NewDetail(repo Repository, env Env) *Detail {
	return &Detail{repo: repo, env: env.withDefaults(), now: time.Now}
}

// Open loads the customer with the given id. If the customer cannot be loaded the user is
// notified and sent back to the list. A load overtaken by a later Open or Close returns
// store.ErrSuperseded and changes nothing.
func (d *Detail) Open(ctx context.Context, id string) error {
	d.mu.Lock()
	d.generation++
	generation := d.generation
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.phase = Loading
	d.mode = Viewing
	d.customer = nil
	d.form = model.CustomerDraft{}
	d.mu.Unlock()
	defer cancel()

	customer, err := d.repo.Get(ctx, id)

	d.mu.Lock()
	if generation != d.generation {
		d.mu.Unlock()
		d.env.Logger.Debug("discarding stale customer load", zap.String("id", id))
		return store.ErrSuperseded
	}
	d.cancel = nil
	if err != nil {
		d.phase = LoadFailed
		d.mu.Unlock()
		d.env.Logger.Warn("loading customer failed", zap.String("id", id), zap.Error(err))
		if errors.Is(err, model.ErrNotFound) {
			d.env.Notifier.Error("Customer not found")
		} else {
			d.env.Notifier.Error("Error loading customer")
		}
		d.env.Navigator.Navigate(ListPath)
		return err
	}
	d.phase = Ready
	d.customer = customer
	d.form = customer.Draft()
	d.mu.Unlock()
	return nil
}

// Close leaves the screen. An outstanding load is cancelled and its result dropped.
func (d *Detail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.phase = Idle
	d.mode = Viewing
	d.customer = nil
	d.form = model.CustomerDraft{}
}

func (d *Detail) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

func (d *Detail) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Customer returns a copy of the loaded customer, or nil.
func (d *Detail) Customer() *model.Customer {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.customer == nil {
		return nil
	}
	customer := *d.customer
	return &customer
}

// Form returns the current content of the edit form.
func (d *Detail) Form() model.CustomerDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Edit switches to editing with the form filled from the loaded customer.
func (d *Detail) Edit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Ready {
		return ErrNotReady
	}
	d.mode = Editing
	d.form = d.customer.Draft()
	return nil
}

// CancelEdit discards the form changes and switches back to viewing.
func (d *Detail) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = Viewing
	if d.customer != nil {
		d.form = d.customer.Draft()
	}
}

// SetForm replaces the form content. It is only possible while editing.
func (d *Detail) SetForm(draft model.CustomerDraft) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode != Editing {
		return ErrNotReady
	}
	d.form = draft
	return nil
}

// Submitting reports whether an update is outstanding.
func (d *Detail) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

// Submit validates the form and replaces the customer with it. On success the screen switches
// back to viewing the updated customer. On failure it stays in editing and notifies the user;
// a form that does not validate is never sent.
func (d *Detail) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.mode != Editing || d.customer == nil {
		d.mu.Unlock()
		return ErrNotReady
	}
	if d.submitting {
		d.mu.Unlock()
		return ErrNotReady
	}
	generation := d.generation
	id := d.customer.Id
	draft := d.form.WithDefaults()
	d.mu.Unlock()

	if err := draft.Validate(d.now()); err != nil {
		d.env.Notifier.Error("Failed to update customer: " + err.Error())
		return err
	}

	d.setSubmitting(true)
	updated, err := d.repo.Update(ctx, id, draft)
	d.setSubmitting(false)

	if err != nil {
		d.env.Logger.Warn("updating customer failed", zap.String("id", id), zap.Error(err))
		d.env.Notifier.Error(updateFailure(err))
		return err
	}

	d.mu.Lock()
	if generation != d.generation {
		d.mu.Unlock()
		return store.ErrSuperseded
	}
	d.customer = updated
	d.form = updated.Draft()
	d.mode = Viewing
	d.mu.Unlock()
	d.env.Notifier.Success("Customer updated successfully!")
	return nil
}

// Back returns to the customer list.
func (d *Detail) Back() {
	d.env.Navigator.Navigate(ListPath)
}

func (d *Detail) setSubmitting(submitting bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = submitting
}

func updateFailure(err error) string {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "Failed to update customer: " + validationErr.Error()
	case errors.Is(err, model.ErrNotFound):
		return "Failed to update customer: " + model.ErrNotFound.Error()
	default:
		return "Error updating customer"
	}
}
