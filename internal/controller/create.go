package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// Create is the form for a new customer. It is always in editing state until the customer has
// been added or the user cancels.
type Create struct {
	repo Repository
	env  Env
	now  func() time.Time

	mu         sync.Mutex
	form       model.CustomerDraft
	submitting bool
}

// NewCreate creates the controller with an empty form whose status is Lead.
func NewCreate(repo Repository, env Env) *Create {
	return &Create{
		repo: repo,
		env:  env.withDefaults(),
		now:  time.Now,
		form: newForm(),
	}
}

func newForm() model.CustomerDraft {
	return model.CustomerDraft{Status: model.StatusLead}
}

// Form returns the current content of the form.
func (c *Create) Form() model.CustomerDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm replaces the form content.
func (c *Create) SetForm(draft model.CustomerDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = draft
}

// Submitting reports whether a create request is outstanding.
func (c *Create) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit validates the form and creates the customer. On success the user is notified and sent
// to the customer list; on failure the form keeps its content. A form that does not validate is
// never sent.
func (c *Create) Submit(ctx context.Context) (*model.Customer, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	draft := c.form.WithDefaults()
	c.mu.Unlock()

	if err := draft.Validate(c.now()); err != nil {
		c.env.Notifier.Error("Failed to add customer: " + err.Error())
		return nil, err
	}

	c.setSubmitting(true)
	customer, err := c.repo.Create(ctx, draft)
	c.setSubmitting(false)
	if err != nil {
		c.env.Logger.Warn("adding customer failed", zap.Error(err))
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			c.env.Notifier.Error("Failed to add customer: " + validationErr.Error())
		} else {
			c.env.Notifier.Error("Error adding customer")
		}
		return nil, err
	}

	c.env.Logger.Info("customer added", zap.String("id", customer.Id))
	c.mu.Lock()
	c.form = newForm()
	c.mu.Unlock()
	c.env.Notifier.Success("Customer added successfully!")
	c.env.Navigator.Navigate(ListPath)
	return customer, nil
}

// Cancel leaves the form without saving.
func (c *Create) Cancel() {
	c.mu.Lock()
	c.form = newForm()
	c.mu.Unlock()
	c.env.Navigator.Navigate(ListPath)
}

func (c *Create) setSubmitting(submitting bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = submitting
}
