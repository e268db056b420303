// Package controller drives the customer screens. Each controller owns the state of one screen,
// talks to the customer service through a Repository and reports to the user through a
// Notifier and a Navigator. Controllers never share state with each other: the detail screen
// fetches its own copy of a customer instead of reading from the list.
package controller

import (
	"context"
	"errors"

	"gitlab.com/dirk.krummacker/customer-crm/internal/store"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// ErrNotReady is returned by actions that need loaded data, or an open form, which the screen
// does not have yet.
var ErrNotReady = errors.New("screen not ready")

// Repository is the customer service as seen by the controllers. *client.Client implements it.
type Repository interface {
	store.Lister
	Get(ctx context.Context, id string) (*model.Customer, error)
	Create(ctx context.Context, draft model.CustomerDraft) (*model.Customer, error)
	Update(ctx context.Context, id string, draft model.CustomerDraft) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

// Notifier shows short, dismissable messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator switches to the screen of a route.
type Navigator interface {
	Navigate(path string)
}

// Env bundles what every controller needs besides its repository.
type Env struct {
	Notifier  Notifier
	Navigator Navigator
	Settings  *Settings
	Logger    *zap.Logger
}

// withDefaults fills in no-op collaborators, so that controllers never check for nil.
func (e Env) withDefaults() Env {
	if e.Notifier == nil {
		e.Notifier = nopNotifier{}
	}
	if e.Navigator == nil {
		e.Navigator = nopNavigator{}
	}
	if e.Settings == nil {
		e.Settings = NewSettings(ThemeSystem, false)
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	return e
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}

// Phase is the load state of a screen.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	LoadFailed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case LoadFailed:
		return "load failed"
	default:
		return "unknown"
	}
}

// Mode is the overlay state of the detail screen.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}
