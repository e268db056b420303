// Package store holds the customer collection of one screen.
//
// A Store keeps the snapshot of the last list call that was allowed to land. Every call to
// Refresh draws a sequence number; when a refresh completes, its result replaces the snapshot
// only if no newer refresh has been issued in the meantime. Older completions are discarded and
// report ErrSuperseded, so an out-of-order response can never overwrite newer data.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by Refresh when a newer refresh was issued before this one
// completed. The result has been discarded; callers usually ignore this error.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Lister fetches the full customer collection. *client.Client implements it.
type Lister interface {
	List(ctx context.Context) ([]model.Customer, error)
}

// Store is the in-memory customer collection of one view controller.
type Store struct {
	lister Lister
	logger *zap.Logger

	mu        sync.Mutex
	customers []model.Customer
	loaded    bool
	issued    uint64
	inFlight  int
}

// New creates an empty store that loads its customers from lister. A nil logger disables
// logging.
func New(lister Lister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{lister: lister, logger: logger}
}

// Refresh fetches the collection and replaces the snapshot wholesale. On failure the previous
// snapshot stays in place and the error is returned. The returned slice is a copy.
func (s *Store) Refresh(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.inFlight++
	s.mu.Unlock()

	customers, err := s.lister.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if seq != s.issued {
		s.logger.Debug("discarding stale refresh", zap.Uint64("seq", seq), zap.Uint64("latest", s.issued))
		return nil, ErrSuperseded
	}
	if err != nil {
		s.logger.Warn("refresh failed", zap.Uint64("seq", seq), zap.Error(err))
		return nil, fmt.Errorf("refresh customers: %w", err)
	}
	s.customers = slices.Clone(customers)
	if s.customers == nil {
		s.customers = []model.Customer{}
	}
	s.loaded = true
	return slices.Clone(s.customers), nil
}

// Snapshot returns a copy of the current collection. It is empty before the first successful
// refresh.
func (s *Store) Snapshot() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.customers)
}

// Loaded reports whether any refresh has succeeded yet.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Loading reports whether a refresh is outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Len returns the number of customers in the snapshot.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

// Remove splices the customer with the given id out of the snapshot, keeping the order of the
// others. It reports whether a customer was removed. Call it only after a confirmed delete.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.customers, func(c model.Customer) bool { return c.Id == id })
	if i < 0 {
		return false
	}
	s.customers = slices.Delete(slices.Clone(s.customers), i, i+1)
	return true
}
