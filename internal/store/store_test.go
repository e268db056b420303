package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// listResult is one scripted answer of the fake lister.
type listResult struct {
	customers []model.Customer
	err       error
}

// fakeLister answers list calls with scripted results in call order.
type fakeLister struct {
	mu      sync.Mutex
	results []listResult
	calls   int
}

func (f *fakeLister) List(context.Context) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := f.results[f.calls]
	f.calls++
	return result.customers, result.err
}

// gatedLister blocks every list call until its gate is released, so that tests can decide the
// order of completion.
type gatedLister struct {
	started chan chan listResult
}

func (g *gatedLister) List(ctx context.Context) ([]model.Customer, error) {
	gate := make(chan listResult)
	g.started <- gate
	select {
	case result := <-gate:
		return result.customers, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func customers(ids ...string) []model.Customer {
	result := make([]model.Customer, 0, len(ids))
	for _, id := range ids {
		result = append(result, model.Customer{Id: id, FirstName: "First " + id, Status: model.StatusLead})
	}
	return result
}

func ids(customers []model.Customer) []string {
	result := make([]string, 0, len(customers))
	for _, c := range customers {
		result = append(result, c.Id)
	}
	return result
}

// TestRefresh expects a successful refresh to replace the snapshot wholesale.
func TestRefresh(t *testing.T) {
	lister := &fakeLister{results: []listResult{
		{customers: customers("a", "b", "c")},
		{customers: customers("d")},
	}}
	s := New(lister, nil)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Snapshot())

	loaded, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(loaded))
	assert.True(t, s.Loaded())
	assert.Equal(t, 3, s.Len())

	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, ids(s.Snapshot()))
	assert.False(t, s.Loading())
}

// TestRefreshEmpty expects an empty, non-nil snapshot when the service has no customers.
func TestRefreshEmpty(t *testing.T) {
	s := New(&fakeLister{results: []listResult{{}}}, nil)

	loaded, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
	assert.True(t, s.Loaded())
}

// TestRefreshFailureKeepsSnapshot expects a failed refresh to leave the previous snapshot in
// place and to hand the error to the caller.
func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	lister := &fakeLister{results: []listResult{
		{customers: customers("a", "b")},
		{err: model.ErrUnavailable},
	}}
	s := New(lister, nil)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	_, err = s.Refresh(context.Background())
	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))
}

// TestSnapshotIsCopy expects changes to a returned snapshot not to affect the store.
func TestSnapshotIsCopy(t *testing.T) {
	s := New(&fakeLister{results: []listResult{{customers: customers("a", "b")}}}, nil)
	loaded, err := s.Refresh(context.Background())
	require.NoError(t, err)

	loaded[0].FirstName = "changed"
	snapshot := s.Snapshot()
	snapshot[1].FirstName = "changed"
	assert.Equal(t, "First a", s.Snapshot()[0].FirstName)
	assert.Equal(t, "First b", s.Snapshot()[1].FirstName)
}

// TestRemove expects the customer to be spliced out while the others keep their order.
func TestRemove(t *testing.T) {
	s := New(&fakeLister{results: []listResult{{customers: customers("a", "b", "c")}}}, nil)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	before := s.Snapshot()

	assert.True(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, ids(s.Snapshot()))
	assert.Equal(t, []string{"a", "b", "c"}, ids(before))
}

// TestRemoveUnknown expects the snapshot to stay unchanged for an unknown id.
func TestRemoveUnknown(t *testing.T) {
	s := New(&fakeLister{results: []listResult{{customers: customers("a", "b")}}}, nil)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.False(t, s.Remove("x"))
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))
}

// TestOutOfOrderCompletion starts two refreshes and lets the older one complete last. It
// expects the older result to be discarded with ErrSuperseded.
func TestOutOfOrderCompletion(t *testing.T) {
	lister := &gatedLister{started: make(chan chan listResult)}
	s := New(lister, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		firstDone <- err
	}()
	firstGate := <-lister.started

	secondDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		secondDone <- err
	}()
	secondGate := <-lister.started
	assert.True(t, s.Loading())

	secondGate <- listResult{customers: customers("new")}
	require.NoError(t, <-secondDone)
	assert.Equal(t, []string{"new"}, ids(s.Snapshot()))
	assert.True(t, s.Loading())

	firstGate <- listResult{customers: customers("old-1", "old-2")}
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.Equal(t, []string{"new"}, ids(s.Snapshot()))
	assert.False(t, s.Loading())
}

// TestSupersededBeforeNewerCompletes lets the older refresh complete while the newer one is
// still outstanding. It expects the older result to be discarded anyway.
func TestSupersededBeforeNewerCompletes(t *testing.T) {
	lister := &gatedLister{started: make(chan chan listResult)}
	s := New(lister, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		firstDone <- err
	}()
	firstGate := <-lister.started

	secondDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		secondDone <- err
	}()
	secondGate := <-lister.started

	firstGate <- listResult{customers: customers("old")}
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.Empty(t, s.Snapshot())
	assert.False(t, s.Loaded())

	secondGate <- listResult{err: errors.New("boom")}
	assert.EqualError(t, <-secondDone, "refresh customers: boom")
	assert.Empty(t, s.Snapshot())
}
