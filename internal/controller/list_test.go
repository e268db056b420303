package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-crm/internal/view"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

func loadedList(t *testing.T, repo *fakeRepository, r *recorder) *List {
	l := NewList(repo, r.env())
	require.NoError(t, l.Load(context.Background()))
	return l
}

// TestListSearchAndFilter checks that search text and status filter narrow the visible rows.
func TestListSearchAndFilter(t *testing.T) {
	l := loadedList(t, newFakeRepository(sampleCustomers()...), &recorder{})
	assert.Equal(t, Ready, l.Phase())
	assert.Equal(t, []string{"erika", "rudi", "karl"}, ids(l.Visible()))

	l.SetSearch("ACME")
	assert.Equal(t, []string{"erika"}, ids(l.Visible()))

	l.SetSearch("")
	l.SetStatusFilter(view.StatusFilter(model.StatusActive))
	assert.Equal(t, []string{"rudi", "karl"}, ids(l.Visible()))

	l.SetSearch("erika")
	assert.Empty(t, l.Visible())
}

// TestListPaging checks that the page is cut from the visible rows and reset by filtering.
func TestListPaging(t *testing.T) {
	var customers []model.Customer
	for i := 1; i <= 25; i++ {
		status := model.StatusLead
		if i%5 == 0 {
			status = model.StatusInactive
		}
		customers = append(customers, model.Customer{Id: fmt.Sprint(i), FirstName: "Customer", LastName: fmt.Sprint(i), Status: status})
	}
	l := loadedList(t, newFakeRepository(customers...), &recorder{})

	rows, info := l.Page()
	assert.Len(t, rows, 10)
	assert.Equal(t, "1-10 of 25 customers", info.Summary())

	l.SetPage(3)
	rows, info = l.Page()
	assert.Equal(t, []string{"21", "22", "23", "24", "25"}, ids(rows))
	assert.Equal(t, "21-25 of 25 customers", info.Summary())

	l.SetStatusFilter(view.StatusFilter(model.StatusInactive))
	rows, info = l.Page()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, []string{"5", "10", "15", "20", "25"}, ids(rows))

	l.SetStatusFilter(view.AllStatuses)
	l.SetPageSize(20)
	rows, info = l.Page()
	assert.Len(t, rows, 20)
	assert.Equal(t, 2, info.Pages)
}

// TestListLoadFailure expects the list to keep its rows, stay open and notify the user.
func TestListLoadFailure(t *testing.T) {
	r := &recorder{}
	repo := newFakeRepository(sampleCustomers()...)
	l := loadedList(t, repo, r)

	repo.listErr = model.ErrUnavailable
	assert.ErrorIs(t, l.Load(context.Background()), model.ErrUnavailable)
	assert.Equal(t, LoadFailed, l.Phase())
	assert.Len(t, l.Visible(), 3)
	assert.Equal(t, []string{"Error loading customers"}, r.errors)
	assert.Empty(t, r.paths)
}

// TestListDeleteConfirmed expects the delete to be sent only on confirmation and the list to be
// reloaded afterwards.
func TestListDeleteConfirmed(t *testing.T) {
	r := &recorder{}
	repo := newFakeRepository(sampleCustomers()...)
	l := loadedList(t, repo, r)

	confirmation := l.RequestDelete("rudi")
	assert.Equal(t, "rudi", confirmation.ID())
	assert.Equal(t, "Are you sure you want to delete Rudi Völler?", confirmation.Prompt())
	assert.Equal(t, []string{"list"}, repo.Calls())

	require.NoError(t, confirmation.Confirm(context.Background()))
	assert.Equal(t, []string{"list", "delete rudi", "list"}, repo.Calls())
	assert.Equal(t, []string{"erika", "karl"}, ids(l.Visible()))
	assert.Equal(t, []string{"Customer deleted successfully"}, r.successes)
	assert.Empty(t, r.errors)

	assert.ErrorIs(t, confirmation.Confirm(context.Background()), ErrResolved)
	assert.Equal(t, 3, len(repo.Calls()))
}

// TestListDeleteCancelled expects nothing to be sent when the user cancels.
func TestListDeleteCancelled(t *testing.T) {
	repo := newFakeRepository(sampleCustomers()...)
	l := loadedList(t, repo, &recorder{})

	confirmation := l.RequestDelete("erika")
	require.NoError(t, confirmation.Cancel())
	assert.ErrorIs(t, confirmation.Confirm(context.Background()), ErrResolved)
	assert.Equal(t, []string{"list"}, repo.Calls())
	assert.Len(t, l.Visible(), 3)
}

// TestListDeleteUnknown expects NotFound for an unknown id, a notification, and unchanged rows.
func TestListDeleteUnknown(t *testing.T) {
	r := &recorder{}
	repo := newFakeRepository(sampleCustomers()...)
	l := loadedList(t, repo, r)

	confirmation := l.RequestDelete("nobody")
	assert.Equal(t, "Are you sure you want to delete this customer?", confirmation.Prompt())
	err := confirmation.Confirm(context.Background())
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, []string{"Error deleting customer"}, r.errors)
	assert.Empty(t, r.successes)
	assert.Equal(t, []string{"erika", "rudi", "karl"}, ids(l.Visible()))
	assert.Equal(t, []string{"list", "delete nobody"}, repo.Calls())
}

// TestListNavigation checks the routes of the list actions.
func TestListNavigation(t *testing.T) {
	r := &recorder{}
	l := NewList(newFakeRepository(), r.env())
	l.Show("karl")
	l.AddCustomer()
	assert.Equal(t, []string{"/customers/karl", "/customers/add"}, r.paths)
}
