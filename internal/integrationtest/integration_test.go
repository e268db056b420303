// Package integrationtest runs the client against the real service and a real MySQL database.
// The tests are skipped unless DBHOST is set; the schema from scripts/database.sql must have been
// applied with cmd/migration.
package integrationtest

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/internal/controller"
	"gitlab.com/dirk.krummacker/customer-crm/internal/service"
	"gitlab.com/dirk.krummacker/customer-crm/internal/store"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/client"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// setup starts the service on a test server and returns a client for it.
func setup(t *testing.T) *client.Client {
	if os.Getenv("DBHOST") == "" {
		t.Skip("DBHOST not set")
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	sqlDB, err := service.CreateDatabase(cfg)
	require.NoError(t, err)
	s, err := service.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(s.Router(false))
	t.Cleanup(server.Close)

	c, err := client.New(client.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func ptr(s string) *string {
	return &s
}

// TestCustomerHappyPath tests a create, get, update, list and delete with valid data.
func TestCustomerHappyPath(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	lastContact := model.NewDate(2024, time.May, 2)
	draft := model.CustomerDraft{
		FirstName:   "Erika",
		LastName:    "Mustermann",
		Email:       "erika@example.com",
		Phone:       ptr("+4915112345678"),
		Company:     ptr("Acme Corp"),
		Status:      model.StatusProspect,
		LastContact: &lastContact,
	}
	created, err := c.Create(ctx, draft)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Delete(ctx, created.Id) })
	_, err = uuid.Parse(created.Id)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)
	assert.Equal(t, draft.Customer(created.Id, created.CreatedAt), *created)

	// a subsequent lookup returns the created values
	fetched, err := c.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, *created, *fetched)

	// an update replaces all mutable fields
	update := model.CustomerDraft{
		FirstName: "Rudi",
		LastName:  "Völler",
		Email:     "rudi@example.com",
		JobTitle:  ptr("Coach"),
		Status:    model.StatusActive,
	}
	updated, err := c.Update(ctx, created.Id, update)
	require.NoError(t, err)
	assert.Equal(t, update.Customer(created.Id, created.CreatedAt), *updated)

	fetched, err = c.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, *updated, *fetched)
	assert.Nil(t, fetched.Company)
	assert.Nil(t, fetched.LastContact)

	customers, err := c.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, customers, *updated)

	// after the delete the customer is gone
	require.NoError(t, c.Delete(ctx, created.Id))
	_, err = c.Get(ctx, created.Id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, created.Id), model.ErrNotFound)
}

// TestCreateInvalidEmail expects a validation error and no new record.
func TestCreateInvalidEmail(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	before, err := c.List(ctx)
	require.NoError(t, err)

	_, err = c.Create(ctx, model.CustomerDraft{FirstName: "Erika", LastName: "Mustermann", Email: "not-an-email"})
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Please enter a valid email!", validationErr.Reason)

	after, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

// TestDeleteUnknownID expects NotFound and an unchanged store snapshot.
func TestDeleteUnknownID(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	s := store.New(c, nil)
	_, err := s.Refresh(ctx)
	require.NoError(t, err)
	before := s.Snapshot()

	err = c.Delete(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, before, s.Snapshot())
}

// notifications collects the messages of the controllers.
type notifications struct {
	successes, errors []string
}

func (n *notifications) Success(message string) { n.successes = append(n.successes, message) }
func (n *notifications) Error(message string)   { n.errors = append(n.errors, message) }

// TestControllers adds a customer through the create screen, finds it on the list screen and
// deletes it there.
func TestControllers(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	n := &notifications{}
	env := controller.Env{Notifier: n, Settings: controller.NewSettings(controller.ThemeSystem, false)}

	create := controller.NewCreate(c, env)
	create.SetForm(model.CustomerDraft{FirstName: "Hans", LastName: "Integration", Email: "hans@example.com", Company: ptr("Zyxel Integration Ltd")})
	created, err := create.Submit(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Delete(ctx, created.Id) })
	assert.Equal(t, model.StatusLead, created.Status)

	list := controller.NewList(c, env)
	require.NoError(t, list.Load(ctx))
	list.SetSearch("zyxel integration")
	visible := list.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, created.Id, visible[0].Id)

	require.NoError(t, list.RequestDelete(created.Id).Confirm(ctx))
	assert.Empty(t, list.Visible())
	assert.Equal(t, []string{"Customer added successfully!", "Customer deleted successfully"}, n.successes)
	assert.Empty(t, n.errors)
}
