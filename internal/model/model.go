package model

import (
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// CustomerRow is the database representation of a customer. Optional columns are nullable and
// therefore mapped to pointers.
type CustomerRow struct {
	Id          string     `db:"id"`
	FirstName   string     `db:"firstname"`
	LastName    string     `db:"lastname"`
	Email       string     `db:"email"`
	Phone       *string    `db:"phone"`
	Company     *string    `db:"company"`
	JobTitle    *string    `db:"jobtitle"`
	Notes       *string    `db:"notes"`
	Status      string     `db:"status"`
	LastContact *time.Time `db:"lastcontact"`
	CreatedAt   time.Time  `db:"createdat"`
}

// NewCustomerRow builds the row for a draft with the values assigned by the service.
func NewCustomerRow(id string, createdAt time.Time, draft model.CustomerDraft) CustomerRow {
	row := CustomerRow{
		Id:        id,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Company:   draft.Company,
		JobTitle:  draft.JobTitle,
		Notes:     draft.Notes,
		Status:    string(draft.Status),
		CreatedAt: createdAt,
	}
	if draft.LastContact != nil {
		lastContact := draft.LastContact.Time
		row.LastContact = &lastContact
	}
	return row
}

// Customer converts the row into the public representation.
func (r CustomerRow) Customer() model.Customer {
	customer := model.Customer{
		Id:        r.Id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		JobTitle:  r.JobTitle,
		Notes:     r.Notes,
		Status:    model.Status(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.LastContact != nil {
		lastContact := model.DateOf(*r.LastContact)
		customer.LastContact = &lastContact
	}
	return customer
}
