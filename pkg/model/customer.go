package model

import "time"

// Status is the stage of the relationship with a customer.
type Status string

const (
	StatusLead     Status = "Lead"
	StatusProspect Status = "Prospect"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Statuses lists all valid status values in pipeline order.
var Statuses = []Status{StatusLead, StatusProspect, StatusActive, StatusInactive}

// Valid reports whether s is one of the four known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusLead, StatusProspect, StatusActive, StatusInactive:
		return true
	}
	return false
}

// Customer is the data structure for a person or organisation we do business with. The Id and
// CreatedAt fields are assigned by the service and never change afterwards.
type Customer struct {
	Id          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Company     *string   `json:"company,omitempty"`
	JobTitle    *string   `json:"jobTitle,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Status      Status    `json:"status"`
	LastContact *Date     `json:"lastContact,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FullName returns first and last name separated by a blank.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Draft returns the mutable part of the customer, e.g. to prefill an edit form.
func (c Customer) Draft() CustomerDraft {
	return CustomerDraft{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		JobTitle:    c.JobTitle,
		Notes:       c.Notes,
		Status:      c.Status,
		LastContact: c.LastContact,
	}
}

// CustomerDraft is the payload for creating or replacing a customer. It carries every field of
// a customer except the ones assigned by the service.
type CustomerDraft struct {
	FirstName   string  `json:"firstName"             validate:"required,min=2"`
	LastName    string  `json:"lastName"              validate:"required,min=2"`
	Email       string  `json:"email"                 validate:"required,email"`
	Phone       *string `json:"phone,omitempty"       validate:"omitempty,phone"`
	Company     *string `json:"company,omitempty"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      Status  `json:"status"                validate:"required,status"`
	LastContact *Date   `json:"lastContact,omitempty"`
}

// WithDefaults returns a copy of the draft where an empty status is replaced by Lead, and empty
// optional strings are dropped.
func (d CustomerDraft) WithDefaults() CustomerDraft {
	if d.Status == "" {
		d.Status = StatusLead
	}
	d.Phone = nonEmpty(d.Phone)
	d.Company = nonEmpty(d.Company)
	d.JobTitle = nonEmpty(d.JobTitle)
	d.Notes = nonEmpty(d.Notes)
	return d
}

// Customer combines the draft with the values assigned by the service.
func (d CustomerDraft) Customer(id string, createdAt time.Time) Customer {
	return Customer{
		Id:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Phone:       d.Phone,
		Company:     d.Company,
		JobTitle:    d.JobTitle,
		Notes:       d.Notes,
		Status:      d.Status,
		LastContact: d.LastContact,
		CreatedAt:   createdAt,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
