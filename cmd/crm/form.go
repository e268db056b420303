package main

import (
	"flag"
	"fmt"
	"strings"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// formFlags are the command line fields of the customer form.
type formFlags struct {
	first, last, email, phone, company, title, notes, status, lastContact string
}

func registerForm(fs *flag.FlagSet) *formFlags {
	f := &formFlags{}
	fs.StringVar(&f.first, "first", "", "first name")
	fs.StringVar(&f.last, "last", "", "last name")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.phone, "phone", "", "phone number, e.g. +4915112345678")
	fs.StringVar(&f.company, "company", "", "company")
	fs.StringVar(&f.title, "title", "", "job title")
	fs.StringVar(&f.notes, "notes", "", "notes")
	fs.StringVar(&f.status, "status", "", "Lead, Prospect, Active or Inactive")
	fs.StringVar(&f.lastContact, "last-contact", "", "date of the last contact, YYYY-MM-DD")
	return f
}

// apply copies the flags given on the command line into the draft. Flags that were not given
// leave the draft alone; an empty value clears an optional field.
func (f *formFlags) apply(fs *flag.FlagSet, draft *model.CustomerDraft) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "first":
			draft.FirstName = f.first
		case "last":
			draft.LastName = f.last
		case "email":
			draft.Email = f.email
		case "phone":
			draft.Phone = optional(f.phone)
		case "company":
			draft.Company = optional(f.company)
		case "title":
			draft.JobTitle = optional(f.title)
		case "notes":
			draft.Notes = optional(f.notes)
		case "status":
			draft.Status = parseStatus(f.status)
		case "last-contact":
			if f.lastContact == "" {
				draft.LastContact = nil
				return
			}
			date, parseErr := model.ParseDate(f.lastContact)
			if parseErr != nil {
				err = usageError{fmt.Sprintf("-last-contact: %v", parseErr)}
				return
			}
			draft.LastContact = &date
		}
	})
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseStatus matches the status names ignoring case. Unknown names are kept so that validation
// reports them.
func parseStatus(s string) model.Status {
	for _, status := range model.Statuses {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return model.Status(s)
}
