package view

import "gitlab.com/dirk.krummacker/customer-crm/pkg/model"

// Position describes the customer's role, e.g. "CTO at Acme Corp".
func Position(c model.Customer) string {
	jobTitle, company := deref(c.JobTitle), deref(c.Company)
	switch {
	case jobTitle != "" && company != "":
		return jobTitle + " at " + company
	case jobTitle != "":
		return jobTitle
	case company != "":
		return company
	default:
		return "No position"
	}
}

// CompanyLabel returns the company or "No company".
func CompanyLabel(c model.Customer) string {
	if company := deref(c.Company); company != "" {
		return company
	}
	return "No company"
}

// LastContactLabel returns the date of the last contact or "Never".
func LastContactLabel(c model.Customer) string {
	if c.LastContact == nil {
		return "Never"
	}
	return c.LastContact.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
