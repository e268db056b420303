// Package view contains the pure computations behind the customer screens: searching,
// filtering, counting, paging and display formatting. Nothing in here performs I/O.
package view

import (
	"fmt"
	"strings"

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// StatusFilter selects the customers shown on the list screen. It is either AllStatuses or one
// of the status values.
type StatusFilter string

// AllStatuses is the filter that lets every customer pass.
const AllStatuses StatusFilter = "all"

// ParseStatusFilter accepts "all" or a status value, ignoring case. The empty string means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || strings.EqualFold(s, string(AllStatuses)) {
		return AllStatuses, nil
	}
	for _, status := range model.Statuses {
		if strings.EqualFold(s, string(status)) {
			return StatusFilter(status), nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// MatchesSearch reports whether the query is a case-insensitive substring of the customer's
// full name, email or company. The empty query matches every customer.
func MatchesSearch(c model.Customer, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.FullName()), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Email), query) {
		return true
	}
	return c.Company != nil && strings.Contains(strings.ToLower(*c.Company), query)
}

// MatchesStatusFilter reports whether the customer passes the filter.
func MatchesStatusFilter(c model.Customer, filter StatusFilter) bool {
	return filter == AllStatuses || string(c.Status) == string(filter)
}

// FilterCustomers returns the customers that match both the query and the status filter, in
// their original order. The input is not modified.
func FilterCustomers(customers []model.Customer, query string, filter StatusFilter) []model.Customer {
	result := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if MatchesSearch(c, query) && MatchesStatusFilter(c, filter) {
			result = append(result, c)
		}
	}
	return result
}
