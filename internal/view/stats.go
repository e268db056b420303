package view

import "gitlab.com/dirk.krummacker/customer-crm/pkg/model"

// RecentCount is the number of customers shown on the dashboard.
const RecentCount = 5

// StatusCounts holds the number of customers per status. Total is the size of the whole
// collection and always equals the sum of the four buckets.
type StatusCounts struct {
	Lead     int `json:"lead"`
	Prospect int `json:"prospect"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Total    int `json:"total"`
}

// Of returns the count for one status.
func (s StatusCounts) Of(status model.Status) int {
	switch status {
	case model.StatusProspect:
		return s.Prospect
	case model.StatusActive:
		return s.Active
	case model.StatusInactive:
		return s.Inactive
	default:
		return s.Lead
	}
}

// AggregateStatusCounts counts the customers per status. A customer with a missing or unknown
// status is counted as a Lead.
func AggregateStatusCounts(customers []model.Customer) StatusCounts {
	var counts StatusCounts
	for _, c := range customers {
		switch c.Status {
		case model.StatusProspect:
			counts.Prospect++
		case model.StatusActive:
			counts.Active++
		case model.StatusInactive:
			counts.Inactive++
		default:
			counts.Lead++
		}
	}
	counts.Total = len(customers)
	return counts
}

// Recent returns the first RecentCount customers of the collection.
func Recent(customers []model.Customer) []model.Customer {
	if len(customers) > RecentCount {
		customers = customers[:RecentCount]
	}
	return append([]model.Customer(nil), customers...)
}
