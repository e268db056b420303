package view

import "gitlab.com/dirk.krummacker/customer-crm/pkg/model"

// StatusColor returns the tag color token for a status. Unknown values get "default".
func StatusColor(status model.Status) string {
	switch status {
	case model.StatusLead:
		return "orange"
	case model.StatusProspect:
		return "blue"
	case model.StatusActive:
		return "green"
	case model.StatusInactive:
		return "red"
	default:
		return "default"
	}
}

// StatusHexColor returns the RGB color used for the dashboard counter of a status.
func StatusHexColor(status model.Status) string {
	switch status {
	case model.StatusLead:
		return "#faad14"
	case model.StatusProspect:
		return "#1890ff"
	case model.StatusActive:
		return "#52c41a"
	case model.StatusInactive:
		return "#f5222d"
	default:
		return "#d9d9d9"
	}
}
