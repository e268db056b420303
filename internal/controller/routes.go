package controller

import (
	"net/url"
	"strings"
)

// Routes of the screens.
const (
	DashboardPath = "/"
	ListPath      = "/customers"
	AddPath       = "/customers/add"
)

// CustomerPath is the route of the detail screen of a customer.
func CustomerPath(id string) string {
	return ListPath + "/" + url.PathEscape(id)
}

// MenuKey returns the navigation entry to highlight for a route.
func MenuKey(path string) string {
	switch {
	case path == DashboardPath:
		return DashboardPath
	case strings.HasPrefix(path, AddPath):
		return AddPath
	case strings.HasPrefix(path, ListPath):
		return ListPath
	default:
		return path
	}
}

// CustomerID extracts the id from a detail route. ok is false for any other route.
func CustomerID(path string) (id string, ok bool) {
	rest, found := strings.CutPrefix(path, ListPath+"/")
	if !found || rest == "" || strings.Contains(rest, "/") || path == AddPath {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}
