package controller

import (
	"fmt"
	"strings"
	"sync"
)

// Theme is the color scheme preference of the user.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// ParseTheme accepts system, light or dark, ignoring case.
func ParseTheme(s string) (Theme, error) {
	switch theme := Theme(strings.ToLower(s)); theme {
	case ThemeSystem, ThemeLight, ThemeDark:
		return theme, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Settings is the process-wide presentation state: theme and sidebar. It is created once at
// startup and handed to the controllers by pointer. It is safe for concurrent use.
type Settings struct {
	mu               sync.RWMutex
	theme            Theme
	sidebarCollapsed bool
	loggedOut        bool
}

// NewSettings creates the settings with the given initial values.
func NewSettings(theme Theme, sidebarCollapsed bool) *Settings {
	return &Settings{theme: theme, sidebarCollapsed: sidebarCollapsed}
}

func (s *Settings) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Settings) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// DarkMode resolves the theme. systemDark is the preference of the surrounding system, used for
// ThemeSystem.
func (s *Settings) DarkMode(systemDark bool) bool {
	switch s.Theme() {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return systemDark
	}
}

func (s *Settings) SidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarCollapsed
}

// ToggleSidebar flips the sidebar state and returns the new one.
func (s *Settings) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarCollapsed = !s.sidebarCollapsed
	return s.sidebarCollapsed
}

// Logout only records the request; there is no session to end.
func (s *Settings) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedOut = true
}

func (s *Settings) LoggedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedOut
}
