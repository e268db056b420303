package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"gitlab.com/dirk.krummacker/customer-crm/internal/controller"
	"gitlab.com/dirk.krummacker/customer-crm/internal/view"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// ansiColors maps the tag color tokens to terminal color codes for light and dark backgrounds.
var ansiColors = map[string][2]string{
	"orange":  {"33", "93"},
	"blue":    {"34", "94"},
	"green":   {"32", "92"},
	"red":     {"31", "91"},
	"default": {"39", "39"},
}

// terminal is the Notifier and Navigator of the command line front end. Navigation requests are
// remembered and followed by the app once the current command is done.
type terminal struct {
	out        io.Writer
	errOut     io.Writer
	settings   *controller.Settings
	color      bool
	systemDark bool

	mu       sync.Mutex
	pending  string
	messages int
}

func newTerminal(out, errOut io.Writer, settings *controller.Settings, color, systemDark bool) *terminal {
	return &terminal{out: out, errOut: errOut, settings: settings, color: color, systemDark: systemDark}
}

func (t *terminal) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.paint("green", "✔ "+message))
}

func (t *terminal) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages++
	fmt.Fprintln(t.errOut, t.paint("red", "✖ "+message))
}

func (t *terminal) Navigate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = path
}

// takeRoute returns and clears the pending navigation request.
func (t *terminal) takeRoute() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	path := t.pending
	t.pending = ""
	return path
}

// notified reports whether the user has already seen an error message.
func (t *terminal) notified() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages > 0
}

func (t *terminal) env() controller.Env {
	return controller.Env{Notifier: t, Navigator: t, Settings: t.settings}
}

// paint wraps s in the terminal color of a tag color token.
func (t *terminal) paint(token, s string) string {
	if !t.color {
		return s
	}
	codes, ok := ansiColors[token]
	if !ok {
		codes = ansiColors["default"]
	}
	code := codes[0]
	if t.settings.DarkMode(t.systemDark) {
		code = codes[1]
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (t *terminal) status(status model.Status) string {
	return t.paint(view.StatusColor(status), string(status))
}

// header prints the navigation bar unless the sidebar is collapsed.
func (t *terminal) header(path string) {
	if t.settings.SidebarCollapsed() {
		return
	}
	entries := []struct{ path, label string }{
		{controller.DashboardPath, "Dashboard"},
		{controller.ListPath, "Customers"},
		{controller.AddPath, "Add Customer"},
	}
	selected := controller.MenuKey(path)
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.path == selected {
			labels = append(labels, "["+entry.label+"]")
		} else {
			labels = append(labels, " "+entry.label+" ")
		}
	}
	fmt.Fprintln(t.out, "ProCRM |"+strings.Join(labels, " "))
	fmt.Fprintln(t.out)
}

// systemPrefersDark guesses the background of the terminal from COLORFGBG, e.g. "15;0".
func systemPrefersDark() bool {
	fields := strings.Split(os.Getenv("COLORFGBG"), ";")
	background, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return false
	}
	return background < 7 || background == 8
}
