// Command crm is the command line front end of the customer service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/internal/controller"
	"gitlab.com/dirk.krummacker/customer-crm/internal/logger"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/client"
	"go.uber.org/zap"
)

const usage = `Usage: crm [flags] <command> [arguments]

Commands:
  dashboard                  show the status counters and the recent customers
  list [-search s] [-status s] [-page n] [-size n]
                             list the customers
  show <id>                  show one customer
  add -first s -last s -email s [...]
                             add a customer
  edit <id> [-first s] [...] change a customer; flags not given keep their value
  delete [-yes] <id>         delete a customer after confirmation
  logout                     end the session

Flags:
`

// Usage example on the command line:
// > CRM_API_URL=http://localhost:8080 CRM_THEME=dark go run . list -status=active -search=acme
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	flags := flag.NewFlagSet("crm", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	apiURL := flags.String("api", cfg.APIURL, "base URL of the customer service")
	themeName := flags.String("theme", cfg.Theme, "color theme: system, light or dark")
	collapsed := flags.Bool("collapsed", cfg.SidebarCollapsed, "hide the navigation header")
	noColor := flags.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable colored output")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	theme, err := controller.ParseTheme(*themeName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()
	repo, err := client.New(client.Config{BaseURL: *apiURL, Timeout: cfg.APITimeout}, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	settings := controller.NewSettings(theme, *collapsed)
	term := newTerminal(stdout, stderr, settings, !*noColor, systemPrefersDark())
	a := newApp(repo, term, stdin, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx, flags.Arg(0), flags.Args()[1:]); err != nil {
		if isUsage(err) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		log.Debug("command failed", zap.String("command", flags.Arg(0)), zap.Error(err))
		if !term.notified() {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}
