package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gitlab.com/dirk.krummacker/customer-crm/internal/controller"
	"gitlab.com/dirk.krummacker/customer-crm/internal/view"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// usageError is a mistake on the command line.
type usageError struct {
	message string
}

func (e usageError) Error() string {
	return e.message
}

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

// app runs one command against the controllers and prints the resulting screen.
type app struct {
	repo   controller.Repository
	term   *terminal
	in     *bufio.Reader
	logger *zap.Logger
}

func newApp(repo controller.Repository, term *terminal, in io.Reader, logger *zap.Logger) *app {
	return &app{repo: repo, term: term, in: bufio.NewReader(in), logger: logger}
}

func (a *app) env() controller.Env {
	env := a.term.env()
	env.Logger = a.logger
	return env
}

// run executes the command and then follows a navigation request it left behind, if any.
func (a *app) run(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "dashboard":
		err = a.dashboard(ctx)
	case "list":
		err = a.list(ctx, args)
	case "show":
		err = a.show(ctx, args)
	case "add":
		err = a.add(ctx, args)
	case "edit":
		err = a.edit(ctx, args)
	case "delete":
		err = a.delete(ctx, args)
	case "logout":
		a.term.settings.Logout()
		fmt.Fprintln(a.term.out, "Logged out.")
	default:
		return usageError{fmt.Sprintf("unknown command %q", command)}
	}
	if isUsage(err) {
		return err
	}
	if path := a.term.takeRoute(); path != "" {
		fmt.Fprintln(a.term.out)
		if followErr := a.follow(ctx, path); followErr != nil && err == nil {
			err = followErr
		}
	}
	return err
}

// follow renders the screen of a route.
func (a *app) follow(ctx context.Context, path string) error {
	switch path {
	case controller.DashboardPath:
		return a.dashboard(ctx)
	case controller.ListPath:
		return a.list(ctx, nil)
	case controller.AddPath:
		fmt.Fprintln(a.term.out, "Add a customer with: crm add -first <name> -last <name> -email <address>")
		return nil
	}
	if id, ok := controller.CustomerID(path); ok {
		return a.show(ctx, []string{id})
	}
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	return nil
}

func singleID(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", usageError{fmt.Sprintf("%s: expected exactly one customer id", fs.Name())}
	}
	return fs.Arg(0), nil
}

func (a *app) dashboard(ctx context.Context) error {
	d := controller.NewDashboard(a.repo, a.env())
	if err := d.Load(ctx); err != nil {
		return err
	}
	a.term.header(controller.DashboardPath)
	stats := d.Stats()
	out := a.term.out
	counters := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(counters, "%s\t%d\n", a.term.paint("default", "Total Customers"), stats.Total)
	for _, status := range model.Statuses {
		fmt.Fprintf(counters, "%s\t%d\n", a.term.status(status), stats.Of(status))
	}
	counters.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent Customers")
	recent := d.Recent()
	if len(recent) == 0 {
		fmt.Fprintln(out, "  No customers yet")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range recent {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", c.Id, c.FullName(), view.CompanyLabel(c), a.term.status(c.Status))
	}
	return w.Flush()
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", a.term.errOut)
	search := fs.String("search", "", "search in name, email and company")
	status := fs.String("status", "all", "all, Lead, Prospect, Active or Inactive")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", view.DefaultPageSize, "customers per page")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	filter, err := view.ParseStatusFilter(*status)
	if err != nil {
		return usageError{err.Error()}
	}

	l := controller.NewList(a.repo, a.env())
	if err := l.Load(ctx); err != nil {
		return err
	}
	l.SetSearch(*search)
	l.SetStatusFilter(filter)
	l.SetPageSize(*size)
	l.SetPage(*page)
	a.term.header(controller.ListPath)
	a.printTable(l)
	return nil
}

func (a *app) printTable(l *controller.List) {
	rows, info := l.Page()
	out := a.term.out
	if len(rows) == 0 {
		fmt.Fprintln(out, "No customers found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOSITION\tEMAIL\tPHONE\tSTATUS\tLAST CONTACT")
	for _, c := range rows {
		phone := ""
		if c.Phone != nil {
			phone = *c.Phone
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Id, c.FullName(), view.Position(c), c.Email, phone, a.term.status(c.Status), view.LastContactLabel(c))
	}
	w.Flush()
	fmt.Fprintln(out, info.Summary())
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := newFlagSet("show", a.term.errOut)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := singleID(fs)
	if err != nil {
		return err
	}
	d := controller.NewDetail(a.repo, a.env())
	if err := d.Open(ctx, id); err != nil {
		return err
	}
	a.printCustomer(d.Customer())
	return nil
}

func (a *app) printCustomer(c *model.Customer) {
	a.term.header(controller.CustomerPath(c.Id))
	w := tabwriter.NewWriter(a.term.out, 0, 4, 2, ' ', 0)
	value := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}
	fmt.Fprintf(w, "Name:\t%s\n", c.FullName())
	fmt.Fprintf(w, "Position:\t%s\n", view.Position(*c))
	fmt.Fprintf(w, "Email:\t%s\n", c.Email)
	fmt.Fprintf(w, "Phone:\t%s\n", value(c.Phone))
	fmt.Fprintf(w, "Status:\t%s\n", a.term.status(c.Status))
	fmt.Fprintf(w, "Last contact:\t%s\n", view.LastContactLabel(*c))
	fmt.Fprintf(w, "Notes:\t%s\n", value(c.Notes))
	fmt.Fprintf(w, "Created:\t%s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "ID:\t%s\n", c.Id)
	w.Flush()
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", a.term.errOut)
	form := registerForm(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError{"add: unexpected arguments " + strings.Join(fs.Args(), " ")}
	}
	c := controller.NewCreate(a.repo, a.env())
	draft := c.Form()
	if err := form.apply(fs, &draft); err != nil {
		return err
	}
	c.SetForm(draft)
	_, err := c.Submit(ctx)
	return err
}

func (a *app) edit(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return usageError{"edit: the customer id must come first"}
	}
	id := args[0]
	fs := newFlagSet("edit", a.term.errOut)
	form := registerForm(fs)
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}

	d := controller.NewDetail(a.repo, a.env())
	if err := d.Open(ctx, id); err != nil {
		return err
	}
	if err := d.Edit(); err != nil {
		return err
	}
	draft := d.Form()
	if err := form.apply(fs, &draft); err != nil {
		return err
	}
	if err := d.SetForm(draft); err != nil {
		return err
	}
	if err := d.Submit(ctx); err != nil {
		return err
	}
	a.printCustomer(d.Customer())
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete", a.term.errOut)
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := singleID(fs)
	if err != nil {
		return err
	}

	l := controller.NewList(a.repo, a.env())
	if err := l.Load(ctx); err != nil {
		return err
	}
	confirmation := l.RequestDelete(id)
	if !*yes && !a.confirm(confirmation.Prompt()) {
		fmt.Fprintln(a.term.out, "Cancelled.")
		return confirmation.Cancel()
	}
	if err := confirmation.Confirm(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.term.out)
	a.term.header(controller.ListPath)
	a.printTable(l)
	return nil
}

// confirm asks a yes/no question on the terminal. Anything but yes means no.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.term.out, "%s [y/N] ", prompt)
	answer, _ := a.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
