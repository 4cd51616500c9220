package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"laundry-orders/internal/client"
	"laundry-orders/internal/config"
	"laundry-orders/internal/orders"
)

// Terminal app for staff: log in against the server-held session, view
// every order, and move orders through the status lifecycle.

type app struct {
	forms *client.Forms
	sess  *client.Session
	in    *bufio.Scanner
	out   *os.File
	list  []orders.Order
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := config.Load()
	serverFlag := flag.String("server", "", "Override API base URL")
	flag.Parse()

	base := cfg.APIBaseURL
	if *serverFlag != "" {
		base = strings.TrimRight(*serverFlag, "/")
	}

	api := client.NewAPI(base)
	sess := client.NewSession(nil)
	a := &app{
		forms: &client.Forms{API: api, Session: sess, Out: os.Stdout},
		sess:  sess,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
	}

	api.OnUnauthorized = sess.Clear
	sess.OnLogin = func(string) { a.refresh() }
	sess.OnLogout = func() {
		fmt.Fprintln(a.out, "Logged out.")
	}

	// authentication is decided by the server: no valid session means
	// the login view, same as an explicit logout
	if err := api.CheckSession(context.Background()); err == nil {
		sess.SetAuthenticated("admin")
	}

	a.run()
}

func (a *app) run() {
	for {
		if !a.sess.IsAuthenticated() {
			if !a.login() {
				return
			}
			continue
		}
		if !a.menu() {
			return
		}
	}
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) login() bool {
	fmt.Fprintln(a.out, "Admin login ([q] to quit)")
	username, ok := a.prompt("Username: ")
	if !ok || username == "q" {
		return false
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return false
	}
	if err := a.forms.AdminLogin(context.Background(), username, password); err != nil {
		fmt.Fprintln(a.out, err)
	}
	return true
}

func (a *app) refresh() {
	list, err := a.forms.FetchAll(context.Background())
	if err != nil {
		client.RenderError(a.out, err)
		return
	}
	a.list = list
	client.RenderAdmin(a.out, a.list)
}

func (a *app) menu() bool {
	fmt.Fprintln(a.out, "Commands: list | update N STATUS | statuses | logout | quit")
	line, ok := a.prompt("admin> ")
	if !ok {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "quit":
		return false
	case "logout":
		a.forms.AdminLogout(context.Background())
	case "list":
		a.refresh()
	case "statuses":
		for _, s := range orders.All() {
			fmt.Fprintln(a.out, " -", s)
		}
	case "update":
		if len(fields) < 3 {
			fmt.Fprintln(a.out, "usage: update N STATUS")
			return true
		}
		a.update(fields[1], strings.Join(fields[2:], " "))
	}
	return true
}

func (a *app) update(row, rawStatus string) {
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > len(a.list) {
		fmt.Fprintln(a.out, "no such order row")
		return
	}
	status, ok := orders.Parse(rawStatus)
	if !ok {
		fmt.Fprintf(a.out, "unknown status %q (try: statuses)\n", rawStatus)
		return
	}

	idx := n - 1
	orderID := a.list[idx].ID
	list, msg, err := a.forms.UpdateStatus(context.Background(), a.list, idx, status)
	a.list = list
	if err != nil {
		fmt.Fprintf(a.out, "Failed to update status for Order #%s.\n", orderID)
		client.RenderAdmin(a.out, a.list)
		return
	}
	fmt.Fprintln(a.out, msg)
	client.RenderAdmin(a.out, a.list)
}
