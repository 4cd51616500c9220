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
)

// Terminal app for customers: register, log in, assemble a draft order,
// submit it, and browse order history.

type app struct {
	forms *client.Forms
	sess  *client.Session
	draft *client.Draft
	in    *bufio.Scanner
	out   *os.File
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := config.Load()
	serverFlag := flag.String("server", "", "Override API base URL")
	sessionFlag := flag.String("session", "", "Override session file path")
	flag.Parse()

	base := cfg.APIBaseURL
	if *serverFlag != "" {
		base = strings.TrimRight(*serverFlag, "/")
	}

	path := *sessionFlag
	if path == "" {
		var err error
		if path, err = client.DefaultIdentityPath(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	}

	api := client.NewAPI(base)
	sess := client.NewSession(client.NewIdentityStore(path))
	draft := client.NewDraft()
	a := &app{
		forms: &client.Forms{API: api, Session: sess, Draft: draft, Out: os.Stdout},
		sess:  sess,
		draft: draft,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
	}

	// a 401 from any call flips the view back to the auth menu
	api.OnUnauthorized = sess.Clear
	sess.OnLogin = func(identity string) {
		fmt.Fprintf(a.out, "Logged in as %s\n\n", identity)
		a.showHistory()
	}
	sess.OnLogout = func() {
		fmt.Fprintln(a.out, "Logged out.")
	}

	sess.Resume()
	a.run()
}

func (a *app) run() {
	for {
		if !a.sess.IsAuthenticated() {
			if !a.authMenu() {
				return
			}
			continue
		}
		if !a.mainMenu() {
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

// authMenu is the unauthenticated view. Returns false to quit.
func (a *app) authMenu() bool {
	fmt.Fprintln(a.out, "[1] Log in  [2] Register  [q] Quit")
	choice, ok := a.prompt("> ")
	if !ok {
		return false
	}
	switch choice {
	case "1":
		a.login()
	case "2":
		a.register()
	case "q":
		return false
	}
	return true
}

func (a *app) login() {
	username, ok := a.prompt("Username: ")
	if !ok {
		return
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return
	}
	if err := a.forms.Login(context.Background(), username, password); err != nil {
		fmt.Fprintln(a.out, err)
	}
}

func (a *app) register() {
	username, _ := a.prompt("Username: ")
	email, _ := a.prompt("Email: ")
	password, _ := a.prompt("Password: ")
	confirm, _ := a.prompt("Confirm password: ")

	msg, err := a.forms.Register(context.Background(), username, email, password, confirm)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintln(a.out, msg)
}

// mainMenu is the authenticated view. Returns false to quit.
func (a *app) mainMenu() bool {
	fmt.Fprintln(a.out, "[1] New order  [2] Order history  [3] Log out  [q] Quit")
	choice, ok := a.prompt("> ")
	if !ok {
		return false
	}
	switch choice {
	case "1":
		a.newOrder()
	case "2":
		a.showHistory()
	case "3":
		a.sess.Clear()
	case "q":
		return false
	}
	return true
}

func (a *app) showHistory() {
	list, err := a.forms.FetchHistory(context.Background())
	if err != nil {
		client.RenderError(a.out, err)
		return
	}
	client.RenderHistory(a.out, list)
}

func (a *app) renderDraft() {
	for i, r := range a.draft.Rows() {
		kind := ""
		if r.Custom {
			kind = " (custom)"
		}
		fmt.Fprintf(a.out, "%3d  %-20s x%d%s\n", i+1, r.Name, r.Quantity, kind)
	}
	fmt.Fprintf(a.out, "Total items: %d\n", a.draft.Total())
}

func (a *app) newOrder() {
	fmt.Fprintln(a.out, "Commands: + N | - N | qty N VALUE | name N TEXT | rm N | add | submit | back")
	for {
		a.renderDraft()
		line, ok := a.prompt("order> ")
		if !ok {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "back":
			return
		case "add":
			a.draft.AddCustom()
		case "submit":
			msg, err := a.forms.SubmitOrder(context.Background())
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			fmt.Fprintln(a.out, msg)
			// switch to history for immediate feedback
			a.showHistory()
			return
		case "+", "-", "rm":
			if len(fields) < 2 {
				continue
			}
			i := rowIndex(fields[1])
			switch fields[0] {
			case "+":
				a.draft.Increment(i)
			case "-":
				a.draft.Decrement(i)
			case "rm":
				a.draft.Remove(i)
			}
		case "qty":
			if len(fields) < 3 {
				continue
			}
			a.draft.SetQuantityInput(rowIndex(fields[1]), fields[2])
		case "name":
			if len(fields) < 3 {
				continue
			}
			a.draft.SetName(rowIndex(fields[1]), strings.Join(fields[2:], " "))
		}
	}
}

func rowIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n - 1
}
