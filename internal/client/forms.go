package client

import (
	"context"
	"errors"
	"io"
	"strings"

	"laundry-orders/internal/orders"
)

// Forms holds the shared state the form controllers act on. Validation
// failures are plain errors returned before any network call is made.
type Forms struct {
	API     *API
	Session *Session
	Draft   *Draft
	Out     io.Writer
}

// busy shows the spinner for the duration of a call; the returned stop
// runs in a deferred path regardless of outcome.
func (f *Forms) busy(label string) func() {
	sp := StartSpinner(f.Out, label)
	return sp.Stop
}

// Login authenticates a customer; on success the identity is persisted,
// the draft resets to its defaults, and the login hook fires the
// history fetch.
func (f *Forms) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return errors.New("Please fill out all fields.")
	}

	defer f.busy("Logging in")()
	identity, err := f.API.Login(ctx, username, password)
	if err != nil {
		return err
	}

	f.Draft.Reset()
	f.Session.SetAuthenticated(identity)
	return nil
}

// Register creates an account and returns the confirmation to show.
func (f *Forms) Register(ctx context.Context, username, email, password, confirm string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", errors.New("Please fill out all fields.")
	}
	if password != confirm {
		return "", errors.New("Passwords do not match.")
	}

	defer f.busy("Registering")()
	return f.API.RegisterAccount(ctx, username, email, password)
}

// AdminLogin authenticates against the server-held admin session.
func (f *Forms) AdminLogin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return errors.New("Please provide username and password.")
	}

	defer f.busy("Logging in")()
	if err := f.API.AdminLogin(ctx, username, password); err != nil {
		return err
	}
	f.Session.SetAuthenticated(username)
	return nil
}

// AdminLogout clears the server session; the local view flips
// unauthenticated even when the call fails.
func (f *Forms) AdminLogout(ctx context.Context) {
	defer f.Session.Clear()
	if err := f.API.AdminLogout(ctx); err != nil && !errors.Is(err, ErrSessionExpired) {
		RenderError(f.Out, err)
	}
}

// SubmitOrder sends the draft's submittable rows. Zero-quantity and
// unnamed rows are dropped; the total is recomputed from what is sent.
func (f *Forms) SubmitOrder(ctx context.Context) (string, error) {
	items := f.Draft.Items()
	if len(items) == 0 {
		return "", errors.New("Please add at least one item.")
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}

	defer f.busy("Submitting order")()
	msg, err := f.API.CreateOrder(ctx, f.Session.Identity(), items, total)
	if err != nil {
		return "", err
	}

	f.Draft.Reset()
	return msg, nil
}

// FetchHistory loads the customer's orders behind a loading placeholder
// that is removed unconditionally.
func (f *Forms) FetchHistory(ctx context.Context) ([]orders.Order, error) {
	defer f.busy("Loading orders")()
	return f.API.ClientOrders(ctx, f.Session.Identity())
}

// FetchAll loads every order for the admin table.
func (f *Forms) FetchAll(ctx context.Context) ([]orders.Order, error) {
	defer f.busy("Loading orders")()
	return f.API.Orders(ctx)
}

// UpdateStatus applies the new status optimistically (the row recolors
// immediately), then confirms with the server. On failure it re-fetches
// the full collection so the view reconciles with server truth; the
// returned list replaces the caller's copy either way.
func (f *Forms) UpdateStatus(ctx context.Context, list []orders.Order, idx int, status orders.Status) ([]orders.Order, string, error) {
	if idx < 0 || idx >= len(list) {
		return list, "", errors.New("no such order row")
	}
	list[idx].Status = status

	stop := f.busy("Updating status")
	msg, err := f.API.UpdateOrderStatus(ctx, list[idx].ID, status)
	stop()
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, "", err
		}
		fresh, ferr := f.FetchAll(ctx)
		if ferr != nil {
			return list, "", err
		}
		return fresh, "", err
	}
	return list, msg, nil
}
