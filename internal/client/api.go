package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"laundry-orders/internal/orders"
)

// ErrSessionExpired is returned for any unauthorized response. The
// session teardown hook has already run by the time a caller sees it.
var ErrSessionExpired = errors.New("Session expired. Please log in again.")

// API wraps every HTTP call to the laundry service behind one error
// shape. The cookie jar keeps the admin session cookie attached.
type API struct {
	base string
	http *http.Client

	// OnUnauthorized runs before ErrSessionExpired is returned, so the
	// session is torn down no matter which caller hit the 401.
	OnUnauthorized func()
}

func NewAPI(baseURL string) *API {
	jar, _ := cookiejar.New(nil)
	return &API{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar},
	}
}

// Call issues one request and normalizes the outcome:
// unauthorized short-circuits before any body parsing, no-content and
// empty bodies are an empty success, error bodies degrade from JSON
// {"error"} to raw text to a generic message.
func (a *API) Call(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base+endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		slog.Error("api call failed", "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if a.OnUnauthorized != nil {
			a.OnUnauthorized()
		}
		slog.Error("api call unauthorized", "endpoint", endpoint)
		return nil, ErrSessionExpired
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("api call failed", "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractError(raw)
		slog.Error("api call failed", "endpoint", endpoint, "status", resp.StatusCode, "err", msg)
		return nil, errors.New(msg)
	}

	slog.Debug("api call", "endpoint", endpoint, "status", resp.StatusCode)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

// extractError pulls a human-readable message out of an error body:
// JSON {"error": ...} first, then the raw text, then a generic fallback.
func extractError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	if t := strings.TrimSpace(string(body)); t != "" {
		return t
	}
	return "An unknown server error occurred"
}

// ---- typed endpoints ----

type messageResp struct {
	Message string `json:"message"`
}

// Login authenticates a customer and returns the confirmed username.
func (a *API) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := a.Call(ctx, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return resp.Username, nil
}

// RegisterAccount creates a customer account and returns the server message.
func (a *API) RegisterAccount(ctx context.Context, username, email, password string) (string, error) {
	raw, err := a.Call(ctx, http.MethodPost, "/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	return message(raw, "Registration successful! Please log in."), nil
}

func (a *API) AdminLogin(ctx context.Context, username, password string) error {
	_, err := a.Call(ctx, http.MethodPost, "/admin/login", map[string]string{
		"username": username,
		"password": password,
	})
	return err
}

func (a *API) AdminLogout(ctx context.Context) error {
	_, err := a.Call(ctx, http.MethodPost, "/admin/logout", nil)
	return err
}

// CheckSession confirms the server-held admin session is still alive.
func (a *API) CheckSession(ctx context.Context) error {
	_, err := a.Call(ctx, http.MethodGet, "/admin/check_session", nil)
	return err
}

// Orders fetches every order (admin view).
func (a *API) Orders(ctx context.Context) ([]orders.Order, error) {
	return a.fetchOrders(ctx, "/orders")
}

// ClientOrders fetches one customer's order history.
func (a *API) ClientOrders(ctx context.Context, clientID string) ([]orders.Order, error) {
	return a.fetchOrders(ctx, "/orders/client/"+clientID)
}

func (a *API) fetchOrders(ctx context.Context, endpoint string) ([]orders.Order, error) {
	raw, err := a.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	list := []orders.Order{}
	if raw == nil {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return list, nil
}

// CreateOrder submits a new order and returns the server message.
func (a *API) CreateOrder(ctx context.Context, clientID string, items []orders.Item, totalItems int) (string, error) {
	raw, err := a.Call(ctx, http.MethodPost, "/orders", map[string]any{
		"clientId":   clientID,
		"items":      items,
		"totalItems": totalItems,
	})
	if err != nil {
		return "", err
	}
	return message(raw, "Order created successfully!"), nil
}

// UpdateOrderStatus moves one order to a new status.
func (a *API) UpdateOrderStatus(ctx context.Context, orderID string, status orders.Status) (string, error) {
	raw, err := a.Call(ctx, http.MethodPut, "/orders/"+orderID+"/status", map[string]string{
		"status": string(status),
	})
	if err != nil {
		return "", err
	}
	return message(raw, fmt.Sprintf("Order #%s status updated to %q.", orderID, status)), nil
}

func message(raw json.RawMessage, fallback string) string {
	var resp messageResp
	if raw != nil && json.Unmarshal(raw, &resp) == nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}
