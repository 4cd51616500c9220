package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"laundry-orders/internal/auth"
	kafkax "laundry-orders/internal/kafka"
	"laundry-orders/internal/orders"
	"laundry-orders/internal/redisx"
)

// AdminSessionCookie carries the admin session token.
const AdminSessionCookie = "laundry_admin_session"

type OrderStore interface {
	Create(ctx context.Context, clientID string, items []orders.Item, totalItems int) (string, error)
	ListAll(ctx context.Context) ([]orders.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]orders.Order, error)
	Get(ctx context.Context, orderID string) (orders.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status orders.Status) error
}

type ClientStore interface {
	Register(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, username, password string) error
}

type SessionStore interface {
	Login(ctx context.Context, username, password string) (string, error)
	Check(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Handler struct {
	Orders   OrderStore
	Clients  ClientStore
	Sessions SessionStore
	// Producers are optional; nil disables event publishing.
	CreatedProducer Publisher
	StatusProducer  Publisher
	Redis           *redis.Client
	Service         string
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.registerClient)
		r.Post("/login", h.loginClient)

		r.Post("/admin/login", h.adminLogin)
		r.Post("/admin/logout", h.adminLogout)
		r.Get("/admin/check_session", h.adminCheckSession)

		r.Post("/orders", h.createOrder)
		r.Get("/orders/client/{id}", h.clientOrders)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/orders", h.allOrders)
			r.Put("/orders/{id}/status", h.updateStatus)
		})
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// ---- customer auth ----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) registerClient(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	err := h.Clients.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Username or email already exists")
	case err != nil:
		slog.Error("register failed", "username", req.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) loginClient(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	err := h.Clients.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case err != nil:
		slog.Error("login failed", "username", req.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to login")
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"message":  "Login successful",
			"username": req.Username,
		})
	}
}

// ---- admin session ----

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}
	if err != nil {
		slog.Error("admin login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Admin login successful"})
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(AdminSessionCookie); err == nil {
		if err := h.Sessions.Logout(r.Context(), c.Value); err != nil {
			slog.Error("admin logout failed", "err", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:   AdminSessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) adminCheckSession(w http.ResponseWriter, r *http.Request) {
	if !h.isAdmin(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"logged_in": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"logged_in": true})
}

func (h *Handler) isAdmin(r *http.Request) bool {
	c, err := r.Cookie(AdminSessionCookie)
	if err != nil {
		return false
	}
	ok, err := h.Sessions.Check(r.Context(), c.Value)
	if err != nil {
		slog.Error("session check failed", "err", err)
		return false
	}
	return ok
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.isAdmin(r) {
			writeError(w, http.StatusUnauthorized, "Unauthorized access.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- orders ----

type createOrderReq struct {
	ClientID   string        `json:"clientId"`
	Items      []orders.Item `json:"items"`
	TotalItems int           `json:"totalItems"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ClientID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Client ID and items are required")
		return
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "Items need a name and a positive quantity")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID, err := h.Orders.Create(ctx, req.ClientID, req.Items, req.TotalItems)
	if err != nil {
		slog.Error("create order failed", "client", req.ClientID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	h.publish(h.CreatedProducer, orders.EventOrderCreated, orderID, orders.OrderCreatedPayload{
		OrderID:    orderID,
		ClientID:   req.ClientID,
		Items:      req.Items,
		TotalItems: req.TotalItems,
	})
	h.cacheStatus(ctx, orderID, orders.StatusReceived)

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Order created successfully"})
}

func (h *Handler) allOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Orders.ListAll(ctx)
	if err != nil {
		slog.Error("list orders failed", "err", err)
		writeError(w, http.StatusInternalServerError, "A critical server error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) clientOrders(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Orders.ListByClient(ctx, clientID)
	if err != nil {
		slog.Error("list client orders failed", "client", clientID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch client orders")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "New status is required")
		return
	}
	status, ok := orders.Parse(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	prev, err := h.Orders.Get(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("load order failed", "order", orderID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	if err := h.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		slog.Error("update status failed", "order", orderID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	h.publish(h.StatusProducer, orders.EventOrderStatusChanged, orderID, orders.OrderStatusChangedPayload{
		OrderID:   orderID,
		ClientID:  prev.ClientID,
		OldStatus: prev.Status,
		NewStatus: status,
	})
	h.cacheStatus(ctx, orderID, status)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated successfully"})
}

func (h *Handler) publish(p Publisher, eventType, orderID string, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *Handler) cacheStatus(ctx context.Context, orderID string, status orders.Status) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Redis.Set(ctx, key, string(status), redisx.TTLStatusCache).Err()
}
