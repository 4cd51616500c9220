package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"laundry-orders/internal/auth"
	"laundry-orders/internal/orders"
)

// ---- stubs ----

type stubOrders struct {
	store     map[string]orders.Order
	created   []string
	updateErr error
}

func (s *stubOrders) Create(ctx context.Context, clientID string, items []orders.Item, total int) (string, error) {
	id := "ord-created"
	s.created = append(s.created, clientID)
	return id, nil
}

func (s *stubOrders) ListAll(ctx context.Context) ([]orders.Order, error) {
	out := []orders.Order{}
	for _, o := range s.store {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrders) ListByClient(ctx context.Context, clientID string) ([]orders.Order, error) {
	out := []orders.Order{}
	for _, o := range s.store {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) Get(ctx context.Context, orderID string) (orders.Order, error) {
	o, ok := s.store[orderID]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, orderID string, status orders.Status) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	o, ok := s.store[orderID]
	if !ok {
		return orders.ErrNotFound
	}
	o.Status = status
	s.store[orderID] = o
	return nil
}

type stubClients struct {
	registerErr error
	authErr     error
}

func (s *stubClients) Register(ctx context.Context, username, email, password string) error {
	return s.registerErr
}

func (s *stubClients) Authenticate(ctx context.Context, username, password string) error {
	return s.authErr
}

type stubSessions struct {
	valid map[string]bool
}

func (s *stubSessions) Login(ctx context.Context, username, password string) (string, error) {
	if username != "admin" || password != "admin123" {
		return "", auth.ErrInvalidCredentials
	}
	if s.valid == nil {
		s.valid = map[string]bool{}
	}
	s.valid["tok"] = true
	return "tok", nil
}

func (s *stubSessions) Check(ctx context.Context, token string) (bool, error) {
	return s.valid[token], nil
}

func (s *stubSessions) Logout(ctx context.Context, token string) error {
	delete(s.valid, token)
	return nil
}

type stubPublisher struct {
	events []orders.Envelope
}

func (p *stubPublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	var env orders.Envelope
	_ = json.Unmarshal(value, &env)
	p.events = append(p.events, env)
}

func newTestHandler() (*Handler, *stubOrders, *stubPublisher, *stubPublisher, http.Handler) {
	so := &stubOrders{store: map[string]orders.Order{
		"ord-1": {
			ID: "ord-1", ClientID: "alice", Status: orders.StatusReceived,
			TotalItems: 2, CreatedAt: time.Now(),
			Items: []orders.Item{{Name: "Shirts", Quantity: 2}},
		},
	}}
	pCreated := &stubPublisher{}
	pStatus := &stubPublisher{}
	h := &Handler{
		Orders:          so,
		Clients:         &stubClients{},
		Sessions:        &stubSessions{valid: map[string]bool{"tok": true}},
		CreatedProducer: pCreated,
		StatusProducer:  pStatus,
		Service:         "test",
	}
	r := NewRouter()
	h.Register(r)
	return h, so, pCreated, pStatus, r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body string, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ---- tests ----

func TestRegisterValidation(t *testing.T) {
	_, _, _, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodPost, "/api/register", `{"username":"a","email":" ","password":"pw"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank email: code = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/register", `{"username":"a","email":"a@b.c","password":"pw"}`, "")
	if rec.Code != http.StatusCreated {
		t.Errorf("valid register: code = %d, want 201", rec.Code)
	}
}

func TestRegisterConflict(t *testing.T) {
	h, _, _, _, _ := newTestHandler()
	h.Clients = &stubClients{registerErr: auth.ErrAlreadyExists}
	r := NewRouter()
	h.Register(r)

	rec := doJSON(t, r, http.MethodPost, "/api/register", `{"username":"a","email":"a@b.c","password":"pw"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h, _, _, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["username"] != "alice" {
		t.Errorf("username = %q", resp["username"])
	}

	h.Clients = &stubClients{authErr: auth.ErrInvalidCredentials}
	r2 := NewRouter()
	h.Register(r2)
	rec = doJSON(t, r2, http.MethodPost, "/api/login", `{"username":"alice","password":"bad"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad credentials: code = %d, want 401", rec.Code)
	}
}

func TestAdminSessionFlow(t *testing.T) {
	_, _, _, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad admin login: code = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"admin123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: code = %d, want 200", rec.Code)
	}
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == AdminSessionCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no session cookie set")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/check_session", "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("check_session: code = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/admin/check_session", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("check_session without cookie: code = %d, want 401", rec.Code)
	}
}

func TestOrdersRequireAdmin(t *testing.T) {
	_, _, _, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodGet, "/api/orders", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Unauthorized access." {
		t.Errorf("error = %q", resp["error"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/orders", "", "tok")
	if rec.Code != http.StatusOK {
		t.Errorf("with session: code = %d, want 200", rec.Code)
	}
}

func TestCreateOrder(t *testing.T) {
	_, so, pCreated, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodPost, "/api/orders", `{"clientId":"","items":[]}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing fields: code = %d, want 400", rec.Code)
	}

	body := `{"clientId":"alice","items":[{"name":"Shirts","quantity":2}],"totalItems":2}`
	rec = doJSON(t, router, http.MethodPost, "/api/orders", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(so.created) != 1 || so.created[0] != "alice" {
		t.Errorf("created = %v", so.created)
	}
	if len(pCreated.events) != 1 || pCreated.events[0].EventType != orders.EventOrderCreated {
		t.Errorf("events = %+v", pCreated.events)
	}
}

func TestClientOrders(t *testing.T) {
	_, _, _, _, router := newTestHandler()

	rec := doJSON(t, router, http.MethodGet, "/api/orders/client/alice", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var list []orders.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "ord-1" {
		t.Errorf("list = %+v", list)
	}
}

func TestUpdateStatus(t *testing.T) {
	_, so, _, pStatus, router := newTestHandler()

	rec := doJSON(t, router, http.MethodPut, "/api/orders/ord-1/status", `{"status":"Shipped"}`, "tok")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: code = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/orders/missing/status", `{"status":"Declined"}`, "tok")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing order: code = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/orders/ord-1/status", `{"status":"Declined"}`, "tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if so.store["ord-1"].Status != orders.StatusDeclined {
		t.Errorf("stored status = %q", so.store["ord-1"].Status)
	}
	if len(pStatus.events) != 1 || pStatus.events[0].EventType != orders.EventOrderStatusChanged {
		t.Fatalf("events = %+v", pStatus.events)
	}
	var p orders.OrderStatusChangedPayload
	if err := json.Unmarshal(pStatus.events[0].Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.OldStatus != orders.StatusReceived || p.NewStatus != orders.StatusDeclined || p.ClientID != "alice" {
		t.Errorf("payload = %+v", p)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/orders/ord-1/status", `{"status":"Declined"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without session: code = %d, want 401", rec.Code)
	}
}
