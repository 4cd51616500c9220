package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"laundry-orders/internal/orders"
)

func TestAdminStatusColor(t *testing.T) {
	tests := []struct {
		status orders.Status
		want   string
	}{
		{orders.StatusReceived, colorBlue},
		{orders.StatusProcessing, colorYellow},
		{orders.StatusReady, colorGreen},
		{orders.StatusCompleted, colorGray},
		{orders.StatusDeclined, colorRed},
		{orders.Status("Shipped"), colorGray}, // unknown falls back to completed gray
		{orders.Status(""), colorGray},
	}
	for _, tt := range tests {
		if got := AdminStatusColor(tt.status); got != tt.want {
			t.Errorf("AdminStatusColor(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestBadgeColor(t *testing.T) {
	for _, s := range orders.All() {
		if BadgeColor(s) == "" {
			t.Errorf("BadgeColor(%q) is neutral, want a color", s)
		}
	}
	if got := BadgeColor(orders.Status("Shipped")); got != "" {
		t.Errorf("BadgeColor(unknown) = %q, want neutral", got)
	}
}

func sampleOrders() []orders.Order {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return []orders.Order{
		{
			ID: "ord-1", ClientID: "alice", CreatedAt: at,
			Status: orders.StatusReceived, TotalItems: 3,
			Items: []orders.Item{{Name: "Shirts", Quantity: 2}, {Name: "Pants", Quantity: 1}},
		},
		{
			ID: "ord-2", ClientID: "bob", CreatedAt: at,
			Status: orders.StatusDeclined, TotalItems: 1,
			Items: []orders.Item{{Name: "Saree", Quantity: 1}},
		},
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, nil)
	out := buf.String()
	if strings.Count(out, "No order history found.") != 1 {
		t.Errorf("want exactly one placeholder row, got:\n%s", out)
	}
}

func TestRenderHistoryRows(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, sampleOrders())
	out := buf.String()

	if strings.Contains(out, "No order history found.") {
		t.Error("placeholder rendered alongside data rows")
	}
	for _, id := range []string{"ord-1", "ord-2"} {
		if strings.Count(out, id) != 1 {
			t.Errorf("order %s not rendered exactly once:\n%s", id, out)
		}
	}
	// item sub-list keeps server order
	if !strings.Contains(out, "- Shirts: 2") || !strings.Contains(out, "- Pants: 1") {
		t.Errorf("item list missing:\n%s", out)
	}
	if strings.Index(out, "- Shirts: 2") > strings.Index(out, "- Pants: 1") {
		t.Error("items reordered")
	}
}

func TestRenderAdmin(t *testing.T) {
	var buf bytes.Buffer
	RenderAdmin(&buf, nil)
	if strings.Count(buf.String(), "No orders found.") != 1 {
		t.Errorf("want exactly one placeholder row, got:\n%s", buf.String())
	}

	buf.Reset()
	RenderAdmin(&buf, sampleOrders())
	out := buf.String()
	if !strings.Contains(out, "ord-1") || !strings.Contains(out, "ord-2") {
		t.Errorf("data rows missing:\n%s", out)
	}
	if !strings.Contains(out, "alice") || !strings.Contains(out, "bob") {
		t.Errorf("client column missing:\n%s", out)
	}
	if !strings.Contains(out, colorRed+"Declined"+colorReset) {
		t.Errorf("declined status not colored red:\n%q", out)
	}
}
