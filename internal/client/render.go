package client

import (
	"fmt"
	"io"
	"time"

	"laundry-orders/internal/orders"
)

// ANSI color used as the terminal stand-in for the status css classes.
const (
	colorBlue   = "\x1b[34m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorGray   = "\x1b[90m"
	colorRed    = "\x1b[31m"
	colorReset  = "\x1b[0m"
)

var statusColors = map[orders.Status]string{
	orders.StatusReceived:   colorBlue,
	orders.StatusProcessing: colorYellow,
	orders.StatusReady:      colorGreen,
	orders.StatusCompleted:  colorGray,
	orders.StatusDeclined:   colorRed,
}

// AdminStatusColor colors the editable status control. Unknown statuses
// fall back to the completed gray.
func AdminStatusColor(s orders.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return colorGray
}

// BadgeColor colors the customer's read-only badge. Unknown statuses
// get a neutral (uncolored) badge.
func BadgeColor(s orders.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return ""
}

func paint(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + colorReset
}

// RenderHistory writes the customer's order history table. An empty
// collection renders exactly one placeholder row.
func RenderHistory(w io.Writer, list []orders.Order) {
	fmt.Fprintf(w, "%-38s %-12s %6s  %s\n", "ORDER", "DATE", "ITEMS", "STATUS")
	if len(list) == 0 {
		fmt.Fprintln(w, "No order history found.")
		return
	}
	for _, o := range list {
		fmt.Fprintf(w, "%-38s %-12s %6d  %s\n",
			o.ID, o.CreatedAt.Format(time.DateOnly), o.TotalItems,
			paint(BadgeColor(o.Status), string(o.Status)))
		renderItems(w, o.Items)
	}
}

// RenderAdmin writes the admin table: numbered rows so statuses can be
// edited by row number, status colored via the admin lookup.
func RenderAdmin(w io.Writer, list []orders.Order) {
	fmt.Fprintf(w, "%3s  %-38s %-14s %-12s %6s  %s\n", "#", "ORDER", "CLIENT", "DATE", "ITEMS", "STATUS")
	if len(list) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}
	for i, o := range list {
		fmt.Fprintf(w, "%3d  %-38s %-14s %-12s %6d  %s\n",
			i+1, o.ID, o.ClientID, o.CreatedAt.Format(time.DateOnly), o.TotalItems,
			paint(AdminStatusColor(o.Status), string(o.Status)))
		renderItems(w, o.Items)
	}
}

// renderItems prints the item sub-list in server order.
func renderItems(w io.Writer, items []orders.Item) {
	for _, it := range items {
		fmt.Fprintf(w, "     - %s: %d\n", it.Name, it.Quantity)
	}
}

// RenderError writes the table-body error row shown when a fetch fails.
func RenderError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s\n", paint(colorRed, "Error: "+err.Error()))
}
