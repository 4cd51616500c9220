package client

import (
	"strconv"
	"strings"

	"laundry-orders/internal/orders"
)

// defaultItems seed every fresh draft; their names are not editable.
var defaultItems = []string{"Shirts", "Pants", "Saree"}

// DraftRow is one line of the unsubmitted order.
type DraftRow struct {
	Name     string
	Quantity int
	Custom   bool
}

// Draft is the in-progress order being assembled before submission.
type Draft struct {
	rows []DraftRow
}

func NewDraft() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

// Reset restores the fixed default rows, quantity 1 each. Runs on login
// and after every successful submission.
func (d *Draft) Reset() {
	d.rows = d.rows[:0]
	for _, name := range defaultItems {
		d.rows = append(d.rows, DraftRow{Name: name, Quantity: 1})
	}
}

func (d *Draft) Rows() []DraftRow { return d.rows }

func (d *Draft) Len() int { return len(d.rows) }

// AddCustom appends an empty user-named row with quantity 1.
func (d *Draft) AddCustom() {
	d.rows = append(d.rows, DraftRow{Quantity: 1, Custom: true})
}

// SetName renames a row; only custom rows are editable.
func (d *Draft) SetName(i int, name string) {
	if !d.valid(i) || !d.rows[i].Custom {
		return
	}
	d.rows[i].Name = name
}

func (d *Draft) Increment(i int) {
	if !d.valid(i) {
		return
	}
	d.rows[i].Quantity++
}

// Decrement lowers a quantity but never below 1.
func (d *Draft) Decrement(i int) {
	if !d.valid(i) || d.rows[i].Quantity <= 1 {
		return
	}
	d.rows[i].Quantity--
}

// SetQuantityInput applies a directly typed quantity. Values below 1
// are clamped up to 1; unparseable input leaves the row at zero so it
// drops out of the submission.
func (d *Draft) SetQuantityInput(i int, raw string) {
	if !d.valid(i) {
		return
	}
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		d.rows[i].Quantity = 0
		return
	}
	if q < 1 {
		q = 1
	}
	d.rows[i].Quantity = q
}

func (d *Draft) Remove(i int) {
	if !d.valid(i) {
		return
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
}

// Total is the displayed item counter: the sum over all rows.
func (d *Draft) Total() int {
	total := 0
	for _, r := range d.rows {
		total += r.Quantity
	}
	return total
}

// Items returns what actually gets submitted: rows with a non-empty
// trimmed name and a positive quantity.
func (d *Draft) Items() []orders.Item {
	out := []orders.Item{}
	for _, r := range d.rows {
		name := strings.TrimSpace(r.Name)
		if name == "" || r.Quantity < 1 {
			continue
		}
		out = append(out, orders.Item{Name: name, Quantity: r.Quantity})
	}
	return out
}

func (d *Draft) valid(i int) bool { return i >= 0 && i < len(d.rows) }
