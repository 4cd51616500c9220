package orders

// Status is the order lifecycle state, exchanged as a plain string.
type Status string

const (
	StatusReceived   Status = "Received"
	StatusProcessing Status = "Processing"
	StatusReady      Status = "Ready for Pickup"
	StatusCompleted  Status = "Completed"
	StatusDeclined   Status = "Declined"
)

// All lists every status in lifecycle order.
func All() []Status {
	return []Status{StatusReceived, StatusProcessing, StatusReady, StatusCompleted, StatusDeclined}
}

var known = map[Status]bool{
	StatusReceived:   true,
	StatusProcessing: true,
	StatusReady:      true,
	StatusCompleted:  true,
	StatusDeclined:   true,
}

// Parse validates a server- or user-provided status string. Unknown
// values are rejected here; render-side lookups stay total and fall
// back to a default instead.
func Parse(s string) (Status, bool) {
	st := Status(s)
	return st, known[st]
}
