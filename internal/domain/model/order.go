package model

import "time"

// Delivery stage indices. StatusIndex is monotonically non-decreasing and
// never exceeds StatusDelivered.
const (
	StatusReceived = iota
	StatusPreparing
	StatusOutForDelivery
	StatusDelivered
)

var statusLabels = [...]string{"Received", "Preparing", "OutForDelivery", "Delivered"}

// StatusLabel returns the human readable name for a status index.
func StatusLabel(index int) string {
	if index < 0 || index >= len(statusLabels) {
		return "Unknown"
	}
	return statusLabels[index]
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PaymentMethod enumerates supported payment methods.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// PaymentStatus enumerates payment states.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment describes how the order is paid.
type Payment struct {
	Method    PaymentMethod `json:"method"`
	Status    PaymentStatus `json:"status"`
	SessionID string        `json:"sessionId,omitempty"`
}

// OrderItem is a priced line inside an order. UnitPrice is pinned to the
// menu's authoritative price at validation time.
type OrderItem struct {
	MenuItemID string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"qty"`
	UnitPrice  float64 `json:"price"`
}

// Order is the central entity: a customer order together with its simulated
// delivery state.
type Order struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Addr        string      `json:"addr"`
	Items       []OrderItem `json:"items"`
	Total       float64     `json:"total"`
	Created     time.Time   `json:"created"`
	StatusIndex int         `json:"statusIndex"`
	Dest        *LatLng     `json:"dest"`
	Current     *LatLng     `json:"current"`
	Payment     Payment     `json:"payment"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the item slice or coordinate pointers.
func (o Order) Clone() Order {
	cp := o
	if o.Items != nil {
		cp.Items = make([]OrderItem, len(o.Items))
		copy(cp.Items, o.Items)
	}
	if o.Dest != nil {
		dest := *o.Dest
		cp.Dest = &dest
	}
	if o.Current != nil {
		cur := *o.Current
		cp.Current = &cur
	}
	return cp
}
