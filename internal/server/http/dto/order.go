package dto

import (
	"time"

	"github.com/bitenow/bitenow/internal/domain/model"
)

// OrderItemRequest is one line of a submitted order.
type OrderItemRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// CreateOrderRequest describes an order submission payload.
type CreateOrderRequest struct {
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
	Addr    string             `json:"addr"`
	Items   []OrderItemRequest `json:"items"`
	Total   float64            `json:"total"`
	Dest    *model.LatLng      `json:"dest"`
	Payment string             `json:"payment"`
}

// UpdateOrderRequest carries the recognized partial-update operations for an
// order. Requests holding any other field are rejected before decoding.
type UpdateOrderRequest struct {
	StatusIndex *int           `json:"statusIndex"`
	Current     *model.LatLng  `json:"current"`
	Payment     *model.Payment `json:"payment"`
}

// OrderResponse is the public representation of an order.
type OrderResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Addr        string            `json:"addr"`
	Items       []model.OrderItem `json:"items"`
	Total       float64           `json:"total"`
	Created     time.Time         `json:"created"`
	StatusIndex int               `json:"statusIndex"`
	Status      string            `json:"status"`
	Dest        *model.LatLng     `json:"dest"`
	Current     *model.LatLng     `json:"current"`
	Payment     model.Payment     `json:"payment"`
}
