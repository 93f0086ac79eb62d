package dto

// CheckoutResponse points the customer at the provider's payment page.
type CheckoutResponse struct {
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}
