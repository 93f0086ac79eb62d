package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/server/http/dto"
)

// SignatureHeader carries the webhook payload signature.
const SignatureHeader = "X-Webhook-Signature"

// PaymentHandler processes card checkout and provider webhooks.
type PaymentHandler struct {
	facade        PaymentFacade
	webhookSecret string
	logger        *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, webhookSecret string, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, webhookSecret: webhookSecret, logger: logger}
}

// CreateSession handles POST /api/checkout-session.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.facade.CheckoutSession(c.Request.Context(), toDraft(req))
	if err != nil {
		if validation, ok := domainErrors.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
			return
		}
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Card payments unavailable"})
			return
		}
		var provErr payment.ProviderError
		if errors.As(err, &provErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start checkout"})
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: session.RedirectURL, OrderID: session.OrderID})
}

// Webhook handles POST /api/payment/webhook. The payload signature is
// verified against the raw body before any decoding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if !payment.VerifySignature(body, c.GetHeader(SignatureHeader), h.webhookSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	var event payment.Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if event.Type != payment.EventCheckoutCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	// The provider retries non-2xx deliveries, so a confirmation miss is
	// acknowledged and logged rather than surfaced as an error status.
	if _, err := h.facade.ConfirmPayment(c.Request.Context(), event.OrderID, event.SessionID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			h.logger.Warn("webhook for unknown order", "orderID", event.OrderID)
		} else {
			h.logger.Error("payment confirmation failed", "orderID", event.OrderID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
