package handlers

import (
	"context"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/usecase"
)

// MenuFacade exposes the menu to handlers.
type MenuFacade interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	UpdateOrder(ctx context.Context, id string, upd usecase.Update) (*model.Order, error)
}

// PaymentFacade provides card checkout operations.
type PaymentFacade interface {
	CheckoutSession(ctx context.Context, draft usecase.OrderDraft) (*payment.Session, error)
	ConfirmPayment(ctx context.Context, id, sessionID string) (*model.Order, error)
}

// AdminFacade describes authentication capabilities required by handlers.
type AdminFacade interface {
	AuthenticateAdmin(ctx context.Context, user, pass string) (string, error)
	ParseAdminToken(token string) (string, error)
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	MenuFacade
	OrderFacade
	PaymentFacade
	AdminFacade
}
