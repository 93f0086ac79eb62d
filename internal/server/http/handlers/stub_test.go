package handlers

import (
	"context"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/usecase"
)

// facadeStub implements OrderingFacade with overridable function fields.
type facadeStub struct {
	MenuFn            func(ctx context.Context) ([]model.MenuItem, error)
	PlaceOrderFn      func(ctx context.Context, draft usecase.OrderDraft) (*model.Order, error)
	OrderFn           func(ctx context.Context, id string) (*model.Order, error)
	OrdersFn          func(ctx context.Context) ([]model.Order, error)
	UpdateOrderFn     func(ctx context.Context, id string, upd usecase.Update) (*model.Order, error)
	CheckoutSessionFn func(ctx context.Context, draft usecase.OrderDraft) (*payment.Session, error)
	ConfirmPaymentFn  func(ctx context.Context, id, sessionID string) (*model.Order, error)
	AuthenticateFn    func(ctx context.Context, user, pass string) (string, error)
	ParseTokenFn      func(token string) (string, error)
}

func (s *facadeStub) Menu(ctx context.Context) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return nil, nil
}

func (s *facadeStub) PlaceOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, draft)
	}
	return &model.Order{}, nil
}

func (s *facadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

func (s *facadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

func (s *facadeStub) UpdateOrder(ctx context.Context, id string, upd usecase.Update) (*model.Order, error) {
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, id, upd)
	}
	return &model.Order{ID: id}, nil
}

func (s *facadeStub) CheckoutSession(ctx context.Context, draft usecase.OrderDraft) (*payment.Session, error) {
	if s.CheckoutSessionFn != nil {
		return s.CheckoutSessionFn(ctx, draft)
	}
	return &payment.Session{}, nil
}

func (s *facadeStub) ConfirmPayment(ctx context.Context, id, sessionID string) (*model.Order, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, id, sessionID)
	}
	return &model.Order{ID: id}, nil
}

func (s *facadeStub) AuthenticateAdmin(ctx context.Context, user, pass string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, user, pass)
	}
	return "token", nil
}

func (s *facadeStub) ParseAdminToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "admin", nil
}

var _ OrderingFacade = (*facadeStub)(nil)
