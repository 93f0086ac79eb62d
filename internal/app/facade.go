package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/pkg/auth"
	"github.com/bitenow/bitenow/internal/usecase"
)

// ErrBadCredentials indicates a failed admin login attempt.
var ErrBadCredentials = errors.New("bad credentials")

// DeliverySimulator launches simulated couriers for accepted orders.
type DeliverySimulator interface {
	Launch(id string, dest *model.LatLng) bool
}

// ChangePublisher pushes order change events to live subscribers.
type ChangePublisher interface {
	Publish(order model.Order)
}

type OrderingFacade struct {
	orders   *usecase.OrderUseCase
	menu     *usecase.MenuUseCase
	payments payment.Client
	sim      DeliverySimulator
	changes  ChangePublisher
	tokens   auth.Strategy
	hasher   auth.PasswordHasher
	cfg      *config.Config
	logger   *slog.Logger
}

func NewOrderingFacade(
	orders *usecase.OrderUseCase,
	menu *usecase.MenuUseCase,
	payments payment.Client,
	sim DeliverySimulator,
	changes ChangePublisher,
	tokens auth.Strategy,
	hasher auth.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderingFacade {
	return &OrderingFacade{
		orders:   orders,
		menu:     menu,
		payments: payments,
		sim:      sim,
		changes:  changes,
		tokens:   tokens,
		hasher:   hasher,
		cfg:      cfg,
		logger:   logger,
	}
}

// PlaceOrder accepts a cash order and starts its simulated delivery.
func (f *OrderingFacade) PlaceOrder(ctx context.Context, draft usecase.OrderDraft) (*model.Order, error) {
	order, err := f.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	f.sim.Launch(order.ID, order.Dest)
	f.changes.Publish(*order)
	return order, nil
}

func (f *OrderingFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *OrderingFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

// UpdateOrder applies an admin edit and notifies subscribers.
func (f *OrderingFacade) UpdateOrder(ctx context.Context, id string, upd usecase.Update) (*model.Order, error) {
	order, err := f.orders.Apply(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	f.changes.Publish(*order)
	return order, nil
}

func (f *OrderingFacade) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.Items(ctx)
}

// CheckoutSession records a card order as payment-pending and opens a
// checkout session at the provider. The order is kept even when the
// provider call fails so a retried checkout can reference it.
func (f *OrderingFacade) CheckoutSession(ctx context.Context, draft usecase.OrderDraft) (*payment.Session, error) {
	draft.Payment = &model.Payment{Method: model.PaymentMethodCard, Status: model.PaymentStatusPending}
	order, err := f.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	session, err := f.payments.CreateSession(ctx, *order)
	if err != nil {
		f.logger.Error("checkout session failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return session, nil
}

// ConfirmPayment marks a card order paid and starts its delivery.
func (f *OrderingFacade) ConfirmPayment(ctx context.Context, id, sessionID string) (*model.Order, error) {
	order, err := f.orders.ConfirmPayment(ctx, id, sessionID)
	if err != nil {
		return nil, err
	}
	f.sim.Launch(order.ID, order.Dest)
	f.changes.Publish(*order)
	return order, nil
}

// AuthenticateAdmin verifies admin credentials and issues a session token.
func (f *OrderingFacade) AuthenticateAdmin(ctx context.Context, user, pass string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(user), []byte(f.cfg.AdminUser)) != 1 {
		return "", ErrBadCredentials
	}
	if f.cfg.AdminPassHash != "" {
		if err := f.hasher.Compare(f.cfg.AdminPassHash, pass); err != nil {
			return "", ErrBadCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(pass), []byte(f.cfg.AdminPass)) != 1 {
		return "", ErrBadCredentials
	}
	return f.tokens.IssueToken("admin")
}

func (f *OrderingFacade) ParseAdminToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}
