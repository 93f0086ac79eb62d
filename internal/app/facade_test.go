package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/bitenow/bitenow/internal/adapter/payment"
	"github.com/bitenow/bitenow/internal/config"
	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/pkg/auth"
	testhelpers "github.com/bitenow/bitenow/internal/test"
	"github.com/bitenow/bitenow/internal/usecase"
)

type paymentClientStub struct {
	CreateFn func(ctx context.Context, order model.Order) (*payment.Session, error)
	Orders   []model.Order
}

func (s *paymentClientStub) CreateSession(ctx context.Context, order model.Order) (*payment.Session, error) {
	s.Orders = append(s.Orders, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return &payment.Session{RedirectURL: "https://pay.example/s/1", OrderID: order.ID}, nil
}

type facadeFixture struct {
	facade    *OrderingFacade
	orders    *testhelpers.MemOrderRepository
	payments  *paymentClientStub
	launcher  *testhelpers.LauncherStub
	publisher *testhelpers.PublisherStub
}

func newFacadeFixture(cfg *config.Config) *facadeFixture {
	orders := testhelpers.NewMemOrderRepository()
	menu := &testhelpers.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: "jollof", Name: "Jollof Rice", Price: 25},
		{ID: "waakye", Name: "Waakye", Price: 18},
	}}
	orderUC := usecase.NewOrderUseCase(orders, menu, usecase.NewTimestampIDs(orders))
	menuUC := usecase.NewMenuUseCase(menu)

	payments := &paymentClientStub{}
	launcher := &testhelpers.LauncherStub{}
	publisher := &testhelpers.PublisherStub{}

	facade := NewOrderingFacade(
		orderUC,
		menuUC,
		payments,
		launcher,
		publisher,
		auth.NewJWTStrategy("test-secret", auth.Options{}),
		auth.NewBcryptHasher(bcrypt.MinCost),
		cfg,
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
	)
	return &facadeFixture{facade: facade, orders: orders, payments: payments, launcher: launcher, publisher: publisher}
}

func validDraft() usecase.OrderDraft {
	return usecase.OrderDraft{
		Name:  "Ama Mensah",
		Phone: "+233 20 123 4567",
		Addr:  "12 Ring Road, Accra",
		Items: []model.OrderItem{
			{MenuItemID: "jollof", Name: "Jollof Rice", Quantity: 2, UnitPrice: 25},
		},
		Total: 50,
	}
}

func TestPlaceOrderLaunchesDeliveryAndPublishes(t *testing.T) {
	f := newFacadeFixture(&config.Config{})

	order, err := f.facade.PlaceOrder(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Payment.Method != model.PaymentMethodCash {
		t.Errorf("payment method = %q, want cash", order.Payment.Method)
	}

	launched := f.launcher.LaunchedIDs()
	if len(launched) != 1 || launched[0] != order.ID {
		t.Errorf("launched = %v, want [%s]", launched, order.ID)
	}
	published := f.publisher.Published()
	if len(published) != 1 || published[0].ID != order.ID {
		t.Errorf("published = %v, want event for %s", published, order.ID)
	}

	stored, err := f.orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("stored order: %v", err)
	}
	if stored.Total != 50 {
		t.Errorf("stored total = %v", stored.Total)
	}
}

func TestPlaceOrderRejectsInvalidDraft(t *testing.T) {
	f := newFacadeFixture(&config.Config{})

	draft := validDraft()
	draft.Phone = "abc"
	if _, err := f.facade.PlaceOrder(context.Background(), draft); err == nil {
		t.Fatal("expected validation error")
	}
	if len(f.launcher.LaunchedIDs()) != 0 {
		t.Error("rejected order must not launch delivery")
	}
	if len(f.publisher.Published()) != 0 {
		t.Error("rejected order must not publish")
	}
}

func TestUpdateOrderPublishesChange(t *testing.T) {
	f := newFacadeFixture(&config.Config{})
	order, err := f.facade.PlaceOrder(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	status := model.StatusPreparing
	updated, err := f.facade.UpdateOrder(context.Background(), order.ID, usecase.Update{StatusIndex: &status})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}
	if updated.StatusIndex != model.StatusPreparing {
		t.Errorf("status = %d", updated.StatusIndex)
	}

	published := f.publisher.Published()
	if len(published) != 2 {
		t.Fatalf("published %d events, want 2", len(published))
	}
	if published[1].StatusIndex != model.StatusPreparing {
		t.Errorf("published status = %d", published[1].StatusIndex)
	}
}

func TestUpdateOrderUnknownID(t *testing.T) {
	f := newFacadeFixture(&config.Config{})
	status := model.StatusPreparing
	_, err := f.facade.UpdateOrder(context.Background(), "BN999999", usecase.Update{StatusIndex: &status})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(f.publisher.Published()) != 0 {
		t.Error("failed update must not publish")
	}
}

func TestCheckoutSessionCreatesPendingCardOrder(t *testing.T) {
	f := newFacadeFixture(&config.Config{})

	session, err := f.facade.CheckoutSession(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("checkout session: %v", err)
	}
	if session.RedirectURL == "" {
		t.Error("expected redirect url")
	}

	if len(f.payments.Orders) != 1 {
		t.Fatalf("provider saw %d orders, want 1", len(f.payments.Orders))
	}
	sent := f.payments.Orders[0]
	if sent.Payment.Method != model.PaymentMethodCard {
		t.Errorf("payment method = %q, want card", sent.Payment.Method)
	}
	if sent.Payment.Status != model.PaymentStatusPending {
		t.Errorf("payment status = %q, want pending", sent.Payment.Status)
	}
	if len(f.launcher.LaunchedIDs()) != 0 {
		t.Error("unpaid card order must not launch delivery")
	}
}

func TestCheckoutSessionKeepsOrderOnProviderFailure(t *testing.T) {
	f := newFacadeFixture(&config.Config{})
	f.payments.CreateFn = func(context.Context, model.Order) (*payment.Session, error) {
		return nil, payment.ProviderError{StatusCode: 502, Message: "bad gateway"}
	}

	_, err := f.facade.CheckoutSession(context.Background(), validDraft())
	var provErr payment.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}

	listed, err := f.facade.Orders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("orders = %d, want the pending order kept", len(listed))
	}
}

func TestConfirmPaymentLaunchesDelivery(t *testing.T) {
	f := newFacadeFixture(&config.Config{})
	session, err := f.facade.CheckoutSession(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("checkout session: %v", err)
	}

	order, err := f.facade.ConfirmPayment(context.Background(), session.OrderID, "sess_1")
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if order.Payment.Status != model.PaymentStatusPaid {
		t.Errorf("payment status = %q, want paid", order.Payment.Status)
	}
	if order.Payment.SessionID != "sess_1" {
		t.Errorf("session id = %q", order.Payment.SessionID)
	}
	if order.StatusIndex != model.StatusPreparing {
		t.Errorf("status = %d, want preparing", order.StatusIndex)
	}

	launched := f.launcher.LaunchedIDs()
	if len(launched) != 1 || launched[0] != order.ID {
		t.Errorf("launched = %v, want [%s]", launched, order.ID)
	}
}

func TestAuthenticateAdminPlaintext(t *testing.T) {
	f := newFacadeFixture(&config.Config{AdminUser: "admin", AdminPass: "secret"})

	token, err := f.facade.AuthenticateAdmin(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	subject, err := f.facade.ParseAdminToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if subject != "admin" {
		t.Errorf("subject = %q", subject)
	}

	if _, err := f.facade.AuthenticateAdmin(context.Background(), "admin", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong pass err = %v", err)
	}
	if _, err := f.facade.AuthenticateAdmin(context.Background(), "root", "secret"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong user err = %v", err)
	}
}

func TestAuthenticateAdminBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}
	f := newFacadeFixture(&config.Config{AdminUser: "admin", AdminPassHash: string(hash)})

	if _, err := f.facade.AuthenticateAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("authenticate with hash: %v", err)
	}
	if _, err := f.facade.AuthenticateAdmin(context.Background(), "admin", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong pass err = %v", err)
	}
}
