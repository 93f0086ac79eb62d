package usecase

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/bitenow/bitenow/internal/domain/errors"
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/domain/repository"
)

// Update is the set of recognized partial-update operations. Nil fields are
// left untouched; anything else a caller submits is rejected before it
// reaches this type.
type Update struct {
	StatusIndex *int
	Current     *model.LatLng
	Payment     *model.Payment
}

// OrderUseCase encapsulates the order lifecycle: validated creation and
// serialized read-modify-write mutation. Every mutation re-reads the latest
// persisted snapshot under a per-order lock so concurrent writers (admin
// update, payment webhook, delivery simulator) never clobber each other's
// fields.
type OrderUseCase struct {
	orders repository.OrderRepository
	menu   repository.MenuRepository
	ids    TrackingIDs
	now    func() time.Time
	locks  keyedMutex
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, menu repository.MenuRepository, ids TrackingIDs) *OrderUseCase {
	return &OrderUseCase{orders: orders, menu: menu, ids: ids, now: time.Now}
}

// Create validates the draft against the current menu, assigns a tracking
// ID and persists the new order. On validation failure nothing is stored
// and the complete problem list is returned.
func (u *OrderUseCase) Create(ctx context.Context, draft OrderDraft) (*model.Order, error) {
	menuItems, err := u.menu.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if problems := ValidateDraft(draft, menuItems); len(problems) > 0 {
		return nil, domainErrors.NewValidation(problems)
	}

	id, err := u.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	payment := model.Payment{Method: model.PaymentMethodCash, Status: model.PaymentStatusPending}
	if draft.Payment != nil {
		payment.Method = draft.Payment.Method
	}

	items := make([]model.OrderItem, len(draft.Items))
	copy(items, draft.Items)

	order := model.Order{
		ID:          id,
		Name:        truncate(draft.Name, nameMaxLen),
		Phone:       truncate(draft.Phone, phoneMaxLen),
		Addr:        truncate(draft.Addr, addrMaxLen),
		Items:       items,
		Total:       draft.Total,
		Created:     u.now(),
		StatusIndex: model.StatusReceived,
		Dest:        draft.Dest,
		Current:     nil,
		Payment:     payment,
	}

	if err := u.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Get returns the order with the given tracking ID.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns the whole order table.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.GetAll(ctx)
}

// Apply merges the recognized update operations into the latest persisted
// snapshot, validating each against current state. The status index may
// never decrease.
func (u *OrderUseCase) Apply(ctx context.Context, id string, upd Update) (*model.Order, error) {
	unlock := u.locks.lock(id)
	defer unlock()

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.StatusIndex != nil {
		idx := *upd.StatusIndex
		if idx < model.StatusReceived || idx > model.StatusDelivered {
			return nil, domainErrors.ErrInvalidStatus
		}
		if idx < order.StatusIndex {
			return nil, domainErrors.ErrStatusRegression
		}
		order.StatusIndex = idx
	}

	if upd.Current != nil {
		current := *upd.Current
		order.Current = &current
	}

	if upd.Payment != nil {
		if !validPayment(*upd.Payment) {
			return nil, domainErrors.ErrInvalidPayment
		}
		order.Payment = *upd.Payment
	}

	return u.orders.UpdateWhole(ctx, id, *order)
}

// SetLocation records the courier's current position.
func (u *OrderUseCase) SetLocation(ctx context.Context, id string, pos model.LatLng) (*model.Order, error) {
	return u.Apply(ctx, id, Update{Current: &pos})
}

// AdvanceStatus increments the status index by one, clamped at Delivered.
func (u *OrderUseCase) AdvanceStatus(ctx context.Context, id string) (*model.Order, error) {
	unlock := u.locks.lock(id)
	defer unlock()

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.StatusIndex < model.StatusDelivered {
		order.StatusIndex++
	}
	return u.orders.UpdateWhole(ctx, id, *order)
}

// ConfirmPayment marks the order paid and raises the status to at least
// Preparing, keeping any further progress already made.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, id, sessionID string) (*model.Order, error) {
	unlock := u.locks.lock(id)
	defer unlock()

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Payment = model.Payment{
		Method:    model.PaymentMethodCard,
		Status:    model.PaymentStatusPaid,
		SessionID: sessionID,
	}
	if order.StatusIndex < model.StatusPreparing {
		order.StatusIndex = model.StatusPreparing
	}
	return u.orders.UpdateWhole(ctx, id, *order)
}

func validPayment(p model.Payment) bool {
	methodOK := p.Method == model.PaymentMethodCash || p.Method == model.PaymentMethodCard
	statusOK := p.Status == model.PaymentStatusPending || p.Status == model.PaymentStatusPaid
	return methodOK && statusOK
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// keyedMutex hands out one mutex per tracking ID. Entries are never evicted
// since orders are never deleted in normal operation.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
