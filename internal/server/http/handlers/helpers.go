package handlers

import (
	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/server/http/dto"
	"github.com/bitenow/bitenow/internal/usecase"
)

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          order.ID,
		Name:        order.Name,
		Phone:       order.Phone,
		Addr:        order.Addr,
		Items:       order.Items,
		Total:       order.Total,
		Created:     order.Created,
		StatusIndex: order.StatusIndex,
		Status:      model.StatusLabel(order.StatusIndex),
		Dest:        order.Dest,
		Current:     order.Current,
		Payment:     order.Payment,
	}
}

func toDraft(req dto.CreateOrderRequest) usecase.OrderDraft {
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   item.Qty,
			UnitPrice:  item.Price,
		})
	}

	draft := usecase.OrderDraft{
		Name:  req.Name,
		Phone: req.Phone,
		Addr:  req.Addr,
		Items: items,
		Total: req.Total,
		Dest:  req.Dest,
	}
	if req.Payment != "" {
		draft.Payment = &model.Payment{
			Method: model.PaymentMethod(req.Payment),
			Status: model.PaymentStatusPending,
		}
	}
	return draft
}
