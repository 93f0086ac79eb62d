package usecase

import (
	"fmt"
	"math"
	"regexp"

	"github.com/bitenow/bitenow/internal/domain/model"
)

const (
	nameMinLen  = 2
	nameMaxLen  = 100
	phoneMinLen = 7
	phoneMaxLen = 20
	addrMinLen  = 5
	addrMaxLen  = 500
)

// Permissive phone shape: optional plus, then digits with common separators.
var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]+$`)

// OrderDraft is a candidate order as submitted by a customer, before
// validation and identifier assignment.
type OrderDraft struct {
	Name    string
	Phone   string
	Addr    string
	Items   []model.OrderItem
	Total   float64
	Dest    *model.LatLng
	Payment *model.Payment
}

// ValidateDraft checks a draft against the menu snapshot and structural
// constraints. It accumulates every problem found instead of stopping at
// the first, so the caller can report the complete list.
func ValidateDraft(draft OrderDraft, menu []model.MenuItem) []string {
	var problems []string

	if len(draft.Name) < nameMinLen || len(draft.Name) > nameMaxLen {
		problems = append(problems, "Invalid name")
	}
	if len(draft.Phone) < phoneMinLen || !phonePattern.MatchString(draft.Phone) {
		problems = append(problems, "Invalid phone")
	}
	if len(draft.Addr) < addrMinLen || len(draft.Addr) > addrMaxLen {
		problems = append(problems, "Invalid address")
	}
	if len(draft.Items) == 0 {
		problems = append(problems, "Order must contain items")
	}
	if draft.Total <= 0 {
		problems = append(problems, "Invalid total")
	}
	if draft.Payment != nil &&
		draft.Payment.Method != model.PaymentMethodCash &&
		draft.Payment.Method != model.PaymentMethodCard {
		problems = append(problems, "Invalid payment method")
	}

	byID := make(map[string]model.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	var sum float64
	itemsPriced := true
	for _, item := range draft.Items {
		menuItem, ok := byID[item.MenuItemID]
		if !ok {
			problems = append(problems, fmt.Sprintf("Invalid menu item: %s", item.MenuItemID))
			itemsPriced = false
			continue
		}
		// Exact match against the menu's authoritative price, no tolerance.
		if item.UnitPrice != menuItem.Price {
			problems = append(problems, fmt.Sprintf("Price mismatch for: %s", item.MenuItemID))
			itemsPriced = false
			continue
		}
		if item.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("Invalid quantity for: %s", item.MenuItemID))
			itemsPriced = false
			continue
		}
		sum += float64(item.Quantity) * item.UnitPrice
	}

	if itemsPriced && draft.Total > 0 && len(draft.Items) > 0 && !totalsMatch(draft.Total, sum) {
		problems = append(problems, "Total does not match item prices")
	}

	return problems
}

func totalsMatch(total, sum float64) bool {
	return math.Abs(total-sum) < 1e-9
}
