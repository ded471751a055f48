// Package notifications derives badge counts and per-booth notification
// lists from raw rows. Everything here is a pure fold over current state:
// counts are never persisted, always recomputed.
package notifications

import (
	"sort"

	"boothmarket-backend/models"

	"github.com/google/uuid"
)

// PendingOrderCounts counts orders with status pending, grouped by booth.
// Non-pending orders never contribute.
func PendingOrderCounts(orders []models.Order) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, o := range orders {
		if o.Status == models.OrderPending {
			counts[o.BoothID]++
		}
	}
	return counts
}

// OutOfStockCounts counts out-of-stock products, grouped by booth.
func OutOfStockCounts(products []models.Product) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, p := range products {
		if p.IsOutOfStock {
			counts[p.BoothID]++
		}
	}
	return counts
}

// AdminBadges sums pending orders and out-of-stock products per booth. A
// booth with nothing outstanding has no entry at all: zero is never shown.
func AdminBadges(orders []models.Order, products []models.Product) map[uuid.UUID]int {
	badges := PendingOrderCounts(orders)
	for boothID, n := range OutOfStockCounts(products) {
		badges[boothID] += n
	}
	return badges
}

// Item kinds in a booth's notification list.
const (
	KindMessage    = "message"
	KindOrder      = "order"
	KindOutOfStock = "out_of_stock"
)

// Item is one entry in the staff/detail notification list.
type Item struct {
	Kind      string     `json:"kind"`
	MessageID *uuid.UUID `json:"message_id,omitempty"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Broadcast bool       `json:"broadcast,omitempty"`
	Text      string     `json:"text"`
}

// ForBooth builds the notification list for one booth: unread messages
// visible to it (targeted or broadcast) newest first, then pending orders,
// then out-of-stock products.
func ForBooth(boothID uuid.UUID, messages []models.Message, orders []models.Order, products []models.Product) []Item {
	var items []Item

	unread := make([]models.Message, 0)
	for _, m := range messages {
		if !m.IsRead && m.VisibleTo(boothID) {
			unread = append(unread, m)
		}
	}
	sort.SliceStable(unread, func(i, j int) bool {
		return unread[i].CreatedAt.After(unread[j].CreatedAt)
	})
	for _, m := range unread {
		id := m.ID
		items = append(items, Item{
			Kind:      KindMessage,
			MessageID: &id,
			Broadcast: m.Broadcast(),
			Text:      m.Message,
		})
	}

	for _, o := range orders {
		if o.Status == models.OrderPending && o.BoothID == boothID {
			id := o.ID
			productID := o.ProductID
			items = append(items, Item{
				Kind:      KindOrder,
				OrderID:   &id,
				ProductID: &productID,
				Text:      o.Notes,
			})
		}
	}

	for _, p := range products {
		if p.IsOutOfStock && p.BoothID == boothID {
			id := p.ID
			items = append(items, Item{
				Kind:      KindOutOfStock,
				ProductID: &id,
				Text:      p.Name,
			})
		}
	}

	return items
}
