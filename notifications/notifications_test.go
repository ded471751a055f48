package notifications

import (
	"testing"
	"time"

	"boothmarket-backend/models"

	"github.com/google/uuid"
)

func TestPendingOrderCountsIgnoresResolvedOrders(t *testing.T) {
	boothA := uuid.New()
	boothB := uuid.New()

	orders := []models.Order{
		{ID: uuid.New(), BoothID: boothA, Status: models.OrderPending},
		{ID: uuid.New(), BoothID: boothA, Status: models.OrderCompleted},
		{ID: uuid.New(), BoothID: boothA, Status: models.OrderPending},
		{ID: uuid.New(), BoothID: boothB, Status: models.OrderCancelled},
	}

	counts := PendingOrderCounts(orders)
	if counts[boothA] != 2 {
		t.Errorf("booth A pending count = %d, want 2", counts[boothA])
	}
	if _, ok := counts[boothB]; ok {
		t.Errorf("booth B has no pending orders but got an entry: %d", counts[boothB])
	}
}

func TestAdminBadgesOmitZeroEntries(t *testing.T) {
	boothA := uuid.New()
	boothB := uuid.New()
	boothC := uuid.New()

	orders := []models.Order{
		{ID: uuid.New(), BoothID: boothA, Status: models.OrderPending},
	}
	products := []models.Product{
		{ID: uuid.New(), BoothID: boothA, Name: "Glögg mugg", IsOutOfStock: true},
		{ID: uuid.New(), BoothID: boothB, Name: "Pepparkakor", IsOutOfStock: true},
		{ID: uuid.New(), BoothID: boothC, Name: "Ljus", IsOutOfStock: false},
	}

	badges := AdminBadges(orders, products)
	if badges[boothA] != 2 {
		t.Errorf("booth A badge = %d, want 2", badges[boothA])
	}
	if badges[boothB] != 1 {
		t.Errorf("booth B badge = %d, want 1", badges[boothB])
	}
	if _, ok := badges[boothC]; ok {
		t.Errorf("booth C should have no badge entry")
	}
}

func TestBadgeReturnsAfterToggleRoundTrip(t *testing.T) {
	booth := uuid.New()
	product := models.Product{ID: uuid.New(), BoothID: booth, Name: "Glögg"}

	before := AdminBadges(nil, []models.Product{product})

	product.IsOutOfStock = true
	during := AdminBadges(nil, []models.Product{product})
	if during[booth] != 1 {
		t.Fatalf("badge while out of stock = %d, want 1", during[booth])
	}

	product.IsOutOfStock = false
	after := AdminBadges(nil, []models.Product{product})
	if len(after) != len(before) {
		t.Errorf("badge map after toggle round trip = %v, want %v", after, before)
	}
}

func TestBroadcastVisibleToEveryBooth(t *testing.T) {
	boothA := uuid.New()
	boothB := uuid.New()
	targeted := boothA

	messages := []models.Message{
		{ID: uuid.New(), FromUserID: uuid.New(), Message: "Till alla bodar"},
		{ID: uuid.New(), FromUserID: uuid.New(), ToBoothID: &targeted, Message: "Bara bod A"},
	}

	itemsA := ForBooth(boothA, messages, nil, nil)
	if len(itemsA) != 2 {
		t.Fatalf("booth A sees %d notifications, want 2", len(itemsA))
	}

	itemsB := ForBooth(boothB, messages, nil, nil)
	if len(itemsB) != 1 {
		t.Fatalf("booth B sees %d notifications, want 1", len(itemsB))
	}
	if !itemsB[0].Broadcast {
		t.Errorf("booth B's only notification should be the broadcast")
	}
}

func TestForBoothOrdering(t *testing.T) {
	booth := uuid.New()
	now := time.Now()

	older := models.Message{ID: uuid.New(), FromUserID: uuid.New(), Message: "first", CreatedAt: now.Add(-time.Hour)}
	newer := models.Message{ID: uuid.New(), FromUserID: uuid.New(), Message: "second", CreatedAt: now}
	read := models.Message{ID: uuid.New(), FromUserID: uuid.New(), Message: "seen", IsRead: true, CreatedAt: now}

	orders := []models.Order{
		{ID: uuid.New(), BoothID: booth, ProductID: uuid.New(), Quantity: 3, Status: models.OrderPending},
	}
	products := []models.Product{
		{ID: uuid.New(), BoothID: booth, Name: "Glögg mugg", IsOutOfStock: true},
	}

	items := ForBooth(booth, []models.Message{older, read, newer}, orders, products)
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4 (read message excluded)", len(items))
	}
	if items[0].Kind != KindMessage || items[0].Text != "second" {
		t.Errorf("items[0] = %+v, want newest unread message first", items[0])
	}
	if items[1].Kind != KindMessage || items[1].Text != "first" {
		t.Errorf("items[1] = %+v, want older unread message second", items[1])
	}
	if items[2].Kind != KindOrder {
		t.Errorf("items[2].Kind = %s, want order after messages", items[2].Kind)
	}
	if items[3].Kind != KindOutOfStock {
		t.Errorf("items[3].Kind = %s, want out-of-stock last", items[3].Kind)
	}
}
