package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestFeedDeliversToMatchingTable(t *testing.T) {
	feed := NewFeed()

	var products, orders int
	feed.Subscribe(TableProducts, Filter{}, func(Event) { products++ })
	feed.Subscribe(TableOrders, Filter{}, func(Event) { orders++ })

	feed.Publish(Event{Table: TableProducts, Action: ActionInsert})
	feed.Publish(Event{Table: TableProducts, Action: ActionUpdate})
	feed.Publish(Event{Table: TableOrders, Action: ActionInsert})

	if products != 2 {
		t.Errorf("product events = %d, want 2", products)
	}
	if orders != 1 {
		t.Errorf("order events = %d, want 1", orders)
	}
}

func TestFeedBoothFilter(t *testing.T) {
	feed := NewFeed()
	mine := uuid.New()
	other := uuid.New()

	var got []Event
	feed.Subscribe(TableMessages, Filter{BoothID: mine}, func(e Event) { got = append(got, e) })

	feed.Publish(Event{Table: TableMessages, Action: ActionInsert, BoothID: mine})
	feed.Publish(Event{Table: TableMessages, Action: ActionInsert, BoothID: other})
	// Unscoped events (broadcasts) reach every subscriber.
	feed.Publish(Event{Table: TableMessages, Action: ActionInsert})

	if len(got) != 2 {
		t.Fatalf("delivered %d events, want 2 (scoped + broadcast)", len(got))
	}
	if got[0].BoothID != mine {
		t.Errorf("first event booth = %s, want %s", got[0].BoothID, mine)
	}
	if got[1].BoothID != uuid.Nil {
		t.Errorf("second event should be the unscoped broadcast")
	}
}

func TestFeedUnsubscribe(t *testing.T) {
	feed := NewFeed()

	calls := 0
	unsub := feed.Subscribe(TableBooths, Filter{}, func(Event) { calls++ })

	feed.Publish(Event{Table: TableBooths, Action: ActionInsert})
	unsub()
	unsub() // second call is harmless
	feed.Publish(Event{Table: TableBooths, Action: ActionInsert})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if feed.SubscriberCount() != 0 {
		t.Errorf("subscriber count = %d, want 0", feed.SubscriberCount())
	}
}

func TestFeedHandlerMayResubscribe(t *testing.T) {
	feed := NewFeed()

	feed.Subscribe(TableBooths, Filter{}, func(Event) {
		// Re-entrant use of the feed must not deadlock.
		feed.Subscribe(TableOrders, Filter{}, func(Event) {})
	})
	feed.Publish(Event{Table: TableBooths, Action: ActionSync})

	if feed.SubscriberCount() != 2 {
		t.Errorf("subscriber count = %d, want 2", feed.SubscriberCount())
	}
}
