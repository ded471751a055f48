package store

import (
	"sync"

	"github.com/google/uuid"
)

// Watched table names. Feed events and subscriptions use these keys.
const (
	TableBooths   = "booths"
	TableProducts = "products"
	TableOrders   = "orders"
	TableMessages = "messages"
	TableProfiles = "profiles"
)

type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionSync is published by the reconciliation sweep; views treat it
	// like any other trigger and refetch authoritative state.
	ActionSync Action = "sync"
)

// Event announces a row-level change on a watched table. BoothID is the
// booth the row belongs to, or uuid.Nil when the change is not scoped to a
// single booth (a broadcast message, a profile row, a sync sweep).
type Event struct {
	Table   string
	Action  Action
	BoothID uuid.UUID
}

// Filter narrows a subscription to one booth. The zero Filter matches
// every event on the table.
type Filter struct {
	BoothID uuid.UUID
}

func (f Filter) matches(e Event) bool {
	if f.BoothID == uuid.Nil {
		return true
	}
	// Unscoped events (broadcasts, sweeps) reach every subscriber.
	return e.BoothID == uuid.Nil || e.BoothID == f.BoothID
}

type Handler func(Event)

type subscription struct {
	table   string
	filter  Filter
	handler Handler
}

// Feed is the in-process change-notification bus. Every successful store
// mutation publishes one event; views subscribe per table and reload.
// Delivery is synchronous, at-least-once from the subscriber's point of
// view, and carries no row data: an event is a trigger, never a diff.
type Feed struct {
	mu   sync.Mutex
	next int
	subs map[int]subscription
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]subscription)}
}

// Subscribe registers a handler for events on one table and returns an
// unsubscribe func. Unsubscribing twice is harmless.
func (f *Feed) Subscribe(table string, filter Filter, fn Handler) (unsub func()) {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = subscription{table: table, filter: filter, handler: fn}
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish delivers the event to every matching subscriber. Handlers run
// outside the feed lock so they may query the store or resubscribe.
func (f *Feed) Publish(e Event) {
	f.mu.Lock()
	matched := make([]Handler, 0, len(f.subs))
	for _, sub := range f.subs {
		if sub.table == e.Table && sub.filter.matches(e) {
			matched = append(matched, sub.handler)
		}
	}
	f.mu.Unlock()

	for _, h := range matched {
		h(e)
	}
}

// SubscriberCount is used by tests and the resync sweep's logging.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
