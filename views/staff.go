package views

import (
	"log"
	"sync"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"
	"boothmarket-backend/notifications"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

// BoothStaffView is the projection for one staff account: the booth
// assigned to it (if any), that booth's products, and the messages visible
// to it. "No booth assigned" is a terminal state the dashboard renders
// explicitly; it is neither loading nor an error.
type BoothStaffView struct {
	store   store.Store
	staffID uuid.UUID

	mu         sync.Mutex
	closed     bool
	loading    bool
	booth      *models.Booth
	unassigned bool
	products   []models.Product
	orders     []models.Order
	messages   []models.Message

	// boothKey is the stable identifier the scoped subscriptions are keyed
	// on. Re-subscription happens only when it changes, never on unrelated
	// state updates.
	boothKey    uuid.UUID
	boothUnsub  func()
	scopedUnsub []func()
}

func NewBoothStaffView(st store.Store, staffID uuid.UUID) *BoothStaffView {
	v := &BoothStaffView{store: st, staffID: staffID, loading: true}

	// Watch the booths table unfiltered so a late assignment (or an
	// unassignment) re-resolves "my booth".
	v.boothUnsub = st.Feed().Subscribe(store.TableBooths, store.Filter{}, func(store.Event) {
		v.resolveBooth()
	})

	go func() {
		v.resolveBooth()
		v.mu.Lock()
		if !v.closed {
			v.loading = false
		}
		v.mu.Unlock()
	}()
	return v
}

// resolveBooth matches the staff account against Booth.StaffID and re-keys
// the booth-scoped subscriptions when the assignment changed.
func (v *BoothStaffView) resolveBooth() {
	booth, err := v.store.GetBoothByStaff(v.staffID)
	if err != nil {
		log.Printf("staff view: error loading booth: %v", err)
		return
	}

	key := uuid.Nil
	if booth != nil {
		key = booth.ID
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.booth = booth
	v.unassigned = booth == nil
	rekeyed := key != v.boothKey
	v.boothKey = key
	var stale []func()
	if rekeyed {
		stale = v.scopedUnsub
		v.scopedUnsub = nil
		if booth == nil {
			v.products = nil
			v.orders = nil
			v.messages = nil
		}
	}
	v.mu.Unlock()

	for _, unsub := range stale {
		unsub()
	}
	if rekeyed && booth != nil {
		v.subscribeScoped(key)
	}
	if booth != nil {
		v.reloadProducts(key)
		v.reloadOrders(key)
		v.reloadMessages(key)
	}
}

func (v *BoothStaffView) subscribeScoped(boothID uuid.UUID) {
	feed := v.store.Feed()
	filter := store.Filter{BoothID: boothID}
	subs := []func(){
		feed.Subscribe(store.TableProducts, filter, func(store.Event) { v.reloadProducts(boothID) }),
		feed.Subscribe(store.TableOrders, filter, func(store.Event) { v.reloadOrders(boothID) }),
		feed.Subscribe(store.TableMessages, filter, func(store.Event) { v.reloadMessages(boothID) }),
	}

	v.mu.Lock()
	if v.closed || v.boothKey != boothID {
		// Lost a race with Close or another re-key; drop these.
		v.mu.Unlock()
		for _, unsub := range subs {
			unsub()
		}
		return
	}
	v.scopedUnsub = append(v.scopedUnsub, subs...)
	v.mu.Unlock()
}

func (v *BoothStaffView) reloadProducts(boothID uuid.UUID) {
	products, err := v.store.ListProducts(boothID)
	if err != nil {
		log.Printf("staff view: error loading products: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed && v.boothKey == boothID {
		v.products = products
	}
	v.mu.Unlock()
}

func (v *BoothStaffView) reloadOrders(boothID uuid.UUID) {
	orders, err := v.store.ListOrders(boothID)
	if err != nil {
		log.Printf("staff view: error loading orders: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed && v.boothKey == boothID {
		v.orders = orders
	}
	v.mu.Unlock()
}

func (v *BoothStaffView) reloadMessages(boothID uuid.UUID) {
	messages, err := v.store.ListMessagesForBooth(boothID)
	if err != nil {
		log.Printf("staff view: error loading messages: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed && v.boothKey == boothID {
		v.messages = messages
	}
	v.mu.Unlock()
}

// ---- snapshot accessors ----

func (v *BoothStaffView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Unassigned reports the terminal "no booth for this account" state.
func (v *BoothStaffView) Unassigned() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unassigned
}

func (v *BoothStaffView) Booth() *models.Booth {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.booth
}

func (v *BoothStaffView) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	products := make([]models.Product, len(v.products))
	copy(products, v.products)
	return products
}

func (v *BoothStaffView) Messages() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	messages := make([]models.Message, len(v.messages))
	copy(messages, v.messages)
	return messages
}

// Notifications folds the current slices into the booth's notification
// list: unread messages newest first, then pending orders, then
// out-of-stock products.
func (v *BoothStaffView) Notifications() []notifications.Item {
	v.mu.Lock()
	booth := v.booth
	messages := v.messages
	orders := v.orders
	products := v.products
	v.mu.Unlock()
	if booth == nil {
		return nil
	}
	return notifications.ForBooth(booth.ID, messages, orders, products)
}

// ---- mutations ----

func (v *BoothStaffView) ToggleOutOfStock(productID uuid.UUID) error {
	product, err := v.store.GetProduct(productID)
	if err != nil {
		return err
	}
	if err := v.store.SetOutOfStock(productID, !product.IsOutOfStock); err != nil {
		return err
	}
	v.mu.Lock()
	key := v.boothKey
	v.mu.Unlock()
	if key != uuid.Nil {
		v.reloadProducts(key)
	}
	return nil
}

func (v *BoothStaffView) MarkMessageRead(messageID uuid.UUID) error {
	if err := v.store.MarkMessageRead(messageID); err != nil {
		return err
	}
	v.mu.Lock()
	key := v.boothKey
	v.mu.Unlock()
	if key != uuid.Nil {
		v.reloadMessages(key)
	}
	return nil
}

// CreateOrder raises a restock request for a product in the staff's booth.
func (v *BoothStaffView) CreateOrder(productID uuid.UUID, quantity int, notes string) (*models.Order, error) {
	v.mu.Lock()
	booth := v.booth
	v.mu.Unlock()
	if booth == nil {
		return nil, apperr.Invalid("no booth assigned")
	}
	order := &models.Order{
		BoothID:   booth.ID,
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
		CreatedBy: v.staffID,
	}
	if err := v.store.CreateOrder(order); err != nil {
		return nil, err
	}
	v.reloadOrders(booth.ID)
	return order, nil
}

func (v *BoothStaffView) Close() {
	v.mu.Lock()
	v.closed = true
	scoped := v.scopedUnsub
	v.scopedUnsub = nil
	v.mu.Unlock()
	if v.boothUnsub != nil {
		v.boothUnsub()
	}
	for _, unsub := range scoped {
		unsub()
	}
}
