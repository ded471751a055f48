package views

import (
	"log"
	"sync"

	"boothmarket-backend/models"
	"boothmarket-backend/notifications"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

// BoothDetailView is the admin's drill-down into one booth: the booth row,
// its products, its restock orders, and the messages visible to it. The
// subscriptions are keyed on the boothID the view was opened with, which
// never changes for the view's lifetime.
type BoothDetailView struct {
	store   store.Store
	boothID uuid.UUID

	mu       sync.Mutex
	closed   bool
	loading  bool
	missing  bool
	booth    *models.Booth
	products []models.Product
	orders   []models.Order
	messages []models.Message

	unsubs []func()
}

func NewBoothDetailView(st store.Store, boothID uuid.UUID) *BoothDetailView {
	v := &BoothDetailView{store: st, boothID: boothID, loading: true}

	feed := st.Feed()
	filter := store.Filter{BoothID: boothID}
	v.unsubs = append(v.unsubs,
		feed.Subscribe(store.TableBooths, filter, func(store.Event) { v.reloadBooth() }),
		feed.Subscribe(store.TableProducts, filter, func(store.Event) { v.reloadProducts() }),
		feed.Subscribe(store.TableOrders, filter, func(store.Event) { v.reloadOrders() }),
		feed.Subscribe(store.TableMessages, filter, func(store.Event) { v.reloadMessages() }),
	)

	go v.initialLoad()
	return v
}

func (v *BoothDetailView) initialLoad() {
	var wg sync.WaitGroup
	for _, load := range []func(){v.reloadBooth, v.reloadProducts, v.reloadOrders, v.reloadMessages} {
		wg.Add(1)
		go func(load func()) {
			defer wg.Done()
			load()
		}(load)
	}
	wg.Wait()

	v.mu.Lock()
	if !v.closed {
		v.loading = false
	}
	v.mu.Unlock()
}

func (v *BoothDetailView) reloadBooth() {
	booth, err := v.store.GetBooth(v.boothID)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if err != nil {
		// A deleted booth is a terminal "not found" render, not a crash.
		log.Printf("detail view: error loading booth %s: %v", v.boothID, err)
		v.booth = nil
		v.missing = true
		return
	}
	v.booth = booth
	v.missing = false
}

func (v *BoothDetailView) reloadProducts() {
	products, err := v.store.ListProducts(v.boothID)
	if err != nil {
		log.Printf("detail view: error loading products: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.products = products
	}
	v.mu.Unlock()
}

func (v *BoothDetailView) reloadOrders() {
	orders, err := v.store.ListOrders(v.boothID)
	if err != nil {
		log.Printf("detail view: error loading orders: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.orders = orders
	}
	v.mu.Unlock()
}

func (v *BoothDetailView) reloadMessages() {
	messages, err := v.store.ListMessagesForBooth(v.boothID)
	if err != nil {
		log.Printf("detail view: error loading messages: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.messages = messages
	}
	v.mu.Unlock()
}

// ---- snapshot accessors ----

func (v *BoothDetailView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *BoothDetailView) Missing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.missing
}

func (v *BoothDetailView) Booth() *models.Booth {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.booth
}

func (v *BoothDetailView) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	products := make([]models.Product, len(v.products))
	copy(products, v.products)
	return products
}

func (v *BoothDetailView) Orders() []models.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	orders := make([]models.Order, len(v.orders))
	copy(orders, v.orders)
	return orders
}

func (v *BoothDetailView) Messages() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	messages := make([]models.Message, len(v.messages))
	copy(messages, v.messages)
	return messages
}

func (v *BoothDetailView) Notifications() []notifications.Item {
	v.mu.Lock()
	messages := v.messages
	orders := v.orders
	products := v.products
	v.mu.Unlock()
	return notifications.ForBooth(v.boothID, messages, orders, products)
}

// ---- mutations, scoped to this booth ----

func (v *BoothDetailView) CreateProduct(name string, price float64) (*models.Product, error) {
	product := &models.Product{BoothID: v.boothID, Name: name, Price: price}
	if err := v.store.CreateProduct(product); err != nil {
		return nil, err
	}
	v.reloadProducts()
	return product, nil
}

func (v *BoothDetailView) DeleteProduct(id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := v.store.DeleteProduct(id); err != nil {
		return err
	}
	v.reloadProducts()
	return nil
}

func (v *BoothDetailView) ResolveOrder(id uuid.UUID, status string) error {
	if err := v.store.UpdateOrderStatus(id, status); err != nil {
		return err
	}
	v.reloadOrders()
	return nil
}

func (v *BoothDetailView) SendMessage(from uuid.UUID, text string) error {
	boothID := v.boothID
	message := &models.Message{FromUserID: from, ToBoothID: &boothID, Message: text}
	return v.store.CreateMessage(message)
}

func (v *BoothDetailView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	for _, unsub := range v.unsubs {
		unsub()
	}
}
