package views

import (
	"log"
	"sync"

	"boothmarket-backend/models"
	"boothmarket-backend/notifications"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

// AdminView is the administrator's projection: every booth plus the raw
// orders and products the per-booth notification badges are derived from.
type AdminView struct {
	store store.Store

	mu       sync.Mutex
	closed   bool
	loading  bool
	booths   []models.Booth
	orders   []models.Order
	products []models.Product

	unsubs []func()
}

// NewAdminView opens the projection: change-feed subscriptions first, then
// the initial load of all three slices in the background. Loading() reports
// true until every slice has resolved, success or not.
func NewAdminView(st store.Store) *AdminView {
	v := &AdminView{store: st, loading: true}

	feed := st.Feed()
	v.unsubs = append(v.unsubs,
		feed.Subscribe(store.TableBooths, store.Filter{}, func(store.Event) { v.reloadBooths() }),
		feed.Subscribe(store.TableOrders, store.Filter{}, func(store.Event) { v.reloadOrders() }),
		feed.Subscribe(store.TableProducts, store.Filter{}, func(store.Event) { v.reloadProducts() }),
	)

	go v.initialLoad()
	return v
}

func (v *AdminView) initialLoad() {
	var wg sync.WaitGroup
	for _, load := range []func(){v.reloadBooths, v.reloadOrders, v.reloadProducts} {
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

// Each reload fetches the authoritative slice, then swaps it in unless the
// view has closed. A failed fetch logs and leaves the previous slice; it
// never wedges the loading flag.

func (v *AdminView) reloadBooths() {
	booths, err := v.store.ListBooths()
	if err != nil {
		log.Printf("admin view: error loading booths: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.booths = booths
	}
	v.mu.Unlock()
}

func (v *AdminView) reloadOrders() {
	orders, err := v.store.ListAllOrders()
	if err != nil {
		log.Printf("admin view: error loading orders: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.orders = orders
	}
	v.mu.Unlock()
}

func (v *AdminView) reloadProducts() {
	products, err := v.store.ListAllProducts()
	if err != nil {
		log.Printf("admin view: error loading products: %v", err)
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.products = products
	}
	v.mu.Unlock()
}

// ---- snapshot accessors ----

func (v *AdminView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *AdminView) Booths() []models.Booth {
	v.mu.Lock()
	defer v.mu.Unlock()
	booths := make([]models.Booth, len(v.booths))
	copy(booths, v.booths)
	return booths
}

func (v *AdminView) PendingOrders() []models.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	pending := make([]models.Order, 0)
	for _, o := range v.orders {
		if o.Status == models.OrderPending {
			pending = append(pending, o)
		}
	}
	return pending
}

// Badges derives the per-booth notification count from the current orders
// and products. Booths with nothing outstanding have no entry.
func (v *AdminView) Badges() map[uuid.UUID]int {
	v.mu.Lock()
	orders := v.orders
	products := v.products
	v.mu.Unlock()
	return notifications.AdminBadges(orders, products)
}

// ---- mutations: write through the store, reload on success ----

func (v *AdminView) CreateBooth(number, name, description string) (*models.Booth, error) {
	booth := &models.Booth{BoothNumber: number, BoothName: name, Description: description}
	if err := v.store.CreateBooth(booth); err != nil {
		return nil, err
	}
	v.reloadBooths()
	return booth, nil
}

func (v *AdminView) UpdateBooth(id uuid.UUID, number, name, description string) error {
	booth := &models.Booth{ID: id, BoothNumber: number, BoothName: name, Description: description}
	if err := v.store.UpdateBooth(booth); err != nil {
		return err
	}
	v.reloadBooths()
	return nil
}

// DeleteBooth requires the confirmation gate: a declined confirmation
// performs no store access at all.
func (v *AdminView) DeleteBooth(id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := v.store.DeleteBooth(id); err != nil {
		return err
	}
	v.reloadBooths()
	v.reloadProducts()
	v.reloadOrders()
	return nil
}

func (v *AdminView) AssignStaff(boothID uuid.UUID, staffID *uuid.UUID) error {
	if err := v.store.AssignStaff(boothID, staffID); err != nil {
		return err
	}
	v.reloadBooths()
	return nil
}

func (v *AdminView) CreateProduct(boothID uuid.UUID, name string, price float64) (*models.Product, error) {
	product := &models.Product{BoothID: boothID, Name: name, Price: price}
	if err := v.store.CreateProduct(product); err != nil {
		return nil, err
	}
	v.reloadProducts()
	return product, nil
}

func (v *AdminView) UpdateProduct(p *models.Product) error {
	if err := v.store.UpdateProduct(p); err != nil {
		return err
	}
	v.reloadProducts()
	return nil
}

func (v *AdminView) DeleteProduct(id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := v.store.DeleteProduct(id); err != nil {
		return err
	}
	v.reloadProducts()
	return nil
}

// ResolveOrder moves a pending restock order to completed or cancelled.
func (v *AdminView) ResolveOrder(id uuid.UUID, status string) error {
	if err := v.store.UpdateOrderStatus(id, status); err != nil {
		return err
	}
	v.reloadOrders()
	return nil
}

// SendMessage targets one booth, or every booth when boothID is nil.
func (v *AdminView) SendMessage(from uuid.UUID, boothID *uuid.UUID, text string) error {
	message := &models.Message{FromUserID: from, ToBoothID: boothID, Message: text}
	return v.store.CreateMessage(message)
}

// Close tears down all subscriptions and flips the liveness flag so any
// in-flight reload cannot touch state afterwards.
func (v *AdminView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	for _, unsub := range v.unsubs {
		unsub()
	}
}
