package store

import (
	"sort"
	"sync"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"
	"boothmarket-backend/utils"

	"github.com/google/uuid"
)

// Fake is the in-memory Store used by tests. It mirrors the gorm
// implementation's behavior, including feed publication and the idempotent
// profile insert. FailWith forces the named operation to return an error,
// for partial-failure tests.
type Fake struct {
	mu       sync.Mutex
	feed     *Feed
	booths   map[uuid.UUID]models.Booth
	products map[uuid.UUID]models.Product
	orders   map[uuid.UUID]models.Order
	messages map[uuid.UUID]models.Message
	accounts map[uuid.UUID]models.Account
	profiles map[uuid.UUID]models.Profile
	failures map[string]error
}

func NewFake() *Fake {
	return &Fake{
		feed:     NewFeed(),
		booths:   make(map[uuid.UUID]models.Booth),
		products: make(map[uuid.UUID]models.Product),
		orders:   make(map[uuid.UUID]models.Order),
		messages: make(map[uuid.UUID]models.Message),
		accounts: make(map[uuid.UUID]models.Account),
		profiles: make(map[uuid.UUID]models.Profile),
		failures: make(map[string]error),
	}
}

func (s *Fake) Feed() *Feed { return s.feed }

// FailWith makes the named operation (e.g. "ListProducts") fail until
// cleared with a nil err.
func (s *Fake) FailWith(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Fake) failure(op string) error {
	return s.failures[op]
}

// ---- Booths ----

func (s *Fake) ListBooths() ([]models.Booth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListBooths"); err != nil {
		return nil, err
	}
	booths := make([]models.Booth, 0, len(s.booths))
	for _, b := range s.booths {
		booths = append(booths, b)
	}
	sort.Slice(booths, func(i, j int) bool { return booths[i].BoothNumber < booths[j].BoothNumber })
	return booths, nil
}

func (s *Fake) GetBooth(id uuid.UUID) (*models.Booth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetBooth"); err != nil {
		return nil, err
	}
	b, ok := s.booths[id]
	if !ok {
		return nil, apperr.NotFound("booth")
	}
	return &b, nil
}

func (s *Fake) GetBoothByStaff(staffID uuid.UUID) (*models.Booth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetBoothByStaff"); err != nil {
		return nil, err
	}
	for _, b := range s.booths {
		if b.StaffID != nil && *b.StaffID == staffID {
			booth := b
			return &booth, nil
		}
	}
	return nil, nil
}

func (s *Fake) CreateBooth(b *models.Booth) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.failure("CreateBooth"); err != nil {
		s.mu.Unlock()
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.booths[b.ID] = *b
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableBooths, Action: ActionInsert, BoothID: b.ID})
	return nil
}

func (s *Fake) UpdateBooth(b *models.Booth) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	existing, ok := s.booths[b.ID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("booth")
	}
	existing.BoothNumber = b.BoothNumber
	existing.BoothName = b.BoothName
	existing.Description = b.Description
	s.booths[b.ID] = existing
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableBooths, Action: ActionUpdate, BoothID: b.ID})
	return nil
}

func (s *Fake) DeleteBooth(id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.booths[id]; !ok {
		s.mu.Unlock()
		return apperr.NotFound("booth")
	}
	delete(s.booths, id)
	for pid, p := range s.products {
		if p.BoothID == id {
			delete(s.products, pid)
		}
	}
	for oid, o := range s.orders {
		if o.BoothID == id {
			delete(s.orders, oid)
		}
	}
	for mid, m := range s.messages {
		if m.ToBoothID != nil && *m.ToBoothID == id {
			delete(s.messages, mid)
		}
	}
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableBooths, Action: ActionDelete, BoothID: id})
	return nil
}

func (s *Fake) AssignStaff(boothID uuid.UUID, staffID *uuid.UUID) error {
	s.mu.Lock()
	b, ok := s.booths[boothID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("booth")
	}
	b.StaffID = staffID
	s.booths[boothID] = b
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableBooths, Action: ActionUpdate, BoothID: boothID})
	return nil
}

// ---- Products ----

func (s *Fake) ListProducts(boothID uuid.UUID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListProducts"); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0)
	for _, p := range s.products {
		if p.BoothID == boothID {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *Fake) ListAllProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListAllProducts"); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *Fake) GetProduct(id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	return &p, nil
}

func (s *Fake) CreateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.failure("CreateProduct"); err != nil {
		s.mu.Unlock()
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = *p
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableProducts, Action: ActionInsert, BoothID: p.BoothID})
	return nil
}

func (s *Fake) UpdateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	existing, ok := s.products[p.ID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("product")
	}
	existing.Name = p.Name
	existing.Price = p.Price
	existing.IsOutOfStock = p.IsOutOfStock
	s.products[p.ID] = existing
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableProducts, Action: ActionUpdate, BoothID: existing.BoothID})
	return nil
}

func (s *Fake) DeleteProduct(id uuid.UUID) error {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("product")
	}
	delete(s.products, id)
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableProducts, Action: ActionDelete, BoothID: p.BoothID})
	return nil
}

func (s *Fake) SetOutOfStock(id uuid.UUID, out bool) error {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("product")
	}
	p.IsOutOfStock = out
	s.products[id] = p
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableProducts, Action: ActionUpdate, BoothID: p.BoothID})
	return nil
}

// ---- Orders ----

func (s *Fake) ListOrders(boothID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListOrders"); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.BoothID == boothID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Fake) ListAllOrders() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListAllOrders"); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Fake) CreateOrder(o *models.Order) error {
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	if err := o.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.orders[o.ID] = *o
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableOrders, Action: ActionInsert, BoothID: o.BoothID})
	return nil
}

func (s *Fake) UpdateOrderStatus(id uuid.UUID, status string) error {
	if !models.ValidOrderStatus(status) {
		return apperr.Invalid("unknown order status " + status)
	}
	s.mu.Lock()
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("order")
	}
	if !o.CanTransitionTo(status) {
		s.mu.Unlock()
		return apperr.Invalid("order is " + o.Status + ", cannot become " + status)
	}
	o.Status = status
	s.orders[id] = o
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableOrders, Action: ActionUpdate, BoothID: o.BoothID})
	return nil
}

// ---- Messages ----

func (s *Fake) ListMessagesForBooth(boothID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListMessagesForBooth"); err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.VisibleTo(boothID) {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (s *Fake) ListAllMessages() ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (s *Fake) CreateMessage(m *models.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.messages[m.ID] = *m
	s.mu.Unlock()
	boothID := uuid.Nil
	if m.ToBoothID != nil {
		boothID = *m.ToBoothID
	}
	s.feed.Publish(Event{Table: TableMessages, Action: ActionInsert, BoothID: boothID})
	return nil
}

func (s *Fake) MarkMessageRead(id uuid.UUID) error {
	s.mu.Lock()
	m, ok := s.messages[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("message")
	}
	m.IsRead = true
	s.messages[id] = m
	s.mu.Unlock()
	boothID := uuid.Nil
	if m.ToBoothID != nil {
		boothID = *m.ToBoothID
	}
	s.feed.Publish(Event{Table: TableMessages, Action: ActionUpdate, BoothID: boothID})
	return nil
}

// ---- Accounts and profiles ----

func (s *Fake) CreateAccount(a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return apperr.Conflict("email already registered")
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	// Mirror the gorm BeforeCreate hook.
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	s.accounts[a.ID] = *a
	return nil
}

func (s *Fake) GetAccountByEmail(email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			account := a
			return &account, nil
		}
	}
	return nil, apperr.NotFound("account")
}

func (s *Fake) GetAccount(id uuid.UUID) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, apperr.NotFound("account")
	}
	return &a, nil
}

func (s *Fake) GetProfile(id uuid.UUID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetProfile"); err != nil {
		return nil, err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperr.NotFound("profile")
	}
	return &p, nil
}

func (s *Fake) EnsureProfile(p *models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if _, exists := s.profiles[p.ID]; !exists {
		s.profiles[p.ID] = *p
	}
	s.mu.Unlock()
	s.feed.Publish(Event{Table: TableProfiles, Action: ActionInsert})
	return nil
}

func (s *Fake) ListStaffProfiles() ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]models.Profile, 0)
	for _, p := range s.profiles {
		if p.Role == models.RoleBoothStaff {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].FullName < profiles[j].FullName })
	return profiles, nil
}

// ProfileCount reports how many profile rows exist, for idempotence tests.
func (s *Fake) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

var _ Store = (*Fake)(nil)
