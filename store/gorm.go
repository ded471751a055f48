package store

import (
	"errors"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db   *gorm.DB
	feed *Feed
}

// New wraps a gorm handle in the Store interface with a fresh change feed.
func New(db *gorm.DB) Store {
	return &gormStore{db: db, feed: NewFeed()}
}

func (s *gormStore) Feed() *Feed { return s.feed }

func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(op)
	default:
		return apperr.Store(op, err)
	}
}

// ---- Booths ----

func (s *gormStore) ListBooths() ([]models.Booth, error) {
	var booths []models.Booth
	if err := s.db.Order("booth_number").Find(&booths).Error; err != nil {
		return nil, mapErr("list booths", err)
	}
	return booths, nil
}

func (s *gormStore) GetBooth(id uuid.UUID) (*models.Booth, error) {
	var booth models.Booth
	if err := s.db.First(&booth, "id = ?", id).Error; err != nil {
		return nil, mapErr("get booth", err)
	}
	return &booth, nil
}

func (s *gormStore) GetBoothByStaff(staffID uuid.UUID) (*models.Booth, error) {
	var booth models.Booth
	err := s.db.First(&booth, "staff_id = ?", staffID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // unassigned, not an error
	}
	if err != nil {
		return nil, mapErr("get booth by staff", err)
	}
	return &booth, nil
}

func (s *gormStore) CreateBooth(b *models.Booth) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(b).Error; err != nil {
		return mapErr("create booth", err)
	}
	s.feed.Publish(Event{Table: TableBooths, Action: ActionInsert, BoothID: b.ID})
	return nil
}

func (s *gormStore) UpdateBooth(b *models.Booth) error {
	if err := b.Validate(); err != nil {
		return err
	}
	res := s.db.Model(&models.Booth{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"booth_number": b.BoothNumber,
		"booth_name":   b.BoothName,
		"description":  b.Description,
	})
	if res.Error != nil {
		return mapErr("update booth", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("booth")
	}
	s.feed.Publish(Event{Table: TableBooths, Action: ActionUpdate, BoothID: b.ID})
	return nil
}

// DeleteBooth removes the booth together with its products, orders and
// targeted messages in one transaction, so no row is left orphaned.
func (s *gormStore) DeleteBooth(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booth_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booth_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("to_booth_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Booth{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return mapErr("delete booth", err)
	}
	s.feed.Publish(Event{Table: TableBooths, Action: ActionDelete, BoothID: id})
	return nil
}

func (s *gormStore) AssignStaff(boothID uuid.UUID, staffID *uuid.UUID) error {
	res := s.db.Model(&models.Booth{}).Where("id = ?", boothID).Update("staff_id", staffID)
	if res.Error != nil {
		return mapErr("assign staff", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("booth")
	}
	s.feed.Publish(Event{Table: TableBooths, Action: ActionUpdate, BoothID: boothID})
	return nil
}

// ---- Products ----

func (s *gormStore) ListProducts(boothID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("booth_id = ?", boothID).Order("name").Find(&products).Error; err != nil {
		return nil, mapErr("list products", err)
	}
	return products, nil
}

func (s *gormStore) ListAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name").Find(&products).Error; err != nil {
		return nil, mapErr("list all products", err)
	}
	return products, nil
}

func (s *gormStore) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, mapErr("get product", err)
	}
	return &product, nil
}

func (s *gormStore) CreateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(p).Error; err != nil {
		return mapErr("create product", err)
	}
	s.feed.Publish(Event{Table: TableProducts, Action: ActionInsert, BoothID: p.BoothID})
	return nil
}

func (s *gormStore) UpdateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	res := s.db.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":            p.Name,
		"price":           p.Price,
		"is_out_of_stock": p.IsOutOfStock,
	})
	if res.Error != nil {
		return mapErr("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product")
	}
	s.feed.Publish(Event{Table: TableProducts, Action: ActionUpdate, BoothID: p.BoothID})
	return nil
}

func (s *gormStore) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return mapErr("delete product", err)
	}
	s.feed.Publish(Event{Table: TableProducts, Action: ActionDelete, BoothID: product.BoothID})
	return nil
}

func (s *gormStore) SetOutOfStock(id uuid.UUID, out bool) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	if err := s.db.Model(product).Update("is_out_of_stock", out).Error; err != nil {
		return mapErr("set out of stock", err)
	}
	s.feed.Publish(Event{Table: TableProducts, Action: ActionUpdate, BoothID: product.BoothID})
	return nil
}

// ---- Orders ----

func (s *gormStore) ListOrders(boothID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("booth_id = ?", boothID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, mapErr("list orders", err)
	}
	return orders, nil
}

func (s *gormStore) ListAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, mapErr("list all orders", err)
	}
	return orders, nil
}

func (s *gormStore) CreateOrder(o *models.Order) error {
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(o).Error; err != nil {
		return mapErr("create order", err)
	}
	s.feed.Publish(Event{Table: TableOrders, Action: ActionInsert, BoothID: o.BoothID})
	return nil
}

func (s *gormStore) UpdateOrderStatus(id uuid.UUID, status string) error {
	if !models.ValidOrderStatus(status) {
		return apperr.Invalid("unknown order status " + status)
	}
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return mapErr("get order", err)
	}
	if !order.CanTransitionTo(status) {
		return apperr.Invalid("order is " + order.Status + ", cannot become " + status)
	}
	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return mapErr("update order status", err)
	}
	s.feed.Publish(Event{Table: TableOrders, Action: ActionUpdate, BoothID: order.BoothID})
	return nil
}

// ---- Messages ----

func (s *gormStore) ListMessagesForBooth(boothID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("to_booth_id = ? OR to_booth_id IS NULL", boothID).
		Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, mapErr("list messages", err)
	}
	return messages, nil
}

func (s *gormStore) ListAllMessages() ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, mapErr("list all messages", err)
	}
	return messages, nil
}

func (s *gormStore) CreateMessage(m *models.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(m).Error; err != nil {
		return mapErr("create message", err)
	}
	boothID := uuid.Nil // broadcast reaches every subscriber
	if m.ToBoothID != nil {
		boothID = *m.ToBoothID
	}
	s.feed.Publish(Event{Table: TableMessages, Action: ActionInsert, BoothID: boothID})
	return nil
}

func (s *gormStore) MarkMessageRead(id uuid.UUID) error {
	var message models.Message
	if err := s.db.First(&message, "id = ?", id).Error; err != nil {
		return mapErr("get message", err)
	}
	if err := s.db.Model(&message).Update("is_read", true).Error; err != nil {
		return mapErr("mark message read", err)
	}
	boothID := uuid.Nil
	if message.ToBoothID != nil {
		boothID = *message.ToBoothID
	}
	s.feed.Publish(Event{Table: TableMessages, Action: ActionUpdate, BoothID: boothID})
	return nil
}

// ---- Accounts and profiles ----

func (s *gormStore) CreateAccount(a *models.Account) error {
	if err := s.db.Create(a).Error; err != nil {
		return mapErr("create account", err)
	}
	return nil
}

func (s *gormStore) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "email = ?", email).Error; err != nil {
		return nil, mapErr("get account by email", err)
	}
	return &account, nil
}

func (s *gormStore) GetAccount(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		return nil, mapErr("get account", err)
	}
	return &account, nil
}

func (s *gormStore) GetProfile(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, mapErr("get profile", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureProfile inserts the profile unless a row with the same id already
// exists. The store may also create profiles via a trigger; either way a
// second insert must not duplicate or corrupt, so conflicts are ignored.
func (s *gormStore) EnsureProfile(p *models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error
	if err != nil {
		return mapErr("ensure profile", err)
	}
	s.feed.Publish(Event{Table: TableProfiles, Action: ActionInsert})
	return nil
}

func (s *gormStore) ListStaffProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.Where("role = ?", models.RoleBoothStaff).Order("full_name").Find(&profiles).Error
	if err != nil {
		return nil, mapErr("list staff profiles", err)
	}
	return profiles, nil
}
