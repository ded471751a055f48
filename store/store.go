package store

import (
	"boothmarket-backend/models"

	"github.com/google/uuid"
)

// Store is the entity-store collaborator every view and service receives
// explicitly. The gorm implementation talks to Postgres; tests substitute
// the in-memory fake. Every mutation that succeeds publishes a change
// event on Feed().
type Store interface {
	Feed() *Feed

	// Booths. GetBoothByStaff returns (nil, nil) when the account has no
	// booth: unassigned staff is a valid terminal state, not an error.
	ListBooths() ([]models.Booth, error)
	GetBooth(id uuid.UUID) (*models.Booth, error)
	GetBoothByStaff(staffID uuid.UUID) (*models.Booth, error)
	CreateBooth(b *models.Booth) error
	UpdateBooth(b *models.Booth) error
	DeleteBooth(id uuid.UUID) error
	AssignStaff(boothID uuid.UUID, staffID *uuid.UUID) error

	// Products
	ListProducts(boothID uuid.UUID) ([]models.Product, error)
	ListAllProducts() ([]models.Product, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
	CreateProduct(p *models.Product) error
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uuid.UUID) error
	SetOutOfStock(id uuid.UUID, out bool) error

	// Orders. Status may only move pending -> completed|cancelled.
	ListOrders(boothID uuid.UUID) ([]models.Order, error)
	ListAllOrders() ([]models.Order, error)
	CreateOrder(o *models.Order) error
	UpdateOrderStatus(id uuid.UUID, status string) error

	// Messages. ListMessagesForBooth applies the visibility rule: rows
	// targeted at the booth plus broadcasts, newest first.
	ListMessagesForBooth(boothID uuid.UUID) ([]models.Message, error)
	ListAllMessages() ([]models.Message, error)
	CreateMessage(m *models.Message) error
	MarkMessageRead(id uuid.UUID) error

	// Accounts and profiles. EnsureProfile is idempotent: inserting the
	// same profile id twice leaves exactly one row.
	CreateAccount(a *models.Account) error
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccount(id uuid.UUID) (*models.Account, error)
	GetProfile(id uuid.UUID) (*models.Profile, error)
	EnsureProfile(p *models.Profile) error
	ListStaffProfiles() ([]models.Profile, error)
}
