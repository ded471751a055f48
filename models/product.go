package models

import (
	"strings"
	"time"

	"boothmarket-backend/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BoothID      uuid.UUID `gorm:"type:uuid;index;not null" json:"booth_id"`
	Name         string    `gorm:"not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsOutOfStock bool      `gorm:"default:false" json:"is_out_of_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Product) Validate() error {
	if p.BoothID == uuid.Nil {
		return apperr.Invalid("product must belong to a booth")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Invalid("product name is required")
	}
	if p.Price < 0 {
		return apperr.Invalid("price cannot be negative")
	}
	return nil
}
