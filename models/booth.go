package models

import (
	"strings"
	"time"

	"boothmarket-backend/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booth struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BoothNumber string     `gorm:"uniqueIndex;not null" json:"booth_number"`
	BoothName   string     `gorm:"not null" json:"booth_name"`
	Description string     `json:"description"`
	StaffID     *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"staff_id"`

	Products []Product `gorm:"foreignKey:BoothID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booth) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

func (b *Booth) Validate() error {
	if strings.TrimSpace(b.BoothNumber) == "" {
		return apperr.Invalid("booth number is required")
	}
	if strings.TrimSpace(b.BoothName) == "" {
		return apperr.Invalid("booth name is required")
	}
	return nil
}
