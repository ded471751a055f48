package models

import (
	"time"

	"boothmarket-backend/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a restock request raised by booth staff and resolved by the
// admin. Immutable once created except for Status.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BoothID   uuid.UUID `gorm:"type:uuid;index;not null" json:"booth_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Notes     string    `json:"notes"`
	Status    string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return
}

func (o *Order) Validate() error {
	if o.BoothID == uuid.Nil || o.ProductID == uuid.Nil {
		return apperr.Invalid("order must reference a booth and a product")
	}
	if o.Quantity <= 0 {
		return apperr.Invalid("quantity must be positive")
	}
	if !ValidOrderStatus(o.Status) {
		return apperr.Invalid("unknown order status " + o.Status)
	}
	return nil
}

func ValidOrderStatus(s string) bool {
	return s == OrderPending || s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo enforces the only legal status change:
// pending -> completed|cancelled. Terminal states never move again.
func (o *Order) CanTransitionTo(status string) bool {
	if o.Status != OrderPending {
		return false
	}
	return status == OrderCompleted || status == OrderCancelled
}
