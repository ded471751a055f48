package models

import (
	"strings"
	"time"

	"boothmarket-backend/apperr"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleBoothStaff = "booth_staff"
)

// Profile pairs one-to-one with an Account and carries the role the
// dashboards branch on. Phone is optional and only used for SMS forwarding.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"not null" json:"full_name"`
	Phone    string    `json:"phone"`
	Role     string    `gorm:"type:varchar(20);not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return apperr.Invalid("profile id is required")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return apperr.Invalid("full name is required")
	}
	if p.Role != RoleAdmin && p.Role != RoleBoothStaff {
		return apperr.Invalid("role must be admin or booth_staff")
	}
	return nil
}
