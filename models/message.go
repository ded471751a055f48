package models

import (
	"strings"
	"time"

	"boothmarket-backend/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is sent by the admin to one booth, or to every booth when
// ToBoothID is nil (a broadcast). IsRead is flipped by the receiving staff.
type Message struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FromUserID uuid.UUID  `gorm:"type:uuid;not null" json:"from_user_id"`
	ToBoothID  *uuid.UUID `gorm:"type:uuid;index" json:"to_booth_id"`
	Message    string     `gorm:"not null" json:"message"`
	IsRead     bool       `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

func (m *Message) Validate() error {
	if m.FromUserID == uuid.Nil {
		return apperr.Invalid("message sender is required")
	}
	if strings.TrimSpace(m.Message) == "" {
		return apperr.Invalid("message body is required")
	}
	return nil
}

// Broadcast reports whether the message targets every booth.
func (m *Message) Broadcast() bool {
	return m.ToBoothID == nil
}

// VisibleTo applies the booth visibility rule: broadcasts reach everyone,
// targeted messages only the named booth.
func (m *Message) VisibleTo(boothID uuid.UUID) bool {
	return m.ToBoothID == nil || *m.ToBoothID == boothID
}
