package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Notification represents a message delivered to a single user
type Notification struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      enum.NotificationKind `gorm:"default:0;index" json:"kind"`
	Title     string                `gorm:"size:255;not null" json:"title"`
	Body      string                `gorm:"type:text" json:"body"`
	EntityID  *uuid.UUID            `gorm:"type:uuid" json:"entity_id,omitempty"`
	Read      bool                  `gorm:"default:false;index" json:"read"`
	ReadAt    *time.Time            `json:"read_at,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	DeletedAt gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
