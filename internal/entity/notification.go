package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationApplicationReceived = "application_received"
	NotificationApplicationStatus   = "application_status"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read,priority:1" json:"userId"` // receiver
	ActorID    *uuid.UUID `gorm:"type:uuid" json:"actorId,omitempty"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null" json:"entityId"`
	EntityType string     `gorm:"size:30;not null" json:"entityType"` // job, application
	Type       string     `gorm:"size:50;not null" json:"type"`
	Message    string     `gorm:"type:text" json:"message"`
	IsRead     bool       `gorm:"default:false;index:idx_notifications_user_read,priority:2" json:"isRead"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	User  *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
