package domain

import "time"

type NotificationType string

const (
	NotifInfo    NotificationType = "INFO"
	NotifWarning NotificationType = "WARNING"
	NotifSuccess NotificationType = "SUCCESS"
	NotifDanger  NotificationType = "DANGER"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(10);not null;default:INFO" json:"type"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
}
