package models

import "time"

// Message roles follow the chat convention: user, assistant, system.
type Message struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SessionID string    `json:"session_id" gorm:"type:varchar(36);index;not null"`
	Session   Session   `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE"`
	Role      string    `json:"role" gorm:"type:varchar(50);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
