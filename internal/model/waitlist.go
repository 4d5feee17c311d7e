package model

import "time"

type WaitlistEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role      *string   `gorm:"type:varchar(100)" json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (WaitlistEntry) TableName() string { return "waitlist" }
