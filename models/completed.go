package models

import (
	"time"
	"travelworld/db"
)

// Completed is an append-only log of finished trips, only its row count is shown
type Completed struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    *uint64
	User      *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (Completed) TableName() string {
	return "completed"
}

func CompletedAdd(userID uint64) error {
	return db.Instance.Create(&Completed{UserID: &userID}).Error
}

func CompletedCount() (count int64, err error) {
	err = db.Instance.Model(&Completed{}).Count(&count).Error
	return
}
