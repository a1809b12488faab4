package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every table. Row IDs stay internal; the API
// exposes snowflake public IDs instead.
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
