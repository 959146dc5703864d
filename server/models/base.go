package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// parseID converts a path/claims id into a db primary key. A malformed id can
// never match a record, so it's reported as gorm.ErrRecordNotFound.
func parseID(id string) (uint, error) {
	val, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, gorm.ErrRecordNotFound
	}

	return uint(val), nil
}
