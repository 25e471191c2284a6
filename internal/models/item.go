package models

import "time"

// Item is a catalog entry belonging to exactly one category. Names are
// free text and not required to be unique.
type Item struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string    `json:"name" gorm:"type:varchar(150)" validate:"required,max=150"`
	CategoryID string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
