package models

import "time"

// List is a named shopping list owned by one user. Its list items are
// deleted with it.
type List struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string     `json:"name" gorm:"type:varchar(150)" validate:"required,max=150"`
	UserID    string     `json:"user_id" gorm:"index;type:varchar(36)"`
	ListItems []ListItem `json:"-" gorm:"foreignKey:ListID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListItem pairs a list with a catalog item and carries the checked
// flag. Checked starts false and only changes via toggle.
type ListItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListID    string    `json:"list_id" gorm:"index;type:varchar(36)"`
	ItemID    string    `json:"item_id" gorm:"index;type:varchar(36)"`
	Checked   bool      `json:"checked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListItemRow is a list item joined with its item's name, the shape
// returned when reading the contents of a list.
type ListItemRow struct {
	ListItemID string `json:"list_item_id"`
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	Checked    bool   `json:"checked"`
}
