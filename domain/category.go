package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     is_deleted  BOOLEAN DEFAULT FALSE,
//     deleted_at  TIMESTAMPTZ,
//     updated_at  TIMESTAMPTZ
// );

type Category struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;type:text;not null" json:"name"`
	IsDeleted bool       `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Back-reference only, a category does not own its products.
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
