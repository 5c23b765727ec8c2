package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     sku          VARCHAR(100) NOT NULL UNIQUE,
//     name         TEXT NOT NULL,
//     description  TEXT,
//     weight       NUMERIC,
//     width        NUMERIC,
//     height       NUMERIC,
//     length       NUMERIC,
//     harga        DECIMAL(10,2) NOT NULL,
//     image        TEXT,
//     category_id  BIGINT REFERENCES categories(id),
//     is_deleted   BOOLEAN DEFAULT FALSE,
//     deleted_at   TIMESTAMPTZ,
//     updated_at   TIMESTAMPTZ
// );

type Product struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU         string          `gorm:"column:sku;type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name        string          `gorm:"column:name;type:text;not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Weight      float64         `gorm:"column:weight;type:numeric" json:"weight"`
	Width       float64         `gorm:"column:width;type:numeric" json:"width"`
	Height      float64         `gorm:"column:height;type:numeric" json:"height"`
	Length      float64         `gorm:"column:length;type:numeric" json:"length"`
	Harga       decimal.Decimal `gorm:"column:harga;type:decimal(10,2);not null" json:"harga"`
	Image       string          `gorm:"column:image;type:text" json:"image,omitempty"`
	CategoryID  uint64          `gorm:"column:category_id" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsDeleted   bool            `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	DeletedAt   *time.Time      `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// PaginatedProducts is one page of the catalog listing.
type PaginatedProducts struct {
	Items      []Product `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
