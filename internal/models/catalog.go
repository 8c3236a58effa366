package models

import "time"

// Category groups products. Only the name is stored; it must be unique.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Product is a single sellable item. Prices are integer minor currency
// units (whole naira). Only active products appear on public routes.
type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Price      int64     `json:"price" validate:"gt=0"`
	StockQty   int       `json:"stock_qty" validate:"gte=0"`
	ImageURL   string    `json:"image_url" gorm:"type:varchar(512)"`
	CategoryID *uint     `json:"category_id"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
