package models

import "time"

// Pack is a sellable bundle of products, offered in one or more variants.
type Pack struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Description string        `json:"description" gorm:"type:text"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	Variants    []PackVariant `json:"variants,omitempty" gorm:"foreignKey:PackID"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`
}

// PackVariant is one named configuration of a pack with its own price
// and fixed item list.
type PackVariant struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	PackID    uint              `json:"pack_id" gorm:"index"`
	Name      string            `json:"name" gorm:"type:varchar(255)" validate:"required"`
	Price     int64             `json:"price" validate:"gt=0"`
	Items     []PackVariantItem `json:"items,omitempty" gorm:"foreignKey:VariantID"`
	CreatedAt time.Time         `json:"-"`
	UpdatedAt time.Time         `json:"-"`
}

// PackVariantItem references a product and quantity inside a variant.
type PackVariantItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	VariantID uint `json:"variant_id" gorm:"index"`
	ProductID uint `json:"product_id" validate:"required"`
	Qty       int  `json:"qty" validate:"gt=0"`
}
