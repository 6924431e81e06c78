package models

import "time"

// Product represents a stocked item. Article is the user-assigned code and is
// unique across the whole table; ID is assigned by the store and never reused.
type Product struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Article   string    `json:"article" gorm:"type:varchar(100);uniqueIndex:ux_products_article;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Product) TableName() string { return "products" }

// ProductPage is one window of the ascending-id product listing.
type ProductPage struct {
	Data  []Product `json:"data"`
	Total int64     `json:"total"`
}
