package model

import "time"

// Product represents an item in the apparel catalogue. Price is in whole
// rupees; conversion to paise happens only when building payment line items.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Sizes       []string  `json:"sizes" db:"sizes"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
