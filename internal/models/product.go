package models

import "time"

const (
	CategoryFurniture = "furniture"
	CategoryLighting  = "lighting"
	CategoryDecor     = "decor"
	CategoryOutdoor   = "outdoor"
)

// Categories is the fixed storefront taxonomy, in display order.
var Categories = []string{CategoryFurniture, CategoryLighting, CategoryDecor, CategoryOutdoor}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}

	return false
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	InStock     bool      `json:"in_stock"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,oneof=furniture lighting decor outdoor"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=furniture lighting decor outdoor"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	InStock     *bool   `json:"in_stock,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type CreateProductResponse struct {
	Success bool     `json:"success"`
	Product *Product `json:"product"`
}
