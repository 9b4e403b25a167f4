package catalog

import (
	"time"

	"github.com/supplylink/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Description    *string    `json:"description"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	Category       *string    `json:"category" binding:"omitempty,max=100"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	Category       *string    `json:"category" binding:"omitempty,max=100"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Barcode        *string    `json:"barcode"`
	Category       *string    `json:"category"`
	ExpirationDate *time.Time `json:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Barcode:        p.Barcode,
		Category:       p.Category,
		ExpirationDate: p.ExpirationDate,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
