package sourcing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplylink/backend/internal/domain/sourcing"
)

// LinkRequest represents a request to link a supplier and a product
type LinkRequest struct {
	SupplierID    uint             `json:"supplier_id" binding:"required"`
	ProductID     uint             `json:"product_id" binding:"required"`
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
}

// ReplaceLinksRequest replaces a supplier's whole set of active links.
// An empty Links list deactivates everything.
type ReplaceLinksRequest struct {
	Links []ReplaceLinkItem `json:"links"`
}

// ReplaceLinkItem is one entry of a ReplaceLinksRequest
type ReplaceLinkItem struct {
	ProductID     uint             `json:"product_id" binding:"required"`
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
}

// LinkedProductResponse is a product joined with its link details
type LinkedProductResponse struct {
	ProductID      uint             `json:"product_id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Barcode        *string          `json:"barcode"`
	Category       *string          `json:"category"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	SupplierPrice  *decimal.Decimal `json:"supplier_price"`
	LinkedAt       time.Time        `json:"linked_at"`
	Active         bool             `json:"active"`
}

// LinkedSupplierResponse is a supplier joined with its link details
type LinkedSupplierResponse struct {
	SupplierID    uint             `json:"supplier_id"`
	Name          string           `json:"name"`
	TaxID         *string          `json:"tax_id"`
	ContactName   *string          `json:"contact_name"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email"`
	Address       *string          `json:"address"`
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
	LinkedAt      time.Time        `json:"linked_at"`
	Active        bool             `json:"active"`
}

// AvailableProductResponse is a product not actively supplied by a given supplier
type AvailableProductResponse struct {
	ProductID      uint       `json:"product_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Barcode        *string    `json:"barcode"`
	Category       *string    `json:"category"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// AvailableSupplierResponse is a supplier not actively supplying a given product
type AvailableSupplierResponse struct {
	SupplierID  uint    `json:"supplier_id"`
	Name        string  `json:"name"`
	TaxID       *string `json:"tax_id"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func toNullDecimal(price *decimal.Decimal) decimal.NullDecimal {
	if price == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *price, Valid: true}
}

func fromNullDecimal(price decimal.NullDecimal) *decimal.Decimal {
	if !price.Valid {
		return nil
	}
	d := price.Decimal
	return &d
}

// ToLinkedProductResponse converts a read model row
func ToLinkedProductResponse(row sourcing.LinkedProduct) LinkedProductResponse {
	return LinkedProductResponse{
		ProductID:      row.ProductID,
		Name:           row.Name,
		Description:    row.Description,
		Barcode:        row.Barcode,
		Category:       row.Category,
		ExpirationDate: row.ExpirationDate,
		SupplierPrice:  fromNullDecimal(row.SupplierPrice),
		LinkedAt:       row.LinkedAt,
		Active:         row.Active,
	}
}

// ToLinkedSupplierResponse converts a read model row
func ToLinkedSupplierResponse(row sourcing.LinkedSupplier) LinkedSupplierResponse {
	return LinkedSupplierResponse{
		SupplierID:    row.SupplierID,
		Name:          row.Name,
		TaxID:         row.TaxID,
		ContactName:   row.ContactName,
		Phone:         row.Phone,
		Email:         row.Email,
		Address:       row.Address,
		SupplierPrice: fromNullDecimal(row.SupplierPrice),
		LinkedAt:      row.LinkedAt,
		Active:        row.Active,
	}
}

// ToAvailableProductResponse converts a read model row
func ToAvailableProductResponse(row sourcing.AvailableProduct) AvailableProductResponse {
	return AvailableProductResponse{
		ProductID:      row.ProductID,
		Name:           row.Name,
		Description:    row.Description,
		Barcode:        row.Barcode,
		Category:       row.Category,
		ExpirationDate: row.ExpirationDate,
	}
}

// ToAvailableSupplierResponse converts a read model row
func ToAvailableSupplierResponse(row sourcing.AvailableSupplier) AvailableSupplierResponse {
	return AvailableSupplierResponse{
		SupplierID:  row.SupplierID,
		Name:        row.Name,
		TaxID:       row.TaxID,
		ContactName: row.ContactName,
		Phone:       row.Phone,
		Email:       row.Email,
		Address:     row.Address,
	}
}
