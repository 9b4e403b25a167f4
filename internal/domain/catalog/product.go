package catalog

import (
	"strings"
	"time"

	"github.com/supplylink/backend/internal/domain/shared"
)

// Product represents a product in the catalog context.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseEntity
	Name           string     `gorm:"type:varchar(200);not null;index"`
	Description    *string    `gorm:"type:text"`
	Barcode        *string    `gorm:"type:varchar(100);uniqueIndex"` // EAN/UPC, optional
	Category       *string    `gorm:"type:varchar(100);index"`
	ExpirationDate *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(name string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}, nil
}

// Rename updates the product's name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Touch()

	return nil
}

// SetDetails sets the product's descriptive fields
func (p *Product) SetDetails(description, category *string) error {
	if category != nil && len(*category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}

	p.Description = description
	p.Category = category
	p.Touch()

	return nil
}

// SetBarcode sets the product's barcode
func (p *Product) SetBarcode(barcode *string) error {
	if barcode != nil && len(*barcode) > 100 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 100 characters")
	}

	p.Barcode = barcode
	p.Touch()

	return nil
}

// SetExpirationDate sets the product's expiration date
func (p *Product) SetExpirationDate(date *time.Time) {
	p.ExpirationDate = date
	p.Touch()
}

// IsExpired reports whether the product's expiration date has passed
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpirationDate != nil && p.ExpirationDate.Before(now)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
