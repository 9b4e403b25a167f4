// Package sourcing owns the supplier-product association. Each link is
// identified by its (supplier_id, product_id) pair; the pair is unique
// across all rows regardless of the active flag, so a retired link is
// reactivated in place instead of inserted again.
package sourcing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplylink/backend/internal/domain/shared"
)

// ProductLink represents one supplier-product association.
// Lifecycle: created active, retired by setting Active=false, revived by
// Relink. Rows are only removed when the supplier or product is deleted.
type ProductLink struct {
	shared.BaseEntity
	SupplierID    uint                `gorm:"not null;uniqueIndex:idx_product_links_pair,priority:1"`
	ProductID     uint                `gorm:"not null;uniqueIndex:idx_product_links_pair,priority:2"`
	SupplierPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"` // Negotiated price, may be absent
	LinkedAt      time.Time           `gorm:"not null"`
	Active        bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductLink) TableName() string {
	return "product_links"
}

// NewProductLink creates an active link between a supplier and a product
func NewProductLink(supplierID, productID uint, price decimal.NullDecimal) (*ProductLink, error) {
	if err := validatePair(supplierID, productID); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &ProductLink{
		BaseEntity:    shared.NewBaseEntity(),
		SupplierID:    supplierID,
		ProductID:     productID,
		SupplierPrice: price,
		LinkedAt:      time.Now(),
		Active:        true,
	}, nil
}

// Relink reactivates the link with a fresh price and link timestamp.
// The given price overwrites the stored one even when absent.
func (l *ProductLink) Relink(price decimal.NullDecimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	l.SupplierPrice = price
	l.LinkedAt = time.Now()
	l.Active = true
	l.Touch()

	return nil
}

// Retire deactivates the link, keeping the row and its price history
func (l *ProductLink) Retire() {
	l.Active = false
	l.Touch()
}

// IsActive reports whether the link is currently active
func (l *ProductLink) IsActive() bool {
	return l.Active
}

func validatePair(supplierID, productID uint) error {
	if supplierID == 0 {
		return shared.NewDomainError("INVALID_SUPPLIER_ID", "Supplier ID is required")
	}
	if productID == 0 {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID is required")
	}
	return nil
}

func validatePrice(price decimal.NullDecimal) error {
	if price.Valid && price.Decimal.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}
	return nil
}
