package sourcing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LinkedProduct is a read model joining a product with its link details,
// used by the supplier-side projection queries.
type LinkedProduct struct {
	ProductID      uint                `gorm:"column:product_id"`
	Name           string              `gorm:"column:name"`
	Description    *string             `gorm:"column:description"`
	Barcode        *string             `gorm:"column:barcode"`
	Category       *string             `gorm:"column:category"`
	ExpirationDate *time.Time          `gorm:"column:expiration_date"`
	SupplierPrice  decimal.NullDecimal `gorm:"column:supplier_price"`
	LinkedAt       time.Time           `gorm:"column:linked_at"`
	Active         bool                `gorm:"column:active"`
}

// LinkedSupplier is a read model joining a supplier with its link details,
// used by the product-side projection queries.
type LinkedSupplier struct {
	SupplierID    uint                `gorm:"column:supplier_id"`
	Name          string              `gorm:"column:name"`
	TaxID         *string             `gorm:"column:tax_id"`
	ContactName   *string             `gorm:"column:contact_name"`
	Phone         *string             `gorm:"column:phone"`
	Email         *string             `gorm:"column:email"`
	Address       *string             `gorm:"column:address"`
	SupplierPrice decimal.NullDecimal `gorm:"column:supplier_price"`
	LinkedAt      time.Time           `gorm:"column:linked_at"`
	Active        bool                `gorm:"column:active"`
}

// AvailableProduct is a read model for products a supplier does not
// actively supply yet.
type AvailableProduct struct {
	ProductID      uint       `gorm:"column:product_id"`
	Name           string     `gorm:"column:name"`
	Description    *string    `gorm:"column:description"`
	Barcode        *string    `gorm:"column:barcode"`
	Category       *string    `gorm:"column:category"`
	ExpirationDate *time.Time `gorm:"column:expiration_date"`
}

// AvailableSupplier is a read model for suppliers not actively supplying
// a given product yet.
type AvailableSupplier struct {
	SupplierID  uint    `gorm:"column:supplier_id"`
	Name        string  `gorm:"column:name"`
	TaxID       *string `gorm:"column:tax_id"`
	ContactName *string `gorm:"column:contact_name"`
	Phone       *string `gorm:"column:phone"`
	Email       *string `gorm:"column:email"`
	Address     *string `gorm:"column:address"`
}

// ProductLinkRepository defines the interface for link persistence and
// the projection queries built on the links table.
type ProductLinkRepository interface {
	// FindByPair finds the link for a (supplier, product) pair regardless
	// of its active state
	FindByPair(ctx context.Context, supplierID, productID uint) (*ProductLink, error)

	// Save creates or updates a link. Inserting a pair that already exists
	// returns shared.ErrAlreadyExists.
	Save(ctx context.Context, link *ProductLink) error

	// DeactivateAllForSupplier retires every active link of a supplier
	DeactivateAllForSupplier(ctx context.Context, supplierID uint) error

	// ProductsForSupplier lists products actively linked to a supplier,
	// ordered by product name
	ProductsForSupplier(ctx context.Context, supplierID uint) ([]LinkedProduct, error)

	// SuppliersForProduct lists suppliers actively linked to a product,
	// ordered by supplier name
	SuppliersForProduct(ctx context.Context, productID uint) ([]LinkedSupplier, error)

	// AvailableProductsForSupplier lists products without an active link to
	// the supplier, ordered by product name. Retired links count as available.
	AvailableProductsForSupplier(ctx context.Context, supplierID uint) ([]AvailableProduct, error)

	// AvailableSuppliersForProduct lists suppliers without an active link to
	// the product, ordered by supplier name
	AvailableSuppliersForProduct(ctx context.Context, productID uint) ([]AvailableSupplier, error)
}
