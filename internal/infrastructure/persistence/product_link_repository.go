package persistence

import (
	"context"
	"errors"

	"github.com/supplylink/backend/internal/domain/shared"
	"github.com/supplylink/backend/internal/domain/sourcing"
	"gorm.io/gorm"
)

// GormProductLinkRepository implements ProductLinkRepository using GORM
type GormProductLinkRepository struct {
	db *gorm.DB
}

// NewGormProductLinkRepository creates a new GormProductLinkRepository
func NewGormProductLinkRepository(db *gorm.DB) *GormProductLinkRepository {
	return &GormProductLinkRepository{db: db}
}

// FindByPair finds the link for a (supplier, product) pair regardless of active state
func (r *GormProductLinkRepository) FindByPair(ctx context.Context, supplierID, productID uint) (*sourcing.ProductLink, error) {
	var link sourcing.ProductLink
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// Save creates or updates a link. An insert that collides on the
// (supplier_id, product_id) unique index returns shared.ErrAlreadyExists
// so the caller can retry as a reactivation; a missing supplier or
// product surfaces as shared.ErrConstraintViolation.
func (r *GormProductLinkRepository) Save(ctx context.Context, link *sourcing.ProductLink) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return shared.ErrConstraintViolation
		}
		return err
	}
	return nil
}

// DeactivateAllForSupplier retires every active link of a supplier
func (r *GormProductLinkRepository) DeactivateAllForSupplier(ctx context.Context, supplierID uint) error {
	return r.db.WithContext(ctx).
		Model(&sourcing.ProductLink{}).
		Where("supplier_id = ? AND active = ?", supplierID, true).
		Update("active", false).Error
}

// ProductsForSupplier lists products actively linked to a supplier, ordered by product name
func (r *GormProductLinkRepository) ProductsForSupplier(ctx context.Context, supplierID uint) ([]sourcing.LinkedProduct, error) {
	var rows []sourcing.LinkedProduct
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id AS product_id, p.name, p.description, p.barcode, p.category, p.expiration_date, l.supplier_price, l.linked_at, l.active").
		Joins("INNER JOIN product_links l ON l.product_id = p.id").
		Where("l.supplier_id = ? AND l.active = ?", supplierID, true).
		Order("p.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SuppliersForProduct lists suppliers actively linked to a product, ordered by supplier name
func (r *GormProductLinkRepository) SuppliersForProduct(ctx context.Context, productID uint) ([]sourcing.LinkedSupplier, error) {
	var rows []sourcing.LinkedSupplier
	err := r.db.WithContext(ctx).
		Table("suppliers AS s").
		Select("s.id AS supplier_id, s.name, s.tax_id, s.contact_name, s.phone, s.email, s.address, l.supplier_price, l.linked_at, l.active").
		Joins("INNER JOIN product_links l ON l.supplier_id = s.id").
		Where("l.product_id = ? AND l.active = ?", productID, true).
		Order("s.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AvailableProductsForSupplier lists products without an active link to the
// supplier, ordered by product name. Pairs retired via Unlink count as available.
func (r *GormProductLinkRepository) AvailableProductsForSupplier(ctx context.Context, supplierID uint) ([]sourcing.AvailableProduct, error) {
	linked := r.db.
		Table("product_links").
		Select("product_id").
		Where("supplier_id = ? AND active = ?", supplierID, true)

	var rows []sourcing.AvailableProduct
	err := r.db.WithContext(ctx).
		Table("products").
		Select("id AS product_id, name, description, barcode, category, expiration_date").
		Where("id NOT IN (?)", linked).
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AvailableSuppliersForProduct lists suppliers without an active link to the
// product, ordered by supplier name
func (r *GormProductLinkRepository) AvailableSuppliersForProduct(ctx context.Context, productID uint) ([]sourcing.AvailableSupplier, error) {
	linked := r.db.
		Table("product_links").
		Select("supplier_id").
		Where("product_id = ? AND active = ?", productID, true)

	var rows []sourcing.AvailableSupplier
	err := r.db.WithContext(ctx).
		Table("suppliers").
		Select("id AS supplier_id, name, tax_id, contact_name, phone, email, address").
		Where("id NOT IN (?)", linked).
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
