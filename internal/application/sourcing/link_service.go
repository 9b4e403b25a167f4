package sourcing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/supplylink/backend/internal/domain/shared"
	"github.com/supplylink/backend/internal/domain/sourcing"
	"go.uber.org/zap"
)

// LinkService handles the supplier-product association operations
type LinkService struct {
	linkRepo sourcing.ProductLinkRepository
	logger   *zap.Logger
}

// NewLinkService creates a new LinkService
func NewLinkService(linkRepo sourcing.ProductLinkRepository, logger *zap.Logger) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

// Link associates a supplier with a product. If the pair was linked
// before, the existing row is reactivated with the new price and a fresh
// link timestamp; the given price always overwrites the stored one, even
// when absent. Losing an insert race on the pair's unique index is
// retried once as a reactivation.
func (s *LinkService) Link(ctx context.Context, req LinkRequest) error {
	if req.SupplierID == 0 {
		return shared.NewDomainError("INVALID_SUPPLIER_ID", "Supplier ID is required")
	}
	if req.ProductID == 0 {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID is required")
	}
	if req.SupplierPrice != nil && req.SupplierPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}
	price := toNullDecimal(req.SupplierPrice)

	link, err := s.linkRepo.FindByPair(ctx, req.SupplierID, req.ProductID)
	switch {
	case err == nil:
		if err := link.Relink(price); err != nil {
			return err
		}
		return s.linkRepo.Save(ctx, link)

	case errors.Is(err, shared.ErrNotFound):
		fresh, err := sourcing.NewProductLink(req.SupplierID, req.ProductID, price)
		if err != nil {
			return err
		}
		if err := s.linkRepo.Save(ctx, fresh); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				// Lost the insert race; the row exists now, reactivate it
				s.logger.Debug("link insert collided, retrying as reactivation",
					zap.Uint("supplier_id", req.SupplierID),
					zap.Uint("product_id", req.ProductID),
				)
				return s.reactivate(ctx, req.SupplierID, req.ProductID, price)
			}
			return err
		}
		return nil

	default:
		return err
	}
}

func (s *LinkService) reactivate(ctx context.Context, supplierID, productID uint, price decimal.NullDecimal) error {
	link, err := s.linkRepo.FindByPair(ctx, supplierID, productID)
	if err != nil {
		return err
	}
	if err := link.Relink(price); err != nil {
		return err
	}
	return s.linkRepo.Save(ctx, link)
}

// Unlink retires the link for a pair. Unlinking a pair that was never
// linked is a no-op success.
func (s *LinkService) Unlink(ctx context.Context, supplierID, productID uint) error {
	link, err := s.linkRepo.FindByPair(ctx, supplierID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	link.Retire()
	return s.linkRepo.Save(ctx, link)
}

// ProductsForSupplier lists the products a supplier actively supplies
func (s *LinkService) ProductsForSupplier(ctx context.Context, supplierID uint) ([]LinkedProductResponse, error) {
	rows, err := s.linkRepo.ProductsForSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	responses := make([]LinkedProductResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToLinkedProductResponse(row)
	}
	return responses, nil
}

// SuppliersForProduct lists the suppliers actively supplying a product
func (s *LinkService) SuppliersForProduct(ctx context.Context, productID uint) ([]LinkedSupplierResponse, error) {
	rows, err := s.linkRepo.SuppliersForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]LinkedSupplierResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToLinkedSupplierResponse(row)
	}
	return responses, nil
}

// AvailableProductsForSupplier lists products without an active link to
// the supplier. Retired pairs count as available again.
func (s *LinkService) AvailableProductsForSupplier(ctx context.Context, supplierID uint) ([]AvailableProductResponse, error) {
	rows, err := s.linkRepo.AvailableProductsForSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	responses := make([]AvailableProductResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToAvailableProductResponse(row)
	}
	return responses, nil
}

// AvailableSuppliersForProduct lists suppliers without an active link to the product
func (s *LinkService) AvailableSuppliersForProduct(ctx context.Context, productID uint) ([]AvailableSupplierResponse, error) {
	rows, err := s.linkRepo.AvailableSuppliersForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]AvailableSupplierResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToAvailableSupplierResponse(row)
	}
	return responses, nil
}

// ReplaceAllLinks deactivates every active link of the supplier and then
// links each requested product sequentially. The sequence is not atomic:
// a failure partway leaves earlier entries linked and later ones not.
// Callers may re-issue the whole request; every step is idempotent.
func (s *LinkService) ReplaceAllLinks(ctx context.Context, supplierID uint, req ReplaceLinksRequest) error {
	if supplierID == 0 {
		return shared.NewDomainError("INVALID_SUPPLIER_ID", "Supplier ID is required")
	}

	if err := s.linkRepo.DeactivateAllForSupplier(ctx, supplierID); err != nil {
		return err
	}

	for _, item := range req.Links {
		err := s.Link(ctx, LinkRequest{
			SupplierID:    supplierID,
			ProductID:     item.ProductID,
			SupplierPrice: item.SupplierPrice,
		})
		if err != nil {
			s.logger.Warn("replace links aborted partway",
				zap.Uint("supplier_id", supplierID),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}
