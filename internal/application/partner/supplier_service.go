package partner

import (
	"context"

	"github.com/supplylink/backend/internal/domain/partner"
	"github.com/supplylink/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		if err := supplier.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := supplier.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}

	// Unique tax_id/email collisions surface from the store as ALREADY_EXISTS
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uint) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers matching the filter, ordered by name by default
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToSupplierResponses(suppliers), nil
}

// Update updates a supplier's fields; nil request fields are left unchanged
func (s *SupplierService) Update(ctx context.Context, id uint, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := supplier.ContactName
		phone := supplier.Phone
		email := supplier.Email
		if req.ContactName != nil {
			contactName = req.ContactName
		}
		if req.Phone != nil {
			phone = req.Phone
		}
		if req.Email != nil {
			email = req.Email
		}
		if err := supplier.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		if err := supplier.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := supplier.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. The store cascades the delete to its product links.
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	return s.supplierRepo.Delete(ctx, id)
}
