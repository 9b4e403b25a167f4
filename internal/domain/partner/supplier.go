package partner

import (
	"strings"

	"github.com/supplylink/backend/internal/domain/shared"
)

// Supplier represents a supplier in the partner context.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseEntity
	Name        string  `gorm:"type:varchar(200);not null;index"`
	TaxID       *string `gorm:"type:varchar(50);uniqueIndex"` // National tax registration number, optional
	ContactName *string `gorm:"type:varchar(100)"`            // Primary contact person
	Phone       *string `gorm:"type:varchar(50)"`
	Email       *string `gorm:"type:varchar(200);uniqueIndex"`
	Address     *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}, nil
}

// Rename updates the supplier's name
func (s *Supplier) Rename(name string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Touch()

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email *string) error {
	if contactName != nil && len(*contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != nil && len(*phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return err
		}
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Touch()

	return nil
}

// SetTaxID sets the supplier's tax identification number
func (s *Supplier) SetTaxID(taxID *string) error {
	if taxID != nil && len(*taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	s.TaxID = taxID
	s.Touch()

	return nil
}

// SetAddress sets the supplier's address
func (s *Supplier) SetAddress(address *string) error {
	if address != nil && len(*address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	s.Address = address
	s.Touch()

	return nil
}

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
