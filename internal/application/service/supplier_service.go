package service

import (
	"context"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/iliri/iliri-api/pkg/utils"
)

// SupplierService handles supplier-related operations
type SupplierService struct {
	store        repository.Store
	codeAttempts int
	generateCode utils.CodeGenerator
}

// NewSupplierService creates a new supplier service
func NewSupplierService(store repository.Store, codeAttempts int) *SupplierService {
	return &SupplierService{
		store:        store,
		codeAttempts: codeAttempts,
		generateCode: utils.GenerateCode,
	}
}

// SupplierInput represents supplier fields supplied by the caller
type SupplierInput struct {
	Name      *string
	Telephone *string
	Active    *bool
}

func (in *SupplierInput) validate(requireName bool) error {
	var fe apperror.FieldErrors
	if requireName || in.Name != nil {
		name := ""
		if in.Name != nil {
			name = *in.Name
		}
		requireText(&fe, "name", "Name is required", name)
	}
	validateTelephone(&fe, in.Telephone)
	return fe.Err()
}

// CreateSupplier creates a new supplier with a generated unique code
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	var supplier *entity.Supplier
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		codes, err := tx.Suppliers().Codes(ctx)
		if err != nil {
			return err
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		supplier = &entity.Supplier{
			Name:      strings.TrimSpace(*input.Name),
			Code:      utils.GenerateUniqueCodeWith(codes, s.generateCode, s.codeAttempts),
			Telephone: trimPtr(input.Telephone),
			Active:    active,
		}
		return tx.Suppliers().Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates an existing supplier. The code never changes.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}

	patch := &entity.SupplierPatch{Active: input.Active}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}
	patch.Telephone = trimmed(input.Telephone)

	supplier, err := s.store.Suppliers().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier. Purchases keep their supplier name snapshot.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	found, err := s.store.Suppliers().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Supplier")
	}
	return nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := s.store.Suppliers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers with optional search and active filter
func (s *SupplierService) ListSuppliers(ctx context.Context, params *repository.PartyFilterParams) ([]entity.Supplier, error) {
	return s.store.Suppliers().List(ctx, params)
}
