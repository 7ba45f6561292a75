package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, id string, patch *entity.SupplierPatch) (*entity.Supplier, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Supplier, error)
	Codes(ctx context.Context) ([]string, error)
}

// PartyFilterParams contains filtering parameters for supplier and client queries
type PartyFilterParams struct {
	// Search matches the name, the code or the telephone
	Search string
	// Active keeps only active (true) or inactive (false) records when set
	Active *bool
	// WithUnpaidSales keeps only clients that have at least one unpaid sale
	WithUnpaidSales bool
}
