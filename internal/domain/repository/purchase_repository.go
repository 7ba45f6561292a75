package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Delete(ctx context.Context, id string) (bool, error)
	// List returns purchases newest first
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, error)
	// NextNumber returns one above the highest number ever issued, starting at 1
	NextNumber(ctx context.Context) (int, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	SupplierID string
	Username   string
	// Search matches the supplier name or the date as dd/mm/yyyy
	Search string
}
