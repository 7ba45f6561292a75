package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// SetPaid overwrites the cached paid state of a sale
	SetPaid(ctx context.Context, id string, paidAmount decimal.Decimal, paid bool) (bool, error)
	SetReference(ctx context.Context, id string, reference string) (*entity.Sale, error)
	Delete(ctx context.Context, id string) (bool, error)
	// List returns sales newest first
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	All(ctx context.Context) ([]entity.Sale, error)
	NextNumber(ctx context.Context) (int, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	ClientID string
	Username string
	// Search matches the client name, the client reference or the date as dd/mm/yyyy
	Search string
}

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListBySale returns the payments of a sale newest first
	ListBySale(ctx context.Context, saleID string) ([]entity.Payment, error)
	SumBySale(ctx context.Context, saleID string) (decimal.Decimal, error)
	All(ctx context.Context) ([]entity.Payment, error)
}
