package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, id string, patch *entity.ClientPatch) (*entity.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Client, error)
	Codes(ctx context.Context) ([]string, error)
}
