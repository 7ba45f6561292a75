package service

import (
	"context"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/iliri/iliri-api/pkg/utils"
)

// ClientService handles client-related operations
type ClientService struct {
	store        repository.Store
	codeAttempts int
	generateCode utils.CodeGenerator
}

// NewClientService creates a new client service
func NewClientService(store repository.Store, codeAttempts int) *ClientService {
	return &ClientService{
		store:        store,
		codeAttempts: codeAttempts,
		generateCode: utils.GenerateCode,
	}
}

// ClientInput represents client fields supplied by the caller
type ClientInput struct {
	Name      *string
	Telephone *string
	Email     *string
	Address   *string
	Active    *bool
}

func (in *ClientInput) validate(requireName bool) error {
	var fe apperror.FieldErrors
	if requireName || in.Name != nil {
		name := ""
		if in.Name != nil {
			name = *in.Name
		}
		requireText(&fe, "name", "Name is required", name)
	}
	validateTelephone(&fe, in.Telephone)
	validateEmail(&fe, in.Email)
	return fe.Err()
}

// CreateClient creates a new client with a generated unique code
func (s *ClientService) CreateClient(ctx context.Context, input *ClientInput) (*entity.Client, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	var client *entity.Client
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		codes, err := tx.Clients().Codes(ctx)
		if err != nil {
			return err
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		client = &entity.Client{
			Name:      strings.TrimSpace(*input.Name),
			Code:      utils.GenerateUniqueCodeWith(codes, s.generateCode, s.codeAttempts),
			Telephone: trimPtr(input.Telephone),
			Email:     trimPtr(input.Email),
			Address:   trimPtr(input.Address),
			Active:    active,
		}
		return tx.Clients().Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient updates an existing client. Past sales keep the old name.
func (s *ClientService) UpdateClient(ctx context.Context, id string, input *ClientInput) (*entity.Client, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}

	patch := &entity.ClientPatch{Active: input.Active}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}
	patch.Telephone = trimmed(input.Telephone)
	patch.Email = trimmed(input.Email)
	patch.Address = trimmed(input.Address)

	client, err := s.store.Clients().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// DeleteClient removes a client
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	found, err := s.store.Clients().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Client")
	}
	return nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := s.store.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients with optional search, active and unpaid filters
func (s *ClientService) ListClients(ctx context.Context, params *repository.PartyFilterParams) ([]entity.Client, error) {
	return s.store.Clients().List(ctx, params)
}

// trimmed trims an optional patch value, keeping an empty string so it clears the field
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
