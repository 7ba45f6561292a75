package memory

import (
	"context"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
)

func matchParty(params *domainRepo.PartyFilterParams, name, code string, telephone *string, active bool) bool {
	if params == nil {
		return true
	}
	if params.Active != nil && *params.Active != active {
		return false
	}
	search := strings.TrimSpace(params.Search)
	if search == "" {
		return true
	}
	return containsFold(name, search) ||
		containsFold(code, search) ||
		(telephone != nil && strings.Contains(*telephone, search))
}

type supplierRepository struct {
	l *ledger
}

func findSupplier(st *state, id string) (int, *entity.Supplier) {
	for i, s := range st.suppliers {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.l.write(func(st *state) {
		if supplier.ID == "" {
			supplier.ID = newID()
		}
		now := r.l.now()
		supplier.CreatedAt = now
		supplier.UpdatedAt = now
		st.suppliers = append(st.suppliers, supplier.Clone())
	})
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var found *entity.Supplier
	r.l.read(func(st *state) {
		if _, s := findSupplier(st, id); s != nil {
			found = s.Clone()
		}
	})
	return found, nil
}

func (r *supplierRepository) Update(ctx context.Context, id string, patch *entity.SupplierPatch) (*entity.Supplier, error) {
	var updated *entity.Supplier
	r.l.write(func(st *state) {
		_, s := findSupplier(st, id)
		if s == nil {
			return
		}
		patch.Apply(s)
		s.UpdatedAt = r.l.now()
		updated = s.Clone()
	})
	return updated, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		i, _ := findSupplier(st, id)
		if i < 0 {
			return
		}
		found = true
		st.suppliers = append(st.suppliers[:i], st.suppliers[i+1:]...)
	})
	return found, nil
}

func (r *supplierRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	r.l.read(func(st *state) {
		for _, s := range st.suppliers {
			if matchParty(params, s.Name, s.Code, s.Telephone, s.Active) {
				suppliers = append(suppliers, *s.Clone())
			}
		}
	})
	return suppliers, nil
}

func (r *supplierRepository) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	r.l.read(func(st *state) {
		codes = make([]string, 0, len(st.suppliers))
		for _, s := range st.suppliers {
			codes = append(codes, s.Code)
		}
	})
	return codes, nil
}

type clientRepository struct {
	l *ledger
}

func findClient(st *state, id string) (int, *entity.Client) {
	for i, c := range st.clients {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	r.l.write(func(st *state) {
		if client.ID == "" {
			client.ID = newID()
		}
		now := r.l.now()
		client.CreatedAt = now
		client.UpdatedAt = now
		st.clients = append(st.clients, client.Clone())
	})
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var found *entity.Client
	r.l.read(func(st *state) {
		if _, c := findClient(st, id); c != nil {
			found = c.Clone()
		}
	})
	return found, nil
}

func (r *clientRepository) Update(ctx context.Context, id string, patch *entity.ClientPatch) (*entity.Client, error) {
	var updated *entity.Client
	r.l.write(func(st *state) {
		_, c := findClient(st, id)
		if c == nil {
			return
		}
		patch.Apply(c)
		c.UpdatedAt = r.l.now()
		updated = c.Clone()
	})
	return updated, nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		i, _ := findClient(st, id)
		if i < 0 {
			return
		}
		found = true
		st.clients = append(st.clients[:i], st.clients[i+1:]...)
	})
	return found, nil
}

func (r *clientRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Client, error) {
	var clients []entity.Client
	r.l.read(func(st *state) {
		var unpaid map[string]bool
		if params != nil && params.WithUnpaidSales {
			unpaid = make(map[string]bool)
			for _, s := range st.sales {
				if !s.Paid {
					unpaid[s.ClientID] = true
				}
			}
		}
		for _, c := range st.clients {
			if unpaid != nil && !unpaid[c.ID] {
				continue
			}
			if matchParty(params, c.Name, c.Code, c.Telephone, c.Active) {
				clients = append(clients, *c.Clone())
			}
		}
	})
	return clients, nil
}

func (r *clientRepository) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	r.l.read(func(st *state) {
		codes = make([]string, 0, len(st.clients))
		for _, c := range st.clients {
			codes = append(codes, c.Code)
		}
	})
	return codes, nil
}
