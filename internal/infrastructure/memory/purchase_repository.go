package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
)

type purchaseRepository struct {
	l *ledger
}

func findPurchase(st *state, id string) (int, *entity.Purchase) {
	for i, p := range st.purchases {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	r.l.write(func(st *state) {
		if purchase.ID == "" {
			purchase.ID = newID()
		}
		if purchase.Date.IsZero() {
			purchase.Date = r.l.now()
		}
		if purchase.Number > st.purchaseSeq {
			st.purchaseSeq = purchase.Number
		}
		st.purchases = append(st.purchases, purchase.Clone())
	})
	return nil
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var found *entity.Purchase
	r.l.read(func(st *state) {
		if _, p := findPurchase(st, id); p != nil {
			found = p.Clone()
		}
	})
	return found, nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		i, _ := findPurchase(st, id)
		if i < 0 {
			return
		}
		found = true
		st.purchases = append(st.purchases[:i], st.purchases[i+1:]...)
	})
	return found, nil
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, error) {
	if params == nil {
		params = &domainRepo.PurchaseFilterParams{}
	}
	search := strings.TrimSpace(params.Search)

	var purchases []entity.Purchase
	r.l.read(func(st *state) {
		for _, p := range st.purchases {
			if params.SupplierID != "" && p.SupplierID != params.SupplierID {
				continue
			}
			if params.Username != "" && p.Username != params.Username {
				continue
			}
			if search != "" && !containsFold(p.SupplierName, search) &&
				!strings.Contains(p.Date.Format(dateLayout), search) {
				continue
			}
			purchases = append(purchases, *p.Clone())
		}
	})

	sort.SliceStable(purchases, func(i, j int) bool {
		if purchases[i].Date.Equal(purchases[j].Date) {
			return purchases[i].Number > purchases[j].Number
		}
		return purchases[i].Date.After(purchases[j].Date)
	})
	return purchases, nil
}

func (r *purchaseRepository) NextNumber(ctx context.Context) (int, error) {
	var next int
	r.l.read(func(st *state) {
		highest := st.purchaseSeq
		for _, p := range st.purchases {
			if p.Number > highest {
				highest = p.Number
			}
		}
		next = highest + 1
	})
	return next, nil
}
