package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type saleRepository struct {
	l *ledger
}

func findSale(st *state, id string) (int, *entity.Sale) {
	for i, s := range st.sales {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	r.l.write(func(st *state) {
		if sale.ID == "" {
			sale.ID = newID()
		}
		if sale.Date.IsZero() {
			sale.Date = r.l.now()
		}
		if sale.Number > st.saleSeq {
			st.saleSeq = sale.Number
		}
		st.sales = append(st.sales, sale.Clone())
	})
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var found *entity.Sale
	r.l.read(func(st *state) {
		if _, s := findSale(st, id); s != nil {
			found = s.Clone()
		}
	})
	return found, nil
}

func (r *saleRepository) SetPaid(ctx context.Context, id string, paidAmount decimal.Decimal, paid bool) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		_, s := findSale(st, id)
		if s == nil {
			return
		}
		found = true
		s.PaidAmount = paidAmount
		s.Paid = paid
	})
	return found, nil
}

func (r *saleRepository) SetReference(ctx context.Context, id string, reference string) (*entity.Sale, error) {
	var updated *entity.Sale
	r.l.write(func(st *state) {
		_, s := findSale(st, id)
		if s == nil {
			return
		}
		if reference == "" {
			s.ClientReference = nil
		} else {
			s.ClientReference = &reference
		}
		updated = s.Clone()
	})
	return updated, nil
}

func (r *saleRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		i, _ := findSale(st, id)
		if i < 0 {
			return
		}
		found = true
		st.sales = append(st.sales[:i], st.sales[i+1:]...)
	})
	return found, nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	if params == nil {
		params = &domainRepo.SaleFilterParams{}
	}
	search := strings.TrimSpace(params.Search)

	var sales []entity.Sale
	r.l.read(func(st *state) {
		for _, s := range st.sales {
			if params.ClientID != "" && s.ClientID != params.ClientID {
				continue
			}
			if params.Username != "" && s.Username != params.Username {
				continue
			}
			if search != "" && !containsFold(s.ClientName, search) &&
				(s.ClientReference == nil || !containsFold(*s.ClientReference, search)) &&
				!strings.Contains(s.Date.Format(dateLayout), search) {
				continue
			}
			sales = append(sales, *s.Clone())
		}
	})

	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].Date.Equal(sales[j].Date) {
			return sales[i].Number > sales[j].Number
		}
		return sales[i].Date.After(sales[j].Date)
	})
	return sales, nil
}

func (r *saleRepository) All(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	r.l.read(func(st *state) {
		sales = make([]entity.Sale, 0, len(st.sales))
		for _, s := range st.sales {
			sales = append(sales, *s.Clone())
		}
	})
	return sales, nil
}

func (r *saleRepository) NextNumber(ctx context.Context) (int, error) {
	var next int
	r.l.read(func(st *state) {
		highest := st.saleSeq
		for _, s := range st.sales {
			if s.Number > highest {
				highest = s.Number
			}
		}
		next = highest + 1
	})
	return next, nil
}

type paymentRepository struct {
	l *ledger
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	r.l.write(func(st *state) {
		if payment.ID == "" {
			payment.ID = newID()
		}
		if payment.Timestamp.IsZero() {
			payment.Timestamp = r.l.now()
		}
		st.payments = append(st.payments, *payment)
	})
	return nil
}

func (r *paymentRepository) ListBySale(ctx context.Context, saleID string) ([]entity.Payment, error) {
	var payments []entity.Payment
	r.l.read(func(st *state) {
		for _, p := range st.payments {
			if p.SaleID == saleID {
				payments = append(payments, p)
			}
		}
	})
	// newest first; equal timestamps keep the later entry first
	for i, j := 0, len(payments)-1; i < j; i, j = i+1, j-1 {
		payments[i], payments[j] = payments[j], payments[i]
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Timestamp.After(payments[j].Timestamp)
	})
	return payments, nil
}

func (r *paymentRepository) SumBySale(ctx context.Context, saleID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.l.read(func(st *state) {
		for _, p := range st.payments {
			if p.SaleID == saleID {
				sum = sum.Add(p.Amount)
			}
		}
	})
	return sum, nil
}

func (r *paymentRepository) All(ctx context.Context) ([]entity.Payment, error) {
	var payments []entity.Payment
	r.l.read(func(st *state) {
		payments = append([]entity.Payment(nil), st.payments...)
	})
	return payments, nil
}
