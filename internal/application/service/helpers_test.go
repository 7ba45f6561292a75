package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/infrastructure/memory"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strp(s string) *string {
	return &s
}

// fixture wires the ledger services the way main does
type fixture struct {
	store     *memory.Store
	dashboard *DashboardService
	articles  *ArticleService
	suppliers *SupplierService
	clients   *ClientService
	purchases *PurchaseService
	sales     *SaleService
}

func newFixture(opts ...memory.Option) *fixture {
	store := memory.NewStore(opts...)
	dashboard := NewDashboardService(store, repository.AnalyticsOptions{})
	return &fixture{
		store:     store,
		dashboard: dashboard,
		articles:  NewArticleService(store, dashboard),
		suppliers: NewSupplierService(store, 10),
		clients:   NewClientService(store, 10),
		purchases: NewPurchaseService(store, dashboard),
		sales:     NewSaleService(store, dashboard),
	}
}

func (f *fixture) article(t *testing.T, code, stock string) *entity.Article {
	t.Helper()
	a, err := f.articles.CreateArticle(context.Background(), &ArticleInput{
		Name:         "Article " + code,
		Code1:        code,
		Cost:         dec("5"),
		CurrentStock: dec(stock),
		Price1:       dec("10"),
	})
	if err != nil {
		t.Fatalf("create article %s: %v", code, err)
	}
	return a
}

func (f *fixture) client(t *testing.T, name string) *entity.Client {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), &ClientInput{Name: strp(name)})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func (f *fixture) supplier(t *testing.T, name string) *entity.Supplier {
	t.Helper()
	s, err := f.suppliers.CreateSupplier(context.Background(), &SupplierInput{Name: strp(name)})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return s
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	a, err := f.store.Articles().GetByID(context.Background(), id)
	if err != nil || a == nil {
		t.Fatalf("get article %s: %v", id, err)
	}
	return a.CurrentStock
}

// assertFieldError fails unless err is a validation error on field
func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError on %s, got %v", field, err)
	}
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422 (%s)", appErr.Code, appErr.Message)
	}
	for _, fe := range appErr.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Fatalf("no error on %s in %+v", field, appErr.Errors)
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError %d, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("code = %d, want %d (%s)", appErr.Code, code, appErr.Message)
	}
}

// memoryKV is a KeyValueRepository kept in a map
type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (kv *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.values[key]
	return v, ok, nil
}

func (kv *memoryKV) Set(ctx context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}

func (kv *memoryKV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.values, key)
	return nil
}
