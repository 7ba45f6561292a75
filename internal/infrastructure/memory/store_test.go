package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newArticle(code string, stock string) *entity.Article {
	return &entity.Article{
		Name:         "Article " + code,
		Code1:        code,
		Cost:         dec("5"),
		CurrentStock: dec(stock),
		Price1:       dec("10"),
		Unit:         entity.DefaultUnit,
		Active:       true,
	}
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newArticle("A1", "10")
	if err := store.Articles().Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx domainRepo.Ledger) error {
		if _, err := tx.Articles().AdjustStock(ctx, a.ID, dec("-4")); err != nil {
			return err
		}
		if err := tx.Notifications().Add(ctx, &entity.Notification{Type: enum.NotificationTypeOther}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := store.Articles().GetByID(ctx, a.ID)
	if !got.CurrentStock.Equal(dec("10")) {
		t.Errorf("stock = %s, want 10", got.CurrentStock)
	}
	if n, _ := store.Notifications().UnreadCount(ctx); n != 0 {
		t.Errorf("unread = %d, want 0", n)
	}
}

func TestTransactionCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newArticle("A1", "10")
	_ = store.Articles().Create(ctx, a)

	err := store.Transaction(ctx, func(tx domainRepo.Ledger) error {
		_, err := tx.Articles().AdjustStock(ctx, a.ID, dec("5"))
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	got, _ := store.Articles().GetByID(ctx, a.ID)
	if !got.CurrentStock.Equal(dec("15")) {
		t.Errorf("stock = %s, want 15", got.CurrentStock)
	}
}

func TestTransactionCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().Transaction(ctx, func(tx domainRepo.Ledger) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected canceled without running fn, got %v (called=%v)", err, called)
	}
}

func TestAdjustStockFloor(t *testing.T) {
	tests := []struct {
		name  string
		stock string
		delta string
		want  string
	}{
		{"increase", "3", "2", "5"},
		{"decrease", "3", "-2", "1"},
		{"exact", "3", "-3", "0"},
		{"below zero", "3", "-7", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore()
			a := newArticle("A", tt.stock)
			_ = store.Articles().Create(ctx, a)

			found, err := store.Articles().AdjustStock(ctx, a.ID, dec(tt.delta))
			if err != nil || !found {
				t.Fatalf("adjust: found=%v err=%v", found, err)
			}
			got, _ := store.Articles().GetByID(ctx, a.ID)
			if !got.CurrentStock.Equal(dec(tt.want)) {
				t.Errorf("stock = %s, want %s", got.CurrentStock, tt.want)
			}
		})
	}
}

func TestAdjustStockUnknownArticle(t *testing.T) {
	found, err := NewStore().Articles().AdjustStock(context.Background(), "missing", dec("1"))
	if err != nil || found {
		t.Fatalf("expected silent miss, got found=%v err=%v", found, err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newArticle("A1", "1")
	_ = store.Articles().Create(ctx, a)

	got, _ := store.Articles().GetByID(ctx, a.ID)
	got.Name = "changed"
	a.Name = "changed too"

	again, _ := store.Articles().GetByID(ctx, a.ID)
	if again.Name != "Article A1" {
		t.Errorf("store state leaked: name = %q", again.Name)
	}
}

func TestSoftDeleteKeepsRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := newArticle("A1", "1")
	_ = store.Articles().Create(ctx, a)

	if ok, _ := store.Articles().SoftDelete(ctx, a.ID); !ok {
		t.Fatal("soft delete reported missing article")
	}
	got, _ := store.Articles().GetByID(ctx, a.ID)
	if got == nil || !got.Deleted {
		t.Fatalf("expected addressable deleted article, got %+v", got)
	}

	tests := []struct {
		filter enum.ArticleFilter
		want   int
	}{
		{enum.ArticleFilterActive, 0},
		{enum.ArticleFilterDeleted, 1},
		{enum.ArticleFilterAll, 1},
	}
	for _, tt := range tests {
		list, _ := store.Articles().List(ctx, &domainRepo.ArticleFilterParams{Filter: tt.filter})
		if len(list) != tt.want {
			t.Errorf("filter %s: got %d articles, want %d", tt.filter, len(list), tt.want)
		}
	}
}

func TestArticleSearch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for i := 0; i < 12; i++ {
		_ = store.Articles().Create(ctx, newArticle(fmt.Sprintf("BOLT-%02d", i), "1"))
	}
	inactive := newArticle("BOLT-X", "1")
	inactive.Active = false
	_ = store.Articles().Create(ctx, inactive)
	deleted := newArticle("BOLT-D", "1")
	deleted.Deleted = true
	_ = store.Articles().Create(ctx, deleted)
	alt := "ALT-7"
	other := newArticle("NUT-1", "1")
	other.Code2 = &alt
	_ = store.Articles().Create(ctx, other)

	got, _ := store.Articles().Search(ctx, "bolt", 10)
	if len(got) != 10 {
		t.Fatalf("got %d results, want 10", len(got))
	}
	for _, a := range got {
		if !a.IsSelectable() {
			t.Errorf("search returned unselectable article %s", a.Code1)
		}
	}

	got, _ = store.Articles().Search(ctx, "alt-7", 10)
	if len(got) != 1 || got[0].Code1 != "NUT-1" {
		t.Errorf("secondary code search = %+v", got)
	}
}

func TestPurchaseNumberingNeverReused(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Purchases()

	var ids []string
	for i := 1; i <= 3; i++ {
		n, _ := repo.NextNumber(ctx)
		if n != i {
			t.Fatalf("purchase %d got number %d", i, n)
		}
		p := &entity.Purchase{Number: n, Date: time.Now()}
		_ = repo.Create(ctx, p)
		ids = append(ids, p.ID)
	}

	// deleting the highest number must not free it
	_, _ = repo.Delete(ctx, ids[2])
	if n, _ := repo.NextNumber(ctx); n != 4 {
		t.Errorf("next after deleting top = %d, want 4", n)
	}

	_, _ = repo.Delete(ctx, ids[0])
	if n, _ := repo.NextNumber(ctx); n != 4 {
		t.Errorf("next after deleting first = %d, want 4", n)
	}
}

func TestSaleNumberingStartsAtOne(t *testing.T) {
	n, err := NewStore().Sales().NextNumber(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("first sale number = %d (%v), want 1", n, err)
	}
}

func TestSaleListSearchAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	ref := "BL-778"
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	sales := []*entity.Sale{
		{Number: 1, ClientID: "c1", ClientName: "Alpha", Date: day},
		{Number: 2, ClientID: "c2", ClientName: "Beta", Date: day.Add(24 * time.Hour), ClientReference: &ref},
		{Number: 3, ClientID: "c1", ClientName: "Alpha", Date: day.Add(48 * time.Hour)},
	}
	for _, s := range sales {
		_ = store.Sales().Create(ctx, s)
	}

	all, _ := store.Sales().List(ctx, nil)
	if len(all) != 3 || all[0].Number != 3 || all[2].Number != 1 {
		t.Fatalf("expected newest first, got %v", numbers(all))
	}

	tests := []struct {
		name   string
		params domainRepo.SaleFilterParams
		want   []int
	}{
		{"by client", domainRepo.SaleFilterParams{ClientID: "c1"}, []int{3, 1}},
		{"by name", domainRepo.SaleFilterParams{Search: "beta"}, []int{2}},
		{"by reference", domainRepo.SaleFilterParams{Search: "bl-7"}, []int{2}},
		{"by date", domainRepo.SaleFilterParams{Search: "15/03/2024"}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := store.Sales().List(ctx, &tt.params)
			if fmt.Sprint(numbers(got)) != fmt.Sprint(tt.want) {
				t.Errorf("got %v, want %v", numbers(got), tt.want)
			}
		})
	}
}

func numbers(sales []entity.Sale) []int {
	out := make([]int, len(sales))
	for i, s := range sales {
		out[i] = s.Number
	}
	return out
}

func TestPaymentsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Payments().Create(ctx, &entity.Payment{SaleID: "s1", Amount: dec("1"), Timestamp: base})
	_ = store.Payments().Create(ctx, &entity.Payment{SaleID: "s1", Amount: dec("2"), Timestamp: base.Add(time.Hour)})
	_ = store.Payments().Create(ctx, &entity.Payment{SaleID: "s2", Amount: dec("9"), Timestamp: base})

	list, _ := store.Payments().ListBySale(ctx, "s1")
	if len(list) != 2 || !list[0].Amount.Equal(dec("2")) {
		t.Fatalf("unexpected order: %+v", list)
	}
	sum, _ := store.Payments().SumBySale(ctx, "s1")
	if !sum.Equal(dec("3")) {
		t.Errorf("sum = %s, want 3", sum)
	}
}

func TestPriceUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Prices()
	now := time.Now()

	_ = repo.Upsert(ctx, "c1", "a1", dec("10"), enum.PriceType1, now)
	_ = repo.Upsert(ctx, "c1", "a1", dec("12"), enum.PriceTypeCustom, now.Add(time.Minute))

	all, _ := repo.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one entry per pair, got %d", len(all))
	}
	got, _ := repo.Get(ctx, "c1", "a1")
	if !got.LastPrice.Equal(dec("12")) || got.PriceType != enum.PriceTypeCustom {
		t.Errorf("unexpected last price %+v", got)
	}
	if miss, _ := repo.Get(ctx, "c2", "a1"); miss != nil {
		t.Errorf("expected nil for unknown pair, got %+v", miss)
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Notifications()
	_ = repo.Add(ctx, &entity.Notification{Description: "first"})
	_ = repo.Add(ctx, &entity.Notification{Description: "second"})

	list, _ := repo.List(ctx, false)
	if len(list) != 2 || list[0].Description != "second" {
		t.Fatalf("unexpected order: %+v", list)
	}
	if ok, _ := repo.MarkRead(ctx, list[0].ID); !ok {
		t.Fatal("mark read missed")
	}
	if n, _ := repo.UnreadCount(ctx); n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}
	if n, _ := repo.MarkAllRead(ctx); n != 1 {
		t.Errorf("marked = %d, want 1", n)
	}
}

func TestClientListUnpaidFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	owing := &entity.Client{Name: "Owing", Code: "C1", Active: true}
	settled := &entity.Client{Name: "Settled", Code: "C2", Active: true}
	_ = store.Clients().Create(ctx, owing)
	_ = store.Clients().Create(ctx, settled)
	_ = store.Sales().Create(ctx, &entity.Sale{Number: 1, ClientID: owing.ID, Total: dec("5")})
	_ = store.Sales().Create(ctx, &entity.Sale{Number: 2, ClientID: settled.ID, Total: dec("5"), Paid: true})

	got, _ := store.Clients().List(ctx, &domainRepo.PartyFilterParams{WithUnpaidSales: true})
	if len(got) != 1 || got[0].ID != owing.ID {
		t.Fatalf("unexpected clients %+v", got)
	}
}
