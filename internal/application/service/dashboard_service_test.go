package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
)

func TestRefreshAnalyticsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.article(t, "D1", "10")
	c := f.client(t, "Dash")
	if _, err := f.sales.RecordSale(ctx, &CreateSaleInput{
		ClientID:   c.ID,
		PaidAmount: decp("7"),
		Items:      []SaleItemInput{{ArticleID: a.ID, Quantity: dec("2")}},
	}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	first, err := f.dashboard.RefreshAnalytics(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	second, err := f.dashboard.RefreshAnalytics(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("snapshots differ: %+v vs %+v", first, second)
	}

	got := first.Analytics
	if got.TotalSales != 0 || !got.TotalRevenue.Equal(dec("7")) || !got.TotalDebt.Equal(dec("13")) {
		t.Errorf("analytics = %+v", got)
	}
	if len(first.TopProducts) != 1 || !first.TopProducts[0].QuantitySold.Equal(dec("2")) {
		t.Errorf("top products = %+v", first.TopProducts)
	}
	if len(first.ActiveClients) != 1 || first.ActiveClients[0].TotalPurchases != 1 {
		t.Errorf("active clients = %+v", first.ActiveClients)
	}
}

func TestInventoryValueActiveOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.article(t, "K1", "2")
	gone := f.article(t, "K2", "3")
	if err := f.articles.DeleteArticle(ctx, gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, err := f.dashboard.RefreshAnalytics(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !all.Analytics.InventoryValue.Equal(dec("25")) {
		t.Errorf("inventory over all articles = %s, want 25", all.Analytics.InventoryValue)
	}

	activeOnly := NewDashboardService(f.store, repository.AnalyticsOptions{InventoryActiveOnly: true})
	snap, err := activeOnly.RefreshAnalytics(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !snap.Analytics.InventoryValue.Equal(dec("10")) {
		t.Errorf("inventory over active articles = %s, want 10", snap.Analytics.InventoryValue)
	}
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	empty, err := f.dashboard.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if empty.Analytics.TotalSales != 0 || len(empty.DailySalesData) != DailySalesDays {
		t.Errorf("empty dashboard = %+v", empty)
	}

	in := validArticleInput()
	in.CurrentStock = dec("1")
	in.MinimumStock = decp("1")
	a, err := f.articles.CreateArticle(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	c := f.client(t, "Today")
	if _, err := f.sales.RecordSale(ctx, &CreateSaleInput{
		ClientID: c.ID,
		Paid:     true,
		Items:    []SaleItemInput{{ArticleID: a.ID, Quantity: dec("1")}},
	}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	d, err := f.dashboard.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Analytics.TotalSales != 1 || d.UnreadNotifications != 1 || d.LowStockCount != 1 {
		t.Errorf("dashboard = %+v", d)
	}
	today := d.DailySalesData[DailySalesDays-1]
	if !today.Revenue.Equal(dec("7.5")) {
		t.Errorf("today's revenue = %s, want 7.5", today.Revenue)
	}
}

func TestDailySales(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		{Date: now, Paid: true, Total: dec("20"), PaidAmount: dec("20")},
		{Date: now.Add(-time.Hour), Total: dec("50"), PaidAmount: dec("5")},
		{Date: now.AddDate(0, 0, -2), Paid: true, Total: dec("8"), PaidAmount: dec("8")},
		{Date: now.AddDate(0, 0, -30), Paid: true, Total: dec("99"), PaidAmount: dec("99")},
	}

	points := dailySales(sales, now)
	if len(points) != DailySalesDays {
		t.Fatalf("got %d points", len(points))
	}
	if points[6].Date != "Mar 10" || !points[6].Revenue.Equal(dec("25")) {
		t.Errorf("today = %+v", points[6])
	}
	if !points[4].Revenue.Equal(dec("8")) {
		t.Errorf("two days ago = %+v", points[4])
	}
	if !points[0].Revenue.IsZero() {
		t.Errorf("oldest = %+v", points[0])
	}
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	in := validArticleInput()
	in.CurrentStock = dec("0")
	in.MinimumStock = decp("0")
	for i := 0; i < 3; i++ {
		in.Code1 = "N" + string(rune('A'+i))
		if _, err := f.articles.CreateArticle(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, _ := f.dashboard.ListNotifications(ctx, false)
	if len(list) != 3 {
		t.Fatalf("notifications = %d, want 3", len(list))
	}
	if err := f.dashboard.MarkNotificationRead(ctx, list[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, _ := f.dashboard.ListNotifications(ctx, true)
	if len(unread) != 2 {
		t.Errorf("unread = %d, want 2", len(unread))
	}

	n, err := f.dashboard.MarkAllNotificationsRead(ctx)
	if err != nil || n != 2 {
		t.Errorf("mark all = %d (%v), want 2", n, err)
	}
	assertStatus(t, f.dashboard.MarkNotificationRead(ctx, "missing"), http.StatusNotFound)
}
