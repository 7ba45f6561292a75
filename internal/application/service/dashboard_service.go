package service

import (
	"context"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DailySalesDays is the number of days covered by the dashboard sales chart
const DailySalesDays = 7

// DashboardService derives analytics and serves the dashboard panels
type DashboardService struct {
	store repository.Store
	opts  repository.AnalyticsOptions
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repository.Store, opts repository.AnalyticsOptions) *DashboardService {
	return &DashboardService{store: store, opts: opts}
}

// Dashboard represents everything shown on the dashboard page
type Dashboard struct {
	Analytics           entity.DashboardAnalytics `json:"analytics"`
	TopProducts         []entity.TopProduct       `json:"topProducts"`
	ActiveClients       []entity.ActiveClient     `json:"activeClients"`
	UnreadNotifications int                       `json:"unreadNotifications"`
	LowStockCount       int                       `json:"lowStockCount"`
	DailySalesData      []DailySalesPoint         `json:"dailySalesData"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RefreshAnalytics recomputes the aggregates from the current collections and
// publishes them. Calling it again without a mutation in between yields the
// same snapshot.
func (s *DashboardService) RefreshAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	var snapshot *entity.AnalyticsSnapshot
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		computed, err := tx.Analytics().Compute(ctx, s.opts)
		if err != nil {
			return err
		}
		snapshot = computed
		return tx.Analytics().Publish(ctx, computed)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetDashboard returns the last published analytics with the panel counters.
// The snapshot is computed on first use.
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	snapshot, err := s.store.Analytics().Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		if snapshot, err = s.RefreshAnalytics(ctx); err != nil {
			return nil, err
		}
	}

	unread, err := s.store.Notifications().UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.store.Articles().GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.store.Sales().All(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Analytics:           snapshot.Analytics,
		TopProducts:         snapshot.TopProducts,
		ActiveClients:       snapshot.ActiveClients,
		UnreadNotifications: unread,
		LowStockCount:       len(lowStock),
		DailySalesData:      dailySales(sales, time.Now()),
	}, nil
}

// dailySales sums the collected revenue of each of the last days, oldest first
func dailySales(sales []entity.Sale, now time.Time) []DailySalesPoint {
	points := make([]DailySalesPoint, 0, DailySalesDays)
	for i := DailySalesDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		dateStr := date.Format("2006-01-02")

		revenue := decimal.Zero
		for _, sale := range sales {
			if sale.Date.Format("2006-01-02") != dateStr {
				continue
			}
			if sale.Paid {
				revenue = revenue.Add(sale.Total)
			} else {
				revenue = revenue.Add(sale.PaidAmount)
			}
		}

		points = append(points, DailySalesPoint{
			Date:    date.Format("Jan 02"),
			Revenue: entity.Round2(revenue),
		})
	}
	return points
}

// ListNotifications lists notifications newest first
func (s *DashboardService) ListNotifications(ctx context.Context, unreadOnly bool) ([]entity.Notification, error) {
	return s.store.Notifications().List(ctx, unreadOnly)
}

// MarkNotificationRead marks one notification as read
func (s *DashboardService) MarkNotificationRead(ctx context.Context, id string) error {
	found, err := s.store.Notifications().MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Notification")
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read and returns how many changed
func (s *DashboardService) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	return s.store.Notifications().MarkAllRead(ctx)
}
