package entity

import "github.com/shopspring/decimal"

// TopListSize caps the top products and active clients lists
const TopListSize = 10

// DashboardAnalytics holds the aggregates derived from sales and articles
type DashboardAnalytics struct {
	TotalSales     int             `json:"totalSales"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

// TopProduct is an article ranked by quantity sold
type TopProduct struct {
	ArticleID    string          `json:"articleId"`
	ArticleName  string          `json:"articleName"`
	QuantitySold decimal.Decimal `json:"quantitySold"`
}

// ActiveClient is a client ranked by number of sales
type ActiveClient struct {
	ClientID       string `json:"clientId"`
	ClientName     string `json:"clientName"`
	TotalPurchases int    `json:"totalPurchases"`
}

// AnalyticsSnapshot is the last published result of an analytics refresh
type AnalyticsSnapshot struct {
	Analytics     DashboardAnalytics `json:"analytics"`
	TopProducts   []TopProduct       `json:"topProducts"`
	ActiveClients []ActiveClient     `json:"activeClients"`
}

// Equal reports whether two snapshots carry identical aggregates
func (s *AnalyticsSnapshot) Equal(o *AnalyticsSnapshot) bool {
	a, b := s.Analytics, o.Analytics
	if a.TotalSales != b.TotalSales ||
		!a.TotalRevenue.Equal(b.TotalRevenue) ||
		!a.TotalProfit.Equal(b.TotalProfit) ||
		!a.TotalDebt.Equal(b.TotalDebt) ||
		!a.InventoryValue.Equal(b.InventoryValue) {
		return false
	}
	if len(s.TopProducts) != len(o.TopProducts) || len(s.ActiveClients) != len(o.ActiveClients) {
		return false
	}
	for i := range s.TopProducts {
		x, y := s.TopProducts[i], o.TopProducts[i]
		if x.ArticleID != y.ArticleID || x.ArticleName != y.ArticleName || !x.QuantitySold.Equal(y.QuantitySold) {
			return false
		}
	}
	for i := range s.ActiveClients {
		if s.ActiveClients[i] != o.ActiveClients[i] {
			return false
		}
	}
	return true
}
