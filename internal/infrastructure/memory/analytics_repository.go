package memory

import (
	"context"
	"sort"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type analyticsRepository struct {
	l *ledger
}

func (r *analyticsRepository) Compute(ctx context.Context, opts domainRepo.AnalyticsOptions) (*entity.AnalyticsSnapshot, error) {
	var snapshot *entity.AnalyticsSnapshot
	r.l.read(func(st *state) {
		snapshot = computeSnapshot(st, opts)
	})
	return snapshot, nil
}

func (r *analyticsRepository) Publish(ctx context.Context, snapshot *entity.AnalyticsSnapshot) error {
	r.l.write(func(st *state) {
		st.snapshot = snapshot
	})
	return nil
}

func (r *analyticsRepository) Snapshot(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	var snapshot *entity.AnalyticsSnapshot
	r.l.read(func(st *state) {
		snapshot = st.snapshot
	})
	return snapshot, nil
}

func computeSnapshot(st *state, opts domainRepo.AnalyticsOptions) *entity.AnalyticsSnapshot {
	costs := make(map[string]decimal.Decimal, len(st.articles))
	for _, a := range st.articles {
		costs[a.ID] = a.Cost
	}

	var (
		totalSales int
		revenue    = decimal.Zero
		debt       = decimal.Zero
		cogs       = decimal.Zero
	)
	for _, s := range st.sales {
		if s.Paid {
			totalSales++
			revenue = revenue.Add(s.Total)
			// COGS is valued at the article's current cost
			for _, item := range s.Items {
				cogs = cogs.Add(costs[item.ArticleID].Mul(item.Quantity))
			}
			continue
		}
		revenue = revenue.Add(s.PaidAmount)
		debt = debt.Add(s.Total.Sub(s.PaidAmount))
	}

	inventory := decimal.Zero
	for _, a := range st.articles {
		if opts.InventoryActiveOnly && !a.IsSelectable() {
			continue
		}
		inventory = inventory.Add(a.Cost.Mul(a.CurrentStock))
	}

	return &entity.AnalyticsSnapshot{
		Analytics: entity.DashboardAnalytics{
			TotalSales:     totalSales,
			TotalRevenue:   entity.Round2(revenue),
			TotalProfit:    entity.Round2(revenue.Sub(cogs)),
			TotalDebt:      entity.Round2(debt),
			InventoryValue: entity.Round2(inventory),
		},
		TopProducts:   topProducts(st.sales),
		ActiveClients: activeClients(st.sales),
	}
}

func topProducts(sales []*entity.Sale) []entity.TopProduct {
	index := make(map[string]int)
	products := []entity.TopProduct{}
	for _, s := range sales {
		for _, item := range s.Items {
			i, ok := index[item.ArticleID]
			if !ok {
				i = len(products)
				index[item.ArticleID] = i
				products = append(products, entity.TopProduct{
					ArticleID:    item.ArticleID,
					ArticleName:  item.ArticleName,
					QuantitySold: decimal.Zero,
				})
			}
			products[i].QuantitySold = products[i].QuantitySold.Add(item.Quantity)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].QuantitySold.GreaterThan(products[j].QuantitySold)
	})
	if len(products) > entity.TopListSize {
		products = products[:entity.TopListSize]
	}
	return products
}

func activeClients(sales []*entity.Sale) []entity.ActiveClient {
	index := make(map[string]int)
	clients := []entity.ActiveClient{}
	for _, s := range sales {
		i, ok := index[s.ClientID]
		if !ok {
			i = len(clients)
			index[s.ClientID] = i
			clients = append(clients, entity.ActiveClient{
				ClientID:   s.ClientID,
				ClientName: s.ClientName,
			})
		}
		clients[i].TotalPurchases++
	}

	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].TotalPurchases > clients[j].TotalPurchases
	})
	if len(clients) > entity.TopListSize {
		clients = clients[:entity.TopListSize]
	}
	return clients
}
