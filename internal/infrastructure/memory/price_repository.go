package memory

import (
	"context"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

type priceRepository struct {
	l *ledger
}

func (r *priceRepository) Get(ctx context.Context, clientID, articleID string) (*entity.ClientArticlePrice, error) {
	var found *entity.ClientArticlePrice
	r.l.read(func(st *state) {
		for _, p := range st.prices {
			if p.ClientID == clientID && p.ArticleID == articleID {
				cp := p
				found = &cp
				return
			}
		}
	})
	return found, nil
}

func (r *priceRepository) Upsert(ctx context.Context, clientID, articleID string, price decimal.Decimal, priceType enum.PriceType, usedAt time.Time) error {
	r.l.write(func(st *state) {
		if usedAt.IsZero() {
			usedAt = r.l.now()
		}
		for i := range st.prices {
			p := &st.prices[i]
			if p.ClientID == clientID && p.ArticleID == articleID {
				p.LastPrice = price
				p.PriceType = priceType
				p.LastUsedAt = usedAt
				return
			}
		}
		st.prices = append(st.prices, entity.ClientArticlePrice{
			ID:         newID(),
			ClientID:   clientID,
			ArticleID:  articleID,
			LastPrice:  price,
			PriceType:  priceType,
			LastUsedAt: usedAt,
		})
	})
	return nil
}

func (r *priceRepository) All(ctx context.Context) ([]entity.ClientArticlePrice, error) {
	var prices []entity.ClientArticlePrice
	r.l.read(func(st *state) {
		prices = append([]entity.ClientArticlePrice(nil), st.prices...)
	})
	return prices, nil
}
