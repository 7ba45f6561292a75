package repository

import (
	"context"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ClientArticlePriceRepository remembers the last price charged per client and article
type ClientArticlePriceRepository interface {
	Get(ctx context.Context, clientID, articleID string) (*entity.ClientArticlePrice, error)
	// Upsert creates or replaces the entry for the (client, article) pair.
	// A zero usedAt is stamped with the store clock.
	Upsert(ctx context.Context, clientID, articleID string, price decimal.Decimal, priceType enum.PriceType, usedAt time.Time) error
	All(ctx context.Context) ([]entity.ClientArticlePrice, error)
}
