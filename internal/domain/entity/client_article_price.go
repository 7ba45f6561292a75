package entity

import (
	"time"

	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ClientArticlePrice remembers the last price a client was charged for an article
type ClientArticlePrice struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"clientId"`
	ArticleID  string          `json:"articleId"`
	LastPrice  decimal.Decimal `json:"lastPrice"`
	PriceType  enum.PriceType  `json:"priceType"`
	LastUsedAt time.Time       `json:"lastUsedAt"`
}
