package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ArticleRepository defines the interface for article data operations.
// Implementations merge what they are given without validating it.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	// Save overwrites an existing article, keeping its id and creation time.
	// Returns nil if the id is unknown.
	Save(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// Update merges the patch and returns the updated article, or nil if the id is unknown
	Update(ctx context.Context, id string, patch *entity.ArticlePatch) (*entity.Article, error)
	// SoftDelete flags the article as deleted; the record stays addressable by id
	SoftDelete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params *ArticleFilterParams) ([]entity.Article, error)
	// Search matches code1, code2 or name over active, non-deleted articles
	Search(ctx context.Context, query string, limit int) ([]entity.Article, error)
	GetLowStock(ctx context.Context) ([]entity.Article, error)
	// AdjustStock adds delta to the stock, clamping the result at zero.
	// Returns false if the article does not exist.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
	SetCost(ctx context.Context, id string, cost decimal.Decimal) (bool, error)
	Codes(ctx context.Context) ([]string, error)
}

// ArticleFilterParams contains filtering parameters for article queries
type ArticleFilterParams struct {
	Filter enum.ArticleFilter
	Search string
}
