package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ArticleSearchLimit caps the suggestions returned by SearchArticles
const ArticleSearchLimit = 10

// ArticleService handles article-related operations
type ArticleService struct {
	store     repository.Store
	analytics AnalyticsRefresher
}

// NewArticleService creates a new article service
func NewArticleService(store repository.Store, analytics AnalyticsRefresher) *ArticleService {
	return &ArticleService{store: store, analytics: analytics}
}

// ArticleInput represents the full set of editable article fields
type ArticleInput struct {
	Name         string
	Code1        string
	Code2        *string
	Cost         decimal.Decimal
	CurrentStock decimal.Decimal
	MinimumStock *decimal.Decimal
	Price1       decimal.Decimal
	Price2       *decimal.Decimal
	Price3       *decimal.Decimal
	SupplierID   *string
	Unit         string
	Active       *bool
}

// CreateArticle validates and adds a new article
func (s *ArticleService) CreateArticle(ctx context.Context, input *ArticleInput) (*entity.Article, error) {
	return s.SaveArticle(ctx, "", input)
}

// UpdateArticle validates and overwrites an existing article.
// Saving an article also restores it if it was deleted.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, input *ArticleInput) (*entity.Article, error) {
	return s.SaveArticle(ctx, id, input)
}

// SaveArticle creates an article when id is empty, otherwise fully edits it
func (s *ArticleService) SaveArticle(ctx context.Context, id string, input *ArticleInput) (*entity.Article, error) {
	var saved *entity.Article

	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		var existing *entity.Article
		if id != "" {
			var err error
			existing, err = tx.Articles().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if existing == nil {
				return apperror.NewNotFoundError("Article")
			}
		}

		if err := s.validate(ctx, tx, id, input); err != nil {
			return err
		}

		article := buildArticle(input)
		if existing == nil {
			if err := tx.Articles().Create(ctx, article); err != nil {
				return err
			}
			saved = article
		} else {
			article.ID = existing.ID
			updated, err := tx.Articles().Save(ctx, article)
			if err != nil {
				return err
			}
			saved = updated
		}

		return notifyLowStock(ctx, tx, saved)
	})
	if err != nil {
		return nil, err
	}

	refresh(ctx, s.analytics)
	return saved, nil
}

func (s *ArticleService) validate(ctx context.Context, tx repository.Ledger, id string, input *ArticleInput) error {
	var fe apperror.FieldErrors

	requireText(&fe, "code1", "Article Code is required", input.Code1)
	requireText(&fe, "name", "Name is required", input.Name)
	requireNonNegative(&fe, "cost", "Cost", &input.Cost)
	requireNonNegative(&fe, "currentStock", "Current stock", &input.CurrentStock)
	requireNonNegative(&fe, "price1", "Price 1", &input.Price1)
	requireNonNegative(&fe, "price2", "Price 2", input.Price2)
	requireNonNegative(&fe, "price3", "Price 3", input.Price3)
	requireNonNegative(&fe, "minimumStock", "Minimum stock", input.MinimumStock)
	if input.MinimumStock != nil && !fe.Has("minimumStock") && input.MinimumStock.GreaterThan(input.CurrentStock) {
		fe.Add("minimumStock", "Minimum stock cannot exceed current stock")
	}

	if !fe.Has("code1") {
		other, err := tx.Articles().GetByCode(ctx, strings.TrimSpace(input.Code1))
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			fe.Add("code1", "Article Code already exists")
		}
	}

	return fe.Err()
}

func buildArticle(input *ArticleInput) *entity.Article {
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	return &entity.Article{
		Name:         strings.TrimSpace(input.Name),
		Code1:        strings.TrimSpace(input.Code1),
		Code2:        trimPtr(input.Code2),
		Cost:         input.Cost,
		CurrentStock: input.CurrentStock,
		MinimumStock: input.MinimumStock,
		Price1:       input.Price1,
		Price2:       input.Price2,
		Price3:       input.Price3,
		SupplierID:   trimPtr(input.SupplierID),
		Unit:         unit,
		Active:       active,
		Deleted:      false,
	}
}

// notifyLowStock raises a Low Stock notification on every save that leaves
// the article at or below its minimum. Earlier notifications are not checked.
func notifyLowStock(ctx context.Context, tx repository.Ledger, article *entity.Article) error {
	if !article.IsLowStock() {
		return nil
	}
	return tx.Notifications().Add(ctx, &entity.Notification{
		Type:        enum.NotificationTypeLowStock,
		Description: fmt.Sprintf("Article %s has reached minimum stock level", article.Name),
	})
}

// inlineFields lists the article columns editable from the articles table
var inlineFields = map[string]string{
	"cost":         "Cost",
	"currentStock": "Current stock",
	"minimumStock": "Minimum stock",
	"price1":       "Price 1",
	"price2":       "Price 2",
	"price3":       "Price 3",
}

// PatchArticle updates a single numeric column from an inline table edit.
// An empty value is read as zero. No notification is raised.
func (s *ArticleService) PatchArticle(ctx context.Context, id, field, value string) (*entity.Article, error) {
	label, ok := inlineFields[field]
	if !ok {
		return nil, apperror.NewFieldError("field", fmt.Sprintf("Field %q cannot be edited inline", field))
	}

	amount := decimal.Zero
	if v := strings.TrimSpace(value); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return nil, apperror.NewFieldError(field, label+" must be a number")
		}
		amount = parsed
	}
	if amount.IsNegative() {
		return nil, apperror.NewFieldError(field, label+" must be non-negative")
	}

	patch := &entity.ArticlePatch{}
	switch field {
	case "cost":
		patch.Cost = &amount
	case "currentStock":
		patch.CurrentStock = &amount
	case "minimumStock":
		patch.MinimumStock = &amount
	case "price1":
		patch.Price1 = &amount
	case "price2":
		patch.Price2 = &amount
	case "price3":
		patch.Price3 = &amount
	}

	updated, err := s.store.Articles().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("Article")
	}

	refresh(ctx, s.analytics)
	return updated, nil
}

// DeleteArticle soft-deletes an article
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	found, err := s.store.Articles().SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Article")
	}
	refresh(ctx, s.analytics)
	return nil
}

// GetArticle retrieves an article by ID, including deleted ones
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*entity.Article, error) {
	article, err := s.store.Articles().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}
	return article, nil
}

// ListArticles lists articles by lifecycle filter and name search
func (s *ArticleService) ListArticles(ctx context.Context, params *repository.ArticleFilterParams) ([]entity.Article, error) {
	return s.store.Articles().List(ctx, params)
}

// SearchArticles returns selectable articles matching a code or name
func (s *ArticleService) SearchArticles(ctx context.Context, query string) ([]entity.Article, error) {
	return s.store.Articles().Search(ctx, query, ArticleSearchLimit)
}

// ListLowStock lists non-deleted articles at or below their minimum stock
func (s *ArticleService) ListLowStock(ctx context.Context) ([]entity.Article, error) {
	return s.store.Articles().GetLowStock(ctx)
}
