package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	store     repository.Store
	analytics AnalyticsRefresher
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(store repository.Store, analytics AnalyticsRefresher) *PurchaseService {
	return &PurchaseService{store: store, analytics: analytics}
}

// PurchaseItemInput represents an item in a purchase
type PurchaseItemInput struct {
	ArticleID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	Username   string
	SupplierID string
	Date       *time.Time
	Items      []PurchaseItemInput
}

func (in *CreatePurchaseInput) validate() error {
	var fe apperror.FieldErrors
	requireText(&fe, "supplierId", "Supplier is required", in.SupplierID)
	if len(in.Items) == 0 {
		fe.Add("items", "At least one item is required")
	}
	for i, item := range in.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		requireText(&fe, prefix+"articleId", "Article must be selected", item.ArticleID)
		requirePositive(&fe, prefix+"unitCost", "Unit cost", item.UnitCost)
		requirePositive(&fe, prefix+"quantity", "Quantity", item.Quantity)
	}
	return fe.Err()
}

// RecordPurchase stores a purchase and brings its items into stock.
// Each line adds its quantity to the article and replaces the article cost.
func (s *PurchaseService) RecordPurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var purchase *entity.Purchase
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		supplier, err := tx.Suppliers().GetByID(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		total := decimal.Zero
		items := make([]entity.PurchaseItem, 0, len(input.Items))
		for i, item := range input.Items {
			article, err := tx.Articles().GetByID(ctx, item.ArticleID)
			if err != nil {
				return err
			}
			if article == nil {
				return apperror.NewFieldError(fmt.Sprintf("items[%d].articleId", i), "Article not found")
			}

			lineTotal := entity.LineTotal(item.UnitCost, item.Quantity)
			total = total.Add(lineTotal)
			items = append(items, entity.PurchaseItem{
				ArticleID:   article.ID,
				ArticleCode: article.Code1,
				ArticleName: article.Name,
				UnitCost:    item.UnitCost,
				Quantity:    item.Quantity,
				Total:       lineTotal,
			})
		}

		number, err := tx.Purchases().NextNumber(ctx)
		if err != nil {
			return err
		}

		var date time.Time
		if input.Date != nil {
			date = *input.Date
		}

		purchase = &entity.Purchase{
			Number:       number,
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			Username:     strings.TrimSpace(input.Username),
			Date:         date,
			Total:        entity.Round2(total),
			Items:        items,
		}
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		for _, item := range items {
			found, err := tx.Articles().AdjustStock(ctx, item.ArticleID, item.Quantity)
			if err != nil {
				return err
			}
			if !found {
				log.Printf("Warning: purchase %d references missing article %s", number, item.ArticleID)
				continue
			}
			if _, err := tx.Articles().SetCost(ctx, item.ArticleID, item.UnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refresh(ctx, s.analytics)
	return purchase, nil
}

// DeletePurchase removes a purchase. Stock and cost are left as they are.
func (s *PurchaseService) DeletePurchase(ctx context.Context, id string) error {
	found, err := s.store.Purchases().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Purchase")
	}
	return nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	purchase, err := s.store.Purchases().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases newest first
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) ([]entity.Purchase, error) {
	return s.store.Purchases().List(ctx, params)
}
