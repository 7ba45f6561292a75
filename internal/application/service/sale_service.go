package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SaleService handles sales and the payment ledger
type SaleService struct {
	store     repository.Store
	analytics AnalyticsRefresher
}

// NewSaleService creates a new sale service
func NewSaleService(store repository.Store, analytics AnalyticsRefresher) *SaleService {
	return &SaleService{store: store, analytics: analytics}
}

// SaleItemInput represents a line of a new sale.
// PriceType and UnitPrice are both optional, see resolvePrice.
type SaleItemInput struct {
	ArticleID string
	Quantity  decimal.Decimal
	PriceType enum.PriceType
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	Username        string
	ClientID        string
	ClientReference *string
	Date            *time.Time
	// Paid records the whole total as paid at creation
	Paid bool
	// PaidAmount is an initial partial payment, ignored when Paid is set
	PaidAmount *decimal.Decimal
	Items      []SaleItemInput
}

func (in *CreateSaleInput) validate() error {
	var fe apperror.FieldErrors
	requireText(&fe, "clientId", "Customer is required", in.ClientID)
	if len(in.Items) == 0 {
		fe.Add("items", "At least one item is required")
	}
	for i, item := range in.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		requireText(&fe, prefix+"articleId", "Article must be selected", item.ArticleID)
		requirePositive(&fe, prefix+"quantity", "Quantity", item.Quantity)
		if item.UnitPrice != nil {
			requirePositive(&fe, prefix+"unitPrice", "Unit price", *item.UnitPrice)
		}
		if item.PriceType != "" && !item.PriceType.IsValid() {
			fe.Add(prefix+"priceType", "Unknown price type")
		}
		if item.PriceType == enum.PriceTypeCustom && item.UnitPrice == nil {
			fe.Add(prefix+"unitPrice", "Unit price is required for a custom price")
		}
	}
	requireNonNegative(&fe, "paidAmount", "Paid amount", in.PaidAmount)
	return fe.Err()
}

// RecordSale stores a sale, takes its items out of stock, remembers the
// prices charged to the client and records any initial payment.
func (s *SaleService) RecordSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		client, err := tx.Clients().GetByID(ctx, input.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return apperror.NewNotFoundError("Client")
		}

		total := decimal.Zero
		items := make([]entity.SaleItem, 0, len(input.Items))
		for i, item := range input.Items {
			field := fmt.Sprintf("items[%d].", i)
			article, err := tx.Articles().GetByID(ctx, item.ArticleID)
			if err != nil {
				return err
			}
			if article == nil {
				return apperror.NewFieldError(field+"articleId", "Article not found")
			}

			priceType, unitPrice, err := resolvePrice(ctx, tx, client.ID, article, item)
			if err != nil {
				return err
			}
			if !unitPrice.IsPositive() {
				return apperror.NewFieldError(field+"unitPrice", "Unit price must be positive")
			}

			lineTotal := entity.LineTotal(unitPrice, item.Quantity)
			total = total.Add(lineTotal)
			items = append(items, entity.SaleItem{
				ArticleID:   article.ID,
				ArticleCode: article.Code1,
				ArticleName: article.Name,
				PriceType:   priceType,
				UnitPrice:   unitPrice,
				Quantity:    item.Quantity,
				Total:       lineTotal,
				Cost:        article.Cost,
			})
		}
		total = entity.Round2(total)
		if !total.IsPositive() {
			return apperror.NewFieldError("items", "Sale total must be positive")
		}

		initial := decimal.Zero
		if input.Paid {
			initial = total
		} else if input.PaidAmount != nil {
			initial = *input.PaidAmount
		}
		if initial.GreaterThan(total) {
			return apperror.NewFieldError("paidAmount", "Paid amount cannot exceed the sale total")
		}

		number, err := tx.Sales().NextNumber(ctx)
		if err != nil {
			return err
		}

		var date time.Time
		if input.Date != nil {
			date = *input.Date
		}

		sale = &entity.Sale{
			Number:          number,
			ClientID:        client.ID,
			ClientName:      client.Name,
			ClientReference: trimPtr(input.ClientReference),
			Username:        strings.TrimSpace(input.Username),
			Date:            date,
			PriceType:       items[0].PriceType,
			UnitPrice:       items[0].UnitPrice,
			Total:           total,
			PaidAmount:      decimal.Zero,
			Items:           items,
		}
		if err := tx.Sales().Create(ctx, sale); err != nil {
			return err
		}

		for _, item := range items {
			found, err := tx.Articles().AdjustStock(ctx, item.ArticleID, item.Quantity.Neg())
			if err != nil {
				return err
			}
			if !found {
				log.Printf("Warning: sale %d references missing article %s", number, item.ArticleID)
			}
			if err := tx.Prices().Upsert(ctx, client.ID, item.ArticleID, item.UnitPrice, item.PriceType, time.Time{}); err != nil {
				return err
			}
		}

		if initial.IsPositive() {
			updated, _, err := applyPayment(ctx, tx, sale, initial, time.Time{})
			if err != nil {
				return err
			}
			sale = updated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refresh(ctx, s.analytics)
	return sale, nil
}

// resolvePrice picks the tier and unit price of a sale line.
//
// An explicit unit price keeps the requested tier when it matches that tier's
// price, otherwise the first matching tier, otherwise Custom. An explicit tier
// without a price charges the tier price. With neither, the client's last used
// price for the article is reused, falling back to Price 1.
func resolvePrice(ctx context.Context, tx repository.Ledger, clientID string, article *entity.Article, item SaleItemInput) (enum.PriceType, decimal.Decimal, error) {
	if item.UnitPrice != nil {
		price := *item.UnitPrice
		if tierPrice, ok := article.TierPrice(item.PriceType); ok && tierPrice.Equal(price) {
			return item.PriceType, price, nil
		}
		if tier, ok := article.MatchTier(price); ok {
			return tier, price, nil
		}
		return enum.PriceTypeCustom, price, nil
	}

	if price, ok := article.TierPrice(item.PriceType); ok {
		return item.PriceType, price, nil
	}

	last, err := tx.Prices().Get(ctx, clientID, article.ID)
	if err != nil {
		return "", decimal.Zero, err
	}
	if last != nil {
		return last.PriceType, last.LastPrice, nil
	}
	return enum.PriceType1, article.Price1, nil
}

// applyPayment appends a payment to the ledger and rewrites the cached paid
// state of the sale from the ledger sum. Overpayment is rejected.
func applyPayment(ctx context.Context, tx repository.Ledger, sale *entity.Sale, amount decimal.Decimal, at time.Time) (*entity.Sale, *entity.Payment, error) {
	paid, err := tx.Payments().SumBySale(ctx, sale.ID)
	if err != nil {
		return nil, nil, err
	}

	remaining := sale.Total.Sub(paid)
	if amount.GreaterThan(remaining) {
		if !remaining.IsPositive() {
			return nil, nil, apperror.NewFieldError("amount", "Sale is already fully paid")
		}
		return nil, nil, apperror.NewFieldError("amount",
			fmt.Sprintf("Payment exceeds the remaining balance of %s", remaining.StringFixed(entity.MoneyPlaces)))
	}

	payment := &entity.Payment{
		SaleID:    sale.ID,
		Amount:    amount,
		Timestamp: at,
	}
	if err := tx.Payments().Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	paid = paid.Add(amount)
	if _, err := tx.Sales().SetPaid(ctx, sale.ID, paid, paid.GreaterThanOrEqual(sale.Total)); err != nil {
		return nil, nil, err
	}

	updated, err := tx.Sales().GetByID(ctx, sale.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, payment, nil
}

// RecordPayment adds a payment towards a sale
func (s *SaleService) RecordPayment(ctx context.Context, saleID string, amount decimal.Decimal) (*entity.Sale, *entity.Payment, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.NewFieldError("amount", "Amount must be positive")
	}

	var (
		sale    *entity.Sale
		payment *entity.Payment
	)
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		existing, err := tx.Sales().GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewNotFoundError("Sale")
		}
		sale, payment, err = applyPayment(ctx, tx, existing, amount, time.Time{})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	refresh(ctx, s.analytics)
	return sale, payment, nil
}

// SettleSale pays the remaining balance of a sale in one payment
func (s *SaleService) SettleSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		existing, err := tx.Sales().GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewNotFoundError("Sale")
		}

		paid, err := tx.Payments().SumBySale(ctx, saleID)
		if err != nil {
			return err
		}
		remaining := existing.Total.Sub(paid)
		if !remaining.IsPositive() {
			return apperror.NewConflictError("Sale is already fully paid")
		}

		sale, _, err = applyPayment(ctx, tx, existing, remaining, time.Time{})
		return err
	})
	if err != nil {
		return nil, err
	}

	refresh(ctx, s.analytics)
	return sale, nil
}

// DeleteSale removes a sale and returns its quantities to stock.
// Payments already recorded stay in the ledger.
func (s *SaleService) DeleteSale(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx repository.Ledger) error {
		sale, err := tx.Sales().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if _, err := tx.Sales().Delete(ctx, id); err != nil {
			return err
		}

		for _, item := range sale.Items {
			found, err := tx.Articles().AdjustStock(ctx, item.ArticleID, item.Quantity)
			if err != nil {
				return err
			}
			if !found {
				log.Printf("Warning: deleted sale %d references missing article %s", sale.Number, item.ArticleID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	refresh(ctx, s.analytics)
	return nil
}

// UpdateSaleReference sets or clears the client reference of a sale
func (s *SaleService) UpdateSaleReference(ctx context.Context, id string, reference string) (*entity.Sale, error) {
	sale, err := s.store.Sales().SetReference(ctx, id, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := s.store.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales newest first
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	return s.store.Sales().List(ctx, params)
}

// ListPayments lists the payments recorded for a sale, newest first.
// Payments of a deleted sale are still returned.
func (s *SaleService) ListPayments(ctx context.Context, saleID string) ([]entity.Payment, error) {
	return s.store.Payments().ListBySale(ctx, saleID)
}

// GetLastUsedPrice returns the last price charged to a client for an article,
// or nil if the pair has never been sold
func (s *SaleService) GetLastUsedPrice(ctx context.Context, clientID, articleID string) (*entity.ClientArticlePrice, error) {
	return s.store.Prices().Get(ctx, clientID, articleID)
}

// PaymentStatus reports whether a sale is unpaid, partially paid or paid
func (s *SaleService) PaymentStatus(ctx context.Context, id string) (enum.PaymentStatus, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return enum.PaymentStatusUnpaid, err
	}
	return sale.Status(), nil
}
