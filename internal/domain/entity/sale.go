package entity

import (
	"time"

	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale represents a sale to a client.
// PriceType and UnitPrice mirror the first line item.
// PaidAmount is a cache of the payment ledger sum for this sale.
type Sale struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"`
	ClientID        string          `json:"clientId"`
	ClientName      string          `json:"clientName"`
	ClientReference *string         `json:"clientReference,omitempty"`
	Username        string          `json:"username"`
	Date            time.Time       `json:"date"`
	PriceType       enum.PriceType  `json:"priceType"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Total           decimal.Decimal `json:"total"`
	Paid            bool            `json:"paid"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Items           []SaleItem      `json:"items"`
}

// SaleItem represents one line of a sale
type SaleItem struct {
	ArticleID   string          `json:"articleId"`
	ArticleCode string          `json:"articleCode"`
	ArticleName string          `json:"articleName"`
	PriceType   enum.PriceType  `json:"priceType"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    decimal.Decimal `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Cost        decimal.Decimal `json:"cost"`
}

// Remaining returns the unpaid balance, never negative
func (s *Sale) Remaining() decimal.Decimal {
	r := s.Total.Sub(s.PaidAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Status derives the payment state from the paid amount
func (s *Sale) Status() enum.PaymentStatus {
	switch {
	case s.Paid || s.PaidAmount.GreaterThanOrEqual(s.Total):
		return enum.PaymentStatusPaid
	case s.PaidAmount.IsPositive():
		return enum.PaymentStatusPartiallyPaid
	default:
		return enum.PaymentStatusUnpaid
	}
}

// Clone returns a deep copy of the sale
func (s *Sale) Clone() *Sale {
	c := *s
	c.ClientReference = cloneStringPtr(s.ClientReference)
	c.Items = append([]SaleItem(nil), s.Items...)
	return &c
}
