package request

import (
	"time"

	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PurchaseRequest represents a purchase creation request
type PurchaseRequest struct {
	SupplierID string                `json:"supplierId"`
	Date       *time.Time            `json:"date"`
	Items      []PurchaseItemRequest `json:"items"`
}

// PurchaseItemRequest represents one purchase line
type PurchaseItemRequest struct {
	ArticleID string          `json:"articleId"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// SaleRequest represents a sale creation request
type SaleRequest struct {
	ClientID        string            `json:"clientId"`
	ClientReference *string           `json:"clientReference"`
	Date            *time.Time        `json:"date"`
	Paid            bool              `json:"paid"`
	PaidAmount      *decimal.Decimal  `json:"paidAmount"`
	Items           []SaleItemRequest `json:"items"`
}

// SaleItemRequest represents one sale line. PriceType and UnitPrice may be omitted.
type SaleItemRequest struct {
	ArticleID string           `json:"articleId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	PriceType enum.PriceType   `json:"priceType"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// PaymentRequest represents a payment towards a sale
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SaleReferenceRequest sets or clears the client reference of a sale
type SaleReferenceRequest struct {
	ClientReference string `json:"clientReference" binding:"max=255"`
}

// TransactionFilterRequest represents purchase and sale list parameters
type TransactionFilterRequest struct {
	Search     string `form:"search"`
	SupplierID string `form:"supplier_id"`
	ClientID   string `form:"client_id"`
	Username   string `form:"username"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
