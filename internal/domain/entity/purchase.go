package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a stock purchase from a supplier.
// SupplierName and the item snapshots are frozen at creation.
type Purchase struct {
	ID           string          `json:"id"`
	Number       int             `json:"number"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	Username     string          `json:"username"`
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
	Items        []PurchaseItem  `json:"items"`
}

// PurchaseItem represents one line of a purchase
type PurchaseItem struct {
	ArticleID   string          `json:"articleId"`
	ArticleCode string          `json:"articleCode"`
	ArticleName string          `json:"articleName"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    decimal.Decimal `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// Clone returns a deep copy of the purchase
func (p *Purchase) Clone() *Purchase {
	c := *p
	c.Items = append([]PurchaseItem(nil), p.Items...)
	return &c
}
