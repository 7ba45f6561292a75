package entity

import (
	"time"

	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DefaultUnit is used when an article is saved without a unit
const DefaultUnit = "pcs"

// Units lists the measurement units offered when editing an article
var Units = []string{"pcs", "kg", "g", "L", "mL", "m", "cm", "box", "pack"}

// Article represents a stock-keeping unit in the inventory
type Article struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Code1        string           `json:"code1"`
	Code2        *string          `json:"code2,omitempty"`
	Cost         decimal.Decimal  `json:"cost"`
	CurrentStock decimal.Decimal  `json:"currentStock"`
	MinimumStock *decimal.Decimal `json:"minimumStock,omitempty"`
	Price1       decimal.Decimal  `json:"price1"`
	Price2       *decimal.Decimal `json:"price2,omitempty"`
	Price3       *decimal.Decimal `json:"price3,omitempty"`
	SupplierID   *string          `json:"supplierId,omitempty"`
	Unit         string           `json:"unit"`
	Active       bool             `json:"active"`
	Deleted      bool             `json:"deleted"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// IsLowStock reports whether the stock has reached the minimum level
func (a *Article) IsLowStock() bool {
	return a.MinimumStock != nil && a.CurrentStock.LessThanOrEqual(*a.MinimumStock)
}

// IsSelectable reports whether the article may be picked for a new transaction
func (a *Article) IsSelectable() bool {
	return a.Active && !a.Deleted
}

// TierPrice returns the price for a tier. Unset Price 2 and Price 3
// fall back to Price 1. Custom has no tier price.
func (a *Article) TierPrice(t enum.PriceType) (decimal.Decimal, bool) {
	switch t {
	case enum.PriceType1:
		return a.Price1, true
	case enum.PriceType2:
		if a.Price2 != nil {
			return *a.Price2, true
		}
		return a.Price1, true
	case enum.PriceType3:
		if a.Price3 != nil {
			return *a.Price3, true
		}
		return a.Price1, true
	}
	return decimal.Zero, false
}

// MatchTier finds the tier whose configured price equals price
func (a *Article) MatchTier(price decimal.Decimal) (enum.PriceType, bool) {
	if a.Price1.Equal(price) {
		return enum.PriceType1, true
	}
	if a.Price2 != nil && a.Price2.Equal(price) {
		return enum.PriceType2, true
	}
	if a.Price3 != nil && a.Price3.Equal(price) {
		return enum.PriceType3, true
	}
	return "", false
}

// Clone returns a deep copy of the article
func (a *Article) Clone() *Article {
	c := *a
	c.Code2 = cloneStringPtr(a.Code2)
	c.MinimumStock = cloneDecimalPtr(a.MinimumStock)
	c.Price2 = cloneDecimalPtr(a.Price2)
	c.Price3 = cloneDecimalPtr(a.Price3)
	c.SupplierID = cloneStringPtr(a.SupplierID)
	return &c
}

// ArticlePatch holds a partial article update. Nil fields are left untouched.
type ArticlePatch struct {
	Name         *string
	Code1        *string
	Code2        *string
	Cost         *decimal.Decimal
	CurrentStock *decimal.Decimal
	MinimumStock *decimal.Decimal
	Price1       *decimal.Decimal
	Price2       *decimal.Decimal
	Price3       *decimal.Decimal
	SupplierID   *string
	Unit         *string
	Active       *bool
	Deleted      *bool
}

// Apply merges the patch into the article without validation
func (p *ArticlePatch) Apply(a *Article) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Code1 != nil {
		a.Code1 = *p.Code1
	}
	if p.Code2 != nil {
		a.Code2 = optionalString(*p.Code2)
	}
	if p.Cost != nil {
		a.Cost = *p.Cost
	}
	if p.CurrentStock != nil {
		a.CurrentStock = *p.CurrentStock
	}
	if p.MinimumStock != nil {
		a.MinimumStock = cloneDecimalPtr(p.MinimumStock)
	}
	if p.Price1 != nil {
		a.Price1 = *p.Price1
	}
	if p.Price2 != nil {
		a.Price2 = cloneDecimalPtr(p.Price2)
	}
	if p.Price3 != nil {
		a.Price3 = cloneDecimalPtr(p.Price3)
	}
	if p.SupplierID != nil {
		a.SupplierID = optionalString(*p.SupplierID)
	}
	if p.Unit != nil {
		a.Unit = *p.Unit
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
	if p.Deleted != nil {
		a.Deleted = *p.Deleted
	}
}

// optionalString maps an empty string to nil
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
