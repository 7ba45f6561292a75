package request

import "github.com/shopspring/decimal"

// ArticleRequest represents an article create or full edit request
type ArticleRequest struct {
	Name         string           `json:"name"`
	Code1        string           `json:"code1"`
	Code2        *string          `json:"code2"`
	Cost         decimal.Decimal  `json:"cost"`
	CurrentStock decimal.Decimal  `json:"currentStock"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
	Price1       decimal.Decimal  `json:"price1"`
	Price2       *decimal.Decimal `json:"price2"`
	Price3       *decimal.Decimal `json:"price3"`
	SupplierID   *string          `json:"supplierId"`
	Unit         string           `json:"unit" binding:"max=20"`
	Active       *bool            `json:"active"`
}

// PatchArticleFieldRequest represents an inline edit of one numeric column
type PatchArticleFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ArticleFilterRequest represents article list parameters
type ArticleFilterRequest struct {
	Filter  string `form:"filter"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
