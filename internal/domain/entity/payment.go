package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one entry of the payment ledger. Payments outlive their sale.
type Payment struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"saleId"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}
