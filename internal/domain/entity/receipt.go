package entity

import "github.com/shopspring/decimal"

// ReceiptItem represents a single line on a printed receipt
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is composed from a sale or a purchase at print time and is never stored
type Receipt struct {
	Title        string          `json:"title"`
	Kind         string          `json:"kind"`
	Number       int             `json:"number"`
	Date         string          `json:"date"`
	Operator     string          `json:"operator,omitempty"`
	Counterparty string          `json:"counterparty"`
	Reference    string          `json:"reference,omitempty"`
	Items        []ReceiptItem   `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Due          decimal.Decimal `json:"due"`
}
