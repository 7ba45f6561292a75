package service

import (
	"context"
	"fmt"
	"log"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/iliri/iliri-api/pkg/printer"
	"github.com/shopspring/decimal"
)

const receiptDateLayout = "02/01/2006 15:04"

// ReceiptService formats sales and purchases as receipts and sends them to
// the configured printer
type ReceiptService struct {
	store       repository.Store
	printer     printer.Printer
	printerType string
	title       string
	width       int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(store repository.Store, p printer.Printer, printerType, title string, width int) *ReceiptService {
	return &ReceiptService{
		store:       store,
		printer:     p,
		printerType: printerType,
		title:       title,
		width:       width,
	}
}

// PrinterStatus describes the configured printer
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus reports whether a printer is configured and reachable
func (s *ReceiptService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintSaleReceipt prints a sale. The receipt is returned even when printing
// fails so the caller can show it.
func (s *ReceiptService) PrintSaleReceipt(ctx context.Context, saleID string) (*entity.Receipt, error) {
	sale, err := s.store.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Title:        s.title,
		Kind:         "Sale",
		Number:       sale.Number,
		Date:         sale.Date.Format(receiptDateLayout),
		Operator:     sale.Username,
		Counterparty: sale.ClientName,
		Total:        sale.Total,
		Paid:         sale.PaidAmount,
		Due:          sale.Remaining(),
	}
	if sale.ClientReference != nil {
		receipt.Reference = *sale.ClientReference
	}
	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ArticleName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return receipt, s.print(ctx, receipt)
}

// PrintPurchaseReceipt prints a purchase
func (s *ReceiptService) PrintPurchaseReceipt(ctx context.Context, purchaseID string) (*entity.Receipt, error) {
	purchase, err := s.store.Purchases().GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}

	receipt := &entity.Receipt{
		Title:        s.title,
		Kind:         "Purchase",
		Number:       purchase.Number,
		Date:         purchase.Date.Format(receiptDateLayout),
		Operator:     purchase.Username,
		Counterparty: purchase.SupplierName,
		Total:        purchase.Total,
	}
	for _, item := range purchase.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ArticleName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitCost,
			Total:     item.Total,
		})
	}

	return receipt, s.print(ctx, receipt)
}

func (s *ReceiptService) print(ctx context.Context, receipt *entity.Receipt) error {
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		log.Printf("Printer error (%s %d): %v", receipt.Kind, receipt.Number, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// FormatReceipt converts a receipt into ESC/POS bytes for a printer
// width characters wide
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Title).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue(r.Kind+":", fmt.Sprintf("#%d", r.Number)).
		KeyValue("Date:", r.Date)
	if r.Operator != "" {
		doc.KeyValue("Operator:", r.Operator)
	}
	if r.Kind == "Purchase" {
		doc.KeyValue("Supplier:", r.Counterparty)
	} else {
		doc.KeyValue("Client:", r.Counterparty)
	}
	if r.Reference != "" {
		doc.KeyValue("Ref:", r.Reference)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity.String(), item.Name, item.Total.StringFixed(2))
		if !item.Quantity.Equal(decimal.NewFromInt(1)) {
			doc.TextF("  @ %s each", item.UnitPrice.StringFixed(2))
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.StringFixed(2)).
		SetBold(false)
	if r.Kind == "Sale" {
		doc.KeyValue("Paid:", r.Paid.StringFixed(2))
		if r.Due.IsPositive() {
			doc.KeyValue("Due:", r.Due.StringFixed(2))
		}
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
