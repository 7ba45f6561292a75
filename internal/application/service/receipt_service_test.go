package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(ctx context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) IsConnected(ctx context.Context) bool { return p.err == nil }

func TestPrintSaleReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.article(t, "W-1", "10")
	c := f.client(t, "Ben")

	sale, err := f.sales.RecordSale(ctx, &CreateSaleInput{
		Username:   "admin",
		ClientID:   c.ID,
		PaidAmount: decp("5"),
		Items:      []SaleItemInput{{ArticleID: a.ID, Quantity: dec("2")}},
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	p := &recordingPrinter{}
	svc := NewReceiptService(f.store, p, "usb", "Iliri", 32)
	receipt, err := svc.PrintSaleReceipt(ctx, sale.ID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}

	if receipt.Counterparty != "Ben" || !receipt.Total.Equal(dec("20")) || !receipt.Due.Equal(dec("15")) {
		t.Errorf("unexpected receipt %+v", receipt)
	}
	if len(p.jobs) != 1 {
		t.Fatalf("got %d print jobs, want 1", len(p.jobs))
	}
	for _, want := range []string{"Iliri", "Client:", "Ben", "2x " + a.Name, "20.00", "Due:", "15.00"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Errorf("receipt is missing %q", want)
		}
	}
}

func TestPrintPurchaseReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.article(t, "W-1", "0")
	s := f.supplier(t, "Acme")

	purchase, err := f.purchases.RecordPurchase(ctx, &CreatePurchaseInput{
		Username:   "admin",
		SupplierID: s.ID,
		Items:      []PurchaseItemInput{{ArticleID: a.ID, Quantity: dec("3"), UnitCost: dec("4")}},
	})
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}

	p := &recordingPrinter{}
	receipt, err := NewReceiptService(f.store, p, "usb", "Iliri", 32).PrintPurchaseReceipt(ctx, purchase.ID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if receipt.Kind != "Purchase" || receipt.Counterparty != "Acme" || !receipt.Total.Equal(dec("12")) {
		t.Errorf("unexpected receipt %+v", receipt)
	}
	if bytes.Contains(p.jobs[0], []byte("Paid:")) {
		t.Error("purchase receipts carry no payment lines")
	}
}

func TestPrintReceiptErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	svc := NewReceiptService(f.store, &recordingPrinter{}, "usb", "Iliri", 32)
	_, err := svc.PrintSaleReceipt(ctx, "missing")
	assertStatus(t, err, http.StatusNotFound)
	_, err = svc.PrintPurchaseReceipt(ctx, "missing")
	assertStatus(t, err, http.StatusNotFound)

	a := f.article(t, "W-1", "10")
	c := f.client(t, "Ben")
	sale, err := f.sales.RecordSale(ctx, &CreateSaleInput{
		ClientID: c.ID,
		Items:    []SaleItemInput{{ArticleID: a.ID, Quantity: dec("1")}},
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}

	offline := NewReceiptService(f.store, &recordingPrinter{err: errors.New("paper out")}, "network", "Iliri", 32)
	receipt, err := offline.PrintSaleReceipt(ctx, sale.ID)
	if err == nil || receipt == nil {
		t.Fatalf("expected the receipt together with the printer error, got %v, %v", receipt, err)
	}
	if status := offline.GetStatus(ctx); !status.Configured || status.Connected {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestFormatReceiptTruncatesLongNames(t *testing.T) {
	data := FormatReceipt(&entity.Receipt{
		Title:        "Iliri",
		Kind:         "Sale",
		Number:       1,
		Counterparty: "Ben",
		Items: []entity.ReceiptItem{{
			Name:      "An article name that is far too long for the paper",
			Quantity:  dec("1"),
			UnitPrice: dec("9.5"),
			Total:     dec("9.5"),
		}},
		Total: dec("9.5"),
	}, 32)

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if bytes.HasPrefix(line, []byte("1x ")) && len(line) != 32 {
			t.Errorf("item line is %d characters wide, want 32: %q", len(line), line)
		}
	}
	if !bytes.Contains(data, []byte("9.50")) {
		t.Error("totals must be printed with two decimals")
	}
}
