package repository

import "context"

// Ledger groups the repositories over the inventory collections
type Ledger interface {
	Articles() ArticleRepository
	Suppliers() SupplierRepository
	Clients() ClientRepository
	Purchases() PurchaseRepository
	Sales() SaleRepository
	Payments() PaymentRepository
	Prices() ClientArticlePriceRepository
	Notifications() NotificationRepository
	Analytics() AnalyticsRepository
}

// Store is a Ledger that can apply a group of mutations atomically.
// If fn returns an error none of its changes are kept.
type Store interface {
	Ledger
	Transaction(ctx context.Context, fn func(tx Ledger) error) error
}
