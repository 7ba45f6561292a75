// Package memory holds the process-local inventory ledger. Collections are
// kept in memory only and start empty on every run.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliri/iliri-api/internal/domain/entity"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/utils"
)

// dateLayout is how dates are matched by list searches
const dateLayout = "02/01/2006"

type state struct {
	articles      []*entity.Article
	suppliers     []*entity.Supplier
	clients       []*entity.Client
	purchases     []*entity.Purchase
	sales         []*entity.Sale
	payments      []entity.Payment
	prices        []entity.ClientArticlePrice
	notifications []entity.Notification
	snapshot      *entity.AnalyticsSnapshot

	// highest number ever issued, so deleted numbers are not reused
	purchaseSeq int
	saleSeq     int
}

func (s *state) clone() *state {
	c := &state{
		articles:      make([]*entity.Article, len(s.articles)),
		suppliers:     make([]*entity.Supplier, len(s.suppliers)),
		clients:       make([]*entity.Client, len(s.clients)),
		purchases:     make([]*entity.Purchase, len(s.purchases)),
		sales:         make([]*entity.Sale, len(s.sales)),
		payments:      append([]entity.Payment(nil), s.payments...),
		prices:        append([]entity.ClientArticlePrice(nil), s.prices...),
		notifications: append([]entity.Notification(nil), s.notifications...),
		snapshot:      s.snapshot,
		purchaseSeq:   s.purchaseSeq,
		saleSeq:       s.saleSeq,
	}
	for i, a := range s.articles {
		c.articles[i] = a.Clone()
	}
	for i, sp := range s.suppliers {
		c.suppliers[i] = sp.Clone()
	}
	for i, cl := range s.clients {
		c.clients[i] = cl.Clone()
	}
	for i, p := range s.purchases {
		c.purchases[i] = p.Clone()
	}
	for i, sl := range s.sales {
		c.sales[i] = sl.Clone()
	}
	return c
}

// Store is the in-memory ledger. It is safe for concurrent use; writers are
// serialised and a Transaction either applies all of its changes or none.
type Store struct {
	mu    sync.RWMutex
	state *state
	clock func() time.Time
	*ledger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty ledger store
func NewStore(opts ...Option) *Store {
	s := &Store{state: &state{}, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.ledger = &ledger{store: s}
	return s
}

var _ domainRepo.Store = (*Store)(nil)

// Transaction runs fn against a private draft of the ledger and commits the
// draft only when fn returns nil
func (s *Store) Transaction(ctx context.Context, fn func(tx domainRepo.Ledger) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	if err := fn(&ledger{store: s, tx: draft}); err != nil {
		return err
	}
	s.state = draft
	return nil
}

// ledger binds the repositories either to the committed state (taking the
// store lock per call) or to a transaction draft (lock already held).
type ledger struct {
	store *Store
	tx    *state
}

func (l *ledger) read(fn func(st *state)) {
	if l.tx != nil {
		fn(l.tx)
		return
	}
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	fn(l.store.state)
}

func (l *ledger) write(fn func(st *state)) {
	if l.tx != nil {
		fn(l.tx)
		return
	}
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	fn(l.store.state)
}

func (l *ledger) now() time.Time {
	return l.store.clock()
}

func (l *ledger) Articles() domainRepo.ArticleRepository   { return &articleRepository{l: l} }
func (l *ledger) Suppliers() domainRepo.SupplierRepository { return &supplierRepository{l: l} }
func (l *ledger) Clients() domainRepo.ClientRepository     { return &clientRepository{l: l} }
func (l *ledger) Purchases() domainRepo.PurchaseRepository { return &purchaseRepository{l: l} }
func (l *ledger) Sales() domainRepo.SaleRepository         { return &saleRepository{l: l} }
func (l *ledger) Payments() domainRepo.PaymentRepository   { return &paymentRepository{l: l} }
func (l *ledger) Prices() domainRepo.ClientArticlePriceRepository {
	return &priceRepository{l: l}
}
func (l *ledger) Notifications() domainRepo.NotificationRepository {
	return &notificationRepository{l: l}
}
func (l *ledger) Analytics() domainRepo.AnalyticsRepository { return &analyticsRepository{l: l} }

func newID() string {
	return utils.NewID()
}

// containsFold reports whether substr is within s, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
