package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	eventport "github.com/shoppro/storefront/internal/domain/port/event"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
	eventadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/event"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/logger"
	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
)

// memoryStore backs the in-memory unit of work. The store mutex is held
// for the whole transaction, mimicking the serialization the database
// row lock provides.
type memoryStore struct {
	mu           sync.Mutex
	nextUserID   uint64
	nextProdID   uint64
	nextOrderID  uint64
	nextTxnID    uint64
	users        map[uint64]*entity.User
	products     map[uint64]*entity.Product
	orders       map[uint64]*entity.Order
	transactions map[uint64]*entity.Transaction

	failOrderCreate error // injected fault for rollback tests
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        make(map[uint64]*entity.User),
		products:     make(map[uint64]*entity.Product),
		orders:       make(map[uint64]*entity.Order),
		transactions: make(map[uint64]*entity.Transaction),
	}
}

func (s *memoryStore) addUser(u *entity.User) *entity.User {
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = u
	return u
}

func (s *memoryStore) addProduct(p *entity.Product) *entity.Product {
	s.nextProdID++
	p.ID = s.nextProdID
	s.products[p.ID] = p
	return p
}

type storeSnapshot struct {
	users        map[uint64]entity.User
	orders       map[uint64]entity.Order
	transactions map[uint64]entity.Transaction
	nextOrderID  uint64
	nextTxnID    uint64
}

func (s *memoryStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		users:        make(map[uint64]entity.User, len(s.users)),
		orders:       make(map[uint64]entity.Order, len(s.orders)),
		transactions: make(map[uint64]entity.Transaction, len(s.transactions)),
		nextOrderID:  s.nextOrderID,
		nextTxnID:    s.nextTxnID,
	}
	for id, u := range s.users {
		snap.users[id] = *u
	}
	for id, o := range s.orders {
		snap.orders[id] = *o
	}
	for id, t := range s.transactions {
		snap.transactions[id] = *t
	}
	return snap
}

func (s *memoryStore) restore(snap storeSnapshot) {
	s.users = make(map[uint64]*entity.User, len(snap.users))
	s.orders = make(map[uint64]*entity.Order, len(snap.orders))
	s.transactions = make(map[uint64]*entity.Transaction, len(snap.transactions))
	for id := range snap.users {
		u := snap.users[id]
		s.users[id] = &u
	}
	for id := range snap.orders {
		o := snap.orders[id]
		s.orders[id] = &o
	}
	for id := range snap.transactions {
		t := snap.transactions[id]
		s.transactions[id] = &t
	}
	s.nextOrderID = snap.nextOrderID
	s.nextTxnID = snap.nextTxnID
}

// memoryUoW serializes transactions on the store mutex and rolls back
// by restoring a snapshot taken at Begin.
type memoryUoW struct {
	store *memoryStore

	txMu sync.Mutex
	snap storeSnapshot
}

func (u *memoryUoW) Begin(ctx context.Context) (context.Context, error) {
	u.store.mu.Lock()
	u.txMu.Lock()
	u.snap = u.store.snapshot()
	u.txMu.Unlock()
	return ctx, nil
}

func (u *memoryUoW) Commit(ctx context.Context) error {
	u.store.mu.Unlock()
	return nil
}

func (u *memoryUoW) Rollback(ctx context.Context) error {
	u.txMu.Lock()
	u.store.restore(u.snap)
	u.txMu.Unlock()
	u.store.mu.Unlock()
	return nil
}

func (u *memoryUoW) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return &memUserRepo{store: u.store}
}

func (u *memoryUoW) GetProductRepository(ctx context.Context) persistence.ProductRepository {
	return &memProductRepo{store: u.store}
}

func (u *memoryUoW) GetOrderRepository(ctx context.Context) persistence.OrderRepository {
	return &memOrderRepo{store: u.store}
}

func (u *memoryUoW) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &memTxnRepo{store: u.store}
}

// Repositories below assume the store mutex is held by the surrounding
// transaction; orderHistory is the lock-per-call variant backing reads
// outside a transaction.

type memUserRepo struct{ store *memoryStore }

func (r *memUserRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memUserRepo) GetByRefCode(_ context.Context, refCode string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.RefCode == refCode {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.addUser(user)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) AdjustWallets(_ context.Context, userID uint64, depositDelta, commissionDelta int64) (*entity.User, error) {
	u, ok := r.store.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	newDeposit := u.DepositWallet() + depositDelta
	if newDeposit < 0 {
		return nil, errs.NewInsufficientFundsError(userID, -depositDelta, u.DepositWallet())
	}
	u.SetWallets(newDeposit, u.CommissionWallet()+commissionDelta)
	clone := *u
	return &clone, nil
}

type memProductRepo struct{ store *memoryStore }

func (r *memProductRepo) GetByID(_ context.Context, id uint64) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.store.addProduct(product)
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return errs.ErrProductNotFound
	}
	clone := *product
	r.store.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type memOrderRepo struct{ store *memoryStore }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.store.failOrderCreate != nil {
		return r.store.failOrderCreate
	}
	r.store.nextOrderID++
	order.ID = r.store.nextOrderID
	clone := *order
	r.store.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id uint64) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID uint64) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.store.orders {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memOrderRepo) CountByUser(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, o := range r.store.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memTxnRepo struct{ store *memoryStore }

func (r *memTxnRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.store.nextTxnID++
	txn.ID = r.store.nextTxnID
	clone := *txn
	r.store.transactions[txn.ID] = &clone
	return nil
}

func (r *memTxnRepo) ListByUser(_ context.Context, userID uint64) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0)
	for _, t := range r.store.transactions {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memTxnRepo) List(_ context.Context) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.store.transactions))
	for _, t := range r.store.transactions {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

// orderHistory wraps the order repo with per-call locking for reads
// outside a transaction.
type orderHistory struct{ store *memoryStore }

func (r *orderHistory) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memOrderRepo{store: r.store}).Create(ctx, order)
}

func (r *orderHistory) GetByID(ctx context.Context, id uint64) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memOrderRepo{store: r.store}).GetByID(ctx, id)
}

func (r *orderHistory) ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memOrderRepo{store: r.store}).ListByUser(ctx, userID)
}

func (r *orderHistory) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memOrderRepo{store: r.store}).CountByUser(ctx, userID)
}

type ledgerFixture struct {
	service *Service
	store   *memoryStore
	tp      *timeadapter.FixedTimeProvider
	events  *[]eventport.Event
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	store := newMemoryStore()
	uow := &memoryUoW{store: store}
	bus := eventadapter.NewMemoryBus()

	var events []eventport.Event
	bus.Subscribe(func(evt eventport.Event) {
		events = append(events, evt)
	})

	tp := timeadapter.NewFixedTimeProvider(fixedNow)
	service := NewService(uow, &orderHistory{store: store}, tp, bus, logger.NewNoopLogger())

	return &ledgerFixture{service: service, store: store, tp: tp, events: &events}
}

func (f *ledgerFixture) seedUser(t *testing.T, username, refCode, referredBy string, deposit int64) *entity.User {
	t.Helper()
	user, err := entity.NewUser(username, "hash", "", refCode, referredBy, entity.RoleUser, f.tp)
	require.NoError(t, err)
	user.SetWallets(deposit, 0)
	return f.store.addUser(user)
}

// seedProduct lists a 300000 product valid for thirty days, ten of
// which remain at the fixture clock. Prorated price: 100000.
func (f *ledgerFixture) seedProduct(t *testing.T) *entity.Product {
	t.Helper()
	product, err := entity.NewProduct(
		"Netflix Premium",
		300000,
		fixedNow.Add(-20*24*time.Hour),
		fixedNow.Add(10*24*time.Hour),
		entity.Credentials{AccountUsername: "shared@mail.com", AccountPassword: "p4ss", AccountCookie: "cookie-blob"},
		f.tp,
	)
	require.NoError(t, err)
	return f.store.addProduct(product)
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("debits prorated price and snapshots credentials", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "", 150000)
		product := f.seedProduct(t)

		result, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(100000), result.Quote.Price)
		assert.Equal(t, 10, result.Quote.DaysRemaining)
		assert.Equal(t, 30, result.Quote.TotalDays)
		assert.Equal(t, int64(50000), result.Buyer.DepositWallet())

		assert.Equal(t, "shared@mail.com", result.Order.Snapshot.AccountUsername)
		assert.Equal(t, "p4ss", result.Order.Snapshot.AccountPassword)
		_, err = uuid.Parse(result.Order.Reference)
		assert.NoError(t, err, "order reference should be a uuid")

		// later credential rotation must not touch the snapshot
		stored := f.store.products[product.ID]
		stored.RotateCredentials(entity.Credentials{AccountUsername: "rotated"}, f.tp)
		order, err := f.service.GetOrder(ctx, buyer.ID, result.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, "shared@mail.com", order.Snapshot.AccountUsername)
	})

	t.Run("insufficient funds leaves everything untouched", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "", 99999)
		product := f.seedProduct(t)

		_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		var detail *errs.InsufficientFundsError
		require.ErrorAs(t, err, &detail)
		assert.Equal(t, int64(100000), detail.Price)
		assert.Equal(t, int64(99999), detail.Balance)

		assert.Equal(t, int64(99999), f.store.users[buyer.ID].DepositWallet())
		assert.Empty(t, f.store.orders)
		assert.Empty(t, f.store.transactions)
		assert.Empty(t, *f.events)
	})

	t.Run("credits the referrer thirty percent with an audit row", func(t *testing.T) {
		f := newLedgerFixture(t)
		referrer := f.seedUser(t, "ref", "ref-r", "", 0)
		buyer := f.seedUser(t, "alice", "ref-a", "ref-r", 150000)
		product := f.seedProduct(t)

		result, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(30000), f.store.users[referrer.ID].CommissionWallet())
		assert.Equal(t, int64(0), f.store.users[referrer.ID].DepositWallet())

		require.Len(t, f.store.transactions, 1)
		for _, txn := range f.store.transactions {
			assert.Equal(t, entity.TypeCommission, txn.Type)
			assert.Equal(t, int64(30000), txn.Amount)
			assert.Equal(t, referrer.ID, txn.UserID)
			require.NotNil(t, txn.OrderID)
			assert.Equal(t, result.Order.ID, *txn.OrderID)
		}
	})

	t.Run("vanished referrer skips commission without failing", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "gone-ref", 150000)
		product := f.seedProduct(t)

		_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.NoError(t, err)
		assert.Empty(t, f.store.transactions)
	})

	t.Run("order write failure rolls back the debit", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "", 150000)
		product := f.seedProduct(t)
		f.store.failOrderCreate = errs.ErrDatabaseConnection

		_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.Error(t, err)

		assert.Equal(t, int64(150000), f.store.users[buyer.ID].DepositWallet())
		assert.Empty(t, f.store.orders)
	})

	t.Run("unknown product fails before touching the wallet", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "", 150000)

		_, err := f.service.Purchase(ctx, buyer.ID, 42)
		assert.ErrorIs(t, err, errs.ErrProductNotFound)
		assert.Equal(t, int64(150000), f.store.users[buyer.ID].DepositWallet())
	})

	t.Run("publishes order and wallet events after commit", func(t *testing.T) {
		f := newLedgerFixture(t)
		buyer := f.seedUser(t, "alice", "ref-a", "", 150000)
		product := f.seedProduct(t)

		_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
		require.NoError(t, err)

		require.Len(t, *f.events, 2)
		assert.Equal(t, eventport.KindOrderCreated, (*f.events)[0].Kind)
		assert.Equal(t, eventport.KindWalletUpdated, (*f.events)[1].Kind)
		assert.Equal(t, "100.000 ₫", (*f.events)[0].Fields["price"])
	})
}

// Two concurrent purchases against funds that cover only one must end
// with exactly one order and no overdraft.
func TestPurchaseConcurrentDebit(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	buyer := f.seedUser(t, "alice", "ref-a", "", 150000)
	product := f.seedProduct(t)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
			failed++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int64(50000), f.store.users[buyer.ID].DepositWallet())
	assert.Len(t, f.store.orders, 1)
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	buyer := f.seedUser(t, "alice", "ref-a", "", 300000)
	other := f.seedUser(t, "bob", "ref-b", "", 300000)
	product := f.seedProduct(t)

	_, err := f.service.Purchase(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	_, err = f.service.Purchase(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	_, err = f.service.Purchase(ctx, other.ID, product.ID)
	require.NoError(t, err)

	orders, err := f.service.ListOrders(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	// one user cannot read another's order
	var bobOrder *entity.Order
	bobOrders, err := f.service.ListOrders(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, bobOrders, 1)
	bobOrder = bobOrders[0]

	_, err = f.service.GetOrder(ctx, buyer.ID, bobOrder.ID)
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}
