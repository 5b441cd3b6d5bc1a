package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/boltdb"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/models"
)

const testUser = "user-1"

type fixture struct {
	db     *docstore.DB
	layout layout.Layout
	poster *Poster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := boltdb.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	db := docstore.New(b)
	t.Cleanup(func() { db.Close() })

	l := layout.New("test-app")
	return &fixture{db: db, layout: l, poster: NewPoster(FromDB(db), l)}
}

func (f *fixture) withTransactor(tr Transactor) *Poster {
	return NewPoster(tr, f.layout)
}

func (f *fixture) account(t *testing.T, id, opening string) {
	t.Helper()
	bal := decimal.RequireFromString(opening)
	require.NoError(t, f.db.Set(context.Background(), f.layout.Account(testUser, id), models.Account{
		ID:             id,
		Name:           "Account " + id,
		Balance:        bal,
		OpeningBalance: bal,
		UserID:         testUser,
	}))
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	snap, err := f.db.Get(context.Background(), f.layout.Account(testUser, id))
	require.NoError(t, err)
	var acct models.Account
	require.NoError(t, snap.DataTo(&acct))
	return acct.Balance
}

func (f *fixture) assertBalance(t *testing.T, id, want string) {
	t.Helper()
	got := f.balance(t, id)
	assert.True(t, decimal.RequireFromString(want).Equal(got), "balance of %s: want %s, got %s", id, want, got)
}

func (f *fixture) transactionExists(t *testing.T, id string) bool {
	t.Helper()
	_, err := f.db.Get(context.Background(), f.layout.Transaction(testUser, id))
	if errors.Is(err, docstore.ErrNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func draft(amount string, typ models.TransactionType, accountID string) Draft {
	return Draft{
		Date:        "2024-03-01",
		Description: "Groceries",
		Amount:      decimal.RequireFromString(amount),
		Category:    "Food",
		Type:        typ,
		AccountID:   accountID,
	}
}

func TestPostCreate(t *testing.T) {
	f := newFixture(t)
	f.account(t, "checking", "100")

	txn, err := f.poster.Post(context.Background(), testUser, draft("30", models.Expense, "checking"), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, testUser, txn.UserID)
	assert.Equal(t, "Food", txn.Category)
	assert.False(t, txn.CreatedAt.IsZero())
	assert.True(t, f.transactionExists(t, txn.ID))
	f.assertBalance(t, "checking", "70")
}

func TestPostDefaultsCategory(t *testing.T) {
	f := newFixture(t)
	f.account(t, "checking", "0")

	d := draft("5", models.Income, "checking")
	d.Category = ""
	txn, err := f.poster.Post(context.Background(), testUser, d, nil)
	require.NoError(t, err)
	assert.Equal(t, models.UncategorizedLabel, txn.Category)
}

func TestBalanceInvariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "250.75")

	salary, err := f.poster.Post(ctx, testUser, draft("1000", models.Income, "checking"), nil)
	require.NoError(t, err)
	rent, err := f.poster.Post(ctx, testUser, draft("800", models.Expense, "checking"), nil)
	require.NoError(t, err)
	_, err = f.poster.Post(ctx, testUser, draft("12.35", models.Expense, "checking"), nil)
	require.NoError(t, err)
	_, err = f.poster.Post(ctx, testUser, draft("0.10", models.Income, "checking"), nil)
	require.NoError(t, err)

	rent2, err := f.poster.Post(ctx, testUser, draft("750", models.Expense, "checking"), rent)
	require.NoError(t, err)
	require.NoError(t, f.poster.Retract(ctx, testUser, salary.ID, "checking", salary.Amount, salary.Type))

	// 250.75 - 750 - 12.35 + 0.10
	f.assertBalance(t, "checking", "-511.50")
	assert.Equal(t, rent.ID, rent2.ID)

	report, err := f.poster.Reconcile(ctx, testUser, "checking", false)
	require.NoError(t, err)
	assert.True(t, report.Consistent(), "drift %s", report.Drift())
	assert.Equal(t, 3, report.Transactions)
}

func TestEditWithoutChangeKeepsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	txn, err := f.poster.Post(ctx, testUser, draft("50", models.Expense, "checking"), nil)
	require.NoError(t, err)
	f.assertBalance(t, "checking", "50")

	_, err = f.poster.Post(ctx, testUser, draft("50", models.Expense, "checking"), txn)
	require.NoError(t, err)
	f.assertBalance(t, "checking", "50")
}

func TestEditAndRetract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	txn, err := f.poster.Post(ctx, testUser, draft("30", models.Expense, "checking"), nil)
	require.NoError(t, err)
	f.assertBalance(t, "checking", "70")

	edited, err := f.poster.Post(ctx, testUser, draft("20", models.Expense, "checking"), txn)
	require.NoError(t, err)
	f.assertBalance(t, "checking", "80")
	assert.Equal(t, txn.ID, edited.ID)
	assert.Equal(t, txn.CreatedAt, edited.CreatedAt)

	require.NoError(t, f.poster.Retract(ctx, testUser, edited.ID, "checking", edited.Amount, edited.Type))
	f.assertBalance(t, "checking", "100")
	assert.False(t, f.transactionExists(t, edited.ID))
}

func TestEditTypeSwitch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	txn, err := f.poster.Post(ctx, testUser, draft("40", models.Expense, "checking"), nil)
	require.NoError(t, err)
	before := f.balance(t, "checking")

	_, err = f.poster.Post(ctx, testUser, draft("40", models.Income, "checking"), txn)
	require.NoError(t, err)

	after := f.balance(t, "checking")
	assert.True(t, after.Sub(before).Equal(decimal.NewFromInt(80)), "delta %s", after.Sub(before))
}

func TestEditAcrossAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")
	f.account(t, "savings", "50")

	txn, err := f.poster.Post(ctx, testUser, draft("30", models.Expense, "checking"), nil)
	require.NoError(t, err)
	f.assertBalance(t, "checking", "70")

	moved, err := f.poster.Post(ctx, testUser, draft("30", models.Expense, "savings"), txn)
	require.NoError(t, err)
	assert.Equal(t, "savings", moved.AccountID)
	f.assertBalance(t, "checking", "100")
	f.assertBalance(t, "savings", "20")
}

func TestStaleEditConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	original, err := f.poster.Post(ctx, testUser, draft("30", models.Expense, "checking"), nil)
	require.NoError(t, err)
	_, err = f.poster.Post(ctx, testUser, draft("20", models.Expense, "checking"), original)
	require.NoError(t, err)

	// A second editor still holds the original version.
	_, err = f.poster.Post(ctx, testUser, draft("10", models.Expense, "checking"), original)
	assert.ErrorIs(t, err, ErrStoreConflict)
	f.assertBalance(t, "checking", "80")

	err = f.poster.Retract(ctx, testUser, original.ID, "checking", original.Amount, original.Type)
	assert.ErrorIs(t, err, ErrStoreConflict)
	f.assertBalance(t, "checking", "80")
}

func TestPostMissingAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.poster.Post(context.Background(), testUser, draft("10", models.Expense, "gone"), nil)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	snaps, err := f.db.Query(context.Background(), f.layout.Transactions(testUser).Query())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestRetractErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	err := f.poster.Retract(ctx, testUser, "missing", "checking", decimal.NewFromInt(5), models.Expense)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	err = f.poster.Retract(ctx, testUser, "missing", "gone", decimal.NewFromInt(5), models.Expense)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	f.assertBalance(t, "checking", "100")
}

// failingTx fails every write to a transaction document.
type failingTx struct {
	Tx
}

func (f failingTx) Set(ref docstore.DocRef, data any, opts ...docstore.SetOption) error {
	if strings.Contains(ref.Path(), "/transactions/") {
		return errors.New("injected write failure")
	}
	return f.Tx.Set(ref, data, opts...)
}

type failingTransactor struct {
	Transactor
}

func (f failingTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return f.Transactor.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return fn(ctx, failingTx{tx})
	})
}

func TestAtomicityUnderWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")
	poster := f.withTransactor(failingTransactor{FromDB(f.db)})

	_, err := poster.Post(ctx, testUser, draft("30", models.Expense, "checking"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected write failure")

	f.assertBalance(t, "checking", "100")
	snaps, err := f.db.Query(ctx, f.layout.Transactions(testUser).Query())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

// barrierTx blocks after its first read until every participant has read.
type barrierTx struct {
	Tx
	once    *sync.Once
	barrier *sync.WaitGroup
}

func (b barrierTx) Get(ref docstore.DocRef) (*docstore.Snapshot, error) {
	snap, err := b.Tx.Get(ref)
	b.once.Do(func() {
		b.barrier.Done()
		b.barrier.Wait()
	})
	return snap, err
}

type barrierTransactor struct {
	Transactor
	barrier *sync.WaitGroup
}

func (b barrierTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	once := &sync.Once{}
	return b.Transactor.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return fn(ctx, barrierTx{Tx: tx, once: once, barrier: b.barrier})
	})
}

func TestConcurrentPostsOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	barrier := &sync.WaitGroup{}
	barrier.Add(2)
	poster := f.withTransactor(barrierTransactor{Transactor: FromDB(f.db), barrier: barrier})

	amounts := []string{"10", "25"}
	results := make([]error, len(amounts))
	var wg sync.WaitGroup
	for i, amount := range amounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = poster.Post(ctx, testUser, draft(amount, models.Expense, "checking"), nil)
		}()
	}
	wg.Wait()

	winner := -1
	conflicts := 0
	for i, err := range results {
		switch {
		case err == nil:
			winner = i
		case errors.Is(err, ErrStoreConflict):
			assert.ErrorIs(t, err, docstore.ErrConflict)
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.NotEqual(t, -1, winner)
	assert.Equal(t, 1, conflicts)

	want := decimal.NewFromInt(100).Sub(decimal.RequireFromString(amounts[winner]))
	f.assertBalance(t, "checking", want.String())

	snaps, err := f.db.Query(ctx, f.layout.Transactions(testUser).Query())
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

type countingTransactor struct {
	calls atomic.Int32
}

func (c *countingTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	c.calls.Add(1)
	return errors.New("store must not be reached")
}

func TestValidationRejectedBeforeStore(t *testing.T) {
	counter := &countingTransactor{}
	poster := NewPoster(counter, layout.New("app"))
	ctx := context.Background()

	negative := draft("1", models.Expense, "checking")
	negative.Amount = decimal.NewFromInt(-5)
	transfer := draft("5", models.Expense, "checking")
	transfer.Type = models.TransactionType("transfer")

	for name, d := range map[string]Draft{"negative": negative, "transfer": transfer} {
		t.Run(name, func(t *testing.T) {
			_, err := poster.Post(ctx, testUser, d, nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	_, err := ParseDraft(DraftInput{
		Date: "2024-03-01", Description: "x", Amount: "NaN", Type: "expense", AccountID: "a",
	})
	assert.True(t, IsValidation(err))

	err = poster.Retract(ctx, testUser, "t1", "a1", decimal.NewFromInt(5), models.TransactionType("transfer"))
	assert.True(t, IsValidation(err))

	assert.Equal(t, int32(0), counter.calls.Load())
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "checking", "100")

	_, err := f.poster.Post(ctx, testUser, draft("30", models.Expense, "checking"), nil)
	require.NoError(t, err)
	_, err = f.poster.Post(ctx, testUser, draft("5", models.Income, "checking"), nil)
	require.NoError(t, err)

	// Corrupt the stored balance out of band.
	require.NoError(t, f.db.Set(ctx, f.layout.Account(testUser, "checking"),
		map[string]any{"balance": "1"}, docstore.Merge()))

	report, err := f.poster.Reconcile(ctx, testUser, "checking", false)
	require.NoError(t, err)
	assert.False(t, report.Consistent())
	assert.True(t, report.Computed.Equal(decimal.NewFromInt(75)))
	assert.True(t, report.Drift().Equal(decimal.NewFromInt(-74)))
	assert.False(t, report.Repaired)
	f.assertBalance(t, "checking", "1")

	report, err = f.poster.Reconcile(ctx, testUser, "checking", true)
	require.NoError(t, err)
	assert.True(t, report.Repaired)
	f.assertBalance(t, "checking", "75")

	_, err = f.poster.Reconcile(ctx, testUser, "gone", true)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
