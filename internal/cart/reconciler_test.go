package cart_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mergeFixture struct {
	*backends
	journal    *testutils.MemoryMergeJournal
	sessions   *testutils.MemorySessions
	reconciler *cart.Reconciler
}

func newMergeFixture() *mergeFixture {
	b := newBackends()
	f := &mergeFixture{
		backends: b,
		journal:  testutils.NewMemoryMergeJournal(),
		sessions: testutils.NewMemorySessions(),
	}
	f.reconciler = cart.NewReconciler(b.server, b.wishlist, b.guest, f.journal, f.sessions)

	return f
}

func line(productID uuid.UUID, size string, qty int) models.CartLine {
	return models.CartLine{ProductID: productID, Name: "Cable Knit Sweater", UnitPrice: 30, OwnerSize: size, Quantity: qty}
}

// seedGuest stores a guest cart, then authenticates the session.
func (f *mergeFixture) seedGuest(t *testing.T, lines []models.CartLine, wishlist []models.WishlistLine) *models.Session {
	t.Helper()

	session := testutils.GuestSession()
	require.NoError(t, f.guest.Save(testutils.Context(), session.GuestID, &models.GuestCart{Lines: lines, Wishlist: wishlist}))
	session.UserID = uuid.New()

	return session
}

func TestReconcile(t *testing.T) {
	ctx := testutils.Context()

	t.Run("Guest lines are summed into the account cart once", func(t *testing.T) {
		f := newMergeFixture()
		shared, guestOnly := uuid.New(), uuid.New()

		session := f.seedGuest(t,
			[]models.CartLine{line(shared, "m", 2), line(guestOnly, "L", 1)},
			[]models.WishlistLine{{ProductID: uuid.New()}})
		f.server.Seed(session.UserID, line(shared, "M", 1), line(uuid.New(), "S", 1))

		store := loadStore(t, f.backends, session)

		result, err := f.reconciler.Reconcile(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, cart.MergeCompleted, result.Outcome)
		assert.Equal(t, 2, result.LinesMerged)
		assert.Equal(t, 1, result.WishlistMerged)

		lines := store.Lines()
		require.Len(t, lines, 3)
		for _, l := range lines {
			if l.ProductID == shared {
				assert.Equal(t, 3, l.Quantity)
			}
		}
		assert.Len(t, store.Wishlist(), 1)

		assert.True(t, session.Merged)
		saved, err := f.sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, saved.Merged)

		_, guestLeft := f.guest.Stored(session.GuestID)
		assert.False(t, guestLeft)
		assert.Zero(t, f.journal.Applied(session.GuestID))
		assert.False(t, f.journal.Locked(session.UserID))

		again, err := f.reconciler.Reconcile(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, cart.MergeSkipped, again.Outcome)
		assert.Equal(t, 3, func() int {
			for _, l := range store.Lines() {
				if l.ProductID == shared {
					return l.Quantity
				}
			}
			return 0
		}())
	})

	t.Run("Guest line whose save failed is merged on login", func(t *testing.T) {
		f := newMergeFixture()
		session := testutils.GuestSession()
		item := harness(25)

		guestStore := loadStore(t, f.backends, session)
		f.guest.Err = testutils.ErrInjected
		require.Error(t, guestStore.AddLine(ctx, item, "S", ""))
		f.guest.Err = nil

		session.UserID = uuid.New()
		store := loadStore(t, f.backends, session)

		result, err := f.reconciler.Reconcile(ctx, store)

		require.NoError(t, err)
		assert.Equal(t, cart.MergeCompleted, result.Outcome)
		require.Len(t, store.Lines(), 1)
		assert.Equal(t, item.ProductID, store.Lines()[0].ProductID)

		_, stillQueued := f.pending.Queued(guestQueue(session))
		assert.False(t, stillQueued)
	})

	t.Run("Anonymous session is skipped", func(t *testing.T) {
		f := newMergeFixture()
		store := loadStore(t, f.backends, testutils.GuestSession())

		result, err := f.reconciler.Reconcile(ctx, store)

		require.NoError(t, err)
		assert.Equal(t, cart.MergeSkipped, result.Outcome)
	})

	t.Run("Empty guest cart is skipped", func(t *testing.T) {
		f := newMergeFixture()
		store := loadStore(t, f.backends, testutils.UserSession(uuid.New()))

		result, err := f.reconciler.Reconcile(ctx, store)

		require.NoError(t, err)
		assert.Equal(t, cart.MergeSkipped, result.Outcome)
		assert.False(t, store.Session().Merged)
	})

	t.Run("Partial failure keeps the guest cart and a retry never re-adds", func(t *testing.T) {
		f := newMergeFixture()
		first, second := uuid.New(), uuid.New()
		session := f.seedGuest(t, []models.CartLine{line(first, "M", 2), line(second, "M", 1)}, nil)
		store := loadStore(t, f.backends, session)

		f.server.FailMergeAfter = 1

		result, err := f.reconciler.Reconcile(ctx, store)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.False(t, session.Merged)
		assert.False(t, f.journal.Locked(session.UserID))

		_, guestLeft := f.guest.Stored(session.GuestID)
		assert.True(t, guestLeft)
		assert.Equal(t, 1, f.journal.Applied(session.GuestID))

		f.server.FailMergeAfter = -1

		result, err = f.reconciler.Reconcile(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, cart.MergeCompleted, result.Outcome)
		assert.Equal(t, 1, result.LinesMerged)

		quantities := map[uuid.UUID]int{}
		for _, l := range store.Lines() {
			quantities[l.ProductID] = l.Quantity
		}
		assert.Equal(t, map[uuid.UUID]int{first: 2, second: 1}, quantities)
		assert.True(t, session.Merged)
	})

	t.Run("Concurrent merge loses the lock", func(t *testing.T) {
		f := newMergeFixture()
		session := f.seedGuest(t, []models.CartLine{line(uuid.New(), "M", 1)}, nil)
		store := loadStore(t, f.backends, session)

		held, err := f.journal.AcquireLock(ctx, session.UserID, "other-tab")
		require.NoError(t, err)
		require.True(t, held)

		result, err := f.reconciler.Reconcile(ctx, store)

		require.NoError(t, err)
		assert.Equal(t, cart.MergeInProgress, result.Outcome)
		assert.False(t, session.Merged)
		assert.Equal(t, 0, f.server.MergeCalls)
		assert.True(t, f.journal.Locked(session.UserID), "the other holder keeps its lock")
	})

	t.Run("Lock failure", func(t *testing.T) {
		f := newMergeFixture()
		session := f.seedGuest(t, []models.CartLine{line(uuid.New(), "M", 1)}, nil)
		store := loadStore(t, f.backends, session)
		f.journal.LockErr = testutils.ErrInjected

		result, err := f.reconciler.Reconcile(ctx, store)

		require.ErrorIs(t, err, testutils.ErrInjected)
		assert.Nil(t, result)
	})

	t.Run("Session save failure still completes", func(t *testing.T) {
		f := newMergeFixture()
		session := f.seedGuest(t, []models.CartLine{line(uuid.New(), "M", 1)}, nil)
		store := loadStore(t, f.backends, session)
		f.sessions.SaveErr = testutils.ErrInjected

		result, err := f.reconciler.Reconcile(ctx, store)

		require.NoError(t, err)
		assert.Equal(t, cart.MergeCompleted, result.Outcome)
		assert.Len(t, store.Lines(), 1)
	})
}
