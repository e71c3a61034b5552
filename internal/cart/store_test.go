package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backends struct {
	server   *testutils.MemoryServerCart
	wishlist *testutils.MemoryWishlist
	guest    *testutils.MemoryGuestCarts
	pending  *testutils.MemoryPendingSync
}

func newBackends() *backends {
	return &backends{
		server:   testutils.NewMemoryServerCart(),
		wishlist: testutils.NewMemoryWishlist(),
		guest:    testutils.NewMemoryGuestCarts(),
		pending:  testutils.NewMemoryPendingSync(),
	}
}

func (b *backends) cart() cart.Backends {
	return cart.Backends{Server: b.server, Wishlist: b.wishlist, Guest: b.guest, Pending: b.pending}
}

func userQueue(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func guestQueue(session *models.Session) string {
	return "guest:" + session.GuestID
}

func harness(price float64) models.CartLine {
	return models.CartLine{
		ProductID: uuid.New(),
		Name:      "Matching Raincoat",
		UnitPrice: price,
		ImageRef:  "raincoat.png",
		Slug:      "matching-raincoat",
	}
}

func loadStore(t *testing.T, b *backends, session *models.Session) *cart.Store {
	t.Helper()

	store, err := cart.Load(testutils.Context(), session, b.cart())
	require.NoError(t, err)

	return store
}

func TestStoreAddLine(t *testing.T) {
	ctx := testutils.Context()

	t.Run("Same product and normalized sizes merge into one line", func(t *testing.T) {
		b := newBackends()
		store := loadStore(t, b, testutils.GuestSession())
		item := harness(20)

		require.NoError(t, store.AddLine(ctx, item, " m ", "s"))
		require.NoError(t, store.AddLine(ctx, item, "M", " S "))

		lines := store.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, "M", lines[0].OwnerSize)
		assert.Equal(t, "S", lines[0].PetSize)
	})

	t.Run("Different sizes are different lines", func(t *testing.T) {
		b := newBackends()
		store := loadStore(t, b, testutils.GuestSession())
		item := harness(20)

		require.NoError(t, store.AddLine(ctx, item, "M", "S"))
		require.NoError(t, store.AddLine(ctx, item, "M", "L"))

		assert.Len(t, store.Lines(), 2)
	})

	t.Run("Guest changes are saved to local persistence", func(t *testing.T) {
		b := newBackends()
		session := testutils.GuestSession()
		store := loadStore(t, b, session)

		require.NoError(t, store.AddLine(ctx, harness(20), "M", ""))

		stored, ok := b.guest.Stored(session.GuestID)
		require.True(t, ok)
		assert.Len(t, stored.Lines, 1)
		assert.False(t, stored.UpdatedAt.IsZero())
	})

	t.Run("Authenticated changes are written to the server cart", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		store := loadStore(t, b, session)
		item := harness(20)

		require.NoError(t, store.AddLine(ctx, item, "M", ""))
		require.NoError(t, store.AddLine(ctx, item, "m", ""))

		server, err := b.server.List(ctx, session.UserID)
		require.NoError(t, err)
		require.Len(t, server, 1)
		assert.Equal(t, 2, server[0].Quantity)

		_, guestSaved := b.guest.Stored(session.GuestID)
		assert.False(t, guestSaved)
	})

	t.Run("Sync failure keeps the local change", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected

		err := store.AddLine(ctx, harness(20), "M", "")

		require.Error(t, err)
		assert.True(t, appErrors.IsSyncWarning(err))
		assert.ErrorIs(t, err, testutils.ErrInjected)
		require.Len(t, store.Lines(), 1)
		assert.Equal(t, 1, store.Lines()[0].Quantity)
		assert.Len(t, store.View().Warnings, 1)

		queued, ok := b.pending.Queued(userQueue(session.UserID))
		require.True(t, ok)
		require.Len(t, queued.Changes, 1)
		assert.Equal(t, models.PendingUpsertLine, queued.Changes[0].Op)
	})
}

func TestStoreSetQuantity(t *testing.T) {
	ctx := testutils.Context()

	t.Run("Replaces the quantity", func(t *testing.T) {
		store := loadStore(t, newBackends(), testutils.GuestSession())
		item := harness(10)
		require.NoError(t, store.AddLine(ctx, item, "M", ""))

		require.NoError(t, store.SetQuantity(ctx, item.ProductID, " m", "", 4))

		assert.Equal(t, 4, store.Lines()[0].Quantity)
		assert.Equal(t, models.CartTotals{Subtotal: 40, Count: 4}, store.Totals())
	})

	t.Run("Quantity below one removes the line", func(t *testing.T) {
		store := loadStore(t, newBackends(), testutils.GuestSession())
		item := harness(10)
		require.NoError(t, store.AddLine(ctx, item, "M", ""))

		require.NoError(t, store.SetQuantity(ctx, item.ProductID, "M", "", 0))

		assert.Empty(t, store.Lines())
	})

	t.Run("Unknown line", func(t *testing.T) {
		store := loadStore(t, newBackends(), testutils.GuestSession())

		err := store.SetQuantity(ctx, uuid.New(), "M", "", 2)

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestStoreRemoveAndClear(t *testing.T) {
	ctx := testutils.Context()
	b := newBackends()
	session := testutils.UserSession(uuid.New())
	store := loadStore(t, b, session)

	first, second := harness(10), harness(15)
	require.NoError(t, store.AddLine(ctx, first, "M", ""))
	require.NoError(t, store.AddLine(ctx, second, "", "XS"))

	require.NoError(t, store.RemoveLine(ctx, first.ProductID, "m", ""))
	require.NoError(t, store.RemoveLine(ctx, uuid.New(), "M", ""), "removing an absent line is a no-op")

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, second.ProductID, lines[0].ProductID)

	server, _ := b.server.List(ctx, session.UserID)
	assert.Len(t, server, 1)

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.Lines())
	assert.Equal(t, models.CartTotals{}, store.Totals())

	server, _ = b.server.List(ctx, session.UserID)
	assert.Empty(t, server)
}

func TestStoreTotals(t *testing.T) {
	ctx := testutils.Context()
	store := loadStore(t, newBackends(), testutils.GuestSession())

	a, c := harness(19.99), harness(5.01)
	require.NoError(t, store.AddLine(ctx, a, "M", ""))
	require.NoError(t, store.AddLine(ctx, a, "M", ""))
	require.NoError(t, store.AddLine(ctx, c, "", "S"))

	totals := store.Totals()
	assert.Equal(t, 3, totals.Count)
	assert.InDelta(t, 44.99, totals.Subtotal, 1e-9)

	view := store.View()
	assert.Len(t, view.Lines, 2)
	assert.Equal(t, totals, view.Totals)
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticated session reads the server cart", func(t *testing.T) {
		b := newBackends()
		userID := uuid.New()
		line := harness(12)
		line.OwnerSize, line.Quantity = "M", 3
		b.server.Seed(userID, line)

		store := loadStore(t, b, testutils.UserSession(userID))

		require.Len(t, store.Lines(), 1)
		assert.Equal(t, 3, store.Lines()[0].Quantity)
	})

	t.Run("Server failure", func(t *testing.T) {
		b := newBackends()
		b.server.ListErr = testutils.ErrInjected

		store, err := cart.Load(ctx, testutils.UserSession(uuid.New()), b.cart())

		require.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("Guest session starts empty", func(t *testing.T) {
		store := loadStore(t, newBackends(), testutils.GuestSession())

		assert.NotNil(t, store.Lines())
		assert.Empty(t, store.Lines())
		assert.Empty(t, store.Wishlist())
	})
}

func TestStoreWishlist(t *testing.T) {
	ctx := testutils.Context()
	b := newBackends()
	session := testutils.GuestSession()
	store := loadStore(t, b, session)

	item := models.WishlistLine{ProductID: uuid.New(), Name: "Bandana Set"}

	require.NoError(t, store.AddWishlist(ctx, item))
	require.NoError(t, store.AddWishlist(ctx, item))
	assert.Len(t, store.Wishlist(), 1)

	stored, ok := b.guest.Stored(session.GuestID)
	require.True(t, ok)
	assert.Len(t, stored.Wishlist, 1)

	require.NoError(t, store.RemoveWishlist(ctx, item.ProductID))
	assert.Empty(t, store.Wishlist())
}

func TestStoreConcurrentAdds(t *testing.T) {
	ctx := testutils.Context()
	store := loadStore(t, newBackends(), testutils.UserSession(uuid.New()))
	item := harness(3)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddLine(ctx, item, "M", "")
		}()
	}
	wg.Wait()

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 50, lines[0].Quantity)
}

func TestStoreSyncRecovery(t *testing.T) {
	ctx := testutils.Context()

	t.Run("Line kept after a failed write is there on the next load", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		item := harness(20)

		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected
		require.Error(t, store.AddLine(ctx, item, "M", ""))
		b.server.Err = nil

		next := loadStore(t, b, session)

		lines := next.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, item.ProductID, lines[0].ProductID)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Empty(t, next.Warnings())

		server, err := b.server.List(ctx, session.UserID)
		require.NoError(t, err)
		require.Len(t, server, 1)
		assert.Equal(t, 1, server[0].Quantity)

		_, stillQueued := b.pending.Queued(userQueue(session.UserID))
		assert.False(t, stillQueued)
	})

	t.Run("Backend still down keeps showing the line with a warning", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		line := harness(20)
		line.OwnerSize, line.Quantity = "M", 1
		b.server.Seed(session.UserID, line)

		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected
		require.Error(t, store.SetQuantity(ctx, line.ProductID, "M", "", 3))

		next := loadStore(t, b, session)

		require.Len(t, next.Lines(), 1)
		assert.Equal(t, 3, next.Lines()[0].Quantity)
		assert.Len(t, next.View().Warnings, 1)

		_, stillQueued := b.pending.Queued(userQueue(session.UserID))
		assert.True(t, stillQueued)

		b.server.Err = nil
		healed := loadStore(t, b, session)
		assert.Equal(t, 3, healed.Lines()[0].Quantity)

		server, _ := b.server.List(ctx, session.UserID)
		assert.Equal(t, 3, server[0].Quantity)
	})

	t.Run("Failed removal does not come back", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		line := harness(10)
		line.OwnerSize, line.Quantity = "M", 2
		b.server.Seed(session.UserID, line)

		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected
		require.Error(t, store.RemoveLine(ctx, line.ProductID, "M", ""))
		b.server.Err = nil

		next := loadStore(t, b, session)

		assert.Empty(t, next.Lines())
		server, _ := b.server.List(ctx, session.UserID)
		assert.Empty(t, server)
	})

	t.Run("Next write flushes earlier failures first", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		first, second := harness(10), harness(15)

		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected
		require.Error(t, store.AddLine(ctx, first, "M", ""))
		b.server.Err = nil

		require.NoError(t, store.AddLine(ctx, second, "L", ""))

		server, _ := b.server.List(ctx, session.UserID)
		assert.Len(t, server, 2)
		assert.Empty(t, store.Warnings())

		_, stillQueued := b.pending.Queued(userQueue(session.UserID))
		assert.False(t, stillQueued)
	})

	t.Run("Replay does not undo a later successful write", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		item := harness(10)

		store := loadStore(t, b, session)
		b.server.Err = testutils.ErrInjected
		require.Error(t, store.AddLine(ctx, item, "M", ""))
		b.server.Err = nil
		require.NoError(t, store.AddLine(ctx, item, "M", ""))

		next := loadStore(t, b, session)

		require.Len(t, next.Lines(), 1)
		assert.Equal(t, 2, next.Lines()[0].Quantity)
	})

	t.Run("Failed wishlist write is replayed", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		item := models.WishlistLine{ProductID: uuid.New(), Name: "Bandana Set"}

		store := loadStore(t, b, session)
		b.wishlist.Err = testutils.ErrInjected
		require.Error(t, store.AddWishlist(ctx, item))
		b.wishlist.Err = nil

		next := loadStore(t, b, session)

		require.Len(t, next.Wishlist(), 1)
		server, _ := b.wishlist.List(ctx, session.UserID)
		assert.Len(t, server, 1)
	})

	t.Run("Guest document kept after a failed save is there on the next load", func(t *testing.T) {
		b := newBackends()
		session := testutils.GuestSession()
		item := harness(20)

		store := loadStore(t, b, session)
		b.guest.Err = testutils.ErrInjected
		err := store.AddLine(ctx, item, "M", "")
		require.Error(t, err)
		assert.True(t, appErrors.IsSyncWarning(err))
		b.guest.Err = nil

		next := loadStore(t, b, session)

		require.Len(t, next.Lines(), 1)
		assert.Equal(t, item.ProductID, next.Lines()[0].ProductID)
		assert.Empty(t, next.Warnings())

		stored, ok := b.guest.Stored(session.GuestID)
		require.True(t, ok)
		assert.Len(t, stored.Lines, 1)

		_, stillQueued := b.pending.Queued(guestQueue(session))
		assert.False(t, stillQueued)
	})

	t.Run("Guest storage still down", func(t *testing.T) {
		b := newBackends()
		session := testutils.GuestSession()

		store := loadStore(t, b, session)
		b.guest.Err = testutils.ErrInjected
		require.Error(t, store.AddLine(ctx, harness(20), "M", ""))

		next := loadStore(t, b, session)

		assert.Len(t, next.Lines(), 1)
		assert.Len(t, next.Warnings(), 1)
	})

	t.Run("Without pending storage a failed write is only reported", func(t *testing.T) {
		b := newBackends()
		session := testutils.UserSession(uuid.New())
		backendsNoQueue := b.cart()
		backendsNoQueue.Pending = nil

		store, err := cart.Load(ctx, session, backendsNoQueue)
		require.NoError(t, err)
		b.server.Err = testutils.ErrInjected

		err = store.AddLine(ctx, harness(5), "M", "")

		assert.True(t, appErrors.IsSyncWarning(err))
		assert.Len(t, store.Lines(), 1)
	})
}
