package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/testutils"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// storesHarness wires CartStores to in-memory backends.
type storesHarness struct {
	server   *testutils.MemoryServerCart
	wishlist *testutils.MemoryWishlist
	guest    *testutils.MemoryGuestCarts
	pending  *testutils.MemoryPendingSync
	journal  *testutils.MemoryMergeJournal
	sessions *testutils.MemorySessions
	stores   *handlers.CartStores
}

func newStoresHarness() *storesHarness {
	h := &storesHarness{
		server:   testutils.NewMemoryServerCart(),
		wishlist: testutils.NewMemoryWishlist(),
		guest:    testutils.NewMemoryGuestCarts(),
		pending:  testutils.NewMemoryPendingSync(),
		journal:  testutils.NewMemoryMergeJournal(),
		sessions: testutils.NewMemorySessions(),
	}

	h.stores = handlers.NewCartStores(
		cart.Backends{Server: h.server, Wishlist: h.wishlist, Guest: h.guest, Pending: h.pending},
		cart.NewReconciler(h.server, h.wishlist, h.guest, h.journal, h.sessions),
	)

	return h
}

func (h *storesHarness) seedGuest(t *testing.T, session *models.Session, lines ...models.CartLine) {
	t.Helper()

	require.NoError(t, h.guest.Save(testutils.Context(), session.GuestID, &models.GuestCart{Lines: lines}))
}

type envelope[T any] struct {
	Success bool                    `json:"success"`
	Data    T                       `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var body envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())

	return body
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func hoodie() *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		CategoryID:    uuid.New(),
		CategoryLabel: "Hoodies",
		Name:          "Matching Hoodie",
		Price:         40,
		ImageRef:      "hoodie.png",
		Slug:          "matching-hoodie",
		Status:        models.ProductStatusActive,
	}
}
