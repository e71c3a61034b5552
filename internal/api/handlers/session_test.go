package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler(t *testing.T) {
	t.Run("Create - Guest", func(t *testing.T) {
		// Arrange
		h := newStoresHarness()
		sessionHandler := handlers.NewSessionHandler(h.sessions, h.stores)
		session := testutils.GuestSession()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/sessions", nil, session, nil)
		rr := httptest.NewRecorder()

		// Act
		sessionHandler.CreateSession().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		body := decode[models.SessionResponse](t, rr).Data
		assert.Equal(t, session.ID, body.SessionID)
		assert.False(t, body.Authenticated)
		assert.False(t, body.Merged)
	})

	t.Run("Create - Authenticated Merges Guest Cart", func(t *testing.T) {
		h := newStoresHarness()
		sessionHandler := handlers.NewSessionHandler(h.sessions, h.stores)
		userID := uuid.New()
		session := testutils.UserSession(userID)
		h.seedGuest(t, session, models.CartLine{ProductID: uuid.New(), UnitPrice: 12, PetSize: "S", Quantity: 2})
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/sessions", nil, session, nil)
		rr := httptest.NewRecorder()

		sessionHandler.CreateSession().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		body := decode[models.SessionResponse](t, rr).Data
		assert.True(t, body.Authenticated)
		assert.True(t, body.Merged)

		lines, err := h.server.List(testutils.Context(), userID)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
		assert.False(t, h.journal.Locked(userID))
	})

	t.Run("Create - Failed Merge Keeps Guest Cart", func(t *testing.T) {
		h := newStoresHarness()
		h.server.FailMergeAfter = 0
		sessionHandler := handlers.NewSessionHandler(h.sessions, h.stores)
		session := testutils.UserSession(uuid.New())
		h.seedGuest(t, session, models.CartLine{ProductID: uuid.New(), UnitPrice: 12, PetSize: "S", Quantity: 2})
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/sessions", nil, session, nil)
		rr := httptest.NewRecorder()

		sessionHandler.CreateSession().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.False(t, decode[models.SessionResponse](t, rr).Data.Merged)

		_, stored := h.guest.Stored(session.GuestID)
		assert.True(t, stored)
	})

	t.Run("Logout", func(t *testing.T) {
		h := newStoresHarness()
		sessionHandler := handlers.NewSessionHandler(h.sessions, h.stores)
		session := testutils.UserSession(uuid.New())
		require.NoError(t, h.sessions.Save(testutils.Context(), session))
		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/sessions", nil, session, nil)
		rr := httptest.NewRecorder()
		rr.Header().Set(middleware.SessionHeader, session.ID)

		sessionHandler.Logout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get(middleware.SessionHeader))

		stored, err := h.sessions.Get(testutils.Context(), session.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("Logout - Store Failure", func(t *testing.T) {
		h := newStoresHarness()
		h.sessions.DeleteErr = testutils.ErrInjected
		sessionHandler := handlers.NewSessionHandler(h.sessions, h.stores)
		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/sessions", nil, testutils.GuestSession(), nil)
		rr := httptest.NewRecorder()

		sessionHandler.Logout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
