package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils/response"
)

type SessionHandler struct {
	sessions middleware.SessionStore
	stores   *CartStores
}

func NewSessionHandler(sessions middleware.SessionStore, stores *CartStores) *SessionHandler {
	return &SessionHandler{sessions: sessions, stores: stores}
}

// CreateSession godoc
//	@Summary		Start or resume a shopping session
//	@Description	Returns the session of the X-Session-ID header or issues a new one. With a bearer token the session is bound to the user and the guest cart is merged into the account cart.
//	@Tags			Sessions
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Existing session id"
//	@Success		201				{object}	models.SessionResponse	"Session ready"
//	@Failure		401				{object}	response.ErrorResponse	"Invalid bearer token"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/sessions [post]
func (h *SessionHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		store, err := h.stores.Open(r.Context())
		if err != nil {
			logger.Error("Failed to open session cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		session := store.Session()

		logger.Info("Session ready", slog.Bool("authenticated", session.Authenticated()))
		response.Success(w, http.StatusCreated, models.SessionResponse{
			SessionID:     session.ID,
			Authenticated: session.Authenticated(),
			Merged:        session.Merged,
		})
	}
}

// Logout godoc
//	@Summary		End the shopping session
//	@Description	Deletes the session. The account cart is kept; the next request starts a new anonymous session.
//	@Tags			Sessions
//	@Produce		json
//	@Param			X-Session-ID	header		string					true	"Session id"
//	@Success		200				{object}	map[string]bool			"Session ended"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/sessions [delete]
func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, errors.InternalError("Session not resolved"))
			return
		}

		if err := h.sessions.Delete(r.Context(), session.ID); err != nil {
			logger.Error("Failed to delete session", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to end session").WithError(err))
			return
		}

		w.Header().Del(middleware.SessionHeader)

		logger.Info("Session ended")
		response.Success(w, http.StatusOK, map[string]bool{"success": true})
	}
}
