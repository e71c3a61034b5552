package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils/response"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionContextKey = contextKey("session")
)

// SessionStore returns (nil, nil) for an unknown session id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

type SessionMiddleware struct {
	store SessionStore
}

func NewSessionMiddleware(store SessionStore) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Resolve loads or issues the shopping session and binds the authenticated
// user to it. It must run after AuthMiddleware.Optional/Authenticate.
func (m *SessionMiddleware) Resolve(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()
		logger := LoggerFromContext(ctx)

		var session *models.Session

		if id := r.Header.Get(SessionHeader); id != "" {
			existing, err := m.store.Get(ctx, id)
			if err != nil {
				logger.Error("Failed to load session", slog.String("error", err.Error()))
				response.Error(w, errors.InternalError("Failed to load session").WithError(err))
				return
			}
			session = existing
		}

		dirty := false

		if session == nil {
			session = models.NewGuestSession()
			dirty = true
		}

		claims, authenticated := ClaimsFromContext(ctx)

		switch {
		case authenticated && session.UserID == uuid.Nil:
			// anonymous -> authenticated: the guest cart merge becomes due
			session.UserID = claims.UserID
			session.Merged = false
			dirty = true
			logger.Info("Session bound to user", slog.String("sessionId", session.ID))

		case authenticated && session.UserID != claims.UserID:
			session = models.NewGuestSession()
			session.UserID = claims.UserID
			dirty = true

		case !authenticated && session.UserID != uuid.Nil:
			// an account session reached without credentials; never expose that cart
			session = models.NewGuestSession()
			dirty = true
		}

		if dirty {
			if err := m.store.Save(ctx, session); err != nil {
				logger.Error("Failed to save session", slog.String("error", err.Error()))
				response.Error(w, errors.InternalError("Failed to save session").WithError(err))
				return
			}
		}

		w.Header().Set(SessionHeader, session.ID)

		ctx = context.WithValue(ctx, SessionContextKey, session)
		ctx = context.WithValue(ctx, LoggerKey, logger.With(slog.String("sessionId", session.ID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*models.Session)

	return session, ok && session != nil
}
