package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Context returns a background context carrying a silent logger.
func Context() context.Context {
	return context.WithValue(context.Background(), middleware.LoggerKey, discardLogger())
}

func CreateTestRequestWithContext(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	claims := &models.Claims{UserID: userID, Email: "test@example.com"}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, discardLogger())

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := context.WithValue(req.Context(), middleware.LoggerKey, discardLogger())

	return req.WithContext(ctx)
}

// CreateTestRequestWithSession attaches a shopping session, and the claims of
// its user when the session is authenticated.
func CreateTestRequestWithSession(method, target string, body io.Reader, session *models.Session, pathParams map[string]string) *http.Request {
	var req *http.Request

	if session.Authenticated() {
		req = CreateTestRequestWithContext(method, target, body, session.UserID, pathParams)
	} else {
		req = CreateTestRequestWithoutContext(method, target, body, pathParams)
	}

	ctx := context.WithValue(req.Context(), middleware.SessionContextKey, session)

	return req.WithContext(ctx)
}

func GuestSession() *models.Session {
	return models.NewGuestSession()
}

func UserSession(userID uuid.UUID) *models.Session {
	session := models.NewGuestSession()
	session.UserID = userID

	return session
}
