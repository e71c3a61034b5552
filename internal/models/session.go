package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one shopping session. Merged is scoped to the authenticated
// lifetime of the session and is dropped with it on logout.
type Session struct {
	ID        string    `json:"id"`
	GuestID   string    `json:"guest_id"`
	UserID    uuid.UUID `json:"user_id"`
	Merged    bool      `json:"merged"`
	CreatedAt time.Time `json:"created_at"`
}

func NewGuestSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		GuestID:   uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

type SessionResponse struct {
	SessionID     string `json:"session_id"`
	Authenticated bool   `json:"authenticated"`
	Merged        bool   `json:"merged"`
}
