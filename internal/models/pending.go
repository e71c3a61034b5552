package models

import (
	"time"

	"github.com/google/uuid"
)

type PendingOp string

const (
	PendingUpsertLine     PendingOp = "upsert_line"
	PendingDeleteLine     PendingOp = "delete_line"
	PendingClear          PendingOp = "clear"
	PendingWishlistAdd    PendingOp = "wishlist_add"
	PendingWishlistRemove PendingOp = "wishlist_remove"
)

// PendingChange is one account cart write that did not reach the server.
// A replay writes the current local state of the line or wishlist entry the
// change is about, so replaying twice is harmless.
type PendingChange struct {
	Op        PendingOp     `json:"op"`
	Line      *CartLine     `json:"line,omitempty"`
	Key       *LineKey      `json:"key,omitempty"`
	Item      *WishlistLine `json:"item,omitempty"`
	ProductID uuid.UUID     `json:"product_id,omitempty"`
}

// LineKey is the key of the line a line change is about.
func (c PendingChange) LineKey() LineKey {
	if c.Line != nil {
		return c.Line.Key()
	}
	if c.Key != nil {
		return *c.Key
	}
	return LineKey{}
}

// PendingSync holds the local cart changes of one shopper that are still
// waiting for a successful write. Anonymous shoppers keep the last local
// guest document, authenticated ones an ordered list of changes.
type PendingSync struct {
	Guest     *GuestCart      `json:"guest,omitempty"`
	Changes   []PendingChange `json:"changes,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *PendingSync) IsEmpty() bool {
	return p == nil || (p.Guest == nil && len(p.Changes) == 0)
}
