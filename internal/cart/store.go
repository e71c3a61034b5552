package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/pricing"
	"github.com/google/uuid"
)

// ServerCart is the account-side cart of an authenticated user.
type ServerCart interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
	DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type ServerWishlist interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error)
	Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error
	Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
}

// GuestStorage persists the anonymous cart under the guest id.
type GuestStorage interface {
	Load(ctx context.Context, guestID string) (*models.GuestCart, error)
	Save(ctx context.Context, guestID string, cart *models.GuestCart) error
	Discard(ctx context.Context, guestID string) error
}

// PendingStorage keeps the changes whose write failed, keyed by owner.
type PendingStorage interface {
	LoadPending(ctx context.Context, owner string) (*models.PendingSync, error)
	SavePending(ctx context.Context, owner string, pending *models.PendingSync) error
	DiscardPending(ctx context.Context, owner string) error
}

// Backends wires a Store to its storage. Pending may be nil; failed writes
// are then only reported and do not outlive the request.
type Backends struct {
	Server   ServerCart
	Wishlist ServerWishlist
	Guest    GuestStorage
	Pending  PendingStorage
}

// Store is the cart of one session. Reads and mutations work on an in-memory
// copy that is replaced atomically; authenticated sessions then write through
// to the server cart, anonymous ones save the whole guest document. A failed
// write is reported as a sync warning, the in-memory state is kept and the
// change is queued in pending storage. Later writes and the next Load replay
// the queue in order.
type Store struct {
	session  *models.Session
	backends Backends

	lines    atomic.Pointer[[]models.CartLine]
	wishlist atomic.Pointer[[]models.WishlistLine]

	// mu orders the writes of this store and guards pending and warnings.
	mu       sync.Mutex
	pending  *models.PendingSync
	warnings []string
}

func guestOwner(guestID string) string {
	return "guest:" + guestID
}

func userOwner(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// Load builds the store for a session. An authenticated session is hydrated
// from the server cart, an anonymous one from its guest document. Changes
// still queued from an earlier failed write are applied on top and replayed.
func Load(ctx context.Context, session *models.Session, backends Backends) (*Store, error) {

	s := &Store{session: session, backends: backends}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload replaces the in-memory state with what the backing storage holds,
// with queued changes applied. A failed replay leaves a warning on the store
// instead of failing the load.
func (s *Store) Reload(ctx context.Context) error {

	logger := middleware.LoggerFromContext(ctx)

	var (
		lines    []models.CartLine
		wishlist []models.WishlistLine
	)

	if s.session.Authenticated() {
		var err error

		lines, err = s.backends.Server.List(ctx, s.session.UserID)
		if err != nil {
			logger.Error("Failed to load server cart", slog.String("error", err.Error()))
			return errors.DatabaseError("Failed to load cart").WithError(err)
		}

		wishlist, err = s.backends.Wishlist.List(ctx, s.session.UserID)
		if err != nil {
			logger.Error("Failed to load wishlist", slog.String("error", err.Error()))
			return errors.DatabaseError("Failed to load wishlist").WithError(err)
		}

	} else {
		guest, err := s.backends.Guest.Load(ctx, s.session.GuestID)
		if err != nil {
			logger.Error("Failed to load guest cart", slog.String("error", err.Error()))
			return errors.InternalError("Failed to load cart").WithError(err)
		}

		lines, wishlist = guest.Lines, guest.Wishlist
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending, s.warnings = nil, nil
	pending := s.loadPending(ctx, s.owner())

	if s.session.Authenticated() {
		if pending == nil || len(pending.Changes) == 0 {
			s.publish(lines, wishlist)
			return nil
		}

		for _, change := range pending.Changes {
			lines, wishlist = applyChange(lines, wishlist, change)
		}

		s.publish(lines, wishlist)
		s.pending = pending

		if err := s.flushLocked(ctx, "replay", pending.Changes); err == nil {
			logger.Info("Pending cart changes written", slog.Int("changes", len(pending.Changes)))
		}

		return nil
	}

	if pending == nil || pending.Guest == nil {
		s.publish(lines, wishlist)
		return nil
	}

	// the queued document is newer than the stored one
	s.publish(slices.Clone(pending.Guest.Lines), slices.Clone(pending.Guest.Wishlist))
	s.pending = pending

	if err := s.backends.Guest.Save(ctx, s.session.GuestID, pending.Guest); err != nil {
		_ = s.warn(ctx, "replay", err)
		return nil
	}

	s.forgetLocked(ctx)
	logger.Info("Pending guest cart written")

	return nil
}

func (s *Store) publish(lines []models.CartLine, wishlist []models.WishlistLine) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	if wishlist == nil {
		wishlist = []models.WishlistLine{}
	}

	s.lines.Store(&lines)
	s.wishlist.Store(&wishlist)
}

func (s *Store) Session() *models.Session {
	return s.session
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []models.CartLine {
	return slices.Clone(*s.lines.Load())
}

func (s *Store) Wishlist() []models.WishlistLine {
	return slices.Clone(*s.wishlist.Load())
}

func (s *Store) Totals() models.CartTotals {

	lines := *s.lines.Load()

	count := 0
	for _, line := range lines {
		count += line.Quantity
	}

	return models.CartTotals{Subtotal: pricing.Subtotal(lines), Count: count}
}

// Warnings lists the sync warnings that still hold for this store.
func (s *Store) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.warnings)
}

func (s *Store) View() models.CartView {
	return models.CartView{Lines: s.Lines(), Totals: s.Totals(), Warnings: s.Warnings()}
}

// AddLine adds one unit of the item in the given sizes. The item carries the
// catalog fields; its own sizes and quantity are ignored.
func (s *Store) AddLine(ctx context.Context, item models.CartLine, size, petSize string) error {

	key := models.KeyOf(item.ProductID, size, petSize)

	result := s.mutateLines(func(lines []models.CartLine) ([]models.CartLine, *models.CartLine) {
		if i := indexOf(lines, key); i >= 0 {
			lines[i].Quantity++
			return lines, &lines[i]
		}

		line := item
		line.OwnerSize = key.OwnerSize
		line.PetSize = key.PetSize
		line.Quantity = 1
		lines = append(lines, line)

		return lines, &lines[len(lines)-1]
	})

	return s.syncLine(ctx, "add_line", *result)
}

// RemoveLine is a no-op when no line has that key.
func (s *Store) RemoveLine(ctx context.Context, productID uuid.UUID, size, petSize string) error {

	key := models.KeyOf(productID, size, petSize)

	removed := s.mutateLines(func(lines []models.CartLine) ([]models.CartLine, *models.CartLine) {
		i := indexOf(lines, key)
		if i < 0 {
			return lines, nil
		}

		line := lines[i]
		return slices.Delete(lines, i, i+1), &line
	})

	if removed == nil {
		return nil
	}

	if s.session.Authenticated() {
		return s.write(ctx, "remove_line", models.PendingChange{Op: models.PendingDeleteLine, Key: &key})
	}

	return s.saveGuest(ctx, "remove_line")
}

// SetQuantity replaces the quantity of an existing line. A quantity below 1
// removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID uuid.UUID, size, petSize string, qty int) error {

	if qty < 1 {
		return s.RemoveLine(ctx, productID, size, petSize)
	}

	key := models.KeyOf(productID, size, petSize)

	result := s.mutateLines(func(lines []models.CartLine) ([]models.CartLine, *models.CartLine) {
		i := indexOf(lines, key)
		if i < 0 {
			return lines, nil
		}

		lines[i].Quantity = qty
		return lines, &lines[i]
	})

	if result == nil {
		return errors.NotFoundError("Cart line not found")
	}

	return s.syncLine(ctx, "set_quantity", *result)
}

func (s *Store) Clear(ctx context.Context) error {

	empty := []models.CartLine{}
	s.lines.Store(&empty)

	if s.session.Authenticated() {
		return s.write(ctx, "clear", models.PendingChange{Op: models.PendingClear})
	}

	return s.saveGuest(ctx, "clear")
}

// AddWishlist keeps a single entry per product.
func (s *Store) AddWishlist(ctx context.Context, item models.WishlistLine) error {

	for {
		current := s.wishlist.Load()

		if slices.ContainsFunc(*current, func(w models.WishlistLine) bool { return w.ProductID == item.ProductID }) {
			return nil
		}

		next := append(slices.Clone(*current), item)
		if s.wishlist.CompareAndSwap(current, &next) {
			break
		}
	}

	if s.session.Authenticated() {
		return s.write(ctx, "wishlist_add", models.PendingChange{Op: models.PendingWishlistAdd, Item: &item, ProductID: item.ProductID})
	}

	return s.saveGuest(ctx, "wishlist_add")
}

func (s *Store) RemoveWishlist(ctx context.Context, productID uuid.UUID) error {

	for {
		current := s.wishlist.Load()

		i := slices.IndexFunc(*current, func(w models.WishlistLine) bool { return w.ProductID == productID })
		if i < 0 {
			return nil
		}

		next := slices.Delete(slices.Clone(*current), i, i+1)
		if s.wishlist.CompareAndSwap(current, &next) {
			break
		}
	}

	if s.session.Authenticated() {
		return s.write(ctx, "wishlist_remove", models.PendingChange{Op: models.PendingWishlistRemove, ProductID: productID})
	}

	return s.saveGuest(ctx, "wishlist_remove")
}

// mutateLines applies fn to a private copy of the lines and publishes the
// copy. fn returns the new lines and the affected line, or nil when nothing
// changed. The returned line is a copy.
func (s *Store) mutateLines(fn func([]models.CartLine) ([]models.CartLine, *models.CartLine)) *models.CartLine {

	for {
		current := s.lines.Load()

		next, affected := fn(slices.Clone(*current))
		if affected == nil {
			return nil
		}

		if s.lines.CompareAndSwap(current, &next) {
			line := *affected
			return &line
		}
	}
}

func (s *Store) syncLine(ctx context.Context, operation string, line models.CartLine) error {

	if s.session.Authenticated() {
		return s.write(ctx, operation, models.PendingChange{Op: models.PendingUpsertLine, Line: &line})
	}

	return s.saveGuest(ctx, operation)
}

// write queues change behind any changes still pending and flushes the queue.
func (s *Store) write(ctx context.Context, operation string, change models.PendingChange) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	var queue []models.PendingChange
	if s.pending != nil {
		queue = slices.Clone(s.pending.Changes)
	}

	return s.flushLocked(ctx, operation, append(queue, change))
}

// flushLocked writes the queue in order. What did not make it stays queued.
func (s *Store) flushLocked(ctx context.Context, operation string, queue []models.PendingChange) error {

	for i, change := range queue {
		if err := s.replay(ctx, change); err != nil {
			s.keepLocked(ctx, &models.PendingSync{Changes: slices.Clone(queue[i:])})
			return s.warn(ctx, operation, err)
		}
	}

	s.forgetLocked(ctx)

	return nil
}

// replay writes the current local state of whatever the change is about.
func (s *Store) replay(ctx context.Context, change models.PendingChange) error {

	userID := s.session.UserID

	switch change.Op {
	case models.PendingClear:
		return s.backends.Server.Clear(ctx, userID)

	case models.PendingUpsertLine, models.PendingDeleteLine:
		key := change.LineKey()
		lines := *s.lines.Load()

		if i := indexOf(lines, key); i >= 0 {
			return s.backends.Server.UpsertLine(ctx, userID, lines[i])
		}

		return s.backends.Server.DeleteLine(ctx, userID, key)

	case models.PendingWishlistAdd, models.PendingWishlistRemove:
		wishlist := *s.wishlist.Load()

		if i := slices.IndexFunc(wishlist, func(w models.WishlistLine) bool { return w.ProductID == change.ProductID }); i >= 0 {
			return s.backends.Wishlist.Add(ctx, userID, wishlist[i])
		}

		return s.backends.Wishlist.Remove(ctx, userID, change.ProductID)
	}

	return nil
}

func (s *Store) saveGuest(ctx context.Context, operation string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &models.GuestCart{
		Lines:     s.Lines(),
		Wishlist:  s.Wishlist(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.backends.Guest.Save(ctx, s.session.GuestID, doc); err != nil {
		s.keepLocked(ctx, &models.PendingSync{Guest: doc})
		return s.warn(ctx, operation, err)
	}

	s.forgetLocked(ctx)

	return nil
}

func (s *Store) owner() string {
	if s.session.Authenticated() {
		return userOwner(s.session.UserID)
	}
	return guestOwner(s.session.GuestID)
}

// loadPending gives nil when nothing is queued or the queue cannot be read.
func (s *Store) loadPending(ctx context.Context, owner string) *models.PendingSync {

	if s.backends.Pending == nil {
		return nil
	}

	pending, err := s.backends.Pending.LoadPending(ctx, owner)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to read pending cart changes", slog.String("error", err.Error()))
		return nil
	}

	return pending
}

func (s *Store) keepLocked(ctx context.Context, pending *models.PendingSync) {

	pending.UpdatedAt = time.Now().UTC()
	s.pending = pending

	if s.backends.Pending == nil {
		return
	}

	if err := s.backends.Pending.SavePending(ctx, s.owner(), pending); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to queue pending cart changes", slog.String("error", err.Error()))
	}
}

// forgetLocked drops the queue once everything in it was written.
func (s *Store) forgetLocked(ctx context.Context) {

	s.warnings = nil

	if s.pending.IsEmpty() {
		s.pending = nil
		return
	}

	s.pending = nil

	if s.backends.Pending == nil {
		return
	}

	// a stale queue only replays writes that already landed
	if err := s.backends.Pending.DiscardPending(ctx, s.owner()); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to drop pending cart changes", slog.String("error", err.Error()))
	}
}

func (s *Store) warn(ctx context.Context, operation string, err error) error {

	middleware.LoggerFromContext(ctx).Warn("Cart change kept locally, sync failed",
		slog.String("operation", operation),
		slog.Bool("authenticated", s.session.Authenticated()),
		slog.String("error", err.Error()))

	metrics.RecordSyncWarning(operation)

	appErr := errors.SyncWarning("Your cart was updated but could not be saved yet").WithError(err)
	s.warnings = []string{appErr.Message}

	return appErr
}

// guestDocument is the guest cart as the shopper last saw it: the queued
// document when its save failed, the stored one otherwise.
func (s *Store) guestDocument(ctx context.Context, guest GuestStorage) (*models.GuestCart, error) {

	if pending := s.loadPending(ctx, guestOwner(s.session.GuestID)); pending != nil && pending.Guest != nil {
		doc := *pending.Guest
		return &doc, nil
	}

	return guest.Load(ctx, s.session.GuestID)
}

// forgetGuestDocument drops a queued guest document after it was merged.
func (s *Store) forgetGuestDocument(ctx context.Context) {

	if s.backends.Pending == nil {
		return
	}

	if err := s.backends.Pending.DiscardPending(ctx, guestOwner(s.session.GuestID)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to drop pending guest cart", slog.String("error", err.Error()))
	}
}

// applyChange folds a queued change into loaded state using the line
// identity rule: an upsert replaces the line with the same key.
func applyChange(lines []models.CartLine, wishlist []models.WishlistLine, change models.PendingChange) ([]models.CartLine, []models.WishlistLine) {

	switch change.Op {
	case models.PendingUpsertLine:
		if change.Line == nil {
			break
		}

		line := *change.Line
		key := line.Key()
		line.OwnerSize, line.PetSize = key.OwnerSize, key.PetSize

		if i := indexOf(lines, key); i >= 0 {
			lines[i] = line
		} else {
			lines = append(lines, line)
		}

	case models.PendingDeleteLine:
		key := change.LineKey()
		lines = slices.DeleteFunc(lines, func(l models.CartLine) bool { return l.Key() == key })

	case models.PendingClear:
		lines = []models.CartLine{}

	case models.PendingWishlistAdd:
		if change.Item == nil {
			break
		}

		if !slices.ContainsFunc(wishlist, func(w models.WishlistLine) bool { return w.ProductID == change.Item.ProductID }) {
			wishlist = append(wishlist, *change.Item)
		}

	case models.PendingWishlistRemove:
		wishlist = slices.DeleteFunc(wishlist, func(w models.WishlistLine) bool { return w.ProductID == change.ProductID })
	}

	return lines, wishlist
}

func indexOf(lines []models.CartLine, key models.LineKey) int {
	return slices.IndexFunc(lines, func(l models.CartLine) bool { return l.Key() == key })
}
