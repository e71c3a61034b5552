package testutils

import (
	"context"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/google/uuid"
)

// MemoryServerCart is an in-memory account cart. Err, when set, is returned
// by every write; ListErr by List.
type MemoryServerCart struct {
	mu      sync.Mutex
	lines   map[uuid.UUID][]models.CartLine
	Err     error
	ListErr error

	// FailMergeAfter makes MergeLine fail once this many lines were merged;
	// negative disables it.
	FailMergeAfter int
	MergeCalls     int
}

func NewMemoryServerCart() *MemoryServerCart {
	return &MemoryServerCart{lines: map[uuid.UUID][]models.CartLine{}, FailMergeAfter: -1}
}

func (m *MemoryServerCart) Seed(userID uuid.UUID, lines ...models.CartLine) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines[userID] = append(m.lines[userID], lines...)
}

func (m *MemoryServerCart) List(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	return slices.Clone(m.lines[userID]), nil
}

func (m *MemoryServerCart) UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {
	return m.write(userID, line, false)
}

func (m *MemoryServerCart) MergeLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {
	m.mu.Lock()
	if m.FailMergeAfter >= 0 && m.MergeCalls >= m.FailMergeAfter {
		m.mu.Unlock()
		return ErrInjected
	}
	m.MergeCalls++
	m.mu.Unlock()

	return m.write(userID, line, true)
}

func (m *MemoryServerCart) write(userID uuid.UUID, line models.CartLine, sum bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	line.OwnerSize = models.NormalizeSize(line.OwnerSize)
	line.PetSize = models.NormalizeSize(line.PetSize)

	lines := m.lines[userID]
	for i := range lines {
		if lines[i].Key() == line.Key() {
			if sum {
				lines[i].Quantity += line.Quantity
			} else {
				lines[i].Quantity = line.Quantity
			}
			return nil
		}
	}

	m.lines[userID] = append(lines, line)

	return nil
}

func (m *MemoryServerCart) DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.lines[userID] = slices.DeleteFunc(m.lines[userID], func(l models.CartLine) bool { return l.Key() == key })

	return nil
}

func (m *MemoryServerCart) Clear(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	delete(m.lines, userID)

	return nil
}

type MemoryWishlist struct {
	mu    sync.Mutex
	items map[uuid.UUID][]models.WishlistLine
	Err   error
}

func NewMemoryWishlist() *MemoryWishlist {
	return &MemoryWishlist{items: map[uuid.UUID][]models.WishlistLine{}}
}

func (m *MemoryWishlist) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items[userID]), nil
}

func (m *MemoryWishlist) Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	if slices.ContainsFunc(m.items[userID], func(w models.WishlistLine) bool { return w.ProductID == item.ProductID }) {
		return nil
	}

	m.items[userID] = append(m.items[userID], item)

	return nil
}

func (m *MemoryWishlist) Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.items[userID] = slices.DeleteFunc(m.items[userID], func(w models.WishlistLine) bool { return w.ProductID == productID })

	return nil
}

type MemoryGuestCarts struct {
	mu      sync.Mutex
	carts   map[string]*models.GuestCart
	Err     error
	LoadErr error
}

func NewMemoryGuestCarts() *MemoryGuestCarts {
	return &MemoryGuestCarts{carts: map[string]*models.GuestCart{}}
}

func (m *MemoryGuestCarts) Load(ctx context.Context, guestID string) (*models.GuestCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}

	stored, ok := m.carts[guestID]
	if !ok {
		return &models.GuestCart{Lines: []models.CartLine{}, Wishlist: []models.WishlistLine{}}, nil
	}

	return &models.GuestCart{
		Lines:     slices.Clone(stored.Lines),
		Wishlist:  slices.Clone(stored.Wishlist),
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

func (m *MemoryGuestCarts) Save(ctx context.Context, guestID string, cart *models.GuestCart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.carts[guestID] = cart

	return nil
}

func (m *MemoryGuestCarts) Discard(ctx context.Context, guestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	delete(m.carts, guestID)

	return nil
}

// Stored reports whether a guest document exists and returns it.
func (m *MemoryGuestCarts) Stored(guestID string) (*models.GuestCart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[guestID]

	return cart, ok
}

type MemoryMergeJournal struct {
	mu      sync.Mutex
	locks   map[uuid.UUID]string
	applied map[string]map[string]struct{}
	LockErr error
	MarkErr error
}

func NewMemoryMergeJournal() *MemoryMergeJournal {
	return &MemoryMergeJournal{locks: map[uuid.UUID]string{}, applied: map[string]map[string]struct{}{}}
}

func (m *MemoryMergeJournal) AcquireLock(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LockErr != nil {
		return false, m.LockErr
	}

	if _, held := m.locks[userID]; held {
		return false, nil
	}

	m.locks[userID] = token

	return true, nil
}

func (m *MemoryMergeJournal) ReleaseLock(ctx context.Context, userID uuid.UUID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locks[userID] == token {
		delete(m.locks, userID)
	}

	return nil
}

func (m *MemoryMergeJournal) Locked(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, held := m.locks[userID]

	return held
}

func (m *MemoryMergeJournal) AppliedKeys(ctx context.Context, guestID string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make(map[string]struct{}, len(m.applied[guestID]))
	for k := range m.applied[guestID] {
		keys[k] = struct{}{}
	}

	return keys, nil
}

func (m *MemoryMergeJournal) MarkApplied(ctx context.Context, guestID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MarkErr != nil {
		return m.MarkErr
	}

	if m.applied[guestID] == nil {
		m.applied[guestID] = map[string]struct{}{}
	}
	m.applied[guestID][key] = struct{}{}

	return nil
}

func (m *MemoryMergeJournal) ClearJournal(ctx context.Context, guestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.applied, guestID)

	return nil
}

func (m *MemoryMergeJournal) Applied(guestID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.applied[guestID])
}

// MemorySessions satisfies the session store used by the middleware.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	GetErr    error
	SaveErr   error
	DeleteErr error
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: map[string]models.Session{}}
}

func (m *MemorySessions) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}

	return &session, nil
}

func (m *MemorySessions) Save(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.sessions[session.ID] = *session

	return nil
}

func (m *MemorySessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	delete(m.sessions, id)

	return nil
}

// MemoryPendingSync keeps queued cart changes. SaveErr fails SavePending.
type MemoryPendingSync struct {
	mu      sync.Mutex
	queued  map[string]*models.PendingSync
	SaveErr error
}

func NewMemoryPendingSync() *MemoryPendingSync {
	return &MemoryPendingSync{queued: map[string]*models.PendingSync{}}
}

func (m *MemoryPendingSync) LoadPending(ctx context.Context, owner string) (*models.PendingSync, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.queued[owner]
	if !ok {
		return nil, nil
	}

	copied := *pending
	copied.Changes = slices.Clone(pending.Changes)

	return &copied, nil
}

func (m *MemoryPendingSync) SavePending(ctx context.Context, owner string, pending *models.PendingSync) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.queued[owner] = pending

	return nil
}

func (m *MemoryPendingSync) DiscardPending(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.queued, owner)

	return nil
}

// Queued returns what is waiting for owner.
func (m *MemoryPendingSync) Queued(owner string) (*models.PendingSync, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.queued[owner]

	return pending, ok
}
