package cart

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/google/uuid"
)

// LineMerger adds a line to the account cart, summing the quantity into an
// existing line with the same key.
type LineMerger interface {
	MergeLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
}

type WishlistAdder interface {
	Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error
}

type MergeJournal interface {
	AcquireLock(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	ReleaseLock(ctx context.Context, userID uuid.UUID, token string) error
	AppliedKeys(ctx context.Context, guestID string) (map[string]struct{}, error)
	MarkApplied(ctx context.Context, guestID, key string) error
	ClearJournal(ctx context.Context, guestID string) error
}

type SessionSaver interface {
	Save(ctx context.Context, session *models.Session) error
}

type MergeOutcome string

const (
	MergeSkipped    MergeOutcome = "skipped"
	MergeInProgress MergeOutcome = "in_progress"
	MergeCompleted  MergeOutcome = "completed"
	MergeFailed     MergeOutcome = "failed"
)

type MergeResult struct {
	Outcome        MergeOutcome `json:"outcome"`
	LinesMerged    int          `json:"lines_merged"`
	WishlistMerged int          `json:"wishlist_merged"`
}

// Reconciler folds the guest cart of a freshly authenticated session into
// the account cart, once per authenticated session.
type Reconciler struct {
	lines    LineMerger
	wishlist WishlistAdder
	guest    GuestStorage
	journal  MergeJournal
	sessions SessionSaver
}

func NewReconciler(lines LineMerger, wishlist WishlistAdder, guest GuestStorage, journal MergeJournal, sessions SessionSaver) *Reconciler {
	return &Reconciler{
		lines:    lines,
		wishlist: wishlist,
		guest:    guest,
		journal:  journal,
		sessions: sessions,
	}
}

func journalKey(key models.LineKey) string {
	return "line:" + key.String()
}

// Reconcile is a no-op for anonymous or already merged sessions and for an
// empty guest cart. Lines already applied by an earlier, interrupted attempt
// are skipped, so a retry never adds the same guest line twice. The guest
// cart is only discarded and the session only marked merged after every line
// made it to the account cart.
func (r *Reconciler) Reconcile(ctx context.Context, store *Store) (*MergeResult, error) {

	logger := middleware.LoggerFromContext(ctx)
	session := store.Session()

	if !session.Authenticated() || session.Merged {
		return &MergeResult{Outcome: MergeSkipped}, nil
	}

	guest, err := store.guestDocument(ctx, r.guest)
	if err != nil {
		logger.Error("Failed to load guest cart for merge", slog.String("error", err.Error()))
		return nil, errors.InternalError("Failed to merge guest cart").WithError(err)
	}

	if guest.IsEmpty() {
		return &MergeResult{Outcome: MergeSkipped}, nil
	}

	token := uuid.NewString()

	acquired, err := r.journal.AcquireLock(ctx, session.UserID, token)
	if err != nil {
		logger.Error("Failed to acquire merge lock", slog.String("error", err.Error()))
		return nil, errors.InternalError("Failed to merge guest cart").WithError(err)
	}

	if !acquired {
		logger.Info("Guest cart merge already in progress")
		metrics.RecordCartMerge(string(MergeInProgress))
		return &MergeResult{Outcome: MergeInProgress}, nil
	}

	defer func() {
		if err := r.journal.ReleaseLock(context.WithoutCancel(ctx), session.UserID, token); err != nil {
			logger.Warn("Failed to release merge lock", slog.String("error", err.Error()))
		}
	}()

	result, err := r.apply(ctx, session, guest)
	if err != nil {
		metrics.RecordCartMerge(string(MergeFailed))
		return nil, err
	}

	if err := r.guest.Discard(ctx, session.GuestID); err != nil {
		logger.Error("Failed to discard merged guest cart", slog.String("error", err.Error()))
		metrics.RecordCartMerge(string(MergeFailed))
		return nil, errors.InternalError("Failed to merge guest cart").WithError(err)
	}

	store.forgetGuestDocument(ctx)

	if err := r.journal.ClearJournal(ctx, session.GuestID); err != nil {
		logger.Warn("Failed to clear merge journal", slog.String("error", err.Error()))
	}

	session.Merged = true

	if err := r.sessions.Save(ctx, session); err != nil {
		// the guest cart is gone, an unsaved flag only costs a no-op rerun
		logger.Warn("Failed to save merged session", slog.String("error", err.Error()))
	}

	if err := store.Reload(ctx); err != nil {
		return nil, err
	}

	logger.Info("Guest cart merged",
		slog.Int("lines", result.LinesMerged),
		slog.Int("wishlist", result.WishlistMerged))

	metrics.RecordCartMerge(string(MergeCompleted))

	return result, nil
}

func (r *Reconciler) apply(ctx context.Context, session *models.Session, guest *models.GuestCart) (*MergeResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	applied, err := r.journal.AppliedKeys(ctx, session.GuestID)
	if err != nil {
		logger.Error("Failed to read merge journal", slog.String("error", err.Error()))
		return nil, errors.InternalError("Failed to merge guest cart").WithError(err)
	}

	result := &MergeResult{Outcome: MergeCompleted}

	for _, line := range guest.Lines {
		key := journalKey(line.Key())

		if _, done := applied[key]; done {
			continue
		}

		if line.Quantity < 1 {
			continue
		}

		if err := r.lines.MergeLine(ctx, session.UserID, line); err != nil {
			logger.Error("Failed to merge guest line",
				slog.String("line", line.Key().String()),
				slog.String("error", err.Error()))
			return nil, errors.DatabaseError("Failed to merge guest cart").WithError(err)
		}

		if err := r.journal.MarkApplied(ctx, session.GuestID, key); err != nil {
			logger.Error("Failed to journal merged line", slog.String("error", err.Error()))
			return nil, errors.InternalError("Failed to merge guest cart").WithError(err)
		}

		applied[key] = struct{}{}
		result.LinesMerged++
	}

	for _, item := range guest.Wishlist {
		if err := r.wishlist.Add(ctx, session.UserID, item); err != nil {
			logger.Error("Failed to merge guest wishlist item", slog.String("error", err.Error()))
			return nil, errors.DatabaseError("Failed to merge guest wishlist").WithError(err)
		}

		result.WishlistMerged++
	}

	return result, nil
}
