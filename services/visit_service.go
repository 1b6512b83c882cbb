package services

import (
	"context"
	"time"

	"github.com/rink-radar/api-go/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VisitLedger owns the canonical "user was at rink on day" records that
// everything downstream (events, reviews) treats as currency.
type VisitLedger struct {
	store VisitStore
	log   *zap.Logger
}

func NewVisitLedger(db *gorm.DB, logger *zap.Logger) *VisitLedger {
	return &VisitLedger{store: newGormStore(db), log: logger}
}

// DateOnly truncates a timestamp to its calendar day.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EnsureVisit returns the visit id for (userID, rinkID, date), creating the
// row if it does not exist yet. A zero date means today. Safe to call
// repeatedly; duplicates cannot be produced.
func (vl *VisitLedger) EnsureVisit(ctx context.Context, userID, rinkID uint, date time.Time) (uint, error) {
	if date.IsZero() {
		date = time.Now()
	}
	id, err := vl.store.EnsureVisit(ctx, userID, rinkID, DateOnly(date))
	if err != nil {
		vl.log.Error("ensure visit failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return 0, errStorage()
	}
	return id, nil
}

func (vl *VisitLedger) HasEverVisited(ctx context.Context, userID, rinkID uint) (bool, error) {
	visited, err := vl.store.HasEverVisited(ctx, userID, rinkID)
	if err != nil {
		vl.log.Error("visit lookup failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return false, errStorage()
	}
	return visited, nil
}

func (vl *VisitLedger) CountVisits(ctx context.Context, userID, rinkID uint) (int64, error) {
	count, err := vl.store.CountVisits(ctx, userID, rinkID)
	if err != nil {
		vl.log.Error("visit count failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return 0, errStorage()
	}
	return count, nil
}

func (vl *VisitLedger) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	visit, err := vl.store.GetVisit(ctx, id)
	if err != nil {
		vl.log.Error("visit fetch failed", zap.Uint("visit_id", id), zap.Error(err))
		return nil, errStorage()
	}
	if visit == nil {
		return nil, errVisitNotFound()
	}
	return visit, nil
}

func (vl *VisitLedger) VisitsByUser(ctx context.Context, userID uint) ([]models.Visit, error) {
	visits, err := vl.store.VisitsByUser(ctx, userID)
	if err != nil {
		vl.log.Error("visit history fetch failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, errStorage()
	}
	return visits, nil
}
