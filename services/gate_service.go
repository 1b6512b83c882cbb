package services

import (
	"context"

	"github.com/rink-radar/api-go/config"
	"github.com/rink-radar/api-go/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GateService translates visit history into feature authorization. It reads
// the ledger live on every call; eligibility is never cached.
type GateService struct {
	visits   VisitStore
	reviews  ReviewStore
	required int64
	log      *zap.Logger
}

func NewGateService(db *gorm.DB, cfg config.CheckinConfig, logger *zap.Logger) *GateService {
	store := newGormStore(db)
	return &GateService{
		visits:   store,
		reviews:  store,
		required: cfg.EventMinVisits,
		log:      logger,
	}
}

type Eligibility struct {
	VisitCount        int64 `json:"visit_count"`
	CanCreateEvent    bool  `json:"can_create_event"`
	CanJoinEvent      bool  `json:"can_join_event"`
	RemainingForEvent int64 `json:"remaining_for_event"`
}

// CheckEventCreation returns nil when the user has enough visit history at
// the rink to host an event. The threshold is global across all rinks.
func (gs *GateService) CheckEventCreation(ctx context.Context, userID, rinkID uint) error {
	count, err := gs.visits.CountVisits(ctx, userID, rinkID)
	if err != nil {
		gs.log.Error("eligibility count failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return errStorage()
	}
	if count < gs.required {
		return errNotEnoughVisits(gs.required, count)
	}
	return nil
}

// CheckEventJoin returns nil when the user has ever been present at the
// rink. A single verified visit, whenever it happened, suffices.
func (gs *GateService) CheckEventJoin(ctx context.Context, userID, rinkID uint) error {
	visited, err := gs.visits.HasEverVisited(ctx, userID, rinkID)
	if err != nil {
		gs.log.Error("presence lookup failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return errStorage()
	}
	if !visited {
		return errNeverVisited()
	}
	return nil
}

// CheckReviewCreation verifies the visit exists, belongs to the user, and
// has not been reviewed yet. The unique index on reviews.visit_id remains
// the storage backstop; this check exists to produce a clean domain error
// instead of a constraint violation.
func (gs *GateService) CheckReviewCreation(ctx context.Context, visitID, userID uint) (*models.Visit, error) {
	visit, err := gs.visits.GetVisit(ctx, visitID)
	if err != nil {
		gs.log.Error("visit fetch failed", zap.Uint("visit_id", visitID), zap.Error(err))
		return nil, errStorage()
	}
	if visit == nil {
		return nil, errVisitNotFound()
	}
	if visit.UserID != userID {
		return nil, errNotVisitOwner()
	}

	existing, err := gs.reviews.GetReviewByVisit(ctx, visitID)
	if err != nil {
		gs.log.Error("review lookup failed", zap.Uint("visit_id", visitID), zap.Error(err))
		return nil, errStorage()
	}
	if existing != nil {
		return nil, errAlreadyReviewed()
	}
	return visit, nil
}

// RinkEligibility bundles everything a client needs to render the rink's
// action buttons in one call.
func (gs *GateService) RinkEligibility(ctx context.Context, userID, rinkID uint) (*Eligibility, error) {
	count, err := gs.visits.CountVisits(ctx, userID, rinkID)
	if err != nil {
		gs.log.Error("eligibility count failed",
			zap.Uint("user_id", userID), zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}

	remaining := gs.required - count
	if remaining < 0 {
		remaining = 0
	}
	return &Eligibility{
		VisitCount:        count,
		CanCreateEvent:    count >= gs.required,
		CanJoinEvent:      count > 0,
		RemainingForEvent: remaining,
	}, nil
}
