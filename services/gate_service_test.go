package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestGateService(ms *memStore) *GateService {
	return &GateService{visits: ms, reviews: ms, required: 5, log: zap.NewNop()}
}

func seedVisits(ms *memStore, userID, rinkID uint, n int) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		ms.seedVisit(userID, rinkID, base.AddDate(0, 0, i))
	}
}

func TestCheckEventCreationThreshold(t *testing.T) {
	ms := newMemStore()
	gs := newTestGateService(ms)

	seedVisits(ms, 1, 2, 4)
	err := gs.CheckEventCreation(context.Background(), 1, 2)
	if !IsKind(err, KindNotEnoughVisits) {
		t.Fatalf("expected NOT_ENOUGH_VISITS at 4 visits, got %v", err)
	}
	var de *Error
	if !errors.As(err, &de) {
		t.Fatal("expected a domain error")
	}
	if de.Details["remainingVisits"] != int64(1) {
		t.Errorf("expected remainingVisits 1, got %v", de.Details["remainingVisits"])
	}

	ms.seedVisit(1, 2, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	if err := gs.CheckEventCreation(context.Background(), 1, 2); err != nil {
		t.Errorf("expected pass at 5 visits, got %v", err)
	}
}

func TestCheckEventCreationCountsPerRink(t *testing.T) {
	ms := newMemStore()
	gs := newTestGateService(ms)

	// Five visits at another rink don't transfer.
	seedVisits(ms, 1, 9, 5)
	if err := gs.CheckEventCreation(context.Background(), 1, 2); !IsKind(err, KindNotEnoughVisits) {
		t.Errorf("visits at other rinks must not count, got %v", err)
	}
}

func TestCheckEventJoinSingleVisitSuffices(t *testing.T) {
	ms := newMemStore()
	gs := newTestGateService(ms)

	if err := gs.CheckEventJoin(context.Background(), 1, 2); !IsKind(err, KindNeverVisited) {
		t.Errorf("expected NEVER_VISITED with no history, got %v", err)
	}

	seedVisits(ms, 1, 2, 1)
	if err := gs.CheckEventJoin(context.Background(), 1, 2); err != nil {
		t.Errorf("one visit must be enough to join, got %v", err)
	}
}

func TestCheckReviewCreation(t *testing.T) {
	ms := newMemStore()
	gs := newTestGateService(ms)
	seedVisits(ms, 1, 2, 1)
	visitID := ms.visits[0].ID

	if _, err := gs.CheckReviewCreation(context.Background(), 999, 1); !IsKind(err, KindVisitNotFound) {
		t.Errorf("expected VISIT_NOT_FOUND, got %v", err)
	}
	if _, err := gs.CheckReviewCreation(context.Background(), visitID, 42); !IsKind(err, KindNotVisitOwner) {
		t.Errorf("expected NOT_VISIT_OWNER, got %v", err)
	}

	visit, err := gs.CheckReviewCreation(context.Background(), visitID, 1)
	if err != nil {
		t.Fatalf("expected pass for the owner, got %v", err)
	}
	if visit.ID != visitID {
		t.Errorf("expected visit %d back, got %d", visitID, visit.ID)
	}

	// After a review exists, the gate closes.
	rs := &ReviewService{reviews: ms, visits: ms, gate: gs, log: zap.NewNop()}
	if _, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Отличный лёд, рекомендую", Rating: 5}); err != nil {
		t.Fatalf("review create failed: %v", err)
	}
	if _, err := gs.CheckReviewCreation(context.Background(), visitID, 1); !IsKind(err, KindAlreadyReviewed) {
		t.Errorf("expected ALREADY_REVIEWED, got %v", err)
	}
}

func TestRinkEligibility(t *testing.T) {
	ms := newMemStore()
	gs := newTestGateService(ms)

	elig, err := gs.RinkEligibility(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elig.VisitCount != 0 || elig.CanCreateEvent || elig.CanJoinEvent || elig.RemainingForEvent != 5 {
		t.Errorf("unexpected empty-history eligibility: %+v", elig)
	}

	seedVisits(ms, 1, 2, 3)
	elig, _ = gs.RinkEligibility(context.Background(), 1, 2)
	if elig.VisitCount != 3 || elig.CanCreateEvent || !elig.CanJoinEvent || elig.RemainingForEvent != 2 {
		t.Errorf("unexpected mid-history eligibility: %+v", elig)
	}

	seedVisits(ms, 1, 2, 7)
	elig, _ = gs.RinkEligibility(context.Background(), 1, 2)
	if !elig.CanCreateEvent || elig.RemainingForEvent != 0 {
		t.Errorf("unexpected full-history eligibility: %+v", elig)
	}
}
