package services

import (
	"context"
	"testing"
	"time"

	"github.com/rink-radar/api-go/models"
	"go.uber.org/zap"
)

func newTestReviewService(ms *memStore) *ReviewService {
	return &ReviewService{
		reviews: ms,
		visits:  ms,
		gate:    newTestGateService(ms),
		log:     zap.NewNop(),
	}
}

func strPtr(v string) *string { return &v }

func seedOneVisit(ms *memStore, userID, rinkID uint) uint {
	ms.seedVisit(userID, rinkID, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	return ms.visits[len(ms.visits)-1].ID
}

func TestCreateReviewValidation(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)
	visitID := seedOneVisit(ms, 1, 2)

	if _, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "коротко", Rating: 4}); !IsKind(err, KindInvalidReview) {
		t.Errorf("expected INVALID_REVIEW for short text, got %v", err)
	}
	if _, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Хороший лёд, музыка играет", Rating: 6}); !IsKind(err, KindInvalidReview) {
		t.Errorf("expected INVALID_REVIEW for rating 6, got %v", err)
	}
	if _, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Хороший лёд, музыка играет", Rating: 0}); !IsKind(err, KindInvalidReview) {
		t.Errorf("expected INVALID_REVIEW for rating 0, got %v", err)
	}
}

func TestCreateReviewOncePerVisit(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)
	visitID := seedOneVisit(ms, 1, 2)
	input := ReviewInput{Text: "Отличный лёд, просторно", Rating: 5}

	review, err := rs.CreateReview(context.Background(), visitID, 1, input)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if review.ID == 0 {
		t.Error("expected an id on the created review")
	}

	if _, err := rs.CreateReview(context.Background(), visitID, 1, input); !IsKind(err, KindAlreadyReviewed) {
		t.Errorf("expected ALREADY_REVIEWED on the second attempt, got %v", err)
	}
}

func TestCreateReviewLosingRaceMapsToAlreadyReviewed(t *testing.T) {
	// Simulate a concurrent writer landing between the gate check and the
	// insert: the gate reads a store where the review is not visible yet,
	// while the insert hits the unique index. The failure must come back
	// as the domain error, not a storage fault.
	ms := newMemStore()
	gateView := newMemStore()
	rs := &ReviewService{
		reviews: ms,
		visits:  ms,
		gate:    &GateService{visits: ms, reviews: gateView, required: 5, log: zap.NewNop()},
		log:     zap.NewNop(),
	}
	visitID := seedOneVisit(ms, 1, 2)
	if err := ms.CreateReview(context.Background(), &models.Review{VisitID: visitID, Text: "Сосед успел первым, десять букв", Rating: 4}); err != nil {
		t.Fatalf("seed review: %v", err)
	}

	_, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Отличный лёд, просторно", Rating: 5})
	if !IsKind(err, KindAlreadyReviewed) {
		t.Errorf("expected ALREADY_REVIEWED, got %v", err)
	}
}

func TestCreateReviewEnumCoercion(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)
	visitID := seedOneVisit(ms, 1, 2)

	review, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{
		Text:         "Лёд залит хорошо, народу немного",
		Rating:       4,
		IceCondition: strPtr("excellent"),
		CrowdLevel:   strPtr("apocalyptic"), // not a valid level
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.IceCondition == nil || *review.IceCondition != "excellent" {
		t.Errorf("valid enum must be kept, got %v", review.IceCondition)
	}
	if review.CrowdLevel != nil {
		t.Errorf("invalid enum must be dropped, got %v", *review.CrowdLevel)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)
	visitID := seedOneVisit(ms, 1, 2)
	review, err := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Отличный лёд, просторно", Rating: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := rs.UpdateReview(context.Background(), review.ID, 42, ReviewInput{Text: "Перезаписанный текст отзыва", Rating: 1}); !IsKind(err, KindNotVisitOwner) {
		t.Errorf("expected NOT_VISIT_OWNER, got %v", err)
	}

	updated, err := rs.UpdateReview(context.Background(), review.ID, 1, ReviewInput{Text: "Перезаписанный текст отзыва", Rating: 3})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Rating != 3 {
		t.Errorf("expected rating 3, got %d", updated.Rating)
	}
}

func TestDeleteReviewOwnershipAndAdmin(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)
	visitID := seedOneVisit(ms, 1, 2)
	review, _ := rs.CreateReview(context.Background(), visitID, 1, ReviewInput{Text: "Отличный лёд, просторно", Rating: 5})

	if err := rs.DeleteReview(context.Background(), review.ID, 42, false); !IsKind(err, KindNotVisitOwner) {
		t.Errorf("expected NOT_VISIT_OWNER, got %v", err)
	}
	if err := rs.DeleteReview(context.Background(), review.ID, 42, true); err != nil {
		t.Errorf("admin delete must pass, got %v", err)
	}
	if err := rs.DeleteReview(context.Background(), review.ID, 1, false); !IsKind(err, KindReviewNotFound) {
		t.Errorf("expected REVIEW_NOT_FOUND after delete, got %v", err)
	}
}

func TestReviewsByRinkAggregates(t *testing.T) {
	ms := newMemStore()
	rs := newTestReviewService(ms)

	v1 := seedOneVisit(ms, 1, 2)
	v2 := seedOneVisit(ms, 3, 2)
	if _, err := rs.CreateReview(context.Background(), v1, 1, ReviewInput{Text: "Отличный лёд, просторно", Rating: 5}); err != nil {
		t.Fatalf("review 1: %v", err)
	}
	if _, err := rs.CreateReview(context.Background(), v2, 3, ReviewInput{Text: "Лёд так себе, но музыка ок", Rating: 3}); err != nil {
		t.Fatalf("review 2: %v", err)
	}

	out, err := rs.ReviewsByRink(context.Background(), 2, 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Count != 2 || len(out.Reviews) != 2 {
		t.Errorf("expected 2 reviews, got %+v", out)
	}
	if out.AverageRating != 4 {
		t.Errorf("expected average 4, got %f", out.AverageRating)
	}
}
