package services

import (
	"context"
	"unicode/utf8"

	"github.com/rink-radar/api-go/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewService creates and manages rink reviews. One review per verified
// visit; ownership follows the visit, not the review row.
type ReviewService struct {
	reviews ReviewStore
	visits  VisitStore
	gate    *GateService
	log     *zap.Logger
}

func NewReviewService(db *gorm.DB, gate *GateService, logger *zap.Logger) *ReviewService {
	store := newGormStore(db)
	return &ReviewService{
		reviews: store,
		visits:  store,
		gate:    gate,
		log:     logger,
	}
}

type ReviewInput struct {
	Text         string
	Rating       int
	IceCondition *string
	CrowdLevel   *string
	PhotoURL     string
}

func validEnum(value *string, allowed []string) *string {
	if value == nil {
		return nil
	}
	for _, v := range allowed {
		if *value == v {
			return value
		}
	}
	return nil
}

func validateReviewInput(input ReviewInput) error {
	if utf8.RuneCountInString(input.Text) < 10 {
		return errInvalidReview("Текст отзыва должен содержать минимум 10 символов")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return errInvalidReview("Рейтинг должен быть от 1 до 5")
	}
	return nil
}

func (rs *ReviewService) CreateReview(ctx context.Context, visitID, userID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	if _, err := rs.gate.CheckReviewCreation(ctx, visitID, userID); err != nil {
		return nil, err
	}

	review := &models.Review{
		VisitID:      visitID,
		Text:         input.Text,
		Rating:       input.Rating,
		IceCondition: validEnum(input.IceCondition, models.IceConditions),
		CrowdLevel:   validEnum(input.CrowdLevel, models.CrowdLevels),
		PhotoURL:     input.PhotoURL,
	}
	if err := rs.reviews.CreateReview(ctx, review); err != nil {
		// A concurrent create may have won the unique index on visit_id;
		// re-read to tell that apart from a real fault.
		if existing, lookupErr := rs.reviews.GetReviewByVisit(ctx, visitID); lookupErr == nil && existing != nil {
			return nil, errAlreadyReviewed()
		}
		rs.log.Error("review create failed", zap.Uint("visit_id", visitID), zap.Error(err))
		return nil, errStorage()
	}

	rs.log.Info("review created",
		zap.Uint("review_id", review.ID), zap.Uint("visit_id", visitID), zap.Uint("user_id", userID))
	return review, nil
}

type RinkReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Count         int64           `json:"count"`
}

func (rs *ReviewService) ReviewsByRink(ctx context.Context, rinkID uint, limit, offset int) (*RinkReviews, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	reviews, err := rs.reviews.ReviewsByRink(ctx, rinkID, limit, offset)
	if err != nil {
		rs.log.Error("review list failed", zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}
	avg, count, err := rs.reviews.AverageRating(ctx, rinkID)
	if err != nil {
		rs.log.Error("rating aggregate failed", zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}

	return &RinkReviews{Reviews: reviews, AverageRating: avg, Count: count}, nil
}

// ownedReview fetches the review and resolves whether userID owns it
// through the visit.
func (rs *ReviewService) ownedReview(ctx context.Context, reviewID, userID uint) (*models.Review, bool, error) {
	review, err := rs.reviews.GetReview(ctx, reviewID)
	if err != nil {
		rs.log.Error("review fetch failed", zap.Uint("review_id", reviewID), zap.Error(err))
		return nil, false, errStorage()
	}
	if review == nil {
		return nil, false, errReviewNotFound()
	}

	visit, err := rs.visits.GetVisit(ctx, review.VisitID)
	if err != nil {
		rs.log.Error("visit fetch failed", zap.Uint("visit_id", review.VisitID), zap.Error(err))
		return nil, false, errStorage()
	}
	return review, visit != nil && visit.UserID == userID, nil
}

func (rs *ReviewService) UpdateReview(ctx context.Context, reviewID, userID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review, owned, err := rs.ownedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errNotVisitOwner()
	}

	review.Text = input.Text
	review.Rating = input.Rating
	review.IceCondition = validEnum(input.IceCondition, models.IceConditions)
	review.CrowdLevel = validEnum(input.CrowdLevel, models.CrowdLevels)
	if input.PhotoURL != "" {
		review.PhotoURL = input.PhotoURL
	}

	if err := rs.reviews.UpdateReview(ctx, review); err != nil {
		rs.log.Error("review update failed", zap.Uint("review_id", reviewID), zap.Error(err))
		return nil, errStorage()
	}
	return review, nil
}

func (rs *ReviewService) DeleteReview(ctx context.Context, reviewID, userID uint, isAdmin bool) error {
	review, owned, err := rs.ownedReview(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if !owned && !isAdmin {
		return errNotVisitOwner()
	}

	if err := rs.reviews.DeleteReview(ctx, review.ID); err != nil {
		rs.log.Error("review delete failed", zap.Uint("review_id", reviewID), zap.Error(err))
		return errStorage()
	}
	return nil
}
