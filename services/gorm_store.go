package services

import (
	"context"
	"errors"
	"time"

	"github.com/rink-radar/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore implements every store interface over a single *gorm.DB handle.
type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) *gormStore {
	return &gormStore{db: db}
}

func (s *gormStore) GetRink(ctx context.Context, id uint) (*models.Rink, error) {
	var rink models.Rink
	err := s.db.WithContext(ctx).First(&rink, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rink, nil
}

// ensureVisit upserts the (user, rink, date) row on the given handle and
// returns its id. DoNothing on conflict plus a follow-up read keeps
// concurrent callers converging on the same row instead of racing two
// inserts.
func ensureVisit(db *gorm.DB, userID, rinkID uint, date time.Time) (uint, error) {
	visit := models.Visit{UserID: userID, RinkID: rinkID, VisitDate: date}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "rink_id"}, {Name: "visit_date"}},
		DoNothing: true,
	}).Create(&visit).Error
	if err != nil {
		return 0, err
	}
	if visit.ID != 0 {
		return visit.ID, nil
	}
	// Conflict path: the row already existed, fetch it.
	err = db.Where("user_id = ? AND rink_id = ? AND visit_date = ?", userID, rinkID, date).
		First(&visit).Error
	return visit.ID, err
}

func (s *gormStore) EnsureVisit(ctx context.Context, userID, rinkID uint, date time.Time) (uint, error) {
	return ensureVisit(s.db.WithContext(ctx), userID, rinkID, date)
}

func (s *gormStore) HasEverVisited(ctx context.Context, userID, rinkID uint) (bool, error) {
	count, err := s.CountVisits(ctx, userID, rinkID)
	return count > 0, err
}

func (s *gormStore) CountVisits(ctx context.Context, userID, rinkID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Visit{}).
		Where("user_id = ? AND rink_id = ?", userID, rinkID).
		Count(&count).Error
	return count, err
}

func (s *gormStore) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	var visit models.Visit
	err := s.db.WithContext(ctx).First(&visit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (s *gormStore) VisitsByUser(ctx context.Context, userID uint) ([]models.Visit, error) {
	var visits []models.Visit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Find(&visits).Error
	return visits, err
}

func (s *gormStore) LastCheckinTime(ctx context.Context, userID, rinkID uint, since time.Time) (*time.Time, error) {
	var checkin models.Checkin
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND rink_id = ? AND created_at > ?", userID, rinkID, since).
		Order("created_at DESC").
		First(&checkin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checkin.CreatedAt, nil
}

func (s *gormStore) CountFromIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Checkin{}).
		Where("ip_address = ? AND created_at > ?", ip, since).
		Count(&count).Error
	return count, err
}

func (s *gormStore) RecordCheckin(ctx context.Context, checkin *models.Checkin, visitDate time.Time, cooldown time.Duration) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		visitID, err := ensureVisit(tx, checkin.UserID, checkin.RinkID, visitDate)
		if err != nil {
			return err
		}

		// Lock the visit row so two concurrent submissions for the same
		// pair serialize here and the second one sees the first insert.
		var visit models.Visit
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&visit, visitID).Error; err != nil {
			return err
		}

		if cooldown > 0 {
			var last models.Checkin
			err := tx.Where("user_id = ? AND rink_id = ? AND created_at > ?",
				checkin.UserID, checkin.RinkID, time.Now().Add(-cooldown)).
				Order("created_at DESC").
				First(&last).Error
			if err == nil {
				remaining := cooldown - time.Since(last.CreatedAt)
				return errCooldownActive(int64(remaining.Seconds()))
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		checkin.VisitID = visitID
		return tx.Create(checkin).Error
	})
}

func (s *gormStore) RecentByRink(ctx context.Context, rinkID uint, since time.Time) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("rink_id = ? AND created_at > ?", rinkID, since).
		Order("created_at DESC").
		Find(&checkins).Error
	return checkins, err
}

func (s *gormStore) CurrentCount(ctx context.Context, rinkID uint, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Checkin{}).
		Where("rink_id = ? AND created_at > ?", rinkID, since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (s *gormStore) CheckinsByUser(ctx context.Context, userID uint, limit int) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}

func (s *gormStore) Append(ctx context.Context, entry *models.SuspiciousActivity) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *gormStore) GetReviewByVisit(ctx context.Context, visitID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).Where("visit_id = ?", visitID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *gormStore) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *gormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *gormStore) UpdateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Save(review).Error
}

func (s *gormStore) DeleteReview(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (s *gormStore) ReviewsByRink(ctx context.Context, rinkID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Joins("JOIN visits ON visits.id = reviews.visit_id").
		Where("visits.rink_id = ?", rinkID).
		Order("reviews.rating DESC, reviews.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (s *gormStore) AverageRating(ctx context.Context, rinkID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(reviews.rating), 0) AS avg, COUNT(*) AS count").
		Joins("JOIN visits ON visits.id = reviews.visit_id").
		Where("visits.rink_id = ?", rinkID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}

func (s *gormStore) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *gormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *gormStore) UpcomingByRink(ctx context.Context, rinkID uint, from time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("rink_id = ? AND status = ? AND event_date >= ?", rinkID, "active", from).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error
	return events, err
}

func (s *gormStore) ConfirmedCount(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.EventParticipant{}).
		Where("event_id = ? AND status = ?", eventID, models.ParticipantConfirmed).
		Count(&count).Error
	return count, err
}

func (s *gormStore) Participants(ctx context.Context, eventID uint) ([]models.EventParticipant, error) {
	var participants []models.EventParticipant
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, models.ParticipantConfirmed).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (s *gormStore) UpsertParticipant(ctx context.Context, eventID, userID uint) error {
	participant := models.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Status:  models.ParticipantConfirmed,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"status": models.ParticipantConfirmed}),
	}).Create(&participant).Error
}

func (s *gormStore) RemoveParticipant(ctx context.Context, eventID, userID uint) error {
	return s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventParticipant{}).Error
}
