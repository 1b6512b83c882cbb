package services

import (
	"context"
	"time"

	"github.com/rink-radar/api-go/models"
)

// The services are written against these narrow store interfaces so the
// storage dependency is injected at construction and swappable with an
// in-memory fake in tests. The gorm implementations live in gorm_store.go.

type RinkStore interface {
	// GetRink returns (nil, nil) when the rink does not exist.
	GetRink(ctx context.Context, id uint) (*models.Rink, error)
}

type VisitStore interface {
	// EnsureVisit returns the id of the (userID, rinkID, date) visit,
	// creating it if absent. Must be an atomic upsert, not read-then-write.
	EnsureVisit(ctx context.Context, userID, rinkID uint, date time.Time) (uint, error)
	HasEverVisited(ctx context.Context, userID, rinkID uint) (bool, error)
	CountVisits(ctx context.Context, userID, rinkID uint) (int64, error)
	// GetVisit returns (nil, nil) when the visit does not exist.
	GetVisit(ctx context.Context, id uint) (*models.Visit, error)
	VisitsByUser(ctx context.Context, userID uint) ([]models.Visit, error)
}

type CheckinStore interface {
	// LastCheckinTime returns the newest check-in timestamp for the pair
	// at or after since, or nil when there is none.
	LastCheckinTime(ctx context.Context, userID, rinkID uint, since time.Time) (*time.Time, error)
	CountFromIP(ctx context.Context, ip string, since time.Time) (int64, error)
	// RecordCheckin ensures the visit for visitDate and inserts the
	// check-in in one transaction, re-checking the cooldown under a row
	// lock on the visit as a backstop against double-tapped submissions.
	RecordCheckin(ctx context.Context, checkin *models.Checkin, visitDate time.Time, cooldown time.Duration) error
	RecentByRink(ctx context.Context, rinkID uint, since time.Time) ([]models.Checkin, error)
	// CurrentCount counts distinct users checked in at the rink since the
	// given time.
	CurrentCount(ctx context.Context, rinkID uint, since time.Time) (int64, error)
	CheckinsByUser(ctx context.Context, userID uint, limit int) ([]models.Checkin, error)
}

type AbuseStore interface {
	Append(ctx context.Context, entry *models.SuspiciousActivity) error
}

type ReviewStore interface {
	// GetReviewByVisit returns (nil, nil) when no review references the visit.
	GetReviewByVisit(ctx context.Context, visitID uint) (*models.Review, error)
	// GetReview returns (nil, nil) when the review does not exist.
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uint) error
	ReviewsByRink(ctx context.Context, rinkID uint, limit, offset int) ([]models.Review, error)
	AverageRating(ctx context.Context, rinkID uint) (float64, int64, error)
}

type EventStore interface {
	// GetEvent returns (nil, nil) when the event does not exist.
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	UpcomingByRink(ctx context.Context, rinkID uint, from time.Time) ([]models.Event, error)
	ConfirmedCount(ctx context.Context, eventID uint) (int64, error)
	Participants(ctx context.Context, eventID uint) ([]models.EventParticipant, error)
	// UpsertParticipant confirms the user on the event; re-joining after a
	// leave reuses the same row.
	UpsertParticipant(ctx context.Context, eventID, userID uint) error
	RemoveParticipant(ctx context.Context, eventID, userID uint) error
}
