package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rink-radar/api-go/models"
)

// memStore is the in-memory stand-in for the gorm store, used by the
// service tests.
type memStore struct {
	mu sync.Mutex

	rinks map[uint]*models.Rink

	visits      []*models.Visit
	nextVisitID uint

	checkins      []*models.Checkin
	nextCheckinID uint

	abuse     []*models.SuspiciousActivity
	abuseErr  error
	createErr error

	reviews      []*models.Review
	nextReviewID uint

	events       map[uint]*models.Event
	nextEventID  uint
	participants []*models.EventParticipant
	nextPartID   uint
}

func newMemStore() *memStore {
	return &memStore{
		rinks:  make(map[uint]*models.Rink),
		events: make(map[uint]*models.Event),
	}
}

func (m *memStore) addRink(id uint, lat, lon *float64) *models.Rink {
	m.mu.Lock()
	defer m.mu.Unlock()
	rink := &models.Rink{ID: id, Name: "Каток", Latitude: lat, Longitude: lon}
	m.rinks[id] = rink
	return rink
}

func (m *memStore) GetRink(ctx context.Context, id uint) (*models.Rink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rinks[id], nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (m *memStore) ensureVisitLocked(userID, rinkID uint, date time.Time) uint {
	for _, v := range m.visits {
		if v.UserID == userID && v.RinkID == rinkID && sameDay(v.VisitDate, date) {
			return v.ID
		}
	}
	m.nextVisitID++
	m.visits = append(m.visits, &models.Visit{
		ID:        m.nextVisitID,
		UserID:    userID,
		RinkID:    rinkID,
		VisitDate: DateOnly(date),
	})
	return m.nextVisitID
}

func (m *memStore) EnsureVisit(ctx context.Context, userID, rinkID uint, date time.Time) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureVisitLocked(userID, rinkID, date), nil
}

func (m *memStore) HasEverVisited(ctx context.Context, userID, rinkID uint) (bool, error) {
	count, _ := m.CountVisits(ctx, userID, rinkID)
	return count > 0, nil
}

func (m *memStore) CountVisits(ctx context.Context, userID, rinkID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, v := range m.visits {
		if v.UserID == userID && v.RinkID == rinkID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.visits {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (m *memStore) VisitsByUser(ctx context.Context, userID uint) ([]models.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Visit
	for _, v := range m.visits {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *memStore) seedVisit(userID, rinkID uint, date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureVisitLocked(userID, rinkID, date)
}

func (m *memStore) LastCheckinTime(ctx context.Context, userID, rinkID uint, since time.Time) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	for _, c := range m.checkins {
		if c.UserID == userID && c.RinkID == rinkID && c.CreatedAt.After(since) {
			if latest == nil || c.CreatedAt.After(*latest) {
				t := c.CreatedAt
				latest = &t
			}
		}
	}
	return latest, nil
}

func (m *memStore) CountFromIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, c := range m.checkins {
		if c.IPAddress == ip && c.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) RecordCheckin(ctx context.Context, checkin *models.Checkin, visitDate time.Time, cooldown time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	checkin.VisitID = m.ensureVisitLocked(checkin.UserID, checkin.RinkID, visitDate)
	m.nextCheckinID++
	checkin.ID = m.nextCheckinID
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = visitDate
	}
	stored := *checkin
	m.checkins = append(m.checkins, &stored)
	return nil
}

func (m *memStore) seedCheckin(userID, rinkID uint, ip string, at time.Time) {
	c := &models.Checkin{UserID: userID, RinkID: rinkID, IPAddress: ip, CreatedAt: at}
	_ = m.RecordCheckin(context.Background(), c, at, 0)
}

func (m *memStore) RecentByRink(ctx context.Context, rinkID uint, since time.Time) ([]models.Checkin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Checkin
	for _, c := range m.checkins {
		if c.RinkID == rinkID && c.CreatedAt.After(since) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) CurrentCount(ctx context.Context, rinkID uint, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[uint]struct{})
	for _, c := range m.checkins {
		if c.RinkID == rinkID && c.CreatedAt.After(since) {
			seen[c.UserID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (m *memStore) CheckinsByUser(ctx context.Context, userID uint, limit int) ([]models.Checkin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Checkin
	for _, c := range m.checkins {
		if c.UserID == userID {
			out = append(out, *c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) Append(ctx context.Context, entry *models.SuspiciousActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.abuseErr != nil {
		return m.abuseErr
	}
	m.abuse = append(m.abuse, entry)
	return nil
}

func (m *memStore) GetReviewByVisit(ctx context.Context, visitID uint) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.VisitID == visitID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateReview(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.VisitID == review.VisitID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	m.nextReviewID++
	review.ID = m.nextReviewID
	stored := *review
	m.reviews = append(m.reviews, &stored)
	return nil
}

func (m *memStore) UpdateReview(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == review.ID {
			stored := *review
			m.reviews[i] = &stored
			return nil
		}
	}
	return errors.New("review not found")
}

func (m *memStore) DeleteReview(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) ReviewsByRink(ctx context.Context, rinkID uint, limit, offset int) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Review
	for _, r := range m.reviews {
		for _, v := range m.visits {
			if v.ID == r.VisitID && v.RinkID == rinkID {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}

func (m *memStore) AverageRating(ctx context.Context, rinkID uint) (float64, int64, error) {
	reviews, _ := m.ReviewsByRink(ctx, rinkID, 0, 0)
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), int64(len(reviews)), nil
}

func (m *memStore) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[id], nil
}

func (m *memStore) CreateEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEventID++
	event.ID = m.nextEventID
	m.events[event.ID] = event
	return nil
}

func (m *memStore) UpcomingByRink(ctx context.Context, rinkID uint, from time.Time) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if e.RinkID == rinkID && e.Status == "active" && !e.EventDate.Before(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStore) ConfirmedCount(ctx context.Context, eventID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, p := range m.participants {
		if p.EventID == eventID && p.Status == models.ParticipantConfirmed {
			count++
		}
	}
	return count, nil
}

func (m *memStore) Participants(ctx context.Context, eventID uint) ([]models.EventParticipant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.EventParticipant
	for _, p := range m.participants {
		if p.EventID == eventID && p.Status == models.ParticipantConfirmed {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memStore) UpsertParticipant(ctx context.Context, eventID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants {
		if p.EventID == eventID && p.UserID == userID {
			p.Status = models.ParticipantConfirmed
			return nil
		}
	}
	m.nextPartID++
	m.participants = append(m.participants, &models.EventParticipant{
		ID:      m.nextPartID,
		EventID: eventID,
		UserID:  userID,
		Status:  models.ParticipantConfirmed,
	})
	return nil
}

func (m *memStore) RemoveParticipant(ctx context.Context, eventID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.participants {
		if p.EventID == eventID && p.UserID == userID {
			m.participants = append(m.participants[:i], m.participants[i+1:]...)
			return nil
		}
	}
	return nil
}
