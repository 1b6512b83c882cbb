package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rink-radar/api-go/config"
	"github.com/rink-radar/api-go/models"
	"github.com/rink-radar/api-go/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckinService verifies presence claims. Every check runs before any
// write: a claim rejected for distance or cooldown must not leave a visit
// behind, because visits are the currency that unlocks events and reviews.
type CheckinService struct {
	rinks    RinkStore
	checkins CheckinStore
	abuse    AbuseStore
	cfg      config.CheckinConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewCheckinService(db *gorm.DB, cfg config.CheckinConfig, logger *zap.Logger) *CheckinService {
	store := newGormStore(db)
	return &CheckinService{
		rinks:    store,
		checkins: store,
		abuse:    store,
		cfg:      cfg,
		log:      logger,
		now:      time.Now,
	}
}

type CheckinResult struct {
	CheckinID uint    `json:"checkin_id"`
	VisitID   uint    `json:"visit_id"`
	Distance  float64 `json:"distance"`
}

// SubmitCheckin runs the full verification pipeline for one presence claim:
// rink lookup, cooldown, geofence, abuse heuristic, then the visit upsert
// and check-in insert as one transaction.
func (cs *CheckinService) SubmitCheckin(ctx context.Context, userID, rinkID uint, lat, lon float64, ip string) (*CheckinResult, error) {
	if cs.cfg.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cs.cfg.SubmitTimeout)
		defer cancel()
	}

	rink, err := cs.rinks.GetRink(ctx, rinkID)
	if err != nil {
		return nil, cs.fault("rink lookup", err)
	}
	if rink == nil {
		return nil, errRinkNotFound()
	}
	if !rink.HasCoordinates() {
		return nil, errRinkNoCoordinates()
	}

	now := cs.now()

	// Cooldown: any successful check-in inside the sliding window blocks a
	// new one, regardless of wall-clock alignment.
	last, err := cs.checkins.LastCheckinTime(ctx, userID, rinkID, now.Add(-cs.cfg.Cooldown))
	if err != nil {
		return nil, cs.fault("cooldown lookup", err)
	}
	if last != nil {
		remaining := cs.cfg.Cooldown - now.Sub(*last)
		if remaining < 0 {
			remaining = 0
		}
		return nil, errCooldownActive(int64(remaining.Seconds()))
	}

	distance := utils.HaversineDistance(lat, lon, *rink.Latitude, *rink.Longitude)
	if distance > cs.cfg.MaxDistanceMeters {
		cs.log.Info("checkin rejected by geofence",
			zap.Uint("user_id", userID),
			zap.Uint("rink_id", rinkID),
			zap.Float64("distance", distance))
		return nil, errTooFarAway(distance, cs.cfg.MaxDistanceMeters)
	}

	// Abuse heuristic: monitoring only, never a gate. IPs are shared by
	// NAT and mobile carriers, so a spike is logged for review instead of
	// rejected.
	if ip != "" {
		cs.flagSuspiciousVolume(ctx, userID, ip, now)
	}

	checkin := &models.Checkin{
		UserID:    userID,
		RinkID:    rinkID,
		Latitude:  lat,
		Longitude: lon,
		Distance:  math.Round(distance*100) / 100,
		IPAddress: ip,
	}
	if err := cs.checkins.RecordCheckin(ctx, checkin, DateOnly(now), cs.cfg.Cooldown); err != nil {
		var de *Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, cs.fault("record checkin", err)
	}

	cs.log.Info("checkin recorded",
		zap.Uint("user_id", userID),
		zap.Uint("rink_id", rinkID),
		zap.Uint("checkin_id", checkin.ID),
		zap.Float64("distance", checkin.Distance))

	return &CheckinResult{
		CheckinID: checkin.ID,
		VisitID:   checkin.VisitID,
		Distance:  checkin.Distance,
	}, nil
}

// flagSuspiciousVolume appends an abuse-log entry when the source address
// exceeds the daily check-in threshold. Failures here are swallowed: the
// log is a side channel and must never fail the user-facing check-in.
func (cs *CheckinService) flagSuspiciousVolume(ctx context.Context, userID uint, ip string, now time.Time) {
	count, err := cs.checkins.CountFromIP(ctx, ip, now.Add(-cs.cfg.SuspiciousWindow))
	if err != nil {
		cs.log.Warn("abuse counter unavailable", zap.String("ip", ip), zap.Error(err))
		return
	}
	if count < cs.cfg.SuspiciousPerIP {
		return
	}
	entry := &models.SuspiciousActivity{
		UserID:       &userID,
		IPAddress:    ip,
		ActivityType: "checkin",
		Details:      fmt.Sprintf("Множественные отметки с одного IP: %d за 24 часа", count),
	}
	if err := cs.abuse.Append(ctx, entry); err != nil {
		cs.log.Warn("abuse log write failed", zap.String("ip", ip), zap.Error(err))
	}
}

// CurrentCount reports how many distinct users checked in at the rink in
// the last hour.
func (cs *CheckinService) CurrentCount(ctx context.Context, rinkID uint) (int64, error) {
	count, err := cs.checkins.CurrentCount(ctx, rinkID, cs.now().Add(-time.Hour))
	if err != nil {
		return 0, cs.fault("current count", err)
	}
	return count, nil
}

// RinkCheckins returns the rink's check-ins over the trailing window.
func (cs *CheckinService) RinkCheckins(ctx context.Context, rinkID uint, hours int) ([]models.Checkin, error) {
	if hours <= 0 {
		hours = 24
	}
	checkins, err := cs.checkins.RecentByRink(ctx, rinkID, cs.now().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		return nil, cs.fault("rink checkins", err)
	}
	return checkins, nil
}

func (cs *CheckinService) UserCheckins(ctx context.Context, userID uint, limit int) ([]models.Checkin, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	checkins, err := cs.checkins.CheckinsByUser(ctx, userID, limit)
	if err != nil {
		return nil, cs.fault("user checkins", err)
	}
	return checkins, nil
}

// fault logs the real cause and converts it into the opaque error the
// caller is allowed to see. Deadline overruns surface as a retryable
// timeout instead.
func (cs *CheckinService) fault(op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		cs.log.Warn("checkin pipeline timed out", zap.String("op", op), zap.Error(err))
		return errVerificationTimeout()
	}
	cs.log.Error("checkin storage fault", zap.String("op", op), zap.Error(err))
	return errStorage()
}
