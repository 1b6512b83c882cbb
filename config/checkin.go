package config

import (
	"os"
	"strconv"
	"time"
)

// CheckinConfig carries the anti-abuse thresholds for presence verification.
// Defaults match the production values: an hour between check-ins on the
// same rink, a 1 km geofence (generous, consumer GPS drifts), and 10
// check-ins per IP per day before the abuse log fires.
type CheckinConfig struct {
	Cooldown            time.Duration
	MaxDistanceMeters   float64
	SuspiciousPerIP     int64
	SuspiciousWindow    time.Duration
	SubmitTimeout       time.Duration
	EventMinVisits      int64
}

func LoadCheckinConfig() CheckinConfig {
	return CheckinConfig{
		Cooldown:          time.Duration(envInt("CHECKIN_COOLDOWN_SECONDS", 3600)) * time.Second,
		MaxDistanceMeters: float64(envInt("CHECKIN_MAX_DISTANCE", 1000)),
		SuspiciousPerIP:   envInt("SUSPICIOUS_CHECKINS_PER_IP", 10),
		SuspiciousWindow:  24 * time.Hour,
		SubmitTimeout:     time.Duration(envInt("CHECKIN_TIMEOUT_SECONDS", 5)) * time.Second,
		EventMinVisits:    envInt("EVENT_MIN_VISITS", 5),
	}
}

func envInt(key string, fallback int64) int64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}
