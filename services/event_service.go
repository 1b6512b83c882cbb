package services

import (
	"context"
	"time"

	"github.com/rink-radar/api-go/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventService handles group skate events. Creation and joining both
// consult the engagement gate; leaving is always allowed.
type EventService struct {
	events EventStore
	rinks  RinkStore
	gate   *GateService
	log    *zap.Logger
}

func NewEventService(db *gorm.DB, gate *GateService, logger *zap.Logger) *EventService {
	store := newGormStore(db)
	return &EventService{
		events: store,
		rinks:  store,
		gate:   gate,
		log:    logger,
	}
}

type CreateEventInput struct {
	Title           string
	Description     string
	EventDate       time.Time
	EventTime       *string
	MaxParticipants *int
}

func (es *EventService) CreateEvent(ctx context.Context, userID, rinkID uint, input CreateEventInput) (*models.Event, error) {
	rink, err := es.rinks.GetRink(ctx, rinkID)
	if err != nil {
		es.log.Error("rink lookup failed", zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}
	if rink == nil {
		return nil, errRinkNotFound()
	}

	if err := es.gate.CheckEventCreation(ctx, userID, rinkID); err != nil {
		return nil, err
	}

	event := &models.Event{
		RinkID:          rinkID,
		CreatedBy:       userID,
		Title:           input.Title,
		Description:     input.Description,
		EventDate:       DateOnly(input.EventDate),
		EventTime:       input.EventTime,
		MaxParticipants: input.MaxParticipants,
		Status:          "active",
	}
	if err := es.events.CreateEvent(ctx, event); err != nil {
		es.log.Error("event create failed", zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}

	// The organizer joins their own event automatically.
	if err := es.events.UpsertParticipant(ctx, event.ID, userID); err != nil {
		es.log.Warn("organizer auto-join failed", zap.Uint("event_id", event.ID), zap.Error(err))
	}

	es.log.Info("event created",
		zap.Uint("event_id", event.ID), zap.Uint("rink_id", rinkID), zap.Uint("user_id", userID))
	return event, nil
}

type EventDetails struct {
	Event             *models.Event             `json:"event"`
	Participants      []models.EventParticipant `json:"participants"`
	ParticipantsCount int                       `json:"participants_count"`
}

func (es *EventService) GetEvent(ctx context.Context, id uint) (*EventDetails, error) {
	event, err := es.events.GetEvent(ctx, id)
	if err != nil {
		es.log.Error("event fetch failed", zap.Uint("event_id", id), zap.Error(err))
		return nil, errStorage()
	}
	if event == nil {
		return nil, errEventNotFound()
	}

	participants, err := es.events.Participants(ctx, id)
	if err != nil {
		es.log.Error("participant fetch failed", zap.Uint("event_id", id), zap.Error(err))
		return nil, errStorage()
	}

	return &EventDetails{
		Event:             event,
		Participants:      participants,
		ParticipantsCount: len(participants),
	}, nil
}

func (es *EventService) RinkEvents(ctx context.Context, rinkID uint) ([]models.Event, error) {
	events, err := es.events.UpcomingByRink(ctx, rinkID, DateOnly(time.Now()))
	if err != nil {
		es.log.Error("event list failed", zap.Uint("rink_id", rinkID), zap.Error(err))
		return nil, errStorage()
	}
	return events, nil
}

// Join confirms the user as a participant. Requires presence history at the
// event's rink and a free slot when the event declares a capacity.
// Re-joining after a leave re-runs the same checks.
func (es *EventService) Join(ctx context.Context, eventID, userID uint) error {
	event, err := es.events.GetEvent(ctx, eventID)
	if err != nil {
		es.log.Error("event fetch failed", zap.Uint("event_id", eventID), zap.Error(err))
		return errStorage()
	}
	if event == nil {
		return errEventNotFound()
	}

	if err := es.gate.CheckEventJoin(ctx, userID, event.RinkID); err != nil {
		return err
	}

	if event.MaxParticipants != nil {
		count, err := es.events.ConfirmedCount(ctx, eventID)
		if err != nil {
			es.log.Error("participant count failed", zap.Uint("event_id", eventID), zap.Error(err))
			return errStorage()
		}
		if count >= int64(*event.MaxParticipants) {
			return errEventFull()
		}
	}

	if err := es.events.UpsertParticipant(ctx, eventID, userID); err != nil {
		es.log.Error("event join failed",
			zap.Uint("event_id", eventID), zap.Uint("user_id", userID), zap.Error(err))
		return errStorage()
	}
	return nil
}

func (es *EventService) Leave(ctx context.Context, eventID, userID uint) error {
	event, err := es.events.GetEvent(ctx, eventID)
	if err != nil {
		es.log.Error("event fetch failed", zap.Uint("event_id", eventID), zap.Error(err))
		return errStorage()
	}
	if event == nil {
		return errEventNotFound()
	}

	if err := es.events.RemoveParticipant(ctx, eventID, userID); err != nil {
		es.log.Error("event leave failed",
			zap.Uint("event_id", eventID), zap.Uint("user_id", userID), zap.Error(err))
		return errStorage()
	}
	return nil
}
