package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/rink-radar/api-go/utils"
)

// ErrorKind distinguishes recoverable domain rejections from real faults.
// Callers branch on the kind, never on message text.
type ErrorKind string

const (
	KindRinkNotFound         ErrorKind = "RINK_NOT_FOUND"
	KindRinkNoCoordinates    ErrorKind = "RINK_NO_COORDINATES"
	KindCooldownActive       ErrorKind = "COOLDOWN_ACTIVE"
	KindTooFarAway           ErrorKind = "TOO_FAR_AWAY"
	KindVisitNotFound        ErrorKind = "VISIT_NOT_FOUND"
	KindNotVisitOwner        ErrorKind = "NOT_VISIT_OWNER"
	KindAlreadyReviewed      ErrorKind = "ALREADY_REVIEWED"
	KindInvalidReview        ErrorKind = "INVALID_REVIEW"
	KindReviewNotFound       ErrorKind = "REVIEW_NOT_FOUND"
	KindEventNotFound        ErrorKind = "EVENT_NOT_FOUND"
	KindEventFull            ErrorKind = "EVENT_FULL"
	KindNeverVisited         ErrorKind = "NEVER_VISITED"
	KindNotEnoughVisits      ErrorKind = "NOT_ENOUGH_VISITS"
	KindVerificationTimeout  ErrorKind = "VERIFICATION_TIMEOUT"
	KindStorage              ErrorKind = "STORAGE_FAILURE"
)

// Error is a kind-tagged domain error. Details carries the numeric values
// (distance, thresholds, remaining counts) a client needs to render precise
// feedback without parsing the message.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// KindOf extracts the domain kind, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func errRinkNotFound() *Error {
	return &Error{Kind: KindRinkNotFound, Message: "Каток не найден"}
}

func errRinkNoCoordinates() *Error {
	return &Error{Kind: KindRinkNoCoordinates, Message: "Координаты катка не указаны"}
}

func errCooldownActive(retryAfterSeconds int64) *Error {
	minutes := (retryAfterSeconds + 59) / 60
	return &Error{
		Kind: KindCooldownActive,
		Message: fmt.Sprintf(
			"Вы уже отметили присутствие на этом катке недавно. Подождите %d мин.", minutes),
		Details: map[string]interface{}{
			"retryAfterSeconds": retryAfterSeconds,
		},
	}
}

func errTooFarAway(distance, maxDistance float64) *Error {
	return &Error{
		Kind: KindTooFarAway,
		Message: fmt.Sprintf(
			"Вы находитесь слишком далеко от катка. Расстояние: %s (максимум %s). "+
				"Убедитесь, что GPS включен и вы находитесь на катке.",
			utils.FormatDistance(distance), utils.FormatDistance(maxDistance)),
		Details: map[string]interface{}{
			"distance":    math.Round(distance*100) / 100,
			"maxDistance": maxDistance,
		},
	}
}

func errVisitNotFound() *Error {
	return &Error{Kind: KindVisitNotFound, Message: "Посещение не найдено"}
}

func errNotVisitOwner() *Error {
	return &Error{Kind: KindNotVisitOwner, Message: "Нет прав на это посещение"}
}

func errAlreadyReviewed() *Error {
	return &Error{Kind: KindAlreadyReviewed, Message: "Отзыв на это посещение уже оставлен"}
}

func errInvalidReview(msg string) *Error {
	return &Error{Kind: KindInvalidReview, Message: msg}
}

func errReviewNotFound() *Error {
	return &Error{Kind: KindReviewNotFound, Message: "Отзыв не найден"}
}

func errEventNotFound() *Error {
	return &Error{Kind: KindEventNotFound, Message: "Мероприятие не найдено"}
}

func errEventFull() *Error {
	return &Error{Kind: KindEventFull, Message: "Мероприятие уже заполнено"}
}

func errNeverVisited() *Error {
	return &Error{
		Kind:    KindNeverVisited,
		Message: "Вы должны сначала посетить этот каток, чтобы присоединиться к мероприятию",
	}
}

func errNotEnoughVisits(required, current int64) *Error {
	remaining := required - current
	return &Error{
		Kind: KindNotEnoughVisits,
		Message: fmt.Sprintf(
			"Для создания мероприятия нужно отметиться на катке минимум %d раз. Осталось: %d",
			required, remaining),
		Details: map[string]interface{}{
			"requiredVisits":  required,
			"currentVisits":   current,
			"remainingVisits": remaining,
		},
	}
}

func errVerificationTimeout() *Error {
	return &Error{Kind: KindVerificationTimeout, Message: "Проверка заняла слишком много времени, попробуйте ещё раз"}
}

// errStorage hides the underlying fault from the caller; the cause is only
// ever logged server-side.
func errStorage() *Error {
	return &Error{Kind: KindStorage, Message: "Внутренняя ошибка, попробуйте позже"}
}
