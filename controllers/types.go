package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// statusForKind maps domain rejections onto HTTP statuses. Anything the
// service layer did not classify is treated as an internal fault.
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindRinkNotFound, services.KindVisitNotFound,
		services.KindReviewNotFound, services.KindEventNotFound:
		return http.StatusNotFound
	case services.KindNotVisitOwner, services.KindNeverVisited,
		services.KindNotEnoughVisits:
		return http.StatusForbidden
	case services.KindAlreadyReviewed, services.KindEventFull:
		return http.StatusConflict
	case services.KindCooldownActive, services.KindTooFarAway,
		services.KindRinkNoCoordinates, services.KindInvalidReview:
		return http.StatusBadRequest
	case services.KindVerificationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes a domain error as JSON with the matching status.
func respondServiceError(c *gin.Context, err error) {
	var de *services.Error
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "success": false})
		return
	}

	body := gin.H{
		"error":   de.Message,
		"code":    string(de.Kind),
		"success": false,
	}
	for k, v := range de.Details {
		body[k] = v
	}

	c.JSON(statusForKind(de.Kind), body)
}
