package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
	"github.com/rink-radar/api-go/utils"
)

type VisitController struct {
	Visits *services.VisitLedger
}

func NewVisitController(visits *services.VisitLedger) *VisitController {
	return &VisitController{Visits: visits}
}

// GetMyVisits godoc
// @Summary Get the authenticated user's visit history
// @Tags visits
// @Produce json
// @Router /visits/my [get]
func (vc *VisitController) GetMyVisits(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	visits, err := vc.Visits.VisitsByUser(c.Request.Context(), user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    visits,
	})
}

// GetVisit godoc
// @Summary Get a single visit
// @Tags visits
// @Produce json
// @Param id path integer true "Visit ID"
// @Router /visits/{id} [get]
func (vc *VisitController) GetVisit(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	visitID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visit ID", "success": false})
		return
	}

	visit, err := vc.Visits.GetVisit(c.Request.Context(), uint(visitID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if visit.UserID != user.UserID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Нет прав на это посещение", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    visit,
	})
}
