package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
	"github.com/rink-radar/api-go/utils"
)

type CheckinController struct {
	Checkins *services.CheckinService
}

func NewCheckinController(checkins *services.CheckinService) *CheckinController {
	return &CheckinController{Checkins: checkins}
}

type CheckinRequest struct {
	RinkID    uint    `json:"rink_id" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// SubmitCheckin godoc
// @Summary Verify the user's presence at a rink and record a check-in
// @Tags checkins
// @Accept json
// @Produce json
// @Param request body CheckinRequest true "Rink and device coordinates"
// @Success 201 {object} services.CheckinResult
// @Router /checkins [post]
func (cc *CheckinController) SubmitCheckin(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input CheckinRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	result, err := cc.Checkins.SubmitCheckin(
		c.Request.Context(), user.UserID, input.RinkID,
		input.Latitude, input.Longitude, c.ClientIP(),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Вы отметились на катке",
		"checkin":  result,
		"distance": utils.FormatDistance(result.Distance),
	})
}

// GetMyCheckins godoc
// @Summary Get the authenticated user's recent check-ins
// @Tags checkins
// @Produce json
// @Param limit query integer false "Maximum number of check-ins to return"
// @Router /checkins/my [get]
func (cc *CheckinController) GetMyCheckins(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	checkins, err := cc.Checkins.UserCheckins(c.Request.Context(), user.UserID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    checkins,
	})
}
