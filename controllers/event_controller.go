package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
	"github.com/rink-radar/api-go/utils"
)

type EventController struct {
	Events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{Events: events}
}

type CreateEventRequest struct {
	RinkID          uint    `json:"rink_id" binding:"required"`
	Title           string  `json:"title" binding:"required,min=3,max=200"`
	Description     string  `json:"description"`
	EventDate       string  `json:"event_date" binding:"required"`
	EventTime       *string `json:"event_time"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=2"`
}

// CreateEvent godoc
// @Summary Create a skating event at a rink the user has visited enough
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event details"
// @Success 201 {object} models.Event
// @Router /events [post]
func (ec *EventController) CreateEvent(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input CreateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	eventDate, err := time.Parse("2006-01-02", input.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event date, expected YYYY-MM-DD", "success": false})
		return
	}

	event, err := ec.Events.CreateEvent(c.Request.Context(), user.UserID, input.RinkID, services.CreateEventInput{
		Title:           input.Title,
		Description:     input.Description,
		EventDate:       eventDate,
		EventTime:       input.EventTime,
		MaxParticipants: input.MaxParticipants,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Message: "Событие создано",
		Data:    event,
	})
}

// GetEvent godoc
// @Summary Get an event with its participant list
// @Tags events
// @Produce json
// @Param id path integer true "Event ID"
// @Success 200 {object} services.EventDetails
// @Router /events/{id} [get]
func (ec *EventController) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID", "success": false})
		return
	}

	details, err := ec.Events.GetEvent(c.Request.Context(), uint(eventID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    details,
	})
}

// GetRinkEvents godoc
// @Summary List upcoming events at a rink
// @Tags events
// @Produce json
// @Param id path integer true "Rink ID"
// @Router /rinks/{id}/events [get]
func (ec *EventController) GetRinkEvents(c *gin.Context) {
	rinkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rink ID", "success": false})
		return
	}

	events, err := ec.Events.RinkEvents(c.Request.Context(), uint(rinkID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    events,
	})
}

// JoinEvent godoc
// @Summary Join an event at a rink the user has visited
// @Tags events
// @Produce json
// @Param id path integer true "Event ID"
// @Router /events/{id}/join [post]
func (ec *EventController) JoinEvent(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID", "success": false})
		return
	}

	if err := ec.Events.Join(c.Request.Context(), uint(eventID), user.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Вы записаны на событие",
	})
}

// LeaveEvent godoc
// @Summary Leave an event
// @Tags events
// @Produce json
// @Param id path integer true "Event ID"
// @Router /events/{id}/leave [post]
func (ec *EventController) LeaveEvent(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID", "success": false})
		return
	}

	if err := ec.Events.Leave(c.Request.Context(), uint(eventID), user.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Вы покинули событие",
	})
}
