package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/controllers"
)

func SetupEventRoutes(protected *gin.RouterGroup, eventController *controllers.EventController) {
	events := protected.Group("/events")
	{
		events.POST("", eventController.CreateEvent)
		events.POST("/:id/join", eventController.JoinEvent)
		events.POST("/:id/leave", eventController.LeaveEvent)
	}
}
