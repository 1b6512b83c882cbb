package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/controllers"
)

func SetupCheckinRoutes(protected *gin.RouterGroup, checkinController *controllers.CheckinController, visitController *controllers.VisitController, reviewController *controllers.ReviewController) {
	checkins := protected.Group("/checkins")
	{
		checkins.POST("", checkinController.SubmitCheckin)
		checkins.GET("/my", checkinController.GetMyCheckins)
	}

	visits := protected.Group("/visits")
	{
		visits.GET("/my", visitController.GetMyVisits)
		visits.GET("/:id", visitController.GetVisit)
		visits.POST("/:id/reviews", reviewController.CreateReview)
	}
}
