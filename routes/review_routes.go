package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/controllers"
)

func SetupReviewRoutes(protected *gin.RouterGroup, reviewController *controllers.ReviewController) {
	reviews := protected.Group("/reviews")
	{
		reviews.PUT("/:id", reviewController.UpdateReview)
		reviews.DELETE("/:id", reviewController.DeleteReview)
	}
}
