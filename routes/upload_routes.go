package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		upload.POST("/review-photo", uploadController.GetReviewPhotoURL)
		upload.DELETE("/file/:key", uploadController.DeletePhoto)
	}
}
