package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/services"
	"github.com/rink-radar/api-go/utils"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type ReviewRequest struct {
	Text         string  `json:"text" binding:"required"`
	Rating       int     `json:"rating" binding:"required"`
	IceCondition *string `json:"ice_condition"`
	CrowdLevel   *string `json:"crowd_level"`
	PhotoURL     string  `json:"photo_url"`
}

// CreateReview godoc
// @Summary Create a review for a verified visit
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path integer true "Visit ID"
// @Param request body ReviewRequest true "Review content"
// @Success 201 {object} models.Review
// @Router /visits/{id}/reviews [post]
func (rc *ReviewController) CreateReview(c *gin.Context) {
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

	var input ReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	review, err := rc.Reviews.CreateReview(c.Request.Context(), uint(visitID), user.UserID, services.ReviewInput{
		Text:         input.Text,
		Rating:       input.Rating,
		IceCondition: input.IceCondition,
		CrowdLevel:   input.CrowdLevel,
		PhotoURL:     input.PhotoURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Message: "Отзыв опубликован",
		Data:    review,
	})
}

// GetRinkReviews godoc
// @Summary List reviews for a rink with its average rating
// @Tags reviews
// @Produce json
// @Param id path integer true "Rink ID"
// @Param limit query integer false "Page size"
// @Param offset query integer false "Page offset"
// @Success 200 {object} services.RinkReviews
// @Router /rinks/{id}/reviews [get]
func (rc *ReviewController) GetRinkReviews(c *gin.Context) {
	rinkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rink ID", "success": false})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, err := rc.Reviews.ReviewsByRink(c.Request.Context(), uint(rinkID), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reviews,
	})
}

// UpdateReview godoc
// @Summary Update the author's own review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path integer true "Review ID"
// @Param request body ReviewRequest true "Updated review content"
// @Router /reviews/{id} [put]
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID", "success": false})
		return
	}

	var input ReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	review, err := rc.Reviews.UpdateReview(c.Request.Context(), uint(reviewID), user.UserID, services.ReviewInput{
		Text:         input.Text,
		Rating:       input.Rating,
		IceCondition: input.IceCondition,
		CrowdLevel:   input.CrowdLevel,
		PhotoURL:     input.PhotoURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Отзыв обновлён",
		Data:    review,
	})
}

// DeleteReview godoc
// @Summary Delete a review (author or admin)
// @Tags reviews
// @Produce json
// @Param id path integer true "Review ID"
// @Router /reviews/{id} [delete]
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID", "success": false})
		return
	}

	if err := rc.Reviews.DeleteReview(c.Request.Context(), uint(reviewID), user.UserID, user.IsAdmin); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Отзыв удалён",
	})
}
