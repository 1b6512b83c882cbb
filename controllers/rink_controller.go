package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/models"
	"github.com/rink-radar/api-go/services"
	"github.com/rink-radar/api-go/utils"
	"gorm.io/gorm"
)

type RinkController struct {
	DB       *gorm.DB
	Checkins *services.CheckinService
	Gate     *services.GateService
}

type RinkListQuery struct {
	District           string `form:"district"`
	IsPaid             *bool  `form:"is_paid"`
	HasEquipmentRental *bool  `form:"has_equipment_rental"`
	HasLockerRoom      *bool  `form:"has_locker_room"`
	HasCafe            *bool  `form:"has_cafe"`
	HasWifi            *bool  `form:"has_wifi"`
	Search             string `form:"search"`
	Page               int    `form:"page,default=1" binding:"min=1"`
	PageSize           int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

func NewRinkController(db *gorm.DB, checkins *services.CheckinService, gate *services.GateService) *RinkController {
	return &RinkController{DB: db, Checkins: checkins, Gate: gate}
}

// GetRinks godoc
// @Summary List rinks with district and facility filters
// @Tags rinks
// @Produce json
// @Param district query string false "Filter by district"
// @Param is_paid query boolean false "Filter by paid entry"
// @Param search query string false "Search by name or address"
// @Param page query integer false "Page number"
// @Param pageSize query integer false "Page size (max 100)"
// @Success 200 {object} StandardResponse
// @Router /rinks [get]
func (rc *RinkController) GetRinks(c *gin.Context) {
	var query RinkListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	db := rc.DB.Model(&models.Rink{})

	if query.District != "" {
		db = db.Where("district = ?", query.District)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR address ILIKE ?", like, like)
	}
	if query.IsPaid != nil {
		db = db.Where("is_paid = ?", *query.IsPaid)
	}
	if query.HasEquipmentRental != nil {
		db = db.Where("has_equipment_rental = ?", *query.HasEquipmentRental)
	}
	if query.HasLockerRoom != nil {
		db = db.Where("has_locker_room = ?", *query.HasLockerRoom)
	}
	if query.HasCafe != nil {
		db = db.Where("has_cafe = ?", *query.HasCafe)
	}
	if query.HasWifi != nil {
		db = db.Where("has_wifi = ?", *query.HasWifi)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rinks", "success": false})
		return
	}

	var rinks []models.Rink
	offset := (query.Page - 1) * query.PageSize
	if err := db.Order("name ASC").Limit(query.PageSize).Offset(offset).Find(&rinks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rinks", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    rinks,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(query.PageSize))),
		},
	})
}

// GetRink godoc
// @Summary Get a single rink with its live skater count
// @Tags rinks
// @Produce json
// @Param id path integer true "Rink ID"
// @Success 200 {object} StandardResponse
// @Router /rinks/{id} [get]
func (rc *RinkController) GetRink(c *gin.Context) {
	rinkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rink ID", "success": false})
		return
	}

	var rink models.Rink
	if err := rc.DB.First(&rink, rinkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Каток не найден", "success": false})
		return
	}

	currentCount, err := rc.Checkins.CurrentCount(c.Request.Context(), uint(rinkID))
	if err != nil {
		currentCount = 0
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    rink,
		Meta:    gin.H{"current_skaters": currentCount},
	})
}

// GetRinkCheckins godoc
// @Summary Get recent check-ins at a rink
// @Tags rinks
// @Produce json
// @Param id path integer true "Rink ID"
// @Param hours query integer false "Lookback window in hours (default 24)"
// @Router /rinks/{id}/checkins [get]
func (rc *RinkController) GetRinkCheckins(c *gin.Context) {
	rinkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rink ID", "success": false})
		return
	}

	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))

	checkins, err := rc.Checkins.RinkCheckins(c.Request.Context(), uint(rinkID), hours)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	currentCount, err := rc.Checkins.CurrentCount(c.Request.Context(), uint(rinkID))
	if err != nil {
		currentCount = 0
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    checkins,
		Meta:    gin.H{"current_skaters": currentCount},
	})
}

// GetRinkEligibility godoc
// @Summary Get the user's engagement eligibility at a rink
// @Tags rinks
// @Produce json
// @Param id path integer true "Rink ID"
// @Success 200 {object} services.Eligibility
// @Router /rinks/{id}/eligibility [get]
func (rc *RinkController) GetRinkEligibility(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	rinkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rink ID", "success": false})
		return
	}

	eligibility, err := rc.Gate.RinkEligibility(c.Request.Context(), user.UserID, uint(rinkID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    eligibility,
	})
}
