package controllers

import (
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/rink-radar/api-go/models"
	"github.com/rink-radar/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) string {
	trimmed := strings.TrimSpace(username)

	if len(trimmed) < 3 {
		return "username must be at least 3 characters long"
	}
	if len(trimmed) > 20 {
		return "username must be no more than 20 characters long"
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_]*$`, trimmed)
	if !validPattern {
		return "username must start with a letter and contain only letters, numbers, and underscores"
	}

	reserved := []string{"admin", "root", "api", "test", "user", "guest", "null", "undefined"}
	for _, word := range reserved {
		if strings.ToLower(trimmed) == word {
			return "this username is reserved and cannot be used"
		}
	}

	return ""
}

func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	secret := []byte(os.Getenv("JWT_SECRET"))

	accessToken, err := accessTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := refreshTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	if err := ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(time.Hour * 24 * 30),
	}).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if msg := validateUsernamePattern(input.Username); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Name:     input.Name,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"name":     user.Name,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "avatar": user.Avatar},
		"success":       true,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	// Rotate: the old token is replaced, not kept alongside the new one.
	ac.DB.Delete(&refreshToken)

	accessToken, newRefreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "avatar": user.Avatar},
		"success":       true,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	result := ac.DB.Where("token = ?", input.RefreshToken).Delete(&models.RefreshToken{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "success": true})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        dbUser.ID,
			"username":  dbUser.Username,
			"email":     dbUser.Email,
			"name":      dbUser.Name,
			"avatar":    dbUser.Avatar,
			"isAdmin":   dbUser.IsAdmin,
			"createdAt": dbUser.CreatedAt,
		},
	})
}
