package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rink-radar/api-go/config"
	"github.com/rink-radar/api-go/utils"
)

// UploadController hands out presigned R2 URLs for review photos. The API
// never proxies file bytes itself.
type UploadController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PhotoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController() *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetReviewPhotoURL godoc
// @Summary Get a presigned URL for uploading a review photo
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body PhotoUploadRequest true "File metadata"
// @Success 200 {object} PresignedURLResponse
// @Router /uploads/review-photo [post]
func (uc *UploadController) GetReviewPhotoURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidPhoto(req.ContentType, req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo type or size"})
		return
	}

	key := uc.generatePhotoKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(c, key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
	})
}

// DeletePhoto godoc
// @Summary Delete an uploaded review photo owned by the user
// @Tags uploads
// @Produce json
// @Param key path string true "Storage key"
// @Router /uploads/{key} [delete]
func (uc *UploadController) DeletePhoto(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !ownsPhotoKey(key, user.UserID) && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	_, err := uc.R2Client.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

func isValidPhoto(contentType string, fileSize int64) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}

	valid := false
	for _, t := range validTypes {
		if contentType == t {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	return fileSize <= 10*1024*1024
}

// Keys embed the owner's user ID so ownership can be checked without a
// database round trip.
func (uc *UploadController) generatePhotoKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("reviews/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func ownsPhotoKey(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 2 || parts[0] != "reviews" {
		return false
	}
	return parts[1] == fmt.Sprintf("%d", userID)
}

func (uc *UploadController) createPresignedURL(c *gin.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(c.Request.Context(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
