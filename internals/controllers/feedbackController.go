package controllers

import (
	"net/http"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

func (fc *FeedbackController) Submit(c *gin.Context) {
	var body struct {
		UserID   uint   `json:"userId" binding:"required"`
		UserName string `json:"userName" binding:"required"`
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		Feedback string `json:"feedback"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	feedback := models.Feedback{
		UserID:      body.UserID,
		UserName:    body.UserName,
		Rating:      body.Rating,
		Feedback:    body.Feedback,
		SubmittedAt: time.Now(),
	}

	if err := fc.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback submitted successfully"})
}
