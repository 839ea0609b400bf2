package controllers

import (
	"net/http"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/middleware"
	"github.com/nishashetty1/voteplay-simulator/internals/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) GetVotecoins(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, middleware.CurrentUser(c).ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"votecoins":   user.Votecoins,
		"lastUpdated": user.LastUpdated,
	})
}

// UpdateVotecoins adds or spends credits. A deduction is one guarded UPDATE:
// it either applies in full or not at all, and the balance can never go
// negative.
func (uc *UserController) UpdateVotecoins(c *gin.Context) {
	var body struct {
		Amount    int    `json:"amount" binding:"required,gt=0"`
		Operation string `json:"operation" binding:"required,oneof=add subtract"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	userID := middleware.CurrentUser(c).ID

	delta := body.Amount
	query := uc.DB.Model(&models.User{}).Where("id = ?", userID)
	if body.Operation == "subtract" {
		delta = -delta
		query = query.Where("votecoins >= ?", body.Amount)
	}

	res := query.UpdateColumns(map[string]interface{}{
		"votecoins":    gorm.Expr("votecoins + ?", delta),
		"last_updated": time.Now(),
	})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating votecoins"})
		return
	}
	if res.RowsAffected == 0 {
		if body.Operation == "subtract" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient votecoins"})
		} else {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		}
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating votecoins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"votecoins":   user.Votecoins,
		"lastUpdated": user.LastUpdated,
	})
}

// IncrementVote bumps the user's cumulative vote count without touching a
// tally. The transactional route on categories is the primary path; this one
// is kept for the SPA's simulation replay.
func (uc *UserController) IncrementVote(c *gin.Context) {
	userID := middleware.CurrentUser(c).ID

	res := uc.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"voted":        gorm.Expr("voted + ?", 1),
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating vote count"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating vote count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "voted": user.Voted})
}

func (uc *UserController) VotingStats(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, middleware.CurrentUser(c).ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var agg struct {
		TotalVotes int64
		TotalUsers int64
	}
	err := uc.DB.Model(&models.User{}).
		Select("COALESCE(SUM(voted), 0) AS total_votes, COUNT(*) AS total_users").
		Scan(&agg).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching voting statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"userVotes":        user.Voted,
			"totalVotes":       agg.TotalVotes,
			"registeredVoters": agg.TotalUsers,
		},
	})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, middleware.CurrentUser(c).ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var body struct {
		Name   string `json:"name"`
		Gender string `json:"gender"`
		DOB    string `json:"dob"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Gender != "" {
		updates["gender"] = body.Gender
	}
	if body.DOB != "" {
		dob, err := parseDOB(body.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date of birth"})
			return
		}
		updates["dob"] = dob
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}
	updates["last_updated"] = time.Now()

	userID := middleware.CurrentUser(c).ID
	if err := uc.DB.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating user"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}
