package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/middleware"
	"github.com/nishashetty1/voteplay-simulator/internals/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrOptionNotFound = errors.New("option not found")
	ErrUserNotFound   = errors.New("user not found")
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func (cc *CategoryController) ListItems(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !models.IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	var items []models.CategoryItem
	if err := cc.DB.Where("category = ?", category).Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching items"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No items found in this category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

func (cc *CategoryController) GetItem(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !models.IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
		return
	}

	var item models.CategoryItem
	if err := cc.DB.Where("category = ?", category).First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// CastVote records one vote: the option tally and the voter's vote count move
// together inside a single database transaction, or not at all.
func (cc *CategoryController) CastVote(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !models.IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
		return
	}

	user := middleware.CurrentUser(c)

	item, votecoins, err := castVote(cc.DB, user.ID, category, uint(itemID))
	if err != nil {
		switch {
		case errors.Is(err, ErrOptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating vote count"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"item":          item,
		"userVotecoins": votecoins,
	})
}

// castVote increments one option tally and the voter's vote count atomically.
// Both increments execute in-database, so concurrent votes on the same option
// never lose updates, and any failure rolls back both counters.
func castVote(db *gorm.DB, userID uint, category string, itemID uint) (*models.CategoryItem, int, error) {
	var item models.CategoryItem
	var votecoins int

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CategoryItem{}).
			Where("id = ? AND category = ?", itemID, category).
			UpdateColumn("count", gorm.Expr("count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOptionNotFound
		}

		res = tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"voted":        gorm.Expr("voted + ?", 1),
				"last_updated": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.Where("category = ?", category).First(&item, itemID).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		votecoins = user.Votecoins
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &item, votecoins, nil
}

func (cc *CategoryController) Stats(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !models.IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	var stats models.CategoryStats
	err := cc.DB.Model(&models.CategoryItem{}).
		Where("category = ?", category).
		Select("COALESCE(SUM(count), 0) AS total_votes, COALESCE(MAX(count), 0) AS max_votes, COALESCE(MIN(count), 0) AS min_votes").
		Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
