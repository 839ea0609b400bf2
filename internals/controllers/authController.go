package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/models"
	"github.com/nishashetty1/voteplay-simulator/internals/pending"
	"github.com/nishashetty1/voteplay-simulator/internals/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// loginTokenTTL bounds login-issued credentials. Tokens minted on OTP
// verification carry no expiry claim.
const loginTokenTTL = 24 * time.Hour

type AuthController struct {
	DB           *gorm.DB
	Pending      pending.Store
	Mailer       utils.Mailer
	TokenManager *utils.TokenManager
}

func NewAuthController(db *gorm.DB, store pending.Store, mailer utils.Mailer, tokenManager *utils.TokenManager) *AuthController {
	return &AuthController{
		DB:           db,
		Pending:      store,
		Mailer:       mailer,
		TokenManager: tokenManager,
	}
}

// SignupData is the candidate profile submitted alongside an OTP request. It
// sits serialized in the pending store and only becomes a User once the code
// is proven.
type SignupData struct {
	Name     string `json:"name" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
	DOB      string `json:"dob" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// parseDOB accepts the SPA's date-input format and full RFC 3339 timestamps.
func parseDOB(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (a *AuthController) CheckUser(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking user existence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "exists": count > 0})
}

func (a *AuthController) RequestOTP(c *gin.Context) {
	var body struct {
		Email    string     `json:"email" binding:"required,email"`
		UserData SignupData `json:"userData" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking user existence"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	profile, err := json.Marshal(body.UserData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to start verification"})
		return
	}

	code := utils.GenerateVerificationCode()

	// Overwrites any prior pending signup for this email: the attempt counter
	// and expiry clock restart, and the old code stops working.
	err = a.Pending.Put(c.Request.Context(), pending.Registration{
		Email:     body.Email,
		Code:      code,
		Profile:   profile,
		Attempts:  pending.MaxAttempts,
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to start verification"})
		return
	}

	// Dispatch is synchronous: a delivery failure is a hard error to the
	// caller, not a silent retry.
	if err := a.Mailer.SendOTP(body.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to send email: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent successfully"})
}

func (a *AuthController) VerifyOTP(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()

	reg, err := a.Pending.Get(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification lookup failed"})
		return
	}
	if reg == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verification session expired or not found"})
		return
	}

	if reg.Expired(time.Now()) {
		a.Pending.Delete(ctx, body.Email)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verification code expired"})
		return
	}

	if reg.Code != body.OTP {
		left, err := a.Pending.DecrementAttempts(ctx, body.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification lookup failed"})
			return
		}
		if left <= 0 {
			a.Pending.Delete(ctx, body.Email)
			c.JSON(http.StatusBadRequest, gin.H{
				"success":            false,
				"message":            "Maximum attempts reached. Please request a new code.",
				"maxAttemptsReached": true,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success":      false,
			"message":      fmt.Sprintf("Incorrect OTP. Try Again. %d attempts remaining", left),
			"attemptsLeft": left,
		})
		return
	}

	var data SignupData
	if err := json.Unmarshal(reg.Profile, &data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Corrupted verification session"})
		return
	}

	dob, err := parseDOB(data.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date of birth"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:      data.Name,
		Gender:    data.Gender,
		Email:     body.Email,
		Password:  string(hash),
		DOB:       dob,
		Votecoins: models.DefaultVotecoins,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		// A concurrent signup can win the unique-email race between the
		// request-otp existence check and this insert.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	a.Pending.Delete(ctx, body.Email)

	token, err := a.TokenManager.Generate(user.ID, user.Email, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified and registration completed successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User does not exist. Please sign up."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed. Please try again."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := a.TokenManager.Generate(user.ID, user.Email, loginTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}
