package routes

import (
	"net/http"

	"github.com/nishashetty1/voteplay-simulator/internals/config"
	"github.com/nishashetty1/voteplay-simulator/internals/controllers"
	"github.com/nishashetty1/voteplay-simulator/internals/middleware"
	"github.com/nishashetty1/voteplay-simulator/internals/pending"
	"github.com/nishashetty1/voteplay-simulator/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the full API surface. Dependencies come in explicitly so
// tests can swap the pending store and the mail transport.
func SetupRouter(db *gorm.DB, store pending.Store, mailer utils.Mailer, tokenManager *utils.TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}))
	r.Use(middleware.CORS(config.AllowedOrigins()))

	authMiddleware := middleware.NewRequireAuthMiddleware(db, tokenManager)
	authCtrl := controllers.NewAuthController(db, store, mailer, tokenManager)
	categoryCtrl := controllers.NewCategoryController(db)
	userCtrl := controllers.NewUserController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "active",
			"message": "VotePlay API is running",
		})
	})

	public := r.Group("/api")
	{
		public.POST("/check-user", authCtrl.CheckUser)
		public.POST("/request-otp", authCtrl.RequestOTP)
		public.POST("/verify-otp", authCtrl.VerifyOTP)
		public.POST("/login", authCtrl.Login)

		public.GET("/category/:category", categoryCtrl.ListItems)
		public.GET("/category/:category/stats", categoryCtrl.Stats)
		public.GET("/category/:category/:id", categoryCtrl.GetItem)

		public.POST("/submit-feedback", feedbackCtrl.Submit)
	}

	protected := r.Group("/api")
	protected.Use(authMiddleware.RequireAuth)
	{
		protected.PUT("/category/:category/:id/vote", categoryCtrl.CastVote)

		protected.GET("/user/votecoins", userCtrl.GetVotecoins)
		protected.PUT("/user/votecoins", userCtrl.UpdateVotecoins)
		protected.PUT("/user/vote", userCtrl.IncrementVote)
		protected.GET("/user/profile", userCtrl.GetProfile)
		protected.PUT("/user/profile", userCtrl.UpdateProfile)
		protected.GET("/stats", userCtrl.VotingStats)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}
