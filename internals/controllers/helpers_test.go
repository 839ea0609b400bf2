package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/middleware"
	"github.com/nishashetty1/voteplay-simulator/internals/models"
	"github.com/nishashetty1/voteplay-simulator/internals/pending"
	"github.com/nishashetty1/voteplay-simulator/internals/testutil"
	"github.com/nishashetty1/voteplay-simulator/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// testServer bundles the handler wiring a controller test needs: the database
// behind the engine, the in-memory pending store, the stub mail transport, and
// a token manager sharing the engine's secret.
type testServer struct {
	DB           *gorm.DB
	Store        *pending.MemoryStore
	Mailer       *testutil.StubMailer
	TokenManager *utils.TokenManager
	Engine       *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		DB:           testutil.SetupTestDB(t),
		Store:        pending.NewMemoryStore(),
		Mailer:       &testutil.StubMailer{},
		TokenManager: utils.NewTokenManager("test-secret"),
	}

	authMiddleware := middleware.NewRequireAuthMiddleware(s.DB, s.TokenManager)
	authCtrl := NewAuthController(s.DB, s.Store, s.Mailer, s.TokenManager)
	categoryCtrl := NewCategoryController(s.DB)
	userCtrl := NewUserController(s.DB)
	feedbackCtrl := NewFeedbackController(s.DB)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/check-user", authCtrl.CheckUser)
		api.POST("/request-otp", authCtrl.RequestOTP)
		api.POST("/verify-otp", authCtrl.VerifyOTP)
		api.POST("/login", authCtrl.Login)

		api.GET("/category/:category", categoryCtrl.ListItems)
		api.GET("/category/:category/stats", categoryCtrl.Stats)
		api.GET("/category/:category/:id", categoryCtrl.GetItem)

		api.POST("/submit-feedback", feedbackCtrl.Submit)
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

	s.Engine = r
	return s
}

// do issues a JSON request. token, when non-empty, becomes a bearer header.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

// tokenFor mints a valid one-hour token for the given user.
func (s *testServer) tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := s.TokenManager.Generate(user.ID, user.Email, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// wrongCode returns a six-digit code guaranteed to differ from the input.
func wrongCode(code string) string {
	b := []byte(code)
	if b[0] == '9' {
		b[0] = '0'
	} else {
		b[0]++
	}
	return string(b)
}

var signupBody = map[string]any{
	"name":     "New Voter",
	"gender":   "female",
	"dob":      "2001-03-14",
	"password": "Str0ngPass!",
}

func requestOTP(t *testing.T, s *testServer, email string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/request-otp", "", map[string]any{
		"email":    email,
		"userData": signupBody,
	})
}

func verifyOTP(t *testing.T, s *testServer, email, otp string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/verify-otp", "", map[string]any{
		"email": email,
		"otp":   otp,
	})
}
