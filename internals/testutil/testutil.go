// Package testutil provides the shared fixtures for handler and middleware
// tests: an isolated in-memory database per test, seeded users and category
// items, and a stub mail transport.
package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nishashetty1/voteplay-simulator/internals/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// SetupTestDB opens an isolated in-memory SQLite database with the full
// schema. cache=shared keeps pooled connections on the same database, and a
// single open connection keeps SQLite's writer lock out of the way in
// concurrent tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(&models.User{}, &models.CategoryItem{}, &models.Feedback{})
	if err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	return db
}

// TestPassword is the plaintext password of every user created by CreateTestUser.
const TestPassword = "Abc12345!"

// CreateTestUser inserts a registered user with the default credit balance.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:      "Test Voter",
		Gender:    "other",
		Email:     email,
		Password:  string(hash),
		DOB:       time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
		Votecoins: models.DefaultVotecoins,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// AddCategoryItem seeds one votable option with a zero tally.
func AddCategoryItem(t *testing.T, db *gorm.DB, category string, name string) models.CategoryItem {
	t.Helper()

	item := models.CategoryItem{
		Category: category,
		Name:     name,
		Logo:     "https://cdn.example.com/" + name + ".png",
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create category item: %v", err)
	}
	return item
}

// StubMailer records dispatched codes instead of talking to SMTP. Setting Err
// makes every send fail with that error.
type StubMailer struct {
	mu    sync.Mutex
	Sent  []string // recipient emails, in dispatch order
	Codes []string // codes, in dispatch order
	Err   error
}

func (m *StubMailer) SendOTP(toEmail string, code string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, toEmail)
	m.Codes = append(m.Codes, code)
	m.mu.Unlock()
	return nil
}

// LastCode returns the most recently dispatched code, or "".
func (m *StubMailer) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Codes) == 0 {
		return ""
	}
	return m.Codes[len(m.Codes)-1]
}
