package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultVotecoins is the credit balance granted to every new account.
const DefaultVotecoins = 15

type User struct {
	gorm.Model
	Name     string    `gorm:"column:name" json:"name"`
	Gender   string    `gorm:"column:gender" json:"gender"`
	Email    string    `gorm:"column:email;uniqueIndex" json:"email"`
	Password string    `gorm:"column:password" json:"-"`
	DOB      time.Time `gorm:"column:dob" json:"dob"`

	// Votecoins must never go negative; Voted only ever increases.
	Votecoins   int       `gorm:"column:votecoins;default:15" json:"votecoins"`
	Voted       int       `gorm:"column:voted;default:0" json:"voted"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"lastUpdated"`

	ImagePublicID string `gorm:"column:image_public_id" json:"-"`
	ImageURL      string `gorm:"column:image_url" json:"image"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.LastUpdated = time.Now()
	return nil
}

// Public returns the fields safe to embed in API responses. The password hash
// never leaves the server.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":     u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"dob":    u.DOB,
		"gender": u.Gender,
	}
}
