package models

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	UserID      uint      `gorm:"column:user_id;index" json:"userId"`
	UserName    string    `gorm:"column:user_name" json:"userName"`
	Rating      int       `gorm:"column:rating" json:"rating"`
	Feedback    string    `gorm:"column:feedback" json:"feedback"`
	SubmittedAt time.Time `gorm:"column:submitted_at" json:"submittedAt"`
}
