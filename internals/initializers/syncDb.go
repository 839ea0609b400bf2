package initializers

import (
	"github.com/nishashetty1/voteplay-simulator/internals/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.CategoryItem{},
		&models.Feedback{},
	)
	if err != nil {
		panic("Failed to migrate database")
	}
}
