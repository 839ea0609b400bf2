package initializers

import (
	"log"

	"github.com/nishashetty1/voteplay-simulator/internals/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Global DB handle used across the application.
var DB *gorm.DB

func ConnectToDb() {
	var err error
	dsn := config.GetEnvAsStr("DB_URL", "voteplay.db")
	log.Println("Connecting to database at:", dsn)

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to DB")
	}
}
