package main

import (
	"log"

	"github.com/nishashetty1/voteplay-simulator/internals/config"
	"github.com/nishashetty1/voteplay-simulator/internals/initializers"
	"github.com/nishashetty1/voteplay-simulator/internals/pending"
	"github.com/nishashetty1/voteplay-simulator/internals/routes"
	"github.com/nishashetty1/voteplay-simulator/internals/utils"

	"github.com/redis/go-redis/v9"
)

func init() {
	initializers.LoadEnvVariables()
	initializers.ConnectToDb()
	initializers.SyncDatabase()
}

func main() {
	// No fallback signing key: a missing secret is a startup failure, never a
	// silently guessable default.
	jwtSecret := config.GetEnv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenManager := utils.NewTokenManager(jwtSecret)

	emailManager := utils.NewEmailManager(&utils.SMTPConfig{
		Host:     config.GetEnvAsStr("SMTP_HOST", "smtp.gmail.com"),
		Port:     config.GetEnvAsInt("SMTP_PORT", 587),
		User:     config.GetEnv("EMAIL_USER"),
		Password: config.GetEnv("EMAIL_PASSWORD"),
		AppName:  config.GetEnvAsStr("APP_NAME", "VotePlay"),
		CodeExp:  int(pending.ValidityWindow.Minutes()),
	})

	// With Redis configured, pending signups are shared across replicas;
	// otherwise they live in this process only.
	var store pending.Store = pending.NewMemoryStore()
	if addr := config.GetEnvAsStr("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.GetEnvAsStr("REDIS_PASSWORD", ""),
		})
		store = pending.NewRedisStore(client)
	}

	r := routes.SetupRouter(initializers.DB, store, emailManager, tokenManager)
	r.Run()
}
