package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"techtrek/config"
	"techtrek/database"
	"techtrek/events"
	"techtrek/routers"
	"techtrek/services"
	"techtrek/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		utils.Log.Fatal().Err(err).Msg("database setup failed")
	}

	if err := services.NewCatalogService(db).SeedSampleData(context.Background()); err != nil {
		utils.Log.Fatal().Err(err).Msg("seeding sample data failed")
	}

	var storage fiber.Storage
	if cfg.SessionStore == "redis" {
		redisStorage := database.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisStorage.Ping(context.Background()); err != nil {
			utils.Log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis session storage unreachable")
		}
		defer redisStorage.Close()
		storage = redisStorage
	}

	publisher := events.New(cfg.NewKafkaWriter())
	defer publisher.Close()

	app := routers.NewApp(routers.Deps{
		Config:    cfg,
		DB:        db,
		Storage:   storage,
		Publisher: publisher,
		AccessLog: true,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		utils.Log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	utils.Log.Info().Str("port", cfg.Port).Str("db_driver", cfg.DBDriver).Msg("server is running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Log.Error().Err(err).Msg("server stopped")
	}
}
