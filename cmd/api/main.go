package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/quadtoe/internal/config"
	"github.com/iamasit07/quadtoe/internal/repository/redis"
	"github.com/iamasit07/quadtoe/internal/service/bot"
	"github.com/iamasit07/quadtoe/internal/service/cleanup"
	"github.com/iamasit07/quadtoe/internal/service/game"
	transportHttp "github.com/iamasit07/quadtoe/internal/transport/http"
	"github.com/iamasit07/quadtoe/internal/transport/websocket"
	"github.com/iamasit07/quadtoe/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		logger.Debug().Msg("no .env file found")
	}

	if _, err := bot.ParseDifficulty(cfg.BotDifficulty); err != nil {
		logger.Fatal().Err(err).Msg("invalid BOT_DIFFICULTY")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Engine options shared by sessions and the analysis endpoint
	engineOpts := []bot.Option{
		bot.WithDepth(cfg.SearchDepth),
		bot.WithParallel(cfg.SearchParallel),
		bot.WithEventSink(bot.LogSink(logging.Component(logger, "bot"))),
	}

	redisClient, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword, logging.Component(logger, "redis"))
	if err != nil {
		logger.Warn().Err(err).Msg("running without move cache")
	}
	if redisClient != nil {
		defer redisClient.Close()
		engineOpts = append(engineOpts, bot.WithCache(redis.NewRedisCache(redisClient), cfg.MoveCacheTTL))
	}

	// 2. Services
	sessions := game.NewManager(func(p bot.Profile) *bot.Engine {
		return bot.NewEngine(p, engineOpts...)
	}, logging.Component(logger, "session"))

	cleanupWorker := cleanup.NewWorker(sessions, cfg.SessionTTL, cfg.CleanupInterval, logging.Component(logger, "cleanup"))
	go cleanupWorker.Run(ctx)

	// 3. Transport
	gin.SetMode(gin.ReleaseMode)
	httpLogger := logging.Component(logger, "http")
	handler := transportHttp.NewHandler(sessions, cfg.BotDifficulty, cfg.SearchDepth, engineOpts, httpLogger)
	router := transportHttp.NewRouter(handler, cfg.AllowedOrigins, httpLogger)

	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessions, cfg.BotDifficulty, cfg.AllowedOrigins, logging.Component(logger, "ws"))
	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("difficulty", cfg.BotDifficulty).Int("depth", cfg.SearchDepth).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited gracefully")
}
