package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "taskdeck.app/taskdeck/internal/configs"
	httpapi "taskdeck.app/taskdeck/internal/http"
	repository "taskdeck.app/taskdeck/internal/repositories"
	"taskdeck.app/taskdeck/internal/services"
	"taskdeck.app/taskdeck/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager API, seeds first-run data and runs the periodic refresh loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		var blobs storage.BlobStore
		switch cfg.StorageDriver {
		case config.DriverRedis:
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			blobs = storage.NewRedisBlobStore(redisClient, cfg.RedisNamespace)
		case config.DriverMemory:
			blobs = storage.NewMemoryBlobStore()
		default:
			blobs = storage.NewSQLiteBlobStore(config.NewDatabaseClient(cfg.DatabaseDSN))
		}

		store := storage.NewStore(blobs)
		taskRepo := repository.NewTaskRepository(store)
		notificationService := services.NewNotificationService(store, taskRepo)
		analyticsService := services.NewAnalyticsService(taskRepo)
		authService := services.NewAuthService(store, cfg.SessionSecret)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		storeService := services.NewStoreService(store, taskRepo, notificationService, analyticsService)
		storeService.Initialize(ctx)
		storeService.StartAutoRefresh(time.Duration(cfg.RefreshIntervalSeconds) * time.Second)

		e := echo.New()
		handler := httpapi.NewHandler(storeService, authService)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(echoCtx)

		storeService.Shutdown()

		log.Println("HTTP server and refresh loop shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
