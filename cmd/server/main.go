package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jalali-planner/internal/config"
	"jalali-planner/internal/handlers"
	"jalali-planner/internal/logger"
	"jalali-planner/internal/notify"
	"jalali-planner/internal/repository"
	"jalali-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Development); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	reminderSvc := service.NewReminderService(taskRepo)

	taskHandler := handlers.NewTaskHandler(taskSvc)
	authHandler := handlers.NewAuthHandler(authSvc, userRepo)
	calendarHandler := handlers.NewCalendarHandler()

	router := handlers.NewRouter(taskHandler, authHandler, calendarHandler, authSvc)

	// Reminders are optional: without a bot token the API runs alone.
	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, userRepo, reminderSvc)
		if err != nil {
			logger.Fatal("telegram notifier", err)
		}

		scheduler := service.NewScheduler(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := notifier.SendDailyDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("send daily digests", err)
			}
		}); err != nil {
			logger.Fatal("schedule reminders", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		logger.Info("daily reminders scheduled", zap.String("at", cfg.ReminderTime))
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", err)
	}
	logger.Info("shutdown complete")
}
