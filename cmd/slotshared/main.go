package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/slotshare/internal/application"
	"github.com/example/slotshare/internal/config"
	httptransport "github.com/example/slotshare/internal/http"
	"github.com/example/slotshare/internal/persistence"
	"github.com/example/slotshare/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	scheduleRepo := newScheduleRepositoryAdapter(storage)
	scheduleService := application.NewScheduleServiceWithLogger(scheduleRepo, time.Now, logger)
	scheduleHandler := httptransport.NewScheduleHandler(scheduleService, cfg.PublicBaseURL, logger)

	middleware := []func(http.Handler) http.Handler{
		httptransport.RequestLogger(logger),
	}
	if cfg.BasicAuthEnabled() {
		middleware = append(middleware, httptransport.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthHash, logger))
	}

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Schedules:  scheduleHandler,
		Middleware: middleware,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("slotshare API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type scheduleRepositoryAdapter struct {
	repo persistence.ScheduleRepository
}

func newScheduleRepositoryAdapter(repo persistence.ScheduleRepository) *scheduleRepositoryAdapter {
	return &scheduleRepositoryAdapter{repo: repo}
}

func (a *scheduleRepositoryAdapter) CreateSchedule(ctx context.Context, schedule application.Schedule) (application.Schedule, error) {
	stored, err := a.repo.CreateSchedule(ctx, toPersistenceSchedule(schedule))
	if err != nil {
		return application.Schedule{}, translateError(err)
	}
	return toApplicationSchedule(stored), nil
}

func (a *scheduleRepositoryAdapter) GetSchedule(ctx context.Context, id int64) (application.Schedule, error) {
	stored, err := a.repo.GetSchedule(ctx, id)
	if err != nil {
		return application.Schedule{}, translateError(err)
	}
	return toApplicationSchedule(stored), nil
}

func (a *scheduleRepositoryAdapter) UpdateSelection(ctx context.Context, id int64, selected []application.Slot, status string) (application.Schedule, error) {
	stored, err := a.repo.UpdateSelection(ctx, id, toPersistenceSlots(selected), status)
	if err != nil {
		return application.Schedule{}, translateError(err)
	}
	return toApplicationSchedule(stored), nil
}

func (a *scheduleRepositoryAdapter) ListSchedules(ctx context.Context, ids []int64) ([]application.Schedule, error) {
	models, err := a.repo.ListSchedules(ctx, ids)
	if err != nil {
		return nil, translateError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	schedules := make([]application.Schedule, 0, len(models))
	for _, model := range models {
		schedules = append(schedules, toApplicationSchedule(model))
	}
	return schedules, nil
}

func translateError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrNotFound
	}
	return err
}

func toApplicationSchedule(model persistence.Schedule) application.Schedule {
	return application.Schedule{
		ID:            model.ID,
		Slots:         toApplicationSlots(model.Slots),
		Timezone:      model.Timezone,
		Status:        model.Status,
		SelectedSlots: toApplicationSlots(model.SelectedSlots),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toPersistenceSchedule(schedule application.Schedule) persistence.Schedule {
	return persistence.Schedule{
		ID:            schedule.ID,
		Slots:         toPersistenceSlots(schedule.Slots),
		Timezone:      schedule.Timezone,
		Status:        schedule.Status,
		SelectedSlots: toPersistenceSlots(schedule.SelectedSlots),
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
	}
}

func toApplicationSlots(models []persistence.Slot) []application.Slot {
	if models == nil {
		return nil
	}
	slots := make([]application.Slot, 0, len(models))
	for _, model := range models {
		slots = append(slots, application.Slot{Date: model.Date, StartTime: model.StartTime, EndTime: model.EndTime})
	}
	return slots
}

func toPersistenceSlots(slots []application.Slot) []persistence.Slot {
	if slots == nil {
		return nil
	}
	models := make([]persistence.Slot, 0, len(slots))
	for _, slot := range slots {
		models = append(models, persistence.Slot{Date: slot.Date, StartTime: slot.StartTime, EndTime: slot.EndTime})
	}
	return models
}
