package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/config"
	appHTTP "github.com/presenzeapp/presenze-backend-go/internal/handler/http"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/cron"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/events"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/jwt"
	"github.com/presenzeapp/presenze-backend-go/internal/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/repository/postgresql"
	"github.com/presenzeapp/presenze-backend-go/internal/repository/sqlite"
	attendanceService "github.com/presenzeapp/presenze-backend-go/internal/service/attendance"
	leaveService "github.com/presenzeapp/presenze-backend-go/internal/service/leave"
	masterService "github.com/presenzeapp/presenze-backend-go/internal/service/master"
	overtimeService "github.com/presenzeapp/presenze-backend-go/internal/service/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/service/replay"
	sickleaveService "github.com/presenzeapp/presenze-backend-go/internal/service/sickleave"
	statusService "github.com/presenzeapp/presenze-backend-go/internal/service/status"
	tripService "github.com/presenzeapp/presenze-backend-go/internal/service/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	businessTripRepo := postgresql.NewBusinessTripRepository(db)
	sickLeaveRepo := postgresql.NewSickLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)

	resolver := statusService.NewResolver(
		employeeRepo,
		workScheduleRepo,
		businessTripRepo,
		leaveRequestRepo,
		sickLeaveRepo,
		holidayRepo,
		attendanceRepo,
	)

	detector := overtimeService.NewDetector()
	overtimeSvc := overtimeService.NewService(overtimeRepo)
	leaveSvc := leaveService.NewService(db, leaveRequestRepo, leaveBalanceRepo, resolver)
	tripSvc := tripService.NewService(businessTripRepo, resolver)
	sickLeaveSvc := sickleaveService.NewService(sickLeaveRepo)
	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		employeeRepo,
		resolver,
		detector,
		overtimeSvc,
		cfg.Schedule.AutoOvertimeEnabled,
	)
	masterSvc := masterService.NewService(employeeRepo, workScheduleRepo, holidayRepo)

	queueStore, err := sqlite.NewQueueStore(cfg.Queue.StorePath)
	if err != nil {
		fmt.Println("Error opening queue store:", err)
		return
	}
	defer queueStore.Close()

	hub := events.NewHub()
	offlineQueue := queue.New(queueStore, hub, cfg.Queue.MaxRetries,
		queue.WithBackoff(queue.LinearBackoff{Step: time.Second, Max: 10 * time.Second}),
	)
	processor := replay.NewProcessor(attendanceSvc, overtimeSvc, leaveSvc)
	watcher := queue.NewWatcher(offlineQueue, processor, cfg.Queue.SettleDelay, slog.Default())
	watcher.NotifyOnline()
	defer watcher.Close()

	// Periodic drain fallback so operations survive a missed connectivity
	// notification.
	scheduler := cron.NewScheduler()
	scheduler.AddJob("queue-drain", cfg.Queue.DrainInterval, func(ctx context.Context) error {
		return offlineQueue.Drain(ctx, processor)
	})
	scheduler.Start()
	defer scheduler.Stop()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Status:     appHTTP.NewStatusHandler(resolver),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Trip:       appHTTP.NewTripHandler(tripSvc),
		SickLeave:  appHTTP.NewSickLeaveHandler(sickLeaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Queue:      appHTTP.NewQueueHandler(offlineQueue, watcher),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
