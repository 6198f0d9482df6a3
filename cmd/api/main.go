package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presensia/attendance-backend-go/internal/config"
	appHTTP "github.com/presensia/attendance-backend-go/internal/handler/http"
	"github.com/presensia/attendance-backend-go/internal/pkg/cron"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/pkg/email"
	"github.com/presensia/attendance-backend-go/internal/pkg/face"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
	"github.com/presensia/attendance-backend-go/internal/pkg/storage"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
	analysisService "github.com/presensia/attendance-backend-go/internal/service/analysis"
	attendanceService "github.com/presensia/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/presensia/attendance-backend-go/internal/service/auth"
	divisionService "github.com/presensia/attendance-backend-go/internal/service/division"
	"github.com/presensia/attendance-backend-go/internal/service/file"
	leaveService "github.com/presensia/attendance-backend-go/internal/service/leave"
	locationService "github.com/presensia/attendance-backend-go/internal/service/location"
	notificationService "github.com/presensia/attendance-backend-go/internal/service/notification"
	overtimeService "github.com/presensia/attendance-backend-go/internal/service/overtime"
	salaryService "github.com/presensia/attendance-backend-go/internal/service/salary"
	userService "github.com/presensia/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	// Without a configured vision backend every face check passes at a
	// fixed confidence, which keeps local development usable.
	var faceVerifier face.Verifier
	if cfg.Face.ServiceURL != "" {
		faceVerifier = face.NewHTTPVerifier(cfg.Face.ServiceURL, cfg.Face.Threshold)
	} else {
		slog.Warn("FACE_SERVICE_URL is empty, using mock face verifier")
		faceVerifier = face.NewMockVerifier(cfg.Face.Threshold)
	}

	notifier := notificationService.NewNotificationService(notificationRepo, userRepo, emailService)
	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		locationRepo,
		policyRepo,
		fileService,
		faceVerifier,
		notifier,
		cfg.Attendance,
	)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, notifier)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, attendanceRepo, notifier)
	salarySvc := salaryService.NewSalaryService(
		salaryRepo,
		attendanceRepo,
		overtimeRepo,
		policyRepo,
		userRepo,
		notifier,
	)
	analysisSvc := analysisService.NewAnalysisService(userRepo, attendanceRepo, overtimeRepo, policyRepo)
	policySvc := divisionService.NewPolicyService(policyRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	userSvc := userService.NewUserService(userRepo, fileService)

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Overtime:     appHTTP.NewOvertimeHandler(overtimeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Salary:       appHTTP.NewSalaryHandler(salarySvc),
		Location:     appHTTP.NewLocationHandler(locationSvc),
		Policy:       appHTTP.NewPolicyHandler(policySvc),
		Analysis:     appHTTP.NewAnalysisHandler(analysisSvc),
		Notification: appHTTP.NewNotificationHandler(notifier),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, userRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
