// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/config"
	"github.com/sripavantejb/GuideXpert-Backend/cron"
	"github.com/sripavantejb/GuideXpert-Backend/database"
	adminRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/admin"
	attendanceRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/attendance"
	influencerRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/influencer"
	otpRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/otp"
	slotconfigRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/slotconfig"
	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/handlers"
	"github.com/sripavantejb/GuideXpert-Backend/middleware"
	"github.com/sripavantejb/GuideXpert-Backend/routes"
	adminSvc "github.com/sripavantejb/GuideXpert-Backend/services/admin"
	"github.com/sripavantejb/GuideXpert-Backend/services/attendance"
	"github.com/sripavantejb/GuideXpert-Backend/services/influencer"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/services/otp"
	"github.com/sripavantejb/GuideXpert-Backend/services/registration"
	"github.com/sripavantejb/GuideXpert-Backend/services/sheets"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitVerifiedCache()
	utils.InitSweepLock()

	// Repositories.
	subsRepo := submissionRepo.NewMongoSubmissionRepo()
	otpsRepo := otpRepo.NewMongoOtpRepo()
	slotsRepo := slotconfigRepo.NewMongoSlotConfigRepo()
	adminsRepo := adminRepo.NewMongoAdminRepo()
	linksRepo := influencerRepo.NewMongoInfluencerRepo()
	joinsRepo := attendanceRepo.NewMongoAttendanceRepo()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := subsRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure submission indexes", zap.Error(err))
		}
		if err := otpsRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure otp indexes", zap.Error(err))
		}
		if err := slotsRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure slot config indexes", zap.Error(err))
		}
		if err := adminsRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure admin indexes", zap.Error(err))
		}
		if err := linksRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure influencer link indexes", zap.Error(err))
		}
		if err := joinsRepo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure attendance indexes", zap.Error(err))
		}
	}

	// SMS gateway and notification scheduler.
	gateway := notify.NewMSG91Gateway()
	scheduler := &notify.DefaultScheduler{
		Subs:        subsRepo,
		Gateway:     gateway,
		Lock:        &notify.RedisSweepLock{Client: utils.GetSweepLockClient()},
		MeetingLink: config.AppConfig.DemoMeetingLink,
	}

	verifiedStore := &otp.RedisVerifiedStore{Client: utils.GetVerifiedCacheClient()}

	mirror, err := sheets.NewMirror(context.Background())
	if err != nil {
		// The sheet is an operator convenience; a broken mirror never blocks startup.
		logger.Warn("sheet mirror disabled", zap.Error(err))
		mirror = nil
	}

	// Services.
	handlers.OTPService = &otp.DefaultService{
		Repo:     otpsRepo,
		Verified: verifiedStore,
		Gateway:  gateway,
		Secret:   config.AppConfig.OTPSecret,
		Expiry:   time.Duration(config.AppConfig.OTPExpiryMinutes) * time.Minute,
	}
	handlers.SlotResolver = &slots.DefaultResolver{Repo: slotsRepo}
	handlers.RegistrationService = &registration.DefaultService{
		Subs:      subsRepo,
		Verified:  verifiedStore,
		Slots:     handlers.SlotResolver,
		Scheduler: scheduler,
		Mirror:    mirror,
	}
	handlers.AdminService = &adminSvc.DefaultService{
		Admins:      adminsRepo,
		SlotConfigs: slotsRepo,
		Subs:        subsRepo,
	}
	handlers.InfluencerService = &influencer.DefaultService{
		Links:   linksRepo,
		Subs:    subsRepo,
		BaseURL: config.AppConfig.RegistrationBaseURL,
	}
	handlers.AttendanceService = &attendance.DefaultService{Repo: joinsRepo}
	handlers.Scheduler = scheduler

	// Background sweep worker.
	cron.InitSweepWorker(scheduler)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
