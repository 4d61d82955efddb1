package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/config"
	appHTTP "github.com/timedesk/timeclock-backend-go/internal/handler/http"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/cron"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/email"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/oauth"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/storage"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/timedesk/timeclock-backend-go/internal/service/auth"
	serviceCompany "github.com/timedesk/timeclock-backend-go/internal/service/company"
	serviceLicense "github.com/timedesk/timeclock-backend-go/internal/service/license"
	serviceRollover "github.com/timedesk/timeclock-backend-go/internal/service/rollover"
	serviceSchedule "github.com/timedesk/timeclock-backend-go/internal/service/schedule"
	serviceTimeslot "github.com/timedesk/timeclock-backend-go/internal/service/timeslot"
	serviceUser "github.com/timedesk/timeclock-backend-go/internal/service/user"
	"github.com/timedesk/timeclock-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, migrations.FS); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	timeRegisterRepo := postgresql.NewTimeRegisterRepository(db)
	licenseRepo := postgresql.NewLicenseRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RememberExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService, GoogleService, emailService, cfg.App)
	userService := serviceUser.NewUserService(userRepo)
	companyService := serviceCompany.NewCompanyService(companyRepo, officeRepo)
	timeRegisterService := serviceTimeslot.NewTimeRegisterService(timeRegisterRepo, workScheduleRepo, location)
	licenseService := serviceLicense.NewLicenseService(db, licenseRepo, documentRepo, userRepo, fileStorage, emailService)
	scheduleService := serviceSchedule.NewWorkScheduleService(db, workScheduleRepo)
	rolloverService := serviceRollover.NewRolloverService(db, timeRegisterRepo, location)

	authHandler := appHTTP.NewAuthHandler(authService, GoogleService)
	userHandler := appHTTP.NewUserHandler(userService)
	companyHandler := appHTTP.NewCompanyHandler(companyService)
	timeRegisterHandler := appHTTP.NewTimeRegisterHandler(timeRegisterService)
	licenseHandler := appHTTP.NewLicenseHandler(licenseService)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleService)
	reportHandler := appHTTP.NewReportHandler(reportRepo)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		timeRegisterHandler,
		licenseHandler,
		userHandler,
		companyHandler,
		scheduleHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Rollover.Enabled {
		rolloverJobs := cron.NewRolloverJobs(rolloverService, location)
		rolloverJobs.RegisterJobs(scheduler, cfg.Rollover.Interval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
