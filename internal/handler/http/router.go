package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/timedesk/timeclock-backend-go/internal/config"
	"github.com/timedesk/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	timeRegisterHandler TimeRegisterHandler,
	licenseHandler LicenseHandler,
	userHandler UserHandler,
	companyHandler CompanyHandler,
	scheduleHandler ScheduleHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Uploaded attachments are served straight from local storage.
	if cfg.Storage.Type == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login_check", authHandler.Login)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
			})
		})

		// keepAlive inspects the token itself, so it only needs the
		// verifier, not the full auth gate.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Get("/global/keepAlive", authHandler.KeepAlive)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/timesRegister", func(r chi.Router) {
				r.Post("/setTime", timeRegisterHandler.SetTime)
				r.Post("/setNewTime", timeRegisterHandler.SetNewTime)
				r.Get("/getByDate", timeRegisterHandler.GetByDate)
				r.Get("/getRange", timeRegisterHandler.GetRange)
				r.Post("/justify", timeRegisterHandler.Justify)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", timeRegisterHandler.Delete)
				})
			})

			r.Route("/license", func(r chi.Router) {
				r.Post("/create", licenseHandler.Create)
				r.Post("/edit", licenseHandler.Edit)
				r.Post("/delete-file", licenseHandler.DeleteFile)
				r.Delete("/delete/{id}", licenseHandler.Delete)
				r.Get("/list", licenseHandler.List)
				r.Get("/{id}", licenseHandler.Get)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAdmin)
					r.Post("/approve/{id}", licenseHandler.Approve)
					r.Post("/reject/{id}", licenseHandler.Reject)
				})
			})

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", userHandler.Profile)
				r.Post("/edit", userHandler.Edit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/create", userHandler.Create)
					r.Post("/disable", userHandler.Disable)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAdmin)
					r.Get("/list", userHandler.List)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/", companyHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", companyHandler.Create)
					r.Put("/", companyHandler.Update)
					r.Get("/list", companyHandler.List)
				})

				r.Route("/offices", func(r chi.Router) {
					r.Get("/", companyHandler.ListOffices)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", companyHandler.CreateOffice)
						r.Delete("/{id}", companyHandler.DeleteOffice)
					})
				})
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/my", scheduleHandler.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAdmin)
					r.Get("/user/{userId}", scheduleHandler.ListForUser)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/assign", scheduleHandler.Assign)
					r.Delete("/{id}", scheduleHandler.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/employeeCount", reportHandler.EmployeeCounts)
			})
		})
	})

	return r
}
