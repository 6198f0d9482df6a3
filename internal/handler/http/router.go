package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/presensia/attendance-backend-go/internal/handler/http/middleware"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Attendance   AttendanceHandler
	Overtime     OvertimeHandler
	Leave        LeaveHandler
	Salary       SalaryHandler
	Location     LocationHandler
	Policy       PolicyHandler
	Analysis     AnalysisHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/history", h.Attendance.GetHistory)
				r.Get("/summary", h.Attendance.GetSummary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/division/{division}", h.Attendance.GetDivisionHistory)
					r.Post("/manual", h.Attendance.CreateManualEntry)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", h.Overtime.Submit)
				r.Get("/my", h.Overtime.GetMyOvertime)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/pending", h.Overtime.ListPending)
					r.Put("/{id}/status", h.Overtime.Decide)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/my", h.Leave.GetMyLeave)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/pending", h.Leave.ListPending)
					r.Put("/{id}/status", h.Leave.Decide)
				})
			})

			r.Route("/salary", func(r chi.Router) {
				r.Get("/my", h.Salary.GetMySalary)
				r.Get("/{id}", h.Salary.GetSalary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Post("/calculate", h.Salary.Calculate)
				})
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Post("/{id}/face", h.User.UploadFaceReference)
			})

			// Admin only
			r.Route("/divisions", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/settings", h.Policy.List)
				r.Get("/settings/{division}", h.Policy.Get)
				r.Post("/settings", h.Policy.Upsert)
				r.Put("/settings", h.Policy.Upsert)
			})

			// Admin only
			r.Route("/locations", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/", h.Location.List)
				r.Post("/", h.Location.Create)
				r.Get("/{id}", h.Location.Get)
				r.Put("/{id}", h.Location.Update)
				r.Delete("/{id}", h.Location.Delete)
			})

			// Admin only
			r.Route("/analysis", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/performance", h.Analysis.GetPerformanceReport)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/{id}/read", h.Notification.MarkAsRead)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
			})
		})
	})
	return r
}
