package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/middleware"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Status     StatusHandler
	Leave      LeaveHandler
	Trip       TripHandler
	SickLeave  SickLeaveHandler
	Attendance AttendanceHandler
	Overtime   OvertimeHandler
	Master     MasterHandler
	Queue      QueueHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presenze-backend"),
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}/status", h.Status.GetDay)
				r.Get("/{id}/status/range", h.Status.GetRange)
				r.Get("/{id}/status/summary", h.Status.GetMonthlySummary)
				r.Get("/{id}/sick-leaves", h.SickLeave.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Master.ListEmployees)
					r.Post("/", h.Master.CreateEmployee)
					r.Get("/{id}", h.Master.GetEmployee)
					r.Put("/{id}", h.Master.UpdateEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", h.Attendance.Edit)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Post("/validate", h.Leave.ValidateRequest)
				r.Get("/my", h.Leave.ListMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/leave-balances", func(r chi.Router) {
				r.Get("/my", h.Leave.GetMyBalance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Leave.ProvisionBalance)
				})
			})

			r.Route("/business-trips", func(r chi.Router) {
				r.Post("/", h.Trip.Create)
				r.Get("/my", h.Trip.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Trip.Approve)
					r.Post("/{id}/reject", h.Trip.Reject)
				})
			})

			r.Route("/sick-leaves", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.SickLeave.Create)
				r.Delete("/{id}", h.SickLeave.Delete)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", h.Overtime.Create)
				r.Get("/my", h.Overtime.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Overtime.Approve)
					r.Post("/{id}/reject", h.Overtime.Reject)
					r.Delete("/{id}", h.Overtime.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Master.CreateSchedule)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Master.ListHolidays)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateHoliday)
					r.Delete("/{id}", h.Master.DeleteHoliday)
				})
			})

			r.Route("/queue", func(r chi.Router) {
				r.Post("/operations", h.Queue.Enqueue)
				r.Get("/operations", h.Queue.Pending)
				r.Post("/drain", h.Queue.TriggerDrain)
				r.Post("/connectivity", h.Queue.Connectivity)
			})
		})
	})

	return r
}
