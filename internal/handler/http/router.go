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
	"github.com/lgu-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(env string, JWTService jwt.Service, payrollHandler PayrollHandler, benefitHandler BenefitHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lgu-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
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
	r.Use(middleware.RequestInfo)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {

				r.Route("/periods", func(r chi.Router) {
					r.Post("/", payrollHandler.CreatePeriod)
					r.Get("/", payrollHandler.ListPeriods)
					r.Get("/by-date", payrollHandler.GetPeriodByDate)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPeriod)
						r.Get("/summary", payrollHandler.GetPeriodSummary)
						r.Get("/items", payrollHandler.ListItems)
						r.Post("/bulk-process", payrollHandler.BulkProcess)
						r.Post("/finalize", payrollHandler.FinalizePeriod)
						r.Post("/pay", payrollHandler.MarkPeriodAsPaid)
						r.Post("/reopen", payrollHandler.ReopenPeriod)
					})
				})

				r.Route("/items/{itemID}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetItem)
					r.Get("/payslip", payrollHandler.GetPayslipBreakdown)
					r.Post("/recalculate", payrollHandler.Recalculate)
					r.Put("/working-days", payrollHandler.AdjustWorkingDays)
					r.Post("/adjustments", payrollHandler.AddAdjustment)
				})

				r.Route("/components", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateComponent)
					r.Get("/", payrollHandler.ListComponents)
					r.Put("/{id}", payrollHandler.UpdateComponent)
				})

				r.Route("/overrides", func(r chi.Router) {
					r.Put("/{id}/end", payrollHandler.EndOverride)
				})

				r.Route("/employees/{employeeID}/overrides", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateOverride)
					r.Get("/", payrollHandler.ListEmployeeOverrides)
				})
			})

			r.Route("/benefits", func(r chi.Router) {
				r.Post("/compute", benefitHandler.Compute)
				r.Post("/batch-compute", benefitHandler.BatchCompute)
				r.Post("/grant", benefitHandler.Grant)
				r.Get("/employees/{employeeID}", benefitHandler.ListEmployeeBenefits)
				r.Get("/types/{benefitType}", benefitHandler.ListBenefitsByTypeYear)

				r.Route("/terminal-leave", func(r chi.Router) {
					r.Post("/", benefitHandler.ComputeTLB)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", benefitHandler.GetTLB)
						r.Post("/approve", benefitHandler.ApproveTLB)
						r.Post("/pay", benefitHandler.PayTLB)
						r.Post("/cancel", benefitHandler.CancelTLB)
					})
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/balances/initialize", leaveHandler.InitializeYearlyBalances)
				r.Get("/balances/employees/{employeeID}", leaveHandler.GetBalances)
				r.Post("/accrual", leaveHandler.ProcessMonthlyAccrual)
			})
		})
	})
	return r
}
