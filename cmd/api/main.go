package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/config"
	appHTTP "github.com/lgu-hris/payroll-backend-go/internal/handler/http"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/lgu-hris/payroll-backend-go/internal/repository/postgresql"
	benefitService "github.com/lgu-hris/payroll-backend-go/internal/service/benefits"
	leaveService "github.com/lgu-hris/payroll-backend-go/internal/service/leave"
	payrollService "github.com/lgu-hris/payroll-backend-go/internal/service/payroll"

	"log/slog"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "lgu-payroll"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	benefitRepo := postgresql.NewBenefitRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, auditRepo, notificationRepo, cfg.Payroll)
	benefitSvc := benefitService.NewBenefitService(db, benefitRepo, leaveRepo, employeeRepo, auditRepo, cfg.Payroll)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, auditRepo, logger)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	benefitHandler := appHTTP.NewBenefitHandler(benefitSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("monthly-leave-accrual", 24*time.Hour, func(ctx context.Context) error {
		now := time.Now()
		// The sweep posts credits on the first day of each month.
		if now.Day() != 1 {
			return nil
		}
		summary, err := leaveSvc.RunMonthlyAccrualForActive(ctx, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}
		logger.Info("monthly accrual sweep finished",
			"year", summary.Year,
			"month", summary.Month,
			"processed", summary.Processed,
			"skipped", summary.Skipped,
		)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App.Env, JWTService, payrollHandler, benefitHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
