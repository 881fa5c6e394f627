package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/audit"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/requestmeta"
	"github.com/shopspring/decimal"
)

type leaveService struct {
	tx           database.TxManager
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
	logger       *slog.Logger
}

func NewLeaveService(
	tx database.TxManager,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
	logger *slog.Logger,
) leave.LeaveService {
	return &leaveService{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim not found in token")
	}

	return userID, nil
}

func (s *leaveService) writeAudit(ctx context.Context, entry audit.Entry) {
	meta := requestmeta.FromContext(ctx)
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent
	_ = s.auditRepo.Insert(ctx, entry)
}

func (s *leaveService) InitializeYearlyBalances(ctx context.Context, req leave.InitializeBalancesRequest) ([]leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	leaveTypes, err := s.leaveRepo.GetActiveLeaveTypes(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.leaveRepo.GetBalancesByEmployeeYear(ctx, req.EmployeeID, req.Year)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, leave.ErrBalancesExist
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, lt := range leaveTypes {
			// Unused credits from the previous year roll into the new
			// opening balance.
			carryForward := decimal.Zero
			if prev, err := s.leaveRepo.GetBalance(ctx, req.EmployeeID, lt.ID, req.Year-1); err == nil {
				carryForward = prev.CurrentBalance
			} else if !errors.Is(err, leave.ErrBalanceNotFound) {
				return err
			}

			opening := leave.SeedBalance(carryForward, lt.MonthlyAccrual, req.Year, emp.AppointmentDate)

			if _, err := s.leaveRepo.CreateBalance(ctx, leave.LeaveBalance{
				EmployeeID:     req.EmployeeID,
				LeaveTypeID:    lt.ID,
				Year:           req.Year,
				CurrentBalance: opening,
			}); err != nil {
				return err
			}
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionBalancesSeeded,
			TableName: "leave_balances",
			RecordID:  req.EmployeeID,
			NewValues: map[string]interface{}{"year": req.Year, "leave_types": len(leaveTypes)},
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBalances(ctx, req.EmployeeID, req.Year)
}

func (s *leaveService) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	if _, err := s.employeeRepo.GetByIDIncludingDeleted(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.leaveRepo.GetBalancesByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}
	return responses, nil
}

func (s *leaveService) ProcessMonthlyAccrual(ctx context.Context, req leave.AccrualRequest) (leave.AccrualResult, error) {
	if err := req.Validate(); err != nil {
		return leave.AccrualResult{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.AccrualResult{}, err
	}

	return s.accrueOne(ctx, req.EmployeeID, req.Year)
}

// accrueOne posts one month of accrual to every initialized balance of
// the employee. An uninitialized year is a business outcome, not an
// error: scheduled runs must keep going.
func (s *leaveService) accrueOne(ctx context.Context, employeeID string, year int) (leave.AccrualResult, error) {
	balances, err := s.leaveRepo.GetBalancesByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return leave.AccrualResult{}, err
	}
	if len(balances) == 0 {
		return leave.AccrualResult{
			Processed: false,
			Message:   fmt.Sprintf("leave balances for %d are not initialized", year),
		}, nil
	}

	var updated int
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, b := range balances {
			if b.MonthlyAccrual == nil || b.MonthlyAccrual.IsZero() {
				continue
			}
			if err := s.leaveRepo.AddToBalance(ctx, b.ID, *b.MonthlyAccrual); err != nil {
				return err
			}
			updated++
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    "system",
			Action:    audit.ActionAccrualPosted,
			TableName: "leave_balances",
			RecordID:  employeeID,
			NewValues: map[string]interface{}{"year": year, "updated_types": updated},
		})

		return nil
	})
	if err != nil {
		return leave.AccrualResult{}, err
	}

	return leave.AccrualResult{Processed: true, UpdatedTypes: updated}, nil
}

func (s *leaveService) RunMonthlyAccrualForActive(ctx context.Context, year, month int) (leave.AccrualRunSummary, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return leave.AccrualRunSummary{}, err
	}

	summary := leave.AccrualRunSummary{Year: year, Month: month}
	for _, emp := range employees {
		result, err := s.accrueOne(ctx, emp.ID, year)
		if err != nil {
			summary.Skipped++
			s.logger.Error("accrual failed for employee",
				slog.String("employee_id", emp.ID), slog.Any("error", err))
			continue
		}
		if !result.Processed {
			summary.Skipped++
			continue
		}
		summary.Processed++
	}

	s.logger.Info("monthly leave accrual completed",
		slog.Int("year", year), slog.Int("month", month),
		slog.Int("processed", summary.Processed), slog.Int("skipped", summary.Skipped))

	return summary, nil
}

func toBalanceResponse(b leave.LeaveBalance) leave.BalanceResponse {
	resp := leave.BalanceResponse{
		ID:             b.ID,
		EmployeeID:     b.EmployeeID,
		LeaveTypeID:    b.LeaveTypeID,
		Year:           b.Year,
		CurrentBalance: b.CurrentBalance,
		MonetizedDays:  b.MonetizedDays,
	}
	if b.LeaveTypeCode != nil {
		resp.LeaveTypeCode = *b.LeaveTypeCode
	}
	if b.LeaveTypeName != nil {
		resp.LeaveTypeName = *b.LeaveTypeName
	}
	if b.IsMonetizable != nil {
		resp.IsMonetizable = *b.IsMonetizable
	}
	return resp
}
