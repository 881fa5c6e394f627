package benefits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/config"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/audit"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/requestmeta"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type benefitService struct {
	tx           database.TxManager
	benefitRepo  benefits.BenefitRepository
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
	registry     *Registry
	cfg          config.PayrollConfig
}

func NewBenefitService(
	tx database.TxManager,
	benefitRepo benefits.BenefitRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
	cfg config.PayrollConfig,
) benefits.BenefitService {
	return &benefitService{
		tx:           tx,
		benefitRepo:  benefitRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		registry:     NewRegistry(benefitRepo, leaveRepo, cfg),
		cfg:          cfg,
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

func (s *benefitService) writeAudit(ctx context.Context, entry audit.Entry) {
	meta := requestmeta.FromContext(ctx)
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent
	_ = s.auditRepo.Insert(ctx, entry)
}

// ========== COMPUTE / GRANT ==========

func (s *benefitService) Compute(ctx context.Context, req benefits.ComputeRequest) (benefits.ComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return benefits.ComputeResponse{}, err
	}

	calc, ok := s.registry.Get(req.BenefitType)
	if !ok {
		return benefits.ComputeResponse{}, benefits.ErrUnknownBenefitType
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return benefits.ComputeResponse{}, err
	}

	computation, err := calc.Compute(ctx, emp, req.Year)
	if err != nil {
		return benefits.ComputeResponse{}, err
	}

	return benefits.ComputeResponse{
		EmployeeID:  req.EmployeeID,
		BenefitType: req.BenefitType,
		Year:        req.Year,
		Computation: computation,
	}, nil
}

func (s *benefitService) BatchCompute(ctx context.Context, req benefits.BatchComputeRequest) (benefits.BatchComputeResult, error) {
	if err := req.Validate(); err != nil {
		return benefits.BatchComputeResult{}, err
	}

	calc, ok := s.registry.Get(req.BenefitType)
	if !ok {
		return benefits.BatchComputeResult{}, benefits.ErrUnknownBenefitType
	}

	var employees []employee.Employee
	var err error
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		return benefits.BatchComputeResult{}, err
	}

	// One bad employee record must not sink the batch.
	var result benefits.BatchComputeResult
	for _, emp := range employees {
		computation, err := calc.Compute(ctx, emp, req.Year)
		if err != nil {
			result.Failures = append(result.Failures, benefits.BatchComputeFailure{
				EmployeeID: emp.ID,
				Message:    err.Error(),
			})
			continue
		}
		result.Computed = append(result.Computed, benefits.ComputeResponse{
			EmployeeID:  emp.ID,
			BenefitType: req.BenefitType,
			Year:        req.Year,
			Computation: computation,
		})
	}

	return result, nil
}

func (s *benefitService) Grant(ctx context.Context, req benefits.GrantRequest) (benefits.BenefitResponse, error) {
	if err := req.Validate(); err != nil {
		return benefits.BenefitResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return benefits.BenefitResponse{}, err
	}

	calc, ok := s.registry.Get(req.BenefitType)
	if !ok {
		return benefits.BenefitResponse{}, benefits.ErrUnknownBenefitType
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return benefits.BenefitResponse{}, err
	}

	// Pre-check for a friendlier error; the unique index still guards
	// against a concurrent grant.
	_, err = s.benefitRepo.GetBenefit(ctx, req.EmployeeID, req.BenefitType, req.Year)
	switch {
	case err == nil:
		return benefits.BenefitResponse{}, benefits.ErrBenefitAlreadyGranted
	case errors.Is(err, benefits.ErrBenefitNotFound):
	default:
		return benefits.BenefitResponse{}, err
	}

	var granted benefits.CompensationBenefit
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		computation, err := calc.Compute(ctx, emp, req.Year)
		if err != nil {
			return err
		}
		if !computation.Eligibility.Eligible {
			return validator.ValidationErrors{{Field: "benefit_type", Message: computation.Eligibility.Reason}}
		}

		// Monetization pays out of the leave ledger; the debit and the
		// benefit record must land together.
		if req.BenefitType == benefits.CodeLeaveMonetization {
			if err := s.debitMonetizedLeave(ctx, emp, req.Year); err != nil {
				return err
			}
		}

		now := time.Now()
		granted, err = s.benefitRepo.CreateBenefit(ctx, benefits.CompensationBenefit{
			EmployeeID:  req.EmployeeID,
			BenefitType: req.BenefitType,
			Amount:      computation.Amount,
			Year:        req.Year,
			DatePaid:    &now,
			Notes:       req.Notes,
			ProcessedBy: userID,
		})
		if err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionBenefitGranted,
			TableName: "compensation_benefits",
			RecordID:  granted.ID,
			NewValues: map[string]interface{}{
				"employee_id": req.EmployeeID, "benefit_type": req.BenefitType,
				"year": req.Year, "amount": computation.Amount.String(),
			},
		})

		return nil
	})
	if err != nil {
		return benefits.BenefitResponse{}, err
	}

	return toBenefitResponse(granted), nil
}

func (s *benefitService) debitMonetizedLeave(ctx context.Context, emp employee.Employee, year int) error {
	balances, err := s.leaveRepo.GetBalancesByEmployeeYear(ctx, emp.ID, year)
	if err != nil {
		return err
	}

	dailyRate := emp.EffectiveDailyRate(s.cfg.StandardWorkingDays)
	plan := buildMonetizationPlan(balances, dailyRate, s.cfg.MonetizableDaysCap)
	for _, debit := range plan.Debits {
		if err := s.leaveRepo.DebitForMonetization(ctx, debit.BalanceID, debit.Days); err != nil {
			return err
		}
	}
	return nil
}

func (s *benefitService) ListEmployeeBenefits(ctx context.Context, employeeID string) ([]benefits.BenefitResponse, error) {
	if _, err := s.employeeRepo.GetByIDIncludingDeleted(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.benefitRepo.ListBenefitsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]benefits.BenefitResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toBenefitResponse(r))
	}
	return responses, nil
}

func (s *benefitService) ListBenefitsByTypeYear(ctx context.Context, benefitType string, year int) ([]benefits.BenefitResponse, error) {
	records, err := s.benefitRepo.ListBenefitsByTypeYear(ctx, benefitType, year)
	if err != nil {
		return nil, err
	}

	responses := make([]benefits.BenefitResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toBenefitResponse(r))
	}
	return responses, nil
}

// ========== TERMINAL LEAVE ==========

func (s *benefitService) ComputeTLB(ctx context.Context, req benefits.ComputeTLBRequest) (benefits.TLBResponse, error) {
	if err := req.Validate(); err != nil {
		return benefits.TLBResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	// Claimants are separated by definition; soft-deleted records still
	// qualify.
	emp, err := s.employeeRepo.GetByIDIncludingDeleted(ctx, req.EmployeeID)
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	_, err = s.benefitRepo.GetLiveTLBByEmployee(ctx, req.EmployeeID)
	switch {
	case err == nil:
		return benefits.TLBResponse{}, benefits.ErrTLBAlreadyComputed
	case errors.Is(err, benefits.ErrTLBNotFound):
	default:
		return benefits.TLBResponse{}, err
	}

	claimDate, _ := time.Parse(dateLayout, req.ClaimDate)
	separationDate, _ := time.Parse(dateLayout, req.SeparationDate)

	balances, err := s.leaveRepo.GetBalancesByEmployeeYear(ctx, req.EmployeeID, separationDate.Year())
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	totalCredits := decimal.Zero
	for _, b := range balances {
		totalCredits = totalCredits.Add(b.CurrentBalance)
	}

	highestSalary := emp.EffectiveMonthlySalary(s.cfg.StandardWorkingDays)
	amount := benefits.ComputeTerminalLeaveAmount(totalCredits, highestSalary, s.cfg.TerminalLeaveFactor)

	var claim benefits.TerminalLeaveBenefit
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		claim, err = s.benefitRepo.CreateTLB(ctx, benefits.TerminalLeaveBenefit{
			EmployeeID:           req.EmployeeID,
			TotalLeaveCredits:    totalCredits,
			HighestMonthlySalary: highestSalary,
			ConstantFactor:       s.cfg.TerminalLeaveFactor,
			ClaimDate:            claimDate,
			SeparationDate:       separationDate,
			ComputedAmount:       amount,
			Status:               benefits.TLBStatusComputed,
			CreatedBy:            userID,
		})
		if err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionTLBComputed,
			TableName: "terminal_leave_benefits",
			RecordID:  claim.ID,
			NewValues: map[string]interface{}{
				"employee_id": req.EmployeeID, "total_leave_credits": totalCredits.String(),
				"computed_amount": amount.String(),
			},
		})

		return nil
	})
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	return toTLBResponse(claim), nil
}

func (s *benefitService) GetTLB(ctx context.Context, id string) (benefits.TLBResponse, error) {
	claim, err := s.benefitRepo.GetTLBByID(ctx, id)
	if err != nil {
		return benefits.TLBResponse{}, err
	}
	return toTLBResponse(claim), nil
}

func (s *benefitService) TransitionTLB(ctx context.Context, id string, to benefits.TLBStatus) (benefits.TLBResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	var claim benefits.TerminalLeaveBenefit
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		claim, err = s.benefitRepo.GetTLBByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !claim.CanTransition(to) {
			return benefits.ErrTLBInvalidTransition
		}

		if err := s.benefitRepo.UpdateTLBStatus(ctx, id, claim.Status, to); err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionTLBStatusChanged,
			TableName: "terminal_leave_benefits",
			RecordID:  id,
			OldValues: map[string]interface{}{"status": string(claim.Status)},
			NewValues: map[string]interface{}{"status": string(to)},
		})

		claim.Status = to
		return nil
	})
	if err != nil {
		return benefits.TLBResponse{}, err
	}

	return toTLBResponse(claim), nil
}

// ========== MAPPERS ==========

func toBenefitResponse(b benefits.CompensationBenefit) benefits.BenefitResponse {
	resp := benefits.BenefitResponse{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		BenefitType: b.BenefitType,
		Amount:      b.Amount,
		Year:        b.Year,
		Notes:       b.Notes,
		ProcessedBy: b.ProcessedBy,
	}
	if b.EmployeeName != nil {
		resp.EmployeeName = *b.EmployeeName
	}
	if b.DatePaid != nil {
		paid := b.DatePaid.Format(dateLayout)
		resp.DatePaid = &paid
	}
	return resp
}

func toTLBResponse(t benefits.TerminalLeaveBenefit) benefits.TLBResponse {
	return benefits.TLBResponse{
		ID:                   t.ID,
		EmployeeID:           t.EmployeeID,
		TotalLeaveCredits:    t.TotalLeaveCredits,
		HighestMonthlySalary: t.HighestMonthlySalary,
		ConstantFactor:       t.ConstantFactor,
		ClaimDate:            t.ClaimDate.Format(dateLayout),
		SeparationDate:       t.SeparationDate.Format(dateLayout),
		ComputedAmount:       t.ComputedAmount,
		Status:               string(t.Status),
	}
}
