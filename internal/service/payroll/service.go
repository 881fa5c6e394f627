package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/config"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/audit"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/notification"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/requestmeta"
)

const dateLayout = "2006-01-02"

// perEmployeeTimeout bounds one employee's computation inside a bulk
// run so a single hang cannot stall the whole batch.
const perEmployeeTimeout = 10 * time.Second

type payrollService struct {
	tx               database.TxManager
	payrollRepo      payroll.PayrollRepository
	employeeRepo     employee.EmployeeRepository
	auditRepo        audit.AuditRepository
	notificationRepo notification.NotificationRepository
	calc             *ItemCalculator
	validator        *Validator
	cfg              config.PayrollConfig
}

func NewPayrollService(
	tx database.TxManager,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
	notificationRepo notification.NotificationRepository,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &payrollService{
		tx:               tx,
		payrollRepo:      payrollRepo,
		employeeRepo:     employeeRepo,
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
		calc:             NewItemCalculator(cfg.StandardWorkingDays),
		validator:        NewValidator(cfg.StandardWorkingDays),
		cfg:              cfg,
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

func (s *payrollService) writeAudit(ctx context.Context, entry audit.Entry) {
	meta := requestmeta.FromContext(ctx)
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent
	// Audit failure must not roll back the business write.
	_ = s.auditRepo.Insert(ctx, entry)
}

// ========== PERIODS ==========

func (s *payrollService) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	pay, _ := time.Parse(dateLayout, req.PayDate)

	if err := s.validator.ValidatePeriodDates(req.Year, req.Month, start, end, pay); err != nil {
		return payroll.PeriodResponse{}, err
	}

	overlapping, err := s.payrollRepo.CountOverlappingPeriods(ctx, start, end, "")
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if overlapping > 0 {
		return payroll.PeriodResponse{}, payroll.ErrPeriodOverlaps
	}

	period, err := s.payrollRepo.CreatePeriod(ctx, payroll.PayrollPeriod{
		Year:         req.Year,
		Month:        req.Month,
		PeriodNumber: req.PeriodNumber,
		StartDate:    start,
		EndDate:      end,
		PayDate:      pay,
		Status:       payroll.PeriodStatusDraft,
		CreatedBy:    userID,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	s.writeAudit(ctx, audit.Entry{
		UserID:    userID,
		Action:    audit.ActionPeriodCreated,
		TableName: "payroll_periods",
		RecordID:  period.ID,
		NewValues: map[string]interface{}{
			"year": period.Year, "month": period.Month, "period_number": period.PeriodNumber,
			"status": string(period.Status),
		},
	})

	return toPeriodResponse(period), nil
}

func (s *payrollService) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return toPeriodResponse(period), nil
}

func (s *payrollService) GetPeriodByDate(ctx context.Context, date time.Time) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByDate(ctx, date)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return toPeriodResponse(period), nil
}

func (s *payrollService) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) (payroll.ListPeriodsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	periods, total, err := s.payrollRepo.ListPeriods(ctx, filter)
	if err != nil {
		return payroll.ListPeriodsResponse{}, err
	}

	data := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		data = append(data, toPeriodResponse(p))
	}

	return payroll.ListPeriodsResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *payrollService) GetPeriodSummary(ctx context.Context, periodID string) (payroll.PeriodSummaryResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	summary, err := s.payrollRepo.GetPeriodSummary(ctx, periodID)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	return payroll.PeriodSummaryResponse{
		PeriodID:        summary.PeriodID,
		TotalEmployees:  summary.TotalEmployees,
		TotalBasicPay:   summary.TotalBasicPay,
		TotalAllowances: summary.TotalAllowances,
		TotalDeductions: summary.TotalDeductions,
		TotalGrossPay:   summary.TotalGrossPay,
		TotalNetPay:     summary.TotalNetPay,
		DraftCount:      summary.DraftCount,
		ComputedCount:   summary.ComputedCount,
		FinalizedCount:  summary.FinalizedCount,
		PaidCount:       summary.PaidCount,
	}, nil
}

// ========== LIFECYCLE ==========

func (s *payrollService) FinalizePeriod(ctx context.Context, periodID string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.payrollRepo.GetPeriodByIDForUpdate(ctx, periodID)
		if err != nil {
			return err
		}
		if !period.CanFinalize() {
			return payroll.ErrPeriodAlreadyFinal
		}

		items, err := s.payrollRepo.GetItemsByPeriod(ctx, periodID)
		if err != nil {
			return err
		}

		linesByItem := make(map[string][]payroll.PayrollItemLine, len(items))
		for _, item := range items {
			lines, err := s.payrollRepo.GetLines(ctx, item.ID)
			if err != nil {
				return err
			}
			linesByItem[item.ID] = lines
		}

		if issues := s.validator.FinalizeIssues(items, linesByItem); len(issues) > 0 {
			return &payroll.FinalizeBlockedError{Issues: issues}
		}

		if _, err := s.payrollRepo.UpdateItemStatusByPeriod(ctx, periodID, payroll.ItemStatusComputed, payroll.ItemStatusFinalized); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, periodID, period.Status, payroll.PeriodStatusCompleted); err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionPeriodFinalized,
			TableName: "payroll_periods",
			RecordID:  periodID,
			OldValues: map[string]interface{}{"status": string(period.Status)},
			NewValues: map[string]interface{}{"status": string(payroll.PeriodStatusCompleted)},
		})

		return s.notifyEmployees(ctx, items, notification.TypePayrollFinalized,
			"Payroll finalized",
			fmt.Sprintf("Your payroll for %d-%02d (period %d) has been finalized.", period.Year, period.Month, period.PeriodNumber))
	})
}

func (s *payrollService) MarkPeriodAsPaid(ctx context.Context, periodID string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.payrollRepo.GetPeriodByIDForUpdate(ctx, periodID)
		if err != nil {
			return err
		}
		if !period.CanMarkAsPaid() {
			return payroll.ErrPeriodNotCompleted
		}

		items, err := s.payrollRepo.GetItemsByPeriod(ctx, periodID)
		if err != nil {
			return err
		}

		if _, err := s.payrollRepo.UpdateItemStatusByPeriod(ctx, periodID, payroll.ItemStatusFinalized, payroll.ItemStatusPaid); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, periodID, payroll.PeriodStatusCompleted, payroll.PeriodStatusPaid); err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionPeriodPaid,
			TableName: "payroll_periods",
			RecordID:  periodID,
			OldValues: map[string]interface{}{"status": string(payroll.PeriodStatusCompleted)},
			NewValues: map[string]interface{}{"status": string(payroll.PeriodStatusPaid)},
		})

		return s.notifyEmployees(ctx, items, notification.TypePayrollPaid,
			"Payroll released",
			fmt.Sprintf("Your pay for %d-%02d (period %d) has been released.", period.Year, period.Month, period.PeriodNumber))
	})
}

func (s *payrollService) ReopenPeriod(ctx context.Context, periodID string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := s.payrollRepo.GetPeriodByIDForUpdate(ctx, periodID)
		if err != nil {
			return err
		}
		if !period.CanReopen() {
			return payroll.ErrPeriodNotCompleted
		}

		paidCount, err := s.payrollRepo.CountItemsByStatus(ctx, periodID, payroll.ItemStatusPaid)
		if err != nil {
			return err
		}
		if paidCount > 0 {
			return payroll.ErrPeriodHasPaidItems
		}

		if _, err := s.payrollRepo.UpdateItemStatusByPeriod(ctx, periodID, payroll.ItemStatusFinalized, payroll.ItemStatusComputed); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, periodID, payroll.PeriodStatusCompleted, payroll.PeriodStatusProcessing); err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionPeriodReopened,
			TableName: "payroll_periods",
			RecordID:  periodID,
			OldValues: map[string]interface{}{"status": string(payroll.PeriodStatusCompleted)},
			NewValues: map[string]interface{}{"status": string(payroll.PeriodStatusProcessing)},
		})

		return nil
	})
}

func (s *payrollService) notifyEmployees(ctx context.Context, items []payroll.PayrollItem, typ notification.Type, title, message string) error {
	if len(items) == 0 {
		return nil
	}

	notifications := make([]notification.Notification, 0, len(items))
	for _, item := range items {
		notifications = append(notifications, notification.Notification{
			EmployeeID: item.EmployeeID,
			Type:       typ,
			Title:      title,
			Message:    message,
			RelatedID:  item.ID,
		})
	}

	return s.notificationRepo.CreateBatch(ctx, notifications)
}

// ========== ITEMS ==========

func (s *payrollService) BulkProcess(ctx context.Context, periodID string, req payroll.BulkProcessRequest) (payroll.BulkProcessResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkProcessResult{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.BulkProcessResult{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.BulkProcessResult{}, err
	}
	if !period.CanEdit() {
		return payroll.BulkProcessResult{}, payroll.ErrPeriodNotEditable
	}

	components, err := s.payrollRepo.GetActiveComponents(ctx)
	if err != nil {
		return payroll.BulkProcessResult{}, err
	}

	// Each employee commits independently so one failure never voids
	// the rest of the run.
	var result payroll.BulkProcessResult
	for _, entry := range req.Employees {
		item, err := s.processOne(ctx, period, components, entry, userID)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, payroll.BulkProcessFailure{
				EmployeeID: entry.EmployeeID,
				Message:    err.Error(),
			})
			continue
		}
		result.ProcessedCount++
		result.Items = append(result.Items, toItemResponse(item))
	}

	if result.ProcessedCount > 0 && period.Status == payroll.PeriodStatusDraft {
		// Best effort: a concurrent transition away from draft is fine.
		_ = s.payrollRepo.UpdatePeriodStatus(ctx, periodID, payroll.PeriodStatusDraft, payroll.PeriodStatusProcessing)
	}

	return result, nil
}

func (s *payrollService) processOne(
	ctx context.Context,
	period payroll.PayrollPeriod,
	components []payroll.PayComponent,
	entry payroll.EmployeeWorkingDays,
	userID string,
) (payroll.PayrollItem, error) {
	ctx, cancel := context.WithTimeout(ctx, perEmployeeTimeout)
	defer cancel()

	var item payroll.PayrollItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.IsActive() {
			return employee.ErrEmployeeInactive
		}

		workingDays := s.cfg.StandardWorkingDays
		if entry.WorkingDays != nil {
			workingDays = *entry.WorkingDays
		}
		if err := s.validator.ValidateWorkingDays(workingDays, period.DaysInPeriod()); err != nil {
			return err
		}

		existing, err := s.payrollRepo.GetItemByPeriodEmployee(ctx, period.ID, entry.EmployeeID)
		var adjustments []payroll.PayrollItemLine
		switch {
		case err == nil:
			if !existing.CanEdit() {
				return payroll.ErrItemNotEditable
			}
			lines, err := s.payrollRepo.GetLines(ctx, existing.ID)
			if err != nil {
				return err
			}
			adjustments = AdjustmentLines(lines)
		case errors.Is(err, payroll.ErrItemNotFound):
			// First run for this employee in this period.
		default:
			return err
		}

		overrides, err := s.payrollRepo.GetOverridesForEmployee(ctx, entry.EmployeeID)
		if err != nil {
			return err
		}

		computed := s.calc.Compute(emp, components, overrides, period.StartDate, workingDays, adjustments)

		item, err = s.payrollRepo.UpsertItem(ctx, payroll.PayrollItem{
			PeriodID:        period.ID,
			EmployeeID:      entry.EmployeeID,
			WorkingDays:     computed.WorkingDays,
			DailyRate:       computed.DailyRate,
			BasicPay:        computed.BasicPay,
			TotalAllowances: computed.TotalAllowances,
			TotalDeductions: computed.TotalDeductions,
			GrossPay:        computed.GrossPay,
			NetPay:          computed.NetPay,
			Status:          payroll.ItemStatusComputed,
			ProcessedBy:     userID,
		})
		if err != nil {
			return err
		}

		if err := s.payrollRepo.ReplaceLines(ctx, item.ID, computed.Lines); err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionItemProcessed,
			TableName: "payroll_items",
			RecordID:  item.ID,
			NewValues: map[string]interface{}{
				"employee_id": entry.EmployeeID, "working_days": workingDays,
				"net_pay": computed.NetPay.String(),
			},
		})

		return nil
	})
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	return item, nil
}

func (s *payrollService) GetItem(ctx context.Context, itemID string) (payroll.ItemResponse, error) {
	item, err := s.payrollRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return payroll.ItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *payrollService) ListItems(ctx context.Context, periodID string) ([]payroll.ItemResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.GetItemsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses, nil
}

func (s *payrollService) Recalculate(ctx context.Context, itemID string) (payroll.ItemResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	var updated payroll.PayrollItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, period, err := s.editableItem(ctx, itemID)
		if err != nil {
			return err
		}

		updated, err = s.recomputeItem(ctx, period, item, item.WorkingDays, userID)
		return err
	})
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	return toItemResponse(updated), nil
}

func (s *payrollService) AdjustWorkingDays(ctx context.Context, itemID string, req payroll.AdjustWorkingDaysRequest) (payroll.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ItemResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	var updated payroll.PayrollItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, period, err := s.editableItem(ctx, itemID)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateWorkingDays(req.WorkingDays, period.DaysInPeriod()); err != nil {
			return err
		}

		oldDays := item.WorkingDays
		item.AdjustmentNote = &req.Reason

		updated, err = s.recomputeItem(ctx, period, item, req.WorkingDays, userID)
		if err != nil {
			return err
		}

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionWorkingDaysChanged,
			TableName: "payroll_items",
			RecordID:  itemID,
			OldValues: map[string]interface{}{"working_days": oldDays},
			NewValues: map[string]interface{}{"working_days": req.WorkingDays, "reason": req.Reason},
		})

		return nil
	})
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	return toItemResponse(updated), nil
}

func (s *payrollService) AddAdjustment(ctx context.Context, itemID string, req payroll.AddAdjustmentRequest) (payroll.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ItemResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	var updated payroll.PayrollItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, _, err := s.editableItem(ctx, itemID)
		if err != nil {
			return err
		}

		if _, err := s.payrollRepo.AppendLine(ctx, payroll.PayrollItemLine{
			ItemID:           itemID,
			LineType:         payroll.LineTypeAdjustment,
			Description:      req.Description,
			Amount:           req.Amount.Round(2),
			CalculationBasis: "manual",
		}); err != nil {
			return err
		}

		lines, err := s.payrollRepo.GetLines(ctx, itemID)
		if err != nil {
			return err
		}

		item.ApplyTotals(lines)
		if err := s.payrollRepo.UpdateItemTotals(ctx, item); err != nil {
			return err
		}
		updated = item

		s.writeAudit(ctx, audit.Entry{
			UserID:    userID,
			Action:    audit.ActionAdjustmentAdded,
			TableName: "payroll_items",
			RecordID:  itemID,
			NewValues: map[string]interface{}{
				"description": req.Description, "amount": req.Amount.String(),
			},
		})

		return nil
	})
	if err != nil {
		return payroll.ItemResponse{}, err
	}

	return toItemResponse(updated), nil
}

func (s *payrollService) GetPayslipBreakdown(ctx context.Context, itemID string) (payroll.PayslipBreakdown, error) {
	item, err := s.payrollRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return payroll.PayslipBreakdown{}, err
	}

	emp, err := s.employeeRepo.GetByIDIncludingDeleted(ctx, item.EmployeeID)
	if err != nil {
		return payroll.PayslipBreakdown{}, err
	}

	lines, err := s.payrollRepo.GetLines(ctx, itemID)
	if err != nil {
		return payroll.PayslipBreakdown{}, err
	}

	lineResponses := make([]payroll.LineResponse, 0, len(lines))
	for _, line := range lines {
		lineResponses = append(lineResponses, toLineResponse(line))
	}

	return payroll.PayslipBreakdown{
		Employee: payroll.PayslipEmployee{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName(),
		},
		Calculation: payroll.PayslipCalculation{
			WorkingDays:     item.WorkingDays,
			DailyRate:       item.DailyRate,
			BasicPay:        item.BasicPay,
			TotalAllowances: item.TotalAllowances,
			TotalDeductions: item.TotalDeductions,
			GrossPay:        item.GrossPay,
			NetPay:          item.NetPay,
		},
		LineItems: lineResponses,
	}, nil
}

// editableItem loads an item and its owning period, enforcing that both
// still accept changes.
func (s *payrollService) editableItem(ctx context.Context, itemID string) (payroll.PayrollItem, payroll.PayrollPeriod, error) {
	item, err := s.payrollRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return payroll.PayrollItem{}, payroll.PayrollPeriod{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, item.PeriodID)
	if err != nil {
		return payroll.PayrollItem{}, payroll.PayrollPeriod{}, err
	}

	if !period.CanEdit() {
		return payroll.PayrollItem{}, payroll.PayrollPeriod{}, payroll.ErrPeriodNotEditable
	}
	if !item.CanEdit() {
		return payroll.PayrollItem{}, payroll.PayrollPeriod{}, payroll.ErrItemNotEditable
	}

	return item, period, nil
}

// recomputeItem re-derives an item's lines and totals from current
// component, override and employee state. Manual adjustment lines are
// carried over.
func (s *payrollService) recomputeItem(ctx context.Context, period payroll.PayrollPeriod, item payroll.PayrollItem, workingDays int, userID string) (payroll.PayrollItem, error) {
	emp, err := s.employeeRepo.GetByID(ctx, item.EmployeeID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	components, err := s.payrollRepo.GetActiveComponents(ctx)
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	overrides, err := s.payrollRepo.GetOverridesForEmployee(ctx, item.EmployeeID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	lines, err := s.payrollRepo.GetLines(ctx, item.ID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	computed := s.calc.Compute(emp, components, overrides, period.StartDate, workingDays, AdjustmentLines(lines))

	item.WorkingDays = computed.WorkingDays
	item.DailyRate = computed.DailyRate
	item.BasicPay = computed.BasicPay
	item.TotalAllowances = computed.TotalAllowances
	item.TotalDeductions = computed.TotalDeductions
	item.GrossPay = computed.GrossPay
	item.NetPay = computed.NetPay
	item.ProcessedBy = userID

	if err := s.payrollRepo.ReplaceLines(ctx, item.ID, computed.Lines); err != nil {
		return payroll.PayrollItem{}, err
	}
	if err := s.payrollRepo.UpdateItemTotals(ctx, item); err != nil {
		return payroll.PayrollItem{}, err
	}

	return item, nil
}

// ========== COMPONENTS AND OVERRIDES ==========

func (s *payrollService) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	component := payroll.PayComponent{
		Code:      req.Code,
		Name:      req.Name,
		Kind:      payroll.ComponentKind(req.Kind),
		Method:    payroll.CalculationMethod(req.Method),
		Amount:    req.Amount,
		Frequency: req.Frequency,
		IsActive:  true,
	}
	if component.Frequency == "" {
		component.Frequency = "per_period"
	}
	if req.IsProrated != nil {
		component.IsProrated = *req.IsProrated
	}
	if req.IsTaxable != nil {
		component.IsTaxable = *req.IsTaxable
	}
	if req.IsMandatory != nil {
		component.IsMandatory = *req.IsMandatory
	}

	created, err := s.payrollRepo.CreateComponent(ctx, component)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return toComponentResponse(created), nil
}

func (s *payrollService) ListComponents(ctx context.Context) ([]payroll.ComponentResponse, error) {
	components, err := s.payrollRepo.GetActiveComponents(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, toComponentResponse(c))
	}
	return responses, nil
}

func (s *payrollService) UpdateComponent(ctx context.Context, req payroll.UpdateComponentRequest) error {
	if _, err := s.payrollRepo.GetComponentByID(ctx, req.ID); err != nil {
		return err
	}
	return s.payrollRepo.UpdateComponent(ctx, req)
}

func (s *payrollService) CreateOverride(ctx context.Context, req payroll.CreateOverrideRequest) (payroll.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.OverrideResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return payroll.OverrideResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.OverrideResponse{}, err
	}
	if _, err := s.payrollRepo.GetComponentByID(ctx, req.ComponentID); err != nil {
		return payroll.OverrideResponse{}, err
	}

	effective, _ := time.Parse(dateLayout, req.EffectiveDate)
	override := payroll.EmployeeOverride{
		EmployeeID:    req.EmployeeID,
		ComponentID:   req.ComponentID,
		Amount:        req.Amount,
		EffectiveDate: effective,
		CreatedBy:     userID,
	}
	if req.EndDate != nil {
		end, _ := time.Parse(dateLayout, *req.EndDate)
		override.EndDate = &end
	}

	created, err := s.payrollRepo.CreateOverride(ctx, override)
	if err != nil {
		return payroll.OverrideResponse{}, err
	}

	return toOverrideResponse(created), nil
}

func (s *payrollService) ListEmployeeOverrides(ctx context.Context, employeeID string) ([]payroll.OverrideResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	overrides, err := s.payrollRepo.GetOverridesForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		responses = append(responses, toOverrideResponse(o))
	}
	return responses, nil
}

func (s *payrollService) EndOverride(ctx context.Context, id string, endDate time.Time) error {
	return s.payrollRepo.EndOverride(ctx, id, endDate)
}

// ========== MAPPERS ==========

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:           p.ID,
		Year:         p.Year,
		Month:        p.Month,
		PeriodNumber: p.PeriodNumber,
		StartDate:    p.StartDate.Format(dateLayout),
		EndDate:      p.EndDate.Format(dateLayout),
		PayDate:      p.PayDate.Format(dateLayout),
		Status:       string(p.Status),
		CreatedBy:    p.CreatedBy,
	}
}

func toItemResponse(i payroll.PayrollItem) payroll.ItemResponse {
	resp := payroll.ItemResponse{
		ID:              i.ID,
		PeriodID:        i.PeriodID,
		EmployeeID:      i.EmployeeID,
		WorkingDays:     i.WorkingDays,
		DailyRate:       i.DailyRate,
		BasicPay:        i.BasicPay,
		TotalAllowances: i.TotalAllowances,
		TotalDeductions: i.TotalDeductions,
		GrossPay:        i.GrossPay,
		NetPay:          i.NetPay,
		Status:          string(i.Status),
		AdjustmentNote:  i.AdjustmentNote,
	}
	if i.EmployeeName != nil {
		resp.EmployeeName = *i.EmployeeName
	}
	if i.EmployeeCode != nil {
		resp.EmployeeCode = *i.EmployeeCode
	}
	return resp
}

func toLineResponse(l payroll.PayrollItemLine) payroll.LineResponse {
	return payroll.LineResponse{
		ID:               l.ID,
		LineType:         string(l.LineType),
		Description:      l.Description,
		Amount:           l.Amount,
		IsOverride:       l.IsOverride,
		CalculationBasis: l.CalculationBasis,
	}
}

func toComponentResponse(c payroll.PayComponent) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Kind:        string(c.Kind),
		Method:      string(c.Method),
		Amount:      c.Amount,
		Frequency:   c.Frequency,
		IsProrated:  c.IsProrated,
		IsTaxable:   c.IsTaxable,
		IsMandatory: c.IsMandatory,
		IsActive:    c.IsActive,
	}
}

func toOverrideResponse(o payroll.EmployeeOverride) payroll.OverrideResponse {
	resp := payroll.OverrideResponse{
		ID:            o.ID,
		EmployeeID:    o.EmployeeID,
		ComponentID:   o.ComponentID,
		Amount:        o.Amount,
		EffectiveDate: o.EffectiveDate.Format(dateLayout),
	}
	if o.ComponentCode != nil {
		resp.ComponentCode = *o.ComponentCode
	}
	if o.EndDate != nil {
		end := o.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}
