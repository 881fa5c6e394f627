package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/audit"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/notification"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// passthroughTx satisfies database.TxManager without a live pool.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemEmployeeRepo(employees ...employee.Employee) *memEmployeeRepo {
	r := &memEmployeeRepo{employees: map[string]employee.Employee{}}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memEmployeeRepo) GetByIDIncludingDeleted(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memEmployeeRepo) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok && e.DeletedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

type memAuditRepo struct {
	entries []audit.Entry
}

func (r *memAuditRepo) Insert(_ context.Context, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

type memNotificationRepo struct {
	notifications []notification.Notification
}

func (r *memNotificationRepo) CreateBatch(_ context.Context, notifications []notification.Notification) error {
	r.notifications = append(r.notifications, notifications...)
	return nil
}

// memPayrollRepo is a full in-memory PayrollRepository.
type memPayrollRepo struct {
	seq        int
	periods    map[string]payroll.PayrollPeriod
	items      map[string]payroll.PayrollItem
	lines      map[string][]payroll.PayrollItemLine
	components map[string]payroll.PayComponent
	overrides  map[string]payroll.EmployeeOverride
}

func newMemPayrollRepo() *memPayrollRepo {
	return &memPayrollRepo{
		periods:    map[string]payroll.PayrollPeriod{},
		items:      map[string]payroll.PayrollItem{},
		lines:      map[string][]payroll.PayrollItemLine{},
		components: map[string]payroll.PayComponent{},
		overrides:  map[string]payroll.EmployeeOverride{},
	}
}

func (r *memPayrollRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *memPayrollRepo) CreatePeriod(_ context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	for _, p := range r.periods {
		if p.Year == period.Year && p.Month == period.Month && p.PeriodNumber == period.PeriodNumber &&
			(p.Status == payroll.PeriodStatusDraft || p.Status == payroll.PeriodStatusProcessing) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
	}
	period.ID = r.nextID("per")
	r.periods[period.ID] = period
	return period, nil
}

func (r *memPayrollRepo) GetPeriodByID(_ context.Context, id string) (payroll.PayrollPeriod, error) {
	p, ok := r.periods[id]
	if !ok {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (r *memPayrollRepo) GetPeriodByIDForUpdate(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	return r.GetPeriodByID(ctx, id)
}

func (r *memPayrollRepo) GetOpenPeriodByKey(_ context.Context, year, month, periodNumber int) (payroll.PayrollPeriod, error) {
	for _, p := range r.periods {
		if p.Year == year && p.Month == month && p.PeriodNumber == periodNumber && p.CanEdit() {
			return p, nil
		}
	}
	return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
}

func (r *memPayrollRepo) GetPeriodByDate(_ context.Context, date time.Time) (payroll.PayrollPeriod, error) {
	for _, p := range r.periods {
		if !date.Before(p.StartDate) && !date.After(p.EndDate) {
			return p, nil
		}
	}
	return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
}

func (r *memPayrollRepo) ListPeriods(_ context.Context, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	var out []payroll.PayrollPeriod
	for _, p := range r.periods {
		if filter.Year != nil && p.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memPayrollRepo) CountOverlappingPeriods(_ context.Context, start, end time.Time, excludeID string) (int, error) {
	count := 0
	for _, p := range r.periods {
		if p.ID == excludeID {
			continue
		}
		if !start.After(p.EndDate) && !end.Before(p.StartDate) {
			count++
		}
	}
	return count, nil
}

func (r *memPayrollRepo) UpdatePeriodStatus(_ context.Context, id string, from, to payroll.PeriodStatus) error {
	p, ok := r.periods[id]
	if !ok || p.Status != from {
		return payroll.ErrPeriodNotEditable
	}
	p.Status = to
	r.periods[id] = p
	return nil
}

func (r *memPayrollRepo) GetPeriodSummary(_ context.Context, periodID string) (payroll.PeriodSummary, error) {
	summary := payroll.PeriodSummary{
		PeriodID:        periodID,
		TotalBasicPay:   decimal.Zero,
		TotalAllowances: decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalGrossPay:   decimal.Zero,
		TotalNetPay:     decimal.Zero,
	}
	for _, item := range r.items {
		if item.PeriodID != periodID {
			continue
		}
		summary.TotalEmployees++
		summary.TotalBasicPay = summary.TotalBasicPay.Add(item.BasicPay)
		summary.TotalAllowances = summary.TotalAllowances.Add(item.TotalAllowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(item.TotalDeductions)
		summary.TotalGrossPay = summary.TotalGrossPay.Add(item.GrossPay)
		summary.TotalNetPay = summary.TotalNetPay.Add(item.NetPay)
		switch item.Status {
		case payroll.ItemStatusDraft:
			summary.DraftCount++
		case payroll.ItemStatusComputed:
			summary.ComputedCount++
		case payroll.ItemStatusFinalized:
			summary.FinalizedCount++
		case payroll.ItemStatusPaid:
			summary.PaidCount++
		}
	}
	return summary, nil
}

func (r *memPayrollRepo) UpsertItem(_ context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	for id, existing := range r.items {
		if existing.PeriodID == item.PeriodID && existing.EmployeeID == item.EmployeeID {
			item.ID = id
			r.items[id] = item
			return item, nil
		}
	}
	item.ID = r.nextID("item")
	r.items[item.ID] = item
	return item, nil
}

func (r *memPayrollRepo) GetItemByID(_ context.Context, id string) (payroll.PayrollItem, error) {
	item, ok := r.items[id]
	if !ok {
		return payroll.PayrollItem{}, payroll.ErrItemNotFound
	}
	return item, nil
}

func (r *memPayrollRepo) GetItemByPeriodEmployee(_ context.Context, periodID, employeeID string) (payroll.PayrollItem, error) {
	for _, item := range r.items {
		if item.PeriodID == periodID && item.EmployeeID == employeeID {
			return item, nil
		}
	}
	return payroll.PayrollItem{}, payroll.ErrItemNotFound
}

func (r *memPayrollRepo) GetItemsByPeriod(_ context.Context, periodID string) ([]payroll.PayrollItem, error) {
	var out []payroll.PayrollItem
	for _, item := range r.items {
		if item.PeriodID == periodID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) UpdateItemTotals(_ context.Context, item payroll.PayrollItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return payroll.ErrItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *memPayrollRepo) UpdateItemStatusByPeriod(_ context.Context, periodID string, from, to payroll.ItemStatus) (int64, error) {
	var n int64
	for id, item := range r.items {
		if item.PeriodID == periodID && item.Status == from {
			item.Status = to
			r.items[id] = item
			n++
		}
	}
	return n, nil
}

func (r *memPayrollRepo) CountItemsByStatus(_ context.Context, periodID string, status payroll.ItemStatus) (int, error) {
	count := 0
	for _, item := range r.items {
		if item.PeriodID == periodID && item.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memPayrollRepo) ReplaceLines(_ context.Context, itemID string, lines []payroll.PayrollItemLine) error {
	stored := make([]payroll.PayrollItemLine, 0, len(lines))
	for _, line := range lines {
		line.ID = r.nextID("line")
		line.ItemID = itemID
		stored = append(stored, line)
	}
	r.lines[itemID] = stored
	return nil
}

func (r *memPayrollRepo) AppendLine(_ context.Context, line payroll.PayrollItemLine) (payroll.PayrollItemLine, error) {
	line.ID = r.nextID("line")
	r.lines[line.ItemID] = append(r.lines[line.ItemID], line)
	return line, nil
}

func (r *memPayrollRepo) GetLines(_ context.Context, itemID string) ([]payroll.PayrollItemLine, error) {
	return r.lines[itemID], nil
}

func (r *memPayrollRepo) CreateComponent(_ context.Context, component payroll.PayComponent) (payroll.PayComponent, error) {
	for _, c := range r.components {
		if c.Code == component.Code {
			return payroll.PayComponent{}, payroll.ErrComponentCodeExists
		}
	}
	component.ID = r.nextID("comp")
	r.components[component.ID] = component
	return component, nil
}

func (r *memPayrollRepo) GetComponentByID(_ context.Context, id string) (payroll.PayComponent, error) {
	c, ok := r.components[id]
	if !ok {
		return payroll.PayComponent{}, payroll.ErrComponentNotFound
	}
	return c, nil
}

func (r *memPayrollRepo) GetActiveComponents(_ context.Context) ([]payroll.PayComponent, error) {
	var out []payroll.PayComponent
	for _, c := range r.components {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) UpdateComponent(_ context.Context, req payroll.UpdateComponentRequest) error {
	c, ok := r.components[req.ID]
	if !ok {
		return payroll.ErrComponentNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	r.components[req.ID] = c
	return nil
}

func (r *memPayrollRepo) CreateOverride(_ context.Context, override payroll.EmployeeOverride) (payroll.EmployeeOverride, error) {
	override.ID = r.nextID("ovr")
	r.overrides[override.ID] = override
	return override, nil
}

func (r *memPayrollRepo) GetOverridesForEmployee(_ context.Context, employeeID string) ([]payroll.EmployeeOverride, error) {
	var out []payroll.EmployeeOverride
	for _, o := range r.overrides {
		if o.EmployeeID == employeeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) EndOverride(_ context.Context, id string, endDate time.Time) error {
	o, ok := r.overrides[id]
	if !ok {
		return payroll.ErrOverrideNotFound
	}
	o.EndDate = &endDate
	r.overrides[id] = o
	return nil
}
