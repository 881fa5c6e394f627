package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/lgu-hris/payroll-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	InitializeYearlyBalances(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	ProcessMonthlyAccrual(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) InitializeYearlyBalances(w http.ResponseWriter, r *http.Request) {
	var req leave.InitializeBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.InitializeYearlyBalances(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balances initialized", result)
}

func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be numeric", nil)
		return
	}

	result, err := h.leaveService.GetBalances(r.Context(), chi.URLParam(r, "employeeID"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ProcessMonthlyAccrual(w http.ResponseWriter, r *http.Request) {
	var req leave.AccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.ProcessMonthlyAccrual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
