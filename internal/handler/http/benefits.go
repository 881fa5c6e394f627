package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/handler/http/response"
)

type BenefitHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	BatchCompute(w http.ResponseWriter, r *http.Request)
	Grant(w http.ResponseWriter, r *http.Request)
	ListEmployeeBenefits(w http.ResponseWriter, r *http.Request)
	ListBenefitsByTypeYear(w http.ResponseWriter, r *http.Request)

	ComputeTLB(w http.ResponseWriter, r *http.Request)
	GetTLB(w http.ResponseWriter, r *http.Request)
	ApproveTLB(w http.ResponseWriter, r *http.Request)
	PayTLB(w http.ResponseWriter, r *http.Request)
	CancelTLB(w http.ResponseWriter, r *http.Request)
}

type benefitHandlerImpl struct {
	benefitService benefits.BenefitService
}

func NewBenefitHandler(benefitService benefits.BenefitService) BenefitHandler {
	return &benefitHandlerImpl{benefitService: benefitService}
}

func (h *benefitHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req benefits.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.benefitService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) BatchCompute(w http.ResponseWriter, r *http.Request) {
	var req benefits.BatchComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.benefitService.BatchCompute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req benefits.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.benefitService.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Benefit granted", result)
}

func (h *benefitHandlerImpl) ListEmployeeBenefits(w http.ResponseWriter, r *http.Request) {
	result, err := h.benefitService.ListEmployeeBenefits(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) ListBenefitsByTypeYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be numeric", nil)
		return
	}

	result, err := h.benefitService.ListBenefitsByTypeYear(r.Context(), chi.URLParam(r, "benefitType"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== TERMINAL LEAVE ==========

func (h *benefitHandlerImpl) ComputeTLB(w http.ResponseWriter, r *http.Request) {
	var req benefits.ComputeTLBRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.benefitService.ComputeTLB(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Terminal leave benefit computed", result)
}

func (h *benefitHandlerImpl) GetTLB(w http.ResponseWriter, r *http.Request) {
	result, err := h.benefitService.GetTLB(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) ApproveTLB(w http.ResponseWriter, r *http.Request) {
	h.transitionTLB(w, r, benefits.TLBStatusApproved, "Terminal leave claim approved")
}

func (h *benefitHandlerImpl) PayTLB(w http.ResponseWriter, r *http.Request) {
	h.transitionTLB(w, r, benefits.TLBStatusPaid, "Terminal leave claim paid")
}

func (h *benefitHandlerImpl) CancelTLB(w http.ResponseWriter, r *http.Request) {
	h.transitionTLB(w, r, benefits.TLBStatusCancelled, "Terminal leave claim cancelled")
}

func (h *benefitHandlerImpl) transitionTLB(w http.ResponseWriter, r *http.Request, to benefits.TLBStatus, message string) {
	result, err := h.benefitService.TransitionTLB(r.Context(), chi.URLParam(r, "id"), to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
