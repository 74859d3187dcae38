package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/internal/settlement"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/utils"
	"github.com/GlebRadaev/investledger/pkg/validate"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin

type InvestmentService interface {
	ConfirmPayment(ctx context.Context, id int, decision domain.PaymentDecision) (*domain.Investment, error)
	SetStatus(ctx context.Context, id int, status string) (*domain.Investment, error)
	UpdatePlan(name string, patch plans.Patch) (*plans.Table, error)
}

type WithdrawalService interface {
	Decide(ctx context.Context, id int, d domain.WithdrawalDecision) (*domain.Withdrawal, error)
}

type JobRunner interface {
	RunJob(ctx context.Context, job string) (settlement.Result, error)
}

type AdminHandler struct {
	investments InvestmentService
	withdrawals WithdrawalService
	jobs        JobRunner
}

func New(investments InvestmentService, withdrawals WithdrawalService, jobs JobRunner) *AdminHandler {
	return &AdminHandler{
		investments: investments,
		withdrawals: withdrawals,
		jobs:        jobs,
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// ConfirmPayment godoc
//
//	@Summary		Confirm or reject an investment payment
//	@Description	Confirming activates the investment and posts the referral commission. Rejecting marks the payment rejected and leaves the investment pending.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Investment ID"
//	@Param			request	body		dto.PaymentDecisionRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.InvestmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid id or body"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		404		{object}	utils.Response	"Investment not found"
//	@Failure		409		{object}	utils.Response	"Payment already decided"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Router			/api/admin/investments/{id}/payment [put]
func (h *AdminHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.PaymentDecisionRequestDTO
	if !decode(w, r, &req) {
		return
	}

	inv, err := h.investments.ConfirmPayment(r.Context(), id, domain.PaymentDecision{Status: req.Status, Reason: req.Reason})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewInvestmentResponse(inv))
}

// SetInvestmentStatus godoc
//
//	@Summary		Complete or cancel an investment
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Investment ID"
//	@Param			request	body		dto.InvestmentStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.InvestmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid id or body"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		404		{object}	utils.Response	"Investment not found"
//	@Failure		409		{object}	utils.Response	"Transition not allowed"
//	@Router			/api/admin/investments/{id}/status [put]
func (h *AdminHandler) SetInvestmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.InvestmentStatusRequestDTO
	if !decode(w, r, &req) {
		return
	}

	inv, err := h.investments.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewInvestmentResponse(inv))
}

// DecideWithdrawal godoc
//
//	@Summary		Decide a withdrawal
//	@Description	Approve, reject, complete or mark paid. A rejection restores the reserved amount.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Withdrawal ID"
//	@Param			request	body		dto.WithdrawalDecisionRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid id or body"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		404		{object}	utils.Response	"Withdrawal not found"
//	@Failure		409		{object}	utils.Response	"Withdrawal already processed"
//	@Router			/api/admin/withdrawals/{id} [put]
func (h *AdminHandler) DecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	adminID := r.Context().Value(auth.UserIDKey).(int)

	id, err := utils.IDParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.WithdrawalDecisionRequestDTO
	if !decode(w, r, &req) {
		return
	}

	withdrawal, err := h.withdrawals.Decide(r.Context(), id, domain.WithdrawalDecision{
		Status:        req.Status,
		ProcessedBy:   adminID,
		TransactionID: req.TransactionID,
		Reason:        req.Reason,
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalResponse(withdrawal))
}

// UpdatePlan godoc
//
//	@Summary		Change one plan
//	@Description	Publishes a new plan table version. Existing investments keep the terms they were created with.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Plan name"
//	@Param			request	body		dto.PlanPatchRequestDTO	true	"Fields to change"
//	@Success		200		{object}	dto.PlansResponseDTO
//	@Failure		400		{object}	utils.Response	"Resulting table is invalid"
//	@Failure		403		{object}	utils.Response	"Admin only"
//	@Failure		404		{object}	utils.Response	"Unknown plan"
//	@Router			/api/admin/plans/{name} [put]
func (h *AdminHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req dto.PlanPatchRequestDTO
	if !decode(w, r, &req) {
		return
	}

	table, err := h.investments.UpdatePlan(name, req.Patch())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PlansResponseDTO{
		Version:        table.Version,
		Plans:          table.Plans(),
		PaymentMethods: domain.PaymentMethods,
	})
}

// RunJob godoc
//
//	@Summary		Run a settlement job now
//	@Description	Runs accrual, release or completion outside the schedule. Shares the lock with scheduled runs.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			job	path		string	true	"Job name"	Enums(accrual, release, completion)
//	@Success		200	{object}	settlement.Result
//	@Failure		403	{object}	utils.Response	"Admin only"
//	@Failure		404	{object}	utils.Response	"Unknown job"
//	@Failure		409	{object}	utils.Response	"Job already running"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/jobs/{job} [post]
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	job := chi.URLParam(r, "job")

	result, err := h.jobs.RunJob(r.Context(), job)
	switch {
	case errors.Is(err, settlement.ErrUnknownJob):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, settlement.ErrJobRunning):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case err != nil:
		zap.L().Error("manual job run failed", zap.String("job", job), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	default:
		utils.RespondWithJSON(w, http.StatusOK, result)
	}
}
