package withdrawals

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/utils"
	"github.com/GlebRadaev/investledger/pkg/validate"
)

//go:generate mockgen -source=withdrawals.go -destination=mock_withdrawals.go -package=withdrawals

type Service interface {
	RequestWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.Withdrawal, error)
	Cancel(ctx context.Context, userID, id int) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	GetStats(ctx context.Context, userID int) ([]domain.WithdrawalStat, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// RequestWithdrawal godoc
//
//	@Summary		Request a withdrawal
//	@Description	Reserves the amount from the balances the withdrawal type allows. Combined requests draw on the withdrawable balance first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Withdrawal request"
//	@Success		201		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Below the method minimum"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(r.Context(), domain.WithdrawalRequest{
		UserID:      userID,
		Amount:      req.Amount,
		Method:      req.Method,
		Type:        domain.WithdrawalType(req.Type),
		Destination: req.Destination,
		Notes:       req.Notes,
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewWithdrawalResponse(withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		List user withdrawals
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Success		204	{object}	utils.Response	"No withdrawals"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i := range withdrawals {
		response[i] = dto.NewWithdrawalResponse(&withdrawals[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetStats godoc
//
//	@Summary		Withdrawal totals by status
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalStatDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals/stats [get]
func (h *WithdrawalHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	stats, err := h.withdrawalService.GetStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.WithdrawalStatDTO, 0, len(stats))
	for _, s := range stats {
		response = append(response, dto.WithdrawalStatDTO{Status: s.Status, Count: s.Count, Total: s.Total})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CancelWithdrawal godoc
//
//	@Summary		Cancel a pending withdrawal
//	@Description	Gives the reserved amount back to the balances it was taken from.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Withdrawal ID"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found"
//	@Failure		409	{object}	utils.Response	"Withdrawal already processed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals/{id}/cancel [post]
func (h *WithdrawalHandler) CancelWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := utils.IDParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.Cancel(r.Context(), userID, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalResponse(withdrawal))
}
