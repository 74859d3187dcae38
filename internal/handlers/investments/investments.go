package investments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/utils"
	"github.com/GlebRadaev/investledger/pkg/validate"
)

//go:generate mockgen -source=investments.go -destination=mock_investments.go -package=investments

type Service interface {
	CreateInvestment(ctx context.Context, userID int, amount decimal.Decimal, paymentMethod string) (*domain.Investment, error)
	GetInvestment(ctx context.Context, userID, id int) (*domain.Investment, error)
	GetUserInvestments(ctx context.Context, userID int) ([]domain.Investment, error)
	Plans() *plans.Table
}

type InvestmentHandler struct {
	investmentService Service
}

func New(investmentService Service) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// GetPlans godoc
//
//	@Summary		List investment plans
//	@Description	The plan table currently in force and the accepted payment methods.
//	@Tags			Investments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.PlansResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/plans [get]
func (h *InvestmentHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	table := h.investmentService.Plans()
	utils.RespondWithJSON(w, http.StatusOK, dto.PlansResponseDTO{
		Version:        table.Version,
		Plans:          table.Plans(),
		PaymentMethods: domain.PaymentMethods,
	})
}

// CreateInvestment godoc
//
//	@Summary		Create an investment
//	@Description	Records a deposit against the plan whose amount range holds the amount. It stays pending until an admin confirms the payment.
//	@Tags			Investments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateInvestmentRequestDTO	true	"Investment request"
//	@Success		201		{object}	dto.InvestmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Amount outside every plan or unknown payment method"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments [post]
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateInvestmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	inv, err := h.investmentService.CreateInvestment(r.Context(), userID, req.Amount, req.PaymentMethod)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewInvestmentResponse(inv))
}

// GetInvestments godoc
//
//	@Summary		List user investments
//	@Tags			Investments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.InvestmentResponseDTO
//	@Success		204	{object}	utils.Response	"No investments"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments [get]
func (h *InvestmentHandler) GetInvestments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	investments, err := h.investmentService.GetUserInvestments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(investments) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.InvestmentResponseDTO, len(investments))
	for i := range investments {
		response[i] = dto.NewInvestmentResponse(&investments[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetInvestment godoc
//
//	@Summary		Get one investment
//	@Tags			Investments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Investment ID"
//	@Success		200	{object}	dto.InvestmentResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Investment not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := utils.IDParam(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.investmentService.GetInvestment(r.Context(), userID, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewInvestmentResponse(inv))
}
