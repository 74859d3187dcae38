package referrals

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/dto"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/utils"
)

//go:generate mockgen -source=referrals.go -destination=mock_referrals.go -package=referrals

type Service interface {
	GetCommissions(ctx context.Context, referrerID int) ([]domain.ReferralCommission, error)
	Tree(ctx context.Context, rootID, depth int) ([]domain.ReferralNode, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// GetTree godoc
//
//	@Summary		Referral tree
//	@Description	Users referred directly or transitively, breadth first. depth is capped by the server.
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			depth	query		int	false	"Levels to walk"
//	@Success		200		{array}		dto.ReferralNodeDTO
//	@Failure		400		{object}	utils.Response	"Invalid depth"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/referrals [get]
func (h *ReferralHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	depth := 0
	if raw := r.URL.Query().Get("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid depth")
			return
		}
		depth = d
	}

	nodes, err := h.referralService.Tree(r.Context(), userID, depth)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.ReferralNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		response = append(response, dto.ReferralNodeDTO{
			UserID:     n.UserID,
			Login:      n.Login,
			ReferredBy: n.ReferredBy,
			Level:      n.Level,
			JoinedAt:   n.JoinedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetCommissions godoc
//
//	@Summary		Referral commissions earned
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.CommissionDTO
//	@Success		204	{object}	utils.Response	"No commissions"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/referrals/commissions [get]
func (h *ReferralHandler) GetCommissions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	commissions, err := h.referralService.GetCommissions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(commissions) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.CommissionDTO, len(commissions))
	for i, c := range commissions {
		response[i] = dto.CommissionDTO{
			ID:               c.ID,
			RefereeID:        c.RefereeID,
			InvestmentID:     c.InvestmentID,
			Amount:           c.Amount,
			PercentageEarned: c.PercentageEarned,
			Status:           c.Status,
			CreatedAt:        c.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
