package referralservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=referralservice.go -destination=mock_referralservice.go -package=referralservice

type Repo interface {
	CreateCommission(ctx context.Context, c *domain.ReferralCommission) (bool, error)
	FindByReferrer(ctx context.Context, referrerID int) ([]domain.ReferralCommission, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindReferees(ctx context.Context, referrerIDs []int) ([]domain.User, error)
}

type Service struct {
	repo     Repo
	users    UserRepo
	ledger   ledgerservice.Ledger
	tx       pg.TXManager
	percent  decimal.Decimal
	maxDepth int
}

func New(repo Repo, users UserRepo, ledger ledgerservice.Ledger, tx pg.TXManager, percent decimal.Decimal, maxDepth int) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		ledger:   ledger,
		tx:       tx,
		percent:  percent,
		maxDepth: maxDepth,
	}
}

// PostCommission rewards the referrer of the investment owner. It returns
// nil when there is nothing to pay or the commission was already posted.
// The record and the four credits commit together.
func (s *Service) PostCommission(ctx context.Context, inv *domain.Investment) (*domain.ReferralCommission, error) {
	referee, err := s.users.FindByID(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}
	if referee == nil {
		return nil, fmt.Errorf("user %d: %w", inv.UserID, domain.ErrNotFound)
	}
	if referee.ReferredBy == nil {
		return nil, nil
	}

	amount := domain.Commission(inv.Amount, s.percent)
	if !amount.IsPositive() {
		return nil, nil
	}

	commission := &domain.ReferralCommission{
		ReferrerID:       *referee.ReferredBy,
		RefereeID:        referee.ID,
		InvestmentID:     inv.ID,
		Amount:           amount,
		PercentageEarned: s.percent,
		Status:           domain.CommissionPaid,
	}
	var created bool
	err = s.tx.Begin(ctx, func(ctx context.Context) error {
		created, err = s.repo.CreateCommission(ctx, commission)
		if err != nil || !created {
			return err
		}
		_, err = s.ledger.Apply(ctx, commission.ReferrerID,
			domain.Credit(domain.FieldReferralEarnings, amount),
			domain.Credit(domain.FieldReferralBalance, amount),
			domain.Credit(domain.FieldWithdrawableBalance, amount),
			domain.Credit(domain.FieldTotalEarned, amount),
		)
		return err
	})
	if err != nil {
		zap.L().Error("failed to post referral commission",
			zap.Int("investmentID", inv.ID),
			zap.Int("referrerID", commission.ReferrerID),
			zap.Error(err))
		return nil, err
	}
	if !created {
		zap.L().Info("referral commission already posted", zap.Int("investmentID", inv.ID))
		return nil, nil
	}
	return commission, nil
}

func (s *Service) GetCommissions(ctx context.Context, referrerID int) ([]domain.ReferralCommission, error) {
	commissions, err := s.repo.FindByReferrer(ctx, referrerID)
	if err != nil {
		zap.L().Error("failed to get commissions", zap.Int("userID", referrerID), zap.Error(err))
		return nil, err
	}
	return commissions, nil
}

// Tree walks the referral graph below rootID breadth first, at most depth
// levels deep. A non-positive or too large depth is clamped to the
// configured maximum.
func (s *Service) Tree(ctx context.Context, rootID, depth int) ([]domain.ReferralNode, error) {
	if depth <= 0 || depth > s.maxDepth {
		depth = s.maxDepth
	}

	visited := map[int]struct{}{rootID: {}}
	frontier := []int{rootID}
	nodes := make([]domain.ReferralNode, 0)

	for level := 1; level <= depth && len(frontier) > 0; level++ {
		referees, err := s.users.FindReferees(ctx, frontier)
		if err != nil {
			zap.L().Error("failed to load referees", zap.Int("userID", rootID), zap.Int("level", level), zap.Error(err))
			return nil, err
		}

		next := make([]int, 0, len(referees))
		for _, u := range referees {
			if _, seen := visited[u.ID]; seen {
				continue
			}
			visited[u.ID] = struct{}{}
			node := domain.ReferralNode{
				UserID:   u.ID,
				Login:    u.Login,
				Level:    level,
				JoinedAt: u.CreatedAt,
			}
			if u.ReferredBy != nil {
				node.ReferredBy = *u.ReferredBy
			}
			nodes = append(nodes, node)
			next = append(next, u.ID)
		}
		frontier = next
	}
	return nodes, nil
}
