package authservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/pkg/auth"
	"github.com/GlebRadaev/investledger/pkg/validate"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

const (
	tokenTTL          = 15 * time.Minute
	codeGenerateTries = 5
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type AccountCreator interface {
	CreateAccount(ctx context.Context, userID int) (*domain.Account, error)
}

type Service struct {
	userRepo    Repo
	accounts    AccountCreator
	tx          pg.TXManager
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	newCode     func() string
}

func New(repo Repo, accounts AccountCreator, tx pg.TXManager, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		accounts:    accounts,
		tx:          tx,
		hashService: hashService,
		jwtService:  jwtService,
		newCode:     validate.ReferralCode,
	}
}

func (s *Service) resolveReferrer(ctx context.Context, code string) (*int, error) {
	if code == "" {
		return nil, nil
	}
	if !validate.IsLuhn(code) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidReferralCode, code)
	}
	referrer, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidReferralCode, code)
	}
	return &referrer.ID, nil
}

func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenerateTries; i++ {
		code := s.newCode()
		owner, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if owner == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free referral code after %d tries", codeGenerateTries)
}

// Register creates the user together with an empty account. referralCode is
// optional; when given it must belong to an existing user.
func (s *Service) Register(ctx context.Context, login, password, referralCode string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("login", login))
		return nil, domain.ErrLoginTaken
	}

	referredBy, err := s.resolveReferrer(ctx, referralCode)
	if err != nil {
		zap.L().Info("referral code rejected", zap.String("code", referralCode), zap.Error(err))
		return nil, err
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	var user *domain.User
	err = s.tx.Begin(ctx, func(ctx context.Context) error {
		code, err := s.uniqueCode(ctx)
		if err != nil {
			return err
		}
		user, err = s.userRepo.Create(ctx, &domain.User{
			Login:        login,
			PasswordHash: hashedPassword,
			ReferralCode: code,
			ReferredBy:   referredBy,
		})
		if err != nil {
			return err
		}
		_, err = s.accounts.CreateAccount(ctx, user.ID)
		return err
	})
	if err != nil {
		zap.L().Error("can't register user", zap.String("login", login), zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Info("invalid credentials", zap.String("login", login), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("login", login))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, user.IsAdmin, time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}
