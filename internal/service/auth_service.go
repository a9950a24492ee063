package service

import (
	"context"
	"errors"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/logger"
	"github.com/fikadugetaye72/fruit/internal/repository"
	"github.com/fikadugetaye72/fruit/internal/reward"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
)

const bcryptCost = 12

// UserStore is the account storage the auth flows run against.
// *repository.UserRepository is the pgx implementation.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	TouchLogin(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AuthService handles registration, login and password changes.
type AuthService struct {
	users        UserStore
	rewards      *RewardService
	maxAdsPerDay int
}

func NewAuthService(users UserStore, rewards *RewardService, maxAdsPerDay int) *AuthService {
	if maxAdsPerDay <= 0 {
		maxAdsPerDay = reward.DefaultMaxAdsPerDay
	}
	return &AuthService{users: users, rewards: rewards, maxAdsPerDay: maxAdsPerDay}
}

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	ReferralCode string
}

// Register creates the account and returns it with a fresh token. A supplied
// referral code is applied best-effort: an invalid or unusable code does not
// fail the registration, the linkage is simply skipped.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	u := &domain.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		ReferralCode:  repository.GenerateReferralCode(),
		AccountStatus: domain.StatusActive,
		MaxAdsPerDay:  s.maxAdsPerDay,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	if in.ReferralCode != "" {
		if err := s.rewards.ApplyReferralCode(ctx, u.ID, in.ReferralCode); err != nil {
			logger.Warn("signup referral not applied", "user_id", u.ID, "error", err)
		}
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if u.AccountStatus != domain.StatusActive {
		return nil, "", ErrAccountInactive
	}

	if err := s.users.TouchLogin(ctx, u.ID); err != nil {
		logger.Warn("failed to update last login", "user_id", u.ID, "error", err)
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}
