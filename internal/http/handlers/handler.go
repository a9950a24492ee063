package handlers

import (
	"context"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/repository"
	"github.com/fikadugetaye72/fruit/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds tunables handed down from the app config.
type HandlerConfig struct {
	MaxAdReward  int64
	MaxAdsPerDay int
}

// UserDirectory is the slice of user storage the HTTP layer reads directly.
// *repository.UserRepository is the pgx implementation.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error
	GetReferredUsers(ctx context.Context, referrerID int64) ([]repository.ReferredUser, error)
}

type Handler struct {
	DB      *pgxpool.Pool
	Users   UserDirectory
	Txs     *repository.TransactionRepository
	Rewards *service.RewardService
	Auth    *service.AuthService
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	users := repository.NewUserRepository(db)
	rewards := service.NewRewardService(users, cfg.MaxAdReward)
	return &Handler{
		DB:      db,
		Users:   users,
		Txs:     repository.NewTransactionRepository(db),
		Rewards: rewards,
		Auth:    service.NewAuthService(users, rewards, cfg.MaxAdsPerDay),
	}
}

// getUserID pulls the authenticated user id from the gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
