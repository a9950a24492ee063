package service

import (
	"context"
	"errors"
	"time"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/repository"
	"github.com/fikadugetaye72/fruit/internal/reward"
)

// Store is the storage contract the reward engine runs against. UpdateAtomic
// and ApplyReferral must serialize concurrent calls on the same account so a
// mutation function always sees the latest committed state; the pgx
// implementation does this with row locks.
type Store interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)
	UpdateAtomic(ctx context.Context, id int64, fn func(*domain.User) (*domain.Transaction, error)) (*domain.User, error)
	ApplyReferral(ctx context.Context, referrerID, referredID int64, fn func(referrer, referred *domain.User) ([]*domain.Transaction, error)) error
}

// RewardService orchestrates the coin economy: ad rewards, daily claims,
// spending and referral linkage. Every operation is a single atomic
// read-modify-write against the store.
type RewardService struct {
	store       Store
	maxAdReward int64
	now         func() time.Time
}

func NewRewardService(store Store, maxAdReward int64) *RewardService {
	return &RewardService{
		store:       store,
		maxAdReward: maxAdReward,
		now:         time.Now,
	}
}

type WatchAdResult struct {
	CoinsEarned     int64 `json:"coinsEarned"`
	NewBalance      int64 `json:"newBalance"`
	AdsWatchedToday int   `json:"adsWatchedToday"`
	MaxAdsPerDay    int   `json:"maxAdsPerDay"`
}

type DailyRewardResult struct {
	Reward     int64 `json:"reward"`
	NewBalance int64 `json:"newBalance"`
	Streak     int   `json:"streak"`
	MaxStreak  int   `json:"maxStreak"`
}

type SpendResult struct {
	CoinsSpent int64 `json:"coinsSpent"`
	NewBalance int64 `json:"newBalance"`
}

// WatchAd credits one ad view. The requested reward is honored when positive
// but clamped to the configured cap; the then-current day's watch counter
// gates the grant.
func (s *RewardService) WatchAd(ctx context.Context, userID int64, requested int64, adType string) (*WatchAdResult, error) {
	var res WatchAdResult
	_, err := s.store.UpdateAtomic(ctx, userID, func(u *domain.User) (*domain.Transaction, error) {
		now := s.now().UTC()
		reward.ResetAdCountIfNewDay(u, now)
		if !reward.CanWatchAd(u) {
			return nil, reward.ErrDailyLimitReached
		}

		coins := reward.AdReward(requested)
		if s.maxAdReward > 0 && coins > s.maxAdReward {
			coins = s.maxAdReward
		}
		if err := reward.Earn(u, coins); err != nil {
			return nil, err
		}
		u.AdsWatchedToday++
		u.LastAdWatchDate = &now
		u.LastActivityAt = &now

		res = WatchAdResult{
			CoinsEarned:     coins,
			NewBalance:      u.Coins,
			AdsWatchedToday: u.AdsWatchedToday,
			MaxAdsPerDay:    u.MaxAdsPerDay,
		}

		meta := map[string]interface{}{}
		if adType != "" {
			meta["ad_type"] = adType
		}
		return &domain.Transaction{UserID: userID, Type: domain.TxAdReward, Amount: coins, Meta: meta}, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ClaimDailyReward grants the once-per-day reward. The amount is computed
// from the streak before it is incremented.
func (s *RewardService) ClaimDailyReward(ctx context.Context, userID int64) (*DailyRewardResult, error) {
	var res DailyRewardResult
	_, err := s.store.UpdateAtomic(ctx, userID, func(u *domain.User) (*domain.Transaction, error) {
		now := s.now().UTC()
		if !reward.CanClaimDaily(u, now) {
			return nil, reward.ErrAlreadyClaimedToday
		}

		amount := reward.DailyReward(u.DailyRewardStreak, u.IsVIP)
		if err := reward.Earn(u, amount); err != nil {
			return nil, err
		}
		u.DailyRewardStreak++
		if u.DailyRewardStreak > u.MaxDailyRewardStreak {
			u.MaxDailyRewardStreak = u.DailyRewardStreak
		}
		u.LastDailyRewardDate = &now
		u.LastActivityAt = &now

		res = DailyRewardResult{
			Reward:     amount,
			NewBalance: u.Coins,
			Streak:     u.DailyRewardStreak,
			MaxStreak:  u.MaxDailyRewardStreak,
		}
		return &domain.Transaction{
			UserID: userID,
			Type:   domain.TxDailyReward,
			Amount: amount,
			Meta:   map[string]interface{}{"streak": u.DailyRewardStreak},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SpendCoins debits the balance for a purchase or redemption.
func (s *RewardService) SpendCoins(ctx context.Context, userID int64, amount int64, itemID, reason string) (*SpendResult, error) {
	var res SpendResult
	_, err := s.store.UpdateAtomic(ctx, userID, func(u *domain.User) (*domain.Transaction, error) {
		if err := reward.Spend(u, amount); err != nil {
			return nil, err
		}
		now := s.now().UTC()
		u.LastActivityAt = &now

		res = SpendResult{CoinsSpent: amount, NewBalance: u.Coins}

		meta := map[string]interface{}{}
		if itemID != "" {
			meta["item_id"] = itemID
		}
		if reason != "" {
			meta["reason"] = reason
		}
		return &domain.Transaction{UserID: userID, Type: domain.TxSpend, Amount: -amount, Meta: meta}, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ApplyReferralCode links the account to the owner of code and pays both
// sides. The linkage is permanent and applied exactly once; the recheck of
// ReferredBy under the lock closes the race between two concurrent applies.
func (s *RewardService) ApplyReferralCode(ctx context.Context, userID int64, code string) error {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ReferredBy != nil {
		return reward.ErrReferralAlreadyUsed
	}

	referrer, err := s.store.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return reward.ErrInvalidReferralCode
		}
		return err
	}
	if referrer.ID == userID {
		return reward.ErrSelfReferral
	}

	return s.store.ApplyReferral(ctx, referrer.ID, userID, func(ref, red *domain.User) ([]*domain.Transaction, error) {
		if red.ReferredBy != nil {
			return nil, reward.ErrReferralAlreadyUsed
		}

		if err := reward.Earn(ref, reward.ReferrerBonus); err != nil {
			return nil, err
		}
		ref.ReferralCount++
		ref.ReferralRewardsEarned += reward.ReferrerBonus

		if err := reward.Earn(red, reward.ReferredBonus); err != nil {
			return nil, err
		}
		red.ReferredBy = &ref.ID

		now := s.now().UTC()
		ref.LastActivityAt = &now
		red.LastActivityAt = &now

		return []*domain.Transaction{
			{UserID: ref.ID, Type: domain.TxReferralBonus, Amount: reward.ReferrerBonus,
				Meta: map[string]interface{}{"referred_id": red.ID}},
			{UserID: red.ID, Type: domain.TxReferralWelcome, Amount: reward.ReferredBonus,
				Meta: map[string]interface{}{"referrer_id": ref.ID}},
		}, nil
	})
}
