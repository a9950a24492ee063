package domain

import "time"

// User is a storefront account together with its coin-economy state.
// Coin counters are only ever mutated inside a row-locked transaction,
// see repository.UserRepository.UpdateAtomic.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`

	// Coin balance and lifetime counters
	Coins               int64 `db:"coins" json:"coins"`
	TotalCoinsEarned    int64 `db:"total_coins_earned" json:"total_coins_earned"`
	TotalCoinsSpent     int64 `db:"total_coins_spent" json:"total_coins_spent"`
	TotalCoinsPurchased int64 `db:"total_coins_purchased" json:"total_coins_purchased"`

	// Ad watching
	AdsWatchedToday int        `db:"ads_watched_today" json:"ads_watched_today"`
	MaxAdsPerDay    int        `db:"max_ads_per_day" json:"max_ads_per_day"`
	LastAdWatchDate *time.Time `db:"last_ad_watch_date" json:"last_ad_watch_date,omitempty"`

	// Daily rewards
	DailyRewardStreak    int        `db:"daily_reward_streak" json:"daily_reward_streak"`
	MaxDailyRewardStreak int        `db:"max_daily_reward_streak" json:"max_daily_reward_streak"`
	LastDailyRewardDate  *time.Time `db:"last_daily_reward_date" json:"last_daily_reward_date,omitempty"`

	// Referrals. ReferredBy is a plain foreign key to another user,
	// set at most once and never to the user itself.
	ReferralCode          string `db:"referral_code" json:"referral_code"`
	ReferredBy            *int64 `db:"referred_by" json:"referred_by,omitempty"`
	ReferralCount         int    `db:"referral_count" json:"referral_count"`
	ReferralRewardsEarned int64  `db:"referral_rewards_earned" json:"referral_rewards_earned"`

	// VIP flag is a read-only input for the reward engine; expiry is
	// enforced by account management, not here.
	IsVIP         bool       `db:"is_vip" json:"is_vip"`
	VIPExpiryDate *time.Time `db:"vip_expiry_date" json:"vip_expiry_date,omitempty"`

	AccountStatus  string     `db:"account_status" json:"account_status"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	LastActivityAt *time.Time `db:"last_activity_at" json:"last_activity_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusBanned    = "banned"
)
