// Package reward holds the pure coin-economy rules: reward amounts, balance
// arithmetic and the once-per-day gates. Nothing here touches storage; the
// service layer runs these against a row-locked copy of the user.
package reward

import "github.com/fikadugetaye72/fruit/internal/domain"

const (
	// DefaultAdReward is granted when the client does not name a reward.
	DefaultAdReward = 5

	// Daily reward formula: base plus a bonus step for every full week of
	// streak, times 1.5 for VIP accounts (floored).
	DailyBaseReward   = 10
	StreakBonusStep   = 7
	StreakBonusAmount = 5

	// Referral payouts, credited exactly once per linkage.
	ReferrerBonus = 100
	ReferredBonus = 50

	// DefaultMaxAdsPerDay applies when no per-account cap is configured.
	DefaultMaxAdsPerDay = 10
)

// AdReward returns the coins for one watched ad. A non-positive requested
// amount falls back to the default.
func AdReward(requested int64) int64 {
	if requested > 0 {
		return requested
	}
	return DefaultAdReward
}

// DailyReward computes the daily claim amount from the streak value before
// it is incremented.
func DailyReward(streakBefore int, isVIP bool) int64 {
	amount := int64(DailyBaseReward + (streakBefore/StreakBonusStep)*StreakBonusAmount)
	if isVIP {
		// floor(amount * 1.5) in integer arithmetic
		amount = amount * 3 / 2
	}
	return amount
}

// Earn credits amount to the balance and the lifetime earned counter.
func Earn(u *domain.User, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	u.Coins += amount
	u.TotalCoinsEarned += amount
	return nil
}

// Spend debits amount from the balance. The balance never goes negative.
func Spend(u *domain.User, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if u.Coins < amount {
		return ErrInsufficientBalance
	}
	u.Coins -= amount
	u.TotalCoinsSpent += amount
	return nil
}
