package reward

import (
	"time"

	"github.com/fikadugetaye72/fruit/internal/domain"
)

// SameDay reports whether both timestamps fall on the same UTC calendar
// date. The gate is a calendar boundary, not a 24h window: 23:59 and 00:01
// the next minute are different days, 03:00 and 23:00 of one date are the
// same day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ResetAdCountIfNewDay zeroes the per-day ad counter when the last watch
// was not today.
func ResetAdCountIfNewDay(u *domain.User, now time.Time) {
	if u.LastAdWatchDate == nil || !SameDay(*u.LastAdWatchDate, now) {
		u.AdsWatchedToday = 0
	}
}

// CanWatchAd reports whether the per-day ad cap still has room. Callers
// must run ResetAdCountIfNewDay first.
func CanWatchAd(u *domain.User) bool {
	return u.AdsWatchedToday < u.MaxAdsPerDay
}

// CanClaimDaily reports whether the daily reward has not been claimed today.
func CanClaimDaily(u *domain.User, now time.Time) bool {
	return u.LastDailyRewardDate == nil || !SameDay(*u.LastDailyRewardDate, now)
}
