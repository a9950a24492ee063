package reward

import (
	"testing"
	"time"

	"github.com/fikadugetaye72/fruit/internal/domain"

	"github.com/stretchr/testify/assert"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSameDay(t *testing.T) {
	// calendar boundary, not elapsed time
	assert.False(t, SameDay(ts("2025-03-01T23:59:00Z"), ts("2025-03-02T00:01:00Z")))
	assert.True(t, SameDay(ts("2025-03-01T03:00:00Z"), ts("2025-03-01T23:00:00Z")))

	// comparison happens in UTC regardless of the input zone
	assert.True(t, SameDay(ts("2025-03-02T01:00:00+02:00"), ts("2025-03-01T23:30:00Z")))
}

func TestResetAdCountIfNewDay(t *testing.T) {
	now := ts("2025-03-02T10:00:00Z")

	u := &domain.User{AdsWatchedToday: 7}
	ResetAdCountIfNewDay(u, now)
	assert.Equal(t, 0, u.AdsWatchedToday, "never watched means fresh day")

	yesterday := ts("2025-03-01T22:00:00Z")
	u = &domain.User{AdsWatchedToday: 7, LastAdWatchDate: &yesterday}
	ResetAdCountIfNewDay(u, now)
	assert.Equal(t, 0, u.AdsWatchedToday)

	today := ts("2025-03-02T01:00:00Z")
	u = &domain.User{AdsWatchedToday: 7, LastAdWatchDate: &today}
	ResetAdCountIfNewDay(u, now)
	assert.Equal(t, 7, u.AdsWatchedToday)
}

func TestCanWatchAd(t *testing.T) {
	u := &domain.User{AdsWatchedToday: 2, MaxAdsPerDay: 3}
	assert.True(t, CanWatchAd(u))

	u.AdsWatchedToday = 3
	assert.False(t, CanWatchAd(u))
}

func TestCanClaimDaily(t *testing.T) {
	now := ts("2025-03-02T10:00:00Z")

	u := &domain.User{}
	assert.True(t, CanClaimDaily(u, now))

	earlier := ts("2025-03-02T00:30:00Z")
	u.LastDailyRewardDate = &earlier
	assert.False(t, CanClaimDaily(u, now))

	yesterday := ts("2025-03-01T23:59:00Z")
	u.LastDailyRewardDate = &yesterday
	assert.True(t, CanClaimDaily(u, now))
}
