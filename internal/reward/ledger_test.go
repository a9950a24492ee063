package reward

import (
	"testing"

	"github.com/fikadugetaye72/fruit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdReward(t *testing.T) {
	assert.EqualValues(t, 8, AdReward(8))
	assert.EqualValues(t, DefaultAdReward, AdReward(0))
	assert.EqualValues(t, DefaultAdReward, AdReward(-3))
}

func TestDailyReward(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		vip    bool
		want   int64
	}{
		{"no streak", 0, false, 10},
		{"six days, below first bonus step", 6, false, 10},
		{"one full week", 7, false, 15},
		{"one full week vip", 7, true, 22}, // floor(15 * 1.5)
		{"three weeks", 21, false, 25},
		{"three weeks vip", 21, true, 37}, // floor(25 * 1.5)
		{"vip floor on odd base", 0, true, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyReward(tt.streak, tt.vip))
		})
	}
}

func TestEarn(t *testing.T) {
	u := &domain.User{Coins: 10, TotalCoinsEarned: 100}

	require.NoError(t, Earn(u, 25))
	assert.EqualValues(t, 35, u.Coins)
	assert.EqualValues(t, 125, u.TotalCoinsEarned)

	err := Earn(u, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.EqualValues(t, 35, u.Coins)
}

func TestSpend(t *testing.T) {
	u := &domain.User{Coins: 30, TotalCoinsSpent: 5}

	require.NoError(t, Spend(u, 30))
	assert.EqualValues(t, 0, u.Coins)
	assert.EqualValues(t, 35, u.TotalCoinsSpent)

	assert.ErrorIs(t, Spend(u, 1), ErrInsufficientBalance)
	assert.ErrorIs(t, Spend(u, 0), ErrInvalidAmount)
	assert.ErrorIs(t, Spend(u, -10), ErrInvalidAmount)
	assert.EqualValues(t, 0, u.Coins, "failed spends must not touch the balance")
}
