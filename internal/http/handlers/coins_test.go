package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/repository"
	"github.com/fikadugetaye72/fruit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs the reward endpoints in tests. Single-goroutine use only.
type fakeStore struct {
	users map[int64]*domain.User
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetByReferralCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) UpdateAtomic(_ context.Context, id int64, fn func(*domain.User) (*domain.Transaction, error)) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	if _, err := fn(&cp); err != nil {
		return nil, err
	}
	f.users[id] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) ApplyReferral(_ context.Context, referrerID, referredID int64, fn func(referrer, referred *domain.User) ([]*domain.Transaction, error)) error {
	ref, ok := f.users[referrerID]
	if !ok {
		return repository.ErrUserNotFound
	}
	red, ok := f.users[referredID]
	if !ok {
		return repository.ErrUserNotFound
	}
	refCp, redCp := *ref, *red
	if _, err := fn(&refCp, &redCp); err != nil {
		return err
	}
	f.users[referrerID] = &refCp
	f.users[referredID] = &redCp
	return nil
}

func newCoinsTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Rewards: service.NewRewardService(store, 50)}

	r := gin.New()
	// tests inject the user id directly instead of going through the JWT middleware
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Next()
	})
	r.POST("/watch-ad", h.WatchAd)
	r.POST("/claim-daily-reward", h.ClaimDailyReward)
	r.POST("/spend", h.SpendCoins)
	r.POST("/use-referral", h.UseReferralCode)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWatchAdEndpoint(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{
		1: {ID: 1, MaxAdsPerDay: 2},
	}}
	r := newCoinsTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/watch-ad", gin.H{"adType": "video"})
	require.Equal(t, http.StatusOK, w.Code)

	var res service.WatchAdResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.EqualValues(t, 5, res.CoinsEarned)
	assert.EqualValues(t, 5, res.NewBalance)
	assert.Equal(t, 1, res.AdsWatchedToday)
	assert.Equal(t, 2, res.MaxAdsPerDay)

	// exhaust the cap
	w = doJSON(t, r, http.MethodPost, "/watch-ad", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/watch-ad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "daily ad watching limit reached")
}

func TestClaimDailyRewardEndpoint(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{
		1: {ID: 1, MaxAdsPerDay: 10, DailyRewardStreak: 6},
	}}
	r := newCoinsTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/claim-daily-reward", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res service.DailyRewardResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.EqualValues(t, 10, res.Reward)
	assert.Equal(t, 7, res.Streak)

	w = doJSON(t, r, http.MethodPost, "/claim-daily-reward", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already claimed")
}

func TestSpendCoinsEndpoint(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{
		1: {ID: 1, Coins: 30, MaxAdsPerDay: 10},
	}}
	r := newCoinsTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/spend", gin.H{"amount": 20, "reason": "smoothie"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coinsSpent":20`)
	assert.Contains(t, w.Body.String(), `"newBalance":10`)
	assert.Contains(t, w.Body.String(), `"reason":"smoothie"`)

	w = doJSON(t, r, http.MethodPost, "/spend", gin.H{"amount": 9999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient coins")

	w = doJSON(t, r, http.MethodPost, "/spend", gin.H{"reason": "missing amount"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUseReferralEndpoint(t *testing.T) {
	store := &fakeStore{users: map[int64]*domain.User{
		1: {ID: 1, ReferralCode: "bbb222", MaxAdsPerDay: 10},
		2: {ID: 2, ReferralCode: "aaa111", MaxAdsPerDay: 10},
	}}
	r := newCoinsTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/use-referral", gin.H{"referralCode": "aaa111"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/use-referral", gin.H{"referralCode": "aaa111"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already used")

	w = doJSON(t, r, http.MethodPost, "/use-referral", gin.H{"referralCode": "bbb222"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/use-referral", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
