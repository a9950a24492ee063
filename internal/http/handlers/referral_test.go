package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserDirectory backs the endpoints that read user storage directly.
type fakeUserDirectory struct {
	users       map[int64]*domain.User
	referred    []repository.ReferredUser
	referredErr error
}

func (f *fakeUserDirectory) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserDirectory) UpdateProfile(_ context.Context, id int64, firstName, lastName string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	return nil
}

func (f *fakeUserDirectory) GetReferredUsers(_ context.Context, _ int64) ([]repository.ReferredUser, error) {
	return f.referred, f.referredErr
}

func newReferralTestRouter(dir *fakeUserDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Users: dir}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Next()
	})
	r.GET("/referral/stats", h.ReferralStats)
	return r
}

func TestReferralStatsEndpoint(t *testing.T) {
	dir := &fakeUserDirectory{
		users: map[int64]*domain.User{
			1: {ID: 1, ReferralCode: "aaa111", ReferralCount: 2, ReferralRewardsEarned: 200},
		},
		referred: []repository.ReferredUser{
			{ID: 2, Username: "kiwi", CreatedAt: time.Now()},
			{ID: 3, Username: "mango", CreatedAt: time.Now()},
		},
	}
	w := doJSON(t, newReferralTestRouter(dir), http.MethodGet, "/referral/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ReferralCode          string                    `json:"referralCode"`
		ReferralCount         int                       `json:"referralCount"`
		ReferralRewardsEarned int64                     `json:"referralRewardsEarned"`
		Referrals             []repository.ReferredUser `json:"referrals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "aaa111", body.ReferralCode)
	assert.Equal(t, 2, body.ReferralCount)
	assert.EqualValues(t, 200, body.ReferralRewardsEarned)
	assert.Len(t, body.Referrals, 2)
}

func TestReferralStatsEndpoint_NoReferralsIsEmptyList(t *testing.T) {
	dir := &fakeUserDirectory{
		users: map[int64]*domain.User{1: {ID: 1, ReferralCode: "aaa111"}},
	}
	w := doJSON(t, newReferralTestRouter(dir), http.MethodGet, "/referral/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"referrals":[]`)
}

func TestReferralStatsEndpoint_StorageFailureIs500(t *testing.T) {
	dir := &fakeUserDirectory{
		users:       map[int64]*domain.User{1: {ID: 1, ReferralCode: "aaa111"}},
		referredErr: errors.New("connection reset"),
	}
	w := doJSON(t, newReferralTestRouter(dir), http.MethodGet, "/referral/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "referrals", "a storage failure must not read as an empty list")
}
