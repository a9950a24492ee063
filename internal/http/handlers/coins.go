package handlers

import (
	"errors"
	"net/http"

	"github.com/fikadugetaye72/fruit/internal/domain"
	"github.com/fikadugetaye72/fruit/internal/http/middleware"
	"github.com/fikadugetaye72/fruit/internal/repository"
	"github.com/fikadugetaye72/fruit/internal/reward"

	"github.com/gin-gonic/gin"
)

type WatchAdRequest struct {
	AdType   string `json:"adType"`
	Duration int    `json:"duration"`
	Reward   int64  `json:"reward"`
}

func (h *Handler) WatchAd(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// body is optional, all fields have defaults
	var req WatchAdRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.Rewards.WatchAd(c.Request.Context(), userID, req.Reward, req.AdType)
	if err != nil {
		rewardError(c, err)
		return
	}

	middleware.CoinsGranted.WithLabelValues(domain.TxAdReward).Add(float64(res.CoinsEarned))
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ClaimDailyReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.Rewards.ClaimDailyReward(c.Request.Context(), userID)
	if err != nil {
		rewardError(c, err)
		return
	}

	middleware.CoinsGranted.WithLabelValues(domain.TxDailyReward).Add(float64(res.Reward))
	c.JSON(http.StatusOK, res)
}

type SpendCoinsRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	ItemID string `json:"itemId"`
	Reason string `json:"reason"`
}

func (h *Handler) SpendCoins(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SpendCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	res, err := h.Rewards.SpendCoins(c.Request.Context(), userID, req.Amount, req.ItemID, req.Reason)
	if err != nil {
		rewardError(c, err)
		return
	}

	middleware.CoinsSpent.Add(float64(res.CoinsSpent))
	c.JSON(http.StatusOK, gin.H{
		"coinsSpent": res.CoinsSpent,
		"newBalance": res.NewBalance,
		"reason":     req.Reason,
	})
}

type UseReferralRequest struct {
	ReferralCode string `json:"referralCode" binding:"required"`
}

func (h *Handler) UseReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UseReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referralCode is required"})
		return
	}

	if err := h.Rewards.ApplyReferralCode(c.Request.Context(), userID, req.ReferralCode); err != nil {
		rewardError(c, err)
		return
	}

	middleware.CoinsGranted.WithLabelValues(domain.TxReferralBonus).Add(float64(reward.ReferrerBonus))
	middleware.CoinsGranted.WithLabelValues(domain.TxReferralWelcome).Add(float64(reward.ReferredBonus))
	c.JSON(http.StatusOK, gin.H{"message": "referral code applied successfully"})
}

func (h *Handler) CoinHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coin history"})
		return
	}

	txs, err := h.Txs.GetByUserID(ctx, userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coin history"})
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"currentCoins":   user.Coins,
		"totalEarned":    user.TotalCoinsEarned,
		"totalSpent":     user.TotalCoinsSpent,
		"totalPurchased": user.TotalCoinsPurchased,
		"isVIP":          user.IsVIP,
		"transactions":   txs,
	})
}

// rewardError maps engine failures to HTTP responses. Validation failures
// come back as 400 with the typed reason, missing users as 404; anything
// else is a storage failure.
func rewardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, reward.ErrDailyLimitReached),
		errors.Is(err, reward.ErrAlreadyClaimedToday),
		errors.Is(err, reward.ErrInsufficientBalance),
		errors.Is(err, reward.ErrInvalidAmount),
		errors.Is(err, reward.ErrReferralAlreadyUsed),
		errors.Is(err, reward.ErrSelfReferral),
		errors.Is(err, reward.ErrInvalidReferralCode):
		middleware.RewardRejections.WithLabelValues(err.Error()).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	}
}
