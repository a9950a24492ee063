package handlers

import (
	"net/http"

	"github.com/fikadugetaye72/fruit/internal/repository"

	"github.com/gin-gonic/gin"
)

// ReferralStats returns the user's code, counters and invited accounts.
func (h *Handler) ReferralStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	referrals, err := h.Users.GetReferredUsers(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	if referrals == nil {
		referrals = []repository.ReferredUser{}
	}

	c.JSON(http.StatusOK, gin.H{
		"referralCode":          user.ReferralCode,
		"referralCount":         user.ReferralCount,
		"referralRewardsEarned": user.ReferralRewardsEarned,
		"referrals":             referrals,
	})
}
