package domain

import "time"

// Transaction types recorded by the reward engine.
const (
	TxAdReward        = "ad_reward"
	TxDailyReward     = "daily_reward"
	TxReferralBonus   = "referral_bonus"
	TxReferralWelcome = "referral_welcome"
	TxSpend           = "spend"
)

type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
