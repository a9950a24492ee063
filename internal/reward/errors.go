package reward

import "errors"

// Validation failures of the reward engine. All of these are recoverable
// and surfaced to the client as typed results; anything else that comes out
// of a reward operation is a storage failure.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient coins")
	ErrDailyLimitReached   = errors.New("daily ad watching limit reached")
	ErrAlreadyClaimedToday = errors.New("daily reward already claimed today")
	ErrReferralAlreadyUsed = errors.New("referral code already used")
	ErrSelfReferral        = errors.New("cannot use your own referral code")
	ErrInvalidReferralCode = errors.New("invalid referral code")
)
