package redemption

import "errors"

// Redemption outcomes that are not Success, in gate order.
var (
	ErrInvalidCode      = errors.New("scanned code is not a valid coupon payload")
	ErrNotAvailable     = errors.New("meal coupons are only available on weekdays")
	ErrAlreadyRedeemed  = errors.New("coupon already redeemed today")
	ErrRedemptionFailed = errors.New("failed to record redemption")
	ErrRecordNotFound   = errors.New("redemption record not found")
)
