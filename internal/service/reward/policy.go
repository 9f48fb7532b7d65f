package reward

// Policy holds the reward computation rates in basis points. All
// arithmetic is integer; fractional points are floored away and never
// persisted.
type Policy struct {
	// EarnRateBP points earned per sale, in basis points of the sale
	// amount (100 = 1%)
	EarnRateBP int64

	// RedeemCapBP ceiling on redemption, in basis points of the order
	// total (1000 = 10%)
	RedeemCapBP int64
}

// DefaultPolicy the observed production configuration: 1% earn rate,
// 10% redemption cap.
func DefaultPolicy() Policy {
	return Policy{
		EarnRateBP:  100,
		RedeemCapBP: 1000,
	}
}

// PointsEarnedForSale points credited to the owner of the post that
// originated a sale: floor(price * quantity * rate). The caller is
// responsible for skipping self-purchases.
func (p Policy) PointsEarnedForSale(unitPrice int64, quantity int) int64 {
	if unitPrice <= 0 || quantity <= 0 {
		return 0
	}
	return unitPrice * int64(quantity) * p.EarnRateBP / 10000
}

// MaxRedeemable points that may be applied as a discount against an
// order: floor(min(balance, total * cap)). Zero when the balance is
// not positive.
func (p Policy) MaxRedeemable(totalAmount, availableBalance int64) int64 {
	if availableBalance <= 0 || totalAmount <= 0 {
		return 0
	}
	cap := totalAmount * p.RedeemCapBP / 10000
	if availableBalance < cap {
		return availableBalance
	}
	return cap
}
