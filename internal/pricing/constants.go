package pricing

const (
	// VirtualLiquidity is the stand-in stake used for an empty pool so an
	// unfunded market still quotes uniform starting prices instead of
	// dividing by zero.
	VirtualLiquidity = 1

	// MinPrice and MaxPrice clamp every quoted price. Keeping prices away
	// from 0 and 1 keeps the payout division well-conditioned and never
	// reports certainty.
	MinPrice = 0.0001
	MaxPrice = 0.9999
)
