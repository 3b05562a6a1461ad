package marketplace

// DefaultPlatformFeeBps is the platform's cut in basis points (10%).
const DefaultPlatformFeeBps = 1000

// ComputeFees splits a gross sale amount into the platform's share and
// the seller's share. The platform fee is gross × rate rounded
// half-up; the seller amount is the remainder, computed by
// subtraction so that platformFee + sellerAmount == gross holds
// exactly for every non-negative gross. Pure and deterministic.
func ComputeFees(gross int64, rateBps int) (platformFee, sellerAmount int64) {
	platformFee = (gross*int64(rateBps) + 5000) / 10000
	sellerAmount = gross - platformFee
	return platformFee, sellerAmount
}
