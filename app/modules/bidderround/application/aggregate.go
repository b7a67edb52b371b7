package bidroundservice

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// AggregateOffers groups the offers of one bidder round by round index and
// computes, per round, the participant count and the weighted monetary sum
// (amount x annualizationFactor x shareCount). Rounds without offers are
// absent from the result; callers must read a missing key as "no data yet".
//
// Input order is irrelevant. A second offer for the same participant and round
// violates the data-model invariant and is reported as ErrDuplicateOffer.
func AggregateOffers(offers []bidroundtypes.Offer, annualizationFactor int64) (map[int]bidroundtypes.RoundAggregate, error) {
	factor := decimal.NewFromInt(annualizationFactor)

	type offerKey struct {
		participantID uuid.UUID
		roundIndex    int
	}
	seen := make(map[offerKey]struct{}, len(offers))

	aggregates := make(map[int]bidroundtypes.RoundAggregate)
	for _, offer := range offers {
		key := offerKey{offer.ParticipantID, offer.RoundIndex}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: participant %s, round %d",
				ErrDuplicateOffer, offer.ParticipantID, offer.RoundIndex)
		}
		seen[key] = struct{}{}

		shareCount := offer.ShareCount
		if shareCount < 1 {
			shareCount = 1
		}
		weighted := offer.Amount.Mul(factor).Mul(decimal.NewFromInt(int64(shareCount)))

		agg := aggregates[offer.RoundIndex]
		agg.RoundIndex = offer.RoundIndex
		agg.OfferCount++
		agg.WeightedSum = agg.WeightedSum.Add(weighted)
		aggregates[offer.RoundIndex] = agg
	}

	return aggregates, nil
}
