package bidroundservice

import (
	"sort"

	"github.com/shopspring/decimal"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// ResolveWinningRound applies the qualification and tie-break policy over the
// aggregated rounds:
//
//  1. Only rounds where every expected participant submitted an offer qualify.
//     Partial participation never does, no matter the sum.
//  2. Of those, only rounds whose weighted sum meets the target qualify.
//     Equality with the target counts as reached.
//  3. The winner is the qualifying round with the smallest weighted sum: the
//     cooperative takes the cheapest round that clears the bar, not the
//     earliest one. Equal sums fall back to the lowest round index.
//
// An empty aggregate map trivially resolves to NotAllOffersGiven. The caller
// must rule out an already-resolved bidder round and a non-positive
// participant count before calling; neither is detected here.
func ResolveWinningRound(aggregates map[int]bidroundtypes.RoundAggregate, targetAmount decimal.Decimal, participantCount int) bidroundtypes.Outcome {
	fullParticipation := false
	var qualifying []bidroundtypes.RoundAggregate
	for _, agg := range aggregates {
		if agg.OfferCount != participantCount {
			continue
		}
		fullParticipation = true
		if agg.WeightedSum.GreaterThanOrEqual(targetAmount) {
			qualifying = append(qualifying, agg)
		}
	}

	if !fullParticipation {
		return bidroundtypes.Outcome{Kind: bidroundtypes.OutcomeNotAllOffersGiven}
	}
	if len(qualifying) == 0 {
		return bidroundtypes.Outcome{Kind: bidroundtypes.OutcomeNotEnoughMoney}
	}

	sort.Slice(qualifying, func(i, j int) bool {
		if c := qualifying[i].WeightedSum.Cmp(qualifying[j].WeightedSum); c != 0 {
			return c < 0
		}
		return qualifying[i].RoundIndex < qualifying[j].RoundIndex
	})

	winner := qualifying[0]
	return bidroundtypes.Outcome{
		Kind:          bidroundtypes.OutcomeSuccess,
		RoundWon:      winner.RoundIndex,
		ReachedAmount: winner.WeightedSum,
	}
}
