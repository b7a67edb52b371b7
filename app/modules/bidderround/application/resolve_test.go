package bidroundservice

import (
	"testing"

	"github.com/shopspring/decimal"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

func agg(roundIndex, offerCount int, weightedSum int64) bidroundtypes.RoundAggregate {
	return bidroundtypes.RoundAggregate{
		RoundIndex:  roundIndex,
		OfferCount:  offerCount,
		WeightedSum: decimal.NewFromInt(weightedSum),
	}
}

func TestResolveWinningRound(t *testing.T) {
	tests := []struct {
		name             string
		aggregates       map[int]bidroundtypes.RoundAggregate
		targetAmount     int64
		participantCount int
		wantKind         bidroundtypes.OutcomeKind
		wantRoundWon     int
		wantReached      int64
	}{
		{
			name: "first round crossing the target wins",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				1: agg(1, 3, 2160),
				2: agg(2, 3, 3240),
				3: agg(3, 3, 3960),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     3,
			wantReached:      3960,
		},
		{
			name: "partial participation never qualifies even above target",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				2: agg(2, 2, 5000),
				3: agg(3, 3, 3960),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     3,
			wantReached:      3960,
		},
		{
			name: "no round with full participation",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				1: agg(1, 1, 600),
				2: agg(2, 2, 5000),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeNotAllOffersGiven,
		},
		{
			name:             "no offers at all",
			aggregates:       map[int]bidroundtypes.RoundAggregate{},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeNotAllOffersGiven,
		},
		{
			name: "full participation everywhere but target never reached",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				1: agg(1, 3, 2160),
				2: agg(2, 3, 3240),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeNotEnoughMoney,
		},
		{
			name: "sum exactly at target qualifies",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				1: agg(1, 3, 3600),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     1,
			wantReached:      3600,
		},
		{
			name: "smallest qualifying sum wins over lower round index",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				2: agg(2, 3, 3600),
				4: agg(4, 3, 3700),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     2,
			wantReached:      3600,
		},
		{
			name: "smallest sum wins even in a later round",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				2: agg(2, 3, 3700),
				4: agg(4, 3, 3600),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     4,
			wantReached:      3600,
		},
		{
			name: "equal sums break the tie by lowest round index",
			aggregates: map[int]bidroundtypes.RoundAggregate{
				3: agg(3, 3, 3600),
				5: agg(5, 3, 3600),
				4: agg(4, 3, 3800),
			},
			targetAmount:     3600,
			participantCount: 3,
			wantKind:         bidroundtypes.OutcomeSuccess,
			wantRoundWon:     3,
			wantReached:      3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ResolveWinningRound(tt.aggregates, decimal.NewFromInt(tt.targetAmount), tt.participantCount)

			if outcome.Kind != tt.wantKind {
				t.Fatalf("expected outcome %s, got %s", tt.wantKind, outcome.Kind)
			}
			if !outcome.IsSuccess() {
				return
			}
			if outcome.RoundWon != tt.wantRoundWon {
				t.Errorf("expected round %d to win, got %d", tt.wantRoundWon, outcome.RoundWon)
			}
			if want := decimal.NewFromInt(tt.wantReached); !outcome.ReachedAmount.Equal(want) {
				t.Errorf("expected reached amount %s, got %s", want, outcome.ReachedAmount)
			}
		})
	}
}

// The winner must carry the minimal weighted sum among all qualifying rounds,
// regardless of map iteration order.
func TestResolveWinningRound_MinimumSumProperty(t *testing.T) {
	aggregates := map[int]bidroundtypes.RoundAggregate{}
	for i := 1; i <= 20; i++ {
		aggregates[i] = agg(i, 5, int64(5000+((i*7)%13)*100))
	}
	target := decimal.NewFromInt(5000)

	outcome := ResolveWinningRound(aggregates, target, 5)
	if !outcome.IsSuccess() {
		t.Fatalf("expected success, got %s", outcome.Kind)
	}

	for _, a := range aggregates {
		if a.WeightedSum.GreaterThanOrEqual(target) && a.WeightedSum.LessThan(outcome.ReachedAmount) {
			t.Errorf("round %d has smaller qualifying sum %s than winner %s",
				a.RoundIndex, a.WeightedSum, outcome.ReachedAmount)
		}
	}
}
