package bidroundtypes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultAnnualizationFactor converts the monthly offer amounts members submit
// into the annualized unit that target amounts are expressed in. It is a
// configuration default, not policy: tests and deployments may override it.
const DefaultAnnualizationFactor int64 = 12

// Offer is one participant's monetary bid for one round of a bidder round.
// Offers are immutable once submitted; there is no update path.
type Offer struct {
	ID            uuid.UUID
	BidderRoundID uuid.UUID
	ParticipantID uuid.UUID
	RoundIndex    int             // 1-based
	Amount        decimal.Decimal // monthly amount
	ShareCount    int             // ownership shares held by the participant, >= 1
}

// BidderRound is one instance of the recurring bidding process.
type BidderRound struct {
	ID              uuid.UUID
	Title           string
	TargetAmount    decimal.Decimal // annualized
	CountOffers     int             // number of rounds offered
	SubmissionStart time.Time
	SubmissionEnd   time.Time
}

// RoundAggregate is the derived per-round view the resolver works on. It is
// computed fresh on every resolution attempt and never persisted. A round
// index absent from the aggregate map means "no offers yet", not "zero".
type RoundAggregate struct {
	RoundIndex  int
	OfferCount  int
	WeightedSum decimal.Decimal
}

// BidderRoundReport is the persisted outcome of a successful resolution.
// At most one report exists per bidder round; its existence marks the round
// as resolved.
type BidderRoundReport struct {
	ID                uuid.UUID
	BidderRoundID     uuid.UUID
	RoundWon          int
	SumAmount         decimal.Decimal
	CountParticipants int
	CountRounds       int
	CreatedAt         time.Time
}

// Participant is a member expected to submit offers for a bidder round.
// Inactive participants do not count toward full participation.
type Participant struct {
	ID            uuid.UUID
	BidderRoundID uuid.UUID
	Name          string
	ShareCount    int
	Active        bool
}

// OutcomeKind enumerates the business states a resolution attempt can end in.
// Each is a legitimate result, not an error.
type OutcomeKind string

const (
	OutcomeSuccess           OutcomeKind = "SUCCESS"
	OutcomeAlreadyResolved   OutcomeKind = "ALREADY_RESOLVED"
	OutcomeNotAllOffersGiven OutcomeKind = "NOT_ALL_OFFERS_GIVEN"
	OutcomeNotEnoughMoney    OutcomeKind = "NOT_ENOUGH_MONEY"
)

// Outcome is the tagged result of a resolution attempt. RoundWon and
// ReachedAmount carry data only when Kind is OutcomeSuccess.
type Outcome struct {
	Kind          OutcomeKind
	RoundWon      int
	ReachedAmount decimal.Decimal
}

// IsSuccess reports whether the outcome selected a winning round.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}
