package bidroundevents

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoundResolvedTopic carries the report of a successful resolution. Downstream
// consumers (notification senders, displays) subscribe here; resolution itself
// never depends on anyone listening.
const RoundResolvedTopic = "bidderround.resolved"

// RoundResolvedPayload mirrors the persisted BidderRoundReport.
type RoundResolvedPayload struct {
	BidderRoundID     uuid.UUID       `json:"bidder_round_id"`
	RoundWon          int             `json:"round_won"`
	SumAmount         decimal.Decimal `json:"sum_amount"`
	CountParticipants int             `json:"count_participants"`
	CountRounds       int             `json:"count_rounds"`
}
