package bidrounddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// BidderRound is the bun model for one instance of the bidding process.
type BidderRound struct {
	bun.BaseModel `bun:"table:bidder_rounds,alias:br"`

	ID              uuid.UUID       `bun:"id,pk,type:uuid"`
	Title           string          `bun:"title,notnull"`
	TargetAmount    decimal.Decimal `bun:"target_amount,notnull,type:numeric"`
	CountOffers     int             `bun:"count_offers,notnull"`
	SubmissionStart time.Time       `bun:"submission_start,nullzero"`
	SubmissionEnd   time.Time       `bun:"submission_end,nullzero"`
	CreatedAt       time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}

// Offer is the bun model for a participant's bid. The unique index on
// (bidder_round_id, participant_id, round_index) enforces the one-offer-per-
// participant-per-round invariant at the persistence layer.
type Offer struct {
	bun.BaseModel `bun:"table:offers,alias:o"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid"`
	BidderRoundID uuid.UUID       `bun:"bidder_round_id,notnull,type:uuid"`
	ParticipantID uuid.UUID       `bun:"participant_id,notnull,type:uuid"`
	RoundIndex    int             `bun:"round_index,notnull"`
	Amount        decimal.Decimal `bun:"amount,notnull,type:numeric"`
	ShareCount    int             `bun:"share_count,notnull,default:1"`
	CreatedAt     time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}

// Participant is the bun model for a member expected to bid in a round.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	BidderRoundID uuid.UUID `bun:"bidder_round_id,notnull,type:uuid"`
	Name          string    `bun:"name,notnull"`
	ShareCount    int       `bun:"share_count,notnull,default:1"`
	Active        bool      `bun:"active,notnull,default:true"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// BidderRoundReport is the bun model for a resolution report. The unique
// constraint on bidder_round_id is the guard that makes resolution idempotent
// under concurrent triggers.
type BidderRoundReport struct {
	bun.BaseModel `bun:"table:bidder_round_reports,alias:rep"`

	ID                uuid.UUID       `bun:"id,pk,type:uuid"`
	BidderRoundID     uuid.UUID       `bun:"bidder_round_id,notnull,unique,type:uuid"`
	RoundWon          int             `bun:"round_won,notnull"`
	SumAmount         decimal.Decimal `bun:"sum_amount,notnull,type:numeric"`
	CountParticipants int             `bun:"count_participants,notnull"`
	CountRounds       int             `bun:"count_rounds,notnull"`
	CreatedAt         time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}

func (m *BidderRound) toDomain() *bidroundtypes.BidderRound {
	return &bidroundtypes.BidderRound{
		ID:              m.ID,
		Title:           m.Title,
		TargetAmount:    m.TargetAmount,
		CountOffers:     m.CountOffers,
		SubmissionStart: m.SubmissionStart,
		SubmissionEnd:   m.SubmissionEnd,
	}
}

func (m *Offer) toDomain() bidroundtypes.Offer {
	return bidroundtypes.Offer{
		ID:            m.ID,
		BidderRoundID: m.BidderRoundID,
		ParticipantID: m.ParticipantID,
		RoundIndex:    m.RoundIndex,
		Amount:        m.Amount,
		ShareCount:    m.ShareCount,
	}
}

func (m *BidderRoundReport) toDomain() *bidroundtypes.BidderRoundReport {
	return &bidroundtypes.BidderRoundReport{
		ID:                m.ID,
		BidderRoundID:     m.BidderRoundID,
		RoundWon:          m.RoundWon,
		SumAmount:         m.SumAmount,
		CountParticipants: m.CountParticipants,
		CountRounds:       m.CountRounds,
		CreatedAt:         m.CreatedAt,
	}
}

func reportModel(report *bidroundtypes.BidderRoundReport) *BidderRoundReport {
	return &BidderRoundReport{
		ID:                report.ID,
		BidderRoundID:     report.BidderRoundID,
		RoundWon:          report.RoundWon,
		SumAmount:         report.SumAmount,
		CountParticipants: report.CountParticipants,
		CountRounds:       report.CountRounds,
	}
}
