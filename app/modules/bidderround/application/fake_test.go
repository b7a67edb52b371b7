package bidroundservice

import (
	"context"
	"io"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// ------------------------
// Fake repositories
// ------------------------

type FakeRoundRepo struct {
	trace []string

	GetBidderRoundFunc func(ctx context.Context, id uuid.UUID) (*bidroundtypes.BidderRound, error)
	ListUnresolvedFunc func(ctx context.Context) ([]bidroundtypes.BidderRound, error)
	HasReportFunc      func(ctx context.Context, bidderRoundID uuid.UUID) (bool, error)
	GetReportFunc      func(ctx context.Context, bidderRoundID uuid.UUID) (*bidroundtypes.BidderRoundReport, error)
	CreateReportFunc   func(ctx context.Context, report *bidroundtypes.BidderRoundReport) (bool, error)
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) GetBidderRound(ctx context.Context, id uuid.UUID) (*bidroundtypes.BidderRound, error) {
	f.record("GetBidderRound")
	return f.GetBidderRoundFunc(ctx, id)
}

func (f *FakeRoundRepo) ListUnresolved(ctx context.Context) ([]bidroundtypes.BidderRound, error) {
	f.record("ListUnresolved")
	return f.ListUnresolvedFunc(ctx)
}

func (f *FakeRoundRepo) HasReport(ctx context.Context, bidderRoundID uuid.UUID) (bool, error) {
	f.record("HasReport")
	if f.HasReportFunc != nil {
		return f.HasReportFunc(ctx, bidderRoundID)
	}
	return false, nil
}

func (f *FakeRoundRepo) GetReport(ctx context.Context, bidderRoundID uuid.UUID) (*bidroundtypes.BidderRoundReport, error) {
	f.record("GetReport")
	return f.GetReportFunc(ctx, bidderRoundID)
}

func (f *FakeRoundRepo) CreateReport(ctx context.Context, report *bidroundtypes.BidderRoundReport) (bool, error) {
	f.record("CreateReport")
	if f.CreateReportFunc != nil {
		return f.CreateReportFunc(ctx, report)
	}
	return true, nil
}

type FakeOfferRepo struct {
	trace []string

	GetOffersFunc func(ctx context.Context, bidderRoundID uuid.UUID) ([]bidroundtypes.Offer, error)
}

func (f *FakeOfferRepo) GetOffersForBidderRound(ctx context.Context, bidderRoundID uuid.UUID) ([]bidroundtypes.Offer, error) {
	f.trace = append(f.trace, "GetOffersForBidderRound")
	if f.GetOffersFunc != nil {
		return f.GetOffersFunc(ctx, bidderRoundID)
	}
	return nil, nil
}

type FakeParticipantRepo struct {
	CountActiveParticipantsFunc func(ctx context.Context, bidderRoundID uuid.UUID) (int, error)
}

func (f *FakeParticipantRepo) CountActiveParticipants(ctx context.Context, bidderRoundID uuid.UUID) (int, error) {
	if f.CountActiveParticipantsFunc != nil {
		return f.CountActiveParticipantsFunc(ctx, bidderRoundID)
	}
	return 0, nil
}

// ------------------------
// Fake publisher & metrics
// ------------------------

type FakePublisher struct {
	Published  []string
	PublishErr error
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.PublishErr != nil {
		return f.PublishErr
	}
	f.Published = append(f.Published, topic)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

type FakeMetrics struct {
	Outcomes map[bidroundtypes.OutcomeKind]int
	Faults   int
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{Outcomes: map[bidroundtypes.OutcomeKind]int{}}
}

func (f *FakeMetrics) RecordOutcome(kind bidroundtypes.OutcomeKind) { f.Outcomes[kind]++ }
func (f *FakeMetrics) RecordFault()                                 { f.Faults++ }

// ------------------------
// Fixtures
// ------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBidderRound(id uuid.UUID, target int64) *bidroundtypes.BidderRound {
	faker := gofakeit.New(42)
	return &bidroundtypes.BidderRound{
		ID:           id,
		Title:        faker.Company() + " season",
		TargetAmount: decimal.NewFromInt(target),
		CountOffers:  10,
	}
}

// offersForRounds builds full-participation offers: one offer per participant
// per round, shareCount 1, using the given monthly amounts per round.
func offersForRounds(bidderRoundID uuid.UUID, participantIDs []uuid.UUID, amountsByRound map[int][]int64) []bidroundtypes.Offer {
	var offers []bidroundtypes.Offer
	for roundIndex, amounts := range amountsByRound {
		for i, amount := range amounts {
			offers = append(offers, bidroundtypes.Offer{
				ID:            uuid.New(),
				BidderRoundID: bidderRoundID,
				ParticipantID: participantIDs[i],
				RoundIndex:    roundIndex,
				Amount:        decimal.NewFromInt(amount),
				ShareCount:    1,
			})
		}
	}
	return offers
}

func participantIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}
