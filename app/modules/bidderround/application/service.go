package bidroundservice

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	bidroundevents "github.com/solawi-club/bidround/app/modules/bidderround/domain/events"
	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
	bidrounddb "github.com/solawi-club/bidround/app/modules/bidderround/infrastructure/repositories"
)

// BidderRoundService runs the resolution pipeline: aggregate offers, pick the
// winning round, persist the report exactly once.
type BidderRoundService struct {
	rounds              bidrounddb.BidderRoundRepository
	offers              bidrounddb.OfferRepository
	participants        bidrounddb.ParticipantRepository
	publisher           message.Publisher
	logger              *slog.Logger
	metrics             ResolutionMetrics
	annualizationFactor int64
}

// NewBidderRoundService creates a new BidderRoundService. A nil publisher
// disables event publishing; resolution never depends on it. An
// annualizationFactor of zero falls back to the domain default.
func NewBidderRoundService(
	rounds bidrounddb.BidderRoundRepository,
	offers bidrounddb.OfferRepository,
	participants bidrounddb.ParticipantRepository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics ResolutionMetrics,
	annualizationFactor int64,
) Service {
	if annualizationFactor <= 0 {
		annualizationFactor = bidroundtypes.DefaultAnnualizationFactor
	}
	return &BidderRoundService{
		rounds:              rounds,
		offers:              offers,
		participants:        participants,
		publisher:           publisher,
		logger:              logger,
		metrics:             metrics,
		annualizationFactor: annualizationFactor,
	}
}

// publishRoundResolved announces a persisted report on the event bus. The
// report is already durable at this point, so a publish failure is logged and
// swallowed rather than turned into a fault.
func (s *BidderRoundService) publishRoundResolved(ctx context.Context, report *bidroundtypes.BidderRoundReport) {
	if s.publisher == nil {
		return
	}

	payload := bidroundevents.RoundResolvedPayload{
		BidderRoundID:     report.BidderRoundID,
		RoundWon:          report.RoundWon,
		SumAmount:         report.SumAmount,
		CountParticipants: report.CountParticipants,
		CountRounds:       report.CountRounds,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal round resolved payload",
			slog.String("bidder_round_id", report.BidderRoundID.String()),
			slog.Any("error", err),
		)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	if err := s.publisher.Publish(bidroundevents.RoundResolvedTopic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish round resolved event",
			slog.String("bidder_round_id", report.BidderRoundID.String()),
			slog.Any("error", err),
		)
		return
	}

	s.logger.DebugContext(ctx, "Published round resolved event",
		slog.String("bidder_round_id", report.BidderRoundID.String()),
		slog.String("message_id", msg.UUID),
	)
}
