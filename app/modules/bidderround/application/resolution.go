package bidroundservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// Resolve runs the full pipeline for one bidder round. An already-resolved
// round short-circuits before any offer is read. The returned error is a
// fault (precondition or infrastructure failure); every business result comes
// back as an outcome.
func (s *BidderRoundService) Resolve(ctx context.Context, bidderRoundID uuid.UUID) (bidroundtypes.Outcome, error) {
	round, err := s.rounds.GetBidderRound(ctx, bidderRoundID)
	if err != nil {
		return s.fault(fmt.Errorf("failed to fetch bidder round: %w", err))
	}
	if err := validateBidderRound(round); err != nil {
		return s.fault(err)
	}

	resolved, err := s.rounds.HasReport(ctx, bidderRoundID)
	if err != nil {
		return s.fault(fmt.Errorf("failed to check for existing report: %w", err))
	}
	if resolved {
		return s.outcome(ctx, round, bidroundtypes.Outcome{Kind: bidroundtypes.OutcomeAlreadyResolved}), nil
	}

	participantCount, err := s.participants.CountActiveParticipants(ctx, bidderRoundID)
	if err != nil {
		return s.fault(fmt.Errorf("failed to count participants: %w", err))
	}
	if participantCount <= 0 {
		return s.fault(fmt.Errorf("%w: bidder round %s", ErrNoExpectedParticipants, bidderRoundID))
	}

	offers, err := s.offers.GetOffersForBidderRound(ctx, bidderRoundID)
	if err != nil {
		return s.fault(fmt.Errorf("failed to fetch offers: %w", err))
	}
	aggregates, err := AggregateOffers(offers, s.annualizationFactor)
	if err != nil {
		return s.fault(fmt.Errorf("bidder round %s: %w", bidderRoundID, err))
	}

	outcome := ResolveWinningRound(aggregates, round.TargetAmount, participantCount)
	if !outcome.IsSuccess() {
		return s.outcome(ctx, round, outcome), nil
	}

	report := &bidroundtypes.BidderRoundReport{
		ID:                uuid.New(),
		BidderRoundID:     bidderRoundID,
		RoundWon:          outcome.RoundWon,
		SumAmount:         outcome.ReachedAmount,
		CountParticipants: participantCount,
		CountRounds:       round.CountOffers,
	}
	created, err := s.rounds.CreateReport(ctx, report)
	if err != nil {
		return s.fault(fmt.Errorf("failed to persist report: %w", err))
	}
	if !created {
		// Lost the race against a concurrent resolution attempt.
		return s.outcome(ctx, round, bidroundtypes.Outcome{Kind: bidroundtypes.OutcomeAlreadyResolved}), nil
	}

	s.publishRoundResolved(ctx, report)
	return s.outcome(ctx, round, outcome), nil
}

// ResolveAll resolves every bidder round that has no report yet. A fault in
// one bidder round is recorded in its own result entry and never aborts the
// rest of the batch.
func (s *BidderRoundService) ResolveAll(ctx context.Context) (map[uuid.UUID]ResolveResult, error) {
	rounds, err := s.rounds.ListUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved bidder rounds: %w", err)
	}

	results := make(map[uuid.UUID]ResolveResult, len(rounds))
	for _, round := range rounds {
		outcome, err := s.Resolve(ctx, round.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Bidder round resolution failed",
				slog.String("bidder_round_id", round.ID.String()),
				slog.Any("error", err),
			)
			results[round.ID] = ResolveResult{Err: err}
			continue
		}
		results[round.ID] = ResolveResult{Outcome: outcome}
	}
	return results, nil
}

// GetAggregates exposes the aggregation step alone, for display and
// diagnostics. It performs no qualification and writes nothing.
func (s *BidderRoundService) GetAggregates(ctx context.Context, bidderRoundID uuid.UUID) (map[int]bidroundtypes.RoundAggregate, error) {
	if _, err := s.rounds.GetBidderRound(ctx, bidderRoundID); err != nil {
		return nil, fmt.Errorf("failed to fetch bidder round: %w", err)
	}
	offers, err := s.offers.GetOffersForBidderRound(ctx, bidderRoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	aggregates, err := AggregateOffers(offers, s.annualizationFactor)
	if err != nil {
		return nil, fmt.Errorf("bidder round %s: %w", bidderRoundID, err)
	}
	return aggregates, nil
}

func validateBidderRound(round *bidroundtypes.BidderRound) error {
	if !round.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: bidder round %s", ErrInvalidTargetAmount, round.ID)
	}
	if round.CountOffers < 1 {
		return fmt.Errorf("%w: bidder round %s", ErrInvalidCountOffers, round.ID)
	}
	return nil
}

// fault records the fault metric and passes the error through.
func (s *BidderRoundService) fault(err error) (bidroundtypes.Outcome, error) {
	if s.metrics != nil {
		s.metrics.RecordFault()
	}
	return bidroundtypes.Outcome{}, err
}

// outcome records metrics and logs the business result. Logging is
// informational only; it can never abort a resolution.
func (s *BidderRoundService) outcome(ctx context.Context, round *bidroundtypes.BidderRound, outcome bidroundtypes.Outcome) bidroundtypes.Outcome {
	if s.metrics != nil {
		s.metrics.RecordOutcome(outcome.Kind)
	}

	switch outcome.Kind {
	case bidroundtypes.OutcomeSuccess:
		s.logger.InfoContext(ctx, "Bidder round resolved",
			slog.String("bidder_round_id", round.ID.String()),
			slog.Int("round_won", outcome.RoundWon),
			slog.String("reached_amount", outcome.ReachedAmount.String()),
		)
	case bidroundtypes.OutcomeAlreadyResolved:
		s.logger.InfoContext(ctx, "Bidder round already resolved",
			slog.String("bidder_round_id", round.ID.String()),
		)
	default:
		s.logger.InfoContext(ctx, "Bidder round not resolvable yet",
			slog.String("bidder_round_id", round.ID.String()),
			slog.String("outcome", string(outcome.Kind)),
		)
	}
	return outcome
}
