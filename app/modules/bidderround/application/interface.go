package bidroundservice

import (
	"context"

	"github.com/google/uuid"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// ResolveResult is one entry of a batch resolution: either an outcome or the
// fault that aborted this bidder round. Faults never abort the batch.
type ResolveResult struct {
	Outcome bidroundtypes.Outcome
	Err     error
}

// Service is the interface for the bidder round resolution service.
type Service interface {
	Resolve(ctx context.Context, bidderRoundID uuid.UUID) (bidroundtypes.Outcome, error)
	ResolveAll(ctx context.Context) (map[uuid.UUID]ResolveResult, error)
	GetAggregates(ctx context.Context, bidderRoundID uuid.UUID) (map[int]bidroundtypes.RoundAggregate, error)
}

// ResolutionMetrics records resolution outcomes and faults.
type ResolutionMetrics interface {
	RecordOutcome(kind bidroundtypes.OutcomeKind)
	RecordFault()
}
