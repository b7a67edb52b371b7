package bidrounddb

import (
	"context"
	"errors"

	"github.com/google/uuid"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

var (
	// ErrBidderRoundNotFound is returned when no bidder round exists for an ID.
	ErrBidderRoundNotFound = errors.New("bidder round not found")
	// ErrReportNotFound is returned when a bidder round has no report yet.
	ErrReportNotFound = errors.New("bidder round report not found")
)

// BidderRoundRepository provides bidder rounds and their resolution reports.
// CreateReport is the idempotency guard: the insert and the existence check
// form one atomic operation backed by a unique constraint on the report's
// bidder round.
type BidderRoundRepository interface {
	GetBidderRound(ctx context.Context, id uuid.UUID) (*bidroundtypes.BidderRound, error)
	ListUnresolved(ctx context.Context) ([]bidroundtypes.BidderRound, error)
	HasReport(ctx context.Context, bidderRoundID uuid.UUID) (bool, error)
	GetReport(ctx context.Context, bidderRoundID uuid.UUID) (*bidroundtypes.BidderRoundReport, error)
	// CreateReport inserts the report unless one already exists for the same
	// bidder round. It returns false when a concurrent resolution won the race.
	CreateReport(ctx context.Context, report *bidroundtypes.BidderRoundReport) (bool, error)
}

// OfferRepository reads the offers submitted for a bidder round. Offers are
// read-only from the resolution core's perspective.
type OfferRepository interface {
	GetOffersForBidderRound(ctx context.Context, bidderRoundID uuid.UUID) ([]bidroundtypes.Offer, error)
}

// ParticipantRepository supplies the number of participants expected to submit
// an offer per round. Inactive participants are excluded.
type ParticipantRepository interface {
	CountActiveParticipants(ctx context.Context, bidderRoundID uuid.UUID) (int, error)
}
