package bidrounddb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// OfferDBImpl is the concrete implementation of OfferRepository using bun.
type OfferDBImpl struct {
	DB *bun.DB
}

// GetOffersForBidderRound retrieves every offer submitted for a bidder round,
// across all round indexes. Ordering carries no meaning for aggregation; the
// stable order just keeps diagnostic output readable.
func (db *OfferDBImpl) GetOffersForBidderRound(ctx context.Context, bidderRoundID uuid.UUID) ([]bidroundtypes.Offer, error) {
	var models []Offer
	err := db.DB.NewSelect().
		Model(&models).
		Where("bidder_round_id = ?", bidderRoundID).
		Order("round_index ASC", "created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}

	offers := make([]bidroundtypes.Offer, 0, len(models))
	for i := range models {
		offers = append(offers, models[i].toDomain())
	}
	return offers, nil
}
