package bidrounddb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ParticipantDBImpl is the concrete implementation of ParticipantRepository using bun.
type ParticipantDBImpl struct {
	DB *bun.DB
}

// CountActiveParticipants counts the participants expected to submit an offer
// per round. Members marked inactive (paused memberships, exclusions) are not
// counted toward full participation.
func (db *ParticipantDBImpl) CountActiveParticipants(ctx context.Context, bidderRoundID uuid.UUID) (int, error) {
	count, err := db.DB.NewSelect().
		Model((*Participant)(nil)).
		Where("bidder_round_id = ?", bidderRoundID).
		Where("active = TRUE").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active participants: %w", err)
	}
	return count, nil
}
