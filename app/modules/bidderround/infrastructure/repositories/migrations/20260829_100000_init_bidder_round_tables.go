package bidroundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	bidrounddb "github.com/solawi-club/bidround/app/modules/bidderround/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*bidrounddb.BidderRound)(nil),
			(*bidrounddb.Participant)(nil),
			(*bidrounddb.Offer)(nil),
			(*bidrounddb.BidderRoundReport)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		// One offer per participant per round per bidder round.
		_, err := db.NewCreateIndex().
			Model((*bidrounddb.Offer)(nil)).
			Index("offers_participant_round_ux").
			Unique().
			IfNotExists().
			Column("bidder_round_id", "participant_id", "round_index").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create offer uniqueness index: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*bidrounddb.BidderRoundReport)(nil),
			(*bidrounddb.Offer)(nil),
			(*bidrounddb.Participant)(nil),
			(*bidrounddb.BidderRound)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}
		return nil
	})
}
