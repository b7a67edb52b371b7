package bidrounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// BidderRoundDBImpl is the concrete implementation of BidderRoundRepository using bun.
type BidderRoundDBImpl struct {
	DB *bun.DB
}

// GetBidderRound retrieves a specific bidder round by ID.
func (db *BidderRoundDBImpl) GetBidderRound(ctx context.Context, id uuid.UUID) (*bidroundtypes.BidderRound, error) {
	round := new(BidderRound)
	err := db.DB.NewSelect().
		Model(round).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBidderRoundNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bidder round: %w", err)
	}
	return round.toDomain(), nil
}

// ListUnresolved returns all bidder rounds that do not have a report yet.
func (db *BidderRoundDBImpl) ListUnresolved(ctx context.Context) ([]bidroundtypes.BidderRound, error) {
	var models []BidderRound
	err := db.DB.NewSelect().
		Model(&models).
		Where("NOT EXISTS (SELECT 1 FROM bidder_round_reports rep WHERE rep.bidder_round_id = br.id)").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved bidder rounds: %w", err)
	}

	rounds := make([]bidroundtypes.BidderRound, 0, len(models))
	for i := range models {
		rounds = append(rounds, *models[i].toDomain())
	}
	return rounds, nil
}

// HasReport reports whether a resolution report already exists. This is only
// the fast path; CreateReport remains the authoritative guard.
func (db *BidderRoundDBImpl) HasReport(ctx context.Context, bidderRoundID uuid.UUID) (bool, error) {
	exists, err := db.DB.NewSelect().
		Model((*BidderRoundReport)(nil)).
		Where("bidder_round_id = ?", bidderRoundID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing report: %w", err)
	}
	return exists, nil
}

// GetReport retrieves the resolution report for a bidder round.
func (db *BidderRoundDBImpl) GetReport(ctx context.Context, bidderRoundID uuid.UUID) (*bidroundtypes.BidderRoundReport, error) {
	report := new(BidderRoundReport)
	err := db.DB.NewSelect().
		Model(report).
		Where("bidder_round_id = ?", bidderRoundID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bidder round %s", ErrReportNotFound, bidderRoundID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return report.toDomain(), nil
}

// CreateReport inserts the report guarded by the unique constraint on
// bidder_round_id. Zero rows affected means a concurrent resolution already
// created a report, and the caller must treat the round as resolved.
func (db *BidderRoundDBImpl) CreateReport(ctx context.Context, report *bidroundtypes.BidderRoundReport) (bool, error) {
	res, err := db.DB.NewInsert().
		Model(reportModel(report)).
		On("CONFLICT (bidder_round_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create report: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		slog.InfoContext(ctx, "Report already exists, insert skipped",
			slog.String("bidder_round_id", report.BidderRoundID.String()),
		)
		return false, nil
	}

	slog.InfoContext(ctx, "Report created",
		slog.String("bidder_round_id", report.BidderRoundID.String()),
		slog.Int("round_won", report.RoundWon),
	)
	return true, nil
}
