package bidderround

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	bidroundservice "github.com/solawi-club/bidround/app/modules/bidderround/application"
	bidroundhandlers "github.com/solawi-club/bidround/app/modules/bidderround/infrastructure/handlers"
	bidrounddb "github.com/solawi-club/bidround/app/modules/bidderround/infrastructure/repositories"
)

// Module wires the bidder round repositories, service and HTTP handlers.
type Module struct {
	Service  bidroundservice.Service
	Handlers *bidroundhandlers.Handlers
	logger   *slog.Logger
}

// NewBidderRoundModule creates a new instance of the bidder round module.
func NewBidderRoundModule(
	db *bun.DB,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics bidroundservice.ResolutionMetrics,
	annualizationFactor int64,
) *Module {
	service := bidroundservice.NewBidderRoundService(
		&bidrounddb.BidderRoundDBImpl{DB: db},
		&bidrounddb.OfferDBImpl{DB: db},
		&bidrounddb.ParticipantDBImpl{DB: db},
		publisher,
		logger,
		metrics,
		annualizationFactor,
	)

	return &Module{
		Service:  service,
		Handlers: bidroundhandlers.NewHandlers(service, logger),
		logger:   logger,
	}
}
