package bidroundhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bidroundservice "github.com/solawi-club/bidround/app/modules/bidderround/application"
	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
	bidrounddb "github.com/solawi-club/bidround/app/modules/bidderround/infrastructure/repositories"
)

// Handlers exposes the resolution operations over HTTP for interactive and
// scheduled triggers.
type Handlers struct {
	service bidroundservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the HTTP handlers for the bidder round module.
func NewHandlers(service bidroundservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the module's routes on the given router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/bidder-rounds/{bidderRoundID}/resolve", h.ResolveBidderRound)
	r.Post("/bidder-rounds/resolve-all", h.ResolveAllBidderRounds)
	r.Get("/bidder-rounds/{bidderRoundID}/aggregates", h.GetAggregates)
}

type outcomeResponse struct {
	Outcome       bidroundtypes.OutcomeKind `json:"outcome"`
	RoundWon      int                       `json:"round_won,omitempty"`
	ReachedAmount *decimal.Decimal          `json:"reached_amount,omitempty"`
}

type aggregateResponse struct {
	RoundIndex  int             `json:"round_index"`
	OfferCount  int             `json:"offer_count"`
	WeightedSum decimal.Decimal `json:"weighted_sum"`
}

type batchEntryResponse struct {
	Outcome       bidroundtypes.OutcomeKind `json:"outcome,omitempty"`
	RoundWon      int                       `json:"round_won,omitempty"`
	ReachedAmount *decimal.Decimal          `json:"reached_amount,omitempty"`
	Error         string                    `json:"error,omitempty"`
}

// ResolveBidderRound triggers resolution for one bidder round. Each outcome
// kind maps to its own status code so schedulers can branch without parsing
// the body.
func (h *Handlers) ResolveBidderRound(w http.ResponseWriter, r *http.Request) {
	bidderRoundID, err := uuid.Parse(chi.URLParam(r, "bidderRoundID"))
	if err != nil {
		http.Error(w, "invalid bidder round id", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.Resolve(r.Context(), bidderRoundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := outcomeResponse{Outcome: outcome.Kind}
	if outcome.IsSuccess() {
		resp.RoundWon = outcome.RoundWon
		resp.ReachedAmount = &outcome.ReachedAmount
	}
	h.writeJSON(w, statusForOutcome(outcome.Kind), resp)
}

// ResolveAllBidderRounds triggers resolution for every unresolved bidder
// round. The batch itself always answers 200; per-round faults show up as
// error entries in the body.
func (h *Handlers) ResolveAllBidderRounds(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ResolveAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make(map[string]batchEntryResponse, len(results))
	for id, result := range results {
		if result.Err != nil {
			resp[id.String()] = batchEntryResponse{Error: result.Err.Error()}
			continue
		}
		entry := batchEntryResponse{Outcome: result.Outcome.Kind}
		if result.Outcome.IsSuccess() {
			entry.RoundWon = result.Outcome.RoundWon
			entry.ReachedAmount = &result.Outcome.ReachedAmount
		}
		resp[id.String()] = entry
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetAggregates returns the per-round aggregates for display, sorted by round
// index.
func (h *Handlers) GetAggregates(w http.ResponseWriter, r *http.Request) {
	bidderRoundID, err := uuid.Parse(chi.URLParam(r, "bidderRoundID"))
	if err != nil {
		http.Error(w, "invalid bidder round id", http.StatusBadRequest)
		return
	}

	aggregates, err := h.service.GetAggregates(r.Context(), bidderRoundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]aggregateResponse, 0, len(aggregates))
	for _, agg := range aggregates {
		resp = append(resp, aggregateResponse{
			RoundIndex:  agg.RoundIndex,
			OfferCount:  agg.OfferCount,
			WeightedSum: agg.WeightedSum,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].RoundIndex < resp[j].RoundIndex })
	h.writeJSON(w, http.StatusOK, resp)
}

func statusForOutcome(kind bidroundtypes.OutcomeKind) int {
	switch kind {
	case bidroundtypes.OutcomeSuccess:
		return http.StatusOK
	case bidroundtypes.OutcomeAlreadyResolved:
		return http.StatusConflict
	case bidroundtypes.OutcomeNotEnoughMoney:
		return http.StatusPaymentRequired
	case bidroundtypes.OutcomeNotAllOffersGiven:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, bidrounddb.ErrBidderRoundNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "Bidder round request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}
