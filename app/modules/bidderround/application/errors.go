package bidroundservice

import "errors"

// Faults are precondition and invariant violations, distinct from the business
// outcomes in domain/types. They abort the single bidder round's resolution
// and are surfaced as errors, never as outcomes.
var (
	ErrInvalidTargetAmount    = errors.New("bidder round target amount must be positive")
	ErrInvalidCountOffers     = errors.New("bidder round must offer at least one round")
	ErrNoExpectedParticipants = errors.New("expected participant count must be positive")
	ErrDuplicateOffer         = errors.New("duplicate offer for participant and round")
)
