package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into HTTP responses.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrDuplicate: an equivalent entity already exists
// - ErrAlreadyProcessed: event was handled before (replay)
// - ErrUnavailable: service or resource temporarily unavailable
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrUnavailable      = errors.New("unavailable")
)
