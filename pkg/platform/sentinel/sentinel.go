package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: row does not exist in the store
// - ErrConflict: unique constraint violated (duplicate TPIN or email)
// - ErrExpired: session has passed its TTL
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
