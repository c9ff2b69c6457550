package store

import "errors"

// Precondition-violation sentinels: returned as failures with aggregates
// left untouched. ErrOutOfRange, ErrNonceNotFound and ErrLocked are returned
// as is; Append wraps ErrSequenceMismatch with the expected and received
// block numbers, so match it with errors.Is.
var (
	// ErrOutOfRange is returned by Read/BlockByNumber for id == 0 or
	// id > TotalBlocks().
	ErrOutOfRange = errors.New("blocksim: block id out of range")

	// ErrNonceNotFound is returned by FindByNonce when no persisted block
	// carries the queried nonce.
	ErrNonceNotFound = errors.New("blocksim: nonce not found")

	// ErrLocked is returned by Open when another Engine already holds the
	// data directory's advisory lock.
	ErrLocked = errors.New("blocksim: data directory is locked by another engine")

	// ErrSequenceMismatch is returned by Append when the caller hands in a
	// block whose Number doesn't immediately follow the current chain tip.
	ErrSequenceMismatch = errors.New("blocksim: append block number does not follow chain tip")
)
