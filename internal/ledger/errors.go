package ledger

import "errors"

// Sentinel errors for the modification ledger.
var (
	ErrEmptySource     = errors.New("change-set source file is empty")
	ErrEmptyChangeSet  = errors.New("change-set has no items")
	ErrFileDeleted     = errors.New("file changes were deleted, restart required")
	ErrNothingToDelete = errors.New("file has no recorded changes")
)
