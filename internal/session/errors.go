package session

import "errors"

// Sentinel errors for session operations.
var (
	ErrMissingDependency = errors.New("session dependency is nil")
	ErrModalOpen         = errors.New("can't use while inventory is open")
	ErrNoActor           = errors.New("no actor to give items to")
	ErrWornSource        = errors.New("worn items can't be given, select a mod or an all-items list")
	ErrUnknownMod        = errors.New("mod file is not in the catalog")
	ErrNoModSelected     = errors.New("no mod selected")
	ErrNoTransformer     = errors.New("no transformer configured")
	ErrNothingChecked    = errors.New("no checked items to apply")
	ErrNotConfirmed      = errors.New("deletion not confirmed")
	ErrNoRemapStore      = errors.New("no remap store configured")
)
