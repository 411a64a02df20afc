package remap

import "errors"

// Sentinel errors for the remap table.
var (
	ErrInvalidSource  = errors.New("invalid remap source slot")
	ErrInvalidTarget  = errors.New("invalid remap target slot")
	ErrSourceDisabled = errors.New("no listed item occupies the source slot")
	ErrNoDrag         = errors.New("no slot is being dragged")
	ErrTargetDisabled = errors.New("remap target slot is disabled")
)
