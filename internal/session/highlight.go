package session

// HighlightKind — элемент интерфейса, который может подсвечиваться.
type HighlightKind int

const (
	HighlightTransform HighlightKind = iota // transformer settings
	HighlightSlots                          // "Remap Slots" button, on slot warning
	HighlightApply                          // "Apply changes", once everything else was looked at
	highlightCount
)

func (k HighlightKind) String() string {
	switch k {
	case HighlightTransform:
		return "transform"
	case HighlightSlots:
		return "slots"
	case HighlightApply:
		return "apply"
	default:
		return "unknown"
	}
}

// Highlight tracks whether the user has looked at a control in the current round.
// A round is a generation of the session's filter and mod state; changing
// either starts a new round and re-arms every enabled highlight.
type Highlight struct {
	round   int64
	enabled bool
}

func newHighlight() Highlight {
	return Highlight{round: -1}
}

// Show enables or disables the highlight for the current frame.
func (h *Highlight) Show(show bool) {
	h.enabled = show
}

// Touch marks the control as seen in round.
func (h *Highlight) Touch(round int64) {
	h.round = round
}

// Satisfied reports whether the highlight no longer asks for attention.
func (h Highlight) Satisfied(round int64) bool {
	return !h.enabled || h.round == round
}

// Lit reports whether the control should be drawn highlighted.
func (h Highlight) Lit(round int64) bool {
	return h.enabled && h.round != round
}
