package resolver

// DefaultTierLevels are the progress levels that start tiers 1 through 4
var DefaultTierLevels = []int{1, 3, 5, 8}

// WorkingListCapacity bounds how many owners keep a working definition list
const WorkingListCapacity = 4096

// WarningSource names the resolver in consistency warnings
const WarningSource = "resolver"

const (
	WarnFmtPartialMatch    = "matched %d of %d selected keys, unmatched %v"
	LogMsgPartialMatch     = "Resolution matched fewer keys than were selected"
	LogMsgDefinitionLocked = "Definition category not unlocked at this tier"
)
