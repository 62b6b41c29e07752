package unlock

// Player-facing status texts
const (
	TextInactive                = "Not available"
	TextNotPurchasable          = "Not purchasable"
	TextDefaultUnlocked         = "Unlocked by default"
	TextFmtRequiresLevel        = "Requires level %d"
	TextFmtInsufficientCurrency = "Insufficient currency (need %d)"
	TextFmtRequiresMilestone    = "Requires milestone %s"
	TextAvailable               = "Available"
)

// Log Messages
const (
	LogMsgProgressLookupFailed = "Failed to read progress snapshot"
)
