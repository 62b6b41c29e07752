// Package unlock decides whether a tower may be acquired and explains why not.
package unlock

import (
	"fmt"
	"sort"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// StatusCode is a stable identifier for the first failing unlock condition
type StatusCode string

const (
	StatusInactive          StatusCode = "inactive"
	StatusNotPurchasable    StatusCode = "not_purchasable"
	StatusDefaultUnlocked   StatusCode = "default_unlocked"
	StatusLevelRequired     StatusCode = "level_required"
	StatusInsufficientFunds StatusCode = "insufficient_currency"
	StatusMilestoneRequired StatusCode = "milestone_required"
	StatusAvailable         StatusCode = "available"
)

// StatusMessage is a code plus the text shown to players
type StatusMessage struct {
	Code StatusCode `json:"code"`
	Text string     `json:"text"`
}

// CanUnlock reports whether snapshot satisfies rule. A default-unlocked rule
// is always eligible. Panics on a nil rule.
func CanUnlock(rule *domain.UnlockRule, snapshot domain.ProgressSnapshot) bool {
	mustRule(rule)

	if rule.IsDefaultUnlocked {
		return true
	}
	if !rule.IsActive || !rule.IsPurchasable {
		return false
	}
	return snapshot.CurrentLevel >= rule.RequiredProgressLevel &&
		snapshot.CurrentCurrency >= rule.UnlockCost &&
		firstMissingMilestone(rule, snapshot) == ""
}

// ExplainStatus returns the first failing condition. The order is fixed:
// inactive, not purchasable, default unlocked, level, currency, milestones.
// Panics on a nil rule.
func ExplainStatus(rule *domain.UnlockRule, snapshot domain.ProgressSnapshot) StatusMessage {
	mustRule(rule)

	switch {
	case !rule.IsActive:
		return StatusMessage{StatusInactive, TextInactive}
	case !rule.IsPurchasable:
		return StatusMessage{StatusNotPurchasable, TextNotPurchasable}
	case rule.IsDefaultUnlocked:
		return StatusMessage{StatusDefaultUnlocked, TextDefaultUnlocked}
	case snapshot.CurrentLevel < rule.RequiredProgressLevel:
		return StatusMessage{StatusLevelRequired, fmt.Sprintf(TextFmtRequiresLevel, rule.RequiredProgressLevel)}
	case snapshot.CurrentCurrency < rule.UnlockCost:
		return StatusMessage{StatusInsufficientFunds, fmt.Sprintf(TextFmtInsufficientCurrency, rule.UnlockCost)}
	}
	if m := firstMissingMilestone(rule, snapshot); m != "" {
		return StatusMessage{StatusMilestoneRequired, fmt.Sprintf(TextFmtRequiresMilestone, m)}
	}
	return StatusMessage{StatusAvailable, TextAvailable}
}

// firstMissingMilestone returns the lowest missing milestone id so the
// message is the same no matter how the rule lists them
func firstMissingMilestone(rule *domain.UnlockRule, snapshot domain.ProgressSnapshot) string {
	var missing []string
	for _, m := range rule.RequiredCompletedMilestones {
		if !snapshot.HasMilestone(m) {
			missing = append(missing, m)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	sort.Strings(missing)
	return missing[0]
}

func mustRule(rule *domain.UnlockRule) {
	if rule == nil {
		panic("unlock: nil rule")
	}
}
