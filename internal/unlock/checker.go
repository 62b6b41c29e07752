package unlock

import (
	"context"
	"fmt"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// RuleSource is the part of the catalog the checker reads
type RuleSource interface {
	Rule(key string) (domain.UnlockRule, bool)
	Rules() []domain.UnlockRule
}

// ProgressProvider supplies an owner's progress snapshot on demand
type ProgressProvider interface {
	Snapshot(ctx context.Context, ownerID string) (domain.ProgressSnapshot, error)
}

// KeyStatus is the unlock verdict for one tower
type KeyStatus struct {
	Key       string          `json:"key"`
	Category  domain.Category `json:"category"`
	Cost      int             `json:"unlock_cost"`
	CanUnlock bool            `json:"can_unlock"`
	Status    StatusMessage   `json:"status"`
}

// Checker answers keyed unlock queries for store and shop screens
type Checker struct {
	rules    RuleSource
	progress ProgressProvider
}

// NewChecker creates a Checker
func NewChecker(rules RuleSource, progress ProgressProvider) *Checker {
	return &Checker{rules: rules, progress: progress}
}

// CanUnlockKey evaluates a single tower for owner. Unknown keys return
// domain.ErrRuleNotFound.
func (c *Checker) CanUnlockKey(ctx context.Context, ownerID, key string) (KeyStatus, error) {
	rule, ok := c.rules.Rule(key)
	if !ok {
		return KeyStatus{}, fmt.Errorf("%w: '%s'", domain.ErrRuleNotFound, key)
	}
	snapshot, err := c.snapshot(ctx, ownerID)
	if err != nil {
		return KeyStatus{}, err
	}
	return Evaluate(&rule, snapshot), nil
}

// StatusAll evaluates every rule in catalog order
func (c *Checker) StatusAll(ctx context.Context, ownerID string) ([]KeyStatus, error) {
	snapshot, err := c.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return EvaluateAll(c.rules.Rules(), snapshot), nil
}

func (c *Checker) snapshot(ctx context.Context, ownerID string) (domain.ProgressSnapshot, error) {
	snapshot, err := c.progress.Snapshot(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgProgressLookupFailed, "owner_id", ownerID, "error", err)
		return domain.ProgressSnapshot{}, fmt.Errorf("failed to get progress for %s: %w", ownerID, err)
	}
	return snapshot, nil
}

// Evaluate combines CanUnlock and ExplainStatus for one rule
func Evaluate(rule *domain.UnlockRule, snapshot domain.ProgressSnapshot) KeyStatus {
	return KeyStatus{
		Key:       rule.Key,
		Category:  rule.Category,
		Cost:      rule.UnlockCost,
		CanUnlock: CanUnlock(rule, snapshot),
		Status:    ExplainStatus(rule, snapshot),
	}
}

// EvaluateAll evaluates rules in the order given
func EvaluateAll(rules []domain.UnlockRule, snapshot domain.ProgressSnapshot) []KeyStatus {
	out := make([]KeyStatus, len(rules))
	for i := range rules {
		out[i] = Evaluate(&rules[i], snapshot)
	}
	return out
}
