// Package catalog holds the unlock rule table and the content definitions
// that the rest of the engine queries.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// Catalog is the in-memory rule table. It is loaded once at startup and only
// changed through Update or Replace.
type Catalog struct {
	mu    sync.RWMutex
	rules map[domain.TowerType]domain.UnlockRule
	pool  domain.DefinitionPool
}

// New builds a catalog from rules and definitions. Every rule is normalized
// so Key and Category agree with its ordinal.
func New(rules []domain.UnlockRule, defs []domain.ContentDefinition) (*Catalog, error) {
	c := &Catalog{
		rules: make(map[domain.TowerType]domain.UnlockRule, len(rules)),
		pool:  domain.NewDefinitionPool(defs),
	}
	for _, r := range rules {
		normalized, err := normalize(r)
		if err != nil {
			return nil, err
		}
		if _, dup := c.rules[normalized.Ordinal]; dup {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateRule, normalized.Key)
		}
		c.rules[normalized.Ordinal] = normalized
	}
	return c, nil
}

// NewDefault returns the built-in catalog
func NewDefault() *Catalog {
	c, err := New(DefaultRules(), DefaultDefinitions())
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %v", err))
	}
	return c
}

// Rule looks up a rule by tower key (case-insensitive)
func (c *Catalog) Rule(key string) (domain.UnlockRule, bool) {
	t, ok := domain.ParseTowerKey(key)
	if !ok {
		return domain.UnlockRule{}, false
	}
	return c.RuleByOrdinal(t)
}

// RuleByOrdinal looks up a rule by ordinal
func (c *Catalog) RuleByOrdinal(t domain.TowerType) (domain.UnlockRule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rules[t]
	if ok {
		r = cloneRule(r)
	}
	return r, ok
}

// Rules returns every rule ordered by SortOrder, then ordinal
func (c *Catalog) Rules() []domain.UnlockRule {
	c.mu.RLock()
	out := make([]domain.UnlockRule, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, cloneRule(r))
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Ordinal < out[j].Ordinal
	})
	return out
}

// Keys returns the tower keys in display order
func (c *Catalog) Keys() []string {
	rules := c.Rules()
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	return keys
}

// Update replaces a single rule. The rule must name a known tower.
func (c *Catalog) Update(rule domain.UnlockRule) (domain.UnlockRule, error) {
	normalized, err := normalize(rule)
	if err != nil {
		return domain.UnlockRule{}, err
	}
	c.mu.Lock()
	c.rules[normalized.Ordinal] = normalized
	c.mu.Unlock()
	return cloneRule(normalized), nil
}

// Replace swaps the whole rule table, e.g. after reading it from the store.
// Invalid rules are skipped and returned as warnings.
func (c *Catalog) Replace(rules []domain.UnlockRule) []error {
	var warnings []error
	next := make(map[domain.TowerType]domain.UnlockRule, len(rules))
	for _, r := range rules {
		normalized, err := normalize(r)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		next[normalized.Ordinal] = normalized
	}

	c.mu.Lock()
	c.rules = next
	c.mu.Unlock()
	return warnings
}

// CategoryOf returns the declared category of a tower key
func (c *Catalog) CategoryOf(key string) (domain.Category, bool) {
	t, ok := domain.ParseTowerKey(key)
	if !ok {
		return "", false
	}
	return t.Category(), true
}

// AllDefinitions returns every content definition in key order
func (c *Catalog) AllDefinitions() []domain.ContentDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.AllDefinitions()
}

// Pool returns a copy of the definition pool
func (c *Catalog) Pool() domain.DefinitionPool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(domain.DefinitionPool, len(c.pool))
	for k, defs := range c.pool {
		out[k] = append([]domain.ContentDefinition(nil), defs...)
	}
	return out
}

// SetDefinitions replaces the definition pool
func (c *Catalog) SetDefinitions(defs []domain.ContentDefinition) {
	pool := domain.NewDefinitionPool(defs)
	c.mu.Lock()
	c.pool = pool
	c.mu.Unlock()
}

// normalize resolves the ordinal from the key when only one is set and
// rejects rules whose key and ordinal disagree
func normalize(r domain.UnlockRule) (domain.UnlockRule, error) {
	if r.Key != "" {
		t, ok := domain.ParseTowerKey(r.Key)
		if !ok {
			return r, fmt.Errorf("%w: '%s'", domain.ErrRuleNotFound, r.Key)
		}
		if r.Ordinal != t && r.Ordinal != 0 {
			return r, fmt.Errorf("%w: key '%s' does not match ordinal %d", ErrInvalidConfig, r.Key, int(r.Ordinal))
		}
		r.Ordinal = t
	}
	if !r.Ordinal.Valid() {
		return r, domain.NewValidationError(domain.ValidationUnknownOrdinal, fmt.Sprint(int(r.Ordinal)), "")
	}
	if r.UnlockCost < 0 || r.RequiredProgressLevel < 0 {
		return r, fmt.Errorf("%w: '%s' %s", ErrInvalidConfig, r.Ordinal.Key(), ErrMsgNegativeRequirement)
	}
	if !r.Rarity.Valid() {
		return r, fmt.Errorf("%w: '%s' %s", ErrInvalidConfig, r.Ordinal.Key(), ErrMsgUnknownRarity)
	}
	r.Key = r.Ordinal.Key()
	r.Category = r.Ordinal.Category()
	return cloneRule(r), nil
}

func cloneRule(r domain.UnlockRule) domain.UnlockRule {
	if r.RequiredCompletedMilestones != nil {
		r.RequiredCompletedMilestones = append([]string(nil), r.RequiredCompletedMilestones...)
	}
	return r
}
