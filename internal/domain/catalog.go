package domain

import "sort"

// ContentDefinition is a concrete, placeable tower definition supplied by the
// content-loading collaborator. Immutable once loaded.
type ContentDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Cost        int      `json:"cost" yaml:"cost"`
	SellValue   int      `json:"sell_value" yaml:"sell_value"`
	Health      int      `json:"health" yaml:"health"`
	MaxHealth   int      `json:"max_health" yaml:"max_health"`
}

// UnlockRule describes when a tower may be acquired
type UnlockRule struct {
	Ordinal                     TowerType `json:"ordinal"`
	Key                         string    `json:"key"`
	Category                    Category  `json:"category"`
	UnlockCost                  int       `json:"unlock_cost"`
	RequiredProgressLevel       int       `json:"required_progress_level"`
	RequiredCompletedMilestones []string  `json:"required_completed_milestones"`
	IsDefaultUnlocked           bool      `json:"is_default_unlocked"`
	IsPurchasable               bool      `json:"is_purchasable"`
	IsActive                    bool      `json:"is_active"`
	Rarity                      Rarity    `json:"rarity"`
	SortOrder                   int       `json:"sort_order"`
}

// DefinitionPool maps a definition key to zero or more candidate definitions
type DefinitionPool map[string][]ContentDefinition

// NewDefinitionPool groups definitions by their ID
func NewDefinitionPool(defs []ContentDefinition) DefinitionPool {
	pool := make(DefinitionPool, len(defs))
	for _, def := range defs {
		pool[def.ID] = append(pool[def.ID], def)
	}
	return pool
}

// AllDefinitions flattens the pool in key order so callers see a stable sequence
func (p DefinitionPool) AllDefinitions() []ContentDefinition {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ContentDefinition, 0, len(keys))
	for _, k := range keys {
		out = append(out, p[k]...)
	}
	return out
}
