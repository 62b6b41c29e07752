package domain

import "time"

// DefaultMaxSelected is the selection quota when none is configured
const DefaultMaxSelected = 3

// InventoryEntry is one owned tower. Unique per (OwnerID, DefinitionKey).
type InventoryEntry struct {
	OwnerID       string    `json:"owner_id"`
	DefinitionKey string    `json:"definition_key"`
	Category      Category  `json:"category,omitempty"`
	AcquiredAt    time.Time `json:"acquired_at"`
	IsSelected    bool      `json:"is_selected"`
	UsageCount    int       `json:"usage_count"`
}

// InventorySnapshot is the complete persisted form of one owner's inventory
type InventorySnapshot struct {
	OwnerID     string           `json:"owner_id"`
	Entries     []InventoryEntry `json:"entries"`
	MaxSelected int              `json:"max_selected"`
	LastUpdated time.Time        `json:"last_updated"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ProgressSnapshot is the read-only progression state used for unlock checks
type ProgressSnapshot struct {
	CurrentLevel        int      `json:"current_level"`
	CurrentCurrency     int      `json:"current_currency"`
	CompletedMilestones []string `json:"completed_milestones"`
}

// HasMilestone reports whether id is among the completed milestones
func (p ProgressSnapshot) HasMilestone(id string) bool {
	for _, m := range p.CompletedMilestones {
		if m == id {
			return true
		}
	}
	return false
}

// ShopLayout is the ordered list of tower keys shown in the store
type ShopLayout struct {
	Keys      []string  `json:"keys"`
	CreatedAt time.Time `json:"created_at"`
}
