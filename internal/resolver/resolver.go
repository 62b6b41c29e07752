// Package resolver turns the selected inventory keys into the concrete
// content definitions that are active for a session.
package resolver

import (
	"context"
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/event"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
)

// Outcome is what happened to one definition during a resolution
type Outcome string

const (
	OutcomeIncluded    Outcome = "included"
	OutcomeLocked      Outcome = "locked"
	OutcomeNotSelected Outcome = "not_selected"
)

// Match records which definition satisfied a selected key and on which pass
type Match struct {
	Key          string `json:"key"`
	DefinitionID string `json:"definition_id"`
	// Pass is 1 for an exact key match and 2 for a category match
	Pass int `json:"pass"`
}

// Resolution is the result of one Resolve call
type Resolution struct {
	Definitions []domain.ContentDefinition   `json:"definitions"`
	Outcomes    map[string]Outcome           `json:"outcomes"`
	Matches     []Match                      `json:"matches"`
	Unmatched   []string                     `json:"unmatched"`
	Tier        int                          `json:"tier"`
	Warnings    []*domain.ConsistencyWarning `json:"-"`
}

// Resolver keeps one working definition list per owner between calls. Calls
// are serialized. The least recently resolved owners are evicted once
// WorkingListCapacity owners are held.
type Resolver struct {
	bus        event.Bus
	thresholds []int

	mu      sync.Mutex
	working *lru.Cache[string, []domain.ContentDefinition]
}

// New creates a Resolver. thresholds are the progress levels at which tiers
// 1, 2, 3... begin; nil uses DefaultTierLevels. bus may be nil.
func New(bus event.Bus, thresholds []int) *Resolver {
	if len(thresholds) == 0 {
		thresholds = DefaultTierLevels
	}
	t := append([]int(nil), thresholds...)
	sort.Ints(t)
	working, _ := lru.New[string, []domain.ContentDefinition](WorkingListCapacity)
	return &Resolver{bus: bus, thresholds: t, working: working}
}

// TierForLevel counts how many tier thresholds level has reached
func TierForLevel(level int, thresholds []int) int {
	tier := 0
	for _, th := range thresholds {
		if level >= th {
			tier++
		}
	}
	if tier > domain.MaxTier {
		tier = domain.MaxTier
	}
	return tier
}

// Tier converts a progress level with the resolver's thresholds
func (r *Resolver) Tier(level int) int {
	return TierForLevel(level, r.thresholds)
}

// Working returns a copy of the owner's current working definition list
func (r *Resolver) Working(ownerID string) []domain.ContentDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, _ := r.working.Peek(ownerID)
	return append([]domain.ContentDefinition(nil), prev...)
}

// ResolveForLevel is Resolve with the tier derived from a progress level
func (r *Resolver) ResolveForLevel(ctx context.Context, ownerID string, selected []domain.InventoryEntry, pool domain.DefinitionPool, level int) Resolution {
	return r.Resolve(ctx, ownerID, selected, pool, r.Tier(level))
}

// Resolve matches every selected entry to at most one definition and returns
// the eligible matched definitions. Exact key matches are made for all keys
// before any category match so a category match never takes a definition
// that exactly names another selected key. The result replaces the owner's
// working list and a DefinitionsResolved notification is sent once per call.
func (r *Resolver) Resolve(ctx context.Context, ownerID string, selected []domain.InventoryEntry, pool domain.DefinitionPool, tier int) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := logger.FromContext(ctx).With("owner_id", ownerID)
	eligible := domain.EligibleCategories(tier)
	previous, _ := r.working.Get(ownerID)
	source := mergeSource(previous, pool)
	keys, categories := selectedKeys(selected)

	fold := cases.Fold()
	used := make([]bool, len(source))
	matched := make(map[string]Match, len(keys))
	usable := func(i int) bool {
		return !used[i] && eligible.Has(source[i].Category)
	}

	// Pass 1: exact key, case-insensitive. A candidate tagged with the key's
	// declared category beats one that only shares the ID.
	for _, key := range keys {
		want := fold.String(key)
		pick := -1
		for i := range source {
			if !usable(i) || fold.String(source[i].ID) != want {
				continue
			}
			if pick < 0 {
				pick = i
			}
			if category := categories[key]; category == "" || source[i].Category == category {
				pick = i
				break
			}
		}
		if pick >= 0 {
			used[pick] = true
			matched[key] = Match{Key: key, DefinitionID: source[pick].ID, Pass: 1}
		}
	}

	// Pass 2: first unused definition of the key's declared category
	for _, key := range keys {
		if _, done := matched[key]; done {
			continue
		}
		category := categories[key]
		if category == "" {
			continue
		}
		for i := range source {
			if usable(i) && source[i].Category == category {
				used[i] = true
				matched[key] = Match{Key: key, DefinitionID: source[i].ID, Pass: 2}
				break
			}
		}
	}

	res := Resolution{
		Definitions: make([]domain.ContentDefinition, 0, len(matched)),
		Outcomes:    make(map[string]Outcome, len(source)),
		Tier:        tier,
	}
	for i, def := range source {
		var outcome Outcome
		switch {
		case used[i]:
			outcome = OutcomeIncluded
			res.Definitions = append(res.Definitions, def)
		case !eligible.Has(def.Category):
			outcome = OutcomeLocked
			log.Debug(LogMsgDefinitionLocked, "definition_id", def.ID, "category", def.Category, "tier", tier)
		default:
			outcome = OutcomeNotSelected
		}
		// Sibling candidates share an ID; the included one decides its outcome
		if res.Outcomes[def.ID] != OutcomeIncluded {
			res.Outcomes[def.ID] = outcome
		}
		metrics.ResolutionOutcomes.WithLabelValues(string(outcome)).Inc()
	}
	for _, key := range keys {
		if m, ok := matched[key]; ok {
			res.Matches = append(res.Matches, m)
		} else {
			res.Unmatched = append(res.Unmatched, key)
		}
	}

	if len(matched) != len(keys) {
		warn := &domain.ConsistencyWarning{
			Source: WarningSource,
			Detail: fmt.Sprintf(WarnFmtPartialMatch, len(matched), len(keys), res.Unmatched),
		}
		res.Warnings = append(res.Warnings, warn)
		metrics.ResolutionWarnings.Inc()
		log.Warn(LogMsgPartialMatch, "matched", len(matched), "selected", len(keys), "unmatched", res.Unmatched, "tier", tier)
	}

	r.working.Add(ownerID, append([]domain.ContentDefinition(nil), res.Definitions...))
	event.Notify(ctx, r.bus, event.NewDefinitionsResolvedEvent(res.Definitions))
	return res
}

// mergeSource starts from the previous working list and overlays the pool.
// Every pool candidate is kept. Previous entries whose ID the pool also
// carries are replaced in place by that ID's pool candidates; previous IDs the
// pool lacks are kept once; the remaining pool candidates follow in key order.
func mergeSource(previous []domain.ContentDefinition, pool domain.DefinitionPool) []domain.ContentDefinition {
	var order []string
	candidates := make(map[string][]domain.ContentDefinition)
	for _, def := range pool.AllDefinitions() {
		if _, ok := candidates[def.ID]; !ok {
			order = append(order, def.ID)
		}
		candidates[def.ID] = append(candidates[def.ID], def)
	}

	out := make([]domain.ContentDefinition, 0, len(previous)+len(order))
	emitted := make(map[string]bool, len(previous)+len(order))
	for _, def := range previous {
		if emitted[def.ID] {
			continue
		}
		emitted[def.ID] = true
		if fromPool, ok := candidates[def.ID]; ok {
			out = append(out, fromPool...)
			continue
		}
		out = append(out, def)
	}
	for _, id := range order {
		if !emitted[id] {
			out = append(out, candidates[id]...)
			emitted[id] = true
		}
	}
	return out
}

// selectedKeys returns the distinct selected keys in sorted order together
// with each key's declared category
func selectedKeys(entries []domain.InventoryEntry) ([]string, map[string]domain.Category) {
	categories := make(map[string]domain.Category, len(entries))
	var keys []string
	for _, e := range entries {
		if e.DefinitionKey == "" {
			continue
		}
		if _, dup := categories[e.DefinitionKey]; dup {
			continue
		}
		category := e.Category
		if category == "" {
			if t, ok := domain.ParseTowerKey(e.DefinitionKey); ok {
				category = t.Category()
			}
		}
		categories[e.DefinitionKey] = category
		keys = append(keys, e.DefinitionKey)
	}
	sort.Strings(keys)
	return keys, categories
}
