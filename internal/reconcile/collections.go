package reconcile

import (
	"sort"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// RuleSource supplies the rules and display order used to seed the store
type RuleSource interface {
	Rules() []domain.UnlockRule
	Keys() []string
}

// DefaultCollections returns every collection the engine knows about, seeded
// from rules where seeding applies
func DefaultCollections(rules RuleSource) []Collection {
	return []Collection{
		{
			Name:         store.CollectionUnlockRules,
			OrdinalKeyed: true,
			Defaults: func() []store.Document {
				var docs []store.Document
				for _, rule := range rules.Rules() {
					rec, err := store.Encode(rule)
					if err != nil {
						continue
					}
					docs = append(docs, store.Document{Key: store.OrdinalKey(int(rule.Ordinal)), Record: rec})
				}
				sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
				return docs
			},
		},
		{
			Name: store.CollectionShopLayout,
			Defaults: func() []store.Document {
				keys := make([]any, 0)
				for _, k := range rules.Keys() {
					keys = append(keys, k)
				}
				return []store.Document{{Key: store.MainKey, Record: store.Record{"keys": keys}}}
			},
		},
		{Name: store.CollectionInventories},
		{Name: store.CollectionProgress},
	}
}

// OrdinalKeyed filters collections down to those that take part in key migration
func OrdinalKeyed(collections []Collection) []string {
	var names []string
	for _, c := range collections {
		if c.OrdinalKeyed {
			names = append(names, c.Name)
		}
	}
	return names
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
