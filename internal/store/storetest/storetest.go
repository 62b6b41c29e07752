// Package storetest holds the behavior every store.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// Run exercises a fresh, empty backend returned by newStore
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("MissingDocument", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		exists, err := s.Exists(ctx, "rules", "00")
		require.NoError(t, err)
		assert.False(t, exists)

		rec, found, err := s.Get(ctx, "rules", "00")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, rec)

		docs, err := s.Query(ctx, "rules", store.Filter{})
		require.NoError(t, err)
		assert.Empty(t, docs)

		assert.NoError(t, s.Delete(ctx, "rules", "00"))
	})

	t.Run("SetGetReplace", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "rules", "01", store.Record{"key": "MachineGun2", "cost": 50}))
		rec, found, err := s.Get(ctx, "rules", "01")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "MachineGun2", rec["key"])
		assert.EqualValues(t, 50, rec["cost"])

		require.NoError(t, s.Set(ctx, "rules", "01", store.Record{"key": "MachineGun2"}))
		rec, _, err = s.Get(ctx, "rules", "01")
		require.NoError(t, err)
		_, hasCost := rec["cost"]
		assert.False(t, hasCost, "Set replaces the whole document")

		exists, err := s.Exists(ctx, "rules", "01")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = s.Exists(ctx, "layout", "01")
		require.NoError(t, err)
		assert.False(t, exists, "collections are isolated")
	})

	t.Run("QueryOrderFilterLimit", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, key := range []string{"07", "00", "03", "10"} {
			n, _ := store.ParseOrdinalKey(key)
			require.NoError(t, s.Set(ctx, "rules", key, store.Record{"ordinal": n, "active": n%2 == 1}))
		}

		docs, err := s.Query(ctx, "rules", store.Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"00", "03", "07", "10"}, keys(docs))

		docs, err = s.Query(ctx, "rules", store.Filter{Field: "ordinal", Equals: 7})
		require.NoError(t, err)
		assert.Equal(t, []string{"07"}, keys(docs))

		docs, err = s.Query(ctx, "rules", store.Filter{Field: "active", Equals: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"03", "07"}, keys(docs))

		docs, err = s.Query(ctx, "rules", store.Filter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"00", "03"}, keys(docs))
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "inventories", "alice", store.Record{"owner_id": "alice"}))
		require.NoError(t, s.Delete(ctx, "inventories", "alice"))

		exists, err := s.Exists(ctx, "inventories", "alice")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("NestedValuesSurvive", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := store.Record{
			"entries": []any{map[string]any{"definition_key": "Cannon1", "is_selected": true}},
			"meta":    map[string]any{"created_at": "2024-01-02T03:04:05Z"},
		}
		require.NoError(t, s.Set(ctx, "inventories", "bob", in))

		out, found, err := s.Get(ctx, "inventories", "bob")
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, store.Equal(in, out))
	})
}

func keys(docs []store.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Key
	}
	return out
}
