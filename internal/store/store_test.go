package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

func TestOrdinalKey(t *testing.T) {
	tests := []struct {
		ordinal int
		want    string
	}{
		{0, "00"},
		{7, "07"},
		{10, "10"},
		{123, "123"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.ordinal), func(t *testing.T) {
			assert.Equal(t, tt.want, OrdinalKey(tt.ordinal))
		})
	}
}

func TestOrdinalKey_LexicalOrderMatchesNumeric(t *testing.T) {
	for i := 0; i < 99; i++ {
		assert.Less(t, OrdinalKey(i), OrdinalKey(i+1))
	}
}

func TestParseOrdinalKey(t *testing.T) {
	n, ok := ParseOrdinalKey("07")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = ParseOrdinalKey("7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	for _, bad := range []string{"", "main", "-1", "7a", " 7"} {
		_, ok := ParseOrdinalKey(bad)
		assert.False(t, ok, bad)
	}

	assert.True(t, IsCanonicalOrdinalKey("07"))
	assert.False(t, IsCanonicalOrdinalKey("7"))
	assert.False(t, IsCanonicalOrdinalKey("main"))
}

func TestEncodeDecode(t *testing.T) {
	type sample struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	rec, err := Encode(sample{Name: "x", Count: 3, Tags: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "x", rec["name"])

	var out sample
	require.NoError(t, Decode(rec, &out))
	assert.Equal(t, sample{Name: "x", Count: 3, Tags: []string{"a"}}, out)
}

func TestMatches(t *testing.T) {
	rec := Record{"ordinal": float64(3), "name": "a"}
	assert.True(t, Matches(rec, Filter{}))
	assert.True(t, Matches(rec, Filter{Field: "ordinal", Equals: 3}))
	assert.True(t, Matches(rec, Filter{Field: "name", Equals: "a"}))
	assert.False(t, Matches(rec, Filter{Field: "name", Equals: "b"}))
	assert.False(t, Matches(rec, Filter{Field: "missing", Equals: "a"}))
}

func TestEqual(t *testing.T) {
	a := Record{"a": 1, "b": []any{"x"}}
	b := Record{"b": []any{"x"}, "a": 1}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, Record{"a": 2}))
}

func TestNewRemoteError_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.RemoteKind
	}{
		{"permission", fmt.Errorf("wrapped: %w", ErrPermissionDenied), domain.RemotePermission},
		{"unavailable", ErrUnavailable, domain.RemoteConnectivity},
		{"deadline", context.DeadlineExceeded, domain.RemoteConnectivity},
		{"other", errors.New("boom"), domain.RemoteUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := NewRemoteError(OpGet, "c", "k", tt.err)
			assert.Equal(t, tt.want, remote.Kind)
			assert.ErrorIs(t, remote, domain.ErrRemote)
			assert.Equal(t, domain.ClassRemote, domain.Classify(remote))
		})
	}
}

func TestNewRemoteError_KeepsExisting(t *testing.T) {
	first := NewRemoteError(OpSet, "c", "k", ErrPermissionDenied)
	second := NewRemoteError(OpGet, "other", "", first)
	assert.Same(t, first, second)
}

func TestNoopStore(t *testing.T) {
	ctx := context.Background()
	s := NewNoopStore()

	ok, err := s.Exists(ctx, "c", "k")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, found, err := s.Get(ctx, "c", "k")
	assert.NoError(t, err)
	assert.False(t, found)

	docs, err := s.Query(ctx, "c", Filter{})
	assert.NoError(t, err)
	assert.Empty(t, docs)

	assert.ErrorIs(t, s.Set(ctx, "c", "k", Record{}), domain.ErrNotInitialized)
	assert.ErrorIs(t, s.Delete(ctx, "c", "k"), domain.ErrNotInitialized)
}
