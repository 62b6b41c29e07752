package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/store"
	"github.com/osse101/ArsenalSync_Go/internal/store/memory"
)

func TestDocumentProvider_Snapshot(t *testing.T) {
	s := memory.New()
	s.Seed(store.CollectionProgress, "alice", store.Record{
		"current_level":        4,
		"current_currency":     2500,
		"completed_milestones": []any{"stage_03"},
	})
	p := NewDocumentProvider(s)
	ctx := context.Background()

	snap, err := p.Snapshot(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressSnapshot{CurrentLevel: 4, CurrentCurrency: 2500, CompletedMilestones: []string{"stage_03"}}, snap)

	snap, err = p.Snapshot(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressSnapshot{}, snap)
}

func TestDocumentProvider_RemoteFailure(t *testing.T) {
	s := memory.New()
	s.FailOn(store.OpGet, store.ErrUnavailable)

	_, err := NewDocumentProvider(s).Snapshot(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemote))
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(domain.ProgressSnapshot{CurrentLevel: 1})
	p.Set("alice", domain.ProgressSnapshot{CurrentLevel: 9})

	snap, _ := p.Snapshot(context.Background(), "alice")
	assert.Equal(t, 9, snap.CurrentLevel)
	snap, _ = p.Snapshot(context.Background(), "bob")
	assert.Equal(t, 1, snap.CurrentLevel)
}
