package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symptom-checker/pkg"
)

var sampleOutcome = pkg.Outcome{Result: &pkg.Analysis{
	Summary: "Flu-like.",
	Causes:  []string{"Cold", "Flu"},
	Advice:  []string{"Rest", "Hydrate"},
}}

func TestMemoryStore_TakeAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	_, ok, err := s.TakeAndClear(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "a", sampleOutcome))
	require.NoError(t, s.Put(ctx, "b", pkg.Outcome{Error: "Please provide your symptoms."}))

	got, ok, err := s.TakeAndClear(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleOutcome, got)

	_, ok, err = s.TakeAndClear(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "slot is read-once")

	got, ok, err = s.TakeAndClear(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Please provide your symptoms.", got.Error)
	assert.True(t, got.Failed())
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	require.NoError(t, s.Put(ctx, "a", pkg.Outcome{Error: "first"}))
	require.NoError(t, s.Put(ctx, "a", sampleOutcome))

	got, ok, err := s.TakeAndClear(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleOutcome, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, "old", sampleOutcome))
	now = now.Add(2 * time.Minute)

	_, ok, err := s.TakeAndClear(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "stale", sampleOutcome))
	now = now.Add(2 * time.Minute)
	require.NoError(t, s.Put(ctx, "fresh", sampleOutcome))
	assert.Equal(t, 1, s.Len(), "expired entries are swept on write")
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = s.Put(ctx, id, sampleOutcome)
			_, _, _ = s.TakeAndClear(ctx, id)
		}(string(rune('a' + i%26)))
	}
	wg.Wait()
}
