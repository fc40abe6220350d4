package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, Entry{
		Artist:         "Radiohead",
		Album:          "OK Computer",
		Year:           1997,
		QueryCount:     2,
		CandidateCount: 14,
		BestUsername:   "alice",
		BestDirectory:  "music\\Radiohead - OK Computer",
		BestScore:      8214,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	entries, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Radiohead", e.Artist)
	assert.Equal(t, "OK Computer", e.Album)
	assert.Equal(t, 1997, e.Year)
	assert.Equal(t, "alice", e.BestUsername)
	assert.Equal(t, 8214, e.BestScore)
	assert.False(t, e.Downloaded)
	assert.False(t, e.QueriedAt.IsZero(), "QueriedAt should be filled in")
}

func TestListOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, album := range []string{"first", "second", "third"} {
		_, err := s.Record(ctx, Entry{
			Artist:    "x",
			Album:     album,
			QueriedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Album)
	assert.Equal(t, "second", entries[1].Album)
}

func TestMarkDownloaded(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, Entry{Artist: "x", Album: "y"})
	require.NoError(t, err)
	require.NoError(t, s.MarkDownloaded(ctx, id))

	entries, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Downloaded)
}

func TestEmptyOptionalFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, Entry{Artist: "Burial", Album: "Untrue"})
	require.NoError(t, err)

	entries, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Zero(t, e.Year)
	assert.Empty(t, e.BestUsername)
	assert.Zero(t, e.BestScore)
}
