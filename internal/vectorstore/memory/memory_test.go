package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medbot/internal/domain"
)

func seed(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Init(context.Background(), 2))
	chunks := []domain.Chunk{
		{ChunkID: "a:0", Text: "east"},
		{ChunkID: "a:1", Text: "north"},
		{ChunkID: "a:2", Text: "northeast"},
	}
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	}
	require.NoError(t, s.Upsert(context.Background(), chunks, vectors))
	return s
}

func TestSearch_RanksByCosine(t *testing.T) {
	s := seed(t)

	res, err := s.Search(context.Background(), []float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "east", res[0].Chunk.Text)
	assert.Equal(t, "northeast", res[1].Chunk.Text)
	assert.Equal(t, "north", res[2].Chunk.Text)
	assert.InDelta(t, 1.0, res[0].Score, 1e-9)
}

func TestSearch_Deterministic(t *testing.T) {
	s := seed(t)

	first, err := s.Search(context.Background(), []float64{0.3, 0.9}, 2)
	require.NoError(t, err)
	second, err := s.Search(context.Background(), []float64{0.3, 0.9}, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearch_WeakMatchesStillReturnK(t *testing.T) {
	s := seed(t)

	// Orthogonal-ish query with no close neighbor still yields topK results.
	res, err := s.Search(context.Background(), []float64{-1, -1}, 3)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestSearch_TopKLargerThanStored(t *testing.T) {
	s := seed(t)

	res, err := s.Search(context.Background(), []float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestUpsert_SameChunkIDOverwrites(t *testing.T) {
	s := seed(t)

	err := s.Upsert(context.Background(),
		[]domain.Chunk{{ChunkID: "a:0", Text: "east updated"}},
		[][]float64{{1, 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	res, err := s.Search(context.Background(), []float64{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, "east updated", res[0].Chunk.Text)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(context.Background(), 3))
	err := s.Upsert(context.Background(),
		[]domain.Chunk{{ChunkID: "x:0"}},
		[][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	s := seed(t)
	require.NoError(t, s.Clear(context.Background()))
	assert.Equal(t, 0, s.Len())

	res, err := s.Search(context.Background(), []float64{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, res)
}
