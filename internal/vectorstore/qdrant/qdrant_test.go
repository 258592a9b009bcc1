package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medbot/internal/domain"
)

func TestUpsert_DeterministicPointIDs(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "medical-bot"})
	require.NoError(t, s.Init(context.Background(), 2))

	chunks := []domain.Chunk{{DocumentID: "d", ChunkID: "d:0", Text: "hello"}}
	vectors := [][]float64{{0.1, 0.2}}
	require.NoError(t, s.Upsert(context.Background(), chunks, vectors))
	require.NoError(t, s.Upsert(context.Background(), chunks, vectors))

	// Init + two upserts.
	require.Len(t, bodies, 3)
	firstID := bodies[1]["points"].([]any)[0].(map[string]any)["id"]
	secondID := bodies[2]["points"].([]any)[0].(map[string]any)["id"]
	assert.Equal(t, firstID, secondID, "same chunk must map to the same point id")
	assert.NotEmpty(t, firstID)
}

func TestSearch_DecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/medical-bot/points/search", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["limit"])

		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"score": 0.92, "payload": map[string]any{
					"document_id": "d", "chunk_id": "d:1", "index": 1, "text": "chunk text",
				}},
			},
		})
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "medical-bot"})
	res, err := s.Search(context.Background(), []float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "d:1", res[0].Chunk.ChunkID)
	assert.Equal(t, 1, res[0].Chunk.Index)
	assert.Equal(t, "chunk text", res[0].Chunk.Text)
	assert.InDelta(t, 0.92, res[0].Score, 1e-9)
}

func TestClear_IgnoresMissingCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "medical-bot"})
	assert.NoError(t, s.Clear(context.Background()))
}

func TestDo_SendsAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, APIKey: "secret", Collection: "c"})
	assert.NoError(t, s.Init(context.Background(), 4))
}

func TestDo_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "c"})
	err := s.Init(context.Background(), 4)
	assert.Error(t, err)
}
