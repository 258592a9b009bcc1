package app

import (
	"fmt"
	"os"
	"time"

	"medbot/internal/chunker"
	"medbot/internal/config"
	"medbot/internal/domain"
	embeddingopenai "medbot/internal/embedding/openai"
	llmopenai "medbot/internal/llm/openai"
	"medbot/internal/loader"
	"medbot/internal/service"
	"medbot/internal/vectorstore/memory"
	"medbot/internal/vectorstore/qdrant"
)

// BuildService assembles the RAG service from configuration. All three
// binaries share this wiring so ingestion and querying always use the
// same embedding model, dimension and index.
func BuildService(cfg *config.AppConfig) (*service.RAGService, error) {
	ch, err := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		return nil, fmt.Errorf("chunker config: %w", err)
	}

	emb, err := embeddingopenai.NewClient(embeddingopenai.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Dimension: cfg.Embedder.Dimension,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("embedder init: %w", err)
	}

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory":
		store = memory.NewStore()
	case "qdrant", "":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		store = qdrant.NewStore(qdrant.Config{
			URL:        qc.URL,
			APIKey:     os.Getenv(qc.APIKeyEnv),
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	gen, err := llmopenai.NewClient(llmopenai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("llm init: %w", err)
	}

	return service.NewRAGService(
		loader.NewDirectoryLoader(),
		ch,
		emb,
		store,
		gen,
		cfg.Retrieval.TopK,
		service.WithRecreateOnIngest(cfg.RecreateOnIngest()),
	), nil
}
