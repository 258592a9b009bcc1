package service

import (
	"context"
	"fmt"
	"log/slog"

	"medbot/internal/domain"
	"medbot/internal/prompt"
)

// RAGService drives the two pipelines of the system: ingestion
// (load, chunk, embed, upsert) and answering (embed, search, assemble,
// generate). Every request is stateless; the only shared state is the
// read-only client handles, which are safe to reuse across requests.
type RAGService struct {
	loader    domain.Loader
	chunker   domain.Chunker
	embedder  domain.Embedder
	store     domain.VectorStore
	assembler *prompt.Assembler
	generator domain.Generator
	topK      int
	recreate  bool
	logger    *slog.Logger
}

type Option func(*RAGService)

// WithLogger overrides the default process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *RAGService) { s.logger = logger }
}

// WithRecreateOnIngest controls whether IngestDirectory clears the index
// before upserting. On by default; turning it off relies on deterministic
// chunk IDs to keep re-ingestion from duplicating records.
func WithRecreateOnIngest(recreate bool) Option {
	return func(s *RAGService) { s.recreate = recreate }
}

func NewRAGService(
	loader domain.Loader,
	chunker domain.Chunker,
	embedder domain.Embedder,
	store domain.VectorStore,
	generator domain.Generator,
	topK int,
	opts ...Option,
) *RAGService {
	svc := &RAGService{
		loader:    loader,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		assembler: prompt.NewAssembler(),
		generator: generator,
		topK:      topK,
		recreate:  true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// IngestDirectory loads every document under dir, chunks and embeds them,
// and upserts the results into the vector index. With recreate on (the
// default) any prior index contents are dropped first, so runs are
// reproducible. Any embedding or index failure aborts the run.
func (s *RAGService) IngestDirectory(ctx context.Context, dir string) (domain.IngestStats, error) {
	var stats domain.IngestStats

	documents, err := s.loader.Load(dir)
	if err != nil {
		return stats, fmt.Errorf("load documents: %w", err)
	}
	stats.Documents = len(documents)
	s.logger.Info("documents loaded", "dir", dir, "count", len(documents))

	var chunks []domain.Chunk
	for _, d := range documents {
		cs, err := s.chunker.Chunk(d)
		if err != nil {
			return stats, fmt.Errorf("chunk %s: %w", d.Path, err)
		}
		chunks = append(chunks, cs...)
	}
	stats.Chunks = len(chunks)
	s.logger.Info("documents chunked", "chunks", len(chunks))

	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := s.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return stats, fmt.Errorf("embed chunk %s: %w", chunks[i].ChunkID, err)
		}
		vectors[i] = vec
	}

	if s.recreate {
		if err := s.store.Clear(ctx); err != nil {
			return stats, fmt.Errorf("clear index: %w", err)
		}
	}
	if err := s.store.Init(ctx, s.embedder.Dimension()); err != nil {
		return stats, fmt.Errorf("init index: %w", err)
	}
	if err := s.store.Upsert(ctx, chunks, vectors); err != nil {
		return stats, fmt.Errorf("upsert chunks: %w", err)
	}
	s.logger.Info("ingestion complete", "documents", stats.Documents, "chunks", stats.Chunks)
	return stats, nil
}

// Retrieve embeds the question and returns the topK nearest chunks in
// similarity-rank order. The result is never filtered by score; a question
// with no close neighbor still gets the nearest available chunks.
func (s *RAGService) Retrieve(ctx context.Context, question string) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	results, err := s.store.Search(ctx, vec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return results, nil
}

// Answer is the completion text together with the chunks it was grounded
// on.
type Answer struct {
	Text    string
	Sources []domain.SearchResult
}

// Ask runs the full query pipeline for one question. The pipeline is a
// single linear sequence; the first failing step ends the request.
func (s *RAGService) Ask(ctx context.Context, question string) (Answer, error) {
	results, err := s.Retrieve(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	s.logger.Info("context retrieved", "chunks", len(results))

	p := s.assembler.Build(results, question)
	text, err := s.generator.Generate(ctx, p)
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	s.logger.Info("answer generated", "length", len(text))
	return Answer{Text: text, Sources: results}, nil
}

// Answer returns only the completion text, verbatim.
func (s *RAGService) Answer(ctx context.Context, question string) (string, error) {
	a, err := s.Ask(ctx, question)
	return a.Text, err
}
