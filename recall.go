package recall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/recall/composer"
	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/recorder"
	"github.com/w-h-a/recall/retriever"
	"github.com/w-h-a/recall/storer"
)

// Document is one context item that went into the prompt, returned to the
// caller for provenance.
type Document struct {
	Id       string  `json:"id"`
	Category string  `json:"category"`
	Text     string  `json:"text"`
	Distance float32 `json:"distance"`
}

type Result struct {
	Answer      string     `json:"answer"`
	ContextDocs []Document `json:"context_docs"`
}

// Service runs the query pipeline: embed the question, retrieve the owner's
// nearest stored items, compose a bounded prompt, generate an answer, and
// append the exchange to the owner's chat log. The stages run strictly in
// that order; each stage's output is the next stage's only input.
type Service struct {
	options   Options
	retriever *retriever.Retriever
	composer  *composer.Composer
}

func (s *Service) Query(ctx context.Context, owner string, question string, topK int) (*Result, error) {
	if len(strings.TrimSpace(question)) == 0 {
		return nil, errors.New("question is required")
	}

	if topK == 0 {
		topK = s.options.DefaultTopK
	}

	vector, err := s.embed(ctx, question)
	if err != nil {
		return nil, failure(StageEmbedding, err)
	}

	matches, err := s.retrieve(ctx, owner, vector, topK)
	if err != nil {
		if errors.Is(err, retriever.ErrBadLimit) {
			return nil, err
		}
		return nil, failure(StageRetrieval, err)
	}

	docs := make([]composer.Document, len(matches))
	for i, match := range matches {
		docs[i] = composer.Document{
			Id:       match.Record.Id,
			Category: match.Record.Category,
			Text:     match.Record.Text,
		}
	}

	prompt, included := s.composer.Compose(question, docs)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, failure(StageGeneration, err)
	}

	s.record(ctx, owner, question, answer)

	contextDocs := make([]Document, len(included))
	for i := range included {
		contextDocs[i] = Document{
			Id:       matches[i].Record.Id,
			Category: matches[i].Record.Category,
			Text:     matches[i].Record.Text,
			Distance: matches[i].Distance,
		}
	}

	return &Result{Answer: answer, ContextDocs: contextDocs}, nil
}

// Ingest embeds the text and persists it as a new record. The record is only
// created once the embedding succeeded, so a stored vector always matches its
// stored text.
func (s *Service) Ingest(ctx context.Context, owner string, category string, text string, sourceRef string) (string, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return "", errors.New("text is required")
	}
	if len(strings.TrimSpace(category)) == 0 {
		return "", errors.New("category is required")
	}

	vector, err := s.embed(ctx, text)
	if err != nil {
		return "", failure(StageEmbedding, err)
	}

	id, err := s.options.Storer.Insert(ctx, storer.Record{
		Owner:     owner,
		Category:  category,
		SourceRef: sourceRef,
		Text:      text,
		Embedding: vector,
	})
	if err != nil {
		return "", failure(StageStorage, err)
	}

	return id, nil
}

// Forget removes a record by id. Removing an absent id reports false, not an
// error, so deletes are idempotent.
func (s *Service) Forget(ctx context.Context, id string) (bool, error) {
	deleted, err := s.options.Storer.Delete(ctx, id)
	if err != nil {
		return false, failure(StageStorage, err)
	}
	return deleted, nil
}

func (s *Service) History(ctx context.Context, owner string, limit int) ([]recorder.Turn, error) {
	return s.options.Recorder.List(ctx, owner, limit)
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := withTimeout(ctx, s.options.EmbedTimeout)
	defer cancel()

	vector, err := s.options.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.options.Dimensions > 0 && len(vector) != s.options.Dimensions {
		return nil, fmt.Errorf("%w: got %d dimensions, expected %d", embedder.ErrMalformed, len(vector), s.options.Dimensions)
	}

	return vector, nil
}

func (s *Service) retrieve(ctx context.Context, owner string, vector []float32, topK int) ([]storer.Match, error) {
	ctx, cancel := withTimeout(ctx, s.options.SearchTimeout)
	defer cancel()

	return s.retriever.Retrieve(ctx, owner, vector, topK)
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.options.GenerateTimeout)
	defer cancel()

	answer, err := s.options.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if len(answer) == 0 {
		return "", fmt.Errorf("%w: backend returned an empty answer", generator.ErrEmpty)
	}

	return answer, nil
}

// record appends the exchange to the owner's history. Failures are logged and
// swallowed: the answer is already computed and recording must not undo it.
func (s *Service) record(ctx context.Context, owner string, question string, answer string) {
	if len(owner) == 0 {
		// anonymous queries keep no history
		return
	}

	if ctx.Err() != nil {
		// caller already gone; discard the turn
		return
	}

	if err := s.options.Recorder.Record(ctx, owner, question, answer); err != nil {
		slog.WarnContext(ctx, "failed to record chat turns", "owner", owner, "error", err)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

func New(opts ...Option) *Service {
	options := NewOptions(opts...)

	if options.Embedder == nil {
		panic("an embedder is required")
	}
	if options.Storer == nil {
		panic("a storer is required")
	}
	if options.Generator == nil {
		panic("a generator is required")
	}
	if options.Recorder == nil {
		panic("a recorder is required")
	}

	s := &Service{
		options: options,
		retriever: retriever.NewRetriever(
			options.Storer,
			retriever.WithMaxTopK(options.MaxTopK),
		),
	}

	composerOpts := []composer.Option{
		composer.WithMaxLength(options.MaxPromptLength),
	}
	if len(options.Instruction) > 0 {
		composerOpts = append(composerOpts, composer.WithInstruction(options.Instruction))
	}
	s.composer = composer.NewComposer(composerOpts...)

	return s
}
