package service

import (
	"context"
	"errors"
	"time"

	"flashgen/internal/domain"
	"flashgen/internal/flashcard"
	"flashgen/internal/logger"
	"flashgen/internal/util"

	"go.uber.org/zap"
)

// FlashcardService runs the generation pipeline.
type FlashcardService interface {
	// Run turns source text into flashcards.
	Run(ctx context.Context, text string, subject domain.Subject) (*domain.GenerationResult, error)
	// RunDocument extracts text from doc and then behaves as Run.
	RunDocument(ctx context.Context, doc domain.Document, subject domain.Subject) (*domain.GenerationResult, error)
	// Result returns a previously produced result by request ID.
	Result(ctx context.Context, requestID string) (*domain.GenerationResult, error)
	// Ready reports whether the generation model is usable.
	Ready() error
}

type flashcardService struct {
	generator domain.TextGenerator
	extractor domain.TextExtractor
	results   ResultStore
}

// NewFlashcardService wires the pipeline. results may be nil.
func NewFlashcardService(generator domain.TextGenerator, extractor domain.TextExtractor, results ResultStore) FlashcardService {
	if results == nil {
		results = noopResultStore{}
	}
	return &flashcardService{
		generator: generator,
		extractor: extractor,
		results:   results,
	}
}

func (s *flashcardService) Ready() error {
	return s.generator.Ready()
}

// newRun mints the ID a result is stored under. A caller-provided ID in ctx
// is only kept as a correlation field, so it can never address a stored result.
func newRun(ctx context.Context) (string, *zap.Logger) {
	requestID := util.NewULID()
	l := logger.Get().With(zap.String("request_id", requestID))
	if correlationID := util.RequestIDFromContext(ctx); correlationID != "" {
		l = l.With(zap.String("correlation_id", correlationID))
	}
	return requestID, l
}

func (s *flashcardService) Run(ctx context.Context, text string, subject domain.Subject) (*domain.GenerationResult, error) {
	requestID, l := newRun(ctx)
	l = l.With(zap.String("subject", string(subject)))

	if err := s.checkModel(l); err != nil {
		return nil, err
	}
	return s.generate(ctx, l, requestID, text, subject)
}

func (s *flashcardService) RunDocument(ctx context.Context, doc domain.Document, subject domain.Subject) (*domain.GenerationResult, error) {
	requestID, l := newRun(ctx)
	l = l.With(
		zap.String("subject", string(subject)),
		zap.String("document", doc.Name),
		zap.String("document_type", string(doc.Type)))

	if err := s.checkModel(l); err != nil {
		return nil, err
	}
	if s.extractor == nil {
		return nil, domain.NewInternalError("no text extractor configured", nil)
	}

	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		l.Warn("Document rejected", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeExtractionFailure {
			return nil, domainErr
		}
		return nil, domain.NewExtractionFailureError(string(doc.Type), err)
	}
	return s.generate(ctx, l, requestID, text, subject)
}

func (s *flashcardService) Result(ctx context.Context, requestID string) (*domain.GenerationResult, error) {
	if requestID == "" {
		return nil, domain.NewInvalidInputError("request ID is required")
	}
	if !util.IsULID(requestID) {
		return nil, domain.NewResultNotFoundError(requestID)
	}
	return s.results.Get(ctx, requestID)
}

func (s *flashcardService) checkModel(l *zap.Logger) error {
	if err := s.generator.Ready(); err != nil {
		l.Error("Generation model is not ready", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeModelUnavailable {
			return domainErr
		}
		return domain.NewModelUnavailableError(err)
	}
	return nil
}

// generate covers the stages after the model check: content check, prompt,
// generation and parsing.
func (s *flashcardService) generate(ctx context.Context, l *zap.Logger, requestID, text string, subject domain.Subject) (*domain.GenerationResult, error) {
	source, err := flashcard.Normalize(text)
	if err != nil {
		l.Info("Content rejected", zap.Error(err))
		return nil, err
	}

	prompt := flashcard.BuildPrompt(source, subject)
	l.Debug("Prompt built", zap.Int("source_chars", len([]rune(source))), zap.String("prompt", prompt))

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		l.Error("Generation failed", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) &&
			(domainErr.Code == domain.CodeGenerationError || domainErr.Code == domain.CodeModelUnavailable) {
			return nil, domainErr
		}
		return nil, domain.NewGenerationError(err)
	}

	cards := flashcard.Parse(raw)
	result := domain.NewGenerationResult(requestID, subject, cards)
	l.Info("Flashcards generated",
		zap.Int("card_count", result.CardCount),
		zap.String("parse_mode", flashcard.ModeOf(raw)),
		zap.Duration("generation_time", time.Since(start)))
	if result.Warning != nil {
		l.Warn("No flashcards recovered from model output", zap.String("raw_output", raw))
	}

	if err := s.results.Put(ctx, result); err != nil {
		l.Warn("Result not stored", zap.Error(err))
	}
	return result, nil
}
