package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flashgen/internal/domain"
	"flashgen/internal/flashcard"
	"flashgen/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, flashcard.BuildPrompt(sampleText, domain.SubjectScience)).
		Return(" Q: Where does photosynthesis occur?\n A: In the chloroplasts.\n Q: What does it produce?\n A: Glucose and oxygen.", nil)

	svc := NewFlashcardService(gen, nil, nil)
	result, err := svc.Run(context.Background(), "  "+sampleText+"\n", domain.SubjectScience)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, domain.SubjectScience, result.Subject)
	assert.Nil(t, result.Warning)
	assert.Equal(t, 2, result.CardCount)
	assert.Equal(t, domain.FlashcardSet{
		{Question: "Where does photosynthesis occur?", Answer: "In the chloroplasts."},
		{Question: "What does it produce?", Answer: "Glucose and oxygen."},
	}, result.Cards)
	gen.AssertExpectations(t)
}

func TestRun_CallerRequestIDCannotReplaceStoredResult(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(" Q: Original?\n A: Kept.", nil).Once()
	gen.On("Generate", mock.Anything, mock.Anything).Return(" Q: Replacement?\n A: Dropped.", nil).Once()
	svc := NewFlashcardService(gen, nil, NewResultStore(newManualMockCache(), 0))

	first, err := svc.Run(context.Background(), sampleText, domain.SubjectGeneral)
	require.NoError(t, err)
	assert.True(t, util.IsULID(first.RequestID))

	second, err := svc.Run(util.WithRequestID(context.Background(), first.RequestID), sampleText, domain.SubjectGeneral)
	require.NoError(t, err)
	assert.NotEqual(t, first.RequestID, second.RequestID)

	stored, err := svc.Result(context.Background(), first.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.FlashcardSet{{Question: "Original?", Answer: "Kept."}}, stored.Cards)
}

func TestRun_ModelUnavailableBeforeContentCheck(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(domain.NewModelUnavailableError(errors.New("not loaded")))

	svc := NewFlashcardService(gen, nil, nil)
	_, err := svc.Run(context.Background(), shortText, domain.SubjectGeneral)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRun_PlainReadyErrorIsWrappedAsModelUnavailable(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(errBackend)

	_, err := NewFlashcardService(gen, nil, nil).Run(context.Background(), sampleText, domain.SubjectGeneral)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
	assert.ErrorIs(t, err, errBackend)
}

func TestRun_InsufficientContentSkipsGeneration(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", strings.Repeat(" \n\t", 60)},
		{"99 characters", shortText},
		{"99 characters padded", "   " + shortText + "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockTextGenerator)
			gen.On("Ready").Return(nil)

			_, err := NewFlashcardService(gen, nil, nil).Run(context.Background(), tt.text, domain.SubjectGeneral)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInsufficientContent))
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestRun_GenerationErrorPropagates(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", domain.NewGenerationError(errBackend))

	result, err := NewFlashcardService(gen, nil, nil).Run(context.Background(), sampleText, domain.SubjectHistory)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	assert.ErrorIs(t, err, errBackend)
}

func TestRun_UntypedGenerationErrorIsWrapped(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errBackend)

	_, err := NewFlashcardService(gen, nil, nil).Run(context.Background(), sampleText, domain.SubjectHistory)
	assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
}

func TestRun_NoCardsFoundIsAWarning(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return("I cannot help with that.", nil)

	result, err := NewFlashcardService(gen, nil, nil).Run(context.Background(), sampleText, domain.SubjectMath)
	require.NoError(t, err)
	assert.Empty(t, result.Cards)
	assert.NotNil(t, result.Cards)
	assert.Equal(t, 0, result.CardCount)
	require.NotNil(t, result.Warning)
	assert.Equal(t, domain.CodeNoCardsFound, result.Warning.Code)
}

func TestRun_StoresResult(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(" Q: a?\n A: b.", nil)
	store := newManualMockCache()

	svc := NewFlashcardService(gen, nil, NewResultStore(store, 0))
	result, err := svc.Run(context.Background(), sampleText, domain.SubjectGeneral)
	require.NoError(t, err)

	stored, err := svc.Result(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)
}

func TestRun_ResultStoreFailureDoesNotFailRun(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Ready").Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(" Q: a?\n A: b.", nil)
	store := newManualMockCache()
	store.SetErr = errBackend

	result, err := NewFlashcardService(gen, nil, NewResultStore(store, 0)).Run(context.Background(), sampleText, domain.SubjectGeneral)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CardCount)
}

func TestRunDocument(t *testing.T) {
	doc := domain.Document{Name: "notes.txt", Type: domain.DocumentPlainText, Data: []byte(sampleText)}

	t.Run("extracted text feeds the pipeline", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Ready").Return(nil)
		gen.On("Generate", mock.Anything, flashcard.BuildPrompt(sampleText, domain.SubjectLiterature)).Return(" Q: a?\n A: b.", nil)
		ext := new(MockTextExtractor)
		ext.On("Extract", mock.Anything, doc).Return(sampleText, nil)

		result, err := NewFlashcardService(gen, ext, nil).RunDocument(context.Background(), doc, domain.SubjectLiterature)
		require.NoError(t, err)
		assert.Equal(t, 1, result.CardCount)
		ext.AssertExpectations(t)
		gen.AssertExpectations(t)
	})

	t.Run("model checked before extraction", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Ready").Return(domain.NewModelUnavailableError(nil))
		ext := new(MockTextExtractor)

		_, err := NewFlashcardService(gen, ext, nil).RunDocument(context.Background(), doc, domain.SubjectGeneral)
		assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
		ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("extraction failure", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Ready").Return(nil)
		ext := new(MockTextExtractor)
		ext.On("Extract", mock.Anything, doc).Return("", errBackend)

		_, err := NewFlashcardService(gen, ext, nil).RunDocument(context.Background(), doc, domain.SubjectGeneral)
		assert.True(t, errors.Is(err, domain.ErrExtractionFailure))
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("short extracted text", func(t *testing.T) {
		gen := new(MockTextGenerator)
		gen.On("Ready").Return(nil)
		ext := new(MockTextExtractor)
		ext.On("Extract", mock.Anything, doc).Return("tiny", nil)

		_, err := NewFlashcardService(gen, ext, nil).RunDocument(context.Background(), doc, domain.SubjectGeneral)
		assert.True(t, errors.Is(err, domain.ErrInsufficientContent))
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestResult_Validation(t *testing.T) {
	svc := NewFlashcardService(new(MockTextGenerator), nil, nil)

	_, err := svc.Result(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Result(context.Background(), "unknown")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.Result(context.Background(), util.NewULID())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResult_MalformedIDNeverReachesStore(t *testing.T) {
	store := newManualMockCache()
	svc := NewFlashcardService(new(MockTextGenerator), nil, NewResultStore(store, 0))

	_, err := svc.Result(context.Background(), "x:y:z")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, store.GetCalls)
}
