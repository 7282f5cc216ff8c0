package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-quizzer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSuggest(t *testing.T) {
	mistakes := []domain.IncorrectAnswerDetail{{QuestionText: "2+2?", SelectedAnswerKey: "B", CorrectAnswerKey: "A"}}

	t.Run("empty input skips generator", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		svc := NewSuggestionService(gen, time.Second)
		assert.Nil(t, svc.Suggest(context.Background(), nil))
		gen.AssertNotCalled(t, "GenerateSuggestions", mock.Anything, mock.Anything)
	})

	t.Run("returns generator output", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		gen.On("GenerateSuggestions", mock.Anything, mistakes).Return([]string{"Practice addition."}, nil)
		svc := NewSuggestionService(gen, time.Second)
		assert.Equal(t, []string{"Practice addition."}, svc.Suggest(context.Background(), mistakes))
	})

	t.Run("failure is contained", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		gen.On("GenerateSuggestions", mock.Anything, mistakes).Return(nil, errors.New("quota exceeded"))
		svc := NewSuggestionService(gen, time.Second)
		assert.Nil(t, svc.Suggest(context.Background(), mistakes))
	})

	t.Run("empty output becomes nil", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		gen.On("GenerateSuggestions", mock.Anything, mistakes).Return([]string{}, nil)
		svc := NewSuggestionService(gen, 0)
		assert.Nil(t, svc.Suggest(context.Background(), mistakes))
	})

	t.Run("timeout applied to generator context", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		gen.On("GenerateSuggestions", mock.Anything, mistakes).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				_, ok := ctx.Deadline()
				assert.True(t, ok)
			}).Return(nil, context.DeadlineExceeded)
		svc := NewSuggestionService(gen, 50*time.Millisecond)
		assert.Nil(t, svc.Suggest(context.Background(), mistakes))
	})
}
