package quizgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel records the last call and replies with a canned response.
type fakeModel struct {
	response string
	err      error
	delay    time.Duration

	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	f.opts = llms.CallOptions{}
	for _, o := range options {
		o(&f.opts)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

const quizJSON = `{"questions":[
	{"questionText":"What is 2+2?","options":[{"optionKey":"a","optionValue":"3"},{"optionKey":"b","optionValue":"4"}],"correctAnswerKey":"b","hint":"Even"},
	{"questionText":"Capital of France?","options":[{"optionKey":"a","optionValue":"Paris"}],"correctAnswerKey":"a"}
]}`

func TestGenerateQuestions(t *testing.T) {
	model := &fakeModel{response: quizJSON}
	gen := NewLangchainQuizGenerator(model, "llama-3.1-8b-instant", time.Second)

	questions, err := gen.GenerateQuestions(context.Background(), domain.QuizGenerationRequest{
		Subject: "Maths", GradeLevel: "5", NumQuestions: 2,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is 2+2?", questions[0].Text)
	assert.Equal(t, "b", questions[0].CorrectAnswerKey)
	assert.Equal(t, []domain.Option{{Key: "a", Value: "3"}, {Key: "b", Value: "4"}}, questions[0].Options)

	assert.Equal(t, 0.7, model.opts.Temperature)
	assert.Equal(t, 2048, model.opts.MaxTokens)
	assert.True(t, model.opts.JSONMode)
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, "llama-3.1-8b-instant", gen.Name())
}

func TestGenerateQuestions_ResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		wantErr  bool
	}{
		{"think block stripped", "<think>planning</think>\n" + quizJSON, 2, false},
		{"prose around object", "Here you go:\n" + quizJSON + "\nEnjoy!", 2, false},
		{"bare array", `[{"questionText":"Q","options":[],"correctAnswerKey":"a"}]`, 1, false},
		{"missing questions key", `{"items":[]}`, 0, true},
		{"not json", "sorry, I cannot help", 0, true},
		{"broken json", `{"questions":[{]}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewLangchainQuizGenerator(&fakeModel{response: tt.response}, "m", 0)
			questions, err := gen.GenerateQuestions(context.Background(), domain.QuizGenerationRequest{NumQuestions: 2})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, questions, tt.want)
		})
	}
}

func TestGenerateQuestions_UpstreamFailure(t *testing.T) {
	gen := NewLangchainQuizGenerator(&fakeModel{err: errors.New("429 rate limited")}, "m", 0)
	_, err := gen.GenerateQuestions(context.Background(), domain.QuizGenerationRequest{NumQuestions: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateQuestions_Timeout(t *testing.T) {
	gen := NewLangchainQuizGenerator(&fakeModel{response: quizJSON, delay: time.Second}, "m", 10*time.Millisecond)
	_, err := gen.GenerateQuestions(context.Background(), domain.QuizGenerationRequest{NumQuestions: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestGenerateHint(t *testing.T) {
	model := &fakeModel{response: `  "Think about pairs."  `}
	gen := NewLangchainQuizGenerator(model, "m", 0)

	hint, err := gen.GenerateHint(context.Background(), &domain.Question{ID: "q1", Text: "What is 2+2?"})
	require.NoError(t, err)
	assert.Equal(t, "Think about pairs.", hint)
	assert.Equal(t, 0.5, model.opts.Temperature)
	assert.Equal(t, 50, model.opts.MaxTokens)
	assert.False(t, model.opts.JSONMode)

	model.response = "   "
	hint, err = gen.GenerateHint(context.Background(), &domain.Question{ID: "q1", Text: "?"})
	require.NoError(t, err)
	assert.Empty(t, hint)
}

func TestGenerateSuggestions(t *testing.T) {
	mistakes := []domain.IncorrectAnswerDetail{{QuestionText: "2+2?", SelectedAnswerKey: "a", CorrectAnswerKey: "b"}}

	tests := []struct {
		name     string
		response string
		want     []string
		wantErr  bool
	}{
		{"object form", `{"suggestions":["Review addition."," ","Practice daily."]}`, []string{"Review addition.", "Practice daily."}, false},
		{"bare array", `["Use number lines."]`, []string{"Use number lines."}, false},
		{"unexpected shape", `{"tips":["x"]}`, nil, true},
		{"not json", "Keep going!", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{response: tt.response}
			gen := NewLangchainQuizGenerator(model, "m", 0)
			got, err := gen.GenerateSuggestions(context.Background(), mistakes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0.6, model.opts.Temperature)
			assert.Equal(t, 200, model.opts.MaxTokens)
		})
	}
}

func TestGenerateSuggestions_NoMistakes(t *testing.T) {
	model := &fakeModel{}
	gen := NewLangchainQuizGenerator(model, "m", 0)
	got, err := gen.GenerateSuggestions(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, model.messages)
}

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(config.LLMConfig{Provider: "openai", Model: "llama-3.1-8b-instant"})
	assert.ErrorContains(t, err, "api key")

	_, err = NewFromConfig(config.LLMConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "unsupported llm provider")

	gen, err := NewFromConfig(config.LLMConfig{
		Provider: "openai",
		APIKey:   "gsk_test",
		BaseURL:  "https://api.groq.com/openai/v1",
		Model:    "llama-3.1-8b-instant",
	})
	require.NoError(t, err)
	assert.Equal(t, "llama-3.1-8b-instant", gen.Name())
}
