package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	quizTemperature       = 0.7
	quizMaxTokens         = 2048
	hintTemperature       = 0.5
	hintMaxTokens         = 50
	suggestionTemperature = 0.6
	suggestionMaxTokens   = 200

	systemPrompt = "You are an AI assistant that generates educational quizzes in JSON format."
)

const quizPromptTemplate = `Generate a quiz with %d multiple-choice questions for a grade %s student on the subject of "%s".
For each question, provide:
1. "questionText": The text of the question.
2. "options": An array of objects, where each object has "optionKey" (e.g., "a", "b", "c", "d") and "optionValue" (the text of the option). Provide 4 options.
3. "correctAnswerKey": The key of the correct option (e.g., "a").
4. "hint": (Optional) A brief hint for the question.

Return the entire quiz as a single JSON object with a top-level key "questions" which is an array of these question objects.
Example for one question:
{
    "questionText": "What is 2+2?",
    "options": [
        {"optionKey": "a", "optionValue": "3"},
        {"optionKey": "b", "optionValue": "4"},
        {"optionKey": "c", "optionValue": "5"},
        {"optionKey": "d", "optionValue": "6"}
    ],
    "correctAnswerKey": "b",
    "hint": "It's an even number."
}`

const hintPromptTemplate = `Provide a concise hint for the following multiple-choice question. Do not reveal the answer directly.
Question: "%s"
Return only the hint as a short string.`

const suggestionPromptTemplate = `Based on the following incorrectly answered questions, provide two distinct and actionable suggestions for the student to improve their understanding of the related topics.
Keep each suggestion concise.
Incorrect answers:
%s

Return a JSON object of the form {"suggestions": ["Suggestion 1", "Suggestion 2"]}.`

// LangchainQuizGenerator implements domain.QuizGenerator on any langchaingo
// model. With the openai provider it talks to Groq or any other
// OpenAI-compatible endpoint.
type LangchainQuizGenerator struct {
	llm     llms.Model
	name    string
	timeout time.Duration
}

// NewLangchainQuizGenerator wraps llm. A zero timeout leaves the caller's
// deadline in charge.
func NewLangchainQuizGenerator(llm llms.Model, name string, timeout time.Duration) *LangchainQuizGenerator {
	return &LangchainQuizGenerator{llm: llm, name: name, timeout: timeout}
}

// NewFromConfig builds the generator for the configured provider.
func NewFromConfig(cfg config.LLMConfig) (*LangchainQuizGenerator, error) {
	var (
		llm llms.Model
		err error
	)
	switch cfg.Provider {
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err = ollama.New(opts...)
	case "openai", "groq", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm api key is not configured")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return NewLangchainQuizGenerator(llm, cfg.Model, cfg.RequestTimeout), nil
}

func (g *LangchainQuizGenerator) Name() string {
	return g.name
}

func (g *LangchainQuizGenerator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *LangchainQuizGenerator) generate(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.llm.GenerateContent(ctx, messages, options...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("llm request timed out: %w", err)
		}
		return "", fmt.Errorf("llm call failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}
	return stripThinking(resp.Choices[0].Content), nil
}

// GenerateQuestions implements domain.QuizGenerator
func (g *LangchainQuizGenerator) GenerateQuestions(ctx context.Context, req domain.QuizGenerationRequest) ([]domain.GeneratedQuestion, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(quizPromptTemplate, req.NumQuestions, req.GradeLevel, req.Subject)

	raw, err := g.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	},
		llms.WithTemperature(quizTemperature),
		llms.WithMaxTokens(quizMaxTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		l.Error("quiz generation call failed", zap.Error(err), zap.String("subject", req.Subject))
		return nil, err
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		l.Error("failed to parse generated quiz", zap.Error(err), zap.String("raw_response", raw))
		return nil, err
	}
	l.Info("quiz questions generated",
		zap.String("subject", req.Subject),
		zap.Int("requested", req.NumQuestions),
		zap.Int("received", len(questions)))
	return questions, nil
}

// GenerateHint implements domain.QuizGenerator
func (g *LangchainQuizGenerator) GenerateHint(ctx context.Context, question *domain.Question) (string, error) {
	raw, err := g.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(hintPromptTemplate, question.Text)),
	},
		llms.WithTemperature(hintTemperature),
		llms.WithMaxTokens(hintMaxTokens),
	)
	if err != nil {
		logger.Get().Warn("hint generation failed", zap.Error(err), zap.String("question_id", question.ID))
		return "", err
	}
	return strings.Trim(strings.TrimSpace(raw), `"`), nil
}

// GenerateSuggestions implements domain.QuizGenerator
func (g *LangchainQuizGenerator) GenerateSuggestions(ctx context.Context, mistakes []domain.IncorrectAnswerDetail) ([]string, error) {
	if len(mistakes) == 0 {
		return nil, nil
	}
	lines := make([]string, 0, len(mistakes))
	for _, m := range mistakes {
		lines = append(lines, fmt.Sprintf(`For the question "%s", the user answered "%s" but the correct answer was "%s".`,
			m.QuestionText, m.SelectedAnswerKey, m.CorrectAnswerKey))
	}

	raw, err := g.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(suggestionPromptTemplate, strings.Join(lines, "\n"))),
	},
		llms.WithTemperature(suggestionTemperature),
		llms.WithMaxTokens(suggestionMaxTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(raw)
}

// stripThinking removes a <think>...</think> block some models prepend.
func stripThinking(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return strings.TrimSpace(s[:start] + s[end+len("</think>"):])
}

// extractJSON returns the outermost span delimited by open and close.
func extractJSON(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parseQuestions(raw string) ([]domain.GeneratedQuestion, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var questions []domain.GeneratedQuestion
		if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
			return nil, fmt.Errorf("quiz response is not valid JSON: %w", err)
		}
		return questions, nil
	}

	obj, ok := extractJSON(trimmed, '{', '}')
	if !ok {
		return nil, fmt.Errorf("no JSON found in quiz response")
	}
	var payload struct {
		Questions []domain.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, fmt.Errorf("quiz response is not valid JSON: %w", err)
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("quiz response has no questions array")
	}
	return payload.Questions, nil
}

func parseSuggestions(raw string) ([]string, error) {
	var list []string
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, fmt.Errorf("suggestions response is not a JSON array: %w", err)
		}
	default:
		obj, ok := extractJSON(trimmed, '{', '}')
		if !ok {
			return nil, fmt.Errorf("no JSON found in suggestions response")
		}
		var payload struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(obj), &payload); err != nil {
			return nil, fmt.Errorf("suggestions response is not valid JSON: %w", err)
		}
		if payload.Suggestions == nil {
			return nil, fmt.Errorf("suggestions response has no suggestions array")
		}
		list = payload.Suggestions
	}

	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ domain.QuizGenerator = (*LangchainQuizGenerator)(nil)
