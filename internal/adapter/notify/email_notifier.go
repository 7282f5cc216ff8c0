package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
	"time"

	"ai-quizzer/internal/config"
	"ai-quizzer/internal/domain"
	"ai-quizzer/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned when SMTP settings are missing.
var ErrDisabled = errors.New("email service not configured")

const testSubject = "AI Quizzer - Email Service Test"

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier implements domain.Notifier over SMTP.
type EmailNotifier struct {
	sender  mailSender
	from    string
	timeout time.Duration
}

// NewEmailNotifier returns a notifier for cfg. When the SMTP host or user
// is missing the notifier is disabled and every send returns ErrDisabled.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	if cfg.Host == "" || cfg.User == "" {
		logger.Get().Warn("email configuration incomplete, notifications disabled")
		return &EmailNotifier{}
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &EmailNotifier{
		sender:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    from,
		timeout: cfg.SendTimeout,
	}
}

func newEmailNotifierWithSender(sender mailSender, from string, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, timeout: timeout}
}

func (n *EmailNotifier) Enabled() bool {
	return n.sender != nil
}

// SendQuizResults implements domain.Notifier
func (n *EmailNotifier) SendQuizResults(ctx context.Context, note domain.ResultNotification) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	if note.To == "" || note.Submission == nil {
		return fmt.Errorf("result notification needs a recipient and a submission")
	}

	html, text, err := renderResults(note)
	if err != nil {
		return err
	}
	m := n.newMessage(note.To, "Quiz Results: "+note.Submission.QuizTitle, text, html)
	if err := n.send(ctx, m); err != nil {
		return fmt.Errorf("failed to send quiz results to %s: %w", note.To, err)
	}
	logger.Get().Info("quiz results email sent",
		zap.String("submission_id", note.Submission.ID),
		zap.Int("suggestions", len(note.Suggestions)))
	return nil
}

// SendTest implements domain.Notifier
func (n *EmailNotifier) SendTest(ctx context.Context, to string) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	m := n.newMessage(to, testSubject,
		"Email Service Working! Your AI Quizzer email configuration is set up correctly.",
		"<h1>Email Service Working!</h1><p>Your AI Quizzer email configuration is set up correctly.</p>")
	if err := n.send(ctx, m); err != nil {
		return fmt.Errorf("failed to send test email to %s: %w", to, err)
	}
	return nil
}

func (n *EmailNotifier) newMessage(to, subject, text, html string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)
	return m
}

// send bounds the blocking SMTP exchange by ctx and the configured timeout.
// gomail has no context support, so an abandoned dial finishes in the
// background.
func (n *EmailNotifier) send(ctx context.Context, m *gomail.Message) error {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- n.sender.DialAndSend(m) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type resultView struct {
	QuizTitle   string
	Subject     string
	GradeLevel  string
	Score       string
	ScoreColor  string
	Performance string
	Correct     int
	Total       int
	Completed   string
	Suggestions []string
}

func performance(score float64) (message, color string) {
	switch {
	case score >= 80:
		return "Excellent work!", "#4CAF50"
	case score >= 60:
		return "Good job!", "#FF9800"
	default:
		return "Keep practicing!", "#F44336"
	}
}

func renderResults(note domain.ResultNotification) (html, text string, err error) {
	s := note.Submission
	message, color := performance(s.Score)
	view := resultView{
		QuizTitle:   s.QuizTitle,
		Subject:     s.Subject,
		GradeLevel:  s.GradeLevel,
		Score:       strconv.FormatFloat(s.Score, 'f', -1, 64),
		ScoreColor:  color,
		Performance: message,
		Correct:     s.CorrectAnswersCount,
		Total:       s.TotalQuestions,
		Completed:   s.CompletedDate.UTC().Format("2006-01-02 15:04 MST"),
		Suggestions: note.Suggestions,
	}

	var hb, tb bytes.Buffer
	if err := resultsHTML.Execute(&hb, view); err != nil {
		return "", "", fmt.Errorf("render results html: %w", err)
	}
	if err := resultsText.Execute(&tb, view); err != nil {
		return "", "", fmt.Errorf("render results text: %w", err)
	}
	return hb.String(), tb.String(), nil
}

var resultsHTML = htmltemplate.Must(htmltemplate.New("results.html").Funcs(htmltemplate.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Quiz Results</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #667eea; color: white; padding: 30px; text-align: center;">
    <h1>Quiz Results</h1>
    <p>Your performance summary is ready!</p>
  </div>
  <div style="background: #f9f9f9; padding: 30px;">
    <h2>{{.Performance}}</h2>
    <div style="font-size: 48px; font-weight: bold; color: {{.ScoreColor}};">{{.Score}}%</div>
    <p>You got <strong>{{.Correct}}</strong> out of <strong>{{.Total}}</strong> questions correct</p>
    <h3>Quiz Details</h3>
    <p><strong>Quiz Title:</strong> {{.QuizTitle}}</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Grade Level:</strong> {{.GradeLevel}}</p>
    <p><strong>Completed:</strong> {{.Completed}}</p>
    {{- if .Suggestions}}
    <div style="background: #e3f2fd; padding: 20px;">
      <h3>AI-Powered Improvement Suggestions</h3>
      {{- range $i, $s := .Suggestions}}
      <p><strong>Suggestion {{inc $i}}:</strong> {{$s}}</p>
      {{- end}}
    </div>
    {{- end}}
    <p style="text-align: center; color: #666;"><em>This email was sent by AI Quizzer</em></p>
  </div>
</body>
</html>`))

var resultsText = texttemplate.Must(texttemplate.New("results.txt").Funcs(texttemplate.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`Quiz Results - {{.QuizTitle}}

{{.Performance}}
Score: {{.Score}}% ({{.Correct}}/{{.Total}})

Quiz Details:
- Subject: {{.Subject}}
- Grade Level: {{.GradeLevel}}
- Completed: {{.Completed}}
{{if .Suggestions}}
AI-Powered Improvement Suggestions:
{{range $i, $s := .Suggestions}}{{inc $i}}. {{$s}}
{{end}}{{end}}
Keep learning and improving!
- AI Quizzer Team
`))

var _ domain.Notifier = (*EmailNotifier)(nil)
