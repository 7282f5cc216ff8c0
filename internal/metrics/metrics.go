package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionsTotal counts graded attempts by kind (submit, retry).
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Graded quiz submissions",
		},
		[]string{"kind"},
	)

	QuizzesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quizzes_generated_total",
		Help: "Quizzes generated and stored",
	})

	RejectedQuestions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "generated_questions_rejected_total",
		Help: "Generated questions dropped by structural validation",
	})

	// LLMCalls counts generator calls by operation (quiz, hint, suggestions) and outcome.
	LLMCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_calls_total",
			Help: "Calls to the quiz content generator",
		},
		[]string{"operation", "outcome"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Result notifications by outcome",
		},
		[]string{"outcome"},
	)
)

// Init registers every collector with reg.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestCounter,
		RequestDuration,
		SubmissionsTotal,
		QuizzesGenerated,
		RejectedQuestions,
		LLMCalls,
		NotificationsTotal,
	)
}

// Outcome labels an error for LLMCalls and NotificationsTotal.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
