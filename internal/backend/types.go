package backend

import (
	"fmt"
	"time"

	"github.com/speaksharp/speaksharp/internal/analysis"
)

// HealthStatus is the /health response.
type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy" || h.Status == "online"
}

// Speech is one entry of the /api/v2/user/{id}/speeches response.
type Speech struct {
	ID             string           `json:"id"`
	Topic          string           `json:"topic"`
	SpeechType     string           `json:"speech_type"`
	ActualDuration string           `json:"actual_duration"`
	Timestamp      string           `json:"timestamp"`
	AudioURL       string           `json:"audio_url,omitempty"`
	Analysis       *analysis.Result `json:"analysis_data,omitempty"`
}

// RecordedAt parses the server timestamp; ok is false when absent or
// unparseable.
func (s Speech) RecordedAt() (time.Time, bool) {
	if s.Timestamp == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type speechesResponse struct {
	Speeches []Speech `json:"speeches"`
}

// UserStats is the /api/v2/user/{id}/stats response.
type UserStats struct {
	TotalSpeeches int     `json:"total_speeches"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
	TotalMinutes  float64 `json:"total_minutes"`
	CurrentStreak int     `json:"current_streak"`
}

// APIError is a non-2xx response with the FastAPI detail body.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Detail)
}
