package repository

import (
	"strconv"
	"time"
)

// Profile represents a local account row.
type Profile struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SpeechType represents a practice format row.
type SpeechType struct {
	ID          string
	Name        string
	Description string
	MinMinutes  int
	MaxMinutes  int
	SortOrder   int
}

// ExpectedRange renders the verbal duration range, e.g. "5-7 minutes".
func (s SpeechType) ExpectedRange() string {
	if s.MinMinutes == 0 && s.MaxMinutes == 0 {
		return ""
	}
	if s.MinMinutes == s.MaxMinutes {
		return strconv.Itoa(s.MinMinutes) + " minutes"
	}
	return strconv.Itoa(s.MinMinutes) + "-" + strconv.Itoa(s.MaxMinutes) + " minutes"
}

// Session represents one practice session row.
type Session struct {
	ID               string
	ProfileID        string
	RemoteID         *string
	Topic            string
	SpeechType       string
	ExpectedDuration string
	DurationSeconds  float64
	AudioPath        *string
	Source           string // local | remote
	RecordedAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Analysis         *Analysis
}

// Analysis represents the stored result for a session. FillerCounts and
// Feedback are JSON columns.
type Analysis struct {
	SessionID           string
	OverallScore        float64
	Proficiency         float64
	VoiceModulation     float64
	SpeechDevelopment   float64
	SpeechEffectiveness float64
	Vocabulary          float64
	FillerTotal         int
	FillerPerMinute     float64
	FillerCounts        map[string]int
	Transcription       *string
	Feedback            []string
	Source              string
	AnalyzedAt          time.Time
}
