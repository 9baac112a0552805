package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Analyzer produces a scored analysis for one practice take. Implementations:
// the offline Local analyzer and the backend API client.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

// Request describes one take submitted for analysis.
type Request struct {
	UserID           string
	Topic            string
	SpeechType       string
	ExpectedDuration string // verbal range, e.g. "5-7 minutes"
	ActualDuration   time.Duration
	Gender           string
	AudioPath        string // optional attached audio file
	TranscriptPath   string // optional transcript text file
	Transcript       string // inline transcript, takes precedence over TranscriptPath
}

// Result mirrors the analyze endpoint response. Five dimensions scored
// 0..20 each; the overall score is their sum out of 100.
type Result struct {
	OverallScore  float64           `json:"overall_score"`
	Scores        Scores            `json:"scores"`
	Transcription string            `json:"transcription"`
	Duration      Duration          `json:"duration"`
	Filler        FillerAnalysis    `json:"filler_analysis"`
	Pauses        PauseAnalysis     `json:"pause_analysis"`
	Vocabulary    VocabularyDetails `json:"vocabulary_details"`
	Topic         string            `json:"topic"`
	UserID        string            `json:"user_id"`
	Source        string            `json:"source,omitempty"`
}

type Scores struct {
	Proficiency         float64 `json:"proficiency"`
	VoiceModulation     float64 `json:"voice_modulation"`
	SpeechDevelopment   float64 `json:"speech_development"`
	SpeechEffectiveness float64 `json:"speech_effectiveness"`
	Vocabulary          float64 `json:"vocabulary"`
}

type Duration struct {
	Actual   string  `json:"actual"`   // "m:ss"
	Expected string  `json:"expected"` // verbal range
	Seconds  float64 `json:"seconds"`
}

type FillerAnalysis struct {
	TotalFillerWords int            `json:"total_filler_words"`
	FillerDensity    float64        `json:"filler_density"`
	FillerPerMinute  float64        `json:"filler_per_minute"`
	Counts           map[string]int `json:"counts,omitempty"`
}

type PauseAnalysis struct {
	MidSentencePauses int     `json:"mid_sentence_pauses"`
	LongPauses        int     `json:"long_pauses"`
	AveragePauseSecs  float64 `json:"average_pause_seconds"`
}

type VocabularyDetails struct {
	LexicalDiversity   float64  `json:"lexical_diversity"`
	UniqueWords        int      `json:"unique_words"`
	AdvancedVocabCount int      `json:"advanced_vocab_count"`
	Feedback           []string `json:"feedback"`
}

// PaceWPM derives words-per-minute from the transcription and duration.
// Zero when either is missing.
func (r Result) PaceWPM() float64 {
	if r.Duration.Seconds <= 0 || r.Transcription == "" {
		return 0
	}
	words := wordCount(r.Transcription)
	return float64(words) / (r.Duration.Seconds / 60.0)
}

// FormatClock renders a duration as "m:ss", matching the backend.
func FormatClock(d time.Duration) string {
	secs := int(d.Seconds())
	return formatClockSeconds(secs)
}

// ParseClock reads a "m:ss" clock back into a duration. Bare numbers are
// treated as whole minutes.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	mins, secs := s, "0"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		mins, secs = s[:i], s[i+1:]
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	sec, err := strconv.Atoi(secs)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
