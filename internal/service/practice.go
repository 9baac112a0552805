package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/recorder"
	"github.com/speaksharp/speaksharp/internal/state"
)

var (
	ErrNotSignedIn = errors.New("practice: not signed in")
	ErrNoTake      = errors.New("practice: no recorded take")
	ErrBadStage    = errors.New("practice: wrong stage for that action")
)

// PracticeService drives the record → analyze flow. It owns the
// speech-session container: every stage change screens observe goes
// through here.
type PracticeService struct {
	Sessions *repository.SessionRepo
	Types    *repository.SpeechTypeRepo
	Recorder recorder.Recorder
	Analyzer analysis.Analyzer
	Session  *state.Store[state.Practice]
	Account  *state.Store[state.Account]

	Gender         string
	TranscriptPath string
	Log            *zap.Logger
}

func (s *PracticeService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Begin resets the speech-session container for a fresh take.
func (s *PracticeService) Begin(ctx context.Context, topic, speechType string) error {
	if !s.Account.Get().SignedIn() {
		return ErrNotSignedIn
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "Freestyle"
	}
	expected := ""
	if st, err := s.Types.GetByName(ctx, speechType); err != nil {
		return err
	} else if st != nil {
		expected = st.ExpectedRange()
	}
	s.Session.Set(state.Practice{
		SessionID:        uuid.NewString(),
		Topic:            topic,
		SpeechType:       speechType,
		ExpectedDuration: expected,
		Stage:            state.StageIdle,
	})
	return nil
}

// StartRecording flips the container to the recording stage.
func (s *PracticeService) StartRecording(ctx context.Context) error {
	p := s.Session.Get()
	if p.SessionID == "" {
		return ErrBadStage
	}
	if p.Stage != state.StageIdle {
		return ErrBadStage
	}
	if err := s.Recorder.Start(ctx); err != nil {
		return err
	}
	s.Session.Update(func(p state.Practice) state.Practice {
		p.Stage = state.StageRecording
		p.StartedAt = time.Now()
		return p
	})
	s.logger().Info("recording started", zap.String("session", p.SessionID), zap.String("topic", p.Topic))
	return nil
}

// Elapsed reports the running take's length for the recording timer.
func (s *PracticeService) Elapsed() time.Duration {
	return s.Recorder.Elapsed()
}

// StopRecording ends the take and persists the session row.
func (s *PracticeService) StopRecording(ctx context.Context) (state.Practice, error) {
	p := s.Session.Get()
	if p.Stage != state.StageRecording {
		return p, ErrBadStage
	}
	take, err := s.Recorder.Stop()
	if err != nil {
		return p, err
	}
	acct := s.Account.Get()
	if !acct.SignedIn() {
		return p, ErrNotSignedIn
	}
	now := database.Now()
	row := repository.Session{
		ID:               p.SessionID,
		ProfileID:        acct.ID,
		Topic:            p.Topic,
		SpeechType:       p.SpeechType,
		ExpectedDuration: p.ExpectedDuration,
		DurationSeconds:  take.Duration.Seconds(),
		Source:           "local",
		RecordedAt:       take.StartedAt.UTC().Truncate(time.Second),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if take.AudioPath != "" {
		path := take.AudioPath
		row.AudioPath = &path
	}
	if err := s.Sessions.Insert(ctx, row); err != nil {
		return p, fmt.Errorf("persist session: %w", err)
	}
	s.Session.Update(func(p state.Practice) state.Practice {
		p.Stage = state.StageRecorded
		p.Elapsed = take.Duration
		p.AudioPath = take.AudioPath
		return p
	})
	s.logger().Info("recording stopped",
		zap.String("session", p.SessionID),
		zap.Duration("elapsed", take.Duration))
	return s.Session.Get(), nil
}

// Retake discards the stored take so the speaker can go again with the
// same topic and format.
func (s *PracticeService) Retake(ctx context.Context) error {
	p := s.Session.Get()
	switch p.Stage {
	case state.StageRecording:
		if err := s.Recorder.Cancel(); err != nil {
			return err
		}
	case state.StageRecorded, state.StageAnalyzed:
		if err := s.Sessions.Delete(ctx, p.SessionID); err != nil {
			return err
		}
	default:
		return ErrBadStage
	}
	s.Session.Update(func(p state.Practice) state.Practice {
		p.SessionID = uuid.NewString()
		p.Stage = state.StageIdle
		p.Elapsed = 0
		p.AudioPath = ""
		p.Result = nil
		return p
	})
	return nil
}

// Analyze submits the stored take and saves the scored result. On failure
// the container drops back to the recorded stage so the user can retry.
func (s *PracticeService) Analyze(ctx context.Context) (analysis.Result, error) {
	p := s.Session.Get()
	if p.Stage != state.StageRecorded {
		return analysis.Result{}, ErrBadStage
	}
	acct := s.Account.Get()
	if !acct.SignedIn() {
		return analysis.Result{}, ErrNotSignedIn
	}
	s.Session.Update(func(p state.Practice) state.Practice {
		p.Stage = state.StageAnalyzing
		return p
	})
	req := analysis.Request{
		UserID:           acct.ID,
		Topic:            p.Topic,
		SpeechType:       p.SpeechType,
		ExpectedDuration: p.ExpectedDuration,
		ActualDuration:   p.Elapsed,
		Gender:           s.Gender,
		AudioPath:        p.AudioPath,
		TranscriptPath:   s.TranscriptPath,
	}
	res, err := s.Analyzer.Analyze(ctx, req)
	if err != nil {
		s.Session.Update(func(p state.Practice) state.Practice {
			p.Stage = state.StageRecorded
			return p
		})
		s.logger().Warn("analysis failed", zap.String("session", p.SessionID), zap.Error(err))
		return analysis.Result{}, err
	}
	if err := s.Sessions.SaveAnalysis(ctx, toStoredAnalysis(p.SessionID, res)); err != nil {
		s.Session.Update(func(p state.Practice) state.Practice {
			p.Stage = state.StageRecorded
			return p
		})
		return analysis.Result{}, fmt.Errorf("persist analysis: %w", err)
	}
	s.Session.Update(func(p state.Practice) state.Practice {
		p.Stage = state.StageAnalyzed
		p.Result = &res
		return p
	})
	s.logger().Info("analysis complete",
		zap.String("session", p.SessionID),
		zap.Float64("overall", res.OverallScore),
		zap.String("source", res.Source))
	return res, nil
}

// Review loads a stored session into the container so the feedback
// screens can show it. Used by the history list.
func (s *PracticeService) Review(ctx context.Context, sessionID string) error {
	row, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("practice: session %s not found", sessionID)
	}
	if row.Analysis == nil {
		return ErrNoTake
	}
	audio := ""
	if row.AudioPath != nil {
		audio = *row.AudioPath
	}
	s.Session.Set(state.Practice{
		SessionID:        row.ID,
		Topic:            row.Topic,
		SpeechType:       row.SpeechType,
		ExpectedDuration: row.ExpectedDuration,
		Stage:            state.StageAnalyzed,
		StartedAt:        row.RecordedAt,
		Elapsed:          time.Duration(row.DurationSeconds * float64(time.Second)),
		AudioPath:        audio,
		Review:           true,
		Result:           storedResult(*row),
	})
	return nil
}

func toStoredAnalysis(sessionID string, res analysis.Result) repository.Analysis {
	a := repository.Analysis{
		SessionID:           sessionID,
		OverallScore:        res.OverallScore,
		Proficiency:         res.Scores.Proficiency,
		VoiceModulation:     res.Scores.VoiceModulation,
		SpeechDevelopment:   res.Scores.SpeechDevelopment,
		SpeechEffectiveness: res.Scores.SpeechEffectiveness,
		Vocabulary:          res.Scores.Vocabulary,
		FillerTotal:         res.Filler.TotalFillerWords,
		FillerPerMinute:     res.Filler.FillerPerMinute,
		FillerCounts:        res.Filler.Counts,
		Feedback:            res.Vocabulary.Feedback,
		Source:              res.Source,
		AnalyzedAt:          database.Now(),
	}
	if res.Transcription != "" {
		tr := res.Transcription
		a.Transcription = &tr
	}
	return a
}

// storedResult rebuilds a wire-shaped result from persisted columns.
// Pause details are not stored, so those come back zeroed.
func storedResult(row repository.Session) *analysis.Result {
	a := row.Analysis
	res := analysis.Result{
		OverallScore: a.OverallScore,
		Scores: analysis.Scores{
			Proficiency:         a.Proficiency,
			VoiceModulation:     a.VoiceModulation,
			SpeechDevelopment:   a.SpeechDevelopment,
			SpeechEffectiveness: a.SpeechEffectiveness,
			Vocabulary:          a.Vocabulary,
		},
		Duration: analysis.Duration{
			Actual:   analysis.FormatClock(time.Duration(row.DurationSeconds * float64(time.Second))),
			Expected: row.ExpectedDuration,
			Seconds:  row.DurationSeconds,
		},
		Filler: analysis.FillerAnalysis{
			TotalFillerWords: a.FillerTotal,
			FillerPerMinute:  a.FillerPerMinute,
			Counts:           a.FillerCounts,
		},
		Vocabulary: analysis.VocabularyDetails{
			Feedback: a.Feedback,
		},
		Topic:  row.Topic,
		UserID: row.ProfileID,
		Source: a.Source,
	}
	if a.Transcription != nil {
		res.Transcription = *a.Transcription
	}
	return &res
}
