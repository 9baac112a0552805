package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/recorder"
	"github.com/speaksharp/speaksharp/internal/state"
)

// fakeRecorder hands out a scripted take.
type fakeRecorder struct {
	take      recorder.Take
	recording bool
}

func (f *fakeRecorder) Start(ctx context.Context) error {
	if f.recording {
		return recorder.ErrAlreadyRecording
	}
	f.recording = true
	return nil
}

func (f *fakeRecorder) Stop() (recorder.Take, error) {
	if !f.recording {
		return recorder.Take{}, recorder.ErrNotRecording
	}
	f.recording = false
	return f.take, nil
}

func (f *fakeRecorder) Cancel() error {
	if !f.recording {
		return recorder.ErrNotRecording
	}
	f.recording = false
	return nil
}

func (f *fakeRecorder) Elapsed() time.Duration {
	if !f.recording {
		return 0
	}
	return f.take.Duration
}

func (f *fakeRecorder) Recording() bool { return f.recording }

// fakeAnalyzer returns a fixed result or error.
type fakeAnalyzer struct {
	result analysis.Result
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req analysis.Request) (analysis.Result, error) {
	f.calls++
	if f.err != nil {
		return analysis.Result{}, f.err
	}
	res := f.result
	res.UserID = req.UserID
	res.Topic = req.Topic
	return res, nil
}

type practiceFixture struct {
	svc      *PracticeService
	sessions *repository.SessionRepo
	rec      *fakeRecorder
	an       *fakeAnalyzer
	ctx      context.Context
}

func newPracticeFixture(t *testing.T) *practiceFixture {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedDefaults(ctx, db))

	profiles := repository.NewProfileRepo(db)
	now := database.Now()
	require.NoError(t, profiles.Insert(ctx, repository.Profile{
		ID: "profile-1", Name: "Ada Lovelace", Email: "ada@example.com",
		PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
	}))

	account := state.NewStore(state.Account{ID: "profile-1", Name: "Ada Lovelace"})
	session := state.NewStore(state.Practice{})
	rec := &fakeRecorder{take: recorder.Take{
		StartedAt: time.Now().Add(-6 * time.Minute),
		Duration:  6 * time.Minute,
		AudioPath: "/tmp/take.wav",
	}}
	an := &fakeAnalyzer{result: analysis.Result{
		OverallScore: 72,
		Scores:       analysis.Scores{Proficiency: 16, VoiceModulation: 14, SpeechDevelopment: 15, SpeechEffectiveness: 13, Vocabulary: 14},
		Filler:       analysis.FillerAnalysis{TotalFillerWords: 5, FillerPerMinute: 0.8, Counts: map[string]int{"um": 3, "like": 2}},
		Duration:     analysis.Duration{Actual: "6:00", Seconds: 360},
		Source:       "offline",
	}}

	sessions := repository.NewSessionRepo(db)
	svc := &PracticeService{
		Sessions: sessions,
		Types:    repository.NewSpeechTypeRepo(db),
		Recorder: rec,
		Analyzer: an,
		Session:  session,
		Account:  account,
		Gender:   "unspecified",
	}
	return &practiceFixture{svc: svc, sessions: sessions, rec: rec, an: an, ctx: ctx}
}

func TestPracticeFlow(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)

	require.NoError(t, f.svc.Begin(f.ctx, "Why I hike", "Prepared Speech"))
	p := f.svc.Session.Get()
	require.NotEmpty(t, p.SessionID)
	require.Equal(t, state.StageIdle, p.Stage)
	require.Equal(t, "5-7 minutes", p.ExpectedDuration)
	t.Log("session begun")

	require.NoError(t, f.svc.StartRecording(f.ctx))
	require.Equal(t, state.StageRecording, f.svc.Session.Get().Stage)

	p, err := f.svc.StopRecording(f.ctx)
	require.NoError(t, err)
	require.Equal(t, state.StageRecorded, p.Stage)
	require.Equal(t, 6*time.Minute, p.Elapsed)
	require.Equal(t, "/tmp/take.wav", p.AudioPath)
	t.Log("take recorded")

	row, err := f.sessions.Get(f.ctx, p.SessionID)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, "local", row.Source)
	require.Equal(t, 360.0, row.DurationSeconds)
	require.Nil(t, row.Analysis)

	res, err := f.svc.Analyze(f.ctx)
	require.NoError(t, err)
	require.Equal(t, 72.0, res.OverallScore)
	require.Equal(t, 1, f.an.calls)

	p = f.svc.Session.Get()
	require.Equal(t, state.StageAnalyzed, p.Stage)
	require.True(t, p.HasResult())
	require.Equal(t, "Why I hike", p.Result.Topic)
	t.Log("analysis stored in container")

	row, err = f.sessions.Get(f.ctx, p.SessionID)
	require.NoError(t, err)
	require.NotNil(t, row.Analysis)
	require.Equal(t, 72.0, row.Analysis.OverallScore)
	require.Equal(t, 5, row.Analysis.FillerTotal)
	require.Equal(t, "offline", row.Analysis.Source)
	t.Log("analysis persisted")
}

func TestAnalyzeFailureRevertsStage(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)
	f.an.err = errors.New("backend down")

	require.NoError(t, f.svc.Begin(f.ctx, "Topic", "Table Topics"))
	require.NoError(t, f.svc.StartRecording(f.ctx))
	_, err := f.svc.StopRecording(f.ctx)
	require.NoError(t, err)

	_, err = f.svc.Analyze(f.ctx)
	require.Error(t, err)

	p := f.svc.Session.Get()
	require.Equal(t, state.StageRecorded, p.Stage)
	require.False(t, p.HasResult())

	row, err := f.sessions.Get(f.ctx, p.SessionID)
	require.NoError(t, err)
	require.Nil(t, row.Analysis)
}

func TestStageGuards(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)

	require.ErrorIs(t, f.svc.StartRecording(f.ctx), ErrBadStage)
	_, err := f.svc.StopRecording(f.ctx)
	require.ErrorIs(t, err, ErrBadStage)
	_, err = f.svc.Analyze(f.ctx)
	require.ErrorIs(t, err, ErrBadStage)

	require.NoError(t, f.svc.Begin(f.ctx, "Topic", "Icebreaker"))
	_, err = f.svc.Analyze(f.ctx)
	require.ErrorIs(t, err, ErrBadStage)
}

func TestRetake(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)

	require.NoError(t, f.svc.Begin(f.ctx, "Topic", "Evaluation"))
	require.NoError(t, f.svc.StartRecording(f.ctx))
	p, err := f.svc.StopRecording(f.ctx)
	require.NoError(t, err)
	firstID := p.SessionID

	require.NoError(t, f.svc.Retake(f.ctx))
	p = f.svc.Session.Get()
	require.Equal(t, state.StageIdle, p.Stage)
	require.NotEqual(t, firstID, p.SessionID)
	require.Equal(t, "Topic", p.Topic)

	row, err := f.sessions.Get(f.ctx, firstID)
	require.NoError(t, err)
	require.Nil(t, row, "discarded take should be deleted")
}

func TestReview(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)

	require.NoError(t, f.svc.Begin(f.ctx, "Stored talk", "Prepared Speech"))
	require.NoError(t, f.svc.StartRecording(f.ctx))
	p, err := f.svc.StopRecording(f.ctx)
	require.NoError(t, err)
	_, err = f.svc.Analyze(f.ctx)
	require.NoError(t, err)
	storedID := p.SessionID

	// new take in flight, then jump back to history
	require.NoError(t, f.svc.Begin(f.ctx, "Other", "Icebreaker"))
	require.NoError(t, f.svc.Review(f.ctx, storedID))

	p = f.svc.Session.Get()
	require.True(t, p.Review)
	require.Equal(t, state.StageAnalyzed, p.Stage)
	require.Equal(t, "Stored talk", p.Topic)
	require.NotNil(t, p.Result)
	require.Equal(t, 72.0, p.Result.OverallScore)
	require.Equal(t, "6:00", p.Result.Duration.Actual)
	require.Equal(t, map[string]int{"um": 3, "like": 2}, p.Result.Filler.Counts)
}

func TestReviewMissingSession(t *testing.T) {
	t.Parallel()
	f := newPracticeFixture(t)
	require.Error(t, f.svc.Review(f.ctx, "no-such-id"))
}
