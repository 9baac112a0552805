package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/backend"
	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
)

var ErrBackendUnavailable = errors.New("history: backend not available")

// HistoryService answers the history, search, profile and progress
// screens, and pulls remote speeches into the local database.
type HistoryService struct {
	Sessions *repository.SessionRepo
	Backend  *backend.Client
	Log      *zap.Logger
}

func (s *HistoryService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// List returns recent sessions, newest first.
func (s *HistoryService) List(ctx context.Context, profileID string, limit int) ([]repository.Session, error) {
	return s.Sessions.List(ctx, repository.SessionFilters{ProfileID: profileID, Limit: limit})
}

// Get loads one session with its analysis.
func (s *HistoryService) Get(ctx context.Context, id string) (*repository.Session, error) {
	return s.Sessions.Get(ctx, id)
}

// Search ranks sessions against the query. Substring hits come first,
// then close topics by edit distance; everything else is dropped.
func (s *HistoryService) Search(ctx context.Context, profileID, query string) ([]repository.Session, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.List(ctx, profileID, 0)
	}
	all, err := s.Sessions.List(ctx, repository.SessionFilters{ProfileID: profileID})
	if err != nil {
		return nil, err
	}
	type ranked struct {
		session repository.Session
		score   float64
	}
	var hits []ranked
	for _, sess := range all {
		score, ok := matchScore(query, sess)
		if !ok {
			continue
		}
		hits = append(hits, ranked{session: sess, score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]repository.Session, len(hits))
	for i, h := range hits {
		out[i] = h.session
	}
	return out, nil
}

// matchScore is 0 for substring matches and the normalized edit distance
// otherwise. ok is false past the fuzzy cutoff. Transcripts match by
// substring only.
func matchScore(query string, sess repository.Session) (float64, bool) {
	fields := []string{strings.ToLower(sess.Topic), strings.ToLower(sess.SpeechType)}
	best := 1.0
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(f, query) {
			return 0, true
		}
		dist := levenshtein.ComputeDistance(query, f)
		maxlen := len(f)
		if len(query) > maxlen {
			maxlen = len(query)
		}
		if norm := float64(dist) / float64(maxlen); norm < best {
			best = norm
		}
	}
	if a := sess.Analysis; a != nil && a.Transcription != nil &&
		strings.Contains(strings.ToLower(*a.Transcription), query) {
		return 0, true
	}
	return best, best < 0.5
}

// SyncResult summarizes one pull from the backend.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// Sync pulls the profile's remote speeches and stores the ones not seen
// before. Re-running is a no-op for already imported speeches.
func (s *HistoryService) Sync(ctx context.Context, profileID string) (SyncResult, error) {
	res := SyncResult{}
	if s.Backend == nil || !s.Backend.Connected() {
		return res, ErrBackendUnavailable
	}
	speeches, err := s.Backend.Speeches(ctx, profileID, 0)
	if err != nil {
		return res, err
	}
	for _, sp := range speeches {
		if sp.ID == "" {
			res.Skipped++
			continue
		}
		existing, err := s.Sessions.GetByRemoteID(ctx, sp.ID)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		if existing != nil {
			res.Skipped++
			continue
		}
		row, err := remoteSession(profileID, sp)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		if err := s.Sessions.Insert(ctx, row); err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, err)
			continue
		}
		if sp.Analysis != nil {
			stored := toStoredAnalysis(row.ID, *sp.Analysis)
			if stored.Source == "" {
				stored.Source = "backend"
			}
			if err := s.Sessions.SaveAnalysis(ctx, stored); err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
		}
		res.Imported++
	}
	s.logger().Info("history synced",
		zap.String("profile", profileID),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

func remoteSession(profileID string, sp backend.Speech) (repository.Session, error) {
	remoteID := sp.ID
	now := database.Now()
	row := repository.Session{
		ID:         uuid.NewString(),
		ProfileID:  profileID,
		RemoteID:   &remoteID,
		Topic:      sp.Topic,
		SpeechType: sp.SpeechType,
		Source:     "remote",
		RecordedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if t, ok := sp.RecordedAt(); ok {
		row.RecordedAt = t.UTC().Truncate(time.Second)
	}
	if sp.Analysis != nil {
		row.DurationSeconds = sp.Analysis.Duration.Seconds
		row.ExpectedDuration = sp.Analysis.Duration.Expected
	}
	if row.DurationSeconds == 0 && sp.ActualDuration != "" {
		d, err := analysis.ParseClock(sp.ActualDuration)
		if err != nil {
			return row, err
		}
		row.DurationSeconds = d.Seconds()
	}
	if sp.AudioURL != "" {
		u := sp.AudioURL
		row.AudioPath = &u
	}
	return row, nil
}

// Stats aggregates the local history for the profile and progress screens.
type Stats struct {
	Totals   repository.Totals
	ThisWeek int
	Streak   int
	Days     []repository.DayActivity
}

func (s *HistoryService) Stats(ctx context.Context, profileID string) (Stats, error) {
	var st Stats
	totals, err := s.Sessions.Totals(ctx, profileID)
	if err != nil {
		return st, err
	}
	st.Totals = totals

	now := time.Now().UTC()
	weekStart := startOfWeek(now)
	st.ThisWeek, err = s.Sessions.CountSince(ctx, profileID, weekStart)
	if err != nil {
		return st, err
	}

	st.Days, err = s.Sessions.ActivitySince(ctx, profileID, now.AddDate(0, 0, -90))
	if err != nil {
		return st, err
	}
	st.Streak = streakDays(st.Days, now)
	return st, nil
}

// startOfWeek is midnight Monday UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

// streakDays counts consecutive practice days ending today or yesterday.
func streakDays(days []repository.DayActivity, now time.Time) int {
	practiced := make(map[string]bool, len(days))
	for _, d := range days {
		if d.Sessions > 0 {
			practiced[d.Day] = true
		}
	}
	day := now.UTC()
	if !practiced[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for practiced[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
