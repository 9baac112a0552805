package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SessionFilters defines list filters.
type SessionFilters struct {
	ProfileID  string
	SpeechType string
	Source     string
	Search     string // topic substring
	Limit      int
}

// SessionRepo handles practice sessions and their stored analyses.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(
	 id, profile_id, remote_id, topic, speech_type, expected_duration,
	 duration_seconds, audio_path, source, recorded_at, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		s.ID, s.ProfileID, s.RemoteID, s.Topic, s.SpeechType, s.ExpectedDuration,
		s.DurationSeconds, s.AudioPath, s.Source, s.RecordedAt)
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

const sessionColumns = `
 s.id, s.profile_id, s.remote_id, s.topic, s.speech_type, s.expected_duration,
 s.duration_seconds, s.audio_path, s.source, s.recorded_at, s.created_at, s.updated_at,
 a.overall_score, a.proficiency, a.voice_modulation, a.speech_development,
 a.speech_effectiveness, a.vocabulary, a.filler_total, a.filler_per_minute,
 a.filler_counts, a.transcription, a.feedback, a.source, a.analyzed_at`

func (r *SessionRepo) List(ctx context.Context, f SessionFilters) ([]Session, error) {
	var where []string
	var args []interface{}

	if f.ProfileID != "" {
		where = append(where, "s.profile_id = ?")
		args = append(args, f.ProfileID)
	}
	if f.SpeechType != "" {
		where = append(where, "s.speech_type = ?")
		args = append(args, f.SpeechType)
	}
	if f.Source != "" {
		where = append(where, "s.source = ?")
		args = append(args, f.Source)
	}
	if f.Search != "" {
		where = append(where, "s.topic LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := "SELECT" + sessionColumns + " FROM sessions s LEFT JOIN analyses a ON a.session_id = s.id"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.recorded_at DESC, s.created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+sessionColumns+" FROM sessions s LEFT JOIN analyses a ON a.session_id = s.id WHERE s.id = ?", id)
	s, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByRemoteID finds a synced session by its server document id.
func (r *SessionRepo) GetByRemoteID(ctx context.Context, remoteID string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+sessionColumns+" FROM sessions s LEFT JOIN analyses a ON a.session_id = s.id WHERE s.remote_id = ?", remoteID)
	s, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// SaveAnalysis upserts the stored result for a session.
func (r *SessionRepo) SaveAnalysis(ctx context.Context, a Analysis) error {
	counts, err := marshalJSON(a.FillerCounts)
	if err != nil {
		return fmt.Errorf("encode filler counts: %w", err)
	}
	feedback, err := marshalJSON(a.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO analyses(
	 session_id, overall_score, proficiency, voice_modulation, speech_development,
	 speech_effectiveness, vocabulary, filler_total, filler_per_minute,
	 filler_counts, transcription, feedback, source, analyzed_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
	 overall_score=excluded.overall_score,
	 proficiency=excluded.proficiency,
	 voice_modulation=excluded.voice_modulation,
	 speech_development=excluded.speech_development,
	 speech_effectiveness=excluded.speech_effectiveness,
	 vocabulary=excluded.vocabulary,
	 filler_total=excluded.filler_total,
	 filler_per_minute=excluded.filler_per_minute,
	 filler_counts=excluded.filler_counts,
	 transcription=excluded.transcription,
	 feedback=excluded.feedback,
	 source=excluded.source,
	 analyzed_at=excluded.analyzed_at;
	`,
		a.SessionID, a.OverallScore, a.Proficiency, a.VoiceModulation, a.SpeechDevelopment,
		a.SpeechEffectiveness, a.Vocabulary, a.FillerTotal, a.FillerPerMinute,
		counts, a.Transcription, feedback, a.Source, a.AnalyzedAt)
	return err
}

// Totals aggregates a profile's full history for the profile and
// progress screens.
type Totals struct {
	Sessions     int
	TotalSeconds float64
	AverageScore float64
	BestScore    float64
}

func (r *SessionRepo) Totals(ctx context.Context, profileID string) (Totals, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*),
	       COALESCE(SUM(s.duration_seconds), 0),
	       COALESCE(AVG(a.overall_score), 0),
	       COALESCE(MAX(a.overall_score), 0)
	FROM sessions s LEFT JOIN analyses a ON a.session_id = s.id
	WHERE s.profile_id = ?;
	`, profileID)
	var t Totals
	if err := row.Scan(&t.Sessions, &t.TotalSeconds, &t.AverageScore, &t.BestScore); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// CountSince counts sessions recorded at or after the cutoff.
func (r *SessionRepo) CountSince(ctx context.Context, profileID string, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE profile_id = ? AND recorded_at >= ?`, profileID, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DayActivity is one day's practice volume for streaks and trend charts.
type DayActivity struct {
	Day          string // YYYY-MM-DD
	Sessions     int
	AverageScore float64
}

func (r *SessionRepo) ActivitySince(ctx context.Context, profileID string, since time.Time) ([]DayActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT date(s.recorded_at), COUNT(*), COALESCE(AVG(a.overall_score), 0)
	FROM sessions s LEFT JOIN analyses a ON a.session_id = s.id
	WHERE s.profile_id = ? AND s.recorded_at >= ?
	GROUP BY date(s.recorded_at)
	ORDER BY date(s.recorded_at);
	`, profileID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayActivity
	for rows.Next() {
		var d DayActivity
		if err := rows.Scan(&d.Day, &d.Sessions, &d.AverageScore); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// scanSession handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var remote, audio sql.NullString
	var overall, prof, mod, dev, eff, vocab, perMin sql.NullFloat64
	var fillerTotal sql.NullInt64
	var counts, transcription, feedback, aSource sql.NullString
	var analyzedAt sql.NullTime

	if err := row.Scan(&s.ID, &s.ProfileID, &remote, &s.Topic, &s.SpeechType, &s.ExpectedDuration,
		&s.DurationSeconds, &audio, &s.Source, &s.RecordedAt, &s.CreatedAt, &s.UpdatedAt,
		&overall, &prof, &mod, &dev, &eff, &vocab, &fillerTotal, &perMin,
		&counts, &transcription, &feedback, &aSource, &analyzedAt); err != nil {
		return Session{}, err
	}
	if remote.Valid {
		s.RemoteID = &remote.String
	}
	if audio.Valid {
		s.AudioPath = &audio.String
	}
	if !overall.Valid {
		return s, nil
	}

	a := &Analysis{
		SessionID:           s.ID,
		OverallScore:        overall.Float64,
		Proficiency:         prof.Float64,
		VoiceModulation:     mod.Float64,
		SpeechDevelopment:   dev.Float64,
		SpeechEffectiveness: eff.Float64,
		Vocabulary:          vocab.Float64,
		FillerTotal:         int(fillerTotal.Int64),
		FillerPerMinute:     perMin.Float64,
	}
	if counts.Valid && counts.String != "" {
		if err := json.Unmarshal([]byte(counts.String), &a.FillerCounts); err != nil {
			return Session{}, fmt.Errorf("decode filler counts: %w", err)
		}
	}
	if transcription.Valid {
		a.Transcription = &transcription.String
	}
	if feedback.Valid && feedback.String != "" {
		if err := json.Unmarshal([]byte(feedback.String), &a.Feedback); err != nil {
			return Session{}, fmt.Errorf("decode feedback: %w", err)
		}
	}
	if aSource.Valid {
		a.Source = aSource.String
	}
	if analyzedAt.Valid {
		a.AnalyzedAt = analyzedAt.Time
	}
	s.Analysis = a
	return s, nil
}

func marshalJSON(v interface{}) (*string, error) {
	switch t := v.(type) {
	case map[string]int:
		if len(t) == 0 {
			return nil, nil
		}
	case []string:
		if len(t) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
