package analysis

import (
	"context"
	"testing"
	"time"
)

func TestAnalyzeMetadataOnly(t *testing.T) {
	a := NewLocal()
	res, err := a.Analyze(context.Background(), Request{
		UserID:           "u1",
		Topic:            "Leadership",
		ExpectedDuration: "5-7 minutes",
		ActualDuration:   6 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Source != "offline" {
		t.Errorf("source = %q, want offline", res.Source)
	}
	if res.Duration.Actual != "6:00" {
		t.Errorf("actual = %q, want 6:00", res.Duration.Actual)
	}
	if res.Scores.Proficiency != 20 {
		t.Errorf("proficiency = %v, want 20 for in-range take", res.Scores.Proficiency)
	}
	if res.Scores.VoiceModulation != 10 {
		t.Errorf("modulation = %v, want neutral 10 without audio", res.Scores.VoiceModulation)
	}
	if res.OverallScore != 60 {
		t.Errorf("overall = %v, want 60", res.OverallScore)
	}
}

func TestAnalyzeShortTakePenalty(t *testing.T) {
	a := NewLocal()
	res, err := a.Analyze(context.Background(), Request{
		ExpectedDuration: "5-7",
		ActualDuration:   2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Scores.Proficiency != 14 {
		t.Errorf("proficiency = %v, want 14 when 3 minutes short", res.Scores.Proficiency)
	}
	if res.Scores.SpeechDevelopment != 0 {
		t.Errorf("development = %v, want 0 when far outside range", res.Scores.SpeechDevelopment)
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	a := NewLocal()
	transcript := "Um today I want to talk about leadership. Um leading teams is hard, you know. Basically leadership takes practice and dedication."
	res, err := a.Analyze(context.Background(), Request{
		Topic:            "leadership",
		ExpectedDuration: "1-2",
		ActualDuration:   time.Minute,
		Transcript:       transcript,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Filler.TotalFillerWords != 4 {
		t.Fatalf("total fillers = %d, want 4", res.Filler.TotalFillerWords)
	}
	if res.Filler.Counts["um"] != 2 {
		t.Errorf(`counts["um"] = %d, want 2`, res.Filler.Counts["um"])
	}
	if res.Filler.Counts["you know"] != 1 {
		t.Errorf(`counts["you know"] = %d, want 1`, res.Filler.Counts["you know"])
	}
	if res.Filler.Counts["basically"] != 1 {
		t.Errorf(`counts["basically"] = %d, want 1`, res.Filler.Counts["basically"])
	}
	if res.Filler.FillerPerMinute != 4 {
		t.Errorf("fillers per minute = %v, want 4", res.Filler.FillerPerMinute)
	}
	if res.Vocabulary.UniqueWords != 19 {
		t.Errorf("unique words = %d, want 19", res.Vocabulary.UniqueWords)
	}
	if res.Vocabulary.AdvancedVocabCount != 3 {
		t.Errorf("advanced words = %d, want 3", res.Vocabulary.AdvancedVocabCount)
	}
	// topic term appears in the transcript and the take is in range
	if res.Scores.SpeechEffectiveness != 20 {
		t.Errorf("effectiveness = %v, want 20", res.Scores.SpeechEffectiveness)
	}
	if res.Scores.Vocabulary <= 10 || res.Scores.Vocabulary > 20 {
		t.Errorf("vocabulary = %v, want within (10, 20]", res.Scores.Vocabulary)
	}
	if res.Transcription != transcript {
		t.Error("transcription should be carried through")
	}
}

func TestParseExpectedRange(t *testing.T) {
	cases := []struct {
		in     string
		lo, hi float64
	}{
		{"5-7", 5, 7},
		{"5-7 minutes", 5, 7},
		{"6", 6, 6},
		{"4-6 min", 4, 6},
		{"", 0, 0},
		{"whenever", 0, 0},
	}
	for _, c := range cases {
		lo, hi := parseExpectedRange(c.in)
		if lo != c.lo || hi != c.hi {
			t.Errorf("parseExpectedRange(%q) = %v,%v want %v,%v", c.in, lo, hi, c.lo, c.hi)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(5*time.Minute + 32*time.Second); got != "5:32" {
		t.Errorf("FormatClock = %q, want 5:32", got)
	}
	if got := FormatClock(0); got != "0:00" {
		t.Errorf("FormatClock zero = %q, want 0:00", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"5:32", 5*time.Minute + 32*time.Second},
		{"0:07", 7 * time.Second},
		{"3", 3 * time.Minute},
		{" 1:00 ", time.Minute},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if _, err := ParseClock(""); err == nil {
		t.Error("expected error for empty clock")
	}
	if _, err := ParseClock("x:yz"); err == nil {
		t.Error("expected error for junk clock")
	}
}

func TestTopFillers(t *testing.T) {
	counts := map[string]int{"um": 3, "like": 5, "so": 3}
	got := TopFillers(counts)
	if len(got) != 3 || got[0] != "like" {
		t.Fatalf("TopFillers = %v, want like first", got)
	}
	// ties break alphabetically
	if got[1] != "so" || got[2] != "um" {
		t.Errorf("tie order = %v, want so before um", got[1:])
	}
}

func TestPaceWPM(t *testing.T) {
	r := Result{
		Transcription: "one two three four five six",
		Duration:      Duration{Seconds: 30},
	}
	if got := r.PaceWPM(); got != 12 {
		t.Errorf("pace = %v, want 12", got)
	}
	if (Result{}).PaceWPM() != 0 {
		t.Error("pace of empty result should be 0")
	}
}
