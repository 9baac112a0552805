package analysis

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Local is a lightweight, offline heuristic implementation. It scores a
// take from its timing metadata and, when a transcript is attached, from
// the text itself. The wire shape matches the backend analyzer so the
// rest of the app does not care which one produced a result.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

// fillerWords are counted case-insensitively; multi-word fillers are
// matched as token sequences.
var fillerWords = []string{
	"um", "uh", "er", "ah", "like", "you know", "so", "actually",
	"basically", "literally", "right", "okay", "well",
}

func (l *Local) Analyze(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	transcript := req.Transcript
	if transcript == "" && req.TranscriptPath != "" {
		data, err := os.ReadFile(req.TranscriptPath)
		if err != nil {
			return Result{}, fmt.Errorf("read transcript: %w", err)
		}
		transcript = string(data)
	}

	seconds := req.ActualDuration.Seconds()
	minutes := seconds / 60.0
	minMin, maxMin := parseExpectedRange(req.ExpectedDuration)
	overMin := rangeExcess(minutes, minMin, maxMin)

	res := Result{
		Transcription: transcript,
		Duration: Duration{
			Actual:   formatClockSeconds(int(seconds)),
			Expected: req.ExpectedDuration,
			Seconds:  round1(seconds),
		},
		Topic:  req.Topic,
		UserID: req.UserID,
		Source: "offline",
	}

	if transcript == "" {
		// Metadata-only estimate: duration adherence drives proficiency
		// and development, everything else sits at the neutral midpoint
		// the backend falls back to when a stage fails.
		res.Scores = Scores{
			Proficiency:         clampScore(20 - 2*overMin),
			VoiceModulation:     10.0,
			SpeechDevelopment:   clampScore(10 * adherence(minutes, minMin, maxMin)),
			SpeechEffectiveness: 10.0,
			Vocabulary:          10.0,
		}
		res.Vocabulary.Feedback = []string{"Attach a transcript to unlock text analysis."}
		res.OverallScore = round1(res.Scores.Proficiency + res.Scores.VoiceModulation +
			res.Scores.SpeechDevelopment + res.Scores.SpeechEffectiveness + res.Scores.Vocabulary)
		return res, nil
	}

	words := tokenize(transcript)
	total := len(words)
	counts := countFillers(words)
	fillerTotal := 0
	for _, n := range counts {
		fillerTotal += n
	}
	density := 0.0
	perMinute := 0.0
	if total > 0 {
		density = float64(fillerTotal) / float64(total)
	}
	if minutes > 0 {
		perMinute = float64(fillerTotal) / minutes
	}
	res.Filler = FillerAnalysis{
		TotalFillerWords: fillerTotal,
		FillerDensity:    round3(density),
		FillerPerMinute:  round1(perMinute),
		Counts:           counts,
	}

	pauses := strings.Count(transcript, "...")
	long := strings.Count(transcript, "[pause]")
	res.Pauses = PauseAnalysis{
		MidSentencePauses: pauses,
		LongPauses:        long,
		AveragePauseSecs:  round1(0.4 + 0.6*float64(long)),
	}

	unique := uniqueCount(words)
	diversity := 0.0
	if total > 0 {
		diversity = float64(unique) / float64(total)
	}
	advanced := advancedCount(words)
	res.Vocabulary = VocabularyDetails{
		LexicalDiversity:   round3(diversity),
		UniqueWords:        unique,
		AdvancedVocabCount: advanced,
		Feedback:           vocabularyFeedback(diversity, advanced),
	}

	proficiency := 20.0
	proficiency -= minF(10, density*200)
	proficiency -= minF(4, float64(pauses+long)*0.5)
	proficiency -= minF(6, 2*overMin)

	structure := structureScore(transcript)
	development := structure + 10*adherence(minutes, minMin, maxMin)

	effectiveness := 8.0
	effectiveness += 8 * topicCoverage(req.Topic, words)
	effectiveness += 4 * adherence(minutes, minMin, maxMin)

	vocabulary := 14*diversity + minF(8, float64(advanced))

	res.Scores = Scores{
		Proficiency:         clampScore(proficiency),
		VoiceModulation:     10.0, // no audio pipeline offline; backend default
		SpeechDevelopment:   clampScore(development),
		SpeechEffectiveness: clampScore(effectiveness),
		Vocabulary:          clampScore(vocabulary),
	}
	res.OverallScore = round1(res.Scores.Proficiency + res.Scores.VoiceModulation +
		res.Scores.SpeechDevelopment + res.Scores.SpeechEffectiveness + res.Scores.Vocabulary)
	return res, nil
}

// parseExpectedRange reads ranges like "5-7", "5-7 minutes" or a single
// "6". Zero values mean no bound.
func parseExpectedRange(s string) (minMin, maxMin float64) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "minutes")
	s = strings.TrimSuffix(s, "minute")
	s = strings.TrimSuffix(s, "min")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "-", 2)
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0
	}
	if len(parts) == 1 {
		return lo, lo
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return lo, lo
	}
	return lo, hi
}

// rangeExcess is how many minutes the take fell outside the expected range.
func rangeExcess(minutes, lo, hi float64) float64 {
	if lo == 0 && hi == 0 {
		return 0
	}
	switch {
	case minutes < lo:
		return lo - minutes
	case hi > 0 && minutes > hi:
		return minutes - hi
	default:
		return 0
	}
}

// adherence is 1.0 inside the range, decaying toward 0 outside it.
func adherence(minutes, lo, hi float64) float64 {
	excess := rangeExcess(minutes, lo, hi)
	if excess <= 0 {
		return 1
	}
	a := 1 - excess/3.0
	if a < 0 {
		return 0
	}
	return a
}

func structureScore(transcript string) float64 {
	sentences := 0
	for _, r := range transcript {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	switch {
	case sentences >= 8:
		return 10
	case sentences >= 3:
		return 7
	case sentences >= 1:
		return 4
	default:
		return 2
	}
}

func topicCoverage(topic string, words []string) float64 {
	terms := tokenize(topic)
	if len(terms) == 0 {
		return 0.5
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	hit := 0
	for _, t := range terms {
		if _, ok := set[t]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(terms))
}

func countFillers(words []string) map[string]int {
	counts := make(map[string]int)
	joined := " " + strings.Join(words, " ") + " "
	for _, f := range fillerWords {
		n := strings.Count(joined, " "+f+" ")
		if n > 0 {
			counts[f] = n
		}
	}
	return counts
}

func vocabularyFeedback(diversity float64, advanced int) []string {
	var out []string
	if diversity < 0.4 {
		out = append(out, "Vocabulary repeats often; vary your word choice.")
	} else {
		out = append(out, "Good lexical variety.")
	}
	if advanced < 3 {
		out = append(out, "Work a few more precise, advanced words into key points.")
	}
	return out
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func uniqueCount(words []string) int {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return len(set)
}

func advancedCount(words []string) int {
	seen := make(map[string]struct{})
	for _, w := range words {
		if len(w) >= 9 {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

func wordCount(s string) int {
	return len(tokenize(s))
}

func formatClockSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 20 {
		return 20
	}
	return round1(v)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

// TopFillers returns filler words sorted by descending count.
func TopFillers(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for w := range counts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
