package state

import (
	"time"

	"github.com/speaksharp/speaksharp/internal/analysis"
)

// Stage tracks where the current practice session sits in the
// record → analyze flow.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageRecording Stage = "recording"
	StageRecorded  Stage = "recorded"
	StageAnalyzing Stage = "analyzing"
	StageAnalyzed  Stage = "analyzed"
)

// Practice is the speech-session container's value. Screens downstream
// of the recorder (playback, feedback, filler words, advanced analysis)
// read the take and result from here rather than taking parameters.
type Practice struct {
	SessionID        string
	Topic            string
	SpeechType       string
	ExpectedDuration string
	Stage            Stage
	StartedAt        time.Time
	Elapsed          time.Duration
	AudioPath        string
	// Review is set when inspecting a historical session instead of a
	// fresh take.
	Review bool
	Result *analysis.Result
}

func (p Practice) HasResult() bool {
	return p.Result != nil
}
