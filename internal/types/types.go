package types

import "encoding/json"

type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
	Duration float64   `json:"duration"`

	AudioPath      string `json:"audio_path,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
}

// TotalDuration is the end of the last segment, or 0 without segments.
func (t Transcript) TotalDuration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

type HookType string

const (
	HookQuestion HookType = "question"
	HookReversal HookType = "reversal"
	HookValue    HookType = "value"
	HookShock    HookType = "shock"
	HookUnknown  HookType = "unknown"
	HookNone     HookType = "none"
)

// Valid reports whether h is one of the known hook labels.
func (h HookType) Valid() bool {
	switch h {
	case HookQuestion, HookReversal, HookValue, HookShock, HookUnknown, HookNone:
		return true
	}
	return false
}

type HookAnalysis struct {
	Type     HookType  `json:"type"`
	Content  string    `json:"content"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments,omitempty"`
}

type Rhythm string

const (
	RhythmSteady Rhythm = "steady"
	RhythmVaried Rhythm = "varied"
)

// StructureMetrics aggregates pacing figures over a transcript. Empty marks
// the no-data case; such metrics serialize as an empty JSON object.
type StructureMetrics struct {
	TotalDuration        float64 `json:"total_duration"`
	TotalCharacterCount  int     `json:"total_words"`
	SpeechRate           float64 `json:"speech_rate"`
	SegmentCount         int     `json:"segment_count"`
	AverageSegmentLength float64 `json:"avg_segment_length"`
	Rhythm               Rhythm  `json:"rhythm,omitempty"`
	Empty                bool    `json:"-"`
}

type ReportPaths struct {
	Markdown string `json:"markdown,omitempty"`
	JSON     string `json:"json,omitempty"`
}

// Result is the outcome of analyzing a single video.
type Result struct {
	URL         string
	Success     bool
	Err         error
	Metadata    VideoMetadata
	Transcript  Transcript
	VideoPath   string
	ReportPaths ReportPaths
	OutputDir   string
}

func (m StructureMetrics) MarshalJSON() ([]byte, error) {
	if m.Empty {
		return []byte("{}"), nil
	}
	type plain StructureMetrics
	return json.Marshal(plain(m))
}
