package structure

import (
	"math"
	"testing"

	"github.com/forPelevin/bvs/internal/types"
)

func TestAnalyze_Empty(t *testing.T) {
	got := Analyze(nil)
	if !got.Empty {
		t.Fatalf("expected empty marker")
	}
	if got.TotalDuration != 0 || got.TotalCharacterCount != 0 || got.SpeechRate != 0 ||
		got.SegmentCount != 0 || got.AverageSegmentLength != 0 || got.Rhythm != "" {
		t.Fatalf("expected zeroed metrics, got %+v", got)
	}
}

func TestAnalyze_Metrics(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 2, Text: "你知道什么样的开头"},
		{Start: 2, End: 4, Text: "能让观众看完整个视频吗？"},
		{Start: 4, End: 6, Text: "abc"},
	}
	got := Analyze(segs)
	if got.Empty {
		t.Fatalf("unexpected empty marker")
	}
	if got.TotalDuration != 6 {
		t.Fatalf("total duration = %v, want 6", got.TotalDuration)
	}
	if got.TotalCharacterCount != 9+12+3 {
		t.Fatalf("total chars = %d, want 24", got.TotalCharacterCount)
	}
	if got.SegmentCount != 3 {
		t.Fatalf("segment count = %d", got.SegmentCount)
	}
	if math.Abs(got.SpeechRate-240) > 1e-9 {
		t.Fatalf("speech rate = %v, want 240", got.SpeechRate)
	}
	if math.Abs(got.AverageSegmentLength-8) > 1e-9 {
		t.Fatalf("avg length = %v, want 8", got.AverageSegmentLength)
	}
	if got.Rhythm != types.RhythmVaried {
		t.Fatalf("rhythm = %q, want varied", got.Rhythm)
	}
}

func TestAnalyze_ZeroDuration(t *testing.T) {
	got := Analyze([]types.Segment{{Start: 0, End: 0, Text: "嗯"}})
	if got.SpeechRate != 0 {
		t.Fatalf("expected zero speech rate, got %v", got.SpeechRate)
	}
	if got.TotalCharacterCount != 1 {
		t.Fatalf("expected 1 char, got %d", got.TotalCharacterCount)
	}
}

func TestAnalyze_Rhythm(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  types.Rhythm
	}{
		// 1 distinct length over 4 segments: 1 < 1.2
		{"steady", []string{"一二", "三四", "五六", "七八"}, types.RhythmSteady},
		// 2 distinct lengths over 4 segments: 2 >= 1.2
		{"varied", []string{"一", "二三", "四", "五"}, types.RhythmVaried},
		// single segment: 1 distinct >= 0.3
		{"single", []string{"一"}, types.RhythmVaried},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := make([]types.Segment, len(tt.texts))
			for i, txt := range tt.texts {
				segs[i] = types.Segment{Start: float64(i), End: float64(i + 1), Text: txt}
			}
			if got := Analyze(segs).Rhythm; got != tt.want {
				t.Fatalf("rhythm = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayRhythm(t *testing.T) {
	if DisplayRhythm(types.RhythmSteady) != "节奏平稳" || DisplayRhythm(types.RhythmVaried) != "节奏多变" {
		t.Fatalf("unexpected display labels")
	}
}
