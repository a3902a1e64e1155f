package structure

import (
	"unicode/utf8"

	"github.com/forPelevin/bvs/internal/types"
)

// steadyRatio is the distinct-length share below which pacing reads as steady.
const steadyRatio = 0.3

// Analyze computes pacing metrics over segs. Lengths are counted in
// characters, not words, so ideographic text is measured sensibly.
func Analyze(segs []types.Segment) types.StructureMetrics {
	if len(segs) == 0 {
		return types.StructureMetrics{Empty: true}
	}

	total := 0
	lengths := make(map[int]struct{}, len(segs))
	for _, s := range segs {
		n := utf8.RuneCountInString(s.Text)
		total += n
		lengths[n] = struct{}{}
	}

	m := types.StructureMetrics{
		TotalDuration:        segs[len(segs)-1].End,
		TotalCharacterCount:  total,
		SegmentCount:         len(segs),
		AverageSegmentLength: float64(total) / float64(len(segs)),
		Rhythm:               rhythm(len(lengths), len(segs)),
	}
	if m.TotalDuration > 0 {
		m.SpeechRate = float64(total) / m.TotalDuration * 60
	}
	return m
}

// rhythm is a coarse signal: few distinct segment lengths reads as steady.
// It is not a variance measure.
func rhythm(distinct, count int) types.Rhythm {
	if float64(distinct) < float64(count)*steadyRatio {
		return types.RhythmSteady
	}
	return types.RhythmVaried
}

// DisplayRhythm is the reader-facing name of a rhythm label.
func DisplayRhythm(r types.Rhythm) string {
	switch r {
	case types.RhythmSteady:
		return "节奏平稳"
	case types.RhythmVaried:
		return "节奏多变"
	}
	return "暂无数据"
}
