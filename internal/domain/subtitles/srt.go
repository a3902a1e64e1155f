package subtitles

import (
	"strconv"
	"strings"

	"github.com/forPelevin/bvs/internal/domain/format"
	"github.com/forPelevin/bvs/internal/types"
)

// RenderSRT renders one cue per segment, numbered from 1.
func RenderSRT(segs []types.Segment) string {
	var b strings.Builder
	for i, s := range segs {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(format.SRTTimestamp(s.Start))
		b.WriteString(" --> ")
		b.WriteString(format.SRTTimestamp(s.End))
		b.WriteString("\n")
		b.WriteString(sanitizeSRT(s.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// sanitizeSRT keeps a cue on its own lines: a blank line would end it early.
func sanitizeSRT(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
