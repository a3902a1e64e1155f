package hook

import (
	"strings"
	"testing"

	"github.com/forPelevin/bvs/internal/types"
)

func TestClassify_Question(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 2, Text: "你知道什么样的开头"},
		{Start: 2, End: 4, Text: "能让观众看完整个视频吗？"},
	}
	got := Classify(segs)
	if got.Type != types.HookQuestion {
		t.Fatalf("expected question, got %q", got.Type)
	}
	if got.Duration != 4.0 {
		t.Fatalf("expected duration 4.0, got %v", got.Duration)
	}
	if want := "你知道什么样的开头 能让观众看完整个视频吗？"; got.Content != want {
		t.Fatalf("content = %q, want %q", got.Content, want)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("expected 2 hook segments, got %d", len(got.Segments))
	}
}

func TestClassify_Empty(t *testing.T) {
	got := Classify(nil)
	if got.Type != types.HookNone || got.Content != "" || got.Duration != 0 {
		t.Fatalf("unexpected empty analysis: %+v", got)
	}
}

func TestClassify_WindowInclusive(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 1.5, Text: "第一句"},
		{Start: 3.0, End: 5.5, Text: "第二句"},
		{Start: 3.01, End: 7, Text: "其实不算"},
	}
	got := Classify(segs)
	if got.Content != "第一句 第二句" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if got.Duration != 5.5 {
		t.Fatalf("expected duration 5.5, got %v", got.Duration)
	}
	if got.Type != types.HookUnknown {
		t.Fatalf("expected unknown, got %q", got.Type)
	}
}

func TestClassify_NoSegmentInWindow(t *testing.T) {
	got := Classify([]types.Segment{{Start: 4, End: 6, Text: "太厉害了？"}})
	if got.Type != types.HookNone {
		t.Fatalf("expected none, got %q", got.Type)
	}
}

func TestClassify_RulePrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.HookType
	}{
		{"question beats value", "这个技巧你知道吗?", types.HookQuestion},
		{"reversal beats value", "其实这个方法很简单", types.HookReversal},
		{"value beats shock", "震惊！这个秘密", types.HookValue},
		{"shock", "太厉害了", types.HookShock},
		{"ascii question", "ready?", types.HookQuestion},
		{"nothing", "大家好", types.HookUnknown},
		{"empty text", "", types.HookUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify([]types.Segment{{Start: 0, End: 1, Text: tt.text}})
			if got.Type != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.text, got.Type, tt.want)
			}
		})
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	c := New(Rules{
		{Label: types.HookShock, Match: ContainsAny("wow")},
		{Label: types.HookQuestion, Match: func(s string) bool { return strings.HasSuffix(s, "?") }},
	})
	got := c.Classify([]types.Segment{{Start: 0, End: 2, Text: "wow, really?"}})
	if got.Type != types.HookShock {
		t.Fatalf("expected first rule to win, got %q", got.Type)
	}
}

func TestLoadRules(t *testing.T) {
	doc := `
rules:
  - label: value
    contains: ["tip", "trick"]
  - label: question
    contains: ["?"]
`
	rs, err := LoadRules(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs))
	}
	if got := rs.Label("a trick?"); got != types.HookValue {
		t.Fatalf("expected file order to win, got %q", got)
	}
	if got := rs.Label("plain"); got != types.HookUnknown {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":         "",
		"no rules":      "rules: []",
		"bad label":     "rules:\n  - label: funny\n    contains: [x]",
		"none label":    "rules:\n  - label: none\n    contains: [x]",
		"no contains":   "rules:\n  - label: shock\n",
		"not a mapping": "- 1\n- 2",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRules(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := DisplayLabel(types.HookQuestion); got != "疑问式钩子" {
		t.Fatalf("unexpected label: %s", got)
	}
	if got := DisplayLabel("custom"); got != "custom" {
		t.Fatalf("unexpected passthrough label: %s", got)
	}
}
