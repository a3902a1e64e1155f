package hook

import (
	"strings"

	"github.com/forPelevin/bvs/internal/types"
)

// Window is the opening span, in seconds, inspected for a hook. A segment
// belongs to the hook when it starts at or before the window end.
const Window = 3.0

// Rule labels text that satisfies Match.
type Rule struct {
	Label types.HookType
	Match func(text string) bool
}

// Rules is evaluated in order; the first matching rule wins.
type Rules []Rule

// ContainsAny matches text holding at least one of words.
func ContainsAny(words ...string) func(string) bool {
	cp := append([]string(nil), words...)
	return func(text string) bool {
		for _, w := range cp {
			if w != "" && strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

var (
	questionMarks = []string{"？", "?"}
	reversalWords = []string{"但是", "然而", "不过", "其实"}
	valueWords    = []string{"秘密", "方法", "技巧", "绝招"}
	shockWords    = []string{"震惊", "惊人", "不敢相信", "太厉害"}
)

// DefaultRules is the built-in lexical table: question > reversal > value > shock.
func DefaultRules() Rules {
	return Rules{
		{Label: types.HookQuestion, Match: ContainsAny(questionMarks...)},
		{Label: types.HookReversal, Match: ContainsAny(reversalWords...)},
		{Label: types.HookValue, Match: ContainsAny(valueWords...)},
		{Label: types.HookShock, Match: ContainsAny(shockWords...)},
	}
}

// Label returns the first matching label, or unknown when nothing matches.
func (rs Rules) Label(text string) types.HookType {
	for _, r := range rs {
		if r.Match != nil && r.Match(text) {
			return r.Label
		}
	}
	return types.HookUnknown
}

type Classifier struct {
	rules Rules
}

// New returns a classifier over rules; nil rules mean DefaultRules.
func New(rules Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify inspects the segments starting within Window.
func (c *Classifier) Classify(segs []types.Segment) types.HookAnalysis {
	var hook []types.Segment
	for _, s := range segs {
		if s.Start <= Window {
			hook = append(hook, s)
		}
	}
	if len(hook) == 0 {
		return types.HookAnalysis{Type: types.HookNone}
	}

	texts := make([]string, len(hook))
	for i, s := range hook {
		texts[i] = s.Text
	}
	content := strings.Join(texts, " ")

	return types.HookAnalysis{
		Type:     c.rules.Label(content),
		Content:  content,
		Duration: hook[len(hook)-1].End,
		Segments: hook,
	}
}

// Classify runs the default rule table.
func Classify(segs []types.Segment) types.HookAnalysis {
	return New(nil).Classify(segs)
}

var displayLabels = map[types.HookType]string{
	types.HookQuestion: "疑问式钩子",
	types.HookReversal: "反转式钩子",
	types.HookValue:    "干货式钩子",
	types.HookShock:    "震惊式钩子",
	types.HookUnknown:  "未知类型",
	types.HookNone:     "无",
}

// DisplayLabel is the reader-facing name of a hook type.
func DisplayLabel(t types.HookType) string {
	if l, ok := displayLabels[t]; ok {
		return l
	}
	return string(t)
}
