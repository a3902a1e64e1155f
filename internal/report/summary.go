package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/forPelevin/bvs/internal/domain/format"
	"github.com/forPelevin/bvs/internal/types"
)

const summaryContentRunes = 100

type styles struct {
	title  lipgloss.Style
	key    lipgloss.Style
	value  lipgloss.Style
	header lipgloss.Style
	panel  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		title:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		key:    re.NewStyle().Foreground(lipgloss.Color("51")).Padding(0, 1),
		value:  re.NewStyle().Padding(0, 1),
		header: re.NewStyle().Bold(true).Padding(0, 1),
		panel:  re.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 1),
		ok:     re.NewStyle().Foreground(lipgloss.Color("42")),
		err:    re.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		warn:   re.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Summary renders the metadata table and the hook panel.
func (r *Renderer) Summary(meta types.VideoMetadata, tr types.Transcript) string {
	rows := [][]string{
		{"标题", orNA(meta.Title)},
		{"作者", orNA(meta.Uploader)},
		{"时长", format.Duration(meta.Duration)},
		{"观看数", format.Count(meta.ViewCount)},
		{"点赞数", format.Count(meta.LikeCount)},
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.st.value).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.st.header
			case col == 0:
				return r.st.key
			default:
				return r.st.value
			}
		}).
		Headers("项目", "内容").
		Rows(rows...)

	h := r.hooks.Classify(tr.Segments)
	body := strings.Join([]string{
		r.st.title.Render("🎯 开头钩子分析"),
		fmt.Sprintf("类型: %s", h.Type),
		fmt.Sprintf("内容: %s", truncateRunes(h.Content, summaryContentRunes)),
		fmt.Sprintf("时长: %.1f秒", h.Duration),
	}, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		r.st.title.Render("📹 视频基本信息"),
		t.String(),
		r.st.panel.Render(body),
	)
}

// DisplaySummary prints Summary to the console target.
func (r *Renderer) DisplaySummary(meta types.VideoMetadata, tr types.Transcript) {
	fmt.Fprintln(r.out, r.Summary(meta, tr))
}

// Notice prints a status line; level is "ok", "warn" or "error".
func (r *Renderer) Notice(level, msg string) {
	s := r.st.value
	switch level {
	case "ok":
		s = r.st.ok
	case "warn":
		s = r.st.warn
	case "error":
		s = r.st.err
	}
	r.println(s, msg)
}

// Banner prints msg inside a bordered box with a bold title line.
func (r *Renderer) Banner(title, msg string) {
	fmt.Fprintln(r.out, r.st.panel.Render(r.st.title.Render(title)+"\n"+msg))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.UnknownSentinel
	}
	return s
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "..."
}
