// Package report turns a transcript and its video metadata into the Markdown
// report, the JSON data file and the console summary.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/forPelevin/bvs/internal/domain/format"
	"github.com/forPelevin/bvs/internal/domain/hook"
	"github.com/forPelevin/bvs/internal/domain/structure"
	"github.com/forPelevin/bvs/internal/logging"
	"github.com/forPelevin/bvs/internal/types"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var markdownTmpl = template.Must(
	template.New("report.md.tmpl").Funcs(funcMap()).ParseFS(templatesFS, "templates/report.md.tmpl"),
)

const (
	footerTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout   = "20060102_150405"
)

// Analysis is the derived part of a report.
type Analysis struct {
	Hook      types.HookAnalysis
	Structure types.StructureMetrics
}

type Renderer struct {
	out   io.Writer
	log   logrus.FieldLogger
	now   func() time.Time
	hooks *hook.Classifier
	st    styles
}

type Option func(*Renderer)

func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithClock replaces time.Now for generation timestamps and default file names.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithRules(rs hook.Rules) Option {
	return func(r *Renderer) { r.hooks = hook.New(rs) }
}

// New returns a renderer printing status lines and summaries to out.
func New(out io.Writer, opts ...Option) *Renderer {
	if out == nil {
		out = io.Discard
	}
	r := &Renderer{
		out:   out,
		now:   time.Now,
		hooks: hook.New(nil),
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = logging.Discard()
	}
	r.st = newStyles(lipgloss.NewRenderer(out))
	return r
}

func (r *Renderer) Analyze(tr types.Transcript) Analysis {
	return Analysis{
		Hook:      r.hooks.Classify(tr.Segments),
		Structure: structure.Analyze(tr.Segments),
	}
}

type markdownData struct {
	Meta       types.VideoMetadata
	Transcript types.Transcript
	Analysis
	HookFound   bool
	GeneratedAt string
}

// RenderMarkdown renders the report body. Output depends only on the inputs
// and generatedAt.
func (r *Renderer) RenderMarkdown(meta types.VideoMetadata, tr types.Transcript, generatedAt time.Time) ([]byte, error) {
	a := r.Analyze(tr)
	var buf bytes.Buffer
	err := markdownTmpl.Execute(&buf, markdownData{
		Meta:        meta,
		Transcript:  tr,
		Analysis:    a,
		HookFound:   a.Hook.Type != types.HookNone,
		GeneratedAt: generatedAt.Format(footerTimeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("execute markdown template: %w", err)
	}
	return buf.Bytes(), nil
}

type jsonReport struct {
	BasicInfo     types.VideoMetadata `json:"basic_info"`
	Transcription types.Transcript    `json:"transcription"`
	Analysis      jsonAnalysis        `json:"analysis"`
}

type jsonAnalysis struct {
	HookAnalysis      types.HookAnalysis     `json:"hook_analysis"`
	StructureAnalysis types.StructureMetrics `json:"structure_analysis"`
	GeneratedAt       string                 `json:"generated_at"`
}

// RenderJSON renders the data file: two-space indentation, fixed key order,
// non-ASCII text kept literal.
func (r *Renderer) RenderJSON(meta types.VideoMetadata, tr types.Transcript, generatedAt time.Time) ([]byte, error) {
	a := r.Analyze(tr)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(jsonReport{
		BasicInfo:     meta,
		Transcription: tr,
		Analysis: jsonAnalysis{
			HookAnalysis:      a.Hook,
			StructureAnalysis: a.Structure,
			GeneratedAt:       generatedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode json report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMarkdown writes the Markdown report to path, or to a timestamped file
// in the working directory when path is empty. It returns the path written.
func (r *Renderer) WriteMarkdown(meta types.VideoMetadata, tr types.Transcript, path string) (string, error) {
	now := r.now()
	if path == "" {
		path = "video_analysis_report_" + now.Format(fileTimeLayout) + ".md"
	}
	b, err := r.RenderMarkdown(meta, tr, now)
	if err == nil {
		err = writeFile(path, b)
	}
	if err != nil {
		return "", r.fail("报告生成失败", path, err)
	}
	r.println(r.st.ok, fmt.Sprintf("📊 Markdown报告已生成: %s", filepath.Base(path)))
	r.log.WithField("path", path).Debug("markdown report written")
	return path, nil
}

// WriteJSON is WriteMarkdown for the JSON data file.
func (r *Renderer) WriteJSON(meta types.VideoMetadata, tr types.Transcript, path string) (string, error) {
	now := r.now()
	if path == "" {
		path = "video_analysis_data_" + now.Format(fileTimeLayout) + ".json"
	}
	b, err := r.RenderJSON(meta, tr, now)
	if err == nil {
		err = writeFile(path, b)
	}
	if err != nil {
		return "", r.fail("JSON报告生成失败", path, err)
	}
	r.println(r.st.ok, fmt.Sprintf("📊 JSON报告已生成: %s", filepath.Base(path)))
	r.log.WithField("path", path).Debug("json report written")
	return path, nil
}

func (r *Renderer) fail(what, path string, err error) error {
	r.println(r.st.err, fmt.Sprintf("❌ %s: %v", what, err))
	r.log.WithError(err).WithField("path", path).Error(what)
	return fmt.Errorf("write report %s: %w", path, err)
}

func (r *Renderer) println(s lipgloss.Style, msg string) {
	fmt.Fprintln(r.out, s.Render(msg))
}

func writeFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"duration":  format.Duration,
		"timestamp": format.Timestamp,
		"count":     format.Count,
		"hookLabel": hook.DisplayLabel,
		"rhythm":    structure.DisplayRhythm,
		"f1":        func(f float64) string { return fmt.Sprintf("%.1f", f) },
		"inc":       func(i int) int { return i + 1 },
		"cell":      markdownCell,
	}
}

// markdownCell keeps a value inside a single table cell.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
