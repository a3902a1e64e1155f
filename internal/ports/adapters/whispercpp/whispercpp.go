package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/bvs/internal/types"
)

type Adapter struct {
	bin      string
	model    string
	language string
}

// New returns an adapter running the whisper.cpp CLI at binPath. An empty
// language lets whisper.cpp auto-detect.
func New(binPath, modelPath, language string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath, language: language}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	cmd := exec.CommandContext(ctx, a.bin, a.args(wavPath, outPrefix)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}
	tr, err := parseOutput(jb)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp output: %w", err)
	}
	if tr.Language == "" {
		tr.Language = a.language
	}
	return tr, nil
}

func (a *Adapter) args(wavPath, outPrefix string) []string {
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-ojf",
		"-of", outPrefix,
	}
	if a.language != "" {
		args = append(args, "-l", a.language)
	}
	return args
}

type offsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

type outputJSON struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets offsets `json:"offsets"`
		Text    string  `json:"text"`
		Tokens  []struct {
			Offsets offsets `json:"offsets"`
			Text    string  `json:"text"`
		} `json:"tokens"`
	} `json:"transcription"`
}

// parseOutput converts whisper.cpp's full JSON output (-ojf). Offsets are in
// milliseconds; control tokens such as [_BEG_] are dropped from words.
func parseOutput(b []byte) (types.Transcript, error) {
	var out outputJSON
	if err := json.Unmarshal(b, &out); err != nil {
		return types.Transcript{}, err
	}

	tr := types.Transcript{Language: out.Result.Language}
	var full strings.Builder
	for _, s := range out.Transcription {
		full.WriteString(s.Text)
		seg := types.Segment{
			Start: seconds(s.Offsets.From),
			End:   seconds(s.Offsets.To),
			Text:  strings.TrimSpace(s.Text),
		}
		for _, tok := range s.Tokens {
			w := strings.TrimSpace(tok.Text)
			if w == "" || strings.HasPrefix(w, "[_") {
				continue
			}
			seg.Words = append(seg.Words, types.Word{
				Start: seconds(tok.Offsets.From),
				End:   seconds(tok.Offsets.To),
				Word:  w,
			})
		}
		tr.Segments = append(tr.Segments, seg)
	}
	tr.Text = strings.TrimSpace(full.String())
	tr.Duration = tr.TotalDuration()
	return tr, nil
}

func seconds(ms int64) float64 { return float64(ms) / 1000 }
