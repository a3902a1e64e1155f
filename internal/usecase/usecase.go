package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/forPelevin/bvs/internal/domain/subtitles"
	"github.com/forPelevin/bvs/internal/ports"
	"github.com/forPelevin/bvs/internal/types"
)

type Deps struct {
	Extractor ports.Extractor
	Video     ports.VideoTool
	ASR       ports.ASR
	Reporter  ports.Reporter
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// Dirs is the per-run workspace layout.
type Dirs struct {
	Root        string
	Videos      string
	Audio       string
	Transcripts string
	Reports     string
	Cache       string
}

// NewDirs lays out the standard subdirectories under root.
func NewDirs(root, cache string) Dirs {
	if cache == "" {
		cache = filepath.Join(root, ".cache")
	}
	return Dirs{
		Root:        root,
		Videos:      filepath.Join(root, "videos"),
		Audio:       filepath.Join(root, "audio"),
		Transcripts: filepath.Join(root, "transcripts"),
		Reports:     filepath.Join(root, "reports"),
		Cache:       cache,
	}
}

// Create makes every directory in d.
func (d Dirs) Create() error {
	for _, p := range []string{d.Root, d.Videos, d.Audio, d.Transcripts, d.Reports, d.Cache} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

type Input struct {
	URL            string
	DownloadVideo  bool
	GenerateReport bool
	Dirs           Dirs
	Logf           func(format string, args ...any)
}

// Run analyzes one video: metadata, optional video download, audio
// transcription, transcript artifacts and, optionally, the reports.
func (u Usecase) Run(ctx context.Context, in Input) (types.Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	res := types.Result{URL: in.URL, OutputDir: in.Dirs.Root}

	meta, err := u.d.Extractor.Info(ctx, in.URL)
	if err != nil {
		return res, fmt.Errorf("video info: %w", err)
	}
	if meta.URL == "" {
		meta.URL = in.URL
	}
	res.Metadata = meta
	id := FileID(meta)
	logf("video %s: %q by %q", id, meta.Title, meta.Uploader)

	if in.DownloadVideo {
		p, err := u.d.Extractor.DownloadVideo(ctx, in.URL, in.Dirs.Videos)
		if err != nil {
			// The transcript only needs the audio stream.
			logf("video download failed, continuing with audio only: %v", err)
		} else {
			res.VideoPath = p
			logf("video saved: %s", p)
		}
	}

	rawAudio, err := u.d.Extractor.DownloadAudio(ctx, in.URL, in.Dirs.Audio)
	if err != nil {
		return res, fmt.Errorf("download audio: %w", err)
	}
	if meta.Duration <= 0 {
		if d, err := u.d.Video.ProbeDuration(ctx, rawAudio); err == nil {
			res.Metadata.Duration = d
		} else {
			logf("probe duration: %v", err)
		}
	}

	cacheDir := filepath.Join(in.Dirs.Cache, id)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return res, err
	}
	wav := filepath.Join(cacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, rawAudio, wav); err != nil {
		return res, err
	}

	logf("transcribing %s", filepath.Base(rawAudio))
	tr, err := u.d.ASR.Transcribe(ctx, wav, cacheDir)
	if err != nil {
		return res, fmt.Errorf("transcribe: %w", err)
	}
	tr.AudioPath = rawAudio
	logf("transcribed %d segments (%s)", len(tr.Segments), tr.Language)

	transcriptPath := filepath.Join(in.Dirs.Transcripts, id+"_transcript.json")
	if err := writeJSON(transcriptPath, tr); err != nil {
		return res, fmt.Errorf("save transcript: %w", err)
	}
	srtPath := filepath.Join(in.Dirs.Transcripts, id+"_subtitles.srt")
	if err := writeFile(srtPath, []byte(subtitles.RenderSRT(tr.Segments))); err != nil {
		return res, fmt.Errorf("save subtitles: %w", err)
	}
	tr.TranscriptPath = transcriptPath
	res.Transcript = tr

	if !in.GenerateReport {
		res.Success = true
		return res, nil
	}

	md, err := u.d.Reporter.WriteMarkdown(res.Metadata, tr, filepath.Join(in.Dirs.Reports, id+"_report.md"))
	if err != nil {
		return res, err
	}
	js, err := u.d.Reporter.WriteJSON(res.Metadata, tr, filepath.Join(in.Dirs.Reports, id+"_data.json"))
	if err != nil {
		return res, err
	}
	res.ReportPaths = types.ReportPaths{Markdown: md, JSON: js}
	u.d.Reporter.DisplaySummary(res.Metadata, tr)

	res.Success = true
	return res, nil
}

// FileID names a video's artifacts. Ids are case-sensitive, so only
// characters unsafe in file names are replaced. Without a usable id the name
// is derived from the URL so id-less videos in one batch stay apart.
func FileID(m types.VideoMetadata) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.TrimSpace(m.ID) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	id := strings.Trim(b.String(), "-")
	if id != "" {
		return id
	}
	if u := strings.TrimSpace(m.URL); u != "" {
		sum := sha256.Sum256([]byte(u))
		return "unknown-" + hex.EncodeToString(sum[:4])
	}
	return "unknown"
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
