package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/forPelevin/bvs/internal/types"
)

// VideoFormat caps downloads at 720p; analysis only needs the audio track
// and a watchable copy.
const VideoFormat = "best[height<=720]"

// keptExtra lists the yt-dlp fields carried into reports beyond the modelled
// ones. The full -J document also holds format tables we do not want.
var keptExtra = map[string]bool{
	"webpage_url":   true,
	"channel":       true,
	"channel_id":    true,
	"comment_count": true,
	"repost_count":  true,
	"tags":          true,
	"categories":    true,
	"extractor":     true,
	"timestamp":     true,
}

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

func (a *Adapter) Info(ctx context.Context, url string) (types.VideoMetadata, error) {
	if strings.TrimSpace(url) == "" {
		return types.VideoMetadata{}, fmt.Errorf("video URL is required")
	}
	out, err := a.run(ctx, infoArgs(url))
	if err != nil {
		return types.VideoMetadata{}, err
	}
	return parseInfo(out, url)
}

// DownloadVideo saves the video plus its info JSON and thumbnail in outDir.
func (a *Adapter) DownloadVideo(ctx context.Context, url, outDir string) (string, error) {
	out, err := a.run(ctx, videoArgs(url, outDir))
	if err != nil {
		return "", err
	}
	return lastLine(out)
}

// DownloadAudio saves the best audio stream converted to wav in outDir.
func (a *Adapter) DownloadAudio(ctx context.Context, url, outDir string) (string, error) {
	out, err := a.run(ctx, audioArgs(url, outDir))
	if err != nil {
		return "", err
	}
	return lastLine(out)
}

func (a *Adapter) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("yt-dlp returned empty output")
	}
	return stdout.Bytes(), nil
}

func infoArgs(url string) []string {
	return []string{"--no-playlist", "--no-warnings", "-J", url}
}

func videoArgs(url, outDir string) []string {
	return []string{
		"--no-playlist",
		"--restrict-filenames",
		"-f", VideoFormat,
		"--write-info-json",
		"--write-thumbnail",
		"-P", outDir,
		"-o", "%(id)s.%(ext)s",
		"--print", "after_move:filepath",
		url,
	}
}

func audioArgs(url, outDir string) []string {
	return []string{
		"--no-playlist",
		"--restrict-filenames",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "wav",
		"-P", outDir,
		"-o", "%(id)s_audio.%(ext)s",
		"--print", "after_move:filepath",
		url,
	}
}

func parseInfo(b []byte, url string) (types.VideoMetadata, error) {
	var m types.VideoMetadata
	if err := json.Unmarshal(b, &m); err != nil {
		return types.VideoMetadata{}, fmt.Errorf("parse yt-dlp info: %w", err)
	}
	for k := range m.Extra {
		if !keptExtra[k] {
			delete(m.Extra, k)
		}
	}
	if len(m.Extra) == 0 {
		m.Extra = nil
	}
	// The -J "url" field is the selected stream, not the page.
	m.URL = url
	return m, nil
}

func lastLine(out []byte) (string, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	p := strings.TrimSpace(lines[len(lines)-1])
	if p == "" {
		return "", fmt.Errorf("yt-dlp did not report an output file")
	}
	return p, nil
}
