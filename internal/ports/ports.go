package ports

import (
	"context"

	"github.com/forPelevin/bvs/internal/types"
)

type Extractor interface {
	Info(ctx context.Context, url string) (types.VideoMetadata, error)
	DownloadVideo(ctx context.Context, url, outDir string) (string, error)
	DownloadAudio(ctx context.Context, url, outDir string) (string, error)
}

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	ProbeDuration(ctx context.Context, in string) (float64, error)
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}

type Reporter interface {
	WriteMarkdown(meta types.VideoMetadata, tr types.Transcript, path string) (string, error)
	WriteJSON(meta types.VideoMetadata, tr types.Transcript, path string) (string, error)
	DisplaySummary(meta types.VideoMetadata, tr types.Transcript)
}
