package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/forPelevin/bvs/internal/domain/hook"
	"github.com/forPelevin/bvs/internal/ports"
	"github.com/forPelevin/bvs/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/bvs/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/bvs/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/bvs/internal/report"
	"github.com/forPelevin/bvs/internal/types"
	"github.com/forPelevin/bvs/internal/usecase"
	"github.com/sirupsen/logrus"
)

type Config struct {
	URLs           []string
	OutDir         string
	DownloadVideo  bool
	GenerateReport bool
	Language       string

	// CacheDir holds intermediate audio and whisper output.
	// If empty, defaults to "<OutDir>/.cache".
	CacheDir string

	YTDLPPath   string
	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	// RulesFile optionally replaces the built-in hook rule table.
	RulesFile string

	Out    io.Writer
	Logger logrus.FieldLogger
	Logf   func(format string, args ...any)
}

func (c Config) Validate() error {
	if len(c.URLs) == 0 {
		return errors.New("no video URLs given")
	}
	for i, u := range c.URLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("url #%d is empty", i+1)
		}
	}
	if c.WhisperBin == "" {
		return errors.New("whisper binary path is required")
	}
	if c.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("stat rules file: %w", err)
		}
	}
	return nil
}

// Console is where progress banners and status lines go.
type Console interface {
	Banner(title, msg string)
	Notice(level, msg string)
}

// Run wires the yt-dlp, ffmpeg and whisper.cpp adapters and analyzes every URL.
func Run(ctx context.Context, cfg Config) ([]types.Result, error) {
	var rules hook.Rules
	if cfg.RulesFile != "" {
		rs, err := hook.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = rs
	}
	rep := report.New(cfg.Out, report.WithLogger(cfg.Logger), report.WithRules(rules))

	deps := usecase.Deps{
		Extractor: ytdlp.New(cfg.YTDLPPath),
		Video:     ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		ASR:       whispercpp.New(cfg.WhisperBin, cfg.WhisperModel, cfg.Language),
		Reporter:  rep,
	}
	return RunWith(ctx, cfg, deps, rep)
}

// RunWith analyzes cfg.URLs one after another. A failed video does not stop
// the batch; an error is returned only when no video succeeded or ctx ended.
func RunWith(ctx context.Context, cfg Config, deps usecase.Deps, con Console) ([]types.Result, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "output"
	}
	dirs := usecase.NewDirs(outDir, cfg.CacheDir)
	logf("preparing workspace")
	if err := dirs.Create(); err != nil {
		return nil, err
	}
	logf("output dir: %s", dirs.Root)

	uc := usecase.New(deps)
	n := len(cfg.URLs)
	if n > 1 {
		con.Banner("批量分析", fmt.Sprintf("📋 开始批量分析 %d 个视频", n))
	}

	results := make([]types.Result, 0, n)
	var errs []error
	for i, url := range cfg.URLs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if n > 1 {
			con.Notice("", fmt.Sprintf("处理第 %d/%d 个视频", i+1, n))
		}
		con.Banner("BVS Analyzer", "🎬 开始分析视频: "+url)

		res, err := uc.Run(ctx, usecase.Input{
			URL:            url,
			DownloadVideo:  cfg.DownloadVideo,
			GenerateReport: cfg.GenerateReport,
			Dirs:           dirs,
			Logf:           logf,
		})
		if err != nil {
			res.Success = false
			res.Err = err
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			logf("analysis failed for %s: %v", url, err)
			con.Notice("error", "❌ 分析失败: "+err.Error())
			if n > 1 {
				con.Notice("warn", fmt.Sprintf("⚠️ 第 %d 个视频分析失败，继续处理下一个", i+1))
			}
		} else {
			con.Banner("分析完成", "🎉 视频分析完成！")
		}
		results = append(results, res)
	}

	ok := successCount(results)
	if n > 1 {
		con.Banner("批量分析完成", fmt.Sprintf("✅ 成功: %d/%d\n❌ 失败: %d/%d", ok, n, n-ok, n))
	}
	logf("analyzed %d/%d videos", ok, n)
	if ok == 0 {
		return results, fmt.Errorf("no video analyzed successfully: %w", errors.Join(errs...))
	}
	return results, nil
}

func successCount(rs []types.Result) int {
	n := 0
	for _, r := range rs {
		if r.Success {
			n++
		}
	}
	return n
}

// ReadURLFile returns the non-blank lines of path, trimmed.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return urls, nil
}

// ensure adapters implement ports
var _ ports.Extractor = (*ytdlp.Adapter)(nil)
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.Reporter = (*report.Renderer)(nil)
var _ Console = (*report.Renderer)(nil)
