package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/forPelevin/bvs/internal/config"
	"github.com/forPelevin/bvs/internal/logging"
	"github.com/forPelevin/bvs/internal/pipeline"
	"github.com/spf13/cobra"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	urls, err := collectURLs(cmd, args)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Hour)
	defer cancel()

	pcfg := pipeline.Config{
		URLs:           urls,
		OutDir:         cfg.OutputDir,
		DownloadVideo:  cfg.DownloadVideo,
		GenerateReport: cfg.GenerateReport,
		Language:       cfg.Language,
		CacheDir:       cfg.CacheDir,

		YTDLPPath:   cfg.Tools.YTDLP,
		FFmpegPath:  cfg.Tools.FFmpeg,
		FFprobePath: cfg.Tools.FFprobe,

		WhisperBin:   cfg.Whisper.Bin,
		WhisperModel: cfg.Whisper.Model,

		RulesFile: cfg.RulesFile,

		Out:    cmd.OutOrStdout(),
		Logger: log,
		Logf:   logging.Logf(logging.WithComponent(log, "pipeline")),
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	_, err = pipeline.Run(ctx, pcfg)
	return err
}

// loadConfig reads the config file and environment, then lets explicitly
// set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	str := func(name string, dst *string) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	str("output", &cfg.OutputDir)
	str("lang", &cfg.Language)
	str("rules", &cfg.RulesFile)
	str("log-level", &cfg.LogLevel)

	if fs.Lookup("no-download") != nil {
		if v, _ := fs.GetBool("no-download"); v {
			cfg.DownloadVideo = false
		}
	}
	if fs.Lookup("no-report") != nil {
		if v, _ := fs.GetBool("no-report"); v {
			cfg.GenerateReport = false
		}
	}
}

// collectURLs reads -f, or -u plus any trailing arguments so that
// "-u URL1 URL2" works. Values are taken verbatim; commas stay in the URL.
func collectURLs(cmd *cobra.Command, args []string) ([]string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("unexpected arguments with --file: %s", strings.Join(args, " "))
		}
		urls, err := pipeline.ReadURLFile(file)
		if err != nil {
			return nil, fmt.Errorf("read url file: %w", err)
		}
		if len(urls) == 0 {
			return nil, fmt.Errorf("no URLs found in %s", file)
		}
		return urls, nil
	}
	urls, _ := cmd.Flags().GetStringArray("urls")
	urls = append(urls, args...)
	if len(urls) == 0 {
		return nil, errors.New("no video URLs given")
	}
	return urls, nil
}
