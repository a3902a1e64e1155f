// Package config loads analyzer settings from bvs.yaml, .env and BVS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "bvs.yaml"

const (
	EnvWhisperBin   = "BVS_WHISPER_BIN"
	EnvWhisperModel = "BVS_WHISPER_MODEL"
	EnvYTDLP        = "BVS_YTDLP"
	EnvFFmpeg       = "BVS_FFMPEG"
	EnvLanguage     = "BVS_LANGUAGE"
	EnvLogLevel     = "BVS_LOG_LEVEL"
)

type Config struct {
	OutputDir      string `yaml:"output_dir"`
	CacheDir       string `yaml:"cache_dir"`
	DownloadVideo  bool   `yaml:"download_video"`
	GenerateReport bool   `yaml:"generate_report"`
	Language       string `yaml:"language"`
	LogLevel       string `yaml:"log_level"`
	RulesFile      string `yaml:"rules_file"`

	Tools struct {
		YTDLP   string `yaml:"yt_dlp"`
		FFmpeg  string `yaml:"ffmpeg"`
		FFprobe string `yaml:"ffprobe"`
	} `yaml:"tools"`

	Whisper struct {
		Bin   string `yaml:"bin"`
		Model string `yaml:"model"`
	} `yaml:"whisper"`
}

func Default() *Config {
	c := &Config{
		OutputDir:      "output",
		DownloadVideo:  true,
		GenerateReport: true,
		Language:       "zh",
		LogLevel:       "info",
	}
	c.Tools.YTDLP = "yt-dlp"
	c.Tools.FFmpeg = "ffmpeg"
	c.Tools.FFprobe = "ffprobe"
	c.Whisper.Bin = ".cache/bin/whisper.cpp"
	c.Whisper.Model = ".cache/models/ggml-base.bin"
	return c
}

// Load reads path over the defaults, then applies BVS_* overrides.
// A missing file is an error only when path was given explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv(os.Getenv)
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Whisper.Bin, EnvWhisperBin)
	set(&c.Whisper.Model, EnvWhisperModel)
	set(&c.Tools.YTDLP, EnvYTDLP)
	set(&c.Tools.FFmpeg, EnvFFmpeg)
	set(&c.Language, EnvLanguage)
	set(&c.LogLevel, EnvLogLevel)
}

func (c *Config) normalize() {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = "auto"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}
