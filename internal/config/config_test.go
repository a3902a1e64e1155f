package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{EnvWhisperBin, EnvWhisperModel, EnvYTDLP, EnvFFmpeg, EnvLanguage, EnvLogLevel} {
		t.Setenv(k, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if cfg.OutputDir != want.OutputDir || cfg.Language != "zh" || !cfg.DownloadVideo || !cfg.GenerateReport {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Tools.YTDLP != "yt-dlp" || cfg.Whisper.Model != want.Whisper.Model {
		t.Fatalf("unexpected tool defaults: %+v", cfg)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bvs.yaml")
	yml := `output_dir: runs
download_video: false
language: " EN "
tools:
  yt_dlp: /opt/yt-dlp
whisper:
  bin: /opt/whisper
  model: /opt/model.bin
`
	if err := os.WriteFile(p, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvWhisperModel, "/env/model.bin")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvYTDLP, "")
	t.Setenv(EnvLanguage, "")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "runs" || cfg.DownloadVideo {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.GenerateReport {
		t.Fatalf("absent keys should keep defaults")
	}
	if cfg.Language != "en" {
		t.Fatalf("language = %q", cfg.Language)
	}
	if cfg.Tools.YTDLP != "/opt/yt-dlp" || cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("tools = %+v", cfg.Tools)
	}
	if cfg.Whisper.Bin != "/opt/whisper" || cfg.Whisper.Model != "/env/model.bin" {
		t.Fatalf("whisper = %+v", cfg.Whisper)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bvs.yaml")
	if err := os.WriteFile(p, []byte("output_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvFFmpeg: " /usr/local/bin/ffmpeg ", EnvWhisperBin: "  "}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })
	if cfg.Tools.FFmpeg != "/usr/local/bin/ffmpeg" {
		t.Fatalf("ffmpeg = %q", cfg.Tools.FFmpeg)
	}
	if cfg.Whisper.Bin != Default().Whisper.Bin {
		t.Fatalf("blank env value should not override: %q", cfg.Whisper.Bin)
	}
}
