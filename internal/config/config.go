package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port   string
	APIKey string

	// Inkscape invocation
	InkscapeBin     string
	InkscapeTimeout time.Duration

	// Inlining
	MaxDepth int

	// Serve mode
	WorkerCount    int
	MaxQueueSize   int
	MaxUploadBytes int64
	JobTTL         time.Duration
	WorkDir        string

	// Output handling
	TextToPath bool
	KeepTemp   bool
	Verify     bool
}

func Load() Config {
	cfg := Config{
		Port:   envOr("PORT", "8095"),
		APIKey: os.Getenv("SVGPRESS_API_KEY"),

		InkscapeBin:     envOr("SVGPRESS_INKSCAPE_BIN", "inkscape"),
		InkscapeTimeout: envDuration("SVGPRESS_TIMEOUT", 2*time.Minute),

		MaxDepth: envInt("SVGPRESS_MAX_DEPTH", 10),

		WorkerCount:    envInt("WORKER_COUNT", 2),
		MaxQueueSize:   envInt("MAX_QUEUE_SIZE", 50),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 26214400), // 25MB
		JobTTL:         envDuration("JOB_TTL", 1*time.Hour),
		WorkDir:        envOr("SVGPRESS_WORK_DIR", os.TempDir()),

		TextToPath: envBool("SVGPRESS_TEXT_TO_PATH", false),
		KeepTemp:   envBool("SVGPRESS_KEEP_TEMP", false),
		Verify:     envBool("SVGPRESS_VERIFY", true),
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 26214400
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.InkscapeTimeout <= 0 {
		cfg.InkscapeTimeout = 2 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.InkscapeBin == "" {
		return fmt.Errorf("SVGPRESS_INKSCAPE_BIN must not be empty")
	}
	if info, err := os.Stat(c.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("SVGPRESS_WORK_DIR %q is not a directory", c.WorkDir)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
