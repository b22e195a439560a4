package config

import (
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	AnalysisBaseURL    string
	AnalysisTimeoutSec int
	AnalysisRetryMax   int
	AnalysisDepth      int

	RedisURL    string
	CacheTTLSec int

	NarrativeTemplateDir string
	BoardOrientation     string
	AllowUnanalyzedNav   bool
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AnalysisTimeoutSec: 30,
		AnalysisRetryMax:   3,
		AnalysisDepth:      18,
		CacheTTLSec:        3600,
		BoardOrientation:   "white",
	}

	cfg.AnalysisBaseURL = strings.TrimSpace(os.Getenv("ANALYSIS_BASE_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.NarrativeTemplateDir = strings.TrimSpace(os.Getenv("NARRATIVE_TEMPLATE_DIR"))

	if v := strings.TrimSpace(os.Getenv("ANALYSIS_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalysisTimeoutSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ANALYSIS_RETRY_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalysisRetryMax = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ANALYSIS_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalysisDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSec = n
		}
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("BOARD_ORIENTATION"))); v == "white" || v == "black" {
		cfg.BoardOrientation = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOW_UNANALYZED_NAV")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AllowUnanalyzedNav = b
		}
	}

	return cfg, nil
}
