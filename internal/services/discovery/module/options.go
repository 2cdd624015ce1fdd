package module

import (
	"time"

	"keywordscout/internal/platform/config"
)

// Options holds configuration settings for the discovery module
type Options struct {
	MaxVariants   int
	MinKeywordLen int
	MaxSuggest    int
	BatchSize     int
	BatchDelay    time.Duration
	CacheEnabled  bool
	MinGrade      string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	df := cfg.Prefix("CORE_DISCOVERY_")
	return Options{
		MaxVariants:   df.MayInt("MAX_VARIANTS", 30),
		MinKeywordLen: df.MayInt("MIN_KEYWORD_LEN", 3),
		MaxSuggest:    df.MayInt("MAX_SUGGEST", 10),
		BatchSize:     df.MayInt("BATCH_SIZE", 5),
		BatchDelay:    time.Duration(df.MayInt("BATCH_DELAY_MS", 1000)) * time.Millisecond,
		CacheEnabled:  df.MayBool("CACHE_ENABLED", true),
		MinGrade:      df.MayString("MIN_GRADE", "C"),
	}
}
