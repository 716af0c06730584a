package config

import "time"

type Config struct {
	// Listen address for the game server (websocket + REST API)
	Addr string `envconfig:"MOTUS_ADDR" default:":3000"`

	// pprof listener, disabled when empty
	ProfPort string `envconfig:"MOTUS_PROF_PORT"`

	// Logging in development mode
	Debug bool `envconfig:"MOTUS_DEBUG" default:"false"`

	// Dictionary file, one word per line
	WordsFile string `envconfig:"MOTUS_WORDS_FILE" default:"words.txt"`

	// bbolt file for aggregated player stats
	DbFilePath string `envconfig:"MOTUS_DB_FILE_PATH" default:"motus.db"`

	// Number of items in the stat cache
	CacheSize int `envconfig:"MOTUS_CACHE_SIZE" default:"1024"`

	// Wall-clock lifetime of a multiplayer session since creation
	SessionTTL time.Duration `envconfig:"MOTUS_SESSION_TTL" default:"1h"`

	// How often expired sessions are swept
	SweepInterval time.Duration `envconfig:"MOTUS_SWEEP_INTERVAL" default:"5m"`

	// Lifetime of an ephemeral solo session
	SoloTTL time.Duration `envconfig:"MOTUS_SOLO_TTL" default:"1h"`

	// How often the word of the day is recomputed
	DailyRecompute time.Duration `envconfig:"MOTUS_DAILY_RECOMPUTE" default:"1h"`

	// Per-client rate limit on the REST API
	RateLimitRPS   int           `envconfig:"MOTUS_RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int           `envconfig:"MOTUS_RATE_LIMIT_BURST" default:"10"`
	RateLimiterTTL time.Duration `envconfig:"MOTUS_RATE_LIMITER_TTL" default:"1h"`
}
