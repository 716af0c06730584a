package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/motus-games/motus/internal/cache/cachelru"
	"github.com/motus-games/motus/internal/config"
	"github.com/motus-games/motus/internal/coordinator"
	"github.com/motus-games/motus/internal/daily"
	"github.com/motus-games/motus/internal/database"
	statDb "github.com/motus-games/motus/internal/database/stat/database"
	"github.com/motus-games/motus/internal/dictionary"
	"github.com/motus-games/motus/internal/logging"
	"github.com/motus-games/motus/internal/server"
	"github.com/motus-games/motus/internal/shutdown"
	"github.com/motus-games/motus/internal/solo"
	"github.com/motus-games/motus/internal/transport/ws"
)

func main() {
	// A missing .env file is fine, the environment takes over.
	_ = godotenv.Load()

	ctx, done := shutdown.New()
	defer done()

	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(cfg.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, cfg); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, cfg config.Config) error {
	logger := logging.FromContext(ctx)

	dict, err := dictionary.Load(ctx, cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	db, err := database.New(ctx, &database.Config{FilePath: cfg.DbFilePath})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close(ctx)

	statCache, err := cachelru.NewLRU(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("create stat cache: %w", err)
	}
	stats := statDb.New(db, statCache)

	rotator := daily.NewRotator(dict, cfg.DailyRecompute)
	soloReg := solo.NewRegistry(cfg.SoloTTL, cfg.SweepInterval)
	coord := coordinator.New(coordinator.Config{
		SessionTTL:    cfg.SessionTTL,
		SweepInterval: cfg.SweepInterval,
	}, dict, stats)

	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub, coord)

	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		Debug:          cfg.Debug,
		RateLimitRPS:   float64(cfg.RateLimitRPS),
		RateLimitBurst: cfg.RateLimitBurst,
		RateLimiterTTL: cfg.RateLimiterTTL,
	}, dict, rotator, soloReg, stats, wsHandler)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rotator.Run(ctx)
		return nil
	})
	group.Go(func() error {
		coord.Run(ctx)
		return nil
	})
	group.Go(func() error {
		soloReg.Run(ctx)
		return nil
	})
	group.Go(func() error {
		return srv.ListenAndServe(ctx)
	})

	if cfg.ProfPort != "" {
		go func() {
			if err := http.ListenAndServe(":"+cfg.ProfPort, nil); err != nil {
				logger.Errorf("pprof server: %v", err)
			}
		}()
	}

	return group.Wait()
}
