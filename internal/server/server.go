package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/motus-games/motus/internal/daily"
	statDb "github.com/motus-games/motus/internal/database/stat/database"
	"github.com/motus-games/motus/internal/dictionary"
	"github.com/motus-games/motus/internal/logging"
	"github.com/motus-games/motus/internal/solo"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr           string
	Debug          bool
	RateLimitRPS   float64
	RateLimitBurst int
	RateLimiterTTL time.Duration
}

// Server exposes the REST surface and the websocket endpoint.
type Server struct {
	config  Config
	dict    *dictionary.Dictionary
	rotator *daily.Rotator
	solo    *solo.Registry
	stats   *statDb.DB
	limiter *RateLimiter
	ws      http.Handler
}

func New(config Config, dict *dictionary.Dictionary, rotator *daily.Rotator, soloReg *solo.Registry, stats *statDb.DB, ws http.Handler) *Server {
	return &Server{
		config:  config,
		dict:    dict,
		rotator: rotator,
		solo:    soloReg,
		stats:   stats,
		limiter: NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst, config.RateLimiterTTL),
		ws:      ws,
	}
}

func (s *Server) router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(ctx))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/ws", s.ws)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware)

		r.Get("/word-of-the-day", s.handleWordOfTheDay)
		r.Get("/random-word", s.handleRandomWord)
		r.Post("/check-word", s.handleCheckWord)
		r.Get("/profile/{pseudo}", s.handleProfile)

		if s.config.Debug {
			r.Get("/debug/word-of-the-day", s.handleDebugWordOfTheDay)
		}
	})

	return r
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.limiter.Run(ctx)

	srv := &http.Server{
		Addr:        s.config.Addr,
		Handler:     s.router(ctx),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logging.FromContext(ctx).Infof("http server listening on %s", s.config.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger writes one line per request with the app logger.
func requestLogger(ctx context.Context) func(http.Handler) http.Handler {
	logger := logging.FromContext(ctx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debugf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}
