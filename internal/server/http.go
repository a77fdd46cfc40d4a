package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/config"
	"github.com/WidadAlkibsi/TriviaProject/internal/question"
	httperrors "github.com/WidadAlkibsi/TriviaProject/pkg/http/errors"
)

// PingFunc checks one upstream dependency.
type PingFunc func(ctx context.Context) error

// NewWSUpgrader builds the WebSocket upgrader, checking Origin against the CORS list.
func NewWSUpgrader(cors config.CORS) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || originAllowed(cors.AllowedOrigins, origin)
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// NewHandler wires base routes (health, metrics, ping) and the trivia API. Every
// API route is served both at the root and under /api.
func NewHandler(cfg *config.App, logger zerolog.Logger, pings map[string]PingFunc, questions *question.HTTPHandler, quizStream http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pings); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if questions != nil {
		questions.Register(mux, "")
		questions.Register(mux, "/api")
	}

	if quizStream != nil {
		mux.HandleFunc("GET /ws/quizzes", quizStream)
	} else {
		mux.HandleFunc("GET /ws/quizzes", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondError(w, http.StatusNotImplemented, httperrors.ErrCodeInternalError, "quiz stream not configured")
		})
	}

	return cors(cfg.CORS, requestLogger(logger, jsonFallback(mux)))
}

// NewHTTPServer wraps NewHandler in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pings map[string]PingFunc, questions *question.HTTPHandler, quizStream http.HandlerFunc) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, pings, questions, quizStream),
	}
}

func pingDependencies(ctx context.Context, pings map[string]PingFunc) error {
	names := make([]string, 0, len(pings))
	for name := range pings {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := pings[name](ctx); err != nil {
			return &pingError{dependency: name, err: err}
		}
	}
	return nil
}

type pingError struct {
	dependency string
	err        error
}

func (e *pingError) Error() string { return e.dependency + ": " + e.err.Error() }
func (e *pingError) Unwrap() error { return e.err }
