package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// turnsTotal counts dialog turns by the operation they ran in and what
	// happened to the dialog state.
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicerail_turns_total",
		Help: "Dialog turns by operation and outcome",
	}, []string{"operation", "outcome"})

	// ticketCommits counts store mutations by action
	ticketCommits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicerail_ticket_commits_total",
		Help: "Ticket store mutations by action",
	}, []string{"action"})

	notifyErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerail_notify_errors_total",
		Help: "Replies the notifier failed to deliver",
	})
)

const (
	outcomeNoInput  = "no_input"
	outcomeHeld     = "held"
	outcomeAdvanced = "advanced"
)

func operationLabel(op Operation) string {
	if op == OpNone {
		return "none"
	}
	return string(op)
}

// serveMetrics exposes /metrics until ctx is done. An empty addr disables it.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error: metrics server", "err", err)
		}
	}()
}
