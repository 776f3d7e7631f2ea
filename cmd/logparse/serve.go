package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/ntfsforensics/logparse/journal"
)

// Server is the read-only HTTP front end for an already-opened journal.
// It never reopens the iterator per request: at startup it takes one
// snapshot of the restart context and a capped record listing, and every
// handler serves from that snapshot, preserving the core's "byte source
// exclusively held by one iterator for its lifetime" rule.
type Server struct {
	Config *ServeConfig
	Logger *slog.Logger
	Server *http.Server

	snapshot *journalSnapshot
}

type journalSnapshot struct {
	restart restartSummary
	records []recordSummary
	clients map[string]journal.ClientRestartContext
}

type recordSummary struct {
	LSN          string `json:"lsn"`
	PreviousLSN  string `json:"previous_lsn"`
	UndoNextLSN  string `json:"undo_next_lsn"`
	Transaction  uint32 `json:"transaction"`
	DataLength   uint32 `json:"data_length"`
}

// maxSnapshotRecords bounds how many records serve captures at startup,
// so a pathological journal can't make the server hold an unbounded
// amount of working-set history in memory.
const maxSnapshotRecords = 10000

func newServer(cfg *ServeConfig, logger *slog.Logger, lf *journal.LogFile) (*Server, error) {
	snap, err := buildSnapshot(lf)
	if err != nil {
		return nil, err
	}
	return &Server{Config: cfg, Logger: logger, snapshot: snap}, nil
}

func buildSnapshot(lf *journal.LogFile) (*journalSnapshot, error) {
	summary := restartSummary{Valid: summarizeBlock(lf.Restart)}

	snap := &journalSnapshot{restart: summary, clients: make(map[string]journal.ClientRestartContext)}

	it := lf.Records(lf.Restart.Area.CurrentLSN)
	for len(snap.records) < maxSnapshotRecords {
		record, _, err := it.Next()
		if err != nil {
			if errors.Is(err, journal.ErrEndOfJournal) {
				break
			}
			break
		}
		snap.records = append(snap.records, recordSummary{
			LSN:         fmt.Sprintf("0x%x", record.ThisLSN),
			PreviousLSN: fmt.Sprintf("0x%x", record.ClientPreviousLSN),
			UndoNextLSN: fmt.Sprintf("0x%x", record.ClientUndoNextLSN),
			Transaction: record.TransactionID,
			DataLength:  record.ClientDataLength,
		})
	}

	for _, c := range lf.Restart.Clients {
		ctx, err := journal.ReadClientRestartContext(lf, c)
		if err != nil {
			continue
		}
		snap.clients[c.Name] = ctx
	}

	return snap, nil
}

func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

func (srv *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(srv.Logger))

	r.Get("/health", srv.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/restart", srv.handleRestart)
		r.Get("/records", srv.handleRecords)
		r.Get("/client/{name}", srv.handleClient)
	})

	return r
}

// Start runs the HTTP server until Stop is called or it fails.
func (srv *Server) Start() error {
	r := srv.buildRouter()
	srv.Logger.Info("serving journal snapshot", "host", srv.Config.Host, "port", srv.Config.Port)
	srv.Server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.Config.Host, srv.Config.Port),
		Handler: r,
	}

	if err := srv.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		srv.Logger.Error("HTTP server error", slog.Any("err", err))
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (srv *Server) Stop() error {
	srv.Logger.Info("stopping HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Server.Shutdown(ctx); err != nil {
		srv.Logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	return nil
}
