package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
)

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (srv *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, srv.snapshot.restart)
}

func (srv *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records := srv.snapshot.records
	startIdx := 0
	if lsn := r.URL.Query().Get("lsn"); lsn != "" {
		found := false
		for i, rec := range records {
			if rec.LSN == lsn {
				startIdx = i
				found = true
				break
			}
		}
		if !found {
			_ = render.Render(w, r, errNotFound())
			return
		}
	}

	end := startIdx + limit
	if end > len(records) {
		end = len(records)
	}
	render.JSON(w, r, records[startIdx:end])
}

func (srv *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx, ok := srv.snapshot.clients[name]
	if !ok {
		_ = render.Render(w, r, errNotFound())
		return
	}
	render.JSON(w, r, ctx)
}
