package api

import "net/http"

// ─── Statistics Handlers ────────────────────────────────────────────────────
//
// GET /api/stats/task-id         — all-time hours per task id (top 100)
// GET /api/stats/task-type       — all-time hours per task type
// GET /api/stats/task-id-monthly — per-month hours per task id, month desc
// GET /api/stats/last-30-days    — trailing-window hours per task id
// GET /api/stats/summary         — total hours, distinct days, daily average
// GET /api/stats/overview        — all five views, queried concurrently
//
// All numeric fields are returned unrounded; formatting is the client's
// concern.

func (s *Server) handleStatsByTaskID(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.ByTaskID(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatsByTaskType(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.ByTaskType(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatsMonthly(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.Monthly(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatsLast30Days(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.Last30Days(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.Summary(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	result, err := s.stats.Overview(r.Context(), p.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
