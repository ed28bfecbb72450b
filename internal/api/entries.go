package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hourbook-app/hourbook/internal/app/porter"
	"github.com/hourbook-app/hourbook/internal/domain"
)

// ─── Time Entry Handlers ────────────────────────────────────────────────────
//
// GET    /api/time-entries?page=&limit= — date-paginated entries
// GET    /api/time-entries/by-date?date= — one date group
// POST   /api/time-entries — create
// PUT    /api/time-entries/{id} — full replace of mutable fields
// DELETE /api/time-entries/{id} — hard delete
// GET    /api/time-entries/export — CSV download
// POST   /api/time-entries/import — CSV upload

// defaultPageLimit is the number of distinct dates per page when the client
// does not say otherwise.
const defaultPageLimit = 5

// handleEntriesPage serves the date-paginated list. The page boundary is a
// set of calendar dates, so a day's entries are never split across pages.
func (s *Server) handleEntriesPage(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageLimit)

	result, err := s.entries.EntriesPage(r.Context(), p.ID, page, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.metrics.RecordPageServed()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEntriesByDate(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	date := r.URL.Query().Get("date")
	if _, err := domain.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidDate.Error())
		return
	}

	entries, err := s.entries.EntriesByDate(r.Context(), p.ID, date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type entryRequest struct {
	Date        string  `json:"date"`
	TaskType    string  `json:"tasktype"`
	TaskID      *int64  `json:"taskid"`
	SubTaskID   *int64  `json:"subtaskid"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

func (req *entryRequest) toEntry(ownerID int64) *domain.TimeEntry {
	return &domain.TimeEntry{
		OwnerID:     ownerID,
		Date:        req.Date,
		TaskType:    req.TaskType,
		TaskID:      req.TaskID,
		SubTaskID:   req.SubTaskID,
		Description: req.Description,
		Hours:       req.Hours,
	}
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := req.toEntry(p.ID)
	if err := domain.ValidateEntry(entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.entries.CreateEntry(r.Context(), entry); err != nil {
		writeStoreError(w, err)
		return
	}
	s.metrics.RecordEntryWrite("create")
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := req.toEntry(p.ID)
	entry.ID = id
	if err := domain.ValidateEntry(entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.entries.UpdateEntry(r.Context(), entry); err != nil {
		writeStoreError(w, err)
		return
	}
	s.metrics.RecordEntryWrite("update")
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	if err := s.entries.DeleteEntry(r.Context(), p.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.metrics.RecordEntryWrite("delete")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── CSV Import / Export ────────────────────────────────────────────────────

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="time-entries.csv"`)
	if err := porter.Export(r.Context(), w, s.entries, p.ID); err != nil {
		// Headers are committed at this point; the truncated body is the
		// only possible failure signal.
		return
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	report, err := porter.Import(r.Context(), r.Body, s.entries, p.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid csv payload")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// queryInt parses a positive integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
