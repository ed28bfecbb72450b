// Package porter moves a user's entries across the CSV boundary. It rides on
// the store gateway's create/read operations and the shared domain
// validation; there is no aggregation or pagination logic here.
package porter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// csvHeader is the canonical column order. Export always writes it; import
// accepts files with or without it.
var csvHeader = []string{"date", "tasktype", "taskid", "subtaskid", "description", "hours"}

// Export writes every entry of the owner as CSV, newest date first.
func Export(ctx context.Context, w io.Writer, store domain.EntryStore, ownerID int64) error {
	entries, err := store.AllEntries(ctx, ownerID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		rec := []string{
			e.Date,
			e.TaskType,
			optionalInt(e.TaskID),
			optionalInt(e.SubTaskID),
			e.Description,
			strconv.FormatFloat(e.Hours, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RowError reports one rejected import row.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report summarizes one import run. Valid rows are created even when other
// rows are rejected; the caller decides whether a partial import is
// acceptable by inspecting Rejected.
type Report struct {
	BatchID  string     `json:"batchId"`
	Imported int        `json:"imported"`
	Rejected []RowError `json:"rejected"`
}

// Import reads CSV rows and creates an entry per valid row, all owned by
// ownerID. Every row passes through domain.ValidateEntry before the write.
func Import(ctx context.Context, r io.Reader, store domain.EntryStore, ownerID int64) (*Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per row below
	cr.TrimLeadingSpace = true

	report := &Report{BatchID: uuid.NewString(), Rejected: []RowError{}}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		if line == 1 && isHeader(rec) {
			continue
		}
		entry, err := parseRow(rec, ownerID)
		if err != nil {
			report.Rejected = append(report.Rejected, RowError{Line: line, Message: err.Error()})
			continue
		}
		if err := domain.ValidateEntry(entry); err != nil {
			report.Rejected = append(report.Rejected, RowError{Line: line, Message: err.Error()})
			continue
		}
		if err := store.CreateEntry(ctx, entry); err != nil {
			return report, err
		}
		report.Imported++
	}
	return report, nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "date")
}

func parseRow(rec []string, ownerID int64) (*domain.TimeEntry, error) {
	if len(rec) < 6 {
		return nil, fmt.Errorf("want 6 columns (%s), got %d", strings.Join(csvHeader, ","), len(rec))
	}

	taskID, err := parseOptionalInt(rec[2])
	if err != nil {
		return nil, fmt.Errorf("taskid: %w", err)
	}
	subTaskID, err := parseOptionalInt(rec[3])
	if err != nil {
		return nil, fmt.Errorf("subtaskid: %w", err)
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil {
		return nil, fmt.Errorf("hours: %w", err)
	}

	return &domain.TimeEntry{
		OwnerID:     ownerID,
		Date:        strings.TrimSpace(rec[0]),
		TaskType:    strings.TrimSpace(rec[1]),
		TaskID:      taskID,
		SubTaskID:   subTaskID,
		Description: rec[4],
		Hours:       hours,
	}, nil
}

func parseOptionalInt(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
