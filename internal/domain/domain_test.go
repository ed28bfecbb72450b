package domain

import "testing"

func validEntry() *TimeEntry {
	taskID := int64(42)
	return &TimeEntry{
		OwnerID:  1,
		Date:     "2024-03-11",
		TaskType: "development",
		TaskID:   &taskID,
		Hours:    7.5,
	}
}

func TestValidateEntry_Valid(t *testing.T) {
	if err := ValidateEntry(validEntry()); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
}

func TestValidateEntry_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TimeEntry)
		want   error
	}{
		{"missing date", func(e *TimeEntry) { e.Date = "" }, ErrMissingDate},
		{"blank date", func(e *TimeEntry) { e.Date = "   " }, ErrMissingDate},
		{"malformed date", func(e *TimeEntry) { e.Date = "11.03.2024" }, ErrInvalidDate},
		{"missing task type", func(e *TimeEntry) { e.TaskType = "  " }, ErrMissingTaskType},
		{"zero hours", func(e *TimeEntry) { e.Hours = 0 }, ErrNonPositiveHours},
		{"negative hours", func(e *TimeEntry) { e.Hours = -2 }, ErrNonPositiveHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)
			if err := ValidateEntry(e); err != tt.want {
				t.Errorf("ValidateEntry() = %v, want %v", err, tt.want)
			}
			if !IsValidationError(tt.want) {
				t.Errorf("IsValidationError(%v) = false, want true", tt.want)
			}
		})
	}
}

func TestEntriesPage_HasMore(t *testing.T) {
	tests := []struct {
		page, limit, totalDates int
		want                    bool
	}{
		{1, 5, 10, true},
		{2, 5, 10, false},
		{1, 1, 2, true},
		{2, 1, 2, false},
		{3, 1, 2, false},
		{1, 5, 0, false},
	}

	for _, tt := range tests {
		p := EntriesPage{Page: tt.page, Limit: tt.limit, TotalDates: tt.totalDates}
		if got := p.HasMore(); got != tt.want {
			t.Errorf("page=%d limit=%d totalDates=%d: HasMore() = %v, want %v",
				tt.page, tt.limit, tt.totalDates, got, tt.want)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	entries := []TimeEntry{
		{ID: 4, Date: "2024-01-03", Hours: 3},
		{ID: 2, Date: "2024-01-03", Hours: 4},
		{ID: 1, Date: "2024-01-01", Hours: 2},
	}

	groups := GroupByDate(entries)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Date != "2024-01-03" || groups[0].TotalHours != 7 {
		t.Errorf("group 0 = %s/%v, want 2024-01-03/7", groups[0].Date, groups[0].TotalHours)
	}
	if len(groups[0].Entries) != 2 {
		t.Errorf("group 0 has %d entries, want 2", len(groups[0].Entries))
	}
	if groups[1].Date != "2024-01-01" || groups[1].TotalHours != 2 {
		t.Errorf("group 1 = %s/%v, want 2024-01-01/2", groups[1].Date, groups[1].TotalHours)
	}
}

func TestDateGroup_Target(t *testing.T) {
	g := DateGroup{TotalHours: 6}
	if g.MeetsTarget() {
		t.Error("6h should not meet the 7.5h target")
	}
	if got := g.MissingHours(); got != 1.5 {
		t.Errorf("MissingHours() = %v, want 1.5", got)
	}

	g.TotalHours = 8
	if !g.MeetsTarget() {
		t.Error("8h should meet the 7.5h target")
	}
	if got := g.MissingHours(); got != 0 {
		t.Errorf("MissingHours() = %v, want 0", got)
	}
}
