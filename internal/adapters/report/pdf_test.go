package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/striktflow/internal/domain"
)

func samplePlanner() Planner {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	return Planner{
		GeneratedAt: now,
		Settings:    domain.DefaultSettings(),
		Tasks: []domain.Task{
			{ID: "a", Text: "Draft outline"},
			{ID: "b", Text: "Email Sam", Completed: true},
		},
		FocusedID: "a",
		Deadlines: []domain.Deadline{
			{ID: "d2", Name: "Submit thesis", Date: "2026-03-20"},
			{ID: "d1", Name: "Review", Date: "2026-03-11"},
		},
		Today: domain.DailyStats{FocusSessions: 2, BreaksTaken: 1, TotalFocusTime: 50 * time.Minute},
		Sessions: []domain.SessionRecord{
			{ID: "s1", Mode: domain.ModeFocus, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-95 * time.Minute), GitBranch: "main"},
			{ID: "s0", Mode: domain.ModeFocus, StartTime: now.AddDate(0, 0, -1), EndTime: now.AddDate(0, 0, -1).Add(25 * time.Minute)},
		},
	}
}

func TestPlanner_Sections(t *testing.T) {
	sections := samplePlanner().Sections()
	require.Len(t, sections, 4)

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Timer", "Deadlines", "Tasks", "Today"}, titles)

	assert.Equal(t, "Focus 25m, short break 5m, long break 15m every 4 sessions", sections[0].Lines[0])

	deadlines := sections[1].Lines
	require.Len(t, deadlines, 2)
	assert.Equal(t, "2026-03-11  Review (1 day left)", deadlines[0])
	assert.Equal(t, "2026-03-20  Submit thesis (10 days left)", deadlines[1])

	tasks := sections[2].Lines
	assert.Equal(t, "[ ] Draft outline  <- focus", tasks[0])
	assert.Equal(t, "[x] Email Sam", tasks[1])

	today := sections[3].Lines
	require.Len(t, today, 2, "yesterday's session is left out")
	assert.Equal(t, "2 focus sessions, 1 breaks, 50m0s focused", today[0])
	assert.Contains(t, today[1], "Focus")
	assert.Contains(t, today[1], "(main)")
}

func TestPlanner_Sections_Empty(t *testing.T) {
	p := Planner{GeneratedAt: time.Now(), Settings: domain.DefaultSettings()}
	sections := p.Sections()

	assert.Equal(t, []string{"No deadlines."}, sections[1].Lines)
	assert.Equal(t, []string{"No tasks."}, sections[2].Lines)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlanner()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"), "output should be a PDF document")
	assert.Contains(t, out, "%%EOF")
}

func TestDaysLabel(t *testing.T) {
	assert.Equal(t, "due today", daysLabel(0))
	assert.Equal(t, "1 day left", daysLabel(1))
	assert.Equal(t, "3 days left", daysLabel(3))
}
