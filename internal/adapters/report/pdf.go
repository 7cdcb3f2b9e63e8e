// Package report renders the daily planner as a PDF document.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xvierd/striktflow/internal/domain"
)

// Planner is everything that goes into one report.
type Planner struct {
	GeneratedAt time.Time
	Settings    domain.TimerSettings
	Tasks       []domain.Task
	FocusedID   string
	Deadlines   []domain.Deadline
	Today       domain.DailyStats
	Sessions    []domain.SessionRecord
}

// Section is a titled block of report lines.
type Section struct {
	Title string
	Lines []string
}

// Sections lays the planner out as plain text blocks.
func (p Planner) Sections() []Section {
	var sections []Section

	settings := Section{Title: "Timer"}
	settings.Lines = append(settings.Lines,
		fmt.Sprintf("Focus %dm, short break %dm, long break %dm every %d sessions",
			p.Settings.FocusDuration, p.Settings.ShortBreakDuration,
			p.Settings.LongBreakDuration, p.Settings.SessionsUntilLongBreak),
	)
	if p.Settings.StrictFocusMode {
		settings.Lines = append(settings.Lines, "Strict focus mode is on")
	}
	sections = append(sections, settings)

	deadlines := Section{Title: "Deadlines"}
	upcoming := append([]domain.Deadline(nil), p.Deadlines...)
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	for _, d := range upcoming {
		deadlines.Lines = append(deadlines.Lines, fmt.Sprintf("%s  %s (%s)", d.Date, d.Name, daysLabel(d.DaysLeft(p.GeneratedAt))))
	}
	if len(upcoming) == 0 {
		deadlines.Lines = append(deadlines.Lines, "No deadlines.")
	}
	sections = append(sections, deadlines)

	tasks := Section{Title: "Tasks"}
	for _, t := range p.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Text)
		if t.ID == p.FocusedID {
			line += "  <- focus"
		}
		tasks.Lines = append(tasks.Lines, line)
	}
	if len(p.Tasks) == 0 {
		tasks.Lines = append(tasks.Lines, "No tasks.")
	}
	sections = append(sections, tasks)

	today := Section{Title: "Today"}
	today.Lines = append(today.Lines, fmt.Sprintf("%d focus sessions, %d breaks, %s focused",
		p.Today.FocusSessions, p.Today.BreaksTaken, p.Today.TotalFocusTime.Round(time.Minute)))
	for _, s := range p.Sessions {
		if !domain.SameDay(s.EndTime, p.GeneratedAt) {
			continue
		}
		line := fmt.Sprintf("%s-%s  %s", s.StartTime.Local().Format("15:04"), s.EndTime.Local().Format("15:04"), s.Mode.Label())
		if s.GitBranch != "" {
			line += fmt.Sprintf("  (%s)", s.GitBranch)
		}
		today.Lines = append(today.Lines, line)
	}
	sections = append(sections, today)

	return sections
}

// Write renders the planner as a PDF to w.
func Write(w io.Writer, p Planner) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("StriktFlow planner", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("StriktFlow planner: %s", p.GeneratedAt.Format(domain.DateLayout)))
	pdf.Ln(14)

	for _, section := range p.Sections() {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, tr(section.Title))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 11)
		for _, line := range section.Lines {
			pdf.MultiCell(0, 6, tr("  "+line), "", "", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func daysLabel(days int) string {
	switch days {
	case 0:
		return "due today"
	case 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
