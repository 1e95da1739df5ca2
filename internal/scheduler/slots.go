package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

// combineDayTime anchors a "HH:MM" clock string on the given calendar day,
// in that day's location.
func combineDayTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing clock time %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// FreeWindows computes the ordered list of free windows on the given day
// around the already-committed blocks. A cursor walks the committed blocks
// sorted by start time; the gap before each block, and the remainder after
// the last one, become candidate windows. Candidates shorter than
// MinBlockMinutes are dropped entirely rather than fragmented further.
// The output is chronologically ordered and never overlaps a committed block.
func FreeWindows(day time.Time, committed []models.CommittedBlock, opts models.ScheduleOptions) ([]models.TimeWindow, error) {
	workStart, err := combineDayTime(day, opts.WorkdayStart)
	if err != nil {
		return nil, fmt.Errorf("workday start: %w", err)
	}
	workEnd, err := combineDayTime(day, opts.WorkdayEnd)
	if err != nil {
		return nil, fmt.Errorf("workday end: %w", err)
	}
	if !workStart.Before(workEnd) {
		return nil, fmt.Errorf("workday start %s is not before workday end %s", opts.WorkdayStart, opts.WorkdayEnd)
	}

	blocks := append([]models.CommittedBlock(nil), committed...)
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})

	var windows []models.TimeWindow
	cursor := workStart
	for _, b := range blocks {
		if cursor.Before(b.Start) {
			windows = appendWindow(windows, cursor, b.Start, opts.MinBlockMinutes)
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(workEnd) {
		windows = appendWindow(windows, cursor, workEnd, opts.MinBlockMinutes)
	}

	return windows, nil
}

// appendWindow adds the candidate window [start, end) if it meets the
// minimum block size.
func appendWindow(windows []models.TimeWindow, start, end time.Time, minMinutes int) []models.TimeWindow {
	minutes := int(end.Sub(start).Minutes())
	if minutes < minMinutes {
		return windows
	}
	return append(windows, models.TimeWindow{
		Start:     start,
		End:       end,
		Minutes:   minutes,
		Available: true,
	})
}
