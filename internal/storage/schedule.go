package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
	"gopkg.in/yaml.v3"
)

// DaySchedule is the on-disk structure of one schedules/YYYY-MM-DD.yaml
// file: the externally committed blocks for that day plus the blocks the
// planner produced.
type DaySchedule struct {
	Version   string                  `yaml:"version"`
	Day       string                  `yaml:"day"`
	Committed []models.CommittedBlock `yaml:"committed,omitempty"`
	Blocks    []models.ProducedBlock  `yaml:"blocks,omitempty"`
}

// ScheduleStore defines the interface for persisting per-day schedules.
// All methods serialize access internally, so two concurrent planning runs
// for the same day cannot interleave their reads and writes.
type ScheduleStore interface {
	LoadDay(day time.Time) (*DaySchedule, error)
	SaveBlocks(day time.Time, blocks []models.ProducedBlock) error
	AddCommitted(day time.Time, block models.CommittedBlock) error
	CommittedFor(day time.Time) ([]models.CommittedBlock, error)
}

type fileScheduleStore struct {
	basePath string
	mu       sync.Mutex
}

// NewScheduleStore creates a ScheduleStore that writes day files under
// <basePath>/schedules/.
func NewScheduleStore(basePath string) ScheduleStore {
	return &fileScheduleStore{basePath: basePath}
}

func (s *fileScheduleStore) dayPath(day time.Time) string {
	return filepath.Join(s.basePath, "schedules", day.Format("2006-01-02")+".yaml")
}

func (s *fileScheduleStore) loadDayLocked(day time.Time) (*DaySchedule, error) {
	raw, err := os.ReadFile(s.dayPath(day))
	if err != nil {
		if os.IsNotExist(err) {
			return &DaySchedule{Version: "1.0", Day: day.Format("2006-01-02")}, nil
		}
		return nil, fmt.Errorf("reading schedule for %s: %w", day.Format("2006-01-02"), err)
	}

	var sched DaySchedule
	if err := yaml.Unmarshal(raw, &sched); err != nil {
		return nil, fmt.Errorf("parsing schedule for %s: %w", day.Format("2006-01-02"), err)
	}
	return &sched, nil
}

func (s *fileScheduleStore) saveDayLocked(day time.Time, sched *DaySchedule) error {
	dir := filepath.Join(s.basePath, "schedules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating schedules directory: %w", err)
	}

	raw, err := yaml.Marshal(sched)
	if err != nil {
		return fmt.Errorf("marshalling schedule: %w", err)
	}
	if err := os.WriteFile(s.dayPath(day), raw, 0o644); err != nil {
		return fmt.Errorf("writing schedule for %s: %w", day.Format("2006-01-02"), err)
	}
	return nil
}

// LoadDay reads the schedule file for a day. A missing file yields an empty
// schedule.
func (s *fileScheduleStore) LoadDay(day time.Time) (*DaySchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadDayLocked(day)
}

// SaveBlocks replaces the planner-produced blocks for a day, keeping the
// externally committed blocks untouched.
func (s *fileScheduleStore) SaveBlocks(day time.Time, blocks []models.ProducedBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadDayLocked(day)
	if err != nil {
		return err
	}
	sched.Blocks = blocks
	return s.saveDayLocked(day, sched)
}

// AddCommitted records an externally sourced committed block for a day.
func (s *fileScheduleStore) AddCommitted(day time.Time, block models.CommittedBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if block.Start.After(block.End) {
		return fmt.Errorf("committed block starts at %s after it ends at %s",
			block.Start.Format("15:04"), block.End.Format("15:04"))
	}

	sched, err := s.loadDayLocked(day)
	if err != nil {
		return err
	}
	sched.Committed = append(sched.Committed, block)
	return s.saveDayLocked(day, sched)
}

// CommittedFor returns everything the slot generator must treat as occupied
// on the given day: the externally committed blocks plus every block a
// previous planning run produced.
func (s *fileScheduleStore) CommittedFor(day time.Time) ([]models.CommittedBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadDayLocked(day)
	if err != nil {
		return nil, err
	}

	out := append([]models.CommittedBlock(nil), sched.Committed...)
	for _, b := range sched.Blocks {
		out = append(out, models.CommittedBlock{Start: b.Start, End: b.End})
	}
	return out, nil
}
