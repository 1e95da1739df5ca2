// Package storage persists the activity registry and the per-day schedule
// files as YAML under the base path. The scheduler core never touches this
// package; it only sees the plain values the stores hand over.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
	"gopkg.in/yaml.v3"
)

// activitiesFile represents the top-level structure of activities.yaml.
type activitiesFile struct {
	Version    string                     `yaml:"version"`
	Counter    int                        `yaml:"counter"`
	Activities map[string]models.Activity `yaml:"activities"`
}

// ActivityFilter specifies criteria for filtering activities. All specified
// fields use AND logic: an activity must match every criterion.
type ActivityFilter struct {
	Status  []models.ActivityStatus
	Tier    []models.Tier
	Contact string
}

// ActivityStore defines the interface for managing the activity registry.
type ActivityStore interface {
	Add(a models.Activity) (*models.Activity, error)
	Update(id string, updates models.Activity) error
	Complete(id string) error
	Get(id string) (*models.Activity, error)
	GetAll() ([]models.Activity, error)
	Filter(filter ActivityFilter) ([]models.Activity, error)
	Pending() ([]models.Activity, error)
	Load() error
	Save() error
}

type fileActivityStore struct {
	basePath string
	data     activitiesFile
}

// NewActivityStore creates an ActivityStore backed by an activities.yaml
// file in the given base directory.
func NewActivityStore(basePath string) ActivityStore {
	return &fileActivityStore{
		basePath: basePath,
		data: activitiesFile{
			Version:    "1.0",
			Activities: make(map[string]models.Activity),
		},
	}
}

func (s *fileActivityStore) filePath() string {
	return filepath.Join(s.basePath, "activities.yaml")
}

// Add registers a new activity. An empty ID is assigned the next ACT-NNNNN
// identifier; an empty status defaults to pending.
func (s *fileActivityStore) Add(a models.Activity) (*models.Activity, error) {
	if a.Title == "" {
		return nil, fmt.Errorf("adding activity: title must not be empty")
	}
	if a.ID == "" {
		s.data.Counter++
		a.ID = fmt.Sprintf("ACT-%05d", s.data.Counter)
	}
	if _, exists := s.data.Activities[a.ID]; exists {
		return nil, fmt.Errorf("adding activity: %s already exists", a.ID)
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if a.Tier == "" {
		a.Tier = models.TierNormal
	}
	now := time.Now()
	if a.Created.IsZero() {
		a.Created = now
	}
	a.Updated = now

	s.data.Activities[a.ID] = a
	return &a, nil
}

// Update overlays non-zero fields of updates onto the stored activity.
func (s *fileActivityStore) Update(id string, updates models.Activity) error {
	existing, exists := s.data.Activities[id]
	if !exists {
		return fmt.Errorf("updating activity: %s not found", id)
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Tier != "" {
		existing.Tier = updates.Tier
	}
	if updates.Status != "" {
		existing.Status = updates.Status
	}
	if updates.DueDate != nil {
		existing.DueDate = updates.DueDate
	}
	if updates.EstimatedMinutes != 0 {
		existing.EstimatedMinutes = updates.EstimatedMinutes
	}
	if updates.Contacts != nil {
		existing.Contacts = updates.Contacts
	}
	existing.Updated = time.Now()

	s.data.Activities[id] = existing
	return nil
}

// Complete marks an activity as completed so it no longer competes for
// scheduling slots.
func (s *fileActivityStore) Complete(id string) error {
	return s.Update(id, models.Activity{Status: models.StatusCompleted})
}

func (s *fileActivityStore) Get(id string) (*models.Activity, error) {
	a, exists := s.data.Activities[id]
	if !exists {
		return nil, fmt.Errorf("activity %s not found", id)
	}
	return &a, nil
}

// GetAll returns every activity sorted by ID for deterministic output.
func (s *fileActivityStore) GetAll() ([]models.Activity, error) {
	out := make([]models.Activity, 0, len(s.data.Activities))
	for _, a := range s.data.Activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fileActivityStore) Filter(filter ActivityFilter) ([]models.Activity, error) {
	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	var out []models.Activity
	for _, a := range all {
		if matchesActivityFilter(a, filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Pending returns the non-completed activities, the input set for a
// scheduling run.
func (s *fileActivityStore) Pending() ([]models.Activity, error) {
	return s.Filter(ActivityFilter{Status: []models.ActivityStatus{models.StatusPending}})
}

// Load reads activities.yaml from disk. A missing file leaves the store
// empty.
func (s *fileActivityStore) Load() error {
	raw, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading activities.yaml: %w", err)
	}

	var data activitiesFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing activities.yaml: %w", err)
	}
	if data.Activities == nil {
		data.Activities = make(map[string]models.Activity)
	}
	if data.Version == "" {
		data.Version = "1.0"
	}
	s.data = data
	return nil
}

// Save writes the registry back to activities.yaml.
func (s *fileActivityStore) Save() error {
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("marshalling activities: %w", err)
	}
	if err := os.WriteFile(s.filePath(), raw, 0o644); err != nil {
		return fmt.Errorf("writing activities.yaml: %w", err)
	}
	return nil
}

func matchesActivityFilter(a models.Activity, filter ActivityFilter) bool {
	if len(filter.Status) > 0 && !containsStatus(filter.Status, a.Status) {
		return false
	}
	if len(filter.Tier) > 0 && !containsTier(filter.Tier, a.Tier) {
		return false
	}
	if filter.Contact != "" {
		found := false
		for _, c := range a.Contacts {
			if c == filter.Contact {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsStatus(list []models.ActivityStatus, s models.ActivityStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTier(list []models.Tier, t models.Tier) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
