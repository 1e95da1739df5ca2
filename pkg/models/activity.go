package models

import "time"

// Tier represents the priority tier of an activity.
type Tier string

const (
	TierUrgent Tier = "urgent"
	TierHigh   Tier = "high"
	TierNormal Tier = "normal"
	TierLow    Tier = "low"
)

// ActivityStatus represents the lifecycle state of an activity.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pending"
	StatusCompleted ActivityStatus = "completed"
)

// Activity represents a pending piece of work competing for a time block.
// Activities are created and updated by the CRUD layer; the scheduler treats
// them as read-only input.
type Activity struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description,omitempty"`
	Tier        Tier           `yaml:"tier"`
	Status      ActivityStatus `yaml:"status"`
	// DueDate is nil when the activity has no deadline.
	DueDate *time.Time `yaml:"due_date,omitempty"`
	// EstimatedMinutes is 0 when no estimate has been given.
	EstimatedMinutes int       `yaml:"estimated_minutes,omitempty"`
	Contacts         []string  `yaml:"contacts,omitempty"`
	Created          time.Time `yaml:"created"`
	Updated          time.Time `yaml:"updated"`
}

// HasContacts reports whether the activity involves one or more collaborators.
func (a Activity) HasContacts() bool {
	return len(a.Contacts) > 0
}

// SlotOfDay names a preferred part of the working day for an activity.
type SlotOfDay string

const (
	SlotMorning   SlotOfDay = "morning"
	SlotAfternoon SlotOfDay = "afternoon"
	SlotEvening   SlotOfDay = "evening"
	SlotFlexible  SlotOfDay = "flexible"
)

// PriorityFactors holds the five independent sub-scores of the priority
// model. Every factor lies in [0,1].
type PriorityFactors struct {
	Urgency       float64 `json:"urgency"`
	Importance    float64 `json:"importance"`
	Effort        float64 `json:"effort"`
	Context       float64 `json:"context"`
	Collaboration float64 `json:"collaboration"`
}

// ActivityScore is the scorer's output for a single activity: the weighted
// total, the individual factors, an explanation, and a suggested part of day.
type ActivityScore struct {
	Total         float64         `json:"total"`
	Factors       PriorityFactors `json:"factors"`
	Reasoning     string          `json:"reasoning"`
	SuggestedSlot SlotOfDay       `json:"suggested_slot"`
}
