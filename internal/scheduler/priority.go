package scheduler

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

// Weights holds the relative weight of each priority factor. The defaults
// sum to 1.0, so the weighted total stays within [0,1] as long as every
// factor does.
type Weights struct {
	Urgency       float64
	Importance    float64
	Effort        float64
	Context       float64
	Collaboration float64
}

// DefaultWeights returns the production weighting of the five factors.
func DefaultWeights() Weights {
	return Weights{
		Urgency:       0.30,
		Importance:    0.25,
		Effort:        0.20,
		Context:       0.15,
		Collaboration: 0.10,
	}
}

// Score computes the priority score for a single activity at the given
// instant using the default weights. It is a pure function: no I/O, no
// side effects.
func Score(a models.Activity, now time.Time) models.ActivityScore {
	return ScoreWeighted(a, now, DefaultWeights())
}

// ScoreWeighted computes the priority score for a single activity with
// explicit weights.
func ScoreWeighted(a models.Activity, now time.Time, w Weights) models.ActivityScore {
	text := combinedText(a)

	factors := models.PriorityFactors{
		Urgency:       urgencyFactor(a, now),
		Importance:    importanceFactor(a),
		Effort:        effortFactor(a),
		Context:       contextFactor(text, now.Hour()),
		Collaboration: collaborationFactor(a),
	}

	total := factors.Urgency*w.Urgency +
		factors.Importance*w.Importance +
		factors.Effort*w.Effort +
		factors.Context*w.Context +
		factors.Collaboration*w.Collaboration

	return models.ActivityScore{
		Total:         total,
		Factors:       factors,
		Reasoning:     buildReasoning(factors),
		SuggestedSlot: suggestSlot(a),
	}
}

// urgencyFactor buckets the number of whole days until the due date.
// Activities without a due date sit at a fixed 0.3.
func urgencyFactor(a models.Activity, now time.Time) float64 {
	if a.DueDate == nil {
		return 0.3
	}
	days := int(math.Floor(a.DueDate.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return 1.0 // overdue
	case days == 0:
		return 0.9 // due today
	case days <= 3:
		return 0.7
	case days <= 7:
		return 0.5
	case days <= 14:
		return 0.3
	default:
		return 0.2
	}
}

// importanceFactor maps the priority tier to a base value and adds a flat
// bonus when collaborators are involved, capped at 1.0.
func importanceFactor(a models.Activity) float64 {
	base := 0.5
	switch a.Tier {
	case models.TierUrgent:
		base = 1.0
	case models.TierHigh:
		base = 0.8
	case models.TierNormal:
		base = 0.5
	case models.TierLow:
		base = 0.3
	}
	if a.HasContacts() {
		base += 0.1
	}
	return math.Min(base, 1.0)
}

// effortFactor is inverted: shorter activities score higher so quick wins
// surface first. Activities without an estimate sit at 0.5.
func effortFactor(a models.Activity) float64 {
	if a.EstimatedMinutes <= 0 {
		return 0.5
	}
	switch {
	case a.EstimatedMinutes <= 30:
		return 0.9
	case a.EstimatedMinutes <= 60:
		return 0.7
	case a.EstimatedMinutes <= 120:
		return 0.5
	case a.EstimatedMinutes <= 240:
		return 0.3
	default:
		return 0.2
	}
}

// contextFactor scores how well the activity fits the current hour of day.
// Each bucket has a base value and a boosted value when the activity text
// matches that bucket's keyword rule. Hours 11, 12 and 13, and everything
// from 18:00 onward, fall outside every bucket and score the 0.5 default;
// these gaps are carried over from the original bucket boundaries.
func contextFactor(text string, hour int) float64 {
	switch {
	case hour >= 8 && hour < 11:
		if boost, ok := matchesSlot(text, models.SlotMorning); ok {
			return boost
		}
		return 0.6
	case hour > 13 && hour < 16:
		if boost, ok := matchesSlot(text, models.SlotAfternoon); ok {
			return boost
		}
		return 0.6
	case hour >= 16 && hour < 18:
		if boost, ok := matchesSlot(text, models.SlotEvening); ok {
			return boost
		}
		return 0.5
	default:
		return 0.5
	}
}

// collaborationFactor scales with the number of collaborators on the
// activity: work that unblocks more people ranks higher.
func collaborationFactor(a models.Activity) float64 {
	switch len(a.Contacts) {
	case 0:
		return 0.3
	case 1:
		return 0.6
	case 2:
		return 0.7
	default:
		return 0.9
	}
}

// buildReasoning assembles a short explanation from the factors that cross
// their notable thresholds.
func buildReasoning(f models.PriorityFactors) string {
	var phrases []string

	switch {
	case f.Urgency > 0.8:
		phrases = append(phrases, "overdue or due today")
	case f.Urgency > 0.6:
		phrases = append(phrases, "deadline is approaching")
	}
	if f.Importance > 0.8 {
		phrases = append(phrases, "high importance")
	}
	if f.Effort > 0.8 {
		phrases = append(phrases, "quick win")
	}
	if f.Collaboration > 0.7 {
		phrases = append(phrases, "several people are waiting on this")
	}
	if f.Context > 0.8 {
		phrases = append(phrases, "good fit for this time of day")
	}

	if len(phrases) == 0 {
		return "standard priority"
	}
	return strings.Join(phrases, ", ")
}

// ScoredActivity pairs an activity with its computed score.
type ScoredActivity struct {
	Activity models.Activity
	Score    models.ActivityScore
}

// Rank scores all activities and sorts them descending by total score.
// The sort is stable: activities with equal scores keep their input order.
func Rank(activities []models.Activity, now time.Time) []ScoredActivity {
	ranked := make([]ScoredActivity, len(activities))
	for i, a := range activities {
		ranked[i] = ScoredActivity{Activity: a, Score: Score(a, now)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked
}
