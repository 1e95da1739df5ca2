package scheduler

import (
	"strings"

	"github.com/clogboy/dagplan/pkg/models"
)

// keywordRule maps a vocabulary of title/description keywords to the part of
// day that kind of work fits best. Weight is the context factor awarded when
// the rule matches inside its own time bucket. Rules are checked in order;
// the first match wins. The vocabulary is a plain heuristic (English plus
// Dutch terms from the original dossier tooling), kept as a data table so it
// can be extended without touching scorer or allocator logic.
type keywordRule struct {
	slot     models.SlotOfDay
	weight   float64
	keywords []string
}

var slotRules = []keywordRule{
	{
		slot:   models.SlotMorning,
		weight: 0.9,
		keywords: []string{
			"planning", "plan", "strategy", "strategie",
			"analysis", "analyse", "writing", "schrijven", "denkwerk",
		},
	},
	{
		slot:   models.SlotAfternoon,
		weight: 0.9,
		keywords: []string{
			"meeting", "call", "review",
			"overleg", "vergadering", "bespreking", "gesprek",
		},
	},
	{
		slot:   models.SlotEvening,
		weight: 0.8,
		keywords: []string{
			"email", "e-mail", "admin", "administratie",
			"update", "filing", "archiveren", "invoice", "factuur",
		},
	},
}

// combinedText lowercases and joins an activity's title and description for
// keyword matching.
func combinedText(a models.Activity) string {
	return strings.ToLower(a.Title + " " + a.Description)
}

// matchesSlot reports whether the text contains any keyword of the rule for
// the given slot, along with that rule's weight.
func matchesSlot(text string, slot models.SlotOfDay) (float64, bool) {
	for _, rule := range slotRules {
		if rule.slot != slot {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.weight, true
			}
		}
	}
	return 0, false
}

// suggestSlot derives a preferred part of day from the activity text alone.
// Morning keywords win over afternoon, afternoon over evening; an activity
// with collaborators defaults to the afternoon even without a keyword match.
func suggestSlot(a models.Activity) models.SlotOfDay {
	text := combinedText(a)
	if _, ok := matchesSlot(text, models.SlotMorning); ok {
		return models.SlotMorning
	}
	if _, ok := matchesSlot(text, models.SlotAfternoon); ok || a.HasContacts() {
		return models.SlotAfternoon
	}
	if _, ok := matchesSlot(text, models.SlotEvening); ok {
		return models.SlotEvening
	}
	return models.SlotFlexible
}
