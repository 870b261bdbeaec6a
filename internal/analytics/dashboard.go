package analytics

import "habitTrackerAPI/internal/habit"

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Tier lower bounds are inclusive.
const (
	highTierMin   = 80
	mediumTierMin = 50
)

func MessageTier(percentage int) Tier {
	switch {
	case percentage >= highTierMin:
		return TierHigh
	case percentage >= mediumTierMin:
		return TierMedium
	default:
		return TierLow
	}
}

var tierMessages = map[string]map[Tier]string{
	"es": {
		TierHigh:   "¡Excelente! Tu constancia está sólida.",
		TierMedium: "Vas bien, hay margen de mejora.",
		TierLow:    "Pequeños pasos diarios suman mucho.",
	},
	"en": {
		TierHigh:   "Excellent! Your consistency is solid.",
		TierMedium: "You're doing well, there's room to improve.",
		TierLow:    "Small daily steps add up.",
	},
}

// Message returns the tier text in the given language, English otherwise.
func Message(tier Tier, language string) string {
	msgs, ok := tierMessages[language]
	if !ok {
		msgs = tierMessages["en"]
	}
	return msgs[tier]
}

type DashboardSummary struct {
	TotalHabits     int      `json:"totalHabits"`
	CompletedToday  int      `json:"habitsCompletedToday"`
	PercentageToday int      `json:"percentageToday"`
	RemainingHabits []string `json:"remainingHabits"`
	Message         string   `json:"message"`
	Tier            Tier     `json:"tier"`
}

// Summarize reports today's progress over the active habits. todayIx only
// needs to cover today. Remaining titles keep the order of habits.
func Summarize(habits []habit.Habit, today string, todayIx *Index, language string) DashboardSummary {
	remaining := make([]string, 0, len(habits))
	completed := 0
	for _, h := range habits {
		if todayIx.IsCompleted(today, h.ID) {
			completed++
			continue
		}
		remaining = append(remaining, h.Title)
	}

	pct := Percentage(completed, len(habits))
	tier := MessageTier(pct)
	return DashboardSummary{
		TotalHabits:     len(habits),
		CompletedToday:  completed,
		PercentageToday: pct,
		RemainingHabits: remaining,
		Message:         Message(tier, language),
		Tier:            tier,
	}
}
