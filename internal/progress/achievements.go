package progress

import (
	"fmt"
	"slices"
)

// BaseStreakMilestone is the first streak length that earns an achievement.
const BaseStreakMilestone = 5

// StarMilestones are the star totals that earn an achievement.
var StarMilestones = []int{10, 50, 100}

// NextStreakMilestone returns the next streak milestone above current.
func NextStreakMilestone(current int) int {
	for _, m := range []int{5, 10, 15, 20} {
		if m > current {
			return m
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

func streakAchievement(days int) string { return fmt.Sprintf("streak-%d", days) }

func starAchievement(stars int) string { return fmt.Sprintf("stars-%d", stars) }

func award(p *Progress, name string) {
	if !slices.Contains(p.Achievements, name) {
		p.Achievements = append(p.Achievements, name)
	}
}

// CompletionStars is the award for finishing every step of a problem. Each
// hint costs a star but a finished problem always earns at least one.
// Revealing the solution forfeits the award.
func CompletionStars(base, hints int, revealed bool) int {
	if revealed {
		return 0
	}
	return max(1, base-min(hints, base-1))
}
