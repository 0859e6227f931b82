package gamification

var (
	flameTiers = []int{30, 15, 10, 5, 3, 2, 1}
	milestones = []int{3, 5, 10, 15, 30}
)

// FlameTier returns the highest tier threshold reached by a streak, or 0
// when there is no streak.
func FlameTier(streak int) int {
	for _, t := range flameTiers {
		if streak >= t {
			return t
		}
	}
	return 0
}

// NextMilestone returns the next milestone and the days left to reach it.
// ok is false once the last milestone is passed.
func NextMilestone(streak int) (milestone, daysLeft int, ok bool) {
	for _, m := range milestones {
		if streak < m {
			return m, m - streak, true
		}
	}
	return 0, 0, false
}
