package service

import "math"

// RankTier is one bracket of the permanent rank ladder. Tiers never demote:
// rank is always derived from all-time points.
type RankTier struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	Icon      string `json:"icon"`
}

// RankTable is the ordered ladder, ascending by MinPoints. Built once at
// startup and never mutated.
type RankTable struct {
	tiers []RankTier
}

// NewRankTable returns the default ladder. The first tier starts at 0 points
// so every user always has a rank.
func NewRankTable() *RankTable {
	return &RankTable{
		tiers: []RankTier{
			{ID: 0, Name: "New Member", MinPoints: 0, Icon: "🆕"},
			{ID: 1, Name: "Contributor", MinPoints: 100, Icon: "✍️"},
			{ID: 2, Name: "Active Member", MinPoints: 500, Icon: "📣"},
			{ID: 3, Name: "Community Expert", MinPoints: 1500, Icon: "⭐"},
			{ID: 4, Name: "Veteran", MinPoints: 3000, Icon: "🎖️"},
			{ID: 5, Name: "Legend", MinPoints: 10000, Icon: "🏆"},
		},
	}
}

// Tiers returns the ladder in ascending order.
func (t *RankTable) Tiers() []RankTier {
	return t.tiers
}

// RankForPoints returns the highest tier whose threshold the points satisfy.
func (t *RankTable) RankForPoints(points int) RankTier {
	current := t.tiers[0]
	for _, tier := range t.tiers {
		if points >= tier.MinPoints {
			current = tier
		}
	}
	return current
}

// NextRank returns the tier above the given one, or false at the top.
func (t *RankTable) NextRank(tier RankTier) (RankTier, bool) {
	if tier.ID+1 >= len(t.tiers) {
		return RankTier{}, false
	}
	return t.tiers[tier.ID+1], true
}

// ProgressFraction returns the progress percentage (0-100) from the current
// tier towards the next one. Users at the top tier are always at 100.
func (t *RankTable) ProgressFraction(points int) float64 {
	current := t.RankForPoints(points)
	next, ok := t.NextRank(current)
	if !ok {
		return 100
	}

	span := float64(next.MinPoints - current.MinPoints)
	progress := float64(points-current.MinPoints) / span * 100
	progress = math.Max(0, math.Min(100, progress))

	// Round to 2 decimal places
	return math.Round(progress*100) / 100
}
