package service

type BadgeCategory string

const (
	BadgeCategoryContent     BadgeCategory = "content"
	BadgeCategoryCommunity   BadgeCategory = "community"
	BadgeCategoryEngagement  BadgeCategory = "engagement"
	BadgeCategoryProfile     BadgeCategory = "profile"
	BadgeCategoryAchievement BadgeCategory = "achievement"
)

type CriteriaType string

const (
	CriteriaPostCount          CriteriaType = "post_count"
	CriteriaCommentCount       CriteriaType = "comment_count"
	CriteriaCommunityPostCount CriteriaType = "community_post_count"
	CriteriaStreak             CriteriaType = "streak"
	CriteriaPoints             CriteriaType = "points"
	CriteriaProfileComplete    CriteriaType = "profile_complete"
)

type BadgeCriteria struct {
	Type  CriteriaType `json:"type"`
	Value int          `json:"value"`
}

type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    BadgeCategory `json:"category"`
	Criteria    BadgeCriteria `json:"criteria"`
}

// BadgeCatalog is the static badge list, built once at startup. Badges are
// one-time and non-revocable; earned rows live in the earned_badges table.
type BadgeCatalog struct {
	badges []Badge
}

func DefaultBadgeCatalog() *BadgeCatalog {
	return &BadgeCatalog{
		badges: []Badge{
			{ID: "first_post", Name: "First Post", Description: "Publish your first post", Category: BadgeCategoryContent, Criteria: BadgeCriteria{Type: CriteriaPostCount, Value: 1}},
			{ID: "prolific_writer", Name: "Prolific Writer", Description: "Publish 10 posts", Category: BadgeCategoryContent, Criteria: BadgeCriteria{Type: CriteriaPostCount, Value: 10}},
			{ID: "author", Name: "Author", Description: "Publish 25 posts", Category: BadgeCategoryContent, Criteria: BadgeCriteria{Type: CriteriaPostCount, Value: 25}},
			{ID: "first_comment", Name: "First Comment", Description: "Leave your first comment", Category: BadgeCategoryEngagement, Criteria: BadgeCriteria{Type: CriteriaCommentCount, Value: 1}},
			{ID: "conversationalist", Name: "Conversationalist", Description: "Leave 25 comments", Category: BadgeCategoryEngagement, Criteria: BadgeCriteria{Type: CriteriaCommentCount, Value: 25}},
			{ID: "community_voice", Name: "Community Voice", Description: "Share your first community post", Category: BadgeCategoryCommunity, Criteria: BadgeCriteria{Type: CriteriaCommunityPostCount, Value: 1}},
			{ID: "community_regular", Name: "Community Regular", Description: "Share 10 community posts", Category: BadgeCategoryCommunity, Criteria: BadgeCriteria{Type: CriteriaCommunityPostCount, Value: 10}},
			{ID: "week_streak", Name: "Week Streak", Description: "Log in 7 days in a row", Category: BadgeCategoryAchievement, Criteria: BadgeCriteria{Type: CriteriaStreak, Value: 7}},
			{ID: "month_streak", Name: "Month Streak", Description: "Log in 30 days in a row", Category: BadgeCategoryAchievement, Criteria: BadgeCriteria{Type: CriteriaStreak, Value: 30}},
			{ID: "point_collector", Name: "Point Collector", Description: "Earn 1000 points", Category: BadgeCategoryAchievement, Criteria: BadgeCriteria{Type: CriteriaPoints, Value: 1000}},
			{ID: "complete_profile", Name: "All Set Up", Description: "Complete your profile", Category: BadgeCategoryProfile, Criteria: BadgeCriteria{Type: CriteriaProfileComplete, Value: 0}},
		},
	}
}

// Badges returns the full catalog.
func (c *BadgeCatalog) Badges() []Badge {
	return c.badges
}

// FindByID looks a badge up by its ID.
func (c *BadgeCatalog) FindByID(id string) (Badge, bool) {
	for _, b := range c.badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// IsEligible evaluates the badge criteria against a stats snapshot.
// Unknown criteria types are never eligible.
func (c *BadgeCatalog) IsEligible(badge Badge, stats UserStatsSnapshot) bool {
	switch badge.Criteria.Type {
	case CriteriaPostCount:
		return stats.PostCount >= badge.Criteria.Value
	case CriteriaCommentCount:
		return stats.CommentCount >= badge.Criteria.Value
	case CriteriaCommunityPostCount:
		return stats.CommunityPostCount >= badge.Criteria.Value
	case CriteriaStreak:
		return stats.MaxStreak >= badge.Criteria.Value
	case CriteriaPoints:
		return stats.Points >= badge.Criteria.Value
	case CriteriaProfileComplete:
		return stats.ProfileComplete
	default:
		return false
	}
}
