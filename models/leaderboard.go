package models

import "time"

// LeaderboardEntry carries synthetic ranking figures; only the identity and
// flag fields come from the directory.
type LeaderboardEntry struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	BIID                  string   `json:"bi_id"`
	Region                string   `json:"region"`
	Sector                string   `json:"sector"`
	DigitalScore          int      `json:"digital_score"`
	Rank                  int      `json:"rank"`
	PreviousRank          int      `json:"previous_rank"`
	RankChange            int      `json:"rank_change"`
	ViewsCount            int      `json:"views_count"`
	ReviewsCount          int      `json:"reviews_count"`
	AverageRating         float64  `json:"average_rating"`
	Badges                []string `json:"badges"`
	BuzzScore             int      `json:"buzz_score"`
	MarketSharePercentage float64  `json:"market_share_percentage"`
	SentimentScore        int      `json:"sentiment_score"`
	GrowthRate            float64  `json:"growth_rate"`
	Premium               bool     `json:"premium"`
	Verified              bool     `json:"verified"`
	Claimed               bool     `json:"claimed"`
}

type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	EarnedDate  time.Time `json:"earned_date"`
	Category    string    `json:"category"`
}

type BadgeWinner struct {
	BusinessID   string    `json:"business_id"`
	BusinessName string    `json:"business_name"`
	Badge        Badge     `json:"badge"`
	EarnedDate   time.Time `json:"earned_date"`
	Region       string    `json:"region"`
	Sector       string    `json:"sector"`
}

type Leaderboard struct {
	OverallLeaders     []LeaderboardEntry `json:"overall_leaders"`
	RegionalLeaders    []LeaderboardEntry `json:"regional_leaders"`
	SectorLeaders      []LeaderboardEntry `json:"sector_leaders"`
	TrendingBusinesses []LeaderboardEntry `json:"trending_businesses"`
	FastestGrowing     []LeaderboardEntry `json:"fastest_growing"`
	MostViewed         []LeaderboardEntry `json:"most_viewed"`
	TopRated           []LeaderboardEntry `json:"top_rated"`
	RecentBadgeWinners []BadgeWinner      `json:"recent_badge_winners"`
}
