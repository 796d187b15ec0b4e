// Package fixtures generates synthetic directory data: the "scrape" batches,
// the startup seed listing and the demo leaderboard. Nothing here reflects
// real crawling or ranking.
package fixtures

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"bizinteltz/api/models"
	"bizinteltz/api/utils"
)

const (
	ScrapeBatchSize     = 3
	DefaultScrapeRegion = "Dar es Salaam"
	ScrapeSector        = "Services"
	leaderboardSize     = 10
	highlightSize       = 3
)

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: time.Now}
}

// ScrapeBatch returns three unsaved listings attributed to source.
func (g *Generator) ScrapeBatch(source, region string) []models.Business {
	if region == "" {
		region = DefaultScrapeRegion
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.Business, 0, ScrapeBatchSize)
	for i := 0; i < ScrapeBatchSize; i++ {
		score := 50 + g.rng.Intn(50)
		out = append(out, models.Business{
			Name:         fmt.Sprintf("%s Business %d", source, g.rng.Intn(1000)),
			Region:       region,
			Sector:       ScrapeSector,
			DigitalScore: &score,
		})
	}
	return out
}

// SeedBusiness is the listing stored at startup when the directory is empty.
func (g *Generator) SeedBusiness() models.Business {
	score := 75
	return models.Business{
		Name:         "Sample Restaurant & Cafe",
		Region:       "Dar es Salaam",
		Sector:       "Services",
		DigitalScore: &score,
		Formality:    "Formal",
		Premium:      true,
		Verified:     true,
		Claimed:      true,
	}
}

// SampleDirectory is shown on the leaderboard while the directory is empty.
// The listings are never written to the store.
func (g *Generator) SampleDirectory() []models.Business {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	sample := func(id, name, region, sector string, score int, premium, verified, claimed bool) models.Business {
		return models.Business{
			ID:           id,
			BIID:         utils.GenerateBIID(now, g.rng),
			Name:         name,
			Region:       region,
			Sector:       sector,
			DigitalScore: &score,
			Premium:      premium,
			Verified:     verified,
			Claimed:      claimed,
		}
	}
	return []models.Business{
		sample("sample-1", "TechHub Dar es Salaam", "Dar es Salaam", "Technology", 92, true, true, true),
		sample("sample-2", "Kilimanjaro Coffee Co", "Arusha", "Agriculture", 88, true, true, true),
		sample("sample-3", "Zanzibar Tours & Travel", "Zanzibar", "Tourism", 85, false, true, true),
		sample("sample-4", "Serengeti Safari Lodge", "Arusha", "Tourism", 82, true, false, true),
		sample("sample-5", "Mwanza Fish Market", "Mwanza", "Trade", 78, false, true, false),
	}
}

// Leaderboard ranks the first ten listings in the given order and decorates
// them with random engagement figures.
func (g *Generator) Leaderboard(list []models.Business) models.Leaderboard {
	if len(list) > leaderboardSize {
		list = list[:leaderboardSize]
	}

	g.mu.Lock()
	entries := make([]models.LeaderboardEntry, 0, len(list))
	for i, b := range list {
		entries = append(entries, g.entryLocked(i, b))
	}
	now := g.now()
	g.mu.Unlock()

	highlight := entries
	if len(highlight) > highlightSize {
		highlight = highlight[:highlightSize]
	}

	return models.Leaderboard{
		OverallLeaders:     entries,
		RegionalLeaders:    []models.LeaderboardEntry{},
		SectorLeaders:      []models.LeaderboardEntry{},
		TrendingBusinesses: highlight,
		FastestGrowing:     highlight,
		MostViewed:         highlight,
		TopRated:           highlight,
		RecentBadgeWinners: badgeWinners(now),
	}
}

func (g *Generator) entryLocked(i int, b models.Business) models.LeaderboardEntry {
	region := b.Region
	if region == "" {
		region = "Unknown"
	}
	sector := b.Sector
	if sector == "" {
		sector = "General"
	}
	score := b.Score()
	if b.DigitalScore == nil {
		score = 60 + g.rng.Intn(40)
	}

	return models.LeaderboardEntry{
		ID:                    b.ID,
		Name:                  b.Name,
		BIID:                  b.BIID,
		Region:                region,
		Sector:                sector,
		DigitalScore:          score,
		Rank:                  i + 1,
		PreviousRank:          max(1, i+g.rng.Intn(3)-1),
		RankChange:            g.rng.Intn(11) - 5,
		ViewsCount:            100 + g.rng.Intn(5000),
		ReviewsCount:          5 + g.rng.Intn(50),
		AverageRating:         round1(3.5 + g.rng.Float64()*1.5),
		Badges:                []string{},
		BuzzScore:             65 + g.rng.Intn(35),
		MarketSharePercentage: round1(2 + g.rng.Float64()*13),
		SentimentScore:        75 + g.rng.Intn(25),
		GrowthRate:            round1(g.rng.Float64()*30 - 5),
		Premium:               b.Premium,
		Verified:              b.Verified,
		Claimed:               b.Claimed,
	}
}

func badgeWinners(now time.Time) []models.BadgeWinner {
	return []models.BadgeWinner{
		{
			BusinessID:   "sample-1",
			BusinessName: "TechHub Dar es Salaam",
			Badge: models.Badge{
				ID:          "innovation-leader",
				Name:        "Innovation Leader",
				Icon:        "star",
				Color:       "#f59e0b",
				Description: "Leading innovation in technology sector",
				EarnedDate:  now,
				Category:    "achievement",
			},
			EarnedDate: now,
			Region:     "Dar es Salaam",
			Sector:     "Technology",
		},
		{
			BusinessID:   "sample-2",
			BusinessName: "Kilimanjaro Coffee Co",
			Badge: models.Badge{
				ID:          "quality-excellence",
				Name:        "Quality Excellence",
				Icon:        "award",
				Color:       "#10b981",
				Description: "Exceptional product quality standards",
				EarnedDate:  now,
				Category:    "quality",
			},
			EarnedDate: now,
			Region:     "Arusha",
			Sector:     "Agriculture",
		},
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
