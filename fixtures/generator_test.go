package fixtures

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizinteltz/api/models"
	"bizinteltz/api/utils"
)

func TestScrapeBatch(t *testing.T) {
	g := NewGenerator(1)

	for i := 0; i < 50; i++ {
		batch := g.ScrapeBatch("Google Maps", "")
		require.Len(t, batch, ScrapeBatchSize)
		for _, b := range batch {
			assert.True(t, strings.HasPrefix(b.Name, "Google Maps Business "), b.Name)
			assert.Equal(t, "Services", b.Sector)
			assert.Equal(t, "Dar es Salaam", b.Region)
			require.NotNil(t, b.DigitalScore)
			assert.GreaterOrEqual(t, *b.DigitalScore, 50)
			assert.LessOrEqual(t, *b.DigitalScore, 99)
			assert.False(t, b.Premium || b.Verified || b.Claimed)
			assert.Empty(t, b.ID)
		}
	}

	batch := g.ScrapeBatch("yellowpages", "Mbeya")
	for _, b := range batch {
		assert.Equal(t, "Mbeya", b.Region)
	}
}

func TestSeedBusiness(t *testing.T) {
	b := NewGenerator(1).SeedBusiness()
	assert.True(t, b.Premium && b.Verified && b.Claimed)
	assert.Equal(t, 75, b.Score())
	assert.Equal(t, "Formal", b.Formality)
}

func TestSampleDirectory(t *testing.T) {
	samples := NewGenerator(1).SampleDirectory()
	require.Len(t, samples, 5)
	for i, b := range samples {
		assert.Equal(t, fmt.Sprintf("sample-%d", i+1), b.ID)
		assert.True(t, utils.IsBIID(b.BIID), b.BIID)
	}
}

func TestLeaderboard(t *testing.T) {
	g := NewGenerator(3)

	list := make([]models.Business, 0, 12)
	for i := 0; i < 12; i++ {
		list = append(list, models.Business{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("biz %d", i)})
	}
	score := 91
	list[0].DigitalScore = &score
	list[0].Region = "Arusha"
	list[0].Premium = true

	board := g.Leaderboard(list)

	require.Len(t, board.OverallLeaders, 10)
	assert.Len(t, board.TrendingBusinesses, 3)
	assert.Len(t, board.TopRated, 3)
	assert.NotNil(t, board.RegionalLeaders)
	assert.Len(t, board.RecentBadgeWinners, 2)

	first := board.OverallLeaders[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 91, first.DigitalScore)
	assert.Equal(t, "Arusha", first.Region)
	assert.True(t, first.Premium)

	for i, e := range board.OverallLeaders {
		assert.Equal(t, i+1, e.Rank)
		assert.GreaterOrEqual(t, e.PreviousRank, 1)
		assert.GreaterOrEqual(t, e.DigitalScore, 60)
		assert.GreaterOrEqual(t, e.AverageRating, 3.5)
		assert.LessOrEqual(t, e.AverageRating, 5.0)
		assert.GreaterOrEqual(t, e.RankChange, -5)
		assert.LessOrEqual(t, e.RankChange, 5)
		if i > 0 {
			assert.Equal(t, "Unknown", e.Region)
			assert.Equal(t, "General", e.Sector)
		}
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	board := NewGenerator(1).Leaderboard(nil)
	assert.Empty(t, board.OverallLeaders)
	assert.Empty(t, board.TrendingBusinesses)
}
