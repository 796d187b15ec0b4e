package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizinteltz/api/models"
)

func names(list []models.Business) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name)
	}
	return out
}

func seedSearchFixture(t *testing.T) *DirectoryStore {
	t.Helper()
	s := newTestDirectory(t)
	s.CreateBusiness(models.BusinessCreate{Name: "Arusha Safari Co", Region: "Arusha", Sector: "Tourism", DigitalScore: intPtr(80)})
	s.CreateBusiness(models.BusinessCreate{Name: "Arusha Grain Traders", Region: "Arusha", Sector: "Trade", DigitalScore: intPtr(40)})
	s.CreateBusiness(models.BusinessCreate{Name: "Mwanza Lake Tours", Region: "Mwanza", Sector: "Tourism", Premium: true})
	s.CreateBusiness(models.BusinessCreate{Name: "Mwanza Fish Market", Region: "Mwanza", Sector: "Trade", DigitalScore: intPtr(78), Verified: true})
	return s
}

func TestSearch_NoFiltersReturnsAll(t *testing.T) {
	s := seedSearchFixture(t)
	assert.Len(t, s.Search(SearchQuery{}), 4)
}

func TestSearch_RegionAndSectorConjunction(t *testing.T) {
	s := seedSearchFixture(t)

	got := s.Search(SearchQuery{Region: "Arusha", Sector: "Tourism"})
	assert.Equal(t, []string{"Arusha Safari Co"}, names(got))

	got = s.Search(SearchQuery{Region: "Mwanza", Sector: "Trade"})
	assert.Equal(t, []string{"Mwanza Fish Market"}, names(got))

	assert.Empty(t, s.Search(SearchQuery{Region: "arusha"}), "region match is exact")
}

func TestSearch_TextIsCaseInsensitiveSubstring(t *testing.T) {
	s := seedSearchFixture(t)
	got := s.Search(SearchQuery{Text: "mWaNzA"})
	assert.ElementsMatch(t, []string{"Mwanza Lake Tours", "Mwanza Fish Market"}, names(got))
}

func TestSearch_MinScoreTreatsMissingAsZero(t *testing.T) {
	s := seedSearchFixture(t)

	got := s.Search(SearchQuery{MinScore: intPtr(75)})
	assert.ElementsMatch(t, []string{"Arusha Safari Co", "Mwanza Fish Market"}, names(got))

	got = s.Search(SearchQuery{MinScore: intPtr(0)})
	assert.Len(t, got, 4, "a zero threshold keeps unscored businesses")

	got = s.Search(SearchQuery{MinScore: intPtr(1)})
	assert.NotContains(t, names(got), "Mwanza Lake Tours")
}

func TestSearch_FlagFilters(t *testing.T) {
	s := seedSearchFixture(t)
	assert.Equal(t, []string{"Mwanza Lake Tours"}, names(s.Search(SearchQuery{PremiumOnly: true})))
	assert.Equal(t, []string{"Mwanza Fish Market"}, names(s.Search(SearchQuery{VerifiedOnly: true})))
	assert.Empty(t, s.Search(SearchQuery{PremiumOnly: true, VerifiedOnly: true}))
}

func TestSearch_ExactBIID(t *testing.T) {
	s := seedSearchFixture(t)
	target := s.ListBusinesses()[2]

	got := s.Search(SearchQuery{BIID: target.BIID})
	require.Len(t, got, 1)
	assert.Equal(t, target.ID, got[0].ID)

	assert.Empty(t, s.Search(SearchQuery{BIID: target.BIID + "0"}))
}

func TestSearch_PremiumDominatesVerified(t *testing.T) {
	s := newTestDirectory(t)
	s.CreateBusiness(models.BusinessCreate{Name: "plain"})
	s.CreateBusiness(models.BusinessCreate{Name: "verified only", Verified: true})
	s.CreateBusiness(models.BusinessCreate{Name: "premium only", Premium: true})
	s.CreateBusiness(models.BusinessCreate{Name: "both", Premium: true, Verified: true})

	got := s.Search(SearchQuery{})
	assert.Equal(t, []string{"both", "premium only", "verified only", "plain"}, names(got))
}

func TestSortByPlacement_StableTies(t *testing.T) {
	list := []models.Business{
		{Name: "a"},
		{Name: "b", Premium: true},
		{Name: "c"},
		{Name: "d", Premium: true},
		{Name: "e", Verified: true},
	}
	SortByPlacement(list)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, names(list))
}

func TestSearchQuery_Matches(t *testing.T) {
	b := &models.Business{Name: "Zanzibar Tours", Region: "Zanzibar", Sector: "Tourism", DigitalScore: intPtr(85), Verified: true}

	tests := []struct {
		name  string
		query SearchQuery
		want  bool
	}{
		{"empty query", SearchQuery{}, true},
		{"text hit", SearchQuery{Text: "tour"}, true},
		{"text miss", SearchQuery{Text: "safari"}, false},
		{"score at threshold", SearchQuery{MinScore: intPtr(85)}, true},
		{"score below threshold", SearchQuery{MinScore: intPtr(86)}, false},
		{"premium required", SearchQuery{PremiumOnly: true}, false},
		{"verified required", SearchQuery{VerifiedOnly: true}, true},
		{"all criteria", SearchQuery{Text: "zan", Region: "Zanzibar", Sector: "Tourism", MinScore: intPtr(50), VerifiedOnly: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(b))
		})
	}
}
