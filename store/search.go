package store

import (
	"sort"
	"strings"

	"bizinteltz/api/models"
)

// SearchQuery holds the optional /search criteria. Zero values mean "no
// filter"; all set criteria must match.
type SearchQuery struct {
	Text         string
	Region       string
	Sector       string
	MinScore     *int
	PremiumOnly  bool
	VerifiedOnly bool
	BIID         string
}

// Matches reports whether b satisfies every criterion in q.
func (q SearchQuery) Matches(b *models.Business) bool {
	if q.Text != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(q.Text)) {
		return false
	}
	if q.Region != "" && b.Region != q.Region {
		return false
	}
	if q.Sector != "" && b.Sector != q.Sector {
		return false
	}
	if q.MinScore != nil && b.Score() < *q.MinScore {
		return false
	}
	if q.PremiumOnly && !b.Premium {
		return false
	}
	if q.VerifiedOnly && !b.Verified {
		return false
	}
	if q.BIID != "" && b.BIID != q.BIID {
		return false
	}
	return true
}

// SortByPlacement orders premium listings first and, within each group,
// verified listings first. The sort is stable so ties keep their input order.
func SortByPlacement(list []models.Business) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Premium != b.Premium {
			return a.Premium
		}
		if a.Verified != b.Verified {
			return a.Verified
		}
		return false
	})
}

// Search returns every matching business, ordered by placement. There is no
// pagination.
func (s *DirectoryStore) Search(q SearchQuery) []models.Business {
	s.mu.RLock()
	results := make([]models.Business, 0)
	for _, id := range s.order {
		if b := s.businesses[id]; q.Matches(b) {
			results = append(results, b.Clone())
		}
	}
	s.mu.RUnlock()

	SortByPlacement(results)
	return results
}
