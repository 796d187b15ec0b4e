package store

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizinteltz/api/models"
	"bizinteltz/api/utils"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrClaimNotFound    = errors.New("claim not found")
)

// maxBIIDAttempts bounds collision retries; 9000 suffixes exist per day.
const maxBIIDAttempts = 64

// DirectoryStore holds businesses and the records that hang off them
// (reviews, claims, leads, media). All access goes through one RWMutex so that
// multi-step changes such as "append claim and mark business claimed" are
// atomic. Callers always receive copies.
type DirectoryStore struct {
	mu sync.RWMutex

	businesses map[string]*models.Business
	order      []string
	byBIID     map[string]string

	reviews    map[string][]models.Review
	claims     []*models.Claim
	claimIndex map[string]int
	leads      []models.Lead
	media      map[string][]string

	now func() time.Time
	rng *rand.Rand
	log *zap.Logger
}

type Option func(*DirectoryStore)

// WithClock overrides the time source used for timestamps and BI IDs.
func WithClock(now func() time.Time) Option {
	return func(s *DirectoryStore) { s.now = now }
}

// WithRand overrides the random source used for BI ID suffixes.
func WithRand(rng *rand.Rand) Option {
	return func(s *DirectoryStore) { s.rng = rng }
}

func NewDirectoryStore(log *zap.Logger, opts ...Option) *DirectoryStore {
	s := &DirectoryStore{
		businesses: make(map[string]*models.Business),
		byBIID:     make(map[string]string),
		reviews:    make(map[string][]models.Review),
		claimIndex: make(map[string]int),
		media:      make(map[string][]string),
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		log:        log.Named("directory"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBusiness stores a new listing from a validated create payload.
func (s *DirectoryStore) CreateBusiness(in models.BusinessCreate) models.Business {
	b := models.Business{
		Name:         in.Name,
		Region:       in.Region,
		Sector:       in.Sector,
		DigitalScore: in.DigitalScore,
		Formality:    in.Formality,
		Premium:      in.Premium,
		Verified:     in.Verified,
		Claimed:      in.Claimed,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.insertLocked(b)
	s.log.Info("business created", zap.String("id", created.ID), zap.String("bi_id", created.BIID))
	return created
}

// InsertBusinesses stores pre-built listings (seed and scrape batches). Any
// ID or BI ID on the input is replaced.
func (s *DirectoryStore) InsertBusinesses(list []models.Business) []models.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Business, 0, len(list))
	for _, b := range list {
		out = append(out, s.insertLocked(b))
	}
	return out
}

func (s *DirectoryStore) insertLocked(b models.Business) models.Business {
	now := s.now()
	b = b.Clone()
	b.ID = uuid.NewString()
	b.BIID = s.uniqueBIIDLocked(now)
	b.CreatedAt = now
	b.UpdatedAt = now

	s.businesses[b.ID] = &b
	s.order = append(s.order, b.ID)
	s.byBIID[b.BIID] = b.ID
	return b.Clone()
}

func (s *DirectoryStore) uniqueBIIDLocked(now time.Time) string {
	var id string
	for i := 0; i < maxBIIDAttempts; i++ {
		id = utils.GenerateBIID(now, s.rng)
		if _, taken := s.byBIID[id]; !taken {
			return id
		}
	}
	s.log.Warn("could not find a free BI ID, accepting duplicate", zap.String("bi_id", id))
	return id
}

func (s *DirectoryStore) GetBusiness(id string) (models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.businesses[id]
	if !ok {
		return models.Business{}, ErrBusinessNotFound
	}
	return b.Clone(), nil
}

// UpdateBusiness applies a partial update; fields absent from upd are kept.
func (s *DirectoryStore) UpdateBusiness(id string, upd models.BusinessUpdate) (models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.businesses[id]
	if !ok {
		return models.Business{}, ErrBusinessNotFound
	}
	upd.ApplyTo(b)
	b.UpdatedAt = s.now()
	return b.Clone(), nil
}

// FeatureBusiness marks a listing premium.
func (s *DirectoryStore) FeatureBusiness(id string) (models.Business, error) {
	premium := true
	return s.UpdateBusiness(id, models.BusinessUpdate{Premium: &premium})
}

// DeleteBusiness removes a listing. Reviews, claims, leads and media that
// reference it are left in place.
func (s *DirectoryStore) DeleteBusiness(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.businesses[id]
	if !ok {
		return ErrBusinessNotFound
	}
	delete(s.businesses, id)
	if s.byBIID[b.BIID] == id {
		delete(s.byBIID, b.BIID)
	}
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Info("business deleted", zap.String("id", id))
	return nil
}

// ListBusinesses returns every listing in insertion order.
func (s *DirectoryStore) ListBusinesses() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Business, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.businesses[id].Clone())
	}
	return out
}

func (s *DirectoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// FindByBIID does an exact, case-sensitive lookup.
func (s *DirectoryStore) FindByBIID(biID string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if b := s.businesses[id]; b.BIID == biID {
			return b.Clone(), true
		}
	}
	return models.Business{}, false
}

func (s *DirectoryStore) AddReview(r models.Review) models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnUnknownLocked("review", r.BusinessID)
	r.CreatedAt = s.now()
	s.reviews[r.BusinessID] = append(s.reviews[r.BusinessID], r)
	return r
}

func (s *DirectoryStore) Reviews(businessID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Review, len(s.reviews[businessID]))
	copy(out, s.reviews[businessID])
	return out
}

// SubmitClaim records a claim and marks the referenced business claimed in
// the same critical section. Approval is a separate step.
func (s *DirectoryStore) SubmitClaim(req models.ClaimRequest) models.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Claim{
		ID:          uuid.NewString(),
		BusinessID:  req.BusinessID,
		OwnerName:   req.OwnerName,
		Contact:     req.Contact,
		SubmittedAt: s.now(),
	}
	s.claimIndex[c.ID] = len(s.claims)
	s.claims = append(s.claims, c)

	if b, ok := s.businesses[req.BusinessID]; ok {
		b.Claimed = true
		b.UpdatedAt = c.SubmittedAt
	} else {
		s.warnUnknownLocked("claim", req.BusinessID)
	}

	s.log.Info("claim submitted", zap.String("claim_id", c.ID), zap.String("business_id", c.BusinessID))
	return cloneClaim(c)
}

// ApproveClaim marks a claim approved and the business verified and claimed.
// Approving an already approved claim changes nothing.
func (s *DirectoryStore) ApproveClaim(claimID string) (models.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.claimIndex[claimID]
	if !ok {
		return models.Claim{}, ErrClaimNotFound
	}
	c := s.claims[idx]
	if c.Approved {
		return cloneClaim(c), nil
	}

	now := s.now()
	c.Approved = true
	c.ApprovedAt = &now
	if b, ok := s.businesses[c.BusinessID]; ok {
		b.Verified = true
		b.Claimed = true
		b.UpdatedAt = now
	}

	s.log.Info("claim approved", zap.String("claim_id", c.ID), zap.String("business_id", c.BusinessID))
	return cloneClaim(c), nil
}

// Claims returns all claims in submission order.
func (s *DirectoryStore) Claims() []models.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		out = append(out, cloneClaim(c))
	}
	return out
}

func (s *DirectoryStore) AddLead(l models.Lead) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnUnknownLocked("lead", l.BusinessID)
	l.CreatedAt = s.now()
	s.leads = append(s.leads, l)
	return l
}

func (s *DirectoryStore) Leads() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// AddMedia records an uploaded filename for a business. File contents are
// not kept.
func (s *DirectoryStore) AddMedia(businessID, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnUnknownLocked("media", businessID)
	s.media[businessID] = append(s.media[businessID], filename)
}

func (s *DirectoryStore) Media(businessID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.media[businessID]))
	copy(out, s.media[businessID])
	return out
}

// Stats aggregates the admin dashboard counters.
func (s *DirectoryStore) Stats() models.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.AdminStats{
		Status:          "Admin dashboard",
		TotalClaims:     len(s.claims),
		Leads:           len(s.leads),
		TotalBusinesses: len(s.businesses),
	}
	for _, c := range s.claims {
		if !c.Approved {
			stats.PendingClaims++
		}
	}
	for _, b := range s.businesses {
		if b.Verified {
			stats.VerifiedBusinesses++
		}
	}
	return stats
}

// warnUnknownLocked logs records that point at a business that does not
// exist. They are still accepted.
func (s *DirectoryStore) warnUnknownLocked(kind, businessID string) {
	if _, ok := s.businesses[businessID]; !ok {
		s.log.Warn("record references unknown business", zap.String("kind", kind), zap.String("business_id", businessID))
	}
}

func cloneClaim(c *models.Claim) models.Claim {
	out := *c
	if c.ApprovedAt != nil {
		t := *c.ApprovedAt
		out.ApprovedAt = &t
	}
	return out
}
