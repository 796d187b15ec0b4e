package models

import "time"

// Business is a directory listing. ID and BIID are always assigned by the store.
type Business struct {
	ID           string    `json:"id"`
	BIID         string    `json:"bi_id"`
	Name         string    `json:"name"`
	Region       string    `json:"region,omitempty"`
	Sector       string    `json:"sector,omitempty"`
	DigitalScore *int      `json:"digital_score,omitempty"`
	Formality    string    `json:"formality,omitempty"`
	Premium      bool      `json:"premium"`
	Verified     bool      `json:"verified"`
	Claimed      bool      `json:"claimed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Score returns the digital score, treating a missing score as 0.
func (b Business) Score() int {
	if b.DigitalScore == nil {
		return 0
	}
	return *b.DigitalScore
}

// Clone returns a copy that shares no memory with b.
func (b Business) Clone() Business {
	if b.DigitalScore != nil {
		s := *b.DigitalScore
		b.DigitalScore = &s
	}
	return b
}

// BusinessCreate is the accepted shape of POST /business.
type BusinessCreate struct {
	Name         string `json:"name"`
	Region       string `json:"region"`
	Sector       string `json:"sector"`
	DigitalScore *int   `json:"digital_score"`
	Formality    string `json:"formality"`
	Premium      bool   `json:"premium"`
	Verified     bool   `json:"verified"`
	Claimed      bool   `json:"claimed"`
}

// BusinessUpdate is a partial update: nil fields are left untouched.
type BusinessUpdate struct {
	Name         *string `json:"name"`
	Region       *string `json:"region"`
	Sector       *string `json:"sector"`
	DigitalScore *int    `json:"digital_score"`
	Formality    *string `json:"formality"`
	Premium      *bool   `json:"premium"`
	Verified     *bool   `json:"verified"`
	Claimed      *bool   `json:"claimed"`
}

// ApplyTo overwrites the fields of b that are set on u.
func (u BusinessUpdate) ApplyTo(b *Business) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Region != nil {
		b.Region = *u.Region
	}
	if u.Sector != nil {
		b.Sector = *u.Sector
	}
	if u.DigitalScore != nil {
		s := *u.DigitalScore
		b.DigitalScore = &s
	}
	if u.Formality != nil {
		b.Formality = *u.Formality
	}
	if u.Premium != nil {
		b.Premium = *u.Premium
	}
	if u.Verified != nil {
		b.Verified = *u.Verified
	}
	if u.Claimed != nil {
		b.Claimed = *u.Claimed
	}
}

// BIVerification is the body of GET /verify-bi/{bi_id}.
type BIVerification struct {
	Valid            bool      `json:"valid"`
	Business         *Business `json:"business,omitempty"`
	Message          string    `json:"message,omitempty"`
	Status           string    `json:"status,omitempty"`
	VerificationDate time.Time `json:"verification_date"`
}

type VerificationRequest struct {
	BIID             string `json:"bi_id" binding:"required"`
	RequesterName    string `json:"requester_name"`
	RequesterContact string `json:"requester_contact"`
	Purpose          string `json:"purpose"`
}

type VerificationAck struct {
	Status       string    `json:"status"`
	BIID         string    `json:"bi_id"`
	BusinessName string    `json:"business_name"`
	Verified     bool      `json:"verified"`
	Claimed      bool      `json:"claimed"`
	RequestID    string    `json:"request_id"`
	Timestamp    time.Time `json:"timestamp"`
}

type ScrapeRequest struct {
	Source string `json:"source" form:"source" binding:"required"`
	Region string `json:"region" form:"region"`
}
