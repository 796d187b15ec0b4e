package models

import "time"

type Review struct {
	BusinessID string    `json:"business_id" binding:"required"`
	Rating     int       `json:"rating" binding:"required,min=1,max=5"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ClaimRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
	OwnerName  string `json:"owner_name" binding:"required"`
	Contact    string `json:"contact" binding:"required"`
}

// Claim is addressed by its ID, which is stable for the life of the process.
type Claim struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"business_id"`
	OwnerName   string     `json:"owner_name"`
	Contact     string     `json:"contact"`
	Approved    bool       `json:"approved"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

type Lead struct {
	BusinessID string    `json:"business_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	Message    string    `json:"message" binding:"required"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	Status             string `json:"status"`
	TotalClaims        int    `json:"total_claims"`
	PendingClaims      int    `json:"pending_claims"`
	Leads              int    `json:"leads"`
	VerifiedBusinesses int    `json:"verified_businesses"`
	TotalBusinesses    int    `json:"total_businesses"`
}
