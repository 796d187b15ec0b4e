package models

import "time"

const (
	ActionView  = "view"
	ActionClick = "click"
)

// TrackRequest is the body of POST /track. Unknown actions are accepted and
// ignored by the counters.
type TrackRequest struct {
	BusinessID string `json:"business_id"`
	Action     string `json:"action"`
}

// AnalyticsEvent is the raw form of a tracked action, as shipped to the event sink.
type AnalyticsEvent struct {
	EventID    string    `json:"eventId"`
	BusinessID string    `json:"businessId"`
	Action     string    `json:"action"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
	Timestamp  time.Time `json:"timestamp"`
}

type AnalyticsCounts struct {
	Views  int64 `json:"views"`
	Clicks int64 `json:"clicks"`
}
