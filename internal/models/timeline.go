package models

import "time"

// TimeBucket aggregates the photos of one calendar month within the
// requested year. Month is the first instant of that month (UTC).
// Locations and Countries hold the distinct non-empty labels seen, in
// first-seen order.
type TimeBucket struct {
	Month      time.Time `json:"month"`
	Photos     []Photo   `json:"photos"`
	Locations  []string  `json:"locations"`
	Countries  []string  `json:"countries"`
	PhotoCount int       `json:"photoCount"`
}

// TimelineResponse represents the timeline endpoint payload
type TimelineResponse struct {
	Year    int          `json:"year"`
	Buckets []TimeBucket `json:"buckets"`
}
