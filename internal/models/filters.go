package models

import "time"

// SearchFilter is the structured predicate derived from a free-text search
// phrase. Every field is optional; the zero value matches everything.
// DateFrom is inclusive, DateTo exclusive.
type SearchFilter struct {
	DateFrom             *time.Time `json:"dateFrom,omitempty"`
	DateTo               *time.Time `json:"dateTo,omitempty"`
	LocationSubstring    string     `json:"locationSubstring,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	PersonReference      string     `json:"personReference,omitempty"`
	DescriptionSubstring string     `json:"descriptionSubstring,omitempty"`
}

// IsEmpty reports whether no field of the predicate is set.
func (f SearchFilter) IsEmpty() bool {
	return f.DateFrom == nil && f.DateTo == nil &&
		f.LocationSubstring == "" && len(f.Tags) == 0 &&
		f.PersonReference == "" && f.DescriptionSubstring == ""
}

// SearchResponse pairs the matched photos with the filter the parser
// derived, so clients can show how the phrase was understood.
type SearchResponse struct {
	Filter   SearchFilter `json:"filter"`
	Photos   []Photo      `json:"photos"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

// SearchRequest represents query parameters for the search endpoints
type SearchRequest struct {
	Query    string  `form:"q"`
	RadiusKm float64 `form:"radiusKm"` // cluster endpoint only
	Page     int     `form:"page"`
	PageSize int     `form:"pageSize"`
}

// TimelineRequest represents query parameters for the timeline endpoint
type TimelineRequest struct {
	Year int `form:"year"`
}

// PhotoFilter represents filter parameters for the plain photo listing
type PhotoFilter struct {
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
	Location  string `form:"location"`
	Country   string `form:"country"`
	HasGeo    bool   `form:"hasGeo"` // only photos with coordinates
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
