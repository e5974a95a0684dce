package models

import "time"

// DateRange spans the earliest and latest capture time within a cluster.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PhotoCluster is a group of geo-tagged photos within a radius of the
// cluster's seed photo. Photos[0] is the seed; the cluster's display
// location and coordinates are taken from it, not from a centroid.
type PhotoCluster struct {
	ID        string    `json:"id"`
	Location  string    `json:"location,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Photos    []Photo   `json:"photos"`
	DateRange DateRange `json:"dateRange"`
}

// ClustersResponse represents the cluster search response payload
type ClustersResponse struct {
	Filter   SearchFilter   `json:"filter"`
	Clusters []PhotoCluster `json:"clusters"`
	RadiusKm float64        `json:"radiusKm"`
}
