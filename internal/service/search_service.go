package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danwu/photo-search-go/internal/models"
	"github.com/danwu/photo-search-go/internal/repository"
	"github.com/danwu/photo-search-go/internal/search"
	"github.com/danwu/photo-search-go/internal/spatial"
	"github.com/danwu/photo-search-go/internal/timeline"
)

// clusterInputLimit bounds how many photos feed the O(n²) clustering pass.
const clusterInputLimit = 1000

// SearchService orchestrates free-text photo search: parse the phrase,
// resolve the person reference, query the store, and optionally cluster
// or bucket the result set.
type SearchService struct {
	photos *repository.PhotoRepository
	people *repository.PersonRepository
	parser *search.Parser
}

// NewSearchService creates a new search service
func NewSearchService(photos *repository.PhotoRepository, people *repository.PersonRepository) *SearchService {
	return &SearchService{
		photos: photos,
		people: people,
		parser: search.NewParser(),
	}
}

// Search parses the query and returns matching photos with pagination
func (s *SearchService) Search(query string, page, pageSize int) (*models.SearchResponse, error) {
	filter := s.parser.Parse(query)

	faceGroupID, err := s.resolvePerson(filter)
	if err != nil {
		return nil, err
	}

	photos, total, err := s.photos.Search(filter, faceGroupID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}

	return &models.SearchResponse{
		Filter:   filter,
		Photos:   photos,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// SearchClusters runs a search and groups the geo-tagged results into
// proximity clusters of the given radius (km; <= 0 means the default).
func (s *SearchService) SearchClusters(query string, radiusKm float64) (*models.ClustersResponse, error) {
	if radiusKm <= 0 {
		radiusKm = spatial.DefaultClusterRadiusKm
	}

	filter := s.parser.Parse(query)

	faceGroupID, err := s.resolvePerson(filter)
	if err != nil {
		return nil, err
	}

	photos, _, err := s.photos.Search(filter, faceGroupID, 1, clusterInputLimit)
	if err != nil {
		return nil, fmt.Errorf("cluster search failed: %w", err)
	}

	// Bound the quadratic pass to photos that carry location data
	geoTagged := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if p.HasCoordinates() {
			geoTagged = append(geoTagged, p)
		}
	}

	groups := spatial.ClusterByProximity(geoTagged, radiusKm)

	clusters := make([]models.PhotoCluster, 0, len(groups))
	for _, group := range groups {
		clusters = append(clusters, buildCluster(group))
	}

	return &models.ClustersResponse{
		Filter:   filter,
		Clusters: clusters,
		RadiusKm: radiusKm,
	}, nil
}

// Timeline buckets the year's photos by calendar month
func (s *SearchService) Timeline(year int) (*models.TimelineResponse, error) {
	photos, err := s.photos.ListByYear(year)
	if err != nil {
		return nil, fmt.Errorf("timeline query failed: %w", err)
	}

	buckets := timeline.AggregateByMonth(photos, year)
	if buckets == nil {
		buckets = []models.TimeBucket{}
	}

	return &models.TimelineResponse{
		Year:    year,
		Buckets: buckets,
	}, nil
}

// resolvePerson maps the raw person token to a face group id. A token
// that matches nobody drops the person constraint instead of failing the
// search.
func (s *SearchService) resolvePerson(filter models.SearchFilter) (string, error) {
	if filter.PersonReference == "" {
		return "", nil
	}

	person, err := s.people.ResolveReference(filter.PersonReference)
	if err != nil {
		return "", fmt.Errorf("person resolution failed: %w", err)
	}
	if person == nil {
		return "", nil
	}

	return person.FaceGroupID, nil
}

// buildCluster serializes one greedy cluster. The seed (first photo)
// supplies the display location and coordinates. The date range spans the
// members' capture times; photos without one count as "now".
func buildCluster(group []models.Photo) models.PhotoCluster {
	seed := group[0]

	now := time.Now().UTC()
	var start, end time.Time
	for i, p := range group {
		t := now
		if p.DateTaken != nil {
			t = *p.DateTaken
		}
		if i == 0 || t.Before(start) {
			start = t
		}
		if i == 0 || t.After(end) {
			end = t
		}
	}

	return models.PhotoCluster{
		ID:        uuid.NewString(),
		Location:  seed.Location,
		Latitude:  *seed.Latitude,
		Longitude: *seed.Longitude,
		Photos:    group,
		DateRange: models.DateRange{Start: start, End: end},
	}
}
