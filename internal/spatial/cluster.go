package spatial

import (
	"github.com/danwu/photo-search-go/internal/models"
)

// DefaultClusterRadiusKm is used when the caller supplies no radius.
const DefaultClusterRadiusKm = 1.0

// ClusterByProximity groups photos by great-circle proximity in a single
// greedy pass. The first unassigned photo opens a cluster and becomes its
// seed; every still-unassigned photo within radiusKm of the seed is
// absorbed, in input order. Membership is tested against the seed only, so
// two members can legitimately be further than radiusKm apart.
//
// The result partitions the geo-tagged input: every photo with coordinates
// lands in exactly one cluster, with element 0 the seed. Photos without
// coordinates are excluded. Output depends on input order; that is
// accepted behavior for a greedy pass, not something callers should rely
// on being order-invariant.
//
// O(n²) comparisons. Callers keep n small by pre-filtering to photos that
// carry location data.
func ClusterByProximity(photos []models.Photo, radiusKm float64) [][]models.Photo {
	if radiusKm <= 0 {
		radiusKm = DefaultClusterRadiusKm
	}

	used := make([]bool, len(photos))
	var clusters [][]models.Photo

	for i := range photos {
		if used[i] || !photos[i].HasCoordinates() {
			continue
		}

		seed := photos[i]
		used[i] = true
		cluster := []models.Photo{seed}

		// Scan everything still unassigned, including photos the outer
		// loop has not reached yet.
		for j := range photos {
			if used[j] || !photos[j].HasCoordinates() {
				continue
			}
			d := HaversineDistanceKm(*seed.Latitude, *seed.Longitude,
				*photos[j].Latitude, *photos[j].Longitude)
			if d <= radiusKm {
				used[j] = true
				cluster = append(cluster, photos[j])
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
