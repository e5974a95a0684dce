package timeline

import (
	"time"

	"github.com/danwu/photo-search-go/internal/models"
)

// AggregateByMonth groups photos into calendar-month buckets within the
// given year. Photos without a capture time, or dated outside
// [year-01-01, (year+1)-01-01), are skipped. Buckets appear in the
// encounter order of their first photo, which follows the input order and
// is not necessarily chronological. Months with no photos are not
// materialized.
func AggregateByMonth(photos []models.Photo, year int) []models.TimeBucket {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	type accumulator struct {
		bucket    *models.TimeBucket
		locations map[string]bool
		countries map[string]bool
	}

	var order []time.Time
	byMonth := make(map[time.Time]*accumulator)

	for _, p := range photos {
		if p.DateTaken == nil {
			continue
		}
		t := p.DateTaken.UTC()
		if t.Before(yearStart) || !t.Before(yearEnd) {
			continue
		}

		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		acc, ok := byMonth[month]
		if !ok {
			acc = &accumulator{
				bucket:    &models.TimeBucket{Month: month},
				locations: make(map[string]bool),
				countries: make(map[string]bool),
			}
			byMonth[month] = acc
			order = append(order, month)
		}

		acc.bucket.Photos = append(acc.bucket.Photos, p)
		if p.Location != "" && !acc.locations[p.Location] {
			acc.locations[p.Location] = true
			acc.bucket.Locations = append(acc.bucket.Locations, p.Location)
		}
		if p.Country != "" && !acc.countries[p.Country] {
			acc.countries[p.Country] = true
			acc.bucket.Countries = append(acc.bucket.Countries, p.Country)
		}
	}

	buckets := make([]models.TimeBucket, 0, len(order))
	for _, month := range order {
		b := byMonth[month].bucket
		b.PhotoCount = len(b.Photos)
		buckets = append(buckets, *b)
	}

	return buckets
}
