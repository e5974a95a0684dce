package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/danwu/photo-search-go/internal/models"
)

const photoColumns = `id, file_name, description, location, country,
	latitude, longitude, date_taken, tags_json, face_groups_json,
	created_at, updated_at`

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Search retrieves photos matching a parsed search filter. Tag matching is
// has-some: a photo matches when any filter tag is present. faceGroupID is
// the resolved person filter; empty means no person constraint.
func (r *PhotoRepository) Search(filter models.SearchFilter, faceGroupID string, page, pageSize int) ([]models.Photo, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, "date_taken >= ?")
		args = append(args, filter.DateFrom.Unix())
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "date_taken < ?")
		args = append(args, filter.DateTo.Unix())
	}
	if filter.LocationSubstring != "" {
		conditions = append(conditions, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.LocationSubstring)+"%")
	}
	if filter.DescriptionSubstring != "" {
		conditions = append(conditions, "LOWER(description) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.DescriptionSubstring)+"%")
	}
	if len(filter.Tags) > 0 {
		var tagConds []string
		for _, tag := range filter.Tags {
			tagConds = append(tagConds, "tags_json LIKE ?")
			args = append(args, `%"`+tag+`"%`)
		}
		conditions = append(conditions, "("+strings.Join(tagConds, " OR ")+")")
	}
	if faceGroupID != "" {
		conditions = append(conditions, "face_groups_json LIKE ?")
		args = append(args, `%"`+faceGroupID+`"%`)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count
	var total int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM photos"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count photos: %w", err)
	}

	// Add pagination
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	offset := (page - 1) * pageSize

	query := "SELECT " + photoColumns + " FROM photos" + where +
		" ORDER BY date_taken DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	photos, err := scanPhotos(rows)
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// ListByYear retrieves all photos dated within [year-01-01, (year+1)-01-01),
// ordered by capture time.
func (r *PhotoRepository) ListByYear(year int) ([]models.Photo, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := "SELECT " + photoColumns + ` FROM photos
		WHERE date_taken >= ? AND date_taken < ?
		ORDER BY date_taken ASC`

	rows, err := r.db.Query(query, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query photos by year: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

// List retrieves photos with simple filtering and pagination
func (r *PhotoRepository) List(filter models.PhotoFilter) ([]models.Photo, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StartTime > 0 {
		conditions = append(conditions, "date_taken >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "date_taken < ?")
		args = append(args, filter.EndTime)
	}
	if filter.Location != "" {
		conditions = append(conditions, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Country != "" {
		conditions = append(conditions, "LOWER(country) = ?")
		args = append(args, strings.ToLower(filter.Country))
	}
	if filter.HasGeo {
		conditions = append(conditions, "latitude IS NOT NULL AND longitude IS NOT NULL")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM photos"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count photos: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + photoColumns + " FROM photos" + where +
		" ORDER BY date_taken DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	photos, err := scanPhotos(rows)
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// GetByID retrieves a single photo by ID
func (r *PhotoRepository) GetByID(id string) (*models.Photo, error) {
	query := "SELECT " + photoColumns + " FROM photos WHERE id = ?"

	row := r.db.QueryRow(query, id)
	p, err := scanPhoto(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return p, nil
}

// Insert stores a photo. Tags and face group ids are serialized to JSON
// text columns.
func (r *PhotoRepository) Insert(p *models.Photo) error {
	tagsJSON, err := json.Marshal(emptyIfNil(p.Tags))
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	faceGroupsJSON, err := json.Marshal(emptyIfNil(p.FaceGroupIDs))
	if err != nil {
		return fmt.Errorf("failed to marshal face groups: %w", err)
	}

	var dateTaken interface{}
	if p.DateTaken != nil {
		dateTaken = p.DateTaken.Unix()
	}

	query := `INSERT INTO photos
		(id, file_name, description, location, country,
		latitude, longitude, date_taken, tags_json, face_groups_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		p.ID, p.FileName, p.Description, p.Location, p.Country,
		nullableFloat(p.Latitude), nullableFloat(p.Longitude),
		dateTaken, string(tagsJSON), string(faceGroupsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}

	return nil
}

// scanPhotos drains rows into photo models
func scanPhotos(rows *sql.Rows) ([]models.Photo, error) {
	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

func scanPhoto(scan func(dest ...interface{}) error) (*models.Photo, error) {
	var (
		p              models.Photo
		lat, lon       sql.NullFloat64
		dateTaken      sql.NullInt64
		tagsJSON       string
		faceGroupsJSON string
	)

	err := scan(
		&p.ID, &p.FileName, &p.Description, &p.Location, &p.Country,
		&lat, &lon, &dateTaken, &tagsJSON, &faceGroupsJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	if dateTaken.Valid {
		t := time.Unix(dateTaken.Int64, 0).UTC()
		p.DateTaken = &t
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(faceGroupsJSON), &p.FaceGroupIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal face groups: %w", err)
	}

	return &p, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
