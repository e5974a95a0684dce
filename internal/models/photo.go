package models

import "time"

// Photo represents one indexed photo. Coordinates, tags, description and
// face group ids come from external analysis pipelines and are consumed
// here as already-computed inputs.
type Photo struct {
	ID       string `json:"id" db:"id"`
	FileName string `json:"fileName,omitempty" db:"file_name"`

	// Metadata from image analysis
	Description string   `json:"description,omitempty" db:"description"`
	Tags        []string `json:"tags,omitempty" db:"tags_json"`

	// Face detection output: opaque group identifiers
	FaceGroupIDs []string `json:"faceGroupIds,omitempty" db:"face_groups_json"`

	// Geo info (nil when the photo carries no GPS data)
	Location  string   `json:"location,omitempty" db:"location"`
	Country   string   `json:"country,omitempty" db:"country"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// Temporal info (nil when EXIF carried no capture time)
	DateTaken *time.Time `json:"dateTaken,omitempty" db:"date_taken"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasCoordinates reports whether the photo carries both latitude and
// longitude and is therefore usable for spatial clustering.
func (p *Photo) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// PhotosResponse represents a paginated response of photos
type PhotosResponse struct {
	Data       []Photo `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
