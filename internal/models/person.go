package models

import "time"

// Person links a display name and a relation word ("cousin", "sister") to
// a face group id produced by the external face detection pipeline.
type Person struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Relation    string    `json:"relation,omitempty" db:"relation"`
	FaceGroupID string    `json:"faceGroupId" db:"face_group_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
