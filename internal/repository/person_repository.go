package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/danwu/photo-search-go/internal/models"
)

// PersonRepository handles database operations for named people
type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// ResolveReference resolves a raw person token captured from a search
// phrase ("cousin", "sister", a first name) to a person record. Relation
// matches take priority over name matches. Returns nil when nothing
// matches; an unresolvable reference is not an error.
func (r *PersonRepository) ResolveReference(token string) (*models.Person, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	query := `SELECT id, name, relation, face_group_id, created_at
		FROM people WHERE LOWER(relation) = ? LIMIT 1`

	p, err := r.scanOne(r.db.QueryRow(query, token))
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	query = `SELECT id, name, relation, face_group_id, created_at
		FROM people WHERE LOWER(name) LIKE ? LIMIT 1`

	return r.scanOne(r.db.QueryRow(query, "%"+token+"%"))
}

// Insert stores a person
func (r *PersonRepository) Insert(p *models.Person) error {
	query := `INSERT INTO people (id, name, relation, face_group_id)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.Exec(query, p.ID, p.Name, p.Relation, p.FaceGroupID)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	return nil
}

// List retrieves all people
func (r *PersonRepository) List() ([]models.Person, error) {
	rows, err := r.db.Query(`SELECT id, name, relation, face_group_id, created_at
		FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Relation, &p.FaceGroupID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	return people, rows.Err()
}

func (r *PersonRepository) scanOne(row *sql.Row) (*models.Person, error) {
	var p models.Person
	err := row.Scan(&p.ID, &p.Name, &p.Relation, &p.FaceGroupID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return &p, nil
}
