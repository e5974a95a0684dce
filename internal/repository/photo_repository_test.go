package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danwu/photo-search-go/internal/database"
	"github.com/danwu/photo-search-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory db
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedPhoto(t *testing.T, repo *PhotoRepository, p models.Photo) {
	t.Helper()
	require.NoError(t, repo.Insert(&p))
}

func ptr(v float64) *float64 { return &v }

func tsPtr(v time.Time) *time.Time { return &v }

func TestPhotoInsertAndGetByID(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))

	taken := time.Date(2023, 7, 14, 16, 30, 0, 0, time.UTC)
	seedPhoto(t, repo, models.Photo{
		ID:           "p1",
		FileName:     "IMG_0001.jpg",
		Description:  "Cliffs at golden hour",
		Location:     "Lagos",
		Country:      "Portugal",
		Latitude:     ptr(37.102),
		Longitude:    ptr(-8.673),
		DateTaken:    tsPtr(taken),
		Tags:         []string{"beach", "sunset"},
		FaceGroupIDs: []string{"fg-1", "fg-2"},
	})

	got, err := repo.GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "IMG_0001.jpg", got.FileName)
	assert.Equal(t, "Lagos", got.Location)
	assert.Equal(t, []string{"beach", "sunset"}, got.Tags)
	assert.Equal(t, []string{"fg-1", "fg-2"}, got.FaceGroupIDs)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, 37.102, *got.Latitude, 1e-9)
	require.NotNil(t, got.DateTaken)
	assert.True(t, got.DateTaken.Equal(taken))
}

func TestPhotoGetByIDMissing(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))

	got, err := repo.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPhotoSearchTagsHasSome(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "beach", Tags: []string{"beach"}})
	seedPhoto(t, repo, models.Photo{ID: "ocean", Tags: []string{"ocean"}})
	seedPhoto(t, repo, models.Photo{ID: "city", Tags: []string{"city"}})

	photos, total, err := repo.Search(models.SearchFilter{
		Tags: []string{"beach", "ocean"},
	}, "", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	var ids []string
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"beach", "ocean"}, ids)
}

func TestPhotoSearchDateWindowHalfOpen(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "inside", DateTaken: tsPtr(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "at-from", DateTaken: tsPtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "at-to", DateTaken: tsPtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "undated"})

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	photos, total, err := repo.Search(models.SearchFilter{DateFrom: &from, DateTo: &to}, "", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	var ids []string
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"inside", "at-from"}, ids)
}

func TestPhotoSearchLocationCaseInsensitive(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "p1", Location: "Praia da Marinha"})
	seedPhoto(t, repo, models.Photo{ID: "p2", Location: "Kyoto"})

	photos, total, err := repo.Search(models.SearchFilter{LocationSubstring: "MARINHA"}, "", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)
	assert.Equal(t, "p1", photos[0].ID)
}

func TestPhotoSearchByFaceGroup(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "with", FaceGroupIDs: []string{"fg-7"}})
	seedPhoto(t, repo, models.Photo{ID: "without", FaceGroupIDs: []string{"fg-8"}})

	photos, total, err := repo.Search(models.SearchFilter{}, "fg-7", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)
	assert.Equal(t, "with", photos[0].ID)
}

func TestPhotoSearchEmptyFilterMatchesAll(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "p1"})
	seedPhoto(t, repo, models.Photo{ID: "p2"})

	_, total, err := repo.Search(models.SearchFilter{}, "", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPhotoListByYear(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "feb", DateTaken: tsPtr(time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "dec", DateTaken: tsPtr(time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "other-year", DateTaken: tsPtr(time.Date(2022, 12, 10, 0, 0, 0, 0, time.UTC))})
	seedPhoto(t, repo, models.Photo{ID: "undated"})

	photos, err := repo.ListByYear(2023)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "feb", photos[0].ID)
	assert.Equal(t, "dec", photos[1].ID)
}

func TestPhotoListHasGeo(t *testing.T) {
	repo := NewPhotoRepository(testDB(t))
	seedPhoto(t, repo, models.Photo{ID: "geo", Latitude: ptr(1), Longitude: ptr(2)})
	seedPhoto(t, repo, models.Photo{ID: "no-geo"})
	seedPhoto(t, repo, models.Photo{ID: "half", Latitude: ptr(1)})

	photos, total, err := repo.List(models.PhotoFilter{HasGeo: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)
	assert.Equal(t, "geo", photos[0].ID)
}

func TestPersonResolveReference(t *testing.T) {
	db := testDB(t)
	repo := NewPersonRepository(db)

	require.NoError(t, repo.Insert(&models.Person{ID: "1", Name: "Ana", Relation: "cousin", FaceGroupID: "fg-ana"}))
	require.NoError(t, repo.Insert(&models.Person{ID: "2", Name: "Marta", Relation: "sister", FaceGroupID: "fg-marta"}))

	p, err := repo.ResolveReference("Cousin")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "fg-ana", p.FaceGroupID)

	// Name match when no relation matches
	p, err = repo.ResolveReference("marta")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "fg-marta", p.FaceGroupID)

	// Unknown token is not an error
	p, err = repo.ResolveReference("stranger")
	require.NoError(t, err)
	assert.Nil(t, p)
}
