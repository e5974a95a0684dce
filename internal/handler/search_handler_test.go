package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danwu/photo-search-go/internal/api"
	"github.com/danwu/photo-search-go/internal/config"
	"github.com/danwu/photo-search-go/internal/database"
	"github.com/danwu/photo-search-go/internal/models"
	"github.com/danwu/photo-search-go/internal/repository"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{Port: ":0", DBPath: ":memory:", RateLimit: 1000}
	return api.SetupRouter(cfg, db), db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestSearchEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)

	photos := repository.NewPhotoRepository(db)
	taken := time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, photos.Insert(&models.Photo{
		ID: "p1", Tags: []string{"beach"}, DateTaken: &taken,
	}))
	require.NoError(t, photos.Insert(&models.Photo{
		ID: "p2", Tags: []string{"city"}, DateTaken: &taken,
	}))

	w := doRequest(t, r, http.MethodGet, "/api/v1/search?q=beach", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Code int                   `json:"code"`
		Data models.SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)
	assert.Equal(t, []string{"beach"}, envelope.Data.Filter.Tags)
	require.Len(t, envelope.Data.Photos, 1)
	assert.Equal(t, "p1", envelope.Data.Photos[0].ID)
}

func TestSearchClustersEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)

	photos := repository.NewPhotoRepository(db)
	lat1, lon1 := 37.1020, -8.6730
	lat2, lon2 := 37.1028, -8.6735
	require.NoError(t, photos.Insert(&models.Photo{ID: "a", Latitude: &lat1, Longitude: &lon1}))
	require.NoError(t, photos.Insert(&models.Photo{ID: "b", Latitude: &lat2, Longitude: &lon2}))

	w := doRequest(t, r, http.MethodGet, "/api/v1/search/clusters?q=&radiusKm=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.ClustersResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Clusters, 1)
	assert.Len(t, envelope.Data.Clusters[0].Photos, 2)
}

func TestTimelineEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)

	photos := repository.NewPhotoRepository(db)
	taken := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, photos.Insert(&models.Photo{ID: "p1", Location: "Kyoto", DateTaken: &taken}))

	w := doRequest(t, r, http.MethodGet, "/api/v1/timeline?year=2023", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.TimelineResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2023, envelope.Data.Year)
	require.Len(t, envelope.Data.Buckets, 1)
	assert.Equal(t, 1, envelope.Data.Buckets[0].PhotoCount)
	assert.Equal(t, []string{"Kyoto"}, envelope.Data.Buckets[0].Locations)
}

func TestTimelineEndpointRejectsBadYear(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/timeline?year=123", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhotoCreateAndGet(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, err := json.Marshal(models.Photo{
		FileName:    "IMG_0042.jpg",
		Description: "Harbor at dusk",
		Location:    "Porto",
		Country:     "Portugal",
		Tags:        []string{"sunset"},
	})
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/api/v1/photos", body)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data models.Photo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	w = doRequest(t, r, http.MethodGet, "/api/v1/photos/"+created.Data.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IMG_0042.jpg")

	w = doRequest(t, r, http.MethodGet, "/api/v1/photos/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
