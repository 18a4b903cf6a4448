package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
)

var masterColumns = []string{
	"id", "user_id", "first_name", "last_name", "place_name",
	"phone_number_1", "phone_number_2", "latitude", "longitude",
	"description", "category_id", "image_url", "is_available", "rating", "created_at",
}

func TestMasterHandler_GetCachesResult(t *testing.T) {
	db, mock := newMockDB(t)
	c := mapCache{}

	h := NewMasterHandler(db, c, time.Minute, storage.Disabled{})
	r := gin.New()
	r.GET("/api/masters/:id", h.Get)

	mock.ExpectQuery(`FROM masters m JOIN users u ON u.id = m.user_id WHERE m.id = \$1`).
		WillReturnRows(sqlmock.NewRows(masterColumns).AddRow(
			4, 9, "Ivan", nil, "Sauna 4", "+100", nil, 55.7, 37.6,
			nil, 1, nil, true, 4.5, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		))

	w := doJSON(r, http.MethodGet, "/api/masters/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sauna 4", decode(t, w)["place_name"])
	assert.Contains(t, c, cache.MasterKey(4))

	w = doJSON(r, http.MethodGet, "/api/masters/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4.5, decode(t, w)["rating"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMasterHandler_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	h := NewMasterHandler(db, cache.Noop{}, time.Minute, storage.Disabled{})
	r := gin.New()
	r.GET("/api/masters/:id", h.Get)

	mock.ExpectQuery(`FROM masters m`).WillReturnRows(sqlmock.NewRows(masterColumns))

	w := doJSON(r, http.MethodGet, "/api/masters/77", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "master_not_found", decode(t, w)["error_code"])
}

func TestMasterHandler_ProfileRequiresMasterRow(t *testing.T) {
	db, mock := newMockDB(t)

	h := NewMasterHandler(db, cache.Noop{}, time.Minute, storage.Disabled{})
	r := gin.New()
	r.GET("/api/masters/profile", asUser(3, "master"), h.GetProfile)

	mock.ExpectQuery(`SELECT \* FROM "masters" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(r, http.MethodGet, "/api/masters/profile", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "master_profile_not_found", decode(t, w)["error_code"])
}
