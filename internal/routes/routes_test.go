package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	"github.com/BruksfildServices01/room-booking/internal/auth"
	"github.com/BruksfildServices01/room-booking/internal/config"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type nopSink struct{}

func (nopSink) Log(audit.Event) error { return nil }

func newEngine(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	dispatcher := audit.NewDispatcher(nopSink{})
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{JWTSecret: "secret", TokenTTL: time.Hour, CacheTTL: time.Minute}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:     db,
		Config: cfg,
		Cache:  cache.Noop{},
		Images: storage.Disabled{},
		Audit:  dispatcher,
	})

	return r, mock, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
}

func post(r *gin.Engine, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMasterAccountsCannotPlaceOrdersOrReviews(t *testing.T) {
	r, mock, tokens := newEngine(t)

	token, err := tokens.Issue(8, models.RoleMaster)
	require.NoError(t, err)

	w := post(r, "/api/orders", token, `{"master_id":2,"room_id":3}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden_role")

	w = post(r, "/api/reviews", token, `{"master_id":2,"order_id":3,"rating":5}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden_role")

	// rejected before touching the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerReachesOrderHandler(t *testing.T) {
	r, _, tokens := newEngine(t)

	token, err := tokens.Issue(5, models.RoleUser)
	require.NoError(t, err)

	// missing room_id fails request validation, which runs after the role guard
	w := post(r, "/api/orders", token, `{"master_id":2}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}
