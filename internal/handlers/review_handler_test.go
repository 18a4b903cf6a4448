package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/room-booking/internal/domain/review"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
	ucReview "github.com/BruksfildServices01/room-booking/internal/usecase/review"
)

type mockReviewCreator struct{ mock.Mock }

func (m *mockReviewCreator) Execute(ctx context.Context, in ucReview.CreateReviewInput) (*models.Review, error) {
	args := m.Called(in)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

type mockReviewLister struct{ mock.Mock }

func (m *mockReviewLister) Execute(ctx context.Context, masterID uint, page httpresp.PageParams) ([]dto.ReviewListDTO, int64, error) {
	args := m.Called(masterID, page)
	list, _ := args.Get(0).([]dto.ReviewListDTO)
	return list, args.Get(1).(int64), args.Error(2)
}

func newReviewRouter() (*gin.Engine, *mockReviewCreator, *mockReviewLister) {
	create := &mockReviewCreator{}
	list := &mockReviewLister{}
	h := NewReviewHandler(create, list)

	r := gin.New()
	r.POST("/api/reviews", asUser(5, models.RoleUser), h.Create)
	r.GET("/api/reviews/:master_id", h.ListForMaster)
	return r, create, list
}

func TestReviewHandler_Create(t *testing.T) {
	r, create, _ := newReviewRouter()

	in := ucReview.CreateReviewInput{UserID: 5, MasterID: 2, OrderID: 9, Rating: 4, Comment: "clean"}
	create.On("Execute", in).Return(&models.Review{ID: 1, UserID: 5, MasterID: 2, OrderID: 9, Rating: 4}, nil)

	w := doJSON(r, http.MethodPost, "/api/reviews", gin.H{
		"master_id": 2, "order_id": 9, "rating": 4, "comment": "clean",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["rating"])
}

func TestReviewHandler_Create_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not reviewable", review.ErrNotReviewable, http.StatusForbidden, "order_not_reviewable"},
		{"duplicate", review.ErrAlreadyReviewed, http.StatusBadRequest, "already_reviewed"},
		{"bad rating", review.ValidateRating(9), http.StatusBadRequest, "invalid_rating"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, create, _ := newReviewRouter()
			create.On("Execute", mock.Anything).Return(nil, tc.err)

			w := doJSON(r, http.MethodPost, "/api/reviews", gin.H{
				"master_id": 2, "order_id": 9, "rating": 4,
			})

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decode(t, w)["error_code"])
		})
	}
}

func TestReviewHandler_ListForMaster(t *testing.T) {
	r, _, list := newReviewRouter()

	list.On("Execute", uint(2), httpresp.PageParams{Page: 1, Limit: httpresp.DefaultLimit}).
		Return(nil, int64(0), nil)

	w := doJSON(r, http.MethodGet, "/api/reviews/2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"page":1,"limit":50,"total":0}`, w.Body.String())
}

func TestReviewHandler_ListForMaster_BadID(t *testing.T) {
	r, _, _ := newReviewRouter()

	w := doJSON(r, http.MethodGet, "/api/reviews/zero", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
