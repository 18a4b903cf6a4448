package review

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/review"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type nopSink struct{}

func (nopSink) Log(audit.Event) error { return nil }

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type memState struct {
	orders  map[uint]models.Order
	reviews []models.Review
	ratings map[uint]float64 // master id -> rating
}

func (s *memState) clone() *memState {
	c := &memState{
		orders:  make(map[uint]models.Order, len(s.orders)),
		reviews: append([]models.Review(nil), s.reviews...),
		ratings: make(map[uint]float64, len(s.ratings)),
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.ratings {
		c.ratings[k] = v
	}
	return c
}

type memoryRepo struct {
	mu   *sync.Mutex
	st   *memState
	inTx bool

	failRatingUpdate bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		mu: &sync.Mutex{},
		st: &memState{
			orders:  map[uint]models.Order{},
			ratings: map[uint]float64{},
		},
	}
}

func (m *memoryRepo) addOrder(id, userID, masterID uint, status string) {
	m.st.orders[id] = models.Order{ID: id, UserID: userID, MasterID: masterID, Status: status}
}

func (m *memoryRepo) rating(masterID uint) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ratings[masterID]
}

func (m *memoryRepo) reviewCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.reviews)
}

func (m *memoryRepo) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *memoryRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	tx := &memoryRepo{mu: m.mu, st: m.st, inTx: true, failRatingUpdate: m.failRatingUpdate}
	if err := fn(tx); err != nil {
		*m.st = *snapshot
		return err
	}
	return nil
}

func (m *memoryRepo) FindCompletedOrder(ctx context.Context, orderID, userID, masterID uint) (*models.Order, error) {
	defer m.lock()()
	o, ok := m.st.orders[orderID]
	if !ok || o.UserID != userID || o.MasterID != masterID || o.Status != "completed" {
		return nil, domain.ErrOrderNotReviewable
	}
	return &o, nil
}

func (m *memoryRepo) HasReview(ctx context.Context, orderID, userID uint) (bool, error) {
	defer m.lock()()
	for _, r := range m.st.reviews {
		if r.OrderID == orderID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) CreateReview(ctx context.Context, r *models.Review) error {
	defer m.lock()()
	r.ID = uint(len(m.st.reviews) + 1)
	r.CreatedAt = time.Now()
	m.st.reviews = append(m.st.reviews, *r)
	return nil
}

func (m *memoryRepo) LockMaster(ctx context.Context, masterID uint) error {
	return nil
}

func (m *memoryRepo) RatingsForMaster(ctx context.Context, masterID uint) ([]int, error) {
	defer m.lock()()
	var out []int
	for _, r := range m.st.reviews {
		if r.MasterID == masterID {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

func (m *memoryRepo) SetMasterRating(ctx context.Context, masterID uint, rating float64) error {
	defer m.lock()()
	if m.failRatingUpdate {
		return errors.New("deadlock detected")
	}
	m.st.ratings[masterID] = rating
	return nil
}

func (m *memoryRepo) ListForMaster(ctx context.Context, masterID uint, page httpresp.PageParams) ([]dto.ReviewListDTO, int64, error) {
	defer m.lock()()
	var all []models.Review
	for _, r := range m.st.reviews {
		if r.MasterID == masterID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}

	out := make([]dto.ReviewListDTO, 0, end-start)
	for _, r := range all[start:end] {
		out = append(out, dto.ReviewListDTO{ID: r.ID, UserID: r.UserID, MasterID: r.MasterID, OrderID: r.OrderID, Rating: r.Rating})
	}
	return out, total, nil
}

var _ domain.Repository = (*memoryRepo)(nil)
