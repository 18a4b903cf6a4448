package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type nopSink struct{}

func (nopSink) Log(audit.Event) error { return nil }

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{})
}

type memState struct {
	rooms   map[uint]models.Room
	orders  map[uint]models.Order
	masters map[uint]uint // user id -> master id
	nextID  uint
}

func (s *memState) clone() *memState {
	c := &memState{
		rooms:   make(map[uint]models.Room, len(s.rooms)),
		orders:  make(map[uint]models.Order, len(s.orders)),
		masters: make(map[uint]uint, len(s.masters)),
		nextID:  s.nextID,
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.masters {
		c.masters[k] = v
	}
	return c
}

// memoryRepo serialises transactions with one mutex and restores a snapshot
// when the transaction function fails.
type memoryRepo struct {
	mu   *sync.Mutex
	st   *memState
	inTx bool

	failRoomUpdate bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		mu: &sync.Mutex{},
		st: &memState{
			rooms:   map[uint]models.Room{},
			orders:  map[uint]models.Order{},
			masters: map[uint]uint{},
		},
	}
}

func (m *memoryRepo) addRoom(id, masterID uint, available bool) {
	m.st.rooms[id] = models.Room{ID: id, MasterID: masterID, RoomNumber: fmt.Sprintf("R%d", id), IsAvailable: available}
}

func (m *memoryRepo) room(id uint) models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.rooms[id]
}

func (m *memoryRepo) order(id uint) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.orders[id]
}

func (m *memoryRepo) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.orders)
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
	tx := &memoryRepo{mu: m.mu, st: m.st, inTx: true, failRoomUpdate: m.failRoomUpdate}
	if err := fn(tx); err != nil {
		*m.st = *snapshot
		return err
	}
	return nil
}

func (m *memoryRepo) GetMasterIDByUser(ctx context.Context, userID uint) (uint, error) {
	defer m.lock()()
	id, ok := m.st.masters[userID]
	if !ok {
		return 0, domain.ErrMasterProfileNotFound
	}
	return id, nil
}

func (m *memoryRepo) LockRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	defer m.lock()()
	r, ok := m.st.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return &r, nil
}

func (m *memoryRepo) SetRoomAvailability(ctx context.Context, roomID uint, available bool) error {
	defer m.lock()()
	if m.failRoomUpdate {
		return errors.New("connection reset")
	}
	r := m.st.rooms[roomID]
	r.IsAvailable = available
	m.st.rooms[roomID] = r
	return nil
}

func (m *memoryRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	defer m.lock()()
	m.st.nextID++
	o.ID = m.st.nextID
	m.st.orders[o.ID] = *o
	return nil
}

func (m *memoryRepo) LockOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	defer m.lock()()
	o, ok := m.st.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memoryRepo) UpdateOrderStatus(ctx context.Context, o *models.Order) error {
	defer m.lock()()
	m.st.orders[o.ID] = *o
	return nil
}

func (m *memoryRepo) list(match func(models.Order) bool, page httpresp.PageParams) ([]dto.OrderListDTO, int64) {
	var all []models.Order
	for _, o := range m.st.orders {
		if match(o) {
			all = append(all, o)
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

	out := make([]dto.OrderListDTO, 0, end-start)
	for _, o := range all[start:end] {
		out = append(out, dto.OrderListDTO{
			ID:       o.ID,
			UserID:   o.UserID,
			MasterID: o.MasterID,
			RoomID:   o.RoomID,
			Status:   o.Status,
		})
	}
	return out, total
}

func (m *memoryRepo) ListOrdersForMaster(ctx context.Context, masterID uint, page httpresp.PageParams) ([]dto.OrderListDTO, int64, error) {
	defer m.lock()()
	out, total := m.list(func(o models.Order) bool { return o.MasterID == masterID }, page)
	return out, total, nil
}

func (m *memoryRepo) ListOrdersForUser(ctx context.Context, userID uint, page httpresp.PageParams) ([]dto.OrderListDTO, int64, error) {
	defer m.lock()()
	out, total := m.list(func(o models.Order) bool { return o.UserID == userID }, page)
	return out, total, nil
}

var _ domain.Repository = (*memoryRepo)(nil)
