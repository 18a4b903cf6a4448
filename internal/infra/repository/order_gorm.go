package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Master
// --------------------------------------------------

func (r *OrderGormRepository) GetMasterIDByUser(
	ctx context.Context,
	userID uint,
) (uint, error) {
	return masterIDByUser(r.db.WithContext(ctx), userID)
}

func masterIDByUser(db *gorm.DB, userID uint) (uint, error) {
	var master models.Master
	err := db.
		Select("id").
		Where("user_id = ?", userID).
		First(&master).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrMasterProfileNotFound
	}
	if err != nil {
		return 0, err
	}
	return master.ID, nil
}

// --------------------------------------------------
// Room
// --------------------------------------------------

func (r *OrderGormRepository) LockRoom(
	ctx context.Context,
	roomID uint,
) (*models.Room, error) {

	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *OrderGormRepository) SetRoomAvailability(
	ctx context.Context,
	roomID uint,
	available bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("is_available", available).Error
}

// --------------------------------------------------
// Order
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) LockOrder(
	ctx context.Context,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateOrderStatus(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).
		Model(o).
		Update("status", o.Status).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *OrderGormRepository) ListOrdersForMaster(
	ctx context.Context,
	masterID uint,
	page httpresp.PageParams,
) ([]dto.OrderListDTO, int64, error) {

	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("orders o").
			Where("o.master_id = ?", masterID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []dto.OrderListDTO
	err := scope().
		Select(`o.id, o.user_id, o.master_id, o.room_id, o.description, o.status, o.created_at,
			u.first_name AS user_first_name, u.last_name AS user_last_name, r.room_number`).
		Joins("JOIN users u ON o.user_id = u.id").
		Joins("LEFT JOIN rooms r ON o.room_id = r.id").
		Order("o.created_at DESC, o.id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&out).Error
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *OrderGormRepository) ListOrdersForUser(
	ctx context.Context,
	userID uint,
	page httpresp.PageParams,
) ([]dto.OrderListDTO, int64, error) {

	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("orders o").
			Where("o.user_id = ?", userID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []dto.OrderListDTO
	err := scope().
		Select(`o.id, o.user_id, o.master_id, o.room_id, o.description, o.status, o.created_at,
			u.first_name AS master_first_name, u.last_name AS master_last_name, m.place_name, r.room_number`).
		Joins("JOIN masters m ON o.master_id = m.id").
		Joins("JOIN users u ON m.user_id = u.id").
		Joins("LEFT JOIN rooms r ON o.room_id = r.id").
		Order("o.created_at DESC, o.id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&out).Error
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
