package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderdomain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/review"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReviewGormRepository{db: tx})
	})
}

func (r *ReviewGormRepository) FindCompletedOrder(
	ctx context.Context,
	orderID uint,
	userID uint,
	masterID uint,
) (*models.Order, error) {

	var o models.Order
	err := r.db.WithContext(ctx).
		Where(
			"id = ? AND user_id = ? AND master_id = ? AND status = ?",
			orderID, userID, masterID, string(orderdomain.StatusCompleted),
		).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotReviewable
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ReviewGormRepository) HasReview(
	ctx context.Context,
	orderID uint,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("order_id = ? AND user_id = ?", orderID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewGormRepository) LockMaster(
	ctx context.Context,
	masterID uint,
) error {

	var master models.Master
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&master, masterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMasterNotFound
	}
	return err
}

func (r *ReviewGormRepository) RatingsForMaster(
	ctx context.Context,
	masterID uint,
) ([]int, error) {

	var ratings []int
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("master_id = ?", masterID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ReviewGormRepository) SetMasterRating(
	ctx context.Context,
	masterID uint,
	rating float64,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Master{}).
		Where("id = ?", masterID).
		Update("rating", rating).Error
}

func (r *ReviewGormRepository) ListForMaster(
	ctx context.Context,
	masterID uint,
	page httpresp.PageParams,
) ([]dto.ReviewListDTO, int64, error) {

	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("reviews rv").
			Where("rv.master_id = ?", masterID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []dto.ReviewListDTO
	err := scope().
		Select("rv.id, rv.user_id, rv.master_id, rv.order_id, rv.rating, rv.comment, rv.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON rv.user_id = u.id").
		Order("rv.created_at DESC, rv.id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&out).Error
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
