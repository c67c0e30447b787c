package mysql

import (
	"context"

	travelDomain "oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TravelRepository struct{ db *gorm.DB }

func NewTravelRepository(db *gorm.DB) *TravelRepository { return &TravelRepository{db: db} }

func (r *TravelRepository) Create(ctx context.Context, o *travelDomain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *TravelRepository) Save(ctx context.Context, o *travelDomain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *TravelRepository) GetByOrderID(ctx context.Context, orderID string) (*travelDomain.Order, error) {
	var out travelDomain.Order
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&out)
	return &out, res.Error
}

func (r *TravelRepository) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*travelDomain.Order, error) {
	var out travelDomain.Order
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&out)
	return &out, res.Error
}

func (r *TravelRepository) filtered(ctx context.Context, f travelDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&travelDomain.Order{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.DepartmentID != 0 {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *TravelRepository) List(ctx context.Context, f travelDomain.Filter) ([]travelDomain.Order, int64, error) {
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []travelDomain.Order
	res := paginate(q, f.Limit, f.Offset).Order("created_at DESC, id DESC").Find(&out)
	return out, total, res.Error
}

func (r *TravelRepository) CountByStatus(ctx context.Context, f travelDomain.Filter) (map[workflow.Status]int64, error) {
	return countByStatus(r.filtered(ctx, f))
}
