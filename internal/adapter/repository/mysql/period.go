package mysql

import (
	"context"

	periodDomain "oalass-backend/internal/domain/period"

	"gorm.io/gorm"
)

type PeriodRepository struct{ db *gorm.DB }

func NewPeriodRepository(db *gorm.DB) *PeriodRepository { return &PeriodRepository{db: db} }

func (r *PeriodRepository) Create(ctx context.Context, p *periodDomain.CalendarPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PeriodRepository) Save(ctx context.Context, p *periodDomain.CalendarPeriod) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PeriodRepository) GetByID(ctx context.Context, id uint64) (*periodDomain.CalendarPeriod, error) {
	var out periodDomain.CalendarPeriod
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *PeriodRepository) GetByYearTerm(ctx context.Context, year string, term periodDomain.Term) (*periodDomain.CalendarPeriod, error) {
	var out periodDomain.CalendarPeriod
	res := r.db.WithContext(ctx).Where("academic_year = ? AND term = ?", year, term).First(&out)
	return &out, res.Error
}

func (r *PeriodRepository) GetCurrent(ctx context.Context) (*periodDomain.CalendarPeriod, error) {
	var out periodDomain.CalendarPeriod
	res := r.db.WithContext(ctx).Where("is_current = ?", true).First(&out)
	return &out, res.Error
}

func (r *PeriodRepository) List(ctx context.Context) ([]periodDomain.CalendarPeriod, error) {
	var out []periodDomain.CalendarPeriod
	return out, r.db.WithContext(ctx).Order("start_date DESC").Find(&out).Error
}

func (r *PeriodRepository) ClearCurrent(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&periodDomain.CalendarPeriod{}).
		Where("is_current = ?", true).
		Update("is_current", false).Error
}
