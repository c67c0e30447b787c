package mysql

import (
	"context"
	"time"

	probationDomain "oalass-backend/internal/domain/probation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeProbationStatuses = []probationDomain.Status{
	probationDomain.StatusOngoing, probationDomain.StatusExtended,
}

type ProbationRepository struct{ db *gorm.DB }

func NewProbationRepository(db *gorm.DB) *ProbationRepository { return &ProbationRepository{db: db} }

func (r *ProbationRepository) Create(ctx context.Context, p *probationDomain.Probation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProbationRepository) Save(ctx context.Context, p *probationDomain.Probation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProbationRepository) GetByID(ctx context.Context, id uint64) (*probationDomain.Probation, error) {
	var out probationDomain.Probation
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *ProbationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*probationDomain.Probation, error) {
	var out probationDomain.Probation
	res := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&out, id)
	return &out, res.Error
}

func (r *ProbationRepository) GetActiveByUserID(ctx context.Context, userID uint64) (*probationDomain.Probation, error) {
	var out probationDomain.Probation
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, activeProbationStatuses).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ProbationRepository) List(ctx context.Context, status probationDomain.Status) ([]probationDomain.Probation, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []probationDomain.Probation
	return out, q.Order("end_date, id").Find(&out).Error
}

func (r *ProbationRepository) ListDue(ctx context.Context, before time.Time) ([]probationDomain.Probation, error) {
	var out []probationDomain.Probation
	res := r.db.WithContext(ctx).
		Where("status IN ? AND end_date <= ?", activeProbationStatuses, before).
		Order("end_date, id").
		Find(&out)
	return out, res.Error
}

func (r *ProbationRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&probationDomain.Probation{}).
		Where("status IN ?", activeProbationStatuses).
		Count(&n).Error
	return n, err
}
