package mysql

import (
	"context"
	"time"

	leaveDomain "oalass-backend/internal/domain/leave"
	periodDomain "oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ---- limits ----

type LimitRepository struct{ db *gorm.DB }

func NewLimitRepository(db *gorm.DB) *LimitRepository { return &LimitRepository{db: db} }

func (r *LimitRepository) Get(ctx context.Context, statusID uint64, term periodDomain.Term, leaveTypeID uint64) (*leaveDomain.Limit, error) {
	var out leaveDomain.Limit
	res := r.db.WithContext(ctx).
		Where("status_id = ? AND term = ? AND leave_type_id = ?", statusID, term, leaveTypeID).
		First(&out)
	return &out, res.Error
}

func (r *LimitRepository) GetByID(ctx context.Context, id uint64) (*leaveDomain.Limit, error) {
	var out leaveDomain.Limit
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *LimitRepository) List(ctx context.Context) ([]leaveDomain.Limit, error) {
	var out []leaveDomain.Limit
	return out, r.db.WithContext(ctx).Order("status_id, term, leave_type_id").Find(&out).Error
}

func (r *LimitRepository) Upsert(ctx context.Context, l *leaveDomain.Limit) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "status_id"}, {Name: "term"}, {Name: "leave_type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"allowed_days", "updated_at"}),
	}).Create(l).Error
}

func (r *LimitRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&leaveDomain.Limit{}, id)
	if res.Error == nil && res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return res.Error
}

// ---- balances ----

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) Get(ctx context.Context, userID, periodID, leaveTypeID uint64) (*leaveDomain.Balance, error) {
	var out leaveDomain.Balance
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND period_id = ? AND leave_type_id = ?", userID, periodID, leaveTypeID).
		First(&out)
	return &out, res.Error
}

func (r *BalanceRepository) GetForUpdate(ctx context.Context, userID, periodID, leaveTypeID uint64) (*leaveDomain.Balance, error) {
	var out leaveDomain.Balance
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND period_id = ? AND leave_type_id = ?", userID, periodID, leaveTypeID).
		First(&out)
	return &out, res.Error
}

func (r *BalanceRepository) ListByUserPeriod(ctx context.Context, userID, periodID uint64) ([]leaveDomain.Balance, error) {
	var out []leaveDomain.Balance
	return out, r.db.WithContext(ctx).
		Where("user_id = ? AND period_id = ?", userID, periodID).
		Order("leave_type_id").
		Find(&out).Error
}

func (r *BalanceRepository) Create(ctx context.Context, b *leaveDomain.Balance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BalanceRepository) Save(ctx context.Context, b *leaveDomain.Balance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// ---- applications ----

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *leaveDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *leaveDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*leaveDomain.Application, error) {
	var out leaveDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*leaveDomain.Application, error) {
	var out leaveDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) filtered(ctx context.Context, f leaveDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&leaveDomain.Application{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.DepartmentID != 0 {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.PeriodID != 0 {
		q = q.Where("period_id = ?", f.PeriodID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ApplicationRepository) List(ctx context.Context, f leaveDomain.Filter) ([]leaveDomain.Application, int64, error) {
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []leaveDomain.Application
	res := paginate(q, f.Limit, f.Offset).Order("created_at DESC, id DESC").Find(&out)
	return out, total, res.Error
}

func (r *ApplicationRepository) FindBlocking(ctx context.Context, userID uint64, start, end time.Time) ([]leaveDomain.Application, error) {
	var out []leaveDomain.Application
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, blockingStatuses()).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) SumApprovedDays(ctx context.Context, userID, periodID, leaveTypeID uint64) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&leaveDomain.Application{}).
		Select("COALESCE(SUM(number_of_days), 0)").
		Where("user_id = ? AND period_id = ? AND leave_type_id = ? AND status = ?",
			userID, periodID, leaveTypeID, workflow.StatusApproved).
		Scan(&total).Error
	return total, err
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, f leaveDomain.Filter) (map[workflow.Status]int64, error) {
	return countByStatus(r.filtered(ctx, f))
}

func blockingStatuses() []workflow.Status {
	out := make([]workflow.Status, 0, len(workflow.AllStatuses))
	for _, s := range workflow.AllStatuses {
		if s.Blocking() {
			out = append(out, s)
		}
	}
	return out
}

func countByStatus(q *gorm.DB) (map[workflow.Status]int64, error) {
	var rows []struct {
		Status workflow.Status
		Total  int64
	}
	if err := q.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[workflow.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
