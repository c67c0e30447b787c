package mysql

import (
	"context"

	userDomain "oalass-backend/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", userDomain.NormalizeEmail(email)).First(&out)
	return &out, res.Error
}

func (r *UserRepository) List(ctx context.Context, f userDomain.Filter) ([]userDomain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.DepartmentID != 0 {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []userDomain.User
	res := paginate(q, f.Limit, f.Offset).Order("last_name, first_name, id").Find(&out)
	return out, total, res.Error
}

func (r *UserRepository) ListActiveByRole(ctx context.Context, role userDomain.Role, departmentID uint64) ([]userDomain.User, error) {
	q := r.db.WithContext(ctx).Where("role = ? AND is_active = ?", role, true)
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	var out []userDomain.User
	return out, q.Order("id").Find(&out).Error
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[userDomain.Role]int64, error) {
	var rows []struct {
		Role  userDomain.Role
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[userDomain.Role]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Total
	}
	return out, nil
}
