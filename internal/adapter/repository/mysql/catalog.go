package mysql

import (
	"context"

	catalogDomain "oalass-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

type CatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]catalogDomain.Department, error) {
	var out []catalogDomain.Department
	return out, r.db.WithContext(ctx).Order("code").Find(&out).Error
}

func (r *CatalogRepository) GetDepartment(ctx context.Context, id uint64) (*catalogDomain.Department, error) {
	var out catalogDomain.Department
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *CatalogRepository) GetDepartmentByCode(ctx context.Context, code string) (*catalogDomain.Department, error) {
	var out catalogDomain.Department
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) SaveDepartment(ctx context.Context, d *catalogDomain.Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *CatalogRepository) ListStatuses(ctx context.Context) ([]catalogDomain.EmploymentStatus, error) {
	var out []catalogDomain.EmploymentStatus
	return out, r.db.WithContext(ctx).Order("code").Find(&out).Error
}

func (r *CatalogRepository) GetStatus(ctx context.Context, id uint64) (*catalogDomain.EmploymentStatus, error) {
	var out catalogDomain.EmploymentStatus
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *CatalogRepository) GetStatusByCode(ctx context.Context, code string) (*catalogDomain.EmploymentStatus, error) {
	var out catalogDomain.EmploymentStatus
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) SaveStatus(ctx context.Context, s *catalogDomain.EmploymentStatus) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *CatalogRepository) ListLeaveTypes(ctx context.Context) ([]catalogDomain.LeaveType, error) {
	var out []catalogDomain.LeaveType
	return out, r.db.WithContext(ctx).Order("code").Find(&out).Error
}

func (r *CatalogRepository) GetLeaveType(ctx context.Context, id uint64) (*catalogDomain.LeaveType, error) {
	var out catalogDomain.LeaveType
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *CatalogRepository) GetLeaveTypeByCode(ctx context.Context, code string) (*catalogDomain.LeaveType, error) {
	var out catalogDomain.LeaveType
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) SaveLeaveType(ctx context.Context, lt *catalogDomain.LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}
