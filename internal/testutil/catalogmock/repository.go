package catalogmock

import (
	"context"

	domain "oalass-backend/internal/domain/catalog"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies catalog.Repository.
type Repo struct {
	ListDepartmentsFn     func(ctx context.Context) ([]domain.Department, error)
	GetDepartmentFn       func(ctx context.Context, id uint64) (*domain.Department, error)
	GetDepartmentByCodeFn func(ctx context.Context, code string) (*domain.Department, error)
	SaveDepartmentFn      func(ctx context.Context, d *domain.Department) error
	ListStatusesFn        func(ctx context.Context) ([]domain.EmploymentStatus, error)
	GetStatusFn           func(ctx context.Context, id uint64) (*domain.EmploymentStatus, error)
	GetStatusByCodeFn     func(ctx context.Context, code string) (*domain.EmploymentStatus, error)
	SaveStatusFn          func(ctx context.Context, s *domain.EmploymentStatus) error
	ListLeaveTypesFn      func(ctx context.Context) ([]domain.LeaveType, error)
	GetLeaveTypeFn        func(ctx context.Context, id uint64) (*domain.LeaveType, error)
	GetLeaveTypeByCodeFn  func(ctx context.Context, code string) (*domain.LeaveType, error)
	SaveLeaveTypeFn       func(ctx context.Context, lt *domain.LeaveType) error
}

func (m *Repo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	if m.ListDepartmentsFn != nil {
		return m.ListDepartmentsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetDepartment(ctx context.Context, id uint64) (*domain.Department, error) {
	if m.GetDepartmentFn != nil {
		return m.GetDepartmentFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetDepartmentByCode(ctx context.Context, code string) (*domain.Department, error) {
	if m.GetDepartmentByCodeFn != nil {
		return m.GetDepartmentByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveDepartment(ctx context.Context, d *domain.Department) error {
	if m.SaveDepartmentFn != nil {
		return m.SaveDepartmentFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListStatuses(ctx context.Context) ([]domain.EmploymentStatus, error) {
	if m.ListStatusesFn != nil {
		return m.ListStatusesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetStatus(ctx context.Context, id uint64) (*domain.EmploymentStatus, error) {
	if m.GetStatusFn != nil {
		return m.GetStatusFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetStatusByCode(ctx context.Context, code string) (*domain.EmploymentStatus, error) {
	if m.GetStatusByCodeFn != nil {
		return m.GetStatusByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveStatus(ctx context.Context, s *domain.EmploymentStatus) error {
	if m.SaveStatusFn != nil {
		return m.SaveStatusFn(ctx, s)
	}
	return nil
}

func (m *Repo) ListLeaveTypes(ctx context.Context) ([]domain.LeaveType, error) {
	if m.ListLeaveTypesFn != nil {
		return m.ListLeaveTypesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLeaveType(ctx context.Context, id uint64) (*domain.LeaveType, error) {
	if m.GetLeaveTypeFn != nil {
		return m.GetLeaveTypeFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLeaveTypeByCode(ctx context.Context, code string) (*domain.LeaveType, error) {
	if m.GetLeaveTypeByCodeFn != nil {
		return m.GetLeaveTypeByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveLeaveType(ctx context.Context, lt *domain.LeaveType) error {
	if m.SaveLeaveTypeFn != nil {
		return m.SaveLeaveTypeFn(ctx, lt)
	}
	return nil
}
