package catalog

import "context"

type Repository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartment(ctx context.Context, id uint64) (*Department, error)
	GetDepartmentByCode(ctx context.Context, code string) (*Department, error)
	SaveDepartment(ctx context.Context, d *Department) error

	ListStatuses(ctx context.Context) ([]EmploymentStatus, error)
	GetStatus(ctx context.Context, id uint64) (*EmploymentStatus, error)
	GetStatusByCode(ctx context.Context, code string) (*EmploymentStatus, error)
	SaveStatus(ctx context.Context, s *EmploymentStatus) error

	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	GetLeaveType(ctx context.Context, id uint64) (*LeaveType, error)
	GetLeaveTypeByCode(ctx context.Context, code string) (*LeaveType, error)
	SaveLeaveType(ctx context.Context, lt *LeaveType) error
}
