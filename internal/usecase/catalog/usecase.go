package catalog

import (
	"context"
	"errors"
	"strings"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainUser "oalass-backend/internal/domain/user"

	"gorm.io/gorm"
)

// Entry is the create payload shared by all three reference tables.
type Entry struct {
	Code string
	Name string
}

type Usecase struct {
	repo domainCatalog.Repository
}

func NewUsecase(repo domainCatalog.Repository) *Usecase { return &Usecase{repo: repo} }

func (u *Usecase) Roles() []domainUser.Role { return domainUser.AllRoles }

func (u *Usecase) Departments(ctx context.Context) ([]domainCatalog.Department, error) {
	return u.repo.ListDepartments(ctx)
}

func (u *Usecase) Statuses(ctx context.Context) ([]domainCatalog.EmploymentStatus, error) {
	return u.repo.ListStatuses(ctx)
}

func (u *Usecase) LeaveTypes(ctx context.Context) ([]domainCatalog.LeaveType, error) {
	return u.repo.ListLeaveTypes(ctx)
}

func (u *Usecase) CreateDepartment(ctx context.Context, in Entry) (*domainCatalog.Department, error) {
	code := normalizeCode(in.Code)
	if err := ensureFree(u.repo.GetDepartmentByCode(ctx, code)); err != nil {
		return nil, err
	}
	d := &domainCatalog.Department{Code: code, Name: strings.TrimSpace(in.Name)}
	return d, u.repo.SaveDepartment(ctx, d)
}

func (u *Usecase) CreateStatus(ctx context.Context, in Entry) (*domainCatalog.EmploymentStatus, error) {
	code := normalizeCode(in.Code)
	if err := ensureFree(u.repo.GetStatusByCode(ctx, code)); err != nil {
		return nil, err
	}
	s := &domainCatalog.EmploymentStatus{Code: code, Name: strings.TrimSpace(in.Name)}
	return s, u.repo.SaveStatus(ctx, s)
}

func (u *Usecase) CreateLeaveType(ctx context.Context, in Entry) (*domainCatalog.LeaveType, error) {
	code := normalizeCode(in.Code)
	if err := ensureFree(u.repo.GetLeaveTypeByCode(ctx, code)); err != nil {
		return nil, err
	}
	lt := &domainCatalog.LeaveType{Code: code, Name: strings.TrimSpace(in.Name)}
	return lt, u.repo.SaveLeaveType(ctx, lt)
}

// Codes are stored upper-case with underscores: "part time" -> "PART_TIME".
func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), "_"))
}

// ensureFree turns a by-code lookup into ErrCodeTaken or nil.
func ensureFree(_ any, err error) error {
	switch {
	case err == nil:
		return domainCatalog.ErrCodeTaken
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	}
	return err
}
