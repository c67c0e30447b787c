package account

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/notify"
	"oalass-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	users    domainUser.Repository
	catalog  domainCatalog.Repository
	notifier notify.Notifier
}

func NewUsecase(users domainUser.Repository, catalog domainCatalog.Repository, n notify.Notifier) *Usecase {
	return &Usecase{users: users, catalog: catalog, notifier: n}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainUser.User, error) {
	if !in.Role.Valid() {
		return nil, domainUser.ErrInvalidRole
	}
	email := domainUser.NormalizeEmail(in.Email)
	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, domainUser.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if err := u.checkRefs(ctx, in.DepartmentID, in.StatusID); err != nil {
		return nil, err
	}

	usr := &domainUser.User{
		UserID:       id.NewID32(),
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		StatusID:     in.StatusID,
		IsActive:     true,
	}
	if err := usr.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplWelcome,
		To:       []netmail.Address{notify.Address(usr.FullName(), usr.Email)},
		Data:     notify.AccountData{Name: usr.FullName(), Email: usr.Email, TempPassword: in.Password},
	})
	return usr, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*domainUser.User, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return usr, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*Page, error) {
	items, total, err := u.users.List(ctx, domainUser.Filter{
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		Active:       in.Active,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domainUser.User{}
	}
	return &Page{Items: items, Total: total, Limit: in.Limit, Offset: in.Offset}, nil
}

func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput) (*domainUser.User, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, domainUser.ErrInvalidRole
	}
	var dept, status uint64
	if in.DepartmentID != nil {
		dept = *in.DepartmentID
	}
	if in.StatusID != nil {
		status = *in.StatusID
	}
	if err := u.checkRefs(ctx, dept, status); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		usr.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		usr.LastName = *in.LastName
	}
	if in.Role != nil {
		usr.Role = *in.Role
	}
	if in.DepartmentID != nil {
		usr.DepartmentID = dept
	}
	if in.StatusID != nil {
		usr.StatusID = status
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// SetActive activates or deactivates an account. Admins cannot lock themselves out.
func (u *Usecase) SetActive(ctx context.Context, actor *domainUser.User, userID string, active bool) (*domainUser.User, error) {
	if !active && actor.UserID == userID {
		return nil, domainUser.ErrForbidden
	}
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if usr.IsActive == active {
		return usr, nil
	}
	usr.IsActive = active
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// ResetPassword sets a new temporary password and mails it to the user.
func (u *Usecase) ResetPassword(ctx context.Context, userID, password string) error {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return mapNotFound(err)
	}
	if err := usr.SetPassword(password); err != nil {
		return err
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return err
	}
	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplPasswordReset,
		To:       []netmail.Address{notify.Address(usr.FullName(), usr.Email)},
		Data:     notify.AccountData{Name: usr.FullName(), Email: usr.Email, TempPassword: password},
	})
	return nil
}

// ChangePassword requires the caller's current password.
func (u *Usecase) ChangePassword(ctx context.Context, actor *domainUser.User, current, next string) error {
	usr, err := u.users.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return mapNotFound(err)
	}
	if err := usr.CheckPassword(current); err != nil {
		return err
	}
	if err := usr.SetPassword(next); err != nil {
		return err
	}
	return u.users.Save(ctx, usr)
}

// checkRefs validates department and status ids; zero means "not given".
func (u *Usecase) checkRefs(ctx context.Context, deptID, statusID uint64) error {
	if deptID != 0 {
		if _, err := u.catalog.GetDepartment(ctx, deptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCatalog.ErrDepartmentNotFound
			}
			return err
		}
	}
	if statusID != 0 {
		if _, err := u.catalog.GetStatus(ctx, statusID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCatalog.ErrStatusNotFound
			}
			return err
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainUser.ErrNotFound
	}
	return err
}
