package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainLeave "oalass-backend/internal/domain/leave"
	domainPeriod "oalass-backend/internal/domain/period"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/pkg/businessday"
	"oalass-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnknownRef      = errors.New("seed: reference to unknown code")
	ErrMissingPassword = errors.New("seed: new user needs password or password_hash")
	ErrMultipleCurrent = errors.New("seed: more than one period marked current")
)

const dumpPageSize = 200

// Report counts rows written per section.
type Report struct {
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
}

func newReport() *Report {
	return &Report{Created: map[string]int{}, Updated: map[string]int{}}
}

func (r *Report) count(section string, created bool) {
	if created {
		r.Created[section]++
	} else {
		r.Updated[section]++
	}
}

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *zap.Logger
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: log}
}

// Seed upserts the whole document in one transaction. Rows are matched by
// natural key (code, year and term, limit triple, email) so reruns are no-ops.
func (u *Usecase) Seed(ctx context.Context, doc *Document) (*Report, error) {
	rep := newReport()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s := &seeder{ctx: ctx, r: r, rep: rep,
			depts: map[string]uint64{}, statuses: map[string]uint64{}, types: map[string]uint64{}}
		steps := []func(*Document) error{s.departments, s.seedStatuses, s.leaveTypes, s.periods, s.limits, s.users}
		for _, step := range steps {
			if err := step(doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("seed applied", zap.Any("created", rep.Created), zap.Any("updated", rep.Updated))
	return rep, nil
}

type seeder struct {
	ctx      context.Context
	r        uow.Repos
	rep      *Report
	depts    map[string]uint64
	statuses map[string]uint64
	types    map[string]uint64
}

func code(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (s *seeder) departments(doc *Document) error {
	for _, e := range doc.Departments {
		d, err := s.r.Catalog.GetDepartmentByCode(s.ctx, code(e.Code))
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("department %s: %w", e.Code, err)
		}
		if created {
			d = &domainCatalog.Department{Code: code(e.Code)}
		}
		d.Name = e.Name
		if err := s.r.Catalog.SaveDepartment(s.ctx, d); err != nil {
			return fmt.Errorf("department %s: %w", e.Code, err)
		}
		s.depts[d.Code] = d.ID
		s.rep.count("departments", created)
	}
	return nil
}

func (s *seeder) seedStatuses(doc *Document) error {
	for _, e := range doc.Statuses {
		st, err := s.r.Catalog.GetStatusByCode(s.ctx, code(e.Code))
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("status %s: %w", e.Code, err)
		}
		if created {
			st = &domainCatalog.EmploymentStatus{Code: code(e.Code)}
		}
		st.Name = e.Name
		if err := s.r.Catalog.SaveStatus(s.ctx, st); err != nil {
			return fmt.Errorf("status %s: %w", e.Code, err)
		}
		s.statuses[st.Code] = st.ID
		s.rep.count("statuses", created)
	}
	return nil
}

func (s *seeder) leaveTypes(doc *Document) error {
	for _, e := range doc.LeaveTypes {
		lt, err := s.r.Catalog.GetLeaveTypeByCode(s.ctx, code(e.Code))
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("leave type %s: %w", e.Code, err)
		}
		if created {
			lt = &domainCatalog.LeaveType{Code: code(e.Code)}
		}
		lt.Name = e.Name
		if err := s.r.Catalog.SaveLeaveType(s.ctx, lt); err != nil {
			return fmt.Errorf("leave type %s: %w", e.Code, err)
		}
		s.types[lt.Code] = lt.ID
		s.rep.count("leave_types", created)
	}
	return nil
}

func (s *seeder) periods(doc *Document) error {
	var current *domainPeriod.CalendarPeriod
	for _, in := range doc.Periods {
		term := domainPeriod.Term(code(in.Term))
		if !term.Valid() {
			return fmt.Errorf("period %s %s: %w", in.AcademicYear, in.Term, domainPeriod.ErrInvalidTerm)
		}
		if !domainPeriod.ValidAcademicYear(in.AcademicYear) {
			return fmt.Errorf("period %s: %w", in.AcademicYear, domainPeriod.ErrInvalidYear)
		}
		if in.EndDate.Before(in.StartDate.Time) {
			return fmt.Errorf("period %s %s: %w", in.AcademicYear, term, businessday.ErrInvalidRange)
		}
		p, err := s.r.Periods.GetByYearTerm(s.ctx, in.AcademicYear, term)
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("period %s %s: %w", in.AcademicYear, term, err)
		}
		if created {
			p = &domainPeriod.CalendarPeriod{AcademicYear: in.AcademicYear, Term: term}
		}
		p.StartDate, p.EndDate = in.StartDate.Time, in.EndDate.Time
		if created {
			err = s.r.Periods.Create(s.ctx, p)
		} else {
			err = s.r.Periods.Save(s.ctx, p)
		}
		if err != nil {
			return fmt.Errorf("period %s %s: %w", in.AcademicYear, term, err)
		}
		if in.Current {
			if current != nil {
				return ErrMultipleCurrent
			}
			current = p
		}
		s.rep.count("periods", created)
	}
	if current == nil || current.IsCurrent {
		return nil
	}
	if err := s.r.Periods.ClearCurrent(s.ctx); err != nil {
		return err
	}
	current.IsCurrent = true
	return s.r.Periods.Save(s.ctx, current)
}

// resolve looks a code up among rows seeded in this run, then in the database.
func (s *seeder) resolve(kind, c string, cache map[string]uint64, lookup func(string) (uint64, error)) (uint64, error) {
	c = code(c)
	if c == "" {
		return 0, nil
	}
	if id, ok := cache[c]; ok {
		return id, nil
	}
	id, err := lookup(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %s %q", ErrUnknownRef, kind, c)
	}
	if err != nil {
		return 0, err
	}
	cache[c] = id
	return id, nil
}

func (s *seeder) department(c string) (uint64, error) {
	return s.resolve("department", c, s.depts, func(c string) (uint64, error) {
		d, err := s.r.Catalog.GetDepartmentByCode(s.ctx, c)
		if err != nil {
			return 0, err
		}
		return d.ID, nil
	})
}

func (s *seeder) status(c string) (uint64, error) {
	return s.resolve("status", c, s.statuses, func(c string) (uint64, error) {
		st, err := s.r.Catalog.GetStatusByCode(s.ctx, c)
		if err != nil {
			return 0, err
		}
		return st.ID, nil
	})
}

func (s *seeder) leaveType(c string) (uint64, error) {
	return s.resolve("leave type", c, s.types, func(c string) (uint64, error) {
		lt, err := s.r.Catalog.GetLeaveTypeByCode(s.ctx, c)
		if err != nil {
			return 0, err
		}
		return lt.ID, nil
	})
}

func (s *seeder) limits(doc *Document) error {
	for _, in := range doc.Limits {
		if in.AllowedDays <= 0 {
			return fmt.Errorf("limit %s/%s/%s: %w", in.Status, in.Term, in.LeaveType, domainLeave.ErrInvalidLimit)
		}
		term := domainPeriod.Term(code(in.Term))
		if !term.Valid() {
			return fmt.Errorf("limit term %q: %w", in.Term, domainPeriod.ErrInvalidTerm)
		}
		statusID, err := s.status(in.Status)
		if err != nil {
			return err
		}
		typeID, err := s.leaveType(in.LeaveType)
		if err != nil {
			return err
		}
		if statusID == 0 || typeID == 0 {
			return fmt.Errorf("%w: limit needs status and leave_type", ErrUnknownRef)
		}
		_, err = s.r.Limits.Get(s.ctx, statusID, term, typeID)
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return err
		}
		if err := s.r.Limits.Upsert(s.ctx, &domainLeave.Limit{StatusID: statusID, Term: term, LeaveTypeID: typeID, AllowedDays: in.AllowedDays}); err != nil {
			return fmt.Errorf("limit %s/%s/%s: %w", in.Status, term, in.LeaveType, err)
		}
		s.rep.count("limits", created)
	}
	return nil
}

func (s *seeder) users(doc *Document) error {
	for _, in := range doc.Users {
		role := domainUser.Role(code(in.Role))
		if !role.Valid() {
			return fmt.Errorf("user %s: %w", in.Email, domainUser.ErrInvalidRole)
		}
		deptID, err := s.department(in.Department)
		if err != nil {
			return err
		}
		statusID, err := s.status(in.Status)
		if err != nil {
			return err
		}

		email := domainUser.NormalizeEmail(in.Email)
		usr, err := s.r.Users.GetByEmail(s.ctx, email)
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("user %s: %w", email, err)
		}
		if created {
			uid := in.UserID
			if !id.Valid(uid) {
				uid = id.NewID32()
			}
			usr = &domainUser.User{UserID: uid, Email: email, IsActive: true}
		}
		usr.FirstName, usr.LastName = in.FirstName, in.LastName
		usr.Role, usr.DepartmentID, usr.StatusID = role, deptID, statusID
		switch {
		case in.PasswordHash != "":
			usr.PasswordHash = in.PasswordHash
		case in.Password != "":
			if err := usr.SetPassword(in.Password); err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}
		case created:
			return fmt.Errorf("user %s: %w", email, ErrMissingPassword)
		}

		if created {
			if err := s.r.Users.Create(s.ctx, usr); err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}
		}
		// is_active defaults to true on insert, so deactivation needs a save
		if in.Active != nil {
			usr.IsActive = *in.Active
		}
		if !created || !usr.IsActive {
			if err := s.r.Users.Save(s.ctx, usr); err != nil {
				return fmt.Errorf("user %s: %w", email, err)
			}
		}
		s.rep.count("users", created)
	}
	return nil
}

// Dump reads everything Seed writes back into a document. Users carry their
// password hash so a restore keeps existing credentials.
func (u *Usecase) Dump(ctx context.Context) (*Document, error) {
	doc := &Document{}
	depts, err := u.repos.Catalog.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	deptCode := make(map[uint64]string, len(depts))
	for _, d := range depts {
		doc.Departments = append(doc.Departments, Entry{Code: d.Code, Name: d.Name})
		deptCode[d.ID] = d.Code
	}

	statuses, err := u.repos.Catalog.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	statusCode := make(map[uint64]string, len(statuses))
	for _, st := range statuses {
		doc.Statuses = append(doc.Statuses, Entry{Code: st.Code, Name: st.Name})
		statusCode[st.ID] = st.Code
	}

	types, err := u.repos.Catalog.ListLeaveTypes(ctx)
	if err != nil {
		return nil, err
	}
	typeCode := make(map[uint64]string, len(types))
	for _, lt := range types {
		doc.LeaveTypes = append(doc.LeaveTypes, Entry{Code: lt.Code, Name: lt.Name})
		typeCode[lt.ID] = lt.Code
	}

	periods, err := u.repos.Periods.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		doc.Periods = append(doc.Periods, Period{
			AcademicYear: p.AcademicYear,
			Term:         string(p.Term),
			StartDate:    Date{p.StartDate},
			EndDate:      Date{p.EndDate},
			Current:      p.IsCurrent,
		})
	}

	limits, err := u.repos.Limits.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range limits {
		doc.Limits = append(doc.Limits, Limit{
			Status:      statusCode[l.StatusID],
			Term:        string(l.Term),
			LeaveType:   typeCode[l.LeaveTypeID],
			AllowedDays: l.AllowedDays,
		})
	}

	for offset := 0; ; offset += dumpPageSize {
		page, total, err := u.repos.Users.List(ctx, domainUser.Filter{Limit: dumpPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for i := range page {
			usr := &page[i]
			active := usr.IsActive
			doc.Users = append(doc.Users, User{
				UserID:       usr.UserID,
				Email:        usr.Email,
				FirstName:    usr.FirstName,
				LastName:     usr.LastName,
				Role:         string(usr.Role),
				Department:   deptCode[usr.DepartmentID],
				Status:       statusCode[usr.StatusID],
				Active:       &active,
				PasswordHash: usr.PasswordHash,
			})
		}
		if len(page) == 0 || int64(offset+len(page)) >= total {
			break
		}
	}
	return doc, nil
}
