package leave

import (
	"context"
	"fmt"
	netmail "net/mail"

	domainLeave "oalass-backend/internal/domain/leave"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/notify"

	"go.uber.org/zap"
)

const kind = "leave application"

func requestData(applicant *domainUser.User, a *domainLeave.Application, typeName string) notify.RequestData {
	return notify.RequestData{
		Kind:          kind,
		ID:            a.ApplicationID,
		ApplicantName: applicant.FullName(),
		Summary:       fmt.Sprintf("%s, %d business day(s)", typeName, a.NumberOfDays),
		StartDate:     a.StartDate.Format("2006-01-02"),
		EndDate:       a.EndDate.Format("2006-01-02"),
		Reason:        a.Reason,
		Status:        string(a.Status),
	}
}

// recipients resolves active users of role (optionally one department).
func (u *Usecase) recipients(ctx context.Context, role domainUser.Role, departmentID uint64) []netmail.Address {
	users, err := u.repos.Users.ListActiveByRole(ctx, role, departmentID)
	if err != nil {
		u.log.Warn("leave: resolving recipients", zap.String("role", string(role)), zap.Error(err))
		return nil
	}
	out := make([]netmail.Address, 0, len(users))
	for i := range users {
		out = append(out, notify.Address(users[i].FullName(), users[i].Email))
	}
	return out
}

func (u *Usecase) notifySubmitted(ctx context.Context, applicant *domainUser.User, a *domainLeave.Application, typeName string) {
	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplLeaveSubmitted,
		To:       u.recipients(ctx, domainUser.RoleDean, a.DepartmentID),
		Data:     requestData(applicant, a, typeName),
	})
}

func (u *Usecase) notifyReviewed(ctx context.Context, reviewer, applicant *domainUser.User, a *domainLeave.Application, typeName string, stage workflow.Stage) {
	data := requestData(applicant, a, typeName)
	data.Stage = string(stage)
	data.ReviewerName = reviewer.FullName()
	if stage == workflow.StageFinance {
		data.Remarks = a.Finance.Remarks
	} else {
		data.Remarks = a.Dean.Remarks
	}

	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplLeaveReviewed,
		To:       []netmail.Address{notify.Address(applicant.FullName(), applicant.Email)},
		Data:     data,
	})
	if a.Status == workflow.StatusDeanApproved {
		u.notifier.Notify(ctx, notify.Notification{
			Template: notify.TmplLeaveSubmitted,
			To:       u.recipients(ctx, domainUser.RoleFinance, 0),
			Data:     data,
		})
	}
}

// notifyCancelled tells the deans who had the application queued that it was withdrawn.
func (u *Usecase) notifyCancelled(ctx context.Context, applicant *domainUser.User, a *domainLeave.Application, typeName string) {
	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplLeaveReviewed,
		To:       u.recipients(ctx, domainUser.RoleDean, a.DepartmentID),
		Data:     requestData(applicant, a, typeName),
	})
}
