// Package access holds the authorization rules shared by the request usecases.
package access

import (
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"
)

// Request is the part of a leave application or travel order the rules look at.
type Request struct {
	OwnerID      uint64
	DepartmentID uint64
}

// CanActAt reports whether role may review at stage. ADMIN acts at both.
func CanActAt(role user.Role, stage workflow.Stage) bool {
	switch role {
	case user.RoleAdmin:
		return stage == workflow.StageDean || stage == workflow.StageFinance
	case user.RoleDean:
		return stage == workflow.StageDean
	case user.RoleFinance:
		return stage == workflow.StageFinance
	}
	return false
}

// StageFor resolves the stage a reviewer acts at; ADMIN must name one.
func StageFor(role user.Role, requested workflow.Stage) (workflow.Stage, error) {
	if requested == "" {
		switch role {
		case user.RoleDean:
			return workflow.StageDean, nil
		case user.RoleFinance:
			return workflow.StageFinance, nil
		}
		return "", user.ErrForbidden
	}
	if !CanActAt(role, requested) {
		return "", user.ErrForbidden
	}
	return requested, nil
}

// Review checks that actor may decide on req at stage.
func Review(actor *user.User, stage workflow.Stage, req Request) error {
	if !CanActAt(actor.Role, stage) {
		return user.ErrForbidden
	}
	if actor.ID == req.OwnerID {
		return workflow.ErrSelfReview
	}
	if actor.Role == user.RoleDean && actor.DepartmentID != req.DepartmentID {
		return user.ErrForbidden
	}
	return nil
}

// View checks read access: the owner, admins, finance, and the dean of the owner's department.
func View(actor *user.User, req Request) error {
	switch {
	case actor.ID == req.OwnerID:
		return nil
	case actor.Role == user.RoleAdmin, actor.Role == user.RoleFinance:
		return nil
	case actor.Role == user.RoleDean && actor.DepartmentID == req.DepartmentID:
		return nil
	}
	return user.ErrForbidden
}

// Queue is the filter for a reviewer's work queue.
type Queue struct {
	Status       workflow.Status
	DepartmentID uint64 // 0 = every department
}

// QueueFor builds the queue filter for actor at stage.
func QueueFor(actor *user.User, stage workflow.Stage) (Queue, error) {
	st, err := StageFor(actor.Role, stage)
	if err != nil {
		return Queue{}, err
	}
	q := Queue{Status: workflow.QueueStatus(st)}
	if actor.Role == user.RoleDean {
		q.DepartmentID = actor.DepartmentID
	}
	return q, nil
}

// Apply checks that actor may file a request of their own.
func Apply(actor *user.User) error {
	if !actor.Role.CanApply() {
		return user.ErrForbidden
	}
	return nil
}
