// Package workflow holds the two-stage approval pipeline shared by leave
// applications and travel orders: a department dean reviews first, finance
// gives the final decision.
package workflow

import "errors"

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusDeanApproved Status = "DEAN_APPROVED"
	StatusDeanRejected Status = "DEAN_REJECTED"
	StatusApproved     Status = "APPROVED"
	StatusDenied       Status = "DENIED"
	StatusCancelled    Status = "CANCELLED"
)

var AllStatuses = []Status{
	StatusPending, StatusDeanApproved, StatusDeanRejected,
	StatusApproved, StatusDenied, StatusCancelled,
}

type Stage string

const (
	StageDean    Stage = "DEAN"
	StageFinance Stage = "FINANCE"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

var (
	ErrInvalidTransition = errors.New("request not in a state that can be reviewed at this stage")
	ErrUnknownDecision   = errors.New("unknown decision")
	ErrNotCancellable    = errors.New("only pending requests can be cancelled")
	ErrSelfReview        = errors.New("reviewers cannot act on their own requests")
)

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsFinal reports whether no further review can happen.
func (s Status) IsFinal() bool {
	switch s {
	case StatusApproved, StatusDenied, StatusDeanRejected, StatusCancelled:
		return true
	}
	return false
}

// Blocking reports whether a request in this status still claims its date range.
func (s Status) Blocking() bool {
	switch s {
	case StatusPending, StatusDeanApproved, StatusApproved:
		return true
	}
	return false
}

// Next computes the status after a reviewer at stage takes decision.
func Next(cur Status, stage Stage, d Decision) (Status, error) {
	if d != DecisionApprove && d != DecisionReject {
		return cur, ErrUnknownDecision
	}
	switch stage {
	case StageDean:
		if cur != StatusPending {
			return cur, ErrInvalidTransition
		}
		if d == DecisionApprove {
			return StatusDeanApproved, nil
		}
		return StatusDeanRejected, nil
	case StageFinance:
		if cur != StatusDeanApproved {
			return cur, ErrInvalidTransition
		}
		if d == DecisionApprove {
			return StatusApproved, nil
		}
		return StatusDenied, nil
	}
	return cur, ErrInvalidTransition
}

// Cancel is the applicant-side transition.
func Cancel(cur Status) (Status, error) {
	if cur != StatusPending {
		return cur, ErrNotCancellable
	}
	return StatusCancelled, nil
}

// QueueStatus is the status a stage's review queue is made of.
func QueueStatus(stage Stage) Status {
	if stage == StageFinance {
		return StatusDeanApproved
	}
	return StatusPending
}
