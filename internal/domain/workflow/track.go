package workflow

import "time"

// Review is one stage's sign-off, stored inline on the request row.
type Review struct {
	ReviewerID *uint64    `gorm:"column:reviewer_id;index" json:"-"`
	Remarks    string     `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
}

func (r Review) Done() bool { return r.ReviewedAt != nil }

// Track carries the approval state of a request through both stages.
type Track struct {
	Status  Status `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index" json:"status"`
	Dean    Review `gorm:"embedded;embeddedPrefix:dean_" json:"dean"`
	Finance Review `gorm:"embedded;embeddedPrefix:finance_" json:"finance"`
}

// Apply moves the track forward and stamps the reviewer of that stage.
func (t *Track) Apply(stage Stage, d Decision, reviewerID uint64, remarks string, now time.Time) error {
	next, err := Next(t.Status, stage, d)
	if err != nil {
		return err
	}
	rid := reviewerID
	at := now.UTC()
	r := Review{ReviewerID: &rid, Remarks: remarks, ReviewedAt: &at}
	if stage == StageDean {
		t.Dean = r
	} else {
		t.Finance = r
	}
	t.Status = next
	return nil
}

func (t *Track) Cancel() error {
	next, err := Cancel(t.Status)
	if err != nil {
		return err
	}
	t.Status = next
	return nil
}
