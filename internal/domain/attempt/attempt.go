package attempt

import (
	"errors"
	"time"

	"github.com/pyqforge/backend/internal/id"
)

type Status string

const (
	StatusInProgress    Status = "in_progress"
	StatusCompleted     Status = "completed"
	StatusAutoSubmitted Status = "auto_submitted"
)

// Final reports whether no further mutation is permitted.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusAutoSubmitted
}

var (
	ErrAlreadyFinalized  = errors.New("attempt already finalized")
	ErrInvalidTransition = errors.New("invalid attempt status transition")
)

// Attempt is one student's pass through a mock test.
type Attempt struct {
	ID               string
	TestID           string
	StartedAt        time.Time
	EndedAt          *time.Time // nil while in progress
	Status           Status
	ObtainedMarks    float64
	TimeSpentSeconds int
}

func New(testID string, startedAt time.Time) *Attempt {
	return &Attempt{
		ID:        id.WithPrefix("att"),
		TestID:    testID,
		StartedAt: startedAt,
		Status:    StatusInProgress,
	}
}

// Deadline is the auto-submit instant for a test with the given time limit.
// A zero limit means the attempt never expires.
func (a *Attempt) Deadline(limit time.Duration) (time.Time, bool) {
	if limit <= 0 {
		return time.Time{}, false
	}
	return a.StartedAt.Add(limit), true
}

// IsExpired reports whether an in-progress attempt is past its deadline.
func (a *Attempt) IsExpired(now time.Time, limit time.Duration) bool {
	deadline, ok := a.Deadline(limit)
	return ok && a.Status == StatusInProgress && !now.Before(deadline)
}

// Finalize moves the attempt out of in_progress. It fails without touching
// the attempt if it is already final. Time spent is capped at limit when
// one is set, so a late sweep does not inflate it.
func (a *Attempt) Finalize(status Status, endedAt time.Time, marks float64, limit time.Duration) error {
	if a.Status.Final() {
		return ErrAlreadyFinalized
	}
	if !status.Final() {
		return ErrInvalidTransition
	}

	spent := endedAt.Sub(a.StartedAt)
	if spent < 0 {
		spent = 0
	}
	if limit > 0 && spent > limit {
		spent = limit
	}

	a.Status = status
	a.EndedAt = &endedAt
	a.ObtainedMarks = marks
	a.TimeSpentSeconds = int(spent / time.Second)
	return nil
}
