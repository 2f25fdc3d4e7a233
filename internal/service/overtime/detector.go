package overtime

import (
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
)

// Detector evaluates check-ins against the effective work schedule. The
// tolerance forms a symmetric band around the shift start: a check-in inside
// [start-tolerance, start+tolerance] is on time with no overtime, later is
// late, earlier earns automatic overtime.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// EvaluateLateness returns the lateness verdict for a check-in. On a day the
// schedule marks non-working the employee is never late. LateMinutes counts
// whole minutes past the tolerance boundary, truncated: a check-in seconds
// past the boundary is late with 0 minutes.
func (d *Detector) EvaluateLateness(sched schedule.WorkSchedule, checkIn time.Time) (overtime.Lateness, error) {
	if !sched.WorksOn(checkIn.Weekday()) {
		return overtime.Lateness{}, nil
	}

	start, err := sched.StartOn(checkIn)
	if err != nil {
		return overtime.Lateness{}, err
	}

	toleranceEnd := start.Add(time.Duration(sched.ToleranceMinutes) * time.Minute)
	if !checkIn.After(toleranceEnd) {
		return overtime.Lateness{}, nil
	}

	return overtime.Lateness{
		IsLate:      true,
		LateMinutes: int(checkIn.Sub(toleranceEnd).Minutes()),
	}, nil
}

// EvaluateAutoOvertime returns the whole minutes worked before the
// tolerance-adjusted shift start, or 0 when the check-in is inside the band
// or the day is non-working.
func (d *Detector) EvaluateAutoOvertime(sched schedule.WorkSchedule, checkIn time.Time) (int, error) {
	if !sched.WorksOn(checkIn.Weekday()) {
		return 0, nil
	}

	start, err := sched.StartOn(checkIn)
	if err != nil {
		return 0, err
	}

	toleranceStart := start.Add(-time.Duration(sched.ToleranceMinutes) * time.Minute)
	if !checkIn.Before(toleranceStart) {
		return 0, nil
	}

	return int(toleranceStart.Sub(checkIn).Minutes()), nil
}
