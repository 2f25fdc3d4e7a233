package overtime

import (
	"testing"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaySchedule(tolerance int) schedule.WorkSchedule {
	return schedule.WorkSchedule{
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		StartTime:        "09:00",
		EndTime:          "18:00",
		ToleranceMinutes: tolerance,
	}
}

// 2025-07-23 is a Wednesday.
func checkInAt(hour, minute int) time.Time {
	return time.Date(2025, 7, 23, hour, minute, 0, 0, time.UTC)
}

func TestEvaluateLateness(t *testing.T) {
	d := NewDetector()
	sched := weekdaySchedule(15)

	t.Run("inside tolerance is on time", func(t *testing.T) {
		l, err := d.EvaluateLateness(sched, checkInAt(9, 15))
		require.NoError(t, err)
		assert.False(t, l.IsLate)
		assert.Equal(t, 0, l.LateMinutes)
	})

	t.Run("one minute past tolerance", func(t *testing.T) {
		l, err := d.EvaluateLateness(sched, checkInAt(9, 16))
		require.NoError(t, err)
		assert.True(t, l.IsLate)
		assert.Equal(t, 1, l.LateMinutes)
	})

	t.Run("late minutes are floored", func(t *testing.T) {
		l, err := d.EvaluateLateness(sched, checkInAt(9, 16).Add(59*time.Second))
		require.NoError(t, err)
		assert.True(t, l.IsLate)
		assert.Equal(t, 1, l.LateMinutes)
	})

	t.Run("well past tolerance", func(t *testing.T) {
		l, err := d.EvaluateLateness(sched, checkInAt(10, 0))
		require.NoError(t, err)
		assert.True(t, l.IsLate)
		assert.Equal(t, 45, l.LateMinutes)
	})

	t.Run("early check-in is on time", func(t *testing.T) {
		l, err := d.EvaluateLateness(sched, checkInAt(8, 0))
		require.NoError(t, err)
		assert.False(t, l.IsLate)
	})

	t.Run("never late on a non-working day", func(t *testing.T) {
		saturday := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
		l, err := d.EvaluateLateness(sched, saturday)
		require.NoError(t, err)
		assert.False(t, l.IsLate)
	})

	t.Run("zero tolerance", func(t *testing.T) {
		l, err := d.EvaluateLateness(weekdaySchedule(0), checkInAt(9, 1))
		require.NoError(t, err)
		assert.True(t, l.IsLate)
		assert.Equal(t, 1, l.LateMinutes)
	})
}

func TestEvaluateAutoOvertime(t *testing.T) {
	d := NewDetector()
	sched := weekdaySchedule(15)

	t.Run("before the tolerance band", func(t *testing.T) {
		minutes, err := d.EvaluateAutoOvertime(sched, checkInAt(8, 0))
		require.NoError(t, err)
		assert.Equal(t, 45, minutes)
	})

	t.Run("at the band edge is not overtime", func(t *testing.T) {
		minutes, err := d.EvaluateAutoOvertime(sched, checkInAt(8, 45))
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("inside the band", func(t *testing.T) {
		minutes, err := d.EvaluateAutoOvertime(sched, checkInAt(8, 50))
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("non-working day earns nothing", func(t *testing.T) {
		sunday := time.Date(2025, 7, 27, 6, 0, 0, 0, time.UTC)
		minutes, err := d.EvaluateAutoOvertime(sched, sunday)
		require.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})
}
