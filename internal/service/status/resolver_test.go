package status

import (
	"context"
	"testing"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/employee"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/holiday"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes over the repository interfaces.

type fakeEmployeeRepo struct{ emp employee.Employee }

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}
func (f *fakeEmployeeRepo) List(context.Context, bool) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}
func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

type fakeScheduleRepo struct{ company schedule.WorkSchedule }

func (f *fakeScheduleRepo) GetCompanySchedule(context.Context) (schedule.WorkSchedule, error) {
	return f.company, nil
}
func (f *fakeScheduleRepo) GetByEmployeeID(context.Context, string) (schedule.WorkSchedule, error) {
	return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
}
func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	return s, nil
}
func (f *fakeScheduleRepo) Update(context.Context, schedule.WorkSchedule) error { return nil }

type fakeTripRepo struct{ trips []trip.BusinessTrip }

func (f *fakeTripRepo) Create(_ context.Context, t trip.BusinessTrip) (trip.BusinessTrip, error) {
	return t, nil
}
func (f *fakeTripRepo) GetByID(context.Context, string) (trip.BusinessTrip, error) {
	return trip.BusinessTrip{}, trip.ErrTripNotFound
}
func (f *fakeTripRepo) ListApprovedOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]trip.BusinessTrip, error) {
	var out []trip.BusinessTrip
	for _, t := range f.trips {
		if t.EmployeeID == employeeID && t.Status == trip.StatusApproved &&
			daterange.Overlaps(t.DateFrom, t.DateTo, from, to) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTripRepo) ListByEmployee(context.Context, string, *trip.Status) ([]trip.BusinessTrip, error) {
	return f.trips, nil
}
func (f *fakeTripRepo) UpdateStatus(context.Context, trip.BusinessTrip) error { return nil }

type fakeLeaveRepo struct{ requests []leave.Request }

func (f *fakeLeaveRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	return r, nil
}
func (f *fakeLeaveRepo) GetByID(context.Context, string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}
func (f *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.RequestStatusApproved &&
			daterange.Overlaps(r.DateFrom, r.DateTo, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeLeaveRepo) ListByEmployee(context.Context, string, *leave.RequestStatus) ([]leave.Request, error) {
	return f.requests, nil
}
func (f *fakeLeaveRepo) UpdateStatus(context.Context, leave.Request) error { return nil }

type fakeSickRepo struct{ leaves []sickleave.SickLeave }

func (f *fakeSickRepo) Create(_ context.Context, sl sickleave.SickLeave) (sickleave.SickLeave, error) {
	return sl, nil
}
func (f *fakeSickRepo) GetByID(context.Context, string) (sickleave.SickLeave, error) {
	return sickleave.SickLeave{}, sickleave.ErrSickLeaveNotFound
}
func (f *fakeSickRepo) ListOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]sickleave.SickLeave, error) {
	var out []sickleave.SickLeave
	for _, sl := range f.leaves {
		if sl.EmployeeID == employeeID && daterange.Overlaps(sl.StartDate, sl.EndDate, from, to) {
			out = append(out, sl)
		}
	}
	return out, nil
}
func (f *fakeSickRepo) ListByEmployee(context.Context, string) ([]sickleave.SickLeave, error) {
	return f.leaves, nil
}
func (f *fakeSickRepo) Delete(context.Context, string) error { return nil }

type fakeHolidayRepo struct{ holidays []holiday.Holiday }

func (f *fakeHolidayRepo) List(context.Context) ([]holiday.Holiday, error) { return f.holidays, nil }
func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}
func (f *fakeHolidayRepo) Delete(context.Context, string) error { return nil }

type fakeAttendanceRepo struct{ records []attendance.Record }

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}
func (f *fakeAttendanceRepo) GetByID(context.Context, string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	for i := range f.records {
		if f.records[i].EmployeeID == employeeID && daterange.SameDay(f.records[i].Date, date) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}
func (f *fakeAttendanceRepo) ListByEmployeeRange(context.Context, string, time.Time, time.Time) ([]attendance.Record, error) {
	return f.records, nil
}

type fixture struct {
	employees  *fakeEmployeeRepo
	schedules  *fakeScheduleRepo
	trips      *fakeTripRepo
	leaves     *fakeLeaveRepo
	sick       *fakeSickRepo
	holidays   *fakeHolidayRepo
	attendance *fakeAttendanceRepo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func newFixture() *fixture {
	return &fixture{
		employees: &fakeEmployeeRepo{emp: employee.Employee{
			ID:                "emp-1",
			FullName:          "Anna Bianchi",
			HireDate:          day(2025, 7, 1),
			TrackingStartType: employee.TrackingFromHireDate,
			IsActive:          true,
		}},
		schedules: &fakeScheduleRepo{company: schedule.WorkSchedule{
			Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
			StartTime:        "09:00",
			EndTime:          "18:00",
			ToleranceMinutes: 15,
		}},
		trips:      &fakeTripRepo{},
		leaves:     &fakeLeaveRepo{},
		sick:       &fakeSickRepo{},
		holidays:   &fakeHolidayRepo{},
		attendance: &fakeAttendanceRepo{},
	}
}

func (f *fixture) resolver() *Resolver {
	return NewResolver(f.employees, f.schedules, f.trips, f.leaves, f.sick, f.holidays, f.attendance)
}

func TestResolveDayStatusPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("day before hire date", func(t *testing.T) {
		f := newFixture()
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 6, 30))
		require.NoError(t, err)
		assert.Equal(t, status.KindNotYetHired, st.Kind)
	})

	t.Run("hire date itself is tracked", func(t *testing.T) {
		f := newFixture()
		// Tue 1 July 2025, no records: plain absence, not not-yet-hired.
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 1))
		require.NoError(t, err)
		assert.Equal(t, status.KindAbsent, st.Kind)
	})

	t.Run("year-start tracking ignores the hire date", func(t *testing.T) {
		f := newFixture()
		f.employees.emp.TrackingStartType = employee.TrackingFromYearStart
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 6, 30))
		require.NoError(t, err)
		assert.Equal(t, status.KindAbsent, st.Kind)
	})

	t.Run("sick leave outranks an approved trip", func(t *testing.T) {
		f := newFixture()
		f.sick.leaves = []sickleave.SickLeave{{
			ID: "sick-1", EmployeeID: "emp-1",
			StartDate: day(2025, 7, 7), EndDate: day(2025, 7, 11),
		}}
		f.trips.trips = []trip.BusinessTrip{{
			ID: "trip-1", EmployeeID: "emp-1", Status: trip.StatusApproved,
			DateFrom: day(2025, 7, 7), DateTo: day(2025, 7, 9),
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindSickLeave, st.Kind)
		require.NotNil(t, st.RecordID)
		assert.Equal(t, "sick-1", *st.RecordID)
	})

	t.Run("approved trip outranks approved ferie", func(t *testing.T) {
		f := newFixture()
		f.trips.trips = []trip.BusinessTrip{{
			ID: "trip-1", EmployeeID: "emp-1", Status: trip.StatusApproved,
			DateFrom: day(2025, 7, 7), DateTo: day(2025, 7, 9),
		}}
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypeFerie,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 7), DateTo: day(2025, 7, 11),
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindBusinessTrip, st.Kind)
	})

	t.Run("pending leave does not count", func(t *testing.T) {
		f := newFixture()
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypeFerie,
			Status:   leave.RequestStatusPending,
			DateFrom: day(2025, 7, 7), DateTo: day(2025, 7, 11),
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindAbsent, st.Kind)
	})

	t.Run("approved ferie outranks presence", func(t *testing.T) {
		f := newFixture()
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypeFerie,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 8), DateTo: day(2025, 7, 8),
		}}
		checkIn := time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC)
		f.attendance.records = []attendance.Record{{
			ID: "att-1", EmployeeID: "emp-1", Date: day(2025, 7, 8), CheckIn: &checkIn,
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindOnLeave, st.Kind)
	})

	t.Run("time-windowed permesso keeps the day present", func(t *testing.T) {
		f := newFixture()
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypePermesso,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 8), DateTo: day(2025, 7, 8),
			TimeFrom: strPtr("14:00"), TimeTo: strPtr("16:00"),
		}}
		checkIn := time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC)
		f.attendance.records = []attendance.Record{{
			ID: "att-1", EmployeeID: "emp-1", Date: day(2025, 7, 8), CheckIn: &checkIn,
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindPresent, st.Kind)
		require.NotNil(t, st.PermissionWindow)
		assert.Equal(t, "14:00-16:00", *st.PermissionWindow)
	})

	t.Run("full-day permesso takes the day", func(t *testing.T) {
		f := newFixture()
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypePermesso,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 8), DateTo: day(2025, 7, 8),
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindOnLeave, st.Kind)
	})

	t.Run("holiday beats weekday absence", func(t *testing.T) {
		f := newFixture()
		f.holidays.holidays = []holiday.Holiday{{
			ID: "hol-1", Name: "Ferragosto", Recurring: true, Month: 8, Day: 15,
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 8, 15))
		require.NoError(t, err)
		assert.Equal(t, status.KindNonWorkingDay, st.Kind)
		assert.Equal(t, "Ferragosto", st.Description)
	})

	t.Run("weekend is a non-working day", func(t *testing.T) {
		f := newFixture()
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 12))
		require.NoError(t, err)
		assert.Equal(t, status.KindNonWorkingDay, st.Kind)
	})

	t.Run("presence wins on a working day", func(t *testing.T) {
		f := newFixture()
		checkIn := time.Date(2025, 7, 8, 9, 5, 0, 0, time.UTC)
		f.attendance.records = []attendance.Record{{
			ID: "att-1", EmployeeID: "emp-1", Date: day(2025, 7, 8), CheckIn: &checkIn,
		}}
		st, err := f.resolver().ResolveDayStatus(ctx, "emp-1", day(2025, 7, 8))
		require.NoError(t, err)
		assert.Equal(t, status.KindPresent, st.Kind)
	})
}

func TestResolveRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// Mon 7 .. Sun 13 July 2025.
	statuses, err := f.resolver().ResolveRange(ctx, "emp-1", day(2025, 7, 7), day(2025, 7, 13))
	require.NoError(t, err)
	require.Len(t, statuses, 7)
	assert.Equal(t, status.KindAbsent, statuses[0].Kind)
	assert.Equal(t, status.KindNonWorkingDay, statuses[5].Kind)
	assert.Equal(t, status.KindNonWorkingDay, statuses[6].Kind)

	_, err = f.resolver().ResolveRange(ctx, "emp-1", day(2025, 7, 13), day(2025, 7, 7))
	assert.Error(t, err)
}

func TestCheckConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("trip against existing ferie", func(t *testing.T) {
		f := newFixture()
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypeFerie,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 21), DateTo: day(2025, 7, 25),
		}}
		conflict, err := f.resolver().CheckConflicts(ctx, "emp-1",
			day(2025, 7, 23), day(2025, 7, 26), status.ConflictBusinessTrip)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, status.ConflictFerie, conflict.Kind)
		assert.Equal(t, "leave-1", conflict.RecordID)
	})

	t.Run("own kind is excluded", func(t *testing.T) {
		f := newFixture()
		f.trips.trips = []trip.BusinessTrip{{
			ID: "trip-1", EmployeeID: "emp-1", Status: trip.StatusApproved,
			DateFrom: day(2025, 7, 21), DateTo: day(2025, 7, 25),
		}}
		conflict, err := f.resolver().CheckConflicts(ctx, "emp-1",
			day(2025, 7, 23), day(2025, 7, 26), status.ConflictBusinessTrip)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("sick leave reported first", func(t *testing.T) {
		f := newFixture()
		f.sick.leaves = []sickleave.SickLeave{{
			ID: "sick-1", EmployeeID: "emp-1",
			StartDate: day(2025, 7, 22), EndDate: day(2025, 7, 22),
		}}
		f.leaves.requests = []leave.Request{{
			ID: "leave-1", EmployeeID: "emp-1", Type: leave.TypeFerie,
			Status:   leave.RequestStatusApproved,
			DateFrom: day(2025, 7, 21), DateTo: day(2025, 7, 25),
		}}
		conflict, err := f.resolver().CheckConflicts(ctx, "emp-1",
			day(2025, 7, 21), day(2025, 7, 25), status.ConflictBusinessTrip)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, status.ConflictSickLeave, conflict.Kind)
	})

	t.Run("no conflicts on a clear range", func(t *testing.T) {
		f := newFixture()
		conflict, err := f.resolver().CheckConflicts(ctx, "emp-1",
			day(2025, 7, 21), day(2025, 7, 25), status.ConflictFerie)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}
