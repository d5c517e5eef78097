// Package school holds the timetable data model of a secondary school:
// teachers, rooms, subjects, programs, grade levels, timeslots and the class schedule built on them.
package school

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
)

const clockLayout = "15:04"

var (
	// errors
	ErrNotFound       = core.ErrNotFound
	ErrNotImplemented = errors.New("กำลังพัฒนาระบบตรวจสอบความขัดแย้ง")
	ErrInvalidClock   = errors.New("time must be formatted as HH:MM")
	ErrNoSettings     = errors.New("the timetable of this term is not configured")
	ErrBadSettings    = errors.New("invalid timetable settings")
)

// Service adds the multi-row workflows on top of the Repository.
// Single-entity reads and writes go straight to the embedded Repository.
type Service struct {
	Repository
}

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
	).CheckAndPanic()

	return &Service{Repository: repo}
}

// CreateLocks schedules lock.SubjectID on every (timeslot, grade) pair of lock, all or nothing.
func (svc *Service) CreateLocks(ctx context.Context, lock NewLock) (int, error) {
	schedules := make([]ClassSchedule, 0, len(lock.TimeslotIDs)*len(lock.GradeIDs))
	for _, slotID := range lock.TimeslotIDs {
		for _, gradeID := range lock.GradeIDs {
			schedules = append(schedules, ClassSchedule{
				TimeslotID: slotID,
				SubjectID:  lock.SubjectID,
				GradeID:    gradeID,
				RoomID:     lock.RoomID,
				TeacherID:  lock.TeacherID,
				IsLocked:   true,
			})
		}
	}

	var cnt int
	err := svc.WithTx(ctx, func(exec core.DBExecutor) error {
		var err error
		cnt, err = svc.CreateClassSchedules(ctx, schedules, exec)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "creating locks")
	}
	return cnt, nil
}

// Settings decodes the timetable settings stored for term.
func (svc *Service) Settings(ctx context.Context, term Term) (TimetableSettings, error) {
	conf, err := svc.GetTableConfig(ctx, term)
	if err != nil {
		if core.IsNotFound(err) {
			return TimetableSettings{}, core.NewValidationError(ErrNoSettings)
		}
		return TimetableSettings{}, errors.Wrap(err, "getting table config")
	}
	var settings TimetableSettings
	if err = json.Unmarshal(conf.Config, &settings); err != nil {
		return TimetableSettings{}, core.NewValidationError(errors.Wrap(err, "decoding timetable settings"))
	}
	return settings, nil
}

// Validate checks the term of c and the timetable settings it carries.
func (c *TableConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	var settings TimetableSettings
	if err := json.Unmarshal(c.Config, &settings); err != nil {
		return core.NewValidationError(ErrBadSettings, core.FieldError{Field: "config", Error: ErrBadSettings.Error()})
	}
	if err := validate.Struct(settings); err != nil {
		return err
	}
	if _, err := time.Parse(clockLayout, settings.StartTime); err != nil {
		return core.NewValidationError(ErrInvalidClock, core.FieldError{Field: "start_time", Error: ErrInvalidClock.Error()})
	}
	return nil
}

// GenerateTimeslots replaces the timeslots of term with the ones built from its settings.
func (svc *Service) GenerateTimeslots(ctx context.Context, term Term) (int, error) {
	settings, err := svc.Settings(ctx, term)
	if err != nil {
		return 0, err
	}
	slots, err := BuildTimeslots(term, settings)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: "start_time", Error: err.Error()})
	}

	var cnt int
	err = svc.WithTx(ctx, func(exec core.DBExecutor) error {
		if _, err := svc.DeleteTimeslots(ctx, term, exec); err != nil {
			return err
		}
		cnt, err = svc.CreateTimeslots(ctx, slots, exec)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "generating timeslots")
	}
	return cnt, nil
}

// CheckConflicts is reserved for teacher and room double-booking detection.
func (svc *Service) CheckConflicts(ctx context.Context, term Term) error {
	return ErrNotImplemented
}

// BuildTimeslots lays settings.TimeslotPerDay back-to-back periods of settings.Duration minutes on each day.
// Lunch periods keep their slot and are flagged with the matching BreakTime.
func BuildTimeslots(term Term, settings TimetableSettings) ([]Timeslot, error) {
	start, err := time.Parse(clockLayout, settings.StartTime)
	if err != nil {
		return nil, ErrInvalidClock
	}
	period := time.Duration(settings.Duration) * time.Minute

	slots := make([]Timeslot, 0, len(settings.Days)*settings.TimeslotPerDay)
	for _, day := range settings.Days {
		for p := 1; p <= settings.TimeslotPerDay; p++ {
			from := start.Add(time.Duration(p-1) * period)
			slots = append(slots, Timeslot{
				AcademicYear: term.AcademicYear,
				Semester:     term.Semester,
				DayOfWeek:    day,
				Period:       p,
				StartTime:    from.Format(clockLayout),
				EndTime:      from.Add(period).Format(clockLayout),
				BreakTime:    breakTimeOf(p, settings),
			})
		}
	}
	return slots, nil
}

func breakTimeOf(period int, settings TimetableSettings) BreakTime {
	junior := period == settings.BreakJunior
	senior := period == settings.BreakSenior
	switch {
	case junior && senior:
		return BreakBoth
	case junior:
		return BreakJunior
	case senior:
		return BreakSenior
	default:
		return NotBreak
	}
}
