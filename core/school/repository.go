package school

import (
	"context"

	"github.com/trezcool/timetable/core"
)

// Every method takes an optional exec; when given, the call joins the caller's transaction.
// Bulk creations insert the rows in one statement and return how many were written.
type (
	TeacherRepository interface {
		QueryTeachers(ctx context.Context, filter TeacherFilter, exec ...core.DBExecutor) ([]Teacher, error)
		GetTeacher(ctx context.Context, id int, exec ...core.DBExecutor) (Teacher, error)
		CreateTeachers(ctx context.Context, teachers []Teacher, exec ...core.DBExecutor) (int, error)
		UpdateTeachers(ctx context.Context, teachers []Teacher, exec ...core.DBExecutor) (int, error)
		DeleteTeachers(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	RoomRepository interface {
		QueryRooms(ctx context.Context, exec ...core.DBExecutor) ([]Room, error)
		// AvailableRooms lists the rooms with no class scheduled on timeslotID.
		AvailableRooms(ctx context.Context, timeslotID int, exec ...core.DBExecutor) ([]Room, error)
		CreateRooms(ctx context.Context, rooms []Room, exec ...core.DBExecutor) (int, error)
		UpdateRooms(ctx context.Context, rooms []Room, exec ...core.DBExecutor) (int, error)
		DeleteRooms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	SubjectRepository interface {
		QuerySubjects(ctx context.Context, filter SubjectFilter, exec ...core.DBExecutor) ([]Subject, error)
		// SubjectsNotInPrograms lists the subjects not attached to any program.
		SubjectsNotInPrograms(ctx context.Context, exec ...core.DBExecutor) ([]Subject, error)
		CreateSubjects(ctx context.Context, subjects []Subject, exec ...core.DBExecutor) (int, error)
		UpdateSubjects(ctx context.Context, subjects []Subject, exec ...core.DBExecutor) (int, error)
		DeleteSubjects(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	ProgramRepository interface {
		QueryPrograms(ctx context.Context, filter ProgramFilter, exec ...core.DBExecutor) ([]Program, error)
		CreatePrograms(ctx context.Context, programs []Program, exec ...core.DBExecutor) (int, error)
		UpdatePrograms(ctx context.Context, programs []Program, exec ...core.DBExecutor) (int, error)
		DeletePrograms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	GradeLevelRepository interface {
		QueryGradeLevels(ctx context.Context, filter GradeLevelFilter, exec ...core.DBExecutor) ([]GradeLevel, error)
		CreateGradeLevels(ctx context.Context, grades []GradeLevel, exec ...core.DBExecutor) (int, error)
		UpdateGradeLevels(ctx context.Context, grades []GradeLevel, exec ...core.DBExecutor) (int, error)
		DeleteGradeLevels(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	TimeslotRepository interface {
		// QueryTimeslots orders by day then period.
		QueryTimeslots(ctx context.Context, term Term, exec ...core.DBExecutor) ([]Timeslot, error)
		CreateTimeslots(ctx context.Context, slots []Timeslot, exec ...core.DBExecutor) (int, error)
		DeleteTimeslots(ctx context.Context, term Term, exec ...core.DBExecutor) (int, error)
	}

	ClassScheduleRepository interface {
		QueryClassSchedules(ctx context.Context, filter ClassScheduleFilter, exec ...core.DBExecutor) ([]ClassSchedule, error)
		CreateClassSchedules(ctx context.Context, schedules []ClassSchedule, exec ...core.DBExecutor) (int, error)
		UpdateClassSchedules(ctx context.Context, schedules []ClassSchedule, exec ...core.DBExecutor) (int, error)
		DeleteClassSchedules(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	ResponsibilityRepository interface {
		QueryResponsibilities(ctx context.Context, filter ResponsibilityFilter, exec ...core.DBExecutor) ([]Responsibility, error)
		CreateResponsibilities(ctx context.Context, resps []Responsibility, exec ...core.DBExecutor) (int, error)
		UpdateResponsibilities(ctx context.Context, resps []Responsibility, exec ...core.DBExecutor) (int, error)
		DeleteResponsibilities(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
	}

	TableConfigRepository interface {
		QueryTableConfigs(ctx context.Context, exec ...core.DBExecutor) ([]TableConfig, error)
		GetTableConfig(ctx context.Context, term Term, exec ...core.DBExecutor) (TableConfig, error)
		// SaveTableConfig inserts the config of a term or replaces the existing one.
		SaveTableConfig(ctx context.Context, conf TableConfig, exec ...core.DBExecutor) (TableConfig, error)
		DeleteTableConfig(ctx context.Context, term Term, exec ...core.DBExecutor) (int, error)
	}

	// Repository is the whole school data store.
	Repository interface {
		core.Transactor

		TeacherRepository
		RoomRepository
		SubjectRepository
		ProgramRepository
		GradeLevelRepository
		TimeslotRepository
		ClassScheduleRepository
		ResponsibilityRepository
		TableConfigRepository
	}
)
