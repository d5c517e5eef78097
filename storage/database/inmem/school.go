package inmemdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
)

type schoolRepository struct {
	*DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) *schoolRepository {
	return &schoolRepository{DB: db}
}

// unique reports core.ErrConflict when two rows, new or stored, share a key.
func unique[T any](stored []T, rows []T, key func(T) string) error {
	seen := make(map[string]bool, len(stored)+len(rows))
	for _, row := range append(stored, rows...) {
		k := key(row)
		if k == "" {
			continue
		}
		if seen[k] {
			return core.ErrConflict
		}
		seen[k] = true
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Teachers

func (repo *schoolRepository) QueryTeachers(ctx context.Context, filter school.TeacherFilter, exec ...core.DBExecutor) ([]school.Teacher, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.teachers.query(func(t school.Teacher) bool {
		if filter.Department != "" && t.Department != filter.Department {
			return false
		}
		if filter.Search != "" {
			return containsFold(t.Firstname, filter.Search) ||
				containsFold(t.Lastname, filter.Search) ||
				containsFold(t.Email, filter.Search)
		}
		return true
	}), nil
}

func (repo *schoolRepository) GetTeacher(ctx context.Context, id int, exec ...core.DBExecutor) (school.Teacher, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	return repo.teachers.get(id)
}

func (repo *schoolRepository) CreateTeachers(ctx context.Context, teachers []school.Teacher, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if err := unique(repo.teachers.query(nil), teachers, func(t school.Teacher) string { return t.Email }); err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	for i := range teachers {
		teachers[i].CreatedAt = now
	}
	return len(repo.teachers.insert(repo.DB, teachers...)), nil
}

func (repo *schoolRepository) UpdateTeachers(ctx context.Context, teachers []school.Teacher, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i, t := range teachers {
		if orig, err := repo.teachers.get(t.ID); err == nil {
			teachers[i].CreatedAt = orig.CreatedAt
		}
	}
	return repo.teachers.update(teachers...), nil
}

func (repo *schoolRepository) DeleteTeachers(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.teachers.delete(ids...), nil
}

// Rooms

func (repo *schoolRepository) QueryRooms(ctx context.Context, exec ...core.DBExecutor) ([]school.Room, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	return repo.rooms.query(nil), nil
}

func (repo *schoolRepository) AvailableRooms(ctx context.Context, timeslotID int, exec ...core.DBExecutor) ([]school.Room, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	taken := make(map[int]bool)
	for _, cs := range repo.schedules.query(nil) {
		if cs.TimeslotID == timeslotID && cs.RoomID != nil {
			taken[*cs.RoomID] = true
		}
	}
	return repo.rooms.query(func(r school.Room) bool { return !taken[r.ID] }), nil
}

func (repo *schoolRepository) CreateRooms(ctx context.Context, rooms []school.Room, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if err := unique(repo.rooms.query(nil), rooms, func(r school.Room) string { return r.Name }); err != nil {
		return 0, err
	}
	return len(repo.rooms.insert(repo.DB, rooms...)), nil
}

func (repo *schoolRepository) UpdateRooms(ctx context.Context, rooms []school.Room, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.rooms.update(rooms...), nil
}

func (repo *schoolRepository) DeleteRooms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.rooms.delete(ids...), nil
}

// Subjects

func (repo *schoolRepository) QuerySubjects(ctx context.Context, filter school.SubjectFilter, exec ...core.DBExecutor) ([]school.Subject, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.subjects.query(func(s school.Subject) bool {
		if filter.ProgramID != 0 && (s.ProgramID == nil || *s.ProgramID != filter.ProgramID) {
			return false
		}
		return filter.Category == "" || s.Category == filter.Category
	}), nil
}

func (repo *schoolRepository) SubjectsNotInPrograms(ctx context.Context, exec ...core.DBExecutor) ([]school.Subject, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	return repo.subjects.query(func(s school.Subject) bool { return s.ProgramID == nil }), nil
}

func (repo *schoolRepository) CreateSubjects(ctx context.Context, subjects []school.Subject, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if err := unique(repo.subjects.query(nil), subjects, func(s school.Subject) string { return s.Code }); err != nil {
		return 0, err
	}
	return len(repo.subjects.insert(repo.DB, subjects...)), nil
}

func (repo *schoolRepository) UpdateSubjects(ctx context.Context, subjects []school.Subject, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.subjects.update(subjects...), nil
}

func (repo *schoolRepository) DeleteSubjects(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.subjects.delete(ids...), nil
}

// Programs

func (repo *schoolRepository) QueryPrograms(ctx context.Context, filter school.ProgramFilter, exec ...core.DBExecutor) ([]school.Program, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.programs.query(func(p school.Program) bool {
		return (filter.Year == 0 || p.Year == filter.Year) &&
			(filter.Semester == "" || p.Semester == filter.Semester) &&
			(filter.AcademicYear == 0 || p.AcademicYear == filter.AcademicYear)
	}), nil
}

func (repo *schoolRepository) CreatePrograms(ctx context.Context, programs []school.Program, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return len(repo.programs.insert(repo.DB, programs...)), nil
}

func (repo *schoolRepository) UpdatePrograms(ctx context.Context, programs []school.Program, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.programs.update(programs...), nil
}

func (repo *schoolRepository) DeletePrograms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.programs.delete(ids...), nil
}

// Grade levels

func (repo *schoolRepository) QueryGradeLevels(ctx context.Context, filter school.GradeLevelFilter, exec ...core.DBExecutor) ([]school.GradeLevel, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.grades.query(func(g school.GradeLevel) bool {
		if filter.ProgramID != 0 && (g.ProgramID == nil || *g.ProgramID != filter.ProgramID) {
			return false
		}
		return filter.Year == 0 || g.Year == filter.Year
	}), nil
}

func (repo *schoolRepository) CreateGradeLevels(ctx context.Context, grades []school.GradeLevel, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if err := unique(repo.grades.query(nil), grades, func(g school.GradeLevel) string { return g.Label() }); err != nil {
		return 0, err
	}
	return len(repo.grades.insert(repo.DB, grades...)), nil
}

func (repo *schoolRepository) UpdateGradeLevels(ctx context.Context, grades []school.GradeLevel, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.grades.update(grades...), nil
}

func (repo *schoolRepository) DeleteGradeLevels(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.grades.delete(ids...), nil
}

// Timeslots

func dayIndex(day school.DayOfWeek) int {
	for i, d := range school.Days {
		if d == day {
			return i
		}
	}
	return len(school.Days)
}

func (repo *schoolRepository) QueryTimeslots(ctx context.Context, term school.Term, exec ...core.DBExecutor) ([]school.Timeslot, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	slots := repo.timeslots.query(func(ts school.Timeslot) bool {
		return ts.AcademicYear == term.AcademicYear && ts.Semester == term.Semester
	})
	sortSlots(slots)
	return slots, nil
}

func sortSlots(slots []school.Timeslot) {
	less := func(a, b school.Timeslot) bool {
		if da, dbb := dayIndex(a.DayOfWeek), dayIndex(b.DayOfWeek); da != dbb {
			return da < dbb
		}
		return a.Period < b.Period
	}
	// insertion sort keeps the pk order of equal slots
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && less(slots[j], slots[j-1]); j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}
}

func (repo *schoolRepository) CreateTimeslots(ctx context.Context, slots []school.Timeslot, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	key := func(ts school.Timeslot) string {
		return fmt.Sprintf("%d|%s|%s|%d", ts.AcademicYear, ts.Semester, ts.DayOfWeek, ts.Period)
	}
	if err := unique(repo.timeslots.query(nil), slots, key); err != nil {
		return 0, err
	}
	return len(repo.timeslots.insert(repo.DB, slots...)), nil
}

func (repo *schoolRepository) DeleteTimeslots(ctx context.Context, term school.Term, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	return repo.timeslots.deleteWhere(func(ts school.Timeslot) bool {
		return ts.AcademicYear == term.AcademicYear && ts.Semester == term.Semester
	}), nil
}

// Class schedules

func (repo *schoolRepository) QueryClassSchedules(ctx context.Context, filter school.ClassScheduleFilter, exec ...core.DBExecutor) ([]school.ClassSchedule, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.schedules.query(func(cs school.ClassSchedule) bool {
		if filter.LockedOnly && !cs.IsLocked {
			return false
		}
		if filter.GradeID != 0 && cs.GradeID != filter.GradeID {
			return false
		}
		if filter.TeacherID != 0 && (cs.TeacherID == nil || *cs.TeacherID != filter.TeacherID) {
			return false
		}
		if !filter.Term.IsZero() {
			ts, err := repo.timeslots.get(cs.TimeslotID)
			if err != nil || ts.AcademicYear != filter.AcademicYear || ts.Semester != filter.Semester {
				return false
			}
		}
		return true
	}), nil
}

func scheduleKey(cs school.ClassSchedule) string {
	return fmt.Sprintf("%d|%d", cs.TimeslotID, cs.GradeID)
}

func (repo *schoolRepository) CreateClassSchedules(ctx context.Context, schedules []school.ClassSchedule, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if err := unique(repo.schedules.query(nil), schedules, scheduleKey); err != nil {
		return 0, err
	}
	return len(repo.schedules.insert(repo.DB, schedules...)), nil
}

func (repo *schoolRepository) UpdateClassSchedules(ctx context.Context, schedules []school.ClassSchedule, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.schedules.update(schedules...), nil
}

func (repo *schoolRepository) DeleteClassSchedules(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.schedules.delete(ids...), nil
}

// Responsibilities

func (repo *schoolRepository) QueryResponsibilities(ctx context.Context, filter school.ResponsibilityFilter, exec ...core.DBExecutor) ([]school.Responsibility, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	return repo.responsibilities.query(func(r school.Responsibility) bool {
		return (filter.TeacherID == 0 || r.TeacherID == filter.TeacherID) &&
			(filter.GradeID == 0 || r.GradeID == filter.GradeID) &&
			(filter.AcademicYear == 0 || r.AcademicYear == filter.AcademicYear) &&
			(filter.Semester == "" || r.Semester == filter.Semester)
	}), nil
}

func (repo *schoolRepository) CreateResponsibilities(ctx context.Context, resps []school.Responsibility, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return len(repo.responsibilities.insert(repo.DB, resps...)), nil
}

func (repo *schoolRepository) UpdateResponsibilities(ctx context.Context, resps []school.Responsibility, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.responsibilities.update(resps...), nil
}

func (repo *schoolRepository) DeleteResponsibilities(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	return repo.responsibilities.delete(ids...), nil
}

// Table configs

func (repo *schoolRepository) QueryTableConfigs(ctx context.Context, exec ...core.DBExecutor) ([]school.TableConfig, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	confs := repo.configs.query(nil)
	for i := 1; i < len(confs); i++ {
		for j := i; j > 0 && termLess(confs[j].Term(), confs[j-1].Term()); j-- {
			confs[j], confs[j-1] = confs[j-1], confs[j]
		}
	}
	return confs, nil
}

func termLess(a, b school.Term) bool {
	if a.AcademicYear != b.AcademicYear {
		return a.AcademicYear < b.AcademicYear
	}
	return a.Semester < b.Semester
}

func (repo *schoolRepository) findConfig(term school.Term) (school.TableConfig, bool) {
	for _, c := range repo.configs.rows {
		if c.Term() == term {
			return c, true
		}
	}
	return school.TableConfig{}, false
}

func (repo *schoolRepository) GetTableConfig(ctx context.Context, term school.Term, exec ...core.DBExecutor) (school.TableConfig, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if c, ok := repo.findConfig(term); ok {
		return c, nil
	}
	return school.TableConfig{}, core.ErrNotFound
}

func (repo *schoolRepository) SaveTableConfig(ctx context.Context, conf school.TableConfig, exec ...core.DBExecutor) (school.TableConfig, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if orig, ok := repo.findConfig(conf.Term()); ok {
		conf.ID = orig.ID
		repo.configs.update(conf)
		return conf, nil
	}
	return repo.configs.insert(repo.DB, conf)[0], nil
}

func (repo *schoolRepository) DeleteTableConfig(ctx context.Context, term school.Term, exec ...core.DBExecutor) (int, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	return repo.configs.deleteWhere(func(c school.TableConfig) bool { return c.Term() == term }), nil
}
