package boiledrepos

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/sqlboiler/v4/types"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	"github.com/trezcool/timetable/storage/database/sqlboiler/models"
)

type schoolRepository struct {
	baseRepository
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db core.DB) *schoolRepository {
	return &schoolRepository{baseRepository{db: db}}
}

func where(col string, val interface{}) qm.QueryMod {
	return qm.Where(fmt.Sprintf("%s = ?", models.Quote(col)), val)
}

func termMods(term school.Term) []qm.QueryMod {
	return []qm.QueryMod{
		where(models.TimeslotColumns.AcademicYear, term.AcademicYear),
		where(models.TimeslotColumns.Semester, string(term.Semester)),
	}
}

// insertAll bulk inserts rows; any bad row fails the whole statement.
func (repo schoolRepository) insertAll(ctx context.Context, exec boil.ContextExecutor, table string, cols []string, rows [][]interface{}, what string) (int, error) {
	cnt, err := models.InsertAll(ctx, exec, table, cols, rows)
	if err != nil {
		return 0, trapWriteErr(err, "inserting "+what)
	}
	return int(cnt), nil
}

// updateEach updates the rows one by one and returns how many existed.
func (repo schoolRepository) updateEach(ctx context.Context, exec boil.ContextExecutor, table string, ids []int, vals []models.M, what string) (int, error) {
	var total int64
	for i, id := range ids {
		cnt, err := models.UpdateAll(ctx, exec, table, vals[i], where("id", id))
		if err != nil {
			return int(total), trapWriteErr(err, "updating "+what)
		}
		total += cnt
	}
	return int(total), nil
}

func (repo schoolRepository) deleteByIDs(ctx context.Context, exec boil.ContextExecutor, table string, ids []int, what string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cnt, err := models.DeleteAll(ctx, exec, table, whereIDIn(ids))
	if err != nil {
		return 0, errors.Wrap(err, "deleting "+what)
	}
	return int(cnt), nil
}

// Teachers

func boilTeacher(t school.Teacher) *models.Teacher {
	return &models.Teacher{
		ID:         t.ID,
		Prefix:     t.Prefix,
		Firstname:  t.Firstname,
		Lastname:   t.Lastname,
		Department: t.Department,
		Email:      null.NewString(t.Email, t.Email != ""),
		CreatedAt:  t.CreatedAt,
	}
}

func unboilTeacher(t *models.Teacher) school.Teacher {
	return school.Teacher{
		ID:         t.ID,
		Prefix:     t.Prefix,
		Firstname:  t.Firstname,
		Lastname:   t.Lastname,
		Department: t.Department,
		Email:      t.Email.String,
		CreatedAt:  t.CreatedAt.UTC(),
	}
}

func (repo schoolRepository) QueryTeachers(ctx context.Context, filter school.TeacherFilter, exec ...core.DBExecutor) ([]school.Teacher, error) {
	var mods []qm.QueryMod

	if filter.Department != "" {
		mods = append(mods, where(models.TeacherColumns.Department, filter.Department))
	}
	// teachers with Firstname, Lastname or Email matching the search keyword
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		mods = append(mods, qm.Expr(qm.Where(
			fmt.Sprintf(
				"%s ILIKE ? OR %s ILIKE ? OR %s ILIKE ?",
				models.TeacherColumns.Firstname, models.TeacherColumns.Lastname, models.TeacherColumns.Email),
			val, val, val)))
	}
	mods = append(mods, qm.OrderBy(models.TeacherColumns.ID+" ASC"))

	var rows []*models.Teacher
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.Teacher, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]school.Teacher, 0, len(rows))
	for _, t := range rows {
		teachers = append(teachers, unboilTeacher(t))
	}
	return teachers, nil
}

func (repo schoolRepository) GetTeacher(ctx context.Context, id int, exec ...core.DBExecutor) (school.Teacher, error) {
	var row models.Teacher
	err := models.One(ctx, repo.getExec(exec), models.TableNames.Teacher, &row, where(models.TeacherColumns.ID, id))
	if err != nil {
		return school.Teacher{}, trapNoRowsErr(err, "finding teacher by ID")
	}
	return unboilTeacher(&row), nil
}

func (repo schoolRepository) CreateTeachers(ctx context.Context, teachers []school.Teacher, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, boilTeacher(t).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Teacher, models.TeacherInsertColumns, rows, "teachers")
}

func (repo schoolRepository) UpdateTeachers(ctx context.Context, teachers []school.Teacher, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(teachers))
	vals := make([]models.M, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.ID)
		vals = append(vals, boilTeacher(t).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.Teacher, ids, vals, "teachers")
}

func (repo schoolRepository) DeleteTeachers(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.Teacher, ids, "teachers")
}

// Rooms

func boilRoom(r school.Room) *models.Room {
	return &models.Room{ID: r.ID, Name: r.Name, Building: r.Building, Floor: r.Floor}
}

func unboilRooms(rows []*models.Room) []school.Room {
	rooms := make([]school.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, school.Room{ID: r.ID, Name: r.Name, Building: r.Building, Floor: r.Floor})
	}
	return rooms
}

func (repo schoolRepository) QueryRooms(ctx context.Context, exec ...core.DBExecutor) ([]school.Room, error) {
	var rows []*models.Room
	err := models.All(ctx, repo.getExec(exec), models.TableNames.Room, &rows, qm.OrderBy(models.RoomColumns.ID+" ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "querying rooms")
	}
	return unboilRooms(rows), nil
}

func (repo schoolRepository) AvailableRooms(ctx context.Context, timeslotID int, exec ...core.DBExecutor) ([]school.Room, error) {
	query := fmt.Sprintf(
		`SELECT r.* FROM %s r WHERE NOT EXISTS (SELECT 1 FROM %s cs WHERE cs.%s = r.%s AND cs.%s = $1) ORDER BY r.%s ASC`,
		models.Quote(models.TableNames.Room), models.Quote(models.TableNames.ClassSchedule),
		models.ClassScheduleColumns.RoomID, models.RoomColumns.ID, models.ClassScheduleColumns.TimeslotID,
		models.RoomColumns.ID,
	)

	var rows []*models.Room
	if err := queries.Raw(query, timeslotID).Bind(ctx, repo.getExec(exec), &rows); err != nil {
		return nil, errors.Wrap(err, "querying available rooms")
	}
	return unboilRooms(rows), nil
}

func (repo schoolRepository) CreateRooms(ctx context.Context, rooms []school.Room, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, boilRoom(r).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Room, models.RoomInsertColumns, rows, "rooms")
}

func (repo schoolRepository) UpdateRooms(ctx context.Context, rooms []school.Room, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(rooms))
	vals := make([]models.M, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
		vals = append(vals, boilRoom(r).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.Room, ids, vals, "rooms")
}

func (repo schoolRepository) DeleteRooms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.Room, ids, "rooms")
}

// Subjects

func boilSubject(s school.Subject) *models.Subject {
	return &models.Subject{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Credit:    s.Credit,
		Category:  s.Category,
		ProgramID: null.IntFromPtr(s.ProgramID),
	}
}

func unboilSubjects(rows []*models.Subject) []school.Subject {
	subjects := make([]school.Subject, 0, len(rows))
	for _, s := range rows {
		subjects = append(subjects, school.Subject{
			ID:        s.ID,
			Code:      s.Code,
			Name:      s.Name,
			Credit:    s.Credit,
			Category:  s.Category,
			ProgramID: s.ProgramID.Ptr(),
		})
	}
	return subjects
}

func (repo schoolRepository) querySubjects(ctx context.Context, exec boil.ContextExecutor, mods ...qm.QueryMod) ([]school.Subject, error) {
	mods = append(mods, qm.OrderBy(models.SubjectColumns.Code+" ASC"))

	var rows []*models.Subject
	if err := models.All(ctx, exec, models.TableNames.Subject, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return unboilSubjects(rows), nil
}

func (repo schoolRepository) QuerySubjects(ctx context.Context, filter school.SubjectFilter, exec ...core.DBExecutor) ([]school.Subject, error) {
	var mods []qm.QueryMod
	if filter.ProgramID != 0 {
		mods = append(mods, where(models.SubjectColumns.ProgramID, filter.ProgramID))
	}
	if filter.Category != "" {
		mods = append(mods, where(models.SubjectColumns.Category, filter.Category))
	}
	return repo.querySubjects(ctx, repo.getExec(exec), mods...)
}

func (repo schoolRepository) SubjectsNotInPrograms(ctx context.Context, exec ...core.DBExecutor) ([]school.Subject, error) {
	return repo.querySubjects(ctx, repo.getExec(exec), qm.Where(models.SubjectColumns.ProgramID+" IS NULL"))
}

func (repo schoolRepository) CreateSubjects(ctx context.Context, subjects []school.Subject, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, boilSubject(s).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Subject, models.SubjectInsertColumns, rows, "subjects")
}

func (repo schoolRepository) UpdateSubjects(ctx context.Context, subjects []school.Subject, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(subjects))
	vals := make([]models.M, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.ID)
		vals = append(vals, boilSubject(s).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.Subject, ids, vals, "subjects")
}

func (repo schoolRepository) DeleteSubjects(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.Subject, ids, "subjects")
}

// Programs

func boilProgram(p school.Program) *models.Program {
	return &models.Program{
		ID:           p.ID,
		Name:         p.Name,
		Year:         p.Year,
		Semester:     string(p.Semester),
		AcademicYear: p.AcademicYear,
	}
}

func (repo schoolRepository) QueryPrograms(ctx context.Context, filter school.ProgramFilter, exec ...core.DBExecutor) ([]school.Program, error) {
	var mods []qm.QueryMod
	if filter.Year != 0 {
		mods = append(mods, where(models.ProgramColumns.Year, filter.Year))
	}
	if filter.Semester != "" {
		mods = append(mods, where(models.ProgramColumns.Semester, string(filter.Semester)))
	}
	if filter.AcademicYear != 0 {
		mods = append(mods, where(models.ProgramColumns.AcademicYear, filter.AcademicYear))
	}
	mods = append(mods, qm.OrderBy(models.ProgramColumns.ID+" ASC"))

	var rows []*models.Program
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.Program, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying programs")
	}
	programs := make([]school.Program, 0, len(rows))
	for _, p := range rows {
		programs = append(programs, school.Program{
			ID:           p.ID,
			Name:         p.Name,
			Year:         p.Year,
			Semester:     school.Semester(p.Semester),
			AcademicYear: p.AcademicYear,
		})
	}
	return programs, nil
}

func (repo schoolRepository) CreatePrograms(ctx context.Context, programs []school.Program, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(programs))
	for _, p := range programs {
		rows = append(rows, boilProgram(p).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Program, models.ProgramInsertColumns, rows, "programs")
}

func (repo schoolRepository) UpdatePrograms(ctx context.Context, programs []school.Program, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(programs))
	vals := make([]models.M, 0, len(programs))
	for _, p := range programs {
		ids = append(ids, p.ID)
		vals = append(vals, boilProgram(p).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.Program, ids, vals, "programs")
}

func (repo schoolRepository) DeletePrograms(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.Program, ids, "programs")
}

// Grade levels

func boilGradeLevel(g school.GradeLevel) *models.Gradelevel {
	return &models.Gradelevel{
		ID:           g.ID,
		Year:         g.Year,
		Number:       g.Number,
		StudentCount: g.StudentCount,
		ProgramID:    null.IntFromPtr(g.ProgramID),
	}
}

func (repo schoolRepository) QueryGradeLevels(ctx context.Context, filter school.GradeLevelFilter, exec ...core.DBExecutor) ([]school.GradeLevel, error) {
	var mods []qm.QueryMod
	if filter.Year != 0 {
		mods = append(mods, where(models.GradelevelColumns.Year, filter.Year))
	}
	if filter.ProgramID != 0 {
		mods = append(mods, where(models.GradelevelColumns.ProgramID, filter.ProgramID))
	}
	mods = append(mods, qm.OrderBy(strings.Join([]string{
		core.DBOrdering{Field: models.GradelevelColumns.Year, Ascending: true}.String(),
		core.DBOrdering{Field: models.GradelevelColumns.Number, Ascending: true}.String(),
	}, ", ")))

	var rows []*models.Gradelevel
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.Gradelevel, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying grade levels")
	}
	grades := make([]school.GradeLevel, 0, len(rows))
	for _, g := range rows {
		grades = append(grades, school.GradeLevel{
			ID:           g.ID,
			Year:         g.Year,
			Number:       g.Number,
			StudentCount: g.StudentCount,
			ProgramID:    g.ProgramID.Ptr(),
		})
	}
	return grades, nil
}

func (repo schoolRepository) CreateGradeLevels(ctx context.Context, grades []school.GradeLevel, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, boilGradeLevel(g).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Gradelevel, models.GradelevelInsertColumns, rows, "grade levels")
}

func (repo schoolRepository) UpdateGradeLevels(ctx context.Context, grades []school.GradeLevel, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(grades))
	vals := make([]models.M, 0, len(grades))
	for _, g := range grades {
		ids = append(ids, g.ID)
		vals = append(vals, boilGradeLevel(g).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.Gradelevel, ids, vals, "grade levels")
}

func (repo schoolRepository) DeleteGradeLevels(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.Gradelevel, ids, "grade levels")
}

// Timeslots

// dayOrder sorts day codes MON..SUN instead of alphabetically.
const dayOrder = `array_position(ARRAY['MON','TUE','WED','THU','FRI','SAT','SUN'], day_of_week)`

func (repo schoolRepository) QueryTimeslots(ctx context.Context, term school.Term, exec ...core.DBExecutor) ([]school.Timeslot, error) {
	mods := append(termMods(term), qm.OrderBy(dayOrder+" ASC, "+models.TimeslotColumns.Period+" ASC"))

	var rows []*models.Timeslot
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.Timeslot, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying timeslots")
	}
	slots := make([]school.Timeslot, 0, len(rows))
	for _, ts := range rows {
		slots = append(slots, school.Timeslot{
			ID:           ts.ID,
			AcademicYear: ts.AcademicYear,
			Semester:     school.Semester(ts.Semester),
			DayOfWeek:    school.DayOfWeek(ts.DayOfWeek),
			Period:       ts.Period,
			StartTime:    ts.StartTime,
			EndTime:      ts.EndTime,
			BreakTime:    school.BreakTime(ts.BreakTime),
		})
	}
	return slots, nil
}

func (repo schoolRepository) CreateTimeslots(ctx context.Context, slots []school.Timeslot, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(slots))
	for _, ts := range slots {
		bt := ts.BreakTime
		if bt == "" {
			bt = school.NotBreak
		}
		row := &models.Timeslot{
			AcademicYear: ts.AcademicYear,
			Semester:     string(ts.Semester),
			DayOfWeek:    string(ts.DayOfWeek),
			Period:       ts.Period,
			StartTime:    ts.StartTime,
			EndTime:      ts.EndTime,
			BreakTime:    string(bt),
		}
		rows = append(rows, row.InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.Timeslot, models.TimeslotInsertColumns, rows, "timeslots")
}

func (repo schoolRepository) DeleteTimeslots(ctx context.Context, term school.Term, exec ...core.DBExecutor) (int, error) {
	cnt, err := models.DeleteAll(ctx, repo.getExec(exec), models.TableNames.Timeslot, termMods(term)...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting timeslots")
	}
	return int(cnt), nil
}

// Class schedules

func boilClassSchedule(cs school.ClassSchedule) *models.ClassSchedule {
	return &models.ClassSchedule{
		ID:         cs.ID,
		TimeslotID: cs.TimeslotID,
		SubjectID:  cs.SubjectID,
		GradeID:    cs.GradeID,
		RoomID:     null.IntFromPtr(cs.RoomID),
		TeacherID:  null.IntFromPtr(cs.TeacherID),
		IsLocked:   cs.IsLocked,
	}
}

func (repo schoolRepository) QueryClassSchedules(ctx context.Context, filter school.ClassScheduleFilter, exec ...core.DBExecutor) ([]school.ClassSchedule, error) {
	var mods []qm.QueryMod
	if filter.LockedOnly {
		mods = append(mods, where(models.ClassScheduleColumns.IsLocked, true))
	}
	if filter.GradeID != 0 {
		mods = append(mods, where(models.ClassScheduleColumns.GradeID, filter.GradeID))
	}
	if filter.TeacherID != 0 {
		mods = append(mods, where(models.ClassScheduleColumns.TeacherID, filter.TeacherID))
	}
	if !filter.Term.IsZero() {
		mods = append(mods, qm.Where(
			fmt.Sprintf(
				"%s IN (SELECT %s FROM %s WHERE %s = ? AND %s = ?)",
				models.ClassScheduleColumns.TimeslotID, models.TimeslotColumns.ID, models.Quote(models.TableNames.Timeslot),
				models.TimeslotColumns.AcademicYear, models.TimeslotColumns.Semester),
			filter.AcademicYear, string(filter.Semester)))
	}
	mods = append(mods, qm.OrderBy(models.ClassScheduleColumns.ID+" ASC"))

	var rows []*models.ClassSchedule
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.ClassSchedule, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying class schedules")
	}
	schedules := make([]school.ClassSchedule, 0, len(rows))
	for _, cs := range rows {
		schedules = append(schedules, school.ClassSchedule{
			ID:         cs.ID,
			TimeslotID: cs.TimeslotID,
			SubjectID:  cs.SubjectID,
			GradeID:    cs.GradeID,
			RoomID:     cs.RoomID.Ptr(),
			TeacherID:  cs.TeacherID.Ptr(),
			IsLocked:   cs.IsLocked,
		})
	}
	return schedules, nil
}

func (repo schoolRepository) CreateClassSchedules(ctx context.Context, schedules []school.ClassSchedule, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(schedules))
	for _, cs := range schedules {
		rows = append(rows, boilClassSchedule(cs).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.ClassSchedule, models.ClassScheduleInsertColumns, rows, "class schedules")
}

func (repo schoolRepository) UpdateClassSchedules(ctx context.Context, schedules []school.ClassSchedule, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(schedules))
	vals := make([]models.M, 0, len(schedules))
	for _, cs := range schedules {
		ids = append(ids, cs.ID)
		vals = append(vals, boilClassSchedule(cs).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.ClassSchedule, ids, vals, "class schedules")
}

func (repo schoolRepository) DeleteClassSchedules(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.ClassSchedule, ids, "class schedules")
}

// Responsibilities

func boilResponsibility(r school.Responsibility) *models.TeacherResponsibility {
	return &models.TeacherResponsibility{
		ID:           r.ID,
		TeacherID:    r.TeacherID,
		GradeID:      r.GradeID,
		SubjectID:    r.SubjectID,
		AcademicYear: r.AcademicYear,
		Semester:     string(r.Semester),
		TeachHour:    r.TeachHour,
	}
}

func (repo schoolRepository) QueryResponsibilities(ctx context.Context, filter school.ResponsibilityFilter, exec ...core.DBExecutor) ([]school.Responsibility, error) {
	var mods []qm.QueryMod
	if filter.TeacherID != 0 {
		mods = append(mods, where(models.TeacherResponsibilityColumns.TeacherID, filter.TeacherID))
	}
	if filter.GradeID != 0 {
		mods = append(mods, where(models.TeacherResponsibilityColumns.GradeID, filter.GradeID))
	}
	if filter.AcademicYear != 0 {
		mods = append(mods, where(models.TeacherResponsibilityColumns.AcademicYear, filter.AcademicYear))
	}
	if filter.Semester != "" {
		mods = append(mods, where(models.TeacherResponsibilityColumns.Semester, string(filter.Semester)))
	}
	mods = append(mods, qm.OrderBy(models.TeacherResponsibilityColumns.ID+" ASC"))

	var rows []*models.TeacherResponsibility
	if err := models.All(ctx, repo.getExec(exec), models.TableNames.TeacherResponsibility, &rows, mods...); err != nil {
		return nil, errors.Wrap(err, "querying responsibilities")
	}
	resps := make([]school.Responsibility, 0, len(rows))
	for _, r := range rows {
		resps = append(resps, school.Responsibility{
			ID:           r.ID,
			TeacherID:    r.TeacherID,
			GradeID:      r.GradeID,
			SubjectID:    r.SubjectID,
			AcademicYear: r.AcademicYear,
			Semester:     school.Semester(r.Semester),
			TeachHour:    r.TeachHour,
		})
	}
	return resps, nil
}

func (repo schoolRepository) CreateResponsibilities(ctx context.Context, resps []school.Responsibility, exec ...core.DBExecutor) (int, error) {
	rows := make([][]interface{}, 0, len(resps))
	for _, r := range resps {
		rows = append(rows, boilResponsibility(r).InsertValues())
	}
	return repo.insertAll(ctx, repo.getExec(exec), models.TableNames.TeacherResponsibility, models.TeacherResponsibilityInsertColumns, rows, "responsibilities")
}

func (repo schoolRepository) UpdateResponsibilities(ctx context.Context, resps []school.Responsibility, exec ...core.DBExecutor) (int, error) {
	ids := make([]int, 0, len(resps))
	vals := make([]models.M, 0, len(resps))
	for _, r := range resps {
		ids = append(ids, r.ID)
		vals = append(vals, boilResponsibility(r).UpdateValues())
	}
	return repo.updateEach(ctx, repo.getExec(exec), models.TableNames.TeacherResponsibility, ids, vals, "responsibilities")
}

func (repo schoolRepository) DeleteResponsibilities(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error) {
	return repo.deleteByIDs(ctx, repo.getExec(exec), models.TableNames.TeacherResponsibility, ids, "responsibilities")
}

// Table configs

func unboilTableConfig(c *models.TableConfig) school.TableConfig {
	return school.TableConfig{
		ID:           c.ID,
		AcademicYear: c.AcademicYear,
		Semester:     school.Semester(c.Semester),
		Config:       json.RawMessage(c.Config),
	}
}

func (repo schoolRepository) QueryTableConfigs(ctx context.Context, exec ...core.DBExecutor) ([]school.TableConfig, error) {
	var rows []*models.TableConfig
	err := models.All(ctx, repo.getExec(exec), models.TableNames.TableConfig, &rows,
		qm.OrderBy(models.TableConfigColumns.AcademicYear+" ASC, "+models.TableConfigColumns.Semester+" ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "querying table configs")
	}
	confs := make([]school.TableConfig, 0, len(rows))
	for _, c := range rows {
		confs = append(confs, unboilTableConfig(c))
	}
	return confs, nil
}

func (repo schoolRepository) GetTableConfig(ctx context.Context, term school.Term, exec ...core.DBExecutor) (school.TableConfig, error) {
	var row models.TableConfig
	if err := models.One(ctx, repo.getExec(exec), models.TableNames.TableConfig, &row, termMods(term)...); err != nil {
		return school.TableConfig{}, trapNoRowsErr(err, "finding table config")
	}
	return unboilTableConfig(&row), nil
}

func (repo schoolRepository) SaveTableConfig(ctx context.Context, conf school.TableConfig, exec ...core.DBExecutor) (school.TableConfig, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s, %s, %s`,
		models.Quote(models.TableNames.TableConfig),
		models.TableConfigColumns.AcademicYear, models.TableConfigColumns.Semester, models.TableConfigColumns.Config,
		models.TableConfigColumns.AcademicYear, models.TableConfigColumns.Semester,
		models.TableConfigColumns.Config, models.TableConfigColumns.Config,
		models.TableConfigColumns.ID, models.TableConfigColumns.AcademicYear, models.TableConfigColumns.Semester, models.TableConfigColumns.Config,
	)

	cfg := types.JSON(conf.Config)
	if len(cfg) == 0 {
		cfg = types.JSON("{}")
	}
	var row models.TableConfig
	err := queries.Raw(query, conf.AcademicYear, string(conf.Semester), cfg).Bind(ctx, repo.getExec(exec), &row)
	if err != nil {
		return school.TableConfig{}, trapWriteErr(err, "saving table config")
	}
	return unboilTableConfig(&row), nil
}

func (repo schoolRepository) DeleteTableConfig(ctx context.Context, term school.Term, exec ...core.DBExecutor) (int, error) {
	cnt, err := models.DeleteAll(ctx, repo.getExec(exec), models.TableNames.TableConfig, termMods(term)...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting table config")
	}
	return int(cnt), nil
}
