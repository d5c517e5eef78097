package inmemdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	inmemdb "github.com/trezcool/timetable/storage/database/inmem"
)

func TestSchoolRepository_teachers(t *testing.T) {
	repo := inmemdb.NewSchoolRepository(inmemdb.NewDB())
	ctx := context.Background()

	cnt, err := repo.CreateTeachers(ctx, []school.Teacher{
		{Prefix: "Mr.", Firstname: "Somsak", Lastname: "Dee", Department: "Science", Email: "somsak@school.test"},
		{Prefix: "Ms.", Firstname: "Malee", Lastname: "Suk", Department: "Math"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)

	found, err := repo.QueryTeachers(ctx, school.TeacherFilter{Search: "SOMSAK"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dee", found[0].Lastname)

	found, _ = repo.QueryTeachers(ctx, school.TeacherFilter{Department: "Math"})
	require.Len(t, found, 1)
	assert.Equal(t, "Malee", found[0].Firstname)

	_, err = repo.CreateTeachers(ctx, []school.Teacher{
		{Firstname: "New", Lastname: "One"},
		{Firstname: "Dup", Lastname: "Licate", Email: "somsak@school.test"},
	})
	assert.True(t, core.IsConflict(err), "got %v", err)

	teachers, _ := repo.QueryTeachers(ctx, school.TeacherFilter{})
	require.Len(t, teachers, 2)
	assert.Less(t, teachers[0].ID, teachers[1].ID)

	teachers[1].Department = "Art"
	cnt, err = repo.UpdateTeachers(ctx, []school.Teacher{teachers[1], {ID: 999, Firstname: "Ghost"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)
	got, err := repo.GetTeacher(ctx, teachers[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Art", got.Department)
	assert.Equal(t, teachers[1].CreatedAt, got.CreatedAt)

	_, err = repo.GetTeacher(ctx, 999)
	assert.True(t, core.IsNotFound(err))

	cnt, _ = repo.DeleteTeachers(ctx, []int{teachers[0].ID, 999})
	assert.Equal(t, 1, cnt)
}

func TestSchoolRepository_timeslots(t *testing.T) {
	repo := inmemdb.NewSchoolRepository(inmemdb.NewDB())
	ctx := context.Background()
	term := school.Term{AcademicYear: 2566, Semester: school.Semester1}
	other := school.Term{AcademicYear: 2566, Semester: school.Semester2}

	_, err := repo.CreateTimeslots(ctx, []school.Timeslot{
		{AcademicYear: 2566, Semester: school.Semester1, DayOfWeek: school.Tuesday, Period: 1},
		{AcademicYear: 2566, Semester: school.Semester1, DayOfWeek: school.Monday, Period: 2},
		{AcademicYear: 2566, Semester: school.Semester1, DayOfWeek: school.Monday, Period: 1},
		{AcademicYear: 2566, Semester: school.Semester2, DayOfWeek: school.Monday, Period: 1},
	})
	require.NoError(t, err)

	slots, err := repo.QueryTimeslots(ctx, term)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, school.Monday, slots[0].DayOfWeek)
	assert.Equal(t, 1, slots[0].Period)
	assert.Equal(t, 2, slots[1].Period)
	assert.Equal(t, school.Tuesday, slots[2].DayOfWeek)

	_, err = repo.CreateTimeslots(ctx, []school.Timeslot{{AcademicYear: 2566, Semester: school.Semester1, DayOfWeek: school.Monday, Period: 1}})
	assert.True(t, core.IsConflict(err))

	_, err = repo.CreateRooms(ctx, []school.Room{{Name: "101"}, {Name: "102"}})
	require.NoError(t, err)
	rooms, _ := repo.QueryRooms(ctx)
	room := rooms[0].ID
	_, err = repo.CreateClassSchedules(ctx, []school.ClassSchedule{{TimeslotID: slots[0].ID, GradeID: 1, RoomID: &room, IsLocked: true}})
	require.NoError(t, err)

	free, err := repo.AvailableRooms(ctx, slots[0].ID)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "102", free[0].Name)

	locked, _ := repo.QueryClassSchedules(ctx, school.ClassScheduleFilter{Term: term, LockedOnly: true})
	assert.Len(t, locked, 1)
	locked, _ = repo.QueryClassSchedules(ctx, school.ClassScheduleFilter{Term: other})
	assert.Empty(t, locked)

	cnt, err := repo.DeleteTimeslots(ctx, term)
	require.NoError(t, err)
	assert.Equal(t, 3, cnt)
	slots, _ = repo.QueryTimeslots(ctx, other)
	assert.Len(t, slots, 1)
}

func TestSchoolRepository_tableConfigs(t *testing.T) {
	repo := inmemdb.NewSchoolRepository(inmemdb.NewDB())
	ctx := context.Background()

	second, err := repo.SaveTableConfig(ctx, school.TableConfig{AcademicYear: 2566, Semester: school.Semester2, Config: []byte(`{}`)})
	require.NoError(t, err)
	first, err := repo.SaveTableConfig(ctx, school.TableConfig{AcademicYear: 2566, Semester: school.Semester1, Config: []byte(`{}`)})
	require.NoError(t, err)

	resaved, err := repo.SaveTableConfig(ctx, school.TableConfig{AcademicYear: 2566, Semester: school.Semester2, Config: []byte(`{"duration":50}`)})
	require.NoError(t, err)
	assert.Equal(t, second.ID, resaved.ID)

	confs, err := repo.QueryTableConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, confs, 2)
	assert.Equal(t, first.ID, confs[0].ID)
	assert.JSONEq(t, `{"duration":50}`, string(confs[1].Config))

	_, err = repo.GetTableConfig(ctx, school.Term{AcademicYear: 2567, Semester: school.Semester1})
	assert.True(t, core.IsNotFound(err))

	cnt, _ := repo.DeleteTableConfig(ctx, first.Term())
	assert.Equal(t, 1, cnt)
}
