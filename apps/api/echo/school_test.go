package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/timetable/core/school"
)

func intPtr(i int) *int { return &i }

func Test_schoolApi_teachers(t *testing.T) {
	app := newTestApp(t)
	adminToken, teacherToken, _ := app.users(t)

	somsak := school.Teacher{Prefix: "นาย", Firstname: "Somsak", Lastname: "Dee", Department: "Science", Email: "somsak@school.test"}
	malee := school.Teacher{Prefix: "นาง", Firstname: "Malee", Lastname: "Jai", Department: "Math", Email: "malee@school.test"}

	runHTTPTests(t, app, []httpTest{
		{
			name: "bulk insert", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			body: marchallList(t, somsak, malee), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 2}),
		},
		{
			name: "duplicate email", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			body: marchallList(t, somsak), wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "conflicts with an existing record"}),
		},
	})

	teachers, err := app.schoolRepo.QueryTeachers(context.Background(), school.TeacherFilter{})
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	somsak, malee = teachers[0], teachers[1]
	assert.Equal(t, "Somsak", somsak.Firstname)

	renamed := somsak
	renamed.Department = "Physics"

	runHTTPTests(t, app, []httpTest{
		{name: "list in insertion order", path: "/api/teacher", token: teacherToken, wantData: marchallList(t, somsak, malee)},
		{name: "filter by department", path: "/api/teacher?department=Math", token: teacherToken, wantData: marchallList(t, malee)},
		{name: "search", path: "/api/teacher?search=SOM", token: teacherToken, wantData: marchallList(t, somsak)},
		{name: "retrieve", path: "/api/teacher/" + strconv.Itoa(malee.ID), token: teacherToken, wantData: marchallObj(t, malee)},
		{
			name: "retrieve unknown", path: "/api/teacher/999999", token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "update without id", method: http.MethodPut, path: "/api/teacher", token: adminToken,
			body: marchallList(t, school.Teacher{Firstname: "A", Lastname: "B"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"id": "id is required"}),
		},
		{
			name: "update", method: http.MethodPut, path: "/api/teacher", token: adminToken,
			body: marchallList(t, renamed), wantData: marchallObj(t, school.Count{Count: 1}),
		},
		{name: "updated", path: "/api/teacher/" + strconv.Itoa(somsak.ID), token: teacherToken, wantData: marchallObj(t, renamed)},
		{
			name: "delete without ids", method: http.MethodDelete, path: "/api/teacher", token: adminToken,
			body: []byte(`{"ids":[]}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/teacher", token: adminToken,
			body: marchallObj(t, school.DeleteRequest{IDs: []int{somsak.ID, 999999}}), wantData: marchallObj(t, school.Count{Count: 1}),
		},
		{name: "deleted", path: "/api/teacher", token: teacherToken, wantData: marchallList(t, malee)},
	})
}

func Test_schoolApi_bulkInsertRows(t *testing.T) {
	app := newTestApp(t)
	adminToken, _, _ := app.users(t)

	runHTTPTests(t, app, []httpTest{
		{
			name: "no body", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "request body can't be empty"}),
		},
		{
			name: "not an array", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			body: []byte(`{"firstname":"Somsak"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "empty array", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			body: marchallList(t), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 0}),
		},
		{
			name: "rows are not validated", method: http.MethodPost, path: "/api/teacher", token: adminToken,
			body: []byte(`[{"firstname":"","lastname":"Dee"},{"firstname":"Malee","email":"not-an-email"}]`),
			wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 2}),
		},
		{
			name: "one bad row fails the batch", method: http.MethodPost, path: "/api/room", token: adminToken,
			body: []byte(`[{"name":"101"},{"name":"101"}]`), wantCode: http.StatusConflict,
		},
	})

	teachers, err := app.schoolRepo.QueryTeachers(context.Background(), school.TeacherFilter{})
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Empty(t, teachers[0].Firstname)
	assert.Equal(t, "Dee", teachers[0].Lastname)
	assert.Equal(t, "not-an-email", teachers[1].Email)

	rooms, err := app.schoolRepo.QueryRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func Test_schoolApi_roomsAndSubjects(t *testing.T) {
	app := newTestApp(t)
	_, teacherToken, _ := app.users(t)
	ctx := context.Background()

	_, err := app.schoolRepo.CreateRooms(ctx, []school.Room{{Name: "101", Building: "A"}, {Name: "102", Building: "A"}})
	require.NoError(t, err)
	rooms, err := app.schoolRepo.QueryRooms(ctx)
	require.NoError(t, err)

	_, err = app.schoolRepo.CreatePrograms(ctx, []school.Program{{Name: "วิทย์-คณิต", Year: 4, Semester: school.Semester1, AcademicYear: 2566}})
	require.NoError(t, err)
	programs, err := app.schoolRepo.QueryPrograms(ctx, school.ProgramFilter{})
	require.NoError(t, err)

	_, err = app.schoolRepo.CreateSubjects(ctx, []school.Subject{
		{Code: "ท21101", Name: "ภาษาไทย", Credit: 1.5, Category: "CORE"},
		{Code: "ว31101", Name: "ฟิสิกส์", Credit: 2, Category: "CORE", ProgramID: intPtr(programs[0].ID)},
	})
	require.NoError(t, err)
	subjects, err := app.schoolRepo.QuerySubjects(ctx, school.SubjectFilter{})
	require.NoError(t, err)

	_, err = app.schoolRepo.CreateGradeLevels(ctx, []school.GradeLevel{{Year: 4, Number: 1, StudentCount: 40}})
	require.NoError(t, err)
	grades, err := app.schoolRepo.QueryGradeLevels(ctx, school.GradeLevelFilter{})
	require.NoError(t, err)

	term := school.Term{AcademicYear: 2566, Semester: school.Semester1}
	_, err = app.schoolRepo.CreateTimeslots(ctx, []school.Timeslot{
		{AcademicYear: term.AcademicYear, Semester: term.Semester, DayOfWeek: school.Monday, Period: 1, StartTime: "08:30", EndTime: "09:20", BreakTime: school.NotBreak},
		{AcademicYear: term.AcademicYear, Semester: term.Semester, DayOfWeek: school.Monday, Period: 2, StartTime: "09:20", EndTime: "10:10", BreakTime: school.NotBreak},
	})
	require.NoError(t, err)
	slots, err := app.schoolRepo.QueryTimeslots(ctx, term)
	require.NoError(t, err)

	_, err = app.schoolRepo.CreateClassSchedules(ctx, []school.ClassSchedule{
		{TimeslotID: slots[0].ID, SubjectID: subjects[1].ID, GradeID: grades[0].ID, RoomID: intPtr(rooms[0].ID)},
	})
	require.NoError(t, err)

	path := func(timeslotID int) string { return "/api/room/availableRooms?TimeslotID=" + strconv.Itoa(timeslotID) }

	runHTTPTests(t, app, []httpTest{
		{name: "rooms", path: "/api/room", token: teacherToken, wantData: marchallList(t, rooms[0], rooms[1])},
		{name: "available rooms (one booked)", path: path(slots[0].ID), token: teacherToken, wantData: marchallList(t, rooms[1])},
		{name: "available rooms (free slot)", path: path(slots[1].ID), token: teacherToken, wantData: marchallList(t, rooms[0], rooms[1])},
		{name: "available rooms (no slot)", path: "/api/room/availableRooms", token: teacherToken, wantCode: http.StatusBadRequest},
		{name: "available rooms (bad slot)", path: "/api/room/availableRooms?TimeslotID=abc", token: teacherToken, wantCode: http.StatusBadRequest},
		{name: "subjects", path: "/api/subject", token: teacherToken, wantData: marchallList(t, subjects[0], subjects[1])},
		{
			name: "subjects by program", path: "/api/subject?ProgramID=" + strconv.Itoa(programs[0].ID), token: teacherToken,
			wantData: marchallList(t, subjects[1]),
		},
		{name: "subjects not in programs", path: "/api/subject/notInPrograms", token: teacherToken, wantData: marchallList(t, subjects[0])},
		{name: "programs by year", path: "/api/program?Year=4", token: teacherToken, wantData: marchallList(t, programs[0])},
		{name: "programs (other year)", path: "/api/program?Year=1", token: teacherToken, wantData: marchallList(t)},
		{name: "grade levels", path: "/api/gradelevel?Year=4", token: teacherToken, wantData: marchallList(t, grades[0])},
		{
			name: "timeslots", path: "/api/timeslot?AcademicYear=2566&Semester=SEMESTER_1", token: teacherToken,
			wantData: marchallList(t, slots[0], slots[1]),
		},
		{name: "timeslots (no term)", path: "/api/timeslot", token: teacherToken, wantCode: http.StatusBadRequest},
	})
}

func Test_schoolApi_configAndTimeslots(t *testing.T) {
	app := newTestApp(t)
	adminToken, teacherToken, _ := app.users(t)

	settings := school.TimetableSettings{
		Days:           []school.DayOfWeek{school.Monday, school.Tuesday},
		StartTime:      "08:30",
		Duration:       50,
		TimeslotPerDay: 8,
		BreakJunior:    4,
		BreakSenior:    5,
	}
	raw, err := json.Marshal(settings)
	require.NoError(t, err)
	conf := school.TableConfig{AcademicYear: 2566, Semester: school.Semester1, Config: raw}
	term := "?AcademicYear=2566&Semester=SEMESTER_1"

	badClock := conf
	badClock.Config = json.RawMessage(`{"days":["MON"],"start_time":"8h30","duration":50,"timeslot_per_day":8}`)
	badDay := conf
	badDay.Config = json.RawMessage(`{"days":["XYZ"],"start_time":"08:30","duration":50,"timeslot_per_day":8}`)

	runHTTPTests(t, app, []httpTest{
		{name: "no config yet", path: "/api/config", token: teacherToken, wantData: marchallList(t)},
		{
			name: "generate without config", method: http.MethodPost, path: "/api/timeslot/generate", token: adminToken,
			body: marchallObj(t, conf.Term()), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: school.ErrNoSettings.Error()}),
		},
		{
			name: "save as teacher", method: http.MethodPut, path: "/api/config/term", token: teacherToken,
			body: marchallObj(t, conf), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "save bad clock", method: http.MethodPut, path: "/api/config/term", token: adminToken,
			body: marchallObj(t, badClock), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"start_time": school.ErrInvalidClock.Error()}),
		},
		{
			name: "save bad day", method: http.MethodPut, path: "/api/config/term", token: adminToken,
			body: marchallObj(t, badDay), wantCode: http.StatusBadRequest,
		},
		{name: "save", method: http.MethodPut, path: "/api/config/term", token: adminToken, body: marchallObj(t, conf)},
		{
			name: "generate", method: http.MethodPost, path: "/api/timeslot/generate", token: adminToken,
			body: marchallObj(t, conf.Term()), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 16}),
		},
		{
			name: "generate again replaces", method: http.MethodPost, path: "/api/timeslot/generate", token: adminToken,
			body: marchallObj(t, conf.Term()), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 16}),
		},
		{
			name: "conflicts stub", path: "/api/class/conflicts" + term, token: teacherToken,
			wantCode: http.StatusNotImplemented, wantData: marchallObj(t, httpErr{Error: "กำลังพัฒนาระบบตรวจสอบความขัดแย้ง"}),
		},
	})

	saved, err := app.schoolRepo.GetTableConfig(context.Background(), conf.Term())
	require.NoError(t, err)
	slots, err := app.schoolRepo.QueryTimeslots(context.Background(), conf.Term())
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, school.Monday, slots[0].DayOfWeek)
	assert.Equal(t, school.BreakJunior, slots[3].BreakTime)

	runHTTPTests(t, app, []httpTest{
		{name: "list", path: "/api/config", token: teacherToken, wantData: marchallList(t, saved)},
		{name: "retrieve", path: "/api/config/term" + term, token: teacherToken, wantData: marchallObj(t, saved)},
		{
			name: "retrieve other term", path: "/api/config/term?AcademicYear=2566&Semester=SEMESTER_2", token: teacherToken,
			wantCode: http.StatusNotFound,
		},
		{name: "delete timeslots", method: http.MethodDelete, path: "/api/timeslot" + term, token: adminToken, wantData: marchallObj(t, school.Count{Count: 16})},
		{name: "delete config", method: http.MethodDelete, path: "/api/config/term" + term, token: adminToken, wantData: marchallObj(t, school.Count{Count: 1})},
		{name: "deleted", path: "/api/config", token: teacherToken, wantData: marchallList(t)},
	})
}

func Test_schoolApi_locks(t *testing.T) {
	app := newTestApp(t)
	adminToken, teacherToken, _ := app.users(t)
	ctx := context.Background()

	term := school.Term{AcademicYear: 2566, Semester: school.Semester2}
	_, err := app.schoolRepo.CreateTimeslots(ctx, []school.Timeslot{
		{AcademicYear: term.AcademicYear, Semester: term.Semester, DayOfWeek: school.Friday, Period: 7, StartTime: "14:00", EndTime: "14:50", BreakTime: school.NotBreak},
		{AcademicYear: term.AcademicYear, Semester: term.Semester, DayOfWeek: school.Friday, Period: 8, StartTime: "14:50", EndTime: "15:40", BreakTime: school.NotBreak},
	})
	require.NoError(t, err)
	slots, err := app.schoolRepo.QueryTimeslots(ctx, term)
	require.NoError(t, err)
	_, err = app.schoolRepo.CreateGradeLevels(ctx, []school.GradeLevel{{Year: 1, Number: 1}, {Year: 1, Number: 2}})
	require.NoError(t, err)
	grades, err := app.schoolRepo.QueryGradeLevels(ctx, school.GradeLevelFilter{})
	require.NoError(t, err)
	_, err = app.schoolRepo.CreateSubjects(ctx, []school.Subject{{Code: "ก21901", Name: "ลูกเสือ", Category: "ACTIVITY"}})
	require.NoError(t, err)
	subjects, err := app.schoolRepo.QuerySubjects(ctx, school.SubjectFilter{})
	require.NoError(t, err)

	lock := school.NewLock{
		TimeslotIDs: []int{slots[0].ID, slots[1].ID},
		GradeIDs:    []int{grades[0].ID, grades[1].ID},
		SubjectID:   subjects[0].ID,
	}

	runHTTPTests(t, app, []httpTest{
		{
			name: "missing grades", method: http.MethodPost, path: "/api/lock", token: adminToken,
			body: marchallObj(t, school.NewLock{TimeslotIDs: lock.TimeslotIDs, SubjectID: lock.SubjectID}), wantCode: http.StatusBadRequest,
		},
		{
			name: "lock", method: http.MethodPost, path: "/api/lock", token: adminToken,
			body: marchallObj(t, lock), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 4}),
		},
		{
			name: "lock twice", method: http.MethodPost, path: "/api/lock", token: adminToken,
			body: marchallObj(t, lock), wantCode: http.StatusConflict,
		},
	})

	locks, err := app.schoolRepo.QueryClassSchedules(ctx, school.ClassScheduleFilter{LockedOnly: true})
	require.NoError(t, err)
	require.Len(t, locks, 4)
	for _, l := range locks {
		assert.True(t, l.IsLocked)
	}

	// an unlocked class for the same term
	_, err = app.schoolRepo.CreateGradeLevels(ctx, []school.GradeLevel{{Year: 1, Number: 3}})
	require.NoError(t, err)
	grades, err = app.schoolRepo.QueryGradeLevels(ctx, school.GradeLevelFilter{})
	require.NoError(t, err)
	class := school.ClassSchedule{TimeslotID: slots[0].ID, SubjectID: subjects[0].ID, GradeID: grades[2].ID}

	runHTTPTests(t, app, []httpTest{
		{
			name: "create class", method: http.MethodPost, path: "/api/class", token: adminToken,
			body: marchallList(t, class), wantCode: http.StatusCreated, wantData: marchallObj(t, school.Count{Count: 1}),
		},
		{name: "locks only", path: "/api/lock?AcademicYear=2566&Semester=SEMESTER_2", token: teacherToken, wantData: marchallList(t, locks[0], locks[1], locks[2], locks[3])},
		{
			name: "classes of a grade", path: "/api/class?GradeID=" + strconv.Itoa(grades[0].ID), token: teacherToken,
			wantData: marchallList(t, locks[0], locks[2]),
		},
		{
			name: "unlock", method: http.MethodDelete, path: "/api/lock", token: adminToken,
			body: marchallObj(t, school.DeleteRequest{IDs: []int{locks[0].ID}}), wantData: marchallObj(t, school.Count{Count: 1}),
		},
		{name: "locks left", path: "/api/lock", token: teacherToken, wantData: marchallList(t, locks[1], locks[2], locks[3])},
	})
}

func Test_schoolApi_labels(t *testing.T) {
	app := newTestApp(t)

	req, rec := newRequest(http.MethodGet, "/api/labels")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var labels school.Labels
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &labels))
	require.Len(t, labels.Days, 7)
	assert.Equal(t, "จันทร์", labels.Days[0].Label)
	require.Len(t, labels.Semesters, 2)
	assert.Equal(t, school.SemesterLabel(school.Semester1), labels.Semesters[0].Label)
}
