package models

import (
	"time"

	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/types"
)

var TableNames = struct {
	ClassSchedule         string
	Gradelevel            string
	Program               string
	Room                  string
	Subject               string
	TableConfig           string
	Teacher               string
	TeacherResponsibility string
	Timeslot              string
	User                  string
}{
	ClassSchedule:         "class_schedule",
	Gradelevel:            "gradelevel",
	Program:               "program",
	Room:                  "room",
	Subject:               "subject",
	TableConfig:           "table_config",
	Teacher:               "teacher",
	TeacherResponsibility: "teacher_responsibility",
	Timeslot:              "timeslot",
	User:                  "user",
}

// Teacher is an object representing the database table.
type Teacher struct {
	ID         int         `boil:"id" json:"id" toml:"id" yaml:"id"`
	Prefix     string      `boil:"prefix" json:"prefix" toml:"prefix" yaml:"prefix"`
	Firstname  string      `boil:"firstname" json:"firstname" toml:"firstname" yaml:"firstname"`
	Lastname   string      `boil:"lastname" json:"lastname" toml:"lastname" yaml:"lastname"`
	Department string      `boil:"department" json:"department" toml:"department" yaml:"department"`
	Email      null.String `boil:"email" json:"email,omitempty" toml:"email" yaml:"email,omitempty"`
	CreatedAt  time.Time   `boil:"created_at" json:"created_at" toml:"created_at" yaml:"created_at"`
}

var TeacherColumns = struct {
	ID         string
	Prefix     string
	Firstname  string
	Lastname   string
	Department string
	Email      string
	CreatedAt  string
}{
	ID:         "id",
	Prefix:     "prefix",
	Firstname:  "firstname",
	Lastname:   "lastname",
	Department: "department",
	Email:      "email",
	CreatedAt:  "created_at",
}

var TeacherInsertColumns = []string{"prefix", "firstname", "lastname", "department", "email"}

func (o *Teacher) InsertValues() []interface{} {
	return []interface{}{o.Prefix, o.Firstname, o.Lastname, o.Department, o.Email}
}

func (o *Teacher) UpdateValues() M {
	return M{"prefix": o.Prefix, "firstname": o.Firstname, "lastname": o.Lastname, "department": o.Department, "email": o.Email}
}

// Room is an object representing the database table.
type Room struct {
	ID       int    `boil:"id" json:"id" toml:"id" yaml:"id"`
	Name     string `boil:"name" json:"name" toml:"name" yaml:"name"`
	Building string `boil:"building" json:"building" toml:"building" yaml:"building"`
	Floor    string `boil:"floor" json:"floor" toml:"floor" yaml:"floor"`
}

var RoomColumns = struct {
	ID       string
	Name     string
	Building string
	Floor    string
}{
	ID:       "id",
	Name:     "name",
	Building: "building",
	Floor:    "floor",
}

var RoomInsertColumns = []string{"name", "building", "floor"}

func (o *Room) InsertValues() []interface{} {
	return []interface{}{o.Name, o.Building, o.Floor}
}

func (o *Room) UpdateValues() M {
	return M{"name": o.Name, "building": o.Building, "floor": o.Floor}
}

// Program is an object representing the database table.
type Program struct {
	ID           int    `boil:"id" json:"id" toml:"id" yaml:"id"`
	Name         string `boil:"name" json:"name" toml:"name" yaml:"name"`
	Year         int    `boil:"year" json:"year" toml:"year" yaml:"year"`
	Semester     string `boil:"semester" json:"semester" toml:"semester" yaml:"semester"`
	AcademicYear int    `boil:"academic_year" json:"academic_year" toml:"academic_year" yaml:"academic_year"`
}

var ProgramColumns = struct {
	ID           string
	Name         string
	Year         string
	Semester     string
	AcademicYear string
}{
	ID:           "id",
	Name:         "name",
	Year:         "year",
	Semester:     "semester",
	AcademicYear: "academic_year",
}

var ProgramInsertColumns = []string{"name", "year", "semester", "academic_year"}

func (o *Program) InsertValues() []interface{} {
	return []interface{}{o.Name, o.Year, o.Semester, o.AcademicYear}
}

func (o *Program) UpdateValues() M {
	return M{"name": o.Name, "year": o.Year, "semester": o.Semester, "academic_year": o.AcademicYear}
}

// Gradelevel is an object representing the database table.
type Gradelevel struct {
	ID           int      `boil:"id" json:"id" toml:"id" yaml:"id"`
	Year         int      `boil:"year" json:"year" toml:"year" yaml:"year"`
	Number       int      `boil:"number" json:"number" toml:"number" yaml:"number"`
	StudentCount int      `boil:"student_count" json:"student_count" toml:"student_count" yaml:"student_count"`
	ProgramID    null.Int `boil:"program_id" json:"program_id,omitempty" toml:"program_id" yaml:"program_id,omitempty"`
}

var GradelevelColumns = struct {
	ID           string
	Year         string
	Number       string
	StudentCount string
	ProgramID    string
}{
	ID:           "id",
	Year:         "year",
	Number:       "number",
	StudentCount: "student_count",
	ProgramID:    "program_id",
}

var GradelevelInsertColumns = []string{"year", "number", "student_count", "program_id"}

func (o *Gradelevel) InsertValues() []interface{} {
	return []interface{}{o.Year, o.Number, o.StudentCount, o.ProgramID}
}

func (o *Gradelevel) UpdateValues() M {
	return M{"year": o.Year, "number": o.Number, "student_count": o.StudentCount, "program_id": o.ProgramID}
}

// Subject is an object representing the database table.
type Subject struct {
	ID        int      `boil:"id" json:"id" toml:"id" yaml:"id"`
	Code      string   `boil:"code" json:"code" toml:"code" yaml:"code"`
	Name      string   `boil:"name" json:"name" toml:"name" yaml:"name"`
	Credit    float64  `boil:"credit" json:"credit" toml:"credit" yaml:"credit"`
	Category  string   `boil:"category" json:"category" toml:"category" yaml:"category"`
	ProgramID null.Int `boil:"program_id" json:"program_id,omitempty" toml:"program_id" yaml:"program_id,omitempty"`
}

var SubjectColumns = struct {
	ID        string
	Code      string
	Name      string
	Credit    string
	Category  string
	ProgramID string
}{
	ID:        "id",
	Code:      "code",
	Name:      "name",
	Credit:    "credit",
	Category:  "category",
	ProgramID: "program_id",
}

var SubjectInsertColumns = []string{"code", "name", "credit", "category", "program_id"}

func (o *Subject) InsertValues() []interface{} {
	return []interface{}{o.Code, o.Name, o.Credit, o.Category, o.ProgramID}
}

func (o *Subject) UpdateValues() M {
	return M{"code": o.Code, "name": o.Name, "credit": o.Credit, "category": o.Category, "program_id": o.ProgramID}
}

// Timeslot is an object representing the database table.
type Timeslot struct {
	ID           int    `boil:"id" json:"id" toml:"id" yaml:"id"`
	AcademicYear int    `boil:"academic_year" json:"academic_year" toml:"academic_year" yaml:"academic_year"`
	Semester     string `boil:"semester" json:"semester" toml:"semester" yaml:"semester"`
	DayOfWeek    string `boil:"day_of_week" json:"day_of_week" toml:"day_of_week" yaml:"day_of_week"`
	Period       int    `boil:"period" json:"period" toml:"period" yaml:"period"`
	StartTime    string `boil:"start_time" json:"start_time" toml:"start_time" yaml:"start_time"`
	EndTime      string `boil:"end_time" json:"end_time" toml:"end_time" yaml:"end_time"`
	BreakTime    string `boil:"break_time" json:"break_time" toml:"break_time" yaml:"break_time"`
}

var TimeslotColumns = struct {
	ID           string
	AcademicYear string
	Semester     string
	DayOfWeek    string
	Period       string
	StartTime    string
	EndTime      string
	BreakTime    string
}{
	ID:           "id",
	AcademicYear: "academic_year",
	Semester:     "semester",
	DayOfWeek:    "day_of_week",
	Period:       "period",
	StartTime:    "start_time",
	EndTime:      "end_time",
	BreakTime:    "break_time",
}

var TimeslotInsertColumns = []string{"academic_year", "semester", "day_of_week", "period", "start_time", "end_time", "break_time"}

func (o *Timeslot) InsertValues() []interface{} {
	return []interface{}{o.AcademicYear, o.Semester, o.DayOfWeek, o.Period, o.StartTime, o.EndTime, o.BreakTime}
}

// ClassSchedule is an object representing the database table.
type ClassSchedule struct {
	ID         int      `boil:"id" json:"id" toml:"id" yaml:"id"`
	TimeslotID int      `boil:"timeslot_id" json:"timeslot_id" toml:"timeslot_id" yaml:"timeslot_id"`
	SubjectID  int      `boil:"subject_id" json:"subject_id" toml:"subject_id" yaml:"subject_id"`
	GradeID    int      `boil:"grade_id" json:"grade_id" toml:"grade_id" yaml:"grade_id"`
	RoomID     null.Int `boil:"room_id" json:"room_id,omitempty" toml:"room_id" yaml:"room_id,omitempty"`
	TeacherID  null.Int `boil:"teacher_id" json:"teacher_id,omitempty" toml:"teacher_id" yaml:"teacher_id,omitempty"`
	IsLocked   bool     `boil:"is_locked" json:"is_locked" toml:"is_locked" yaml:"is_locked"`
}

var ClassScheduleColumns = struct {
	ID         string
	TimeslotID string
	SubjectID  string
	GradeID    string
	RoomID     string
	TeacherID  string
	IsLocked   string
}{
	ID:         "id",
	TimeslotID: "timeslot_id",
	SubjectID:  "subject_id",
	GradeID:    "grade_id",
	RoomID:     "room_id",
	TeacherID:  "teacher_id",
	IsLocked:   "is_locked",
}

var ClassScheduleInsertColumns = []string{"timeslot_id", "subject_id", "grade_id", "room_id", "teacher_id", "is_locked"}

func (o *ClassSchedule) InsertValues() []interface{} {
	return []interface{}{o.TimeslotID, o.SubjectID, o.GradeID, o.RoomID, o.TeacherID, o.IsLocked}
}

func (o *ClassSchedule) UpdateValues() M {
	return M{
		"timeslot_id": o.TimeslotID, "subject_id": o.SubjectID, "grade_id": o.GradeID,
		"room_id": o.RoomID, "teacher_id": o.TeacherID, "is_locked": o.IsLocked,
	}
}

// TeacherResponsibility is an object representing the database table.
type TeacherResponsibility struct {
	ID           int    `boil:"id" json:"id" toml:"id" yaml:"id"`
	TeacherID    int    `boil:"teacher_id" json:"teacher_id" toml:"teacher_id" yaml:"teacher_id"`
	GradeID      int    `boil:"grade_id" json:"grade_id" toml:"grade_id" yaml:"grade_id"`
	SubjectID    int    `boil:"subject_id" json:"subject_id" toml:"subject_id" yaml:"subject_id"`
	AcademicYear int    `boil:"academic_year" json:"academic_year" toml:"academic_year" yaml:"academic_year"`
	Semester     string `boil:"semester" json:"semester" toml:"semester" yaml:"semester"`
	TeachHour    int    `boil:"teach_hour" json:"teach_hour" toml:"teach_hour" yaml:"teach_hour"`
}

var TeacherResponsibilityColumns = struct {
	ID           string
	TeacherID    string
	GradeID      string
	SubjectID    string
	AcademicYear string
	Semester     string
	TeachHour    string
}{
	ID:           "id",
	TeacherID:    "teacher_id",
	GradeID:      "grade_id",
	SubjectID:    "subject_id",
	AcademicYear: "academic_year",
	Semester:     "semester",
	TeachHour:    "teach_hour",
}

var TeacherResponsibilityInsertColumns = []string{"teacher_id", "grade_id", "subject_id", "academic_year", "semester", "teach_hour"}

func (o *TeacherResponsibility) InsertValues() []interface{} {
	return []interface{}{o.TeacherID, o.GradeID, o.SubjectID, o.AcademicYear, o.Semester, o.TeachHour}
}

func (o *TeacherResponsibility) UpdateValues() M {
	return M{
		"teacher_id": o.TeacherID, "grade_id": o.GradeID, "subject_id": o.SubjectID,
		"academic_year": o.AcademicYear, "semester": o.Semester, "teach_hour": o.TeachHour,
	}
}

// TableConfig is an object representing the database table.
type TableConfig struct {
	ID           int        `boil:"id" json:"id" toml:"id" yaml:"id"`
	AcademicYear int        `boil:"academic_year" json:"academic_year" toml:"academic_year" yaml:"academic_year"`
	Semester     string     `boil:"semester" json:"semester" toml:"semester" yaml:"semester"`
	Config       types.JSON `boil:"config" json:"config" toml:"config" yaml:"config"`
}

var TableConfigColumns = struct {
	ID           string
	AcademicYear string
	Semester     string
	Config       string
}{
	ID:           "id",
	AcademicYear: "academic_year",
	Semester:     "semester",
	Config:       "config",
}
