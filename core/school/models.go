package school

import (
	"encoding/json"
	"time"
)

type (
	Semester  string
	DayOfWeek string
	BreakTime string
)

const (
	Semester1 Semester = "SEMESTER_1"
	Semester2 Semester = "SEMESTER_2"

	Monday    DayOfWeek = "MON"
	Tuesday   DayOfWeek = "TUE"
	Wednesday DayOfWeek = "WED"
	Thursday  DayOfWeek = "THU"
	Friday    DayOfWeek = "FRI"
	Saturday  DayOfWeek = "SAT"
	Sunday    DayOfWeek = "SUN"

	NotBreak    BreakTime = "NOT_BREAK"
	BreakJunior BreakTime = "BREAK_JUNIOR"
	BreakSenior BreakTime = "BREAK_SENIOR"
	BreakBoth   BreakTime = "BREAK_BOTH"
)

var (
	Semesters = []Semester{Semester1, Semester2}
	Days      = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
)

// Term identifies a semester of an academic year (Buddhist era, eg. 2566).
type Term struct {
	AcademicYear int      `json:"academic_year" query:"AcademicYear" validate:"required"`
	Semester     Semester `json:"semester" query:"Semester" validate:"required,semester"`
}

func (t Term) IsZero() bool { return t.AcademicYear == 0 && t.Semester == "" }

type Teacher struct {
	ID         int       `json:"id"`
	Prefix     string    `json:"prefix"`
	Firstname  string    `json:"firstname" validate:"required"`
	Lastname   string    `json:"lastname" validate:"required"`
	Department string    `json:"department"`
	Email      string    `json:"email" validate:"omitempty,email"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

type TeacherFilter struct {
	Department string `query:"department"`
	// Search does a case-insensitive match on one of Teacher.Firstname, Teacher.Lastname or Teacher.Email.
	Search string `query:"search"`
}

type Room struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required"`
	Building string `json:"building"`
	Floor    string `json:"floor"`
}

// AvailableRoomsFilter selects the rooms with no class in a timeslot.
type AvailableRoomsFilter struct {
	TimeslotID int `query:"TimeslotID" json:"TimeslotID" validate:"required"`
}

type Program struct {
	ID           int      `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Year         int      `json:"year" validate:"required,min=1,max=6"`
	Semester     Semester `json:"semester" validate:"required,semester"`
	AcademicYear int      `json:"academic_year" validate:"required"`
}

type ProgramFilter struct {
	Year         int      `query:"Year"`
	Semester     Semester `query:"Semester"`
	AcademicYear int      `query:"AcademicYear"`
}

type GradeLevel struct {
	ID           int  `json:"id"`
	Year         int  `json:"year" validate:"required,min=1,max=6"`
	Number       int  `json:"number" validate:"required,min=1"`
	StudentCount int  `json:"student_count" validate:"min=0"`
	ProgramID    *int `json:"program_id"`
}

type GradeLevelFilter struct {
	Year      int `query:"Year"`
	ProgramID int `query:"ProgramID"`
}

type Subject struct {
	ID        int     `json:"id"`
	Code      string  `json:"code" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Credit    float64 `json:"credit" validate:"min=0"`
	Category  string  `json:"category"`
	ProgramID *int    `json:"program_id"`
}

type SubjectFilter struct {
	ProgramID int    `query:"ProgramID"`
	Category  string `query:"Category"`
}

type Timeslot struct {
	ID           int       `json:"id"`
	AcademicYear int       `json:"academic_year"`
	Semester     Semester  `json:"semester"`
	DayOfWeek    DayOfWeek `json:"day_of_week"`
	Period       int       `json:"period"`
	StartTime    string    `json:"start_time"` // HH:MM
	EndTime      string    `json:"end_time"`   // HH:MM
	BreakTime    BreakTime `json:"break_time"`
}

type ClassSchedule struct {
	ID         int  `json:"id"`
	TimeslotID int  `json:"timeslot_id" validate:"required"`
	SubjectID  int  `json:"subject_id" validate:"required"`
	GradeID    int  `json:"grade_id" validate:"required"`
	RoomID     *int `json:"room_id"`
	TeacherID  *int `json:"teacher_id"`
	IsLocked   bool `json:"is_locked"`
}

type ClassScheduleFilter struct {
	Term
	GradeID   int `query:"GradeID"`
	TeacherID int `query:"TeacherID"`

	LockedOnly bool `query:"-"`
}

// NewLock locks one subject on the same timeslots for several grade levels at once (eg. assembly, activities).
type NewLock struct {
	TimeslotIDs []int `json:"timeslot_ids" validate:"required,min=1,dive,required"`
	GradeIDs    []int `json:"grade_ids" validate:"required,min=1,dive,required"`
	SubjectID   int   `json:"subject_id" validate:"required"`
	RoomID      *int  `json:"room_id"`
	TeacherID   *int  `json:"teacher_id"`
}

// Responsibility assigns a teacher to teach a subject to a grade level for a term.
type Responsibility struct {
	ID           int      `json:"id"`
	TeacherID    int      `json:"teacher_id" validate:"required"`
	GradeID      int      `json:"grade_id" validate:"required"`
	SubjectID    int      `json:"subject_id" validate:"required"`
	AcademicYear int      `json:"academic_year" validate:"required"`
	Semester     Semester `json:"semester" validate:"required,semester"`
	TeachHour    int      `json:"teach_hour" validate:"min=0"`
}

type ResponsibilityFilter struct {
	Term
	TeacherID int `query:"TeacherID"`
	GradeID   int `query:"GradeID"`
}

type TableConfig struct {
	ID           int             `json:"id"`
	AcademicYear int             `json:"academic_year" validate:"required"`
	Semester     Semester        `json:"semester" validate:"required,semester"`
	Config       json.RawMessage `json:"config" validate:"required"`
}

func (c TableConfig) Term() Term { return Term{AcademicYear: c.AcademicYear, Semester: c.Semester} }

// TimetableSettings is the content of TableConfig.Config.
type TimetableSettings struct {
	Days           []DayOfWeek `json:"days" validate:"required,min=1,dive,day"`
	StartTime      string      `json:"start_time" validate:"required"` // HH:MM
	Duration       int         `json:"duration" validate:"required,min=1"`
	TimeslotPerDay int         `json:"timeslot_per_day" validate:"required,min=1"`
	BreakJunior    int         `json:"break_junior"` // period of the junior (M.1-3) lunch break; 0: none
	BreakSenior    int         `json:"break_senior"` // period of the senior (M.4-6) lunch break; 0: none
}

// DeleteRequest is the body of bulk deletions.
type DeleteRequest struct {
	IDs []int `json:"ids" validate:"required,min=1"`
}

// Count is returned by bulk writes.
type Count struct {
	Count int `json:"count"`
}
