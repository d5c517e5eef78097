package school

import "fmt"

var (
	dayLabels = map[DayOfWeek]string{
		Monday:    "จันทร์",
		Tuesday:   "อังคาร",
		Wednesday: "พุธ",
		Thursday:  "พฤหัสบดี",
		Friday:    "ศุกร์",
		Saturday:  "เสาร์",
		Sunday:    "อาทิตย์",
	}

	semesterLabels = map[Semester]string{
		Semester1: "ภาคเรียนที่ 1",
		Semester2: "ภาคเรียนที่ 2",
	}

	breakTimeLabels = map[BreakTime]string{
		NotBreak:    "",
		BreakJunior: "พักกลางวัน ม.ต้น",
		BreakSenior: "พักกลางวัน ม.ปลาย",
		BreakBoth:   "พักกลางวัน",
	}
)

// DayLabel returns the Thai name of day, or the code itself when unknown.
func DayLabel(day DayOfWeek) string {
	if lbl, ok := dayLabels[day]; ok {
		return lbl
	}
	return string(day)
}

// SemesterLabel returns the Thai label of sem, or the code itself when unknown.
func SemesterLabel(sem Semester) string {
	if lbl, ok := semesterLabels[sem]; ok {
		return lbl
	}
	return string(sem)
}

func BreakTimeLabel(bt BreakTime) string {
	return breakTimeLabels[bt]
}

// GradeLabel formats a grade level the way schools print it: "ม.<year>/<number>".
func GradeLabel(year, number int) string {
	return fmt.Sprintf("ม.%d/%d", year, number)
}

func (g GradeLevel) Label() string { return GradeLabel(g.Year, g.Number) }

// IsJunior reports whether g is in lower secondary (M.1-3).
func (g GradeLevel) IsJunior() bool { return g.Year >= 1 && g.Year <= 3 }

func (s Semester) IsValid() bool {
	_, ok := semesterLabels[s]
	return ok
}

func (d DayOfWeek) IsValid() bool {
	_, ok := dayLabels[d]
	return ok
}

// Labels is the lookup table served to the frontend.
type Labels struct {
	Days      []Label `json:"days"`
	Semesters []Label `json:"semesters"`
	Breaks    []Label `json:"breaks"`
}

type Label struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func AllLabels() Labels {
	lbls := Labels{
		Days:      make([]Label, 0, len(Days)),
		Semesters: make([]Label, 0, len(Semesters)),
	}
	for _, d := range Days {
		lbls.Days = append(lbls.Days, Label{Value: string(d), Label: DayLabel(d)})
	}
	for _, s := range Semesters {
		lbls.Semesters = append(lbls.Semesters, Label{Value: string(s), Label: SemesterLabel(s)})
	}
	for _, b := range []BreakTime{BreakJunior, BreakSenior, BreakBoth} {
		lbls.Breaks = append(lbls.Breaks, Label{Value: string(b), Label: BreakTimeLabel(b)})
	}
	return lbls
}
