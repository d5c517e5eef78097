package school

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/timetable/core"
)

var (
	dayTag  = "day"
	dayText = "invalid day of week"

	semesterTag  = "semester"
	semesterText = "invalid semester"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dayTag, dayValidation)
	core.RegisterCustomTranslation(validate, translator, dayTag, dayText)

	_ = validate.RegisterValidation(semesterTag, semesterValidation)
	core.RegisterCustomTranslation(validate, translator, semesterTag, semesterText)
}

func dayValidation(fl validator.FieldLevel) bool {
	return DayOfWeek(fl.Field().String()).IsValid()
}

func semesterValidation(fl validator.FieldLevel) bool {
	return Semester(fl.Field().String()).IsValid()
}
