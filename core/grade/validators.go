package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gradetracker/backend/core"
)

var (
	semRangeTag  = "semrange"
	semRangeText = "start must not be after end"

	attRequiredTag  = "required_with"
	dateRequiredTag = "required"
)

// InitValidators registers the grade validators; core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(newGradeStructValidation, NewGrade{})
	validate.RegisterStructValidation(semesterRangeStructValidation, SemesterRange{})
	core.RegisterCustomTranslation(validate, translator, semRangeTag, semRangeText)
}

// newGradeStructValidation requires an attachment type along with an attachment.
func newGradeStructValidation(sl validator.StructLevel) {
	ng := sl.Current().Interface().(NewGrade)
	if ng.Attachment != "" && ng.AttachmentType == "" {
		sl.ReportError(ng.AttachmentType, "attachmentType", "AttachmentType", attRequiredTag, "Attachment")
	}
}

// semesterRangeStructValidation checks that both bounds are set and ordered.
func semesterRangeStructValidation(sl validator.StructLevel) {
	rng := sl.Current().Interface().(SemesterRange)
	if rng.Start.IsZero() {
		sl.ReportError(rng.Start, "start", "Start", dateRequiredTag, "")
	}
	if rng.End.IsZero() {
		sl.ReportError(rng.End, "end", "End", dateRequiredTag, "")
	}
	if !rng.Start.IsZero() && !rng.End.IsZero() && rng.Start.After(rng.End) {
		sl.ReportError(rng.End, "end", "End", semRangeTag, "")
	}
}
