package grade

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/gradetracker/backend/core"
)

// Types
const (
	TypeBig   Type = "big"   // exams
	TypeSmall Type = "small" // tests, oral grades, homework
)

type (
	Type     string
	Semester string
)

// Grade is one graded assignment of a user.
type Grade struct {
	ID         int
	UserID     int
	Subject    string
	Name       string
	Score      int
	Semester   Semester
	Type       Type
	Date       core.Date
	Attachment *Attachment
}

// gradeJSON is the wire format of a Grade; the attachment is flattened to a data URL, its kind and file name.
type gradeJSON struct {
	ID             int            `json:"id"`
	Subject        string         `json:"subject"`
	Name           string         `json:"name"`
	Score          int            `json:"score"`
	Semester       Semester       `json:"semester"`
	Type           Type           `json:"type"`
	Date           core.Date      `json:"date"`
	Attachment     string         `json:"attachment,omitempty"`
	AttachmentType AttachmentKind `json:"attachmentType,omitempty"`
	FileName       string         `json:"fileName,omitempty"`
}

func (g Grade) MarshalJSON() ([]byte, error) {
	data := gradeJSON{
		ID:       g.ID,
		Subject:  g.Subject,
		Name:     g.Name,
		Score:    g.Score,
		Semester: g.Semester,
		Type:     g.Type,
		Date:     g.Date,
	}
	if g.Attachment != nil {
		data.Attachment = g.Attachment.DataURL()
		data.AttachmentType = g.Attachment.Kind
		data.FileName = g.Attachment.FileName
	}
	return json.Marshal(data)
}

func (g *Grade) UnmarshalJSON(b []byte) error {
	var data gradeJSON
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	*g = Grade{
		ID:       data.ID,
		Subject:  data.Subject,
		Name:     data.Name,
		Score:    data.Score,
		Semester: data.Semester,
		Type:     data.Type,
		Date:     data.Date,
	}
	if data.Attachment != "" {
		att, err := NewAttachment(data.AttachmentType, data.Attachment, data.FileName)
		if err != nil {
			return err
		}
		g.Attachment = att
	}
	return nil
}

// SemesterRange maps an inclusive date range to a semester.
type SemesterRange struct {
	ID    Semester  `json:"id" validate:"required,notblank,max=10"`
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

// NewGrade contains information needed to create or replace a Grade.
type NewGrade struct {
	Subject        string `json:"subject" validate:"required,notblank,max=100"`
	Name           string `json:"name" validate:"required,notblank,max=100"`
	Score          *int   `json:"score" validate:"required,gte=0,lte=15"`
	Semester       string `json:"semester" validate:"omitempty,max=10"`
	Type           string `json:"type" validate:"required,oneof=big small"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Attachment     string `json:"attachment"`
	AttachmentType string `json:"attachmentType" validate:"omitempty,oneof=image pdf"`
	FileName       string `json:"fileName" validate:"omitempty,max=255"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.Name = core.CleanString(ng.Name)
	ng.Semester = core.CleanString(ng.Semester)
	ng.Type = core.CleanString(ng.Type, true /* lower */)
	ng.Date = core.CleanString(ng.Date)
	ng.Attachment = core.CleanString(ng.Attachment)
	ng.AttachmentType = core.CleanString(ng.AttachmentType, true /* lower */)
	ng.FileName = core.CleanString(ng.FileName)
	return validate.Struct(ng)
}

// QueryFilter applies AND on its non-empty fields.
type QueryFilter struct {
	Subject  string `query:"subject"`
	Semester string `query:"semester"`
	Type     string `query:"type"`
}

func (qf *QueryFilter) Clean() {
	qf.Subject = core.CleanString(qf.Subject)
	qf.Semester = core.CleanString(qf.Semester)
	qf.Type = core.CleanString(qf.Type, true /* lower */)
}

func (qf QueryFilter) Match(g Grade) bool {
	return (qf.Subject == "" || g.Subject == qf.Subject) &&
		(qf.Semester == "" || string(g.Semester) == qf.Semester) &&
		(qf.Type == "" || string(g.Type) == qf.Type)
}
