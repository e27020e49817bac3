package grade

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gradetracker/backend/core"
)

var (
	// errors
	ErrNotFound   = errors.New("grade not found")
	ErrNoSemester = errors.New("no semester covers this date")

	// OrderingFields are the fields grades can be ordered by.
	OrderingFields  = []string{"id", "date", "subject", "name", "score", "semester", "type"}
	DefaultOrdering = []core.DBOrdering{{Field: "date"}, {Field: "id"}}
)

type (
	// Repository persists grades. Every method is scoped to the owner's userID.
	Repository interface {
		QueryGrades(ctx context.Context, userID int, filter QueryFilter, ordering ...core.DBOrdering) ([]Grade, error)
		GetGrade(ctx context.Context, userID, id int) (Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGrade(ctx context.Context, userID, id int) error
	}

	Service interface {
		Query(ctx context.Context, userID int, filter QueryFilter, ordering ...core.DBOrdering) ([]Grade, error)
		QueryAll(ctx context.Context, userID int) ([]Grade, error)
		Get(ctx context.Context, userID, id int) (Grade, error)
		Create(ctx context.Context, userID int, ng NewGrade, ranges []SemesterRange) (Grade, error)
		Update(ctx context.Context, userID, id int, ng NewGrade, ranges []SemesterRange) (Grade, error)
		Delete(ctx context.Context, userID, id int) error
	}

	service struct {
		repo Repository
		conf *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{repo: repo, conf: conf}
}

func (svc *service) Query(ctx context.Context, userID int, filter QueryFilter, ordering ...core.DBOrdering) ([]Grade, error) {
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}
	return svc.repo.QueryGrades(ctx, userID, filter, ordering...)
}

// QueryAll returns every grade of the user, newest first.
func (svc *service) QueryAll(ctx context.Context, userID int) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, userID, QueryFilter{}, DefaultOrdering...)
}

func (svc *service) Get(ctx context.Context, userID, id int) (Grade, error) {
	return svc.repo.GetGrade(ctx, userID, id)
}

func (svc *service) Create(ctx context.Context, userID int, ng NewGrade, ranges []SemesterRange) (Grade, error) {
	g, err := svc.build(ng, ranges)
	if err != nil {
		return Grade{}, err
	}
	g.UserID = userID
	return svc.repo.CreateGrade(ctx, g)
}

func (svc *service) Update(ctx context.Context, userID, id int, ng NewGrade, ranges []SemesterRange) (Grade, error) {
	g, err := svc.build(ng, ranges)
	if err != nil {
		return Grade{}, err
	}
	g.ID = id
	g.UserID = userID
	return svc.repo.UpdateGrade(ctx, g)
}

func (svc *service) Delete(ctx context.Context, userID, id int) error {
	return svc.repo.DeleteGrade(ctx, userID, id)
}

// build turns a validated NewGrade into a Grade, assigning its semester from ranges when none is given.
func (svc *service) build(ng NewGrade, ranges []SemesterRange) (Grade, error) {
	date, err := core.ParseDate(ng.Date)
	if err != nil {
		return Grade{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
	}

	g := Grade{
		Subject:  ng.Subject,
		Name:     ng.Name,
		Semester: Semester(ng.Semester),
		Type:     Type(ng.Type),
		Date:     date,
	}
	if ng.Score != nil {
		g.Score = *ng.Score
	}

	if g.Semester == "" {
		sem, ok := AssignSemester(date, ranges)
		if !ok {
			return Grade{}, core.NewValidationError(ErrNoSemester, core.FieldError{Field: "semester", Error: ErrNoSemester.Error()})
		}
		g.Semester = sem
	}

	if ng.Attachment != "" {
		att, err := NewAttachment(AttachmentKind(ng.AttachmentType), ng.Attachment, ng.FileName)
		if err == nil {
			err = att.Check(svc.conf.MaxAttachmentSize)
		}
		if err != nil {
			return Grade{}, core.NewValidationError(err, core.FieldError{Field: "attachment", Error: err.Error()})
		}
		g.Attachment = att
	}
	return g, nil
}
