package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
)

const gradeColumns = "id, user_id, subject, name, score, semester, type, date, attachment, attachment_type, file_name"

var gradeOrderColumns = map[string]string{
	"id":       "id",
	"date":     "date",
	"subject":  "subject",
	"name":     "name",
	"score":    "score",
	"semester": "semester",
	"type":     "type",
}

type gradeRow struct {
	ID             int         `db:"id"`
	UserID         int         `db:"user_id"`
	Subject        string      `db:"subject"`
	Name           string      `db:"name"`
	Score          int         `db:"score"`
	Semester       string      `db:"semester"`
	Type           string      `db:"type"`
	Date           core.Date   `db:"date"`
	Attachment     null.String `db:"attachment"`
	AttachmentType null.String `db:"attachment_type"`
	FileName       null.String `db:"file_name"`
}

func newGradeRow(g grade.Grade) gradeRow {
	row := gradeRow{
		ID:       g.ID,
		UserID:   g.UserID,
		Subject:  g.Subject,
		Name:     g.Name,
		Score:    g.Score,
		Semester: string(g.Semester),
		Type:     string(g.Type),
		Date:     g.Date,
	}
	if g.Attachment != nil {
		row.Attachment = null.StringFrom(g.Attachment.DataURL())
		row.AttachmentType = null.StringFrom(string(g.Attachment.Kind))
		row.FileName = null.NewString(g.Attachment.FileName, g.Attachment.FileName != "")
	}
	return row
}

func (row gradeRow) toGrade() (grade.Grade, error) {
	g := grade.Grade{
		ID:       row.ID,
		UserID:   row.UserID,
		Subject:  row.Subject,
		Name:     row.Name,
		Score:    row.Score,
		Semester: grade.Semester(row.Semester),
		Type:     grade.Type(row.Type),
		Date:     row.Date,
	}
	if row.Attachment.Valid && row.Attachment.String != "" {
		att, err := grade.NewAttachment(grade.AttachmentKind(row.AttachmentType.String), row.Attachment.String, row.FileName.String)
		if err != nil {
			return grade.Grade{}, errors.Wrapf(err, "decoding attachment of grade %d", row.ID)
		}
		g.Attachment = att
	}
	return g, nil
}

type gradeRepository struct {
	db sqlx.ExtContext
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

// NewGradeRepository works on a *sqlx.DB as well as on a *sqlx.Tx.
func NewGradeRepository(db sqlx.ExtContext) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryGrades(
	ctx context.Context,
	userID int,
	filter grade.QueryFilter,
	ordering ...core.DBOrdering,
) ([]grade.Grade, error) {
	q := "SELECT " + gradeColumns + " FROM grades WHERE user_id = $1"
	args := []interface{}{userID}
	addFilter := func(column, value string) {
		if value != "" {
			args = append(args, value)
			q += " AND " + column + " = $" + strconv.Itoa(len(args))
		}
	}
	addFilter("subject", filter.Subject)
	addFilter("semester", filter.Semester)
	addFilter("type", filter.Type)
	q += core.OrderByClause(ordering, gradeOrderColumns)

	var rows []gradeRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		g, err := row.toGrade()
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func (repo *gradeRepository) GetGrade(ctx context.Context, userID, id int) (grade.Grade, error) {
	q := "SELECT " + gradeColumns + " FROM grades WHERE id = $1 AND user_id = $2"

	var row gradeRow
	if err := sqlx.GetContext(ctx, repo.db, &row, q, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return grade.Grade{}, grade.ErrNotFound
		}
		return grade.Grade{}, errors.Wrap(err, "selecting grade")
	}
	return row.toGrade()
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := "INSERT INTO grades (user_id, subject, name, score, semester, type, date, attachment, attachment_type, file_name) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id"

	row := newGradeRow(g)
	err := sqlx.GetContext(ctx, repo.db, &g.ID, q,
		row.UserID, row.Subject, row.Name, row.Score, row.Semester, row.Type, row.Date,
		row.Attachment, row.AttachmentType, row.FileName)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := "UPDATE grades SET subject = $3, name = $4, score = $5, semester = $6, type = $7, date = $8, " +
		"attachment = $9, attachment_type = $10, file_name = $11 WHERE id = $1 AND user_id = $2"

	row := newGradeRow(g)
	res, err := repo.db.ExecContext(ctx, q,
		row.ID, row.UserID, row.Subject, row.Name, row.Score, row.Semester, row.Type, row.Date,
		row.Attachment, row.AttachmentType, row.FileName)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	if n == 0 {
		return grade.Grade{}, grade.ErrNotFound
	}
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, userID, id int) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM grades WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if n == 0 {
		return grade.ErrNotFound
	}
	return nil
}
