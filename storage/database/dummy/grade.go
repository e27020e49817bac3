package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) QueryGrades(
	_ context.Context,
	userID int,
	filter grade.QueryFilter,
	ordering ...core.DBOrdering,
) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.table {
		if g.UserID == userID && filter.Match(*g) {
			grades = append(grades, *g)
		}
	}

	// map iteration is random: order by id first, then by the requested fields
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	for k := len(ordering) - 1; k >= 0; k-- {
		ord := ordering[k]
		sort.SliceStable(grades, func(i, j int) bool {
			c := compareGrades(grades[i], grades[j], ord.Field)
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		})
	}
	return grades, nil
}

func (repo *gradeRepository) GetGrade(_ context.Context, userID, id int) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if g, ok := repo.db.table[id]; ok && g.UserID == userID {
		return *g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	g.ID = repo.db.pkCount
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if orig, ok := repo.db.table[g.ID]; !ok || orig.UserID != g.UserID {
		return grade.Grade{}, grade.ErrNotFound
	}
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, userID, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if g, ok := repo.db.table[id]; !ok || g.UserID != userID {
		return grade.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func compareGrades(a, b grade.Grade, field string) int {
	switch field {
	case "id":
		return compareInts(a.ID, b.ID)
	case "score":
		return compareInts(a.Score, b.Score)
	case "date":
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	case "subject":
		return strings.Compare(a.Subject, b.Subject)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "semester":
		return strings.Compare(string(a.Semester), string(b.Semester))
	case "type":
		return strings.Compare(string(a.Type), string(b.Type))
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
