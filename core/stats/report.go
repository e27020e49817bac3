package stats

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gradetracker/backend/core/grade"
)

// NoOverall is the overall value of a report row without any grade in the report semesters.
const NoOverall = "-"

// ReportRow is one subject line of the report card.
// PerSemester holds the rounded cell value of every report semester, nil when the subject has no grade in it.
type ReportRow struct {
	Subject     string                  `json:"subject"`
	PerSemester map[grade.Semester]*int `json:"perSemester"`
	Overall     string                  `json:"overall"`
}

// BuildReportMatrix builds one row per subject, in order of first appearance, with a cell per semester.
//
// A cell averages the mean of the big grades and the mean of the small grades with equal weight,
// or takes the only mean available. The cell shows that average rounded half away from zero.
// Overall is the mean of the unrounded cell averages of the semesters holding grades, with one decimal.
// It rounds the float as stored, so 2.0499999999999998 gives "2.0".
// Grades of semesters outside `semesters` are ignored.
func BuildReportMatrix(grades []grade.Grade, semesters []grade.Semester) []ReportRow {
	subjects, bySubject := partitionBySubject(grades)

	rows := make([]ReportRow, 0, len(subjects))
	for _, subject := range subjects {
		row := ReportRow{
			Subject:     subject,
			PerSemester: make(map[grade.Semester]*int, len(semesters)),
			Overall:     NoOverall,
		}

		var sum float64
		var filled int
		for _, sem := range semesters {
			avg, ok := cellAverage(bySubject[subject], sem)
			if !ok {
				row.PerSemester[sem] = nil
				continue
			}
			rounded := int(math.Round(avg))
			row.PerSemester[sem] = &rounded
			sum += avg
			filled++
		}
		if filled > 0 {
			row.Overall = formatOverall(sum / float64(filled))
		}
		rows = append(rows, row)
	}
	return rows
}

// formatOverall rounds the exact binary value of avg to one decimal, ties away from zero.
func formatOverall(avg float64) string {
	return decimal.RequireFromString(strconv.FormatFloat(avg, 'f', 60, 64)).StringFixed(1)
}

// cellAverage returns the unrounded average of one subject's grades in sem, false when there are none.
func cellAverage(grades []grade.Grade, sem grade.Semester) (float64, bool) {
	var big, small []grade.Grade
	for _, g := range grades {
		if g.Semester != sem {
			continue
		}
		switch g.Type {
		case grade.TypeBig:
			big = append(big, g)
		case grade.TypeSmall:
			small = append(small, g)
		}
	}

	switch {
	case len(big) > 0 && len(small) > 0:
		return (meanScore(big) + meanScore(small)) / 2, true
	case len(big) > 0:
		return meanScore(big), true
	case len(small) > 0:
		return meanScore(small), true
	}
	return 0, false
}
