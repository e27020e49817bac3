package grade

import "github.com/gradetracker/backend/core"

// AssignSemester returns the semester of the first range holding date.
func AssignSemester(date core.Date, ranges []SemesterRange) (Semester, bool) {
	for _, rng := range ranges {
		if date.Between(rng.Start, rng.End) {
			return rng.ID, true
		}
	}
	return "", false
}

// Semesters converts a list of semester IDs.
func Semesters(ids []string) []Semester {
	sems := make([]Semester, 0, len(ids))
	for _, id := range ids {
		sems = append(sems, Semester(id))
	}
	return sems
}
