// Package stats aggregates grades into dashboard statistics and the report card matrix.
// All functions are pure and safe for concurrent use.
package stats

import (
	"sort"

	"github.com/gradetracker/backend/core/grade"
)

type (
	// SubjectAverage is the mean score of one subject.
	SubjectAverage struct {
		Subject string  `json:"subject"`
		Average float64 `json:"average"`
	}

	// Overview holds the mean of subject means and the subject means, best first.
	Overview struct {
		Overall  float64          `json:"overall"`
		Subjects []SubjectAverage `json:"subjects"`
	}

	// Summary is the dashboard view of a user's grades.
	Summary struct {
		Overview
		GradeCount  int    `json:"gradeCount"`
		BigCount    int    `json:"bigCount"`
		SmallCount  int    `json:"smallCount"`
		BestSubject string `json:"bestSubject"`
	}
)

// ComputeOverallStats averages the scores of every subject and then averages those means.
// Every subject weighs the same in Overall, whatever its number of grades.
// Subjects are sorted by descending average; ties keep their first-appearance order.
func ComputeOverallStats(grades []grade.Grade) Overview {
	subjects, bySubject := partitionBySubject(grades)

	ov := Overview{Subjects: make([]SubjectAverage, 0, len(subjects))}
	if len(subjects) == 0 {
		return ov
	}

	var sum float64
	for _, subject := range subjects {
		avg := meanScore(bySubject[subject])
		ov.Subjects = append(ov.Subjects, SubjectAverage{Subject: subject, Average: avg})
		sum += avg
	}
	ov.Overall = sum / float64(len(subjects))

	sort.SliceStable(ov.Subjects, func(i, j int) bool {
		return ov.Subjects[i].Average > ov.Subjects[j].Average
	})
	return ov
}

// Summarize computes the overall stats plus grade counts and the best subject ("-" without grades).
func Summarize(grades []grade.Grade) Summary {
	sum := Summary{
		Overview:    ComputeOverallStats(grades),
		GradeCount:  len(grades),
		BestSubject: "-",
	}
	for _, g := range grades {
		switch g.Type {
		case grade.TypeBig:
			sum.BigCount++
		case grade.TypeSmall:
			sum.SmallCount++
		}
	}
	if len(sum.Subjects) > 0 {
		sum.BestSubject = sum.Subjects[0].Subject
	}
	return sum
}

// partitionBySubject groups grades by subject. The subjects are returned in order of first appearance.
func partitionBySubject(grades []grade.Grade) ([]string, map[string][]grade.Grade) {
	var subjects []string
	bySubject := make(map[string][]grade.Grade)
	for _, g := range grades {
		if _, ok := bySubject[g.Subject]; !ok {
			subjects = append(subjects, g.Subject)
		}
		bySubject[g.Subject] = append(bySubject[g.Subject], g)
	}
	return subjects, bySubject
}

// meanScore is NaN for an empty slice; callers only pass non-empty groups.
func meanScore(grades []grade.Grade) float64 {
	var total int
	for _, g := range grades {
		total += g.Score
	}
	return float64(total) / float64(len(grades))
}
