package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradetracker/backend/core/grade"
)

var reportSemesters = []grade.Semester{"12/1", "12/2", "13/1", "13/2"}

func intPtr(i int) *int { return &i }

func cells(values ...*int) map[grade.Semester]*int {
	m := make(map[grade.Semester]*int, len(reportSemesters))
	for i, sem := range reportSemesters {
		m[sem] = values[i]
	}
	return m
}

func TestBuildReportMatrix(t *testing.T) {
	tests := []struct {
		name   string
		grades []grade.Grade
		want   []ReportRow
	}{
		{
			name: "no grades",
			want: []ReportRow{},
		},
		{
			name: "big and small weigh the same",
			grades: []grade.Grade{
				newGrade("Math", 12, "12/1", grade.TypeBig),
				newGrade("Math", 8, "12/1", grade.TypeSmall),
				newGrade("Math", 10, "12/1", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(intPtr(11), nil, nil, nil), Overall: "10.5"},
			},
		},
		{
			name: "only small grades",
			grades: []grade.Grade{
				newGrade("Art", 7, "12/2", grade.TypeSmall),
				newGrade("Art", 9, "12/2", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Art", PerSemester: cells(nil, intPtr(8), nil, nil), Overall: "8.0"},
			},
		},
		{
			name: "only big grades",
			grades: []grade.Grade{
				newGrade("Bio", 13, "13/2", grade.TypeBig),
			},
			want: []ReportRow{
				{Subject: "Bio", PerSemester: cells(nil, nil, nil, intPtr(13)), Overall: "13.0"},
			},
		},
		{
			name: "overall uses unrounded averages",
			grades: []grade.Grade{
				// 12/1: (10 + 11) / 2 = 10.5 -> 11
				newGrade("Math", 10, "12/1", grade.TypeBig),
				newGrade("Math", 11, "12/1", grade.TypeSmall),
				// 12/2: (10 + 11) / 2 = 10.5 -> 11
				newGrade("Math", 10, "12/2", grade.TypeBig),
				newGrade("Math", 11, "12/2", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(intPtr(11), intPtr(11), nil, nil), Overall: "10.5"},
			},
		},
		{
			name: "rounding half away from zero",
			grades: []grade.Grade{
				// big 52/5 = 10.4, small 53/5 = 10.6 -> 10.5 -> 11
				newGrade("Math", 10, "13/1", grade.TypeBig),
				newGrade("Math", 10, "13/1", grade.TypeBig),
				newGrade("Math", 10, "13/1", grade.TypeBig),
				newGrade("Math", 11, "13/1", grade.TypeBig),
				newGrade("Math", 11, "13/1", grade.TypeBig),
				newGrade("Math", 10, "13/1", grade.TypeSmall),
				newGrade("Math", 11, "13/1", grade.TypeSmall),
				newGrade("Math", 11, "13/1", grade.TypeSmall),
				newGrade("Math", 11, "13/1", grade.TypeSmall),
				newGrade("Math", 10, "13/1", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(nil, nil, intPtr(11), nil), Overall: "10.5"},
			},
		},
		{
			name: "unknown semesters are ignored",
			grades: []grade.Grade{
				newGrade("Math", 10, "12/1", grade.TypeBig),
				newGrade("Math", 1, "11/2", grade.TypeBig),
				newGrade("Art", 5, "14/1", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(intPtr(10), nil, nil, nil), Overall: "10.0"},
				{Subject: "Art", PerSemester: cells(nil, nil, nil, nil), Overall: "-"},
			},
		},
		{
			name: "rows keep first appearance order",
			grades: []grade.Grade{
				newGrade("Physics", 3, "12/1", grade.TypeBig),
				newGrade("Art", 15, "12/1", grade.TypeBig),
				newGrade("Physics", 5, "13/2", grade.TypeSmall),
				newGrade("Chem", 9, "12/2", grade.TypeSmall),
			},
			want: []ReportRow{
				{Subject: "Physics", PerSemester: cells(intPtr(3), nil, nil, intPtr(5)), Overall: "4.0"},
				{Subject: "Art", PerSemester: cells(intPtr(15), nil, nil, nil), Overall: "15.0"},
				{Subject: "Chem", PerSemester: cells(nil, intPtr(9), nil, nil), Overall: "9.0"},
			},
		},
		{
			name: "one decimal",
			grades: []grade.Grade{
				newGrade("Math", 10, "12/1", grade.TypeBig),
				newGrade("Math", 11, "12/2", grade.TypeBig),
				newGrade("Math", 11, "13/1", grade.TypeBig),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(intPtr(10), intPtr(11), intPtr(11), nil), Overall: "10.7"},
			},
		},
		{
			name: "overall rounds the stored float",
			grades: []grade.Grade{
				newGrade("Math", 1, "12/1", grade.TypeSmall),
				newGrade("Math", 0, "12/1", grade.TypeSmall),
				newGrade("Math", 0, "12/1", grade.TypeSmall),
				newGrade("Math", 0, "12/1", grade.TypeSmall),
				newGrade("Math", 0, "12/1", grade.TypeSmall),
				newGrade("Math", 3, "12/2", grade.TypeBig),
				newGrade("Math", 3, "13/1", grade.TypeBig),
				newGrade("Math", 2, "13/2", grade.TypeBig),
			},
			want: []ReportRow{
				{Subject: "Math", PerSemester: cells(intPtr(0), intPtr(3), intPtr(3), intPtr(2)), Overall: "2.0"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildReportMatrix(tt.grades, reportSemesters)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_formatOverall(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{avg: (0.2 + 3 + 3 + 2) / 4, want: "2.0"},
		{avg: 10.5, want: "10.5"},
		{avg: 0.25, want: "0.3"},
		{avg: 10.05, want: "10.1"},
		{avg: 32.0 / 3, want: "10.7"},
		{avg: 15, want: "15.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatOverall(tt.avg), "avg = %v", tt.avg)
	}
}

func TestBuildReportMatrix_cellsCoverEverySemester(t *testing.T) {
	rows := BuildReportMatrix([]grade.Grade{newGrade("Math", 10, "12/1", grade.TypeBig)}, reportSemesters)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].PerSemester, len(reportSemesters))
	for _, sem := range reportSemesters {
		assert.Contains(t, rows[0].PerSemester, sem)
	}
}

func TestBuildReportMatrix_noSemesters(t *testing.T) {
	rows := BuildReportMatrix([]grade.Grade{newGrade("Math", 10, "12/1", grade.TypeBig)}, nil)
	assert.Equal(t, []ReportRow{{Subject: "Math", PerSemester: map[grade.Semester]*int{}, Overall: "-"}}, rows)
}

func TestBuildReportMatrix_json(t *testing.T) {
	rows := BuildReportMatrix([]grade.Grade{newGrade("Math", 9, "12/2", grade.TypeSmall)}, reportSemesters)
	data, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"subject": "Math",
		"perSemester": {"12/1": null, "12/2": 9, "13/1": null, "13/2": null},
		"overall": "9.0"
	}]`, string(data))
}
