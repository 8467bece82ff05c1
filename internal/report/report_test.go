// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/report"
)

/*
TestParse reads the saved page fixture and checks the student, both sessions,
program info, and every course column.
*/
func TestParse(t *testing.T) {
	file, err := os.Open("testdata/grades_summary.html")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	student, sessions, err := report.Parse(file)
	require.NoError(t, err)

	assert.Equal(t, record.Student{Name: "Jane Doe", Number: "12345678"}, student)

	want := []record.Session{
		{
			Key:               "2020W",
			Campus:            record.CampusVancouver,
			Program:           "BSC",
			YearLevel:         "2",
			Specialization:    "Computer Science",
			SessionalAverage:  "84.50",
			SessionalStanding: "Pass",
			Courses: []record.Course{
				{Term: "1", Name: "CPSC 110", PercentGrade: "90", LetterGrade: "A+", Credits: "4", ClassAverage: "72", ClassSize: "180"},
				{Term: "1-2", Name: "MATH 200", PercentGrade: "85", LetterGrade: "A", Standing: "P", Credits: "3", ClassAverage: "70", ClassSize: "100"},
			},
		},
		{
			Key:       "2019S",
			Campus:    record.CampusOkanagan,
			Program:   "Unclassified",
			YearLevel: "1",
			Courses: []record.Course{
				{Term: "1", Name: "COSC 111", PercentGrade: "55", LetterGrade: "D", Standing: "W", Credits: "3", ClassAverage: "68", ClassSize: "45"},
			},
		},
	}

	if diff := cmp.Diff(want, sessions); diff != "" {
		t.Errorf("Parse() sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoSessions(t *testing.T) {
	_, _, err := report.Parse(strings.NewReader(`<html><body><div id="tabs"></div></body></html>`))
	assert.ErrorIs(t, err, report.ErrNoSessions)
}

func TestParse_CourseNamesSplit(t *testing.T) {
	file, err := os.Open("testdata/grades_summary.html")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	_, sessions, err := report.Parse(file)
	require.NoError(t, err)

	identity := sessions[0].Courses[1].Identity(sessions[0].Campus)
	assert.Equal(t, record.CourseIdentity{Campus: record.CampusVancouver, Subject: "MATH", Code: "200"}, identity)
}
