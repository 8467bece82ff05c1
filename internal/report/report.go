// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package report reads a saved "Grades Summary" page into grade records.

Page Structure:

  - Student block: "#ubc7-unit-name > span.pull-right" with "Name:" and "Student #:" lines.
  - Session tabs: "#tabs > div[id^=tabs-]", one per session, named "tabs-2020W".
  - Program info: key/value rows in the nested table of the second row of each tab.
  - Course rows: "tr.listRow", one per course, in the order the page lists them.

The first two tabs ("tabs-list" and "tabs-all") aggregate the others and are skipped.
Course titles are left as found, usually blank; the transcript service resolves them.
*/
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/pkg/normalize"
)

// ErrNoSessions is returned when the page has no session tabs, which usually means
// the wrong page (or the outer frame) was saved.
var ErrNoSessions = errors.New("report: no session tabs found")

// # Column Positions

const (
	columnTerm = iota
	columnName
	columnTitle
	_
	columnPercentGrade
	columnLetterGrade
	columnStanding
	columnCredits
	columnClassAverage
	columnClassSize
)

const (
	// defaultTerm is printed for courses that span both winter terms.
	defaultTerm = "1-2"

	unclassifiedCode  = "UNCL"
	unclassifiedLabel = "Unclassified"
)

// Parse reads the student and every session from a saved Grades Summary page.
func Parse(r io.Reader) (record.Student, []record.Session, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return record.Student{}, nil, fmt.Errorf("report: failed to parse html: %w", err)
	}

	// 1. Student identity
	student := parseStudent(document.Find("#ubc7-unit-name > span.pull-right").First())

	// 2. Session tabs
	var sessions []record.Session
	document.Find("#tabs").First().Children().Filter("div[id^='tabs-']").Each(func(_ int, tab *goquery.Selection) {
		id, _ := tab.Attr("id")
		key := strings.TrimPrefix(id, "tabs-")
		if key == "list" || key == "all" {
			return
		}
		sessions = append(sessions, parseSession(record.SessionKey(key), tab))
	})

	if len(sessions) == 0 {
		return student, nil, ErrNoSessions
	}

	return student, sessions, nil
}

func parseStudent(block *goquery.Selection) record.Student {
	var student record.Student
	for _, line := range strings.Split(block.Text(), "\n") {
		line = normalize.Text(line)
		if value, ok := strings.CutPrefix(line, "Name:"); ok {
			student.Name = strings.TrimSpace(value)
		}
		if value, ok := strings.CutPrefix(line, "Student #:"); ok {
			student.Number = strings.TrimSpace(value)
		}
	}
	return student
}

func parseSession(key record.SessionKey, tab *goquery.Selection) record.Session {
	session := record.Session{Key: key, Courses: []record.Course{}}

	// "Summary - Vancouver Campus" names the campus in its first word
	heading := strings.TrimPrefix(normalize.Text(tab.Find(".listTitle").First().Text()), "Summary - ")
	if fields := strings.Fields(heading); len(fields) > 0 {
		session.Campus = record.ParseCampus(fields[0])
	}

	tab.Find("tbody > tr:nth-child(2) tbody").First().Children().Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 2 {
			return
		}
		value := normalize.Text(cells.Eq(1).Text())

		switch normalize.CamelCase(cells.Eq(0).Text()) {
		case "program":
			session.Program = value
		case "yearLevel":
			session.YearLevel = value
		case "specialization":
			session.Specialization = value
		case "sessionalAverage":
			session.SessionalAverage = value
		case "sessionalStanding":
			session.SessionalStanding = value
		}
	})

	if session.Program == unclassifiedCode {
		session.Program = unclassifiedLabel
	}

	tab.Find("tr.listRow").Each(func(_ int, row *goquery.Selection) {
		session.Courses = append(session.Courses, parseCourse(row.Children()))
	})

	return session
}

func parseCourse(cells *goquery.Selection) record.Course {
	cell := func(index int) string {
		return normalize.Text(cells.Eq(index).Text())
	}

	course := record.Course{
		Term:         cell(columnTerm),
		Name:         cell(columnName),
		Title:        cell(columnTitle),
		PercentGrade: cell(columnPercentGrade),
		LetterGrade:  cell(columnLetterGrade),
		Standing:     cell(columnStanding),
		Credits:      cell(columnCredits),
		ClassAverage: cell(columnClassAverage),
		ClassSize:    cell(columnClassSize),
	}

	if course.Term == "" {
		course.Term = defaultTerm
	}
	return course
}
