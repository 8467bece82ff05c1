// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package record defines the parsed grade report: the student, their sessions, and
the course rows of each session.

Lifecycle:

  - Records are created once per parse (saved report or JSON request).
  - The transcript service fills in every blank course title.
  - The LaTeX compositor then reads them without mutating anything.

All display fields are plain strings copied from the report; nothing here
interprets grades.
*/
package record

import (
	"strings"

	"github.com/taibuivan/gradetex/pkg/normalize"
)

// # Student

// Student holds the identity printed in the transcript header.
type Student struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// # Session

// Session is one tab of the grade report.
type Session struct {
	Key               SessionKey `json:"key"`
	Campus            Campus     `json:"campus"`
	Program           string     `json:"program"`
	YearLevel         string     `json:"yearLevel"`
	Specialization    string     `json:"specialization,omitempty"`
	SessionalAverage  string     `json:"sessionalAverage,omitempty"`
	SessionalStanding string     `json:"sessionalStanding,omitempty"`

	// Courses keeps the row order of the report.
	Courses []Course `json:"courses"`
}

// # Course

// Course is one row of a session table, in report column order.
type Course struct {
	Term         string `json:"term"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	PercentGrade string `json:"percentGrade"`
	LetterGrade  string `json:"letterGrade"`
	Standing     string `json:"standing"`
	Credits      string `json:"credits"`
	ClassAverage string `json:"classAverage"`
	ClassSize    string `json:"classSize"`
}

// Identity derives the lookup identity of the course on the given campus.
func (c Course) Identity(campus Campus) CourseIdentity {
	subject, code := SplitCourseName(c.Name)
	return CourseIdentity{Campus: campus, Subject: subject, Code: code}
}

// # Course Identity

// lookupCodeLength is how many characters of a course code identify it across data sources.
const lookupCodeLength = 3

// CourseIdentity names a course offering independent of the session it was taken in.
type CourseIdentity struct {
	Campus  Campus
	Subject string
	Code    string
}

// LookupCode returns the first three characters of the code, dropping an optional
// suffix ("110A" becomes "110") that not every data source records.
func (id CourseIdentity) LookupCode() string {
	if len(id.Code) <= lookupCodeLength {
		return id.Code
	}
	return id.Code[:lookupCodeLength]
}

// String renders the identity as "UBCV MATH 200".
func (id CourseIdentity) String() string {
	return strings.TrimSpace(id.Campus.Abbreviation() + " " + id.Subject + " " + id.Code)
}

// SplitCourseName splits "MATH 200" (the separator may be a non-breaking space) into
// subject and code. A name without a separator is returned as the subject.
func SplitCourseName(name string) (subject, code string) {
	fields := strings.Fields(normalize.Text(name))
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], fields[1]
	}
}
