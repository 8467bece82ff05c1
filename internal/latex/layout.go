// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package latex

import (
	"strconv"
	"strings"

	"github.com/taibuivan/gradetex/internal/record"
)

// column is one table column: its longtable spec and its header label.
type column struct {
	spec     string
	label    string
	standing bool
}

// Grouped tables factor session, program, and year into the table heading.
var groupedColumns = []column{
	{spec: "l", label: "Term"},
	{spec: "l", label: "Course"},
	{spec: "p{%dcm}@{\\extracolsep{\\fill}}", label: "Course Title"},
	{spec: "r", label: "Grade"},
	{spec: "l", label: "Letter"},
	{spec: "l", label: "Stdg", standing: true},
	{spec: "r", label: "Credits"},
	{spec: "r", label: "Avg"},
	{spec: "r", label: "Size"},
}

// The flat table repeats session details on every row.
var flatColumns = []column{
	{spec: "l", label: "Course"},
	{spec: "p{%dcm}@{\\extracolsep{\\fill}}", label: "Course Title"},
	{spec: "r", label: "Grade"},
	{spec: "l", label: "Letter"},
	{spec: "l", label: "Session"},
	{spec: "l", label: "Term"},
	{spec: "l", label: "Prgm"},
	{spec: "l", label: "Yr"},
	{spec: "l", label: "Stdg", standing: true},
	{spec: "r", label: "Credits"},
	{spec: "r", label: "Avg"},
	{spec: "r", label: "Size"},
}

// layout is everything the options decide about table shape.
type layout struct {
	grouped      bool
	dropStanding bool

	// pipe and hline draw the outer border; hlineRow rules every row.
	pipe     string
	hline    string
	hlineRow string

	// rowSpacing is the \arraystretch factor.
	rowSpacing string

	columns []column
}

func newLayout(options record.Options, standingEmpty bool) layout {
	l := layout{
		grouped:      options.GroupBySession,
		dropStanding: options.DropEmptyStdgCol && standingEmpty,
		rowSpacing:   "1.6",
	}

	if options.BordersAroundTables {
		l.pipe = "|"
		l.hline = `\hline`
	}
	if options.BordersBetweenRows {
		l.hlineRow = `\hline`
	}

	source := flatColumns
	if l.grouped {
		source = groupedColumns
		l.rowSpacing = "1.4"
	}
	for _, col := range source {
		if col.standing && l.dropStanding {
			continue
		}
		l.columns = append(l.columns, col)
	}

	return l
}

// titleWidth widens the title column by a centimetre when the standing column is gone.
func (l layout) titleWidth() int {
	width := 6
	if l.grouped {
		width = 7
	}
	if l.dropStanding {
		width++
	}
	return width
}

// tableSpec renders the longtable column specification.
func (l layout) tableSpec() string {
	specs := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		if strings.Contains(col.spec, "%d") {
			specs = append(specs, strings.Replace(col.spec, "%d", strconv.Itoa(l.titleWidth()), 1))
			continue
		}
		specs = append(specs, col.spec)
	}
	return l.pipe + strings.Join(specs, " ") + l.pipe
}

// columnNames renders the bold header row.
func (l layout) columnNames() string {
	labels := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		labels = append(labels, `\textbf{`+col.label+`}`)
	}
	return strings.Join(labels, " & ")
}

// footer closes every page of a bordered table whose rows are not individually ruled.
func (l layout) footer() string {
	if l.pipe == "" || l.hlineRow != "" {
		return ""
	}
	return "% Table footer\n" + indent + `\hline\endfoot`
}
