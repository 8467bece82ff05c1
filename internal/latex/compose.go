// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package latex renders a filtered grade report as a standalone LaTeX document.

Document Layout:

  - Preamble: packages, page style, row and column spacing.
  - Definitions: student macros, title, column names, table heading, Table environment.
  - Header: title, student identity, print date, page numbering.
  - Body: one table per session (grouped) or one table for every course (flat).
  - Closing: the End of Record banner.

# Determinism

[Compose] is a pure function of its [Document]. A zero PrintedAt renders the
\today macro so the output does not depend on the clock at all.

# Escaping

Compose does not escape anything. Callers run [Escape] once on every untrusted field
before composing; resolved course titles arrive already escaped.
*/
package latex

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/gradetex/internal/record"
)

// indent prefixes every table row and environment line.
const indent = "    "

// printedDateLayout formats PrintedAt in the header.
const printedDateLayout = "January 2, 2006"

// Document is everything the compositor needs to render one transcript.
type Document struct {
	Student  record.Student
	Sessions []record.Session
	Options  record.Options

	// StandingColumnEmpty reports whether every course that survived filtering has a
	// blank standing. The column is dropped only when Options.DropEmptyStdgCol is also set.
	StandingColumnEmpty bool

	// PrintedAt is the date printed in the header. Zero defers to LaTeX's \today.
	PrintedAt time.Time

	// LogoPath is an optional image placed in the top-left corner of every page.
	LogoPath string
}

// Compose renders the complete document text.
func Compose(doc Document) string {
	layout := newLayout(doc.Options, doc.StandingColumnEmpty)

	var b strings.Builder

	// 1. Preamble, definitions and page header
	writePreamble(&b, doc, layout)
	writeDefinitions(&b, doc, layout)
	writeHeader(&b, doc)

	// 2. Body
	b.WriteString("%%%%%%%%%%%%%%% TRANSCRIPT MAIN %%%%%%%%%%%%%%%\n")
	b.WriteString("\\begin{document}\n\n")

	if layout.grouped {
		for _, session := range doc.Sessions {
			writeSessionTable(&b, session, layout)
		}
	} else {
		writeFlatTable(&b, doc.Sessions, layout)
	}

	// 3. Closing banner
	b.WriteString("% End of Record\n")
	b.WriteString("\\begin{center}*********************************** End of Record ***********************************\\end{center}\n")
	b.WriteString("\\end{document}\n")

	return b.String()
}

// # Preamble

func writePreamble(b *strings.Builder, doc Document, layout layout) {
	b.WriteString(`\documentclass{article}
\usepackage[empty]{fullpage}
\usepackage[table]{xcolor}
\usepackage[includeheadfoot, margin=0.5in,headheight=3cm]{geometry}
\usepackage{fancyhdr, graphicx, longtable, lastpage}
\usepackage{times}

% Setup
\pagestyle{fancy}
\fancyhf{}
\fancyfoot{}
\renewcommand{\headrulewidth}{0pt}
\renewcommand{\footrulewidth}{0pt}
`)
	fmt.Fprintf(b, "\\renewcommand{\\arraystretch}{%s} %% Row spacing\n", layout.rowSpacing)
	if !layout.grouped {
		b.WriteString("\\setlength{\\tabcolsep}{4pt} % Column spacing\n")
	}
	b.WriteString("\n")
}

// # Definitions

func writeDefinitions(b *strings.Builder, doc Document, layout layout) {
	n := len(layout.columns)

	b.WriteString("%%%%%%%%%%%%%%% DEFINITIONS %%%%%%%%%%%%%%%\n")
	b.WriteString("% Student info\n")
	fmt.Fprintf(b, "\\def\\studentName{%s}\n", doc.Student.Name)
	fmt.Fprintf(b, "\\def\\studentNumber{%s}\n", doc.Student.Number)
	fmt.Fprintf(b, "\\def\\datePrinted{%s}\n\n", printedDate(doc.PrintedAt))

	b.WriteString("% Title\n")
	fmt.Fprintf(b, "\\newcommand{\\transcriptTitle}{\\textbf{\\LARGE{%s}}}\n\n", doc.Options.Title)

	b.WriteString("% Spacing between tables\n")
	b.WriteString("\\newcommand{\\tableSpacing}{\\vspace{-1em}}\n\n")

	// Column names, with the two class statistics columns grouped under one label
	b.WriteString("% Table column names\n")
	b.WriteString("\\newcommand{\\TableColumnNames}{\n")
	fmt.Fprintf(b, "\\multicolumn{%d}{%sc}{} & \\multicolumn{2}{c%s}{\\textbf{Class}} \\\\[-0.5em]\n",
		n-2, layout.pipe, layout.pipe)
	fmt.Fprintf(b, "%s\\\\}\n\n", layout.columnNames())

	b.WriteString("% Table heading\n")
	fmt.Fprintf(b, "\\newcommand{\\TableHeading}[1]{%s\\multicolumn{%d}{%sl%s}{\\cellcolor{gray!25}\\large{\\textbf{#1}}}\\\\}\n\n",
		layout.hline, n, layout.pipe, layout.pipe)

	begin := fmt.Sprintf("\\begin{longtable}{%s}", layout.tableSpec())
	footer := layout.footer()

	if layout.grouped {
		args := make([]string, n)
		for i := range args {
			args[i] = "#" + strconv.Itoa(i+1)
		}
		b.WriteString("% Table course row\n")
		fmt.Fprintf(b, "\\newcommand{\\Course}[%d]{%s\\\\ %s}\n\n", n, strings.Join(args, " & "), layout.hlineRow)

		b.WriteString("% Session table environment; args: Session, Program, Campus, Year\n")
		b.WriteString("\\newenvironment{Table}[4]\n")
		fmt.Fprintf(b, "{%s\n", begin)
		b.WriteString(indent + "% Table header\n")
		b.WriteString(indent + "\\TableHeading{#1}\n")
		fmt.Fprintf(b, "%s\\multicolumn{%d}{%sl%s}{\\textbf{#2} (UBC #3) \\textbf{- Year #4}} \\\\[-0.75em]\n",
			indent, n, layout.pipe, layout.pipe)
		fmt.Fprintf(b, "%s\\TableColumnNames%s\n", indent, layout.hlineRow)
		b.WriteString(indent + "\\endfirsthead\n")
		b.WriteString(indent + "% Table header if table continues onto next page\n")
		b.WriteString(indent + "\\TableHeading{#1 continued \\dots}\n")
		b.WriteString(indent + "\\TableColumnNames\n")
		b.WriteString(indent + "\\endhead\n")
	} else {
		b.WriteString("% Table environment\n")
		b.WriteString("\\newenvironment{Table}\n")
		fmt.Fprintf(b, "{%s\n", begin)
		b.WriteString(indent + "% Table header\n")
		fmt.Fprintf(b, "%s%s\\TableColumnNames%s \\endhead\n", indent, layout.hline, layout.hlineRow)
	}
	if footer != "" {
		fmt.Fprintf(b, "%s%s\n", indent, footer)
	}
	b.WriteString("}\n{\\end{longtable} \\tableSpacing}\n\n")
}

func printedDate(at time.Time) string {
	if at.IsZero() {
		return `\today`
	}
	return at.Format(printedDateLayout)
}

// # Page Header

func writeHeader(b *strings.Builder, doc Document) {
	b.WriteString("%%%%%%%%%%%%%%% TRANSCRIPT HEADER %%%%%%%%%%%%%%%\n")
	if doc.LogoPath != "" {
		fmt.Fprintf(b, "\\lhead{\\hspace{0.6em\\vspace{-2em}}\\includegraphics[height=1.2cm]{%s}}\n", doc.LogoPath)
	}
	b.WriteString(`\rhead{\begin{tabular*}{\textwidth}[t]{l l l@{\extracolsep{\fill}}l}
% Title
\multicolumn{4}{c}{\parbox[c]{7cm}{\centering{\transcriptTitle}}} \\[2em]
% Name, student number, date printed, page number
\textbf{Full Name:} & \textbf{Student Number:} & \textbf{Date Printed:} & \textbf{{Page: \thepage\ of \pageref{LastPage}}} \\[-0.2em]
\studentName & \studentNumber & {\datePrinted} \\[2em]
\end{tabular*}}

`)
}

// # Tables

func writeSessionTable(b *strings.Builder, session record.Session, layout layout) {
	fmt.Fprintf(b, "\\begin{Table}{%s}{%s}{%s}{%s}\n",
		session.Key.DisplayName(), session.Program, session.Campus, session.YearLevel)

	for _, course := range session.Courses {
		b.WriteString(indent + "\\Course")
		for _, cell := range groupedCells(course, layout) {
			fmt.Fprintf(b, "{%s}", cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\\end{Table}\n\n")
}

func writeFlatTable(b *strings.Builder, sessions []record.Session, layout layout) {
	b.WriteString("\\begin{Table}\n")

	for _, session := range sessions {
		for _, course := range ordered(session.Courses) {
			cells := flatCells(session, course, layout)
			for i, cell := range cells {
				cells[i] = "{" + cell + "}"
			}
			fmt.Fprintf(b, "%s%s \\\\%s\n", indent, strings.Join(cells, " & "), layout.hlineRow)
		}
	}

	b.WriteString("\\end{Table}\n\n")
}

func groupedCells(course record.Course, layout layout) []string {
	cells := []string{course.Term, course.Name, course.Title, course.PercentGrade, course.LetterGrade}
	if !layout.dropStanding {
		cells = append(cells, course.Standing)
	}
	return append(cells, course.Credits, course.ClassAverage, course.ClassSize)
}

func flatCells(session record.Session, course record.Course, layout layout) []string {
	cells := []string{
		course.Name, course.Title, course.PercentGrade, course.LetterGrade,
		string(session.Key), course.Term, session.Program, session.YearLevel,
	}
	if !layout.dropStanding {
		cells = append(cells, course.Standing)
	}
	return append(cells, course.Credits, course.ClassAverage, course.ClassSize)
}

// ordered returns a copy of courses sorted by term, then course name, both descending.
// Both keys compare the unescaped text.
func ordered(courses []record.Course) []record.Course {
	sorted := slices.Clone(courses)
	slices.SortStableFunc(sorted, func(a, b record.Course) int {
		if c := cmp.Compare(unescape(b.Term), unescape(a.Term)); c != 0 {
			return c
		}
		return cmp.Compare(unescape(b.Name), unescape(a.Name))
	})
	return sorted
}
