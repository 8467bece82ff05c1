// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportFixture = "../../internal/report/testdata/grades_summary.html"

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("DATASET_DIR", "")

	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--offline"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

/*
TestBuild_FromReport renders the saved report with default options.

Titles come from the embedded dataset; courses it does not know print the placeholder.
*/
func TestBuild_FromReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "transcript.tex")

	_, stderr, err := run(t, "build", "--report", reportFixture, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+out)

	document, err := os.ReadFile(out)
	require.NoError(t, err)

	text := string(document)
	assert.Contains(t, text, `\def\studentName{Jane Doe}`)
	assert.Contains(t, text, `\def\studentNumber{12345678}`)
	assert.Contains(t, text, "{Calculus III}")
	assert.Contains(t, text, "{Computer Programming I}")
	assert.Contains(t, text, "{---}")
	assert.Contains(t, text, "Grades Summary")
}

func TestBuild_OptionsFileAndFlags(t *testing.T) {
	stdout, _, err := run(t, "build",
		"--report", reportFixture,
		"--options", "testdata/layout.yaml",
		"--title", "Override",
		"--out", "-",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, `\LARGE{Override}`)
	assert.Contains(t, stdout, `\begin{Table}{Winter Session 2020 - 2021}`)
	assert.NotContains(t, stdout, "COSC 111", "withdrawn course is dropped by the options file")
}

func TestBuild_RequiresInput(t *testing.T) {
	_, _, err := run(t, "build", "--out", "-")
	assert.Error(t, err)
}

func TestBuild_ReportAndInputExclusive(t *testing.T) {
	_, _, err := run(t, "build", "--report", reportFixture, "--input", "request.json")
	assert.Error(t, err)
}

func TestTitle_Lookup(t *testing.T) {
	stdout, _, err := run(t, "title", "UBCV", "2020W", "MATH", "200")
	require.NoError(t, err)

	assert.Equal(t, "UBCV-MATH-200\tCalculus III\t(dataset)\n", stdout)
}

func TestTitle_RejectsUnknownCampus(t *testing.T) {
	_, _, err := run(t, "title", "UBCX", "2020W", "MATH", "200")
	assert.Error(t, err)
}
