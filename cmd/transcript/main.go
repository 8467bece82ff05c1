// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command transcript builds a LaTeX transcript from a saved Grades Summary page.
//
// # Usage
//
//	transcript build --report grades.html --options layout.yaml --out transcript.tex
//	transcript title UBCV 2020W MATH 200
//
// Configuration comes from the same environment variables as the API server;
// CACHE_BACKEND=sqlite keeps resolved titles between runs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
