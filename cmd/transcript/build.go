// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/report"
	"github.com/taibuivan/gradetex/internal/transcript"
)

// stdoutPath writes the document to standard output.
const stdoutPath = "-"

type buildFlags struct {
	report      string
	input       string
	optionsFile string
	out         string

	title            string
	groupBySession   bool
	bordersAround    bool
	bordersBetween   bool
	dropW            bool
	dropCdf          bool
	dropEmptyStdgCol bool
}

func newBuildCommand(global *globalFlags) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render a transcript from a saved report or a JSON request",
		Long: `Render a transcript.

Input is either a saved Grades Summary page (--report) or a JSON request with
student, sessions and options (--input). Layout options are read from a YAML
file (--options) and then overridden by any layout flag given explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.report, "report", "", "Saved Grades Summary HTML page")
	cmd.Flags().StringVar(&flags.input, "input", "", "JSON transcript request")
	cmd.Flags().StringVar(&flags.optionsFile, "options", "", "YAML layout options file")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "transcript.tex", `Output path ("-" for stdout)`)

	cmd.Flags().StringVar(&flags.title, "title", "", "Document title")
	cmd.Flags().BoolVar(&flags.groupBySession, "group-by-session", false, "One table per session")
	cmd.Flags().BoolVar(&flags.bordersAround, "borders-around", false, "Draw borders around tables")
	cmd.Flags().BoolVar(&flags.bordersBetween, "borders-between", false, "Draw borders between rows")
	cmd.Flags().BoolVar(&flags.dropW, "drop-w", false, "Drop withdrawn (W) courses")
	cmd.Flags().BoolVar(&flags.dropCdf, "drop-cdf", false, "Drop courses with C, D or F standing")
	cmd.Flags().BoolVar(&flags.dropEmptyStdgCol, "drop-empty-stdg", false, "Drop the standing column when it is empty")

	cmd.MarkFlagsMutuallyExclusive("report", "input")
	cmd.MarkFlagsOneRequired("report", "input")

	return cmd
}

func runBuild(cmd *cobra.Command, global *globalFlags, flags *buildFlags) error {
	context, cancel := context.WithTimeout(cmd.Context(), global.timeout)
	defer cancel()

	// 1. Input records
	request, err := readRequest(flags)
	if err != nil {
		return err
	}

	// 2. Layout options: request, then YAML file, then explicit flags
	if flags.optionsFile != "" {
		request.Options, err = loadOptions(flags.optionsFile, request.Options)
		if err != nil {
			return err
		}
	}
	request.Options = applyFlags(cmd, flags, request.Options)

	// 3. Generate
	env, err := setup(context, cmd, global)
	if err != nil {
		return err
	}
	defer env.close()

	result, err := env.service.Generate(context, request)
	if err != nil {
		return err
	}

	// 4. Output
	if err := writeDocument(cmd.OutOrStdout(), flags.out, result.Document); err != nil {
		return err
	}
	if result.Unresolved > 0 {
		env.log.Warn("titles_unresolved", "count", result.Unresolved)
	}
	if flags.out != stdoutPath {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", flags.out)
	}
	return nil
}

func readRequest(flags *buildFlags) (transcript.Request, error) {
	path := flags.report
	if path == "" {
		path = flags.input
	}

	file, err := os.Open(path)
	if err != nil {
		return transcript.Request{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	if flags.report != "" {
		student, sessions, err := report.Parse(file)
		if err != nil {
			return transcript.Request{}, err
		}
		return transcript.Request{Student: student, Sessions: sessions, Options: record.DefaultOptions()}, nil
	}

	var request transcript.Request
	if err := json.NewDecoder(file).Decode(&request); err != nil {
		return transcript.Request{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return request, nil
}

// loadOptions overlays the YAML file at path onto base. Keys absent from the file
// keep their value from base.
func loadOptions(path string, base record.Options) (record.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read options: %w", err)
	}

	options := base
	if err := yaml.Unmarshal(data, &options); err != nil {
		return base, fmt.Errorf("parse options %s: %w", path, err)
	}
	return options, nil
}

func applyFlags(cmd *cobra.Command, flags *buildFlags, options record.Options) record.Options {
	changed := cmd.Flags().Changed

	if changed("title") {
		options.Title = flags.title
	}
	if changed("group-by-session") {
		options.GroupBySession = flags.groupBySession
	}
	if changed("borders-around") {
		options.BordersAroundTables = flags.bordersAround
	}
	if changed("borders-between") {
		options.BordersBetweenRows = flags.bordersBetween
	}
	if changed("drop-w") {
		options.DropWCourses = flags.dropW
	}
	if changed("drop-cdf") {
		options.DropCdfCourses = flags.dropCdf
	}
	if changed("drop-empty-stdg") {
		options.DropEmptyStdgCol = flags.dropEmptyStdgCol
	}
	return options
}

func writeDocument(stdout io.Writer, path, document string) error {
	if path == stdoutPath {
		_, err := io.WriteString(stdout, document)
		return err
	}

	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
