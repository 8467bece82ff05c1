// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transcript turns a parsed grade report into a LaTeX transcript.

# Pipeline

 1. Validate the request and apply default options.
 2. Filter courses by the drop policies.
 3. Resolve every blank course title concurrently, bounded by the worker limit.
 4. Escape the remaining display fields once.
 5. Compose the document.

Every resolution completes before composition starts. A course whose title cannot
be resolved is still printed, with the placeholder title.
*/
package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/gradetex/internal/latex"
	"github.com/taibuivan/gradetex/internal/platform/apperr"
	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/platform/validate"
	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/title"
	"github.com/taibuivan/gradetex/pkg/normalize"
	"github.com/taibuivan/gradetex/pkg/slice"
)

// Resolver looks up course titles. [*title.Resolver] is the production implementation.
type Resolver interface {
	Explain(context context.Context, identity record.CourseIdentity, session record.SessionKey) title.Resolution
}

// Config tunes a [Service].
type Config struct {
	// Workers bounds concurrent title resolutions per transcript.
	Workers int

	// LogoPath is passed through to the document header when set.
	LogoPath string

	// Clock supplies the print date. Nil means time.Now; a clock returning the zero
	// time prints LaTeX's \today instead.
	Clock func() time.Time
}

// Service generates transcripts.
type Service struct {
	resolver Resolver
	config   Config
	logger   *slog.Logger
}

// NewService constructs a transcript service.
func NewService(resolver Resolver, config Config, logger *slog.Logger) *Service {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Service{resolver: resolver, config: config, logger: logger}
}

// # Transcript Generation

// Request is everything needed to render one transcript.
type Request struct {
	Student  record.Student   `json:"student"`
	Sessions []record.Session `json:"sessions"`
	Options  record.Options   `json:"options"`
}

// Result is a rendered transcript.
type Result struct {
	Document string `json:"document"`
	Filename string `json:"filename"`

	// Unresolved counts courses printed with the placeholder title.
	Unresolved int `json:"unresolved"`
}

/*
Generate renders the transcript described by request.

Returns:
  - Result: The document and its suggested filename
  - error: apperr.ValidationError for malformed records, apperr.ServiceUnavailable
    when the context ends before every title is resolved
*/
func (service *Service) Generate(context context.Context, request Request) (Result, error) {
	started := time.Now()

	// 1. Validation and defaults
	if err := validateRequest(request); err != nil {
		return Result{}, err
	}
	options := request.Options.WithDefaults()

	// 2. Drop policies
	sessions, standingEmpty := record.Filter(request.Sessions, options)

	// 3. Title resolution
	unresolved, err := service.resolveTitles(context, sessions)
	if err != nil {
		return Result{}, err
	}

	// 4. Escaping
	for i := range sessions {
		sessions[i] = escapeSession(sessions[i])
	}
	options.Title = latex.Escape(options.Title)
	student := record.Student{
		Name:   latex.Escape(normalize.Text(request.Student.Name)),
		Number: latex.Escape(normalize.Text(request.Student.Number)),
	}

	// 5. Composition
	document := latex.Compose(latex.Document{
		Student:             student,
		Sessions:            sessions,
		Options:             options,
		StandingColumnEmpty: standingEmpty,
		PrintedAt:           service.config.Clock(),
		LogoPath:            service.config.LogoPath,
	})

	service.logger.InfoContext(context, "transcript_generated",
		slog.Int("sessions", len(sessions)),
		slog.Int("courses", countCourses(sessions)),
		slog.Int("unresolved", unresolved),
		slog.Bool("grouped", options.GroupBySession),
		slog.Duration("duration", time.Since(started)),
	)

	return Result{
		Document:   document,
		Filename:   constants.TranscriptFilename,
		Unresolved: unresolved,
	}, nil
}

// resolveTitles fills every blank title in place and returns how many fell back to
// the placeholder. Caller-supplied titles are escaped instead of resolved.
func (service *Service) resolveTitles(parent context.Context, sessions []record.Session) (int, error) {
	var (
		group      errgroup.Group
		unresolved atomic.Int32
	)
	group.SetLimit(service.config.Workers)

	for i := range sessions {
		session := &sessions[i]
		for j := range session.Courses {
			course := &session.Courses[j]

			if strings.TrimSpace(course.Title) != "" {
				course.Title = latex.Escape(normalize.Text(course.Title))
				continue
			}

			group.Go(func() error {
				resolution := service.resolver.Explain(parent, course.Identity(session.Campus), session.Key)
				course.Title = resolution.Title
				if !resolution.Resolved() {
					unresolved.Add(1)
				}
				return nil
			})
		}
	}

	// Resolutions never fail, so Wait only joins the workers
	_ = group.Wait()

	if err := parent.Err(); err != nil {
		return 0, apperr.ServiceUnavailable("Title resolution was interrupted", err)
	}
	return int(unresolved.Load()), nil
}

// escapeSession escapes every display field except course titles, which are
// already document-safe once resolved.
func escapeSession(session record.Session) record.Session {
	session.Program = latex.Escape(session.Program)
	session.YearLevel = latex.Escape(session.YearLevel)
	session.Courses = slice.Map(session.Courses, escapeCourse)
	return session
}

func escapeCourse(course record.Course) record.Course {
	return record.Course{
		Term:         latex.Escape(course.Term),
		Name:         latex.Escape(normalize.Text(course.Name)),
		Title:        course.Title,
		PercentGrade: latex.Escape(course.PercentGrade),
		LetterGrade:  latex.Escape(course.LetterGrade),
		Standing:     latex.Escape(course.Standing),
		Credits:      latex.Escape(course.Credits),
		ClassAverage: latex.Escape(course.ClassAverage),
		ClassSize:    latex.Escape(course.ClassSize),
	}
}

func countCourses(sessions []record.Session) int {
	return slice.Reduce(sessions, 0, func(total int, session record.Session) int {
		return total + len(session.Courses)
	})
}

// # Validation

const (
	maxStudentNameLength = 200
	maxTitleLength       = 120
)

func validateRequest(request Request) error {
	v := &validate.Validator{}

	v.Required("student.name", request.Student.Name).
		MaxLen("student.name", request.Student.Name, maxStudentNameLength).
		Required("student.number", request.Student.Number).
		MaxLen("options.title", request.Options.Title, maxTitleLength).
		Custom("sessions", len(request.Sessions) == 0, "At least one session is required")

	for i, session := range request.Sessions {
		v.SessionKey(fmt.Sprintf("sessions[%d].key", i), string(session.Key))

		for j, course := range session.Courses {
			v.CourseName(fmt.Sprintf("sessions[%d].courses[%d].name", i, j), normalize.Text(course.Name))
		}
	}

	return v.Err()
}

// # Single Title Lookup

// TitleQuery identifies one course for [Service.LookupTitle].
type TitleQuery struct {
	Campus  string
	Session string
	Subject string
	Code    string
}

// TitleLookup is the answer to a [TitleQuery].
type TitleLookup struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	CacheKey string `json:"cacheKey"`
}

// LookupTitle resolves a single course title through the same tiers as [Service.Generate].
func (service *Service) LookupTitle(context context.Context, query TitleQuery) (TitleLookup, error) {
	campus := record.ParseCampus(query.Campus)
	subject := strings.ToUpper(normalize.Text(query.Subject))
	code := strings.ToUpper(normalize.Text(query.Code))

	v := &validate.Validator{}
	v.Custom("campus", campus == record.CampusUnknown, "Must be Vancouver (UBCV) or Okanagan (UBCO)").
		SessionKey("session", query.Session).
		CourseName("course", subject+" "+code)
	if err := v.Err(); err != nil {
		return TitleLookup{}, err
	}

	identity := record.CourseIdentity{Campus: campus, Subject: subject, Code: code}
	resolution := service.resolver.Explain(context, identity, record.SessionKey(query.Session))

	return TitleLookup{
		Title:    resolution.Title,
		Source:   resolution.Source,
		CacheKey: title.CacheKey(identity),
	}, nil
}
