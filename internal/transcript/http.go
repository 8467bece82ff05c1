// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transcript

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gradetex/internal/platform/constants"
	requestutil "github.com/taibuivan/gradetex/internal/platform/request"
	"github.com/taibuivan/gradetex/internal/platform/respond"
	"github.com/taibuivan/gradetex/internal/platform/validate"
)

// Response formats for POST /transcripts.
const (
	formatTeX  = "tex"
	formatJSON = "json"
)

// Handler exposes the transcript service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a transcript handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the transcript and title endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/transcripts", handler.generate)
	router.Get("/titles/{campus}/{session}/{subject}/{code}", handler.lookupTitle)
}

/*
generate renders a transcript.

The response is the LaTeX document itself unless ?format=json asks for the
standard envelope. X-Unresolved-Titles is set either way.
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	format := requestutil.Query(request, "format")
	if format != "" {
		if err := (&validate.Validator{}).OneOf("format", format, formatTeX, formatJSON).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	var input Request
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Generate(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderUnresolvedTitles, strconv.Itoa(result.Unresolved))

	if format == formatJSON {
		respond.OK(writer, result)
		return
	}
	respond.Document(writer, constants.ContentTypeTeX, result.Filename, result.Document)
}

func (handler *Handler) lookupTitle(writer http.ResponseWriter, request *http.Request) {
	lookup, err := handler.service.LookupTitle(request.Context(), TitleQuery{
		Campus:  requestutil.Param(request, "campus"),
		Session: requestutil.Param(request, "session"),
		Subject: requestutil.Param(request, "subject"),
		Code:    requestutil.Param(request, "code"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lookup)
}
