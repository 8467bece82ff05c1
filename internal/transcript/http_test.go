// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transcript_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/transcript"
)

func newRouter(resolver transcript.Resolver) http.Handler {
	router := chi.NewRouter()
	transcript.NewHandler(newService(resolver)).RegisterRoutes(router)
	return router
}

const requestBody = `{
	"student": {"name": "Jane Doe", "number": "12345678"},
	"sessions": [{
		"key": "2020W",
		"campus": "Vancouver",
		"program": "BSC",
		"yearLevel": "2",
		"courses": [{"term": "1", "name": "MATH 200", "percentGrade": "85", "letterGrade": "A", "standing": "", "credits": "3", "classAverage": "70", "classSize": "100"}]
	}],
	"options": {"groupBySession": true, "bordersAroundTables": true}
}`

func TestHandler_GenerateDocument(t *testing.T) {
	resolver := &fakeResolver{titles: map[string]string{"MATH 200@2020W": "Calculus III"}}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/transcripts", strings.NewReader(requestBody))

	newRouter(resolver).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/x-tex; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), `filename="transcript.tex"`)
	assert.Equal(t, "0", recorder.Header().Get("X-Unresolved-Titles"))
	assert.Contains(t, recorder.Body.String(), `\Course{1}{MATH 200}{Calculus III}{85}{A}{}{3}{70}{100}`)
	assert.Contains(t, recorder.Body.String(), `\begin{Table}{Winter Session 2020 - 2021}{BSC}{Vancouver}{2}`)
}

func TestHandler_GenerateJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/transcripts?format=json", strings.NewReader(requestBody))

	newRouter(&fakeResolver{}).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data transcript.Result `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, "transcript.tex", envelope.Data.Filename)
	assert.Equal(t, 1, envelope.Data.Unresolved)
	assert.Contains(t, envelope.Data.Document, `{MATH 200}{---}`)
}

func TestHandler_GenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid_json", `{"student":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid_record", `{"student":{"name":"Jane"},"sessions":[]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"too_large", `{"student":{"name":"` + strings.Repeat("x", 1<<20) + `"}}`, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/transcripts", strings.NewReader(tt.body))

			newRouter(&fakeResolver{}).ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)

			var envelope struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
			assert.Equal(t, tt.code, envelope.Code)
		})
	}
}

func TestHandler_GenerateUnknownFormat(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/transcripts?format=pdf", strings.NewReader(`{}`))

	newRouter(&fakeResolver{}).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Must be one of: tex, json")
}

func TestHandler_LookupTitle(t *testing.T) {
	resolver := &fakeResolver{titles: map[string]string{"CPSC 110@2020W": "Computation"}}

	recorder := httptest.NewRecorder()
	newRouter(resolver).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/titles/UBCV/2020W/CPSC/110", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data transcript.TitleLookup `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, transcript.TitleLookup{Title: "Computation", Source: "dataset", CacheKey: "UBCV-CPSC-110"}, envelope.Data)

	recorder = httptest.NewRecorder()
	newRouter(resolver).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/titles/UBCV/20W/CPSC/110", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
