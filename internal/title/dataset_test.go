// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/title"
)

// countingFS counts how often each partition is opened.
type countingFS struct {
	fs.FS
	opens atomic.Int32
}

func (files *countingFS) Open(name string) (fs.File, error) {
	files.opens.Add(1)
	return files.FS.Open(name)
}

func testDataset() fstest.MapFS {
	return fstest.MapFS{
		title.PartitionVancouverAF: {Data: []byte(`{
			"CPSC-110": "Computation, Programs, and Programming",
			"CPSC-221": [["2010W", "Old Title"], ["2018W", "New Title"]]
		}`)},
		title.PartitionVancouverGZ: {Data: []byte(`{"MATH-200": "Calculus III"}`)},
		title.PartitionOkanagan:    {Data: []byte(`{"MATH-200": "Calculus III (Okanagan)"}`)},
	}
}

func TestPartitionFor(t *testing.T) {
	tests := []struct {
		identity record.CourseIdentity
		want     string
	}{
		{identity(record.CampusVancouver, "APSC 160"), title.PartitionVancouverAF},
		{identity(record.CampusVancouver, "FRST 100"), title.PartitionVancouverAF},
		{identity(record.CampusVancouver, "GEOG 121"), title.PartitionVancouverGZ},
		{identity(record.CampusVancouver, "WRDS 150"), title.PartitionVancouverGZ},
		{identity(record.CampusOkanagan, "COSC 111"), title.PartitionOkanagan},
		{identity(record.CampusUnknown, "MATH 200"), ""},
		{identity(record.CampusVancouver, ""), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, title.PartitionFor(tt.identity), tt.identity.String())
	}
}

func TestDatasetStrategy_Lookup(t *testing.T) {
	strategy := title.NewDatasetStrategy(testDataset())
	ctx := context.Background()

	tests := []struct {
		name     string
		identity record.CourseIdentity
		session  record.SessionKey
		want     string
		found    bool
	}{
		{"constant", identity(record.CampusVancouver, "CPSC 110"), "2020W", "Computation, Programs, and Programming", true},
		{"suffix_matches_base_code", identity(record.CampusVancouver, "CPSC 110A"), "2020W", "Computation, Programs, and Programming", true},
		{"versioned_new", identity(record.CampusVancouver, "CPSC 221"), "2019W", "New Title", true},
		{"versioned_old", identity(record.CampusVancouver, "CPSC 221"), "2015S", "Old Title", true},
		{"versioned_floor", identity(record.CampusVancouver, "CPSC 221"), "2001W", "Old Title", true},
		{"campus_separates_catalogues", identity(record.CampusOkanagan, "MATH 200"), "2020W", "Calculus III (Okanagan)", true},
		{"absent", identity(record.CampusVancouver, "MATH 999"), "2020W", "", false},
		{"unknown_campus", identity(record.CampusUnknown, "MATH 200"), "2020W", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := strategy.Lookup(ctx, tt.identity, tt.session)
			require.NoError(t, err)
			assert.Equal(t, tt.found, result.Found)
			assert.Equal(t, tt.want, result.Title)
			assert.False(t, result.Escaped)
		})
	}
}

/*
TestDatasetStrategy_DecodesPartitionOnce verifies that concurrent lookups against
one partition read and decode the file exactly once.
*/
func TestDatasetStrategy_DecodesPartitionOnce(t *testing.T) {
	files := &countingFS{FS: testDataset()}
	strategy := title.NewDatasetStrategy(files)

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = strategy.Lookup(context.Background(), identity(record.CampusVancouver, "CPSC 110"), "2020W")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), files.opens.Load())
}

func TestDatasetStrategy_MissingPartitionIsMiss(t *testing.T) {
	strategy := title.NewDatasetStrategy(fstest.MapFS{})

	result, err := strategy.Lookup(context.Background(), identity(record.CampusOkanagan, "COSC 111"), "2020W")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestDatasetStrategy_CorruptPartition(t *testing.T) {
	strategy := title.NewDatasetStrategy(fstest.MapFS{
		title.PartitionOkanagan: {Data: []byte(`{"COSC-111": 7}`)},
	})

	_, err := strategy.Lookup(context.Background(), identity(record.CampusOkanagan, "COSC 111"), "2020W")
	assert.Error(t, err)
}

func TestEmbeddedDataset(t *testing.T) {
	strategy := title.NewDatasetStrategy(title.EmbeddedDataset())
	ctx := context.Background()

	for _, name := range []string{"CPSC 110", "MATH 200"} {
		result, err := strategy.Lookup(ctx, identity(record.CampusVancouver, name), "2020W")
		require.NoError(t, err)
		assert.True(t, result.Found, name)
	}

	result, err := strategy.Lookup(ctx, identity(record.CampusOkanagan, "COSC 111"), "2020W")
	require.NoError(t, err)
	assert.Equal(t, "Computer Programming I", result.Title)

	result, err = strategy.Lookup(ctx, identity(record.CampusVancouver, "CPSC 221"), "2010W")
	require.NoError(t, err)
	assert.Equal(t, "Basic Algorithms & Data Structures", result.Title)
}
