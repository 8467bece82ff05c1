// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/taibuivan/gradetex/internal/record"
)

// # Partitions

// The Vancouver catalogue is split by the first letter of the subject code.
const (
	PartitionVancouverAF = "UBCV_A-F.json"
	PartitionVancouverGZ = "UBCV_G-Z.json"
	PartitionOkanagan    = "UBCO.json"
)

//go:embed data/*.json
var embedded embed.FS

// EmbeddedDataset returns the partitions bundled with the binary.
func EmbeddedDataset() fs.FS {
	files, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("title: embedded dataset: %v", err))
	}
	return files
}

// PartitionFor names the dataset file holding identity. It is empty when the
// campus is unknown or the subject is blank.
func PartitionFor(identity record.CourseIdentity) string {
	if identity.Subject == "" {
		return ""
	}

	switch identity.Campus {
	case record.CampusVancouver:
		if identity.Subject[0] <= 'F' {
			return PartitionVancouverAF
		}
		return PartitionVancouverGZ
	case record.CampusOkanagan:
		return PartitionOkanagan
	default:
		return ""
	}
}

// DatasetKey builds "MATH-200", the key used inside a partition.
func DatasetKey(identity record.CourseIdentity) string {
	return identity.Subject + "-" + identity.LookupCode()
}

// # Dataset Strategy

// partition is one decoded dataset file, loaded at most once.
type partition struct {
	once   sync.Once
	titles map[string]Title
	err    error
}

// DatasetStrategy is the second resolver tier: a read-only catalogue of course
// titles split across partition files.
type DatasetStrategy struct {
	files fs.FS

	mu         sync.Mutex
	partitions map[string]*partition
}

// NewDatasetStrategy reads partitions from files, usually [EmbeddedDataset] or an os.DirFS.
func NewDatasetStrategy(files fs.FS) *DatasetStrategy {
	return &DatasetStrategy{files: files, partitions: make(map[string]*partition)}
}

func (strategy *DatasetStrategy) Name() string { return "dataset" }

// Lookup selects the title in effect for session.
func (strategy *DatasetStrategy) Lookup(_ context.Context, identity record.CourseIdentity, session record.SessionKey) (Result, error) {
	name := PartitionFor(identity)
	if name == "" {
		return miss, nil
	}

	titles, err := strategy.partition(name)
	if err != nil {
		return miss, err
	}

	entry, ok := titles[DatasetKey(identity)]
	if !ok {
		return miss, nil
	}

	value := entry.For(session)
	if value == "" {
		return miss, nil
	}
	return Result{Title: value, Found: true}, nil
}

// partition returns the decoded file, decoding it on first use. Concurrent
// callers for the same file wait on a single decode.
func (strategy *DatasetStrategy) partition(name string) (map[string]Title, error) {
	strategy.mu.Lock()
	p, ok := strategy.partitions[name]
	if !ok {
		p = &partition{}
		strategy.partitions[name] = p
	}
	strategy.mu.Unlock()

	p.once.Do(func() {
		p.titles, p.err = decodePartition(strategy.files, name)
	})
	return p.titles, p.err
}

func decodePartition(files fs.FS, name string) (map[string]Title, error) {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		// A missing partition simply has no titles
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]Title{}, nil
		}
		return nil, fmt.Errorf("title: failed to read partition %s: %w", name, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("title: invalid partition %s: %w", name, err)
	}

	titles := make(map[string]Title, len(raw))
	for key, value := range raw {
		decoded, err := Decode(value)
		if err != nil {
			return nil, fmt.Errorf("title: partition %s entry %s: %w", name, key, err)
		}
		titles[key] = decoded
	}

	return titles, nil
}
