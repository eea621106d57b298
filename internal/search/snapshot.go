// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// ErrSnapshotNotFound is returned by SnapshotSource for an unrecorded search.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the on-disk record of one search and its response, so that a
// run can be replayed later without re-querying the API.
type Snapshot struct {
	Params     Params    `yaml:"params"`
	RecordedAt time.Time `yaml:"recorded_at"`
	Response   Response  `yaml:"response"`
}

// SnapshotPath returns the file that stores the snapshot for p under dir.
// Files are keyed by every request parameter, so searches sharing an
// engine and query but differing in count, locale, window or sort are kept
// apart.
func SnapshotPath(dir string, p Params) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s\x00%s\x00%s\x00%s", p.Engine, p.Query, p.Num, p.HL, p.GL, p.When, p.Sort)
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%08x.yaml", p.Engine, slugify(p.Query), h.Sum32()))
}

// slugify keeps letters and digits and collapses everything else to "_",
// truncated to keep file names short.
func slugify(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := []rune(strings.Trim(b.String(), "_"))
	if len(out) > 60 {
		out = out[:60]
	}
	return string(out)
}

// WriteSnapshot saves a search response to path as YAML.
func WriteSnapshot(path string, p Params, resp Response) error {
	snap := Snapshot{Params: p, RecordedAt: time.Now().UTC(), Response: resp}
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a previously saved snapshot from disk.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Recorder passes searches through to another source and saves each
// successful response under Dir.
type Recorder struct {
	Next   Source
	Dir    string
	Logger *zap.Logger
}

// Search implements Source.
func (r *Recorder) Search(ctx context.Context, p Params) (Response, error) {
	resp, err := r.Next.Search(ctx, p)
	if err != nil {
		return resp, err
	}
	path := SnapshotPath(r.Dir, p)
	if err := WriteSnapshot(path, p, resp); err != nil {
		return resp, fmt.Errorf("recording snapshot: %w", err)
	}
	if r.Logger != nil {
		r.Logger.Debug("recorded snapshot", zap.String("path", path))
	}
	return resp, nil
}

// SnapshotSource replays recorded responses from Dir.
type SnapshotSource struct {
	Dir string
}

// Search implements Source.
func (s *SnapshotSource) Search(_ context.Context, p Params) (Response, error) {
	snap, err := ReadSnapshot(SnapshotPath(s.Dir, p))
	if err != nil {
		return Response{}, err
	}
	return snap.Response, nil
}
