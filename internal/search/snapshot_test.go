// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotPath(t *testing.T) {
	p := Params{Engine: EngineGoogle, Query: "Solid-State Battery market size"}
	path := SnapshotPath("snaps", p)

	assert.Equal(t, "snaps", filepath.Dir(path))
	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "google-solid_state_battery_market_size-"), base)
	assert.True(t, strings.HasSuffix(base, ".yaml"), base)

	assert.Equal(t, path, SnapshotPath("snaps", p), "path is stable")
	assert.NotEqual(t, path, SnapshotPath("snaps", Params{Engine: EngineScholar, Query: p.Query}))
}

func TestSnapshotPathSeparatesRequestParams(t *testing.T) {
	// A technology named "technology" and the pulse recent-patents search
	// share engine and query.
	tech := Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 20}
	recent := Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 40, Sort: "new"}

	assert.NotEqual(t, SnapshotPath("snaps", tech), SnapshotPath("snaps", recent))
	assert.NotEqual(t, SnapshotPath("snaps", tech), SnapshotPath("snaps", Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 40}))
	assert.NotEqual(t, SnapshotPath("snaps", tech), SnapshotPath("snaps", Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 20, When: "2d"}))
}

func TestReplayKeepsRequestParamsApart(t *testing.T) {
	dir := t.TempDir()
	tech := Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 20}
	recent := Params{Engine: EnginePatents, Query: PulsePatentQuery, Num: 40, Sort: "new"}
	require.NoError(t, WriteSnapshot(SnapshotPath(dir, tech), tech, Response{OrganicResults: []RawResult{{Title: "Tech run"}}}))
	require.NoError(t, WriteSnapshot(SnapshotPath(dir, recent), recent, Response{OrganicResults: []RawResult{{Title: "Recent"}}}))

	replay := &SnapshotSource{Dir: dir}
	got, err := replay.Search(context.Background(), tech)
	require.NoError(t, err)
	require.Len(t, got.OrganicResults, 1)
	assert.Equal(t, "Tech run", got.OrganicResults[0].Title)

	got, err = replay.Search(context.Background(), recent)
	require.NoError(t, err)
	require.Len(t, got.OrganicResults, 1)
	assert.Equal(t, "Recent", got.OrganicResults[0].Title)
}

func TestSlugifyTruncates(t *testing.T) {
	assert.Len(t, []rune(slugify(strings.Repeat("ab ", 50))), 60)
	assert.Equal(t, "r_d", slugify("  R&D!  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestRecorderAndReplay(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{responses: map[string]Response{
		EngineScholar: {OrganicResults: []RawResult{
			{Title: "Paper", Link: "https://mit.edu/p", PublicationInfo: &PublicationInfo{Year: "2021", Authors: []AuthorInfo{{Name: "Q"}}}},
		}},
	}}
	p := Params{Engine: EngineScholar, Query: "graphene", Num: 20}

	rec := &Recorder{Next: src, Dir: dir}
	live, err := rec.Search(context.Background(), p)
	require.NoError(t, err)

	_, err = os.Stat(SnapshotPath(dir, p))
	require.NoError(t, err)

	replay := &SnapshotSource{Dir: dir}
	got, err := replay.Search(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, live.OrganicResults, got.OrganicResults)

	snap, err := ReadSnapshot(SnapshotPath(dir, p))
	require.NoError(t, err)
	assert.Equal(t, p, snap.Params)
	assert.False(t, snap.RecordedAt.IsZero())
}

func TestRecorderSkipsFailedSearches(t *testing.T) {
	dir := t.TempDir()
	rec := &Recorder{Next: &stubSource{err: assert.AnError}, Dir: dir}
	_, err := rec.Search(context.Background(), Params{Engine: EngineGoogle, Query: "q"})
	require.ErrorIs(t, err, assert.AnError)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSnapshotSourceNotFound(t *testing.T) {
	replay := &SnapshotSource{Dir: t.TempDir()}
	_, err := replay.Search(context.Background(), Params{Engine: EngineGoogle, Query: "missing"})
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestReadSnapshotMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("params: [unclosed"), 0o644))
	_, err := ReadSnapshot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing snapshot")
}
