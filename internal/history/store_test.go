// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/techscope/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreCreatesSchema(t *testing.T) {
	s := testStore(t)

	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='runs'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "runs", name)
}

func TestNewStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	_, err = s.Record(ctx, RunRecord{Kind: KindTech, Technology: "lidar", Slug: "lidar", Status: StatusOK})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	s, err = NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordAssignsID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	started := time.Date(2025, 10, 1, 9, 30, 0, 123, time.FixedZone("CEST", 2*3600))
	rec, err := s.Record(ctx, RunRecord{
		Kind:       KindTech,
		Technology: "Solid State Battery",
		Slug:       "solid_state_battery",
		Status:     StatusOK,
		StartedAt:  started,
		Duration:   1500 * time.Millisecond,
		HypeStage:  types.HypeSlope,
		Maturity:   0.75,
		Patents:    20,
		Papers:     18,
		Alerts:     3,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(rec.ID)
	require.NoError(t, err)

	got, err := s.Latest(ctx, "solid_state_battery")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.Equal(t, types.HypeSlope, got.HypeStage)
	assert.InDelta(t, 0.75, got.Maturity, 1e-12)
	assert.Equal(t, 20, got.Patents)
	assert.Equal(t, 18, got.Papers)
	assert.Equal(t, 3, got.Alerts)
	assert.Empty(t, got.Error)
}

func TestRecordDuplicateID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	r := RunRecord{ID: "fixed", Kind: KindTech, Technology: "x", Slug: "x", Status: StatusOK}

	_, err := s.Record(ctx, r)
	require.NoError(t, err)
	_, err = s.Record(ctx, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting run")
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, tech := range []string{"lidar", "fusion", "lidar"} {
		_, err := s.Record(ctx, RunRecord{
			Kind:       KindTech,
			Technology: tech,
			Slug:       tech,
			Status:     StatusOK,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			Patents:    i,
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{all[0].Patents, all[1].Patents, all[2].Patents})

	lidar, err := s.List(ctx, "lidar", 10)
	require.NoError(t, err)
	require.Len(t, lidar, 2)
	assert.Equal(t, 2, lidar[0].Patents)

	limited, err := s.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "lidar", limited[0].Technology)
}

func TestListSameTimestampUsesInsertOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := s.Record(ctx, RunRecord{Kind: KindTech, Technology: "a", Slug: "a", Status: StatusOK, StartedAt: at})
	require.NoError(t, err)
	second, err := s.Record(ctx, RunRecord{Kind: KindTech, Technology: "a", Slug: "a", Status: StatusOK, StartedAt: at})
	require.NoError(t, err)

	runs, err := s.List(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestListEmpty(t *testing.T) {
	runs, err := testStore(t).List(context.Background(), "nothing", 5)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestLatestNotFound(t *testing.T) {
	_, err := testStore(t).Latest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTechRun(t *testing.T) {
	res := &types.TechResult{
		Technology: "Lidar",
		Patents:    make([]types.Patent, 4),
		Papers:     make([]types.Paper, 2),
		HypeStage:  types.HypePeak,
		Maturity:   0.5,
		Alerts:     make([]types.Alert, 1),
	}
	started := time.Now()

	ok := TechRun("lidar", res, nil, started, time.Second)
	assert.Equal(t, StatusOK, ok.Status)
	assert.Equal(t, KindTech, ok.Kind)
	assert.Equal(t, "Lidar", ok.Technology)
	assert.Equal(t, 4, ok.Patents)
	assert.Equal(t, 2, ok.Papers)
	assert.Equal(t, 1, ok.Alerts)

	failed := TechRun("lidar", res, errors.New("quota"), started, time.Second)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "quota", failed.Error)
}

func TestPulseRun(t *testing.T) {
	r := PulseRun(&types.PulseResult{Summary: types.PulseSummary{NewsCount: 40, PatentCount: 38}}, nil, time.Now(), time.Second)
	assert.Equal(t, KindPulse, r.Kind)
	assert.Equal(t, "global", r.Slug)
	assert.Equal(t, 40, r.News)
	assert.Equal(t, 38, r.Patents)

	failed := PulseRun(nil, errors.New("down"), time.Now(), 0)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Zero(t, failed.News)
}
